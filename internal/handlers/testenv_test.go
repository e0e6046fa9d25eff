package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/flowerhq/flower-api/internal/constants"
	"github.com/flowerhq/flower-api/internal/database"
	"github.com/flowerhq/flower-api/internal/middleware"
	"github.com/flowerhq/flower-api/internal/models"
	"github.com/flowerhq/flower-api/internal/repository"
	"github.com/flowerhq/flower-api/internal/services"
)

type testEnv struct {
	db          *gorm.DB
	router      *gin.Engine
	authService *services.AuthService
	sessionRepo repository.SessionRepository
}

func setupTestEnv(t *testing.T) testEnv {
	t.Helper()

	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Session{},
		&models.Group{},
		&models.GroupMember{},
		&models.Project{},
		&models.Tag{},
		&models.TagProjectMapping{},
		&models.Task{},
	)
	require.NoError(t, err)

	database.SetDB(db)

	userRepo := repository.NewUserRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	groupRepo := repository.NewGroupRepository(db)
	tagRepo := repository.NewTagRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	guard := services.NewAccessGuard(groupRepo, false)

	authService := services.NewAuthService(userRepo, sessionRepo)
	groupService := services.NewGroupService(groupRepo, userRepo, guard)
	tagService := services.NewTagService(tagRepo, guard)
	projectService := services.NewProjectService(projectRepo, tagRepo, guard)
	taskService := services.NewTaskService(taskRepo, projectRepo, tagRepo, userRepo, guard)

	authHandler := NewAuthHandler(authService)
	groupHandler := NewGroupHandler(groupService)
	groupViewHandler := NewGroupViewHandler(groupService, tagService, projectService, taskService)
	projectViewHandler := NewProjectViewHandler(projectService, taskService)
	adminHandler := NewAdminHandler(authService)

	r := gin.New()
	requireSession := middleware.RequireSession(authService)

	login := r.Group("/api-login")
	{
		login.POST("/check-username", authHandler.CheckUsername)
		login.POST("/check-email", authHandler.CheckEmail)
		login.POST("/register", authHandler.Register)
		login.POST("/login", authHandler.Login)
		login.POST("/auto-login", authHandler.AutoLogin)
		login.POST("/logout", authHandler.Logout)
	}

	groupSelection := r.Group("/api-group-selection")
	{
		groupSelection.POST("/group-list", requireSession, groupHandler.ListGroups)
		groupSelection.POST("/add-group", requireSession, groupHandler.AddGroup)
		groupSelection.POST("/update-group", requireSession, groupHandler.UpdateGroup)
		groupSelection.POST("/delete-group", requireSession, groupHandler.DeleteGroup)
	}

	groupView := r.Group("/api-group-view")
	{
		groupView.POST("/worker-list", groupViewHandler.WorkerList)
		groupView.POST("/add-worker", requireSession, groupViewHandler.AddWorker)
		groupView.POST("/tag-list", groupViewHandler.TagList)
		groupView.POST("/add-tag", requireSession, groupViewHandler.AddTag)
		groupView.POST("/update-tag", requireSession, groupViewHandler.UpdateTag)
		groupView.POST("/delete-tag", requireSession, groupViewHandler.DeleteTag)
		groupView.POST("/task-list/by-tag-list", groupViewHandler.TaskListByTagList)
		groupView.POST("/task-list/by-project-name", groupViewHandler.TaskListByProjectName)
		groupView.POST("/project-list", groupViewHandler.ProjectList)
	}

	projectView := r.Group("/api-project-view")
	{
		projectView.POST("/project-detail", projectViewHandler.ProjectDetail)
		projectView.POST("/add-project", requireSession, projectViewHandler.AddProject)
		projectView.POST("/update-project", requireSession, projectViewHandler.UpdateProject)
		projectView.POST("/delete-project", requireSession, projectViewHandler.DeleteProject)
		projectView.POST("/task-detail", projectViewHandler.TaskDetail)
		projectView.POST("/add-task", requireSession, projectViewHandler.AddTask)
		projectView.POST("/update-task", requireSession, projectViewHandler.UpdateTask)
		projectView.POST("/delete-task", requireSession, projectViewHandler.DeleteTask)
	}

	r.GET("/admin/delete/all/the/sessions/BECAREFUL", adminHandler.ResetSessions)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return testEnv{
		db:          db,
		router:      r,
		authService: authService,
		sessionRepo: sessionRepo,
	}
}

func (env testEnv) do(t *testing.T, method, path string, payload any, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if payload != nil {
		body, err := json.Marshal(payload)
		require.NoError(t, err)
		reader = bytes.NewReader(body)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()

	env.router.ServeHTTP(w, req)
	return w
}

func (env testEnv) registerUser(t *testing.T, username string) *models.User {
	t.Helper()

	user, err := env.authService.Register(services.RegisterInput{
		Username: username,
		Email:    username + "@example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)
	return user
}

// loginUser logs the user in over HTTP and returns the session cookie.
func (env testEnv) loginUser(t *testing.T, username string) *http.Cookie {
	t.Helper()

	w := env.do(t, http.MethodPost, "/api-login/login", map[string]any{
		"username": username,
		"password": "supersecret",
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == constants.SessionCookieName {
			return cookie
		}
	}
	t.Fatalf("session cookie not set for %s", username)
	return nil
}

// seedGroup registers the user, logs in, and creates a group over HTTP so
// the owner membership is in place. Returns the session cookie.
func (env testEnv) seedGroup(t *testing.T, username, groupName string) *http.Cookie {
	t.Helper()

	env.registerUser(t, username)
	cookie := env.loginUser(t, username)

	w := env.do(t, http.MethodPost, "/api-group-selection/add-group", map[string]any{
		"group_name": groupName,
	}, cookie)
	require.Equal(t, http.StatusOK, w.Code)

	return cookie
}

func (env testEnv) groupID(t *testing.T, groupName string) uint64 {
	t.Helper()

	var group models.Group
	require.NoError(t, env.db.Where("group_name = ?", groupName).First(&group).Error)
	return group.GroupID
}

func (env testEnv) countRows(t *testing.T, model any, query string, args ...any) int64 {
	t.Helper()

	var count int64
	require.NoError(t, env.db.Model(model).Where(query, args...).Count(&count).Error)
	return count
}

func taskTime(t *testing.T, value string) time.Time {
	t.Helper()

	parsed, err := time.Parse(constants.TaskTimeLayout, value)
	require.NoError(t, err)
	return parsed
}

package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/flowerhq/flower-api/internal/config"
	"github.com/flowerhq/flower-api/internal/database"
	"github.com/flowerhq/flower-api/internal/handlers"
	"github.com/flowerhq/flower-api/internal/middleware"
	"github.com/flowerhq/flower-api/internal/repository"
	"github.com/flowerhq/flower-api/internal/services"
)

func main() {
	cfg := config.Load()

	gin.SetMode(cfg.GinMode)

	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	db := database.GetDB()

	userRepo := repository.NewUserRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	groupRepo := repository.NewGroupRepository(db)
	tagRepo := repository.NewTagRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	guard := services.NewAccessGuard(groupRepo, cfg.StrictMembership)

	authService := services.NewAuthService(userRepo, sessionRepo)
	groupService := services.NewGroupService(groupRepo, userRepo, guard)
	tagService := services.NewTagService(tagRepo, guard)
	projectService := services.NewProjectService(projectRepo, tagRepo, guard)
	taskService := services.NewTaskService(taskRepo, projectRepo, tagRepo, userRepo, guard)

	authHandler := handlers.NewAuthHandler(authService)
	groupHandler := handlers.NewGroupHandler(groupService)
	groupViewHandler := handlers.NewGroupViewHandler(groupService, tagService, projectService, taskService)
	projectViewHandler := handlers.NewProjectViewHandler(projectService, taskService)
	adminHandler := handlers.NewAdminHandler(authService)

	r := setupRouter(cfg, authHandler, groupHandler, groupViewHandler, projectViewHandler, adminHandler, authService)

	log.Printf("Server listening on %s", cfg.ServerAddr)
	if err := r.Run(cfg.ServerAddr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func setupRouter(
	cfg *config.Config,
	authHandler *handlers.AuthHandler,
	groupHandler *handlers.GroupHandler,
	groupViewHandler *handlers.GroupViewHandler,
	projectViewHandler *handlers.ProjectViewHandler,
	adminHandler *handlers.AdminHandler,
	authService *services.AuthService,
) *gin.Engine {
	r := gin.Default()

	requireSession := middleware.RequireSession(authService)

	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Hello, this is Flow'er.")
	})

	login := r.Group("/api-login")
	{
		login.GET("", authHandler.Index)
		login.GET("/", authHandler.Index)
		login.POST("/check-username", authHandler.CheckUsername)
		login.POST("/check-email", authHandler.CheckEmail)
		login.POST("/register", authHandler.Register)
		login.POST("/login", authHandler.Login)
		login.POST("/auto-login", authHandler.AutoLogin)
		login.POST("/logout", authHandler.Logout)
	}

	groupSelection := r.Group("/api-group-selection")
	{
		groupSelection.GET("", groupHandler.Index)
		groupSelection.GET("/", groupHandler.Index)
		groupSelection.POST("/group-list", requireSession, groupHandler.ListGroups)
		groupSelection.POST("/add-group", requireSession, groupHandler.AddGroup)
		groupSelection.POST("/update-group", requireSession, groupHandler.UpdateGroup)
		groupSelection.POST("/delete-group", requireSession, groupHandler.DeleteGroup)
	}

	groupView := r.Group("/api-group-view")
	{
		groupView.GET("", groupViewHandler.Index)
		groupView.GET("/", groupViewHandler.Index)
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
		projectView.GET("", projectViewHandler.Index)
		projectView.GET("/", projectViewHandler.Index)
		projectView.POST("/project-detail", projectViewHandler.ProjectDetail)
		projectView.POST("/add-project", requireSession, projectViewHandler.AddProject)
		projectView.POST("/update-project", requireSession, projectViewHandler.UpdateProject)
		projectView.POST("/delete-project", requireSession, projectViewHandler.DeleteProject)
		projectView.POST("/task-detail", projectViewHandler.TaskDetail)
		projectView.POST("/add-task", requireSession, projectViewHandler.AddTask)
		projectView.POST("/update-task", requireSession, projectViewHandler.UpdateTask)
		projectView.POST("/delete-task", requireSession, projectViewHandler.DeleteTask)
	}

	admin := r.Group("/admin")
	{
		admin.GET("/delete/all/the/sessions/BECAREFUL", adminHandler.ResetSessions)
	}

	return r
}

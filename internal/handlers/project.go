package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/flowerhq/flower-api/internal/dto"
	apierrors "github.com/flowerhq/flower-api/internal/errors"
	"github.com/flowerhq/flower-api/internal/middleware"
	"github.com/flowerhq/flower-api/internal/services"
)

// ProjectViewHandler serves the project-view endpoints: project detail and
// CRUD, and task detail and CRUD scoped to a single project.
type ProjectViewHandler struct {
	projectService *services.ProjectService
	taskService    *services.TaskService
}

// NewProjectViewHandler creates a new ProjectViewHandler.
func NewProjectViewHandler(projectService *services.ProjectService, taskService *services.TaskService) *ProjectViewHandler {
	return &ProjectViewHandler{
		projectService: projectService,
		taskService:    taskService,
	}
}

// Index greets callers probing the project-view scope.
func (h *ProjectViewHandler) Index(c *gin.Context) {
	c.String(http.StatusOK, "Hello, this is the Project View endpoint.")
}

// ProjectDetail returns one project's name, description and tag names.
// Lookup misses come back as an empty detail body, not an envelope.
func (h *ProjectViewHandler) ProjectDetail(c *gin.Context) {
	var req dto.ProjectDetailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, emptyProjectDetail())
		return
	}

	detail, err := h.projectService.GetProjectDetail(req.OwnerUserName, req.GroupName, req.ProjectName)
	if err != nil {
		status := readListStatus(req.GroupName, err)
		c.JSON(status, emptyProjectDetail())
		return
	}

	c.JSON(http.StatusOK, dto.ProjectDetailResponse{
		ProjectName:        detail.ProjectName,
		ProjectDescription: detail.ProjectDescription,
		Tags:               detail.Tags,
	})
}

// AddProject creates a project and maps the given tags to it.
func (h *ProjectViewHandler) AddProject(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	var req dto.AddProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	err := h.projectService.AddProject(actor, req.OwnerUserName, req.GroupName, req.ProjectName, req.ProjectDescription, req.Tags)
	if err != nil {
		respondProjectError(c, req.GroupName, err)
		return
	}

	apierrors.OK(c, "Project added successfully")
}

// UpdateProject patches a project; empty new fields keep the current
// values.
func (h *ProjectViewHandler) UpdateProject(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	var req dto.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	err := h.projectService.UpdateProject(actor, req.OwnerUserName, req.GroupName, req.ProjectName, req.NewProjectName, req.NewProjectDescription)
	if err != nil {
		respondProjectError(c, req.GroupName, err)
		return
	}

	apierrors.OK(c, "Project updated successfully")
}

// DeleteProject removes a project with its tasks and tag mappings.
func (h *ProjectViewHandler) DeleteProject(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	var req dto.DeleteProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	err := h.projectService.DeleteProject(actor, req.OwnerUserName, req.GroupName, req.ProjectName)
	if err != nil {
		respondProjectError(c, req.GroupName, err)
		return
	}

	apierrors.OK(c, "Project deleted successfully")
}

// TaskDetail returns the tasks of one project with that project's tag
// colors.
func (h *ProjectViewHandler) TaskDetail(c *gin.Context) {
	var req dto.TaskDetailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.TaskListResponse{Tasks: []dto.TaskDTO{}})
		return
	}

	listings, err := h.taskService.TasksByProject(req.OwnerUserName, req.GroupName, req.ProjectName)
	if err != nil {
		status := readListStatus(req.GroupName, err)
		c.JSON(status, dto.TaskListResponse{Tasks: []dto.TaskDTO{}})
		return
	}

	c.JSON(http.StatusOK, toTaskListResponse(listings))
}

// AddTask creates a task in a project of the actor's group.
func (h *ProjectViewHandler) AddTask(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	var req dto.AddTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	err := h.taskService.AddTask(actor, services.AddTaskInput{
		OwnerUserName: req.OwnerUserName,
		GroupName:     req.GroupName,
		ProjectName:   req.ProjectName,
		WorkerName:    req.WorkerName,
		Title:         req.TaskTitle,
		Description:   req.Description,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
	})
	if err != nil {
		respondTaskError(c, req.GroupName, err)
		return
	}

	apierrors.OK(c, "Task added successfully")
}

// UpdateTask patches a task located by (group, project, title); empty new
// fields keep the current values.
func (h *ProjectViewHandler) UpdateTask(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	var req dto.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	err := h.taskService.UpdateTask(actor, services.UpdateTaskInput{
		OwnerUserName:  req.OwnerUserName,
		GroupName:      req.GroupName,
		ProjectName:    req.ProjectName,
		Title:          req.TaskTitle,
		NewWorkerName:  req.NewWorkerName,
		NewTitle:       req.NewTaskTitle,
		NewDescription: req.NewDescription,
		NewStartTime:   req.NewStartTime,
		NewEndTime:     req.NewEndTime,
	})
	if err != nil {
		respondTaskError(c, req.GroupName, err)
		return
	}

	apierrors.OK(c, "Task updated successfully")
}

// DeleteTask removes a task located by (group, project, title).
func (h *ProjectViewHandler) DeleteTask(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	var req dto.DeleteTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	err := h.taskService.DeleteTask(actor, req.OwnerUserName, req.GroupName, req.ProjectName, req.TaskTitle)
	if err != nil {
		respondTaskError(c, req.GroupName, err)
		return
	}

	apierrors.OK(c, "Task deleted successfully")
}

func emptyProjectDetail() dto.ProjectDetailResponse {
	return dto.ProjectDetailResponse{Tags: []string{}}
}

func respondProjectError(c *gin.Context, groupName string, err error) {
	switch {
	case errors.Is(err, services.ErrUnauthorizedAction):
		apierrors.BadRequest(c, "Unauthorized action")
	case errors.Is(err, services.ErrGroupNotFound):
		apierrors.BadRequest(c, "Group not found")
	case errors.Is(err, services.ErrProjectNotFound):
		apierrors.BadRequest(c, "Project not found")
	default:
		log.Printf("Project operation failed for group %q: %v", groupName, err)
		apierrors.InternalError(c, "Project operation failed")
	}
}

func respondTaskError(c *gin.Context, groupName string, err error) {
	switch {
	case errors.Is(err, services.ErrUnauthorizedAction):
		apierrors.BadRequest(c, "Unauthorized action")
	case errors.Is(err, services.ErrGroupNotFound):
		apierrors.BadRequest(c, "Group not found")
	case errors.Is(err, services.ErrProjectNotFound):
		apierrors.BadRequest(c, "Project not found")
	case errors.Is(err, services.ErrTaskNotFound):
		apierrors.BadRequest(c, "Task not found")
	case errors.Is(err, services.ErrWorkerNotFound):
		apierrors.BadRequest(c, "Worker not found")
	case errors.Is(err, services.ErrInvalidTimeFormat):
		apierrors.BadRequest(c, "Invalid time format, expected YYYY-MM-DD HH:MM:SS")
	default:
		log.Printf("Task operation failed for group %q: %v", groupName, err)
		apierrors.InternalError(c, "Task operation failed")
	}
}

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

// GroupViewHandler serves the group-view endpoints: workers, tags, the
// tag-set and project-name task filters, and the project listing.
type GroupViewHandler struct {
	groupService   *services.GroupService
	tagService     *services.TagService
	projectService *services.ProjectService
	taskService    *services.TaskService
}

// NewGroupViewHandler creates a new GroupViewHandler.
func NewGroupViewHandler(
	groupService *services.GroupService,
	tagService *services.TagService,
	projectService *services.ProjectService,
	taskService *services.TaskService,
) *GroupViewHandler {
	return &GroupViewHandler{
		groupService:   groupService,
		tagService:     tagService,
		projectService: projectService,
		taskService:    taskService,
	}
}

// Index greets callers probing the group-view scope.
func (h *GroupViewHandler) Index(c *gin.Context) {
	c.String(http.StatusOK, "Hello, this is the Group View endpoint.")
}

// WorkerList returns the members of a group, owner excluded. List reads
// respond with an empty list on lookup misses rather than an envelope.
func (h *GroupViewHandler) WorkerList(c *gin.Context) {
	var req dto.WorkerListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.WorkerListResponse{Workers: []dto.WorkerDTO{}})
		return
	}

	users, err := h.groupService.ListWorkers(req.OwnerUserName, req.GroupName)
	if err != nil {
		status := readListStatus(req.GroupName, err)
		c.JSON(status, dto.WorkerListResponse{Workers: []dto.WorkerDTO{}})
		return
	}

	workers := make([]dto.WorkerDTO, len(users))
	for i, user := range users {
		workers[i] = dto.WorkerDTO{
			UserName:  user.UserName,
			UserEmail: user.UserEmail,
		}
	}

	c.JSON(http.StatusOK, dto.WorkerListResponse{Workers: workers})
}

// AddWorker adds a registered user to the group as a read-only member.
func (h *GroupViewHandler) AddWorker(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	var req dto.AddWorkerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	err := h.groupService.AddWorker(actor, req.OwnerUserName, req.GroupName, req.WorkerUserName)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUnauthorizedAction):
			apierrors.BadRequest(c, "Unauthorized action")
		case errors.Is(err, services.ErrGroupNotFound):
			apierrors.BadRequest(c, "Group not found")
		case errors.Is(err, services.ErrWorkerNotFound):
			apierrors.BadRequest(c, "Worker not found")
		case errors.Is(err, services.ErrAlreadyMember):
			apierrors.Conflict(c, "Worker is already a member of the group")
		default:
			log.Printf("Failed to add worker to %q: %v", req.GroupName, err)
			apierrors.InternalError(c, "Failed to add worker")
		}
		return
	}

	apierrors.OK(c, "Worker added successfully")
}

// TagList returns all tags of a group.
func (h *GroupViewHandler) TagList(c *gin.Context) {
	var req dto.TagListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.TagListResponse{Tags: []dto.TagDTO{}})
		return
	}

	tags, err := h.tagService.ListTags(req.OwnerUserName, req.GroupName)
	if err != nil {
		status := readListStatus(req.GroupName, err)
		c.JSON(status, dto.TagListResponse{Tags: []dto.TagDTO{}})
		return
	}

	tagDTOs := make([]dto.TagDTO, len(tags))
	for i, tag := range tags {
		tagDTOs[i] = dto.ToTagDTO(tag)
	}

	c.JSON(http.StatusOK, dto.TagListResponse{Tags: tagDTOs})
}

// AddTag creates a tag in the group.
func (h *GroupViewHandler) AddTag(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	var req dto.AddTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	err := h.tagService.AddTag(actor, req.OwnerUserName, req.GroupName, req.TagName, req.TagColor)
	if err != nil {
		respondTagError(c, req.GroupName, err)
		return
	}

	apierrors.OK(c, "Tag added successfully")
}

// UpdateTag patches a tag; empty new fields keep the current values.
func (h *GroupViewHandler) UpdateTag(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	var req dto.UpdateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	err := h.tagService.UpdateTag(actor, req.OwnerUserName, req.GroupName, req.TagName, req.NewTagName, req.NewTagColor)
	if err != nil {
		respondTagError(c, req.GroupName, err)
		return
	}

	apierrors.OK(c, "Tag updated successfully")
}

// DeleteTag removes a tag unless it is the last tag of some project.
func (h *GroupViewHandler) DeleteTag(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	var req dto.DeleteTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	err := h.tagService.DeleteTag(actor, req.OwnerUserName, req.GroupName, req.TagName)
	if err != nil {
		respondTagError(c, req.GroupName, err)
		return
	}

	apierrors.OK(c, "Tag deleted successfully")
}

// TaskListByTagList returns tasks filtered by a tag-name set. An empty
// set lists every task of the group.
func (h *GroupViewHandler) TaskListByTagList(c *gin.Context) {
	var req dto.TaskListByTagListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.TaskListResponse{Tasks: []dto.TaskDTO{}})
		return
	}

	listings, err := h.taskService.TasksByTagSet(req.OwnerUserName, req.GroupName, req.Tags)
	if err != nil {
		status := readListStatus(req.GroupName, err)
		c.JSON(status, dto.TaskListResponse{Tasks: []dto.TaskDTO{}})
		return
	}

	c.JSON(http.StatusOK, toTaskListResponse(listings))
}

// TaskListByProjectName returns tasks of projects whose name contains the
// given substring.
func (h *GroupViewHandler) TaskListByProjectName(c *gin.Context) {
	var req dto.TaskListByProjectNameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.TaskListResponse{Tasks: []dto.TaskDTO{}})
		return
	}

	listings, err := h.taskService.TasksByProjectName(req.OwnerUserName, req.GroupName, req.ProjectName)
	if err != nil {
		status := readListStatus(req.GroupName, err)
		c.JSON(status, dto.TaskListResponse{Tasks: []dto.TaskDTO{}})
		return
	}

	c.JSON(http.StatusOK, toTaskListResponse(listings))
}

// ProjectList returns every project of the group with its tag colors.
func (h *GroupViewHandler) ProjectList(c *gin.Context) {
	var req dto.ProjectListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ProjectListResponse{Projects: []dto.ProjectDTO{}})
		return
	}

	listings, err := h.projectService.ListProjects(req.OwnerUserName, req.GroupName)
	if err != nil {
		status := readListStatus(req.GroupName, err)
		c.JSON(status, dto.ProjectListResponse{Projects: []dto.ProjectDTO{}})
		return
	}

	projects := make([]dto.ProjectDTO, len(listings))
	for i, listing := range listings {
		projects[i] = dto.ProjectDTO{
			ProjectName: listing.ProjectName,
			TagColors:   listing.TagColors,
		}
	}

	c.JSON(http.StatusOK, dto.ProjectListResponse{Projects: projects})
}

func toTaskListResponse(listings []services.TaskListing) dto.TaskListResponse {
	tasks := make([]dto.TaskDTO, len(listings))
	for i, listing := range listings {
		tasks[i] = dto.ToTaskDTO(listing.Task, listing.TagColors)
	}
	return dto.TaskListResponse{Tasks: tasks}
}

// readListStatus classifies a list-read failure: lookup misses are the
// caller's 400, anything else is a storage fault.
func readListStatus(groupName string, err error) int {
	switch {
	case errors.Is(err, services.ErrGroupNotFound),
		errors.Is(err, services.ErrProjectNotFound),
		errors.Is(err, services.ErrEmptyProjectName):
		return http.StatusBadRequest
	default:
		log.Printf("List read failed for group %q: %v", groupName, err)
		return http.StatusInternalServerError
	}
}

func respondTagError(c *gin.Context, groupName string, err error) {
	switch {
	case errors.Is(err, services.ErrUnauthorizedAction):
		apierrors.BadRequest(c, "Unauthorized action")
	case errors.Is(err, services.ErrGroupNotFound):
		apierrors.BadRequest(c, "Group not found")
	case errors.Is(err, services.ErrTagNotFound):
		apierrors.BadRequest(c, "Tag not found")
	case errors.Is(err, services.ErrTagInUse):
		apierrors.Conflict(c, "Cannot delete the only tag of a project")
	default:
		log.Printf("Tag operation failed for group %q: %v", groupName, err)
		apierrors.InternalError(c, "Tag operation failed")
	}
}

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

// GroupHandler serves the group-selection endpoints: the per-user group
// listing and group CRUD.
type GroupHandler struct {
	groupService *services.GroupService
}

// NewGroupHandler creates a new GroupHandler.
func NewGroupHandler(groupService *services.GroupService) *GroupHandler {
	return &GroupHandler{
		groupService: groupService,
	}
}

// Index greets callers probing the group-selection scope.
func (h *GroupHandler) Index(c *gin.Context) {
	c.String(http.StatusOK, "Hello, this is the Group Selection endpoint.")
}

// ListGroups returns the groups the session user is a member of.
func (h *GroupHandler) ListGroups(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	listings, err := h.groupService.ListGroups(actor.UserID)
	if err != nil {
		log.Printf("Failed to list groups for user %d: %v", actor.UserID, err)
		c.JSON(http.StatusInternalServerError, dto.GroupListResponse{Groups: []dto.GroupDTO{}})
		return
	}

	groups := make([]dto.GroupDTO, len(listings))
	for i, listing := range listings {
		groups[i] = dto.GroupDTO{
			GroupName:     listing.GroupName,
			Writeable:     listing.Writeable,
			OwnerUsername: listing.OwnerUserName,
		}
	}

	c.JSON(http.StatusOK, dto.GroupListResponse{Groups: groups})
}

// AddGroup creates a group owned by the session user.
func (h *GroupHandler) AddGroup(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	var req dto.AddGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if _, err := h.groupService.CreateGroup(actor, req.GroupName); err != nil {
		if errors.Is(err, services.ErrInvalidGroupName) {
			apierrors.BadRequest(c, err.Error())
			return
		}
		log.Printf("Failed to create group %q: %v", req.GroupName, err)
		apierrors.InternalError(c, "Failed to create group")
		return
	}

	apierrors.OK(c, "Group created successfully")
}

// UpdateGroup renames a group owned by the session user. An empty new
// name keeps the current one.
func (h *GroupHandler) UpdateGroup(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	var req dto.UpdateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	renamed, err := h.groupService.RenameGroup(actor, req.GroupName, req.NewGroupName)
	if err != nil {
		respondGroupError(c, req.GroupName, err)
		return
	}

	if renamed {
		apierrors.OK(c, "Group name updated successfully")
	} else {
		apierrors.OK(c, "Group name maintained successfully")
	}
}

// DeleteGroup removes a group owned by the session user along with all
// its projects, tags, tasks and memberships.
func (h *GroupHandler) DeleteGroup(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	var req dto.DeleteGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.groupService.DeleteGroup(actor, req.GroupName); err != nil {
		respondGroupError(c, req.GroupName, err)
		return
	}

	apierrors.OK(c, "Group deleted successfully")
}

func respondGroupError(c *gin.Context, groupName string, err error) {
	switch {
	case errors.Is(err, services.ErrUnauthorizedAction),
		errors.Is(err, services.ErrGroupNotFound):
		apierrors.BadRequest(c, "User is not the owner of the group or group does not exist")
	default:
		log.Printf("Group operation failed for %q: %v", groupName, err)
		apierrors.InternalError(c, "Group operation failed")
	}
}

package handlers

import (
	"log"

	"github.com/gin-gonic/gin"

	apierrors "github.com/flowerhq/flower-api/internal/errors"
	"github.com/flowerhq/flower-api/internal/services"
)

// AdminHandler exposes maintenance endpoints.
type AdminHandler struct {
	authService *services.AuthService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(authService *services.AuthService) *AdminHandler {
	return &AdminHandler{
		authService: authService,
	}
}

// ResetSessions drops every session row, forcing all users to log in
// again.
func (h *AdminHandler) ResetSessions(c *gin.Context) {
	if err := h.authService.ResetAllSessions(); err != nil {
		log.Printf("Failed to reset sessions: %v", err)
		apierrors.InternalError(c, "Failed to reset sessions")
		return
	}

	apierrors.OK(c, "All sessions deleted")
}

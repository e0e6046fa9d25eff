package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/flowerhq/flower-api/internal/constants"
	"github.com/flowerhq/flower-api/internal/dto"
	apierrors "github.com/flowerhq/flower-api/internal/errors"
	"github.com/flowerhq/flower-api/internal/services"
)

// AuthHandler coordinates authentication-related HTTP handlers.
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Index greets callers probing the login scope.
func (h *AuthHandler) Index(c *gin.Context) {
	c.String(http.StatusOK, "Hello this is Flow'er's Login endpoint.")
}

// CheckUsername reports whether a username is still free.
func (h *AuthHandler) CheckUsername(c *gin.Context) {
	var req dto.CheckUsernameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	available, err := h.authService.UserNameAvailable(req.Username)
	if err != nil {
		log.Printf("Failed to check username: %v", err)
		apierrors.InternalError(c, "Failed to check username")
		return
	}

	c.JSON(http.StatusOK, dto.CheckUsernameResponse{IsUnique: available})
}

// CheckEmail reports whether an email is still free.
func (h *AuthHandler) CheckEmail(c *gin.Context) {
	var req dto.CheckEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	available, err := h.authService.EmailAvailable(req.Email)
	if err != nil {
		log.Printf("Failed to check email: %v", err)
		apierrors.InternalError(c, "Failed to check email")
		return
	}

	c.JSON(http.StatusOK, dto.CheckEmailResponse{IsUnique: available})
}

// Register creates a new user.
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	_, err := h.authService.Register(services.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUsernameTaken),
			errors.Is(err, services.ErrEmailTaken):
			apierrors.Conflict(c, err.Error())
		default:
			log.Printf("Failed to register user: %v", err)
			apierrors.InternalError(c, "Failed to register user")
		}
		return
	}

	apierrors.OK(c, "User registered successfully")
}

// Login authenticates a user and issues the session cookie.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	session, err := h.authService.Login(services.LoginInput{
		Username:   req.Username,
		Password:   req.Password,
		RememberMe: req.RememberMe,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidCredentials):
			apierrors.Unauthorized(c, "Invalid username or password")
		case errors.Is(err, services.ErrSessionActive):
			apierrors.Conflict(c, "User already has an active session")
		default:
			log.Printf("Failed to log in: %v", err)
			apierrors.InternalError(c, "Failed to create session")
		}
		return
	}

	setSessionCookie(c, session.SessionID)
	apierrors.OK(c, "Login successful")
}

// AutoLogin validates the presented session cookie and re-issues it.
func (h *AuthHandler) AutoLogin(c *gin.Context) {
	sessionID, err := c.Cookie(constants.SessionCookieName)
	if err != nil {
		apierrors.Unauthorized(c, "Session ID not found in cookies")
		return
	}

	user, err := h.authService.AutoLogin(sessionID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrSessionExpired):
			apierrors.Unauthorized(c, "Login is needed, session expired")
		case errors.Is(err, services.ErrSessionNotFound):
			apierrors.Unauthorized(c, "Invalid session ID")
		default:
			log.Printf("Failed to validate session: %v", err)
			apierrors.InternalError(c, "Failed to validate session")
		}
		return
	}

	setSessionCookie(c, sessionID)
	apierrors.OK(c, fmt.Sprintf("Welcome back, %s", user.UserName))
}

// Logout removes the session.
func (h *AuthHandler) Logout(c *gin.Context) {
	sessionID, err := c.Cookie(constants.SessionCookieName)
	if err != nil {
		apierrors.Unauthorized(c, "Session ID not found in cookies")
		return
	}

	if err := h.authService.Logout(sessionID); err != nil {
		switch {
		case errors.Is(err, services.ErrSessionExpired):
			apierrors.Unauthorized(c, "Session already expired")
		case errors.Is(err, services.ErrSessionNotFound):
			apierrors.Unauthorized(c, "Invalid session ID")
		default:
			log.Printf("Failed to log out: %v", err)
			apierrors.InternalError(c, "Failed to delete session")
		}
		return
	}

	clearSessionCookie(c)
	apierrors.OK(c, "Logged out successfully")
}

func setSessionCookie(c *gin.Context, sessionID string) {
	c.SetCookie(constants.SessionCookieName, sessionID, 0, "/", "", false, true)
}

func clearSessionCookie(c *gin.Context) {
	c.SetCookie(constants.SessionCookieName, "", -1, "/", "", false, true)
}

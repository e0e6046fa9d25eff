package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/flowerhq/flower-api/internal/constants"
	apierrors "github.com/flowerhq/flower-api/internal/errors"
	"github.com/flowerhq/flower-api/internal/services"
)

// RequireSession resolves the session cookie to a user identity once per
// request and stores it in the context. Mutating handlers read the
// identity from there instead of re-querying the session.
func RequireSession(authService *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := c.Cookie(constants.SessionCookieName)
		if err != nil {
			apierrors.BadRequest(c, "Session ID not found")
			c.Abort()
			return
		}

		user, err := authService.ResolveCurrentUser(sessionID)
		if err != nil {
			apierrors.BadRequest(c, "Invalid or expired session ID")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUserID, user.UserID)
		c.Set(constants.ContextKeyUserName, user.UserName)
		c.Next()
	}
}

// GetActor retrieves the session-resolved identity from the context.
func GetActor(c *gin.Context) (services.Actor, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return services.Actor{}, false
	}
	userName, exists := c.Get(constants.ContextKeyUserName)
	if !exists {
		return services.Actor{}, false
	}

	id, ok := userID.(uint64)
	if !ok {
		return services.Actor{}, false
	}
	name, ok := userName.(string)
	if !ok {
		return services.Actor{}, false
	}

	return services.Actor{UserID: id, UserName: name}, true
}

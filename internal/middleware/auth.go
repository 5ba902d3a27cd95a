package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sjperalta/billing-api/internal/models"
	"github.com/sjperalta/billing-api/internal/services"
	"github.com/sjperalta/billing-api/internal/session"
)

// Context keys set by Auth
const (
	userIDKey   = "userID"
	userRoleKey = "userRole"
	clientIDKey = "clientID"
)

// Auth returns a middleware that accepts either a bearer token or the
// user_id/user_role cookie pair.
func Auth(sessions *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := authenticate(c, sessions)
		if err != nil {
			message := "Unauthorized"
			if errors.Is(err, session.ErrExpiredToken) {
				message = "Session has expired"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": message})
			return
		}

		// Store claims in context for handlers to use
		c.Set(userIDKey, claims.UserID)
		c.Set(userRoleKey, claims.Role)
		if claims.ClientID != nil {
			c.Set(clientIDKey, *claims.ClientID)
		}

		c.Next()
	}
}

func authenticate(c *gin.Context, sessions *session.Manager) (*session.Claims, error) {
	if header := c.GetHeader("Authorization"); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			return nil, session.ErrInvalidToken
		}
		return sessions.ParseUser(parts[1])
	}

	userToken, err := c.Cookie(session.UserCookie)
	if err != nil || userToken == "" {
		return nil, session.ErrInvalidToken
	}
	roleToken, err := c.Cookie(session.RoleCookie)
	if err != nil || roleToken == "" {
		return nil, session.ErrInvalidToken
	}
	return sessions.ParseCookies(userToken, roleToken)
}

// GetUserID extracts the user ID from the Gin context
func GetUserID(c *gin.Context) uint {
	return c.GetUint(userIDKey)
}

// GetUserRole extracts the user role from the Gin context
func GetUserRole(c *gin.Context) string {
	return c.GetString(userRoleKey)
}

// GetClientID returns the client record linked to the session, if any
func GetClientID(c *gin.Context) *uint {
	id, exists := c.Get(clientIDKey)
	if !exists {
		return nil
	}
	clientID := id.(uint)
	return &clientID
}

// Actor describes the caller for service calls. Unauthenticated requests
// get an actor with only the request metadata filled in.
func Actor(c *gin.Context) services.Actor {
	return services.Actor{
		UserID:    GetUserID(c),
		Role:      GetUserRole(c),
		ClientID:  GetClientID(c),
		IP:        c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	}
}

// RequireAdmin returns a middleware that requires admin role
func RequireAdmin() gin.HandlerFunc {
	return RequireRole(models.RoleAdmin)
}

// RequireRole returns a middleware that requires specific roles
func RequireRole(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole := GetUserRole(c)
		for _, role := range allowedRoles {
			if userRole == role {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"error": "Forbidden",
		})
	}
}

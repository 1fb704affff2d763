package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"meeting_tracker/internal/model"
	"meeting_tracker/internal/utils"

	"github.com/gin-gonic/gin"
)

const AuthUserKey = "authUser"

// Authenticator resolves a bearer token to the user it was issued for
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*model.User, error)
}

func unauthorized(c *gin.Context, message string) {
	c.Header("WWW-Authenticate", "Bearer")
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": message})
}

// JWTAuthMiddleware creates a middleware for JWT authentication
func JWTAuthMiddleware(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			unauthorized(c, "Not authenticated")
			return
		}

		parts := strings.Fields(authHeader)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			unauthorized(c, "Invalid authorization header format")
			return
		}

		user, err := auth.Authenticate(c.Request.Context(), parts[1])
		if err != nil {
			switch {
			case errors.Is(err, utils.ErrExpiredToken):
				unauthorized(c, "Token has expired")
			case errors.Is(err, utils.ErrInvalidToken):
				unauthorized(c, "Could not validate credentials")
			default:
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to authenticate"})
			}
			return
		}

		c.Set(AuthUserKey, user)
		c.Next()
	}
}

// AuthUser returns the user stored by JWTAuthMiddleware
func AuthUser(c *gin.Context) (*model.User, bool) {
	val, exists := c.Get(AuthUserKey)
	if !exists {
		return nil, false
	}
	user, ok := val.(*model.User)
	return user, ok && user != nil
}

package middleware

import (
	"context"
	"errors"
	"strings"

	domainerrors "fnct-hackathon.backend/internal/domain/errors"
	"fnct-hackathon.backend/internal/interfaces/http/response"
	"fnct-hackathon.backend/pkg/jwt"
	"fnct-hackathon.backend/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	// AuthorizationHeader is the header key for authorization
	AuthorizationHeader = "Authorization"
	// BearerPrefix is the prefix for bearer tokens
	BearerPrefix = "Bearer "
	// ActorIDKey is the gin context key for the authenticated actor id
	ActorIDKey = "actorId"
	// ActorEmailKey is the gin context key for the actor e-mail
	ActorEmailKey = "actorEmail"
	// ActorRoleKey is the gin context key for the actor role
	ActorRoleKey = "actorRole"
)

type tokenValidator interface {
	ValidateToken(tokenString string) (*jwt.Claims, error)
}

// AuthMiddleware authenticates the bearer token and records the actor.
func AuthMiddleware(jwtService tokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(AuthorizationHeader)
		if authHeader == "" {
			abortAuth(c, "Authorization header is required")
			return
		}
		if !strings.HasPrefix(authHeader, BearerPrefix) {
			abortAuth(c, "Invalid authorization format. Use: Bearer <token>")
			return
		}

		claims, err := jwtService.ValidateToken(strings.TrimPrefix(authHeader, BearerPrefix))
		if err != nil {
			logger.Debug(c.Request.Context(), "bearer token rejected",
				zap.String("path", c.Request.URL.Path),
				zap.Error(err),
			)
			if errors.Is(err, jwt.ErrExpiredToken) {
				abortAuth(c, "Token has expired")
				return
			}
			abortAuth(c, "Invalid token")
			return
		}

		c.Set(ActorIDKey, claims.ActorID)
		c.Set(ActorEmailKey, claims.Email)
		c.Set(ActorRoleKey, claims.Role)

		ctx := context.WithValue(c.Request.Context(), logger.ActorIDKey, claims.ActorID.String())
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

func abortAuth(c *gin.Context, message string) {
	response.Error(c, domainerrors.Unauthenticated(message))
	c.Abort()
}

// GetActorID gets the authenticated actor id from context
func GetActorID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get(ActorIDKey)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

// GetActorRole gets the actor role from context
func GetActorRole(c *gin.Context) (string, bool) {
	v, exists := c.Get(ActorRoleKey)
	if !exists {
		return "", false
	}
	role, ok := v.(string)
	return role, ok
}

// RequireRole rejects actors whose token carries none of roles.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		actorRole, exists := GetActorRole(c)
		if !exists {
			abortAuth(c, "Actor role not found")
			return
		}
		for _, role := range roles {
			if actorRole == role {
				c.Next()
				return
			}
		}
		response.Error(c, domainerrors.Forbidden("Insufficient permissions"))
		c.Abort()
	}
}

// RequireAdmin creates a middleware that requires admin role
func RequireAdmin() gin.HandlerFunc {
	return RequireRole(jwt.RoleAdmin)
}

// RequireCandidate admits candidate tokens only.
func RequireCandidate() gin.HandlerFunc {
	return RequireRole(jwt.RoleCandidate)
}

package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"ridetogether.backend/internal/domain/entities"
	domainerrors "ridetogether.backend/internal/domain/errors"
	"ridetogether.backend/internal/domain/repositories"
	"ridetogether.backend/internal/interfaces/http/response"
	"ridetogether.backend/pkg/jwt"
)

const (
	// AuthorizationHeader is the header key for authorization
	AuthorizationHeader = "Authorization"
	// BearerPrefix is the prefix for bearer tokens
	BearerPrefix = "Bearer "
	// CurrentUserKey is the context key for the resolved account
	CurrentUserKey = "currentUser"
)

// AuthMiddleware validates the bearer token and resolves the account it
// names. A valid token for a deleted account is rejected.
func AuthMiddleware(jwtService *jwt.JWTService, userRepo repositories.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(AuthorizationHeader)
		if authHeader == "" {
			response.AbortError(c, domainerrors.Unauthorized("authorization header is required"))
			return
		}
		if !strings.HasPrefix(authHeader, BearerPrefix) {
			response.AbortError(c, domainerrors.Unauthorized("invalid authorization format, use: Bearer <token>"))
			return
		}

		tokenString := strings.TrimPrefix(authHeader, BearerPrefix)
		claims, err := jwtService.ValidateToken(tokenString)
		if err != nil {
			if errors.Is(err, jwt.ErrExpiredToken) {
				response.AbortError(c, domainerrors.Unauthorized("token has expired"))
				return
			}
			response.AbortError(c, domainerrors.Unauthorized("invalid token"))
			return
		}

		user, err := userRepo.GetByID(c.Request.Context(), claims.UserID)
		if err != nil {
			response.AbortError(c, domainerrors.Unauthorized("account no longer exists"))
			return
		}

		c.Set(CurrentUserKey, user)
		c.Next()
	}
}

// CurrentUser gets the authenticated account from context
func CurrentUser(c *gin.Context) (*entities.User, bool) {
	v, exists := c.Get(CurrentUserKey)
	if !exists {
		return nil, false
	}
	return v.(*entities.User), true
}

// RequireAdmin rejects non-admin accounts. Must run after AuthMiddleware.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			response.AbortError(c, domainerrors.Unauthorized("authentication required"))
			return
		}
		if !user.IsAdmin {
			response.AbortError(c, domainerrors.Forbidden("admin access required"))
			return
		}
		c.Next()
	}
}

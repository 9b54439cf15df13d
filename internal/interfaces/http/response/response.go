package response

import (
	"errors"

	"github.com/gin-gonic/gin"
	domainerrors "ridetogether.backend/internal/domain/errors"
)

// Success sends a success response
func Success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}

// Error sends an error envelope derived from the error's taxonomy
func Error(c *gin.Context, err error) {
	var appErr *domainerrors.AppError
	if !errors.As(err, &appErr) {
		appErr = fromSentinel(err)
	}

	c.JSON(appErr.Status, gin.H{
		"success": false,
		"code":    appErr.Code,
		"message": appErr.Message,
	})
}

// fromSentinel maps bare domain sentinels (as repositories return them)
// to their HTTP taxonomy. Anything unrecognized is an internal error.
func fromSentinel(err error) *domainerrors.AppError {
	switch {
	case errors.Is(err, domainerrors.ErrNotFound):
		return domainerrors.NotFound("resource not found")
	case errors.Is(err, domainerrors.ErrAlreadyExists):
		return domainerrors.Conflict("resource already exists")
	case errors.Is(err, domainerrors.ErrInvalidInput):
		return domainerrors.BadRequest("invalid input")
	case errors.Is(err, domainerrors.ErrUnauthorized):
		return domainerrors.Unauthorized("unauthorized")
	case errors.Is(err, domainerrors.ErrForbidden):
		return domainerrors.Forbidden("forbidden")
	case errors.Is(err, domainerrors.ErrInvalidCredentials):
		return domainerrors.InvalidCredentials("invalid credentials")
	case errors.Is(err, domainerrors.ErrRateLimited):
		return domainerrors.TooManyRequests("rate limit exceeded")
	case errors.Is(err, domainerrors.ErrUnavailable):
		return domainerrors.Unavailable("service unavailable")
	default:
		return domainerrors.InternalError(err)
	}
}

// AbortError sends an error envelope and stops the handler chain
func AbortError(c *gin.Context, err error) {
	Error(c, err)
	c.Abort()
}

// BindError maps a request-binding failure to a validation envelope
func BindError(c *gin.Context, err error) {
	Error(c, domainerrors.BadRequest(err.Error()))
}

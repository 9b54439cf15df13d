package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"ridetogether.backend/internal/domain/entities"
	domainerrors "ridetogether.backend/internal/domain/errors"
	"ridetogether.backend/internal/domain/repositories"
	"ridetogether.backend/internal/interfaces/http/response"
)

// RideKey is the context key for the ride loaded by the ownership gate
const RideKey = "ride"

// RequireRideOwner loads the ride named by the :id path param and rejects
// callers who do not own it. Absence is reported before ownership, so a
// non-owner probing a missing id sees 404, not 403. Must run after
// AuthMiddleware.
func RequireRideOwner(rideRepo repositories.RideRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			response.AbortError(c, domainerrors.Unauthorized("authentication required"))
			return
		}

		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			response.AbortError(c, domainerrors.BadRequest("invalid ride id"))
			return
		}

		ride, err := rideRepo.GetByID(c.Request.Context(), id)
		if err != nil {
			response.AbortError(c, domainerrors.NotFound("ride not found"))
			return
		}
		if ride.Rider != user.ID {
			response.AbortError(c, domainerrors.Forbidden("you do not own this ride"))
			return
		}

		c.Set(RideKey, ride)
		c.Next()
	}
}

// RideFromContext gets the ride loaded by RequireRideOwner
func RideFromContext(c *gin.Context) (*entities.Ride, bool) {
	v, exists := c.Get(RideKey)
	if !exists {
		return nil, false
	}
	return v.(*entities.Ride), true
}

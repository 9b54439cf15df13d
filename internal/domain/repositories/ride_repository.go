package repositories

import (
	"context"

	"github.com/google/uuid"
	"ridetogether.backend/internal/domain/entities"
)

// RideRepository defines ride listing data operations
type RideRepository interface {
	Create(ctx context.Context, ride *entities.Ride) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Ride, error)
	// ListActive returns active listings newest first, owner-populated,
	// capped at limit (0 = uncapped).
	ListActive(ctx context.Context, limit int) ([]*entities.Ride, error)
	ListByRider(ctx context.Context, riderID uuid.UUID) ([]*entities.Ride, error)
	// Filter returns active listings matching the route/criteria filter,
	// newest first, owner-populated.
	Filter(ctx context.Context, filter *entities.RideFilter) ([]*entities.Ride, error)
	// ListAll returns listings of every status with moderator attribution,
	// newest first, paginated (limit 0 = all).
	ListAll(ctx context.Context, limit, offset int) ([]*entities.Ride, int64, error)
	Update(ctx context.Context, ride *entities.Ride) error
	Delete(ctx context.Context, id uuid.UUID) error
}

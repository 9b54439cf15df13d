package usecases

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"ridetogether.backend/internal/domain/entities"
	domainerrors "ridetogether.backend/internal/domain/errors"
	"ridetogether.backend/internal/domain/repositories"
	"ridetogether.backend/pkg/utils"
)

// PublicListingCap bounds the anonymous browse endpoint
const PublicListingCap = 50

// RideUsecase handles ride listing business logic
type RideUsecase struct {
	rideRepo repositories.RideRepository
}

// NewRideUsecase creates a new ride usecase
func NewRideUsecase(rideRepo repositories.RideRepository) *RideUsecase {
	return &RideUsecase{rideRepo: rideRepo}
}

// CreateRide validates and persists a new listing for a rider
func (u *RideUsecase) CreateRide(ctx context.Context, riderID uuid.UUID, input *entities.CreateRideInput) (*entities.Ride, error) {
	if err := validateCreateRide(input); err != nil {
		return nil, err
	}

	ride := &entities.Ride{
		Rider:                  riderID,
		StartingPoint:          input.StartingPoint,
		Destination:            input.Destination,
		IsNustStart:            input.IsNustStart,
		IsNustDest:             input.IsNustDest,
		Stops:                  input.Stops,
		RideFrequency:          input.RideFrequency,
		DaysAvailable:          input.DaysAvailable,
		TripType:               input.TripType,
		DepartureTime:          input.DepartureTime,
		Price:                  input.Price,
		VehicleType:            input.VehicleType,
		VehicleDetails:         input.VehicleDetails,
		Preferences:            input.Preferences,
		AdditionalInfo:         input.AdditionalInfo,
		UserName:               input.UserName,
		StudentID:              input.StudentID,
		PhoneNumber:            input.PhoneNumber,
		IsPrimaryWhatsapp:      input.IsPrimaryWhatsapp,
		Email:                  input.Email,
		PreferredContactMethod: input.PreferredContactMethod,
		ShareContactConsent:    input.ShareContactConsent,
		Status:                 entities.RideActive,
		ModerationStatus:       entities.ModerationApproved,
	}
	if input.ReturnTime != "" {
		ride.ReturnTime = null.StringFrom(input.ReturnTime)
	}
	if input.PassengerCapacity != "" {
		ride.PassengerCapacity = null.StringFrom(input.PassengerCapacity)
	}

	if err := u.rideRepo.Create(ctx, ride); err != nil {
		return nil, err
	}
	return ride, nil
}

// validateCreateRide checks required fields in a fixed order; the first
// failure wins.
func validateCreateRide(input *entities.CreateRideInput) error {
	if strings.TrimSpace(input.StartingPoint) == "" || strings.TrimSpace(input.Destination) == "" {
		return domainerrors.BadRequest("starting point and destination are required")
	}
	if !input.IsNustStart && !input.IsNustDest {
		return domainerrors.BadRequest("either starting point or destination must be NUST")
	}
	if len(input.DaysAvailable) == 0 {
		return domainerrors.BadRequest("at least one available day is required")
	}
	if input.TripType == entities.TripRoundTrip && strings.TrimSpace(input.ReturnTime) == "" {
		return domainerrors.BadRequest("return time is required for round trips")
	}
	if !input.ShareContactConsent {
		return domainerrors.BadRequest("contact sharing consent is required")
	}
	if strings.TrimSpace(input.UserName) == "" || strings.TrimSpace(input.StudentID) == "" || strings.TrimSpace(input.PhoneNumber) == "" {
		return domainerrors.BadRequest("name, student ID and phone number are required")
	}
	if strings.TrimSpace(input.VehicleDetails) == "" {
		return domainerrors.BadRequest("vehicle details are required")
	}
	if input.VehicleType == entities.VehicleCar && strings.TrimSpace(input.PassengerCapacity) == "" {
		return domainerrors.BadRequest("passenger capacity is required for car rides")
	}
	return nil
}

// ListActiveRides returns the public browse feed
func (u *RideUsecase) ListActiveRides(ctx context.Context) ([]*entities.Ride, error) {
	return u.rideRepo.ListActive(ctx, PublicListingCap)
}

// ListMyRides returns every listing owned by the rider
func (u *RideUsecase) ListMyRides(ctx context.Context, riderID uuid.UUID) ([]*entities.Ride, error) {
	return u.rideRepo.ListByRider(ctx, riderID)
}

// FilterRides searches active listings by route and criteria
func (u *RideUsecase) FilterRides(ctx context.Context, filter *entities.RideFilter) ([]*entities.Ride, error) {
	return u.rideRepo.Filter(ctx, filter)
}

// GetRide returns one listing by id
func (u *RideUsecase) GetRide(ctx context.Context, id uuid.UUID) (*entities.Ride, error) {
	return u.rideRepo.GetByID(ctx, id)
}

// UpdateRide applies a sparse patch to a listing. Patched fields are
// validated individually; the merged document is not re-checked against
// the creation rules.
func (u *RideUsecase) UpdateRide(ctx context.Context, id uuid.UUID, patch *entities.UpdateRideInput) (*entities.Ride, error) {
	ride, err := u.rideRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.RideFrequency != nil && !entities.ValidFrequency(*patch.RideFrequency) {
		return nil, domainerrors.BadRequest("invalid ride frequency")
	}
	if patch.TripType != nil && !entities.ValidTripType(*patch.TripType) {
		return nil, domainerrors.BadRequest("invalid trip type")
	}
	if patch.VehicleType != nil && !entities.ValidVehicleType(*patch.VehicleType) {
		return nil, domainerrors.BadRequest("invalid vehicle type")
	}
	if patch.PreferredContactMethod != nil && !entities.ValidContactMethod(*patch.PreferredContactMethod) {
		return nil, domainerrors.BadRequest("invalid contact method")
	}
	if patch.Status != nil && !entities.ValidRideStatus(*patch.Status) {
		return nil, domainerrors.BadRequest("invalid ride status")
	}

	applyRidePatch(ride, patch)

	if err := u.rideRepo.Update(ctx, ride); err != nil {
		return nil, err
	}
	return u.rideRepo.GetByID(ctx, id)
}

func applyRidePatch(ride *entities.Ride, patch *entities.UpdateRideInput) {
	if patch.StartingPoint != nil {
		ride.StartingPoint = *patch.StartingPoint
	}
	if patch.Destination != nil {
		ride.Destination = *patch.Destination
	}
	if patch.IsNustStart != nil {
		ride.IsNustStart = *patch.IsNustStart
	}
	if patch.IsNustDest != nil {
		ride.IsNustDest = *patch.IsNustDest
	}
	if patch.Stops != nil {
		ride.Stops = *patch.Stops
	}
	if patch.RideFrequency != nil {
		ride.RideFrequency = *patch.RideFrequency
	}
	if patch.DaysAvailable != nil {
		ride.DaysAvailable = *patch.DaysAvailable
	}
	if patch.TripType != nil {
		ride.TripType = *patch.TripType
	}
	if patch.DepartureTime != nil {
		ride.DepartureTime = *patch.DepartureTime
	}
	if patch.ReturnTime != nil {
		ride.ReturnTime = null.StringFrom(*patch.ReturnTime)
	}
	if patch.Price != nil {
		ride.Price = *patch.Price
	}
	if patch.VehicleType != nil {
		ride.VehicleType = *patch.VehicleType
	}
	if patch.VehicleDetails != nil {
		ride.VehicleDetails = *patch.VehicleDetails
	}
	if patch.PassengerCapacity != nil {
		ride.PassengerCapacity = null.StringFrom(*patch.PassengerCapacity)
	}
	if patch.Preferences != nil {
		ride.Preferences = *patch.Preferences
	}
	if patch.AdditionalInfo != nil {
		ride.AdditionalInfo = *patch.AdditionalInfo
	}
	if patch.UserName != nil {
		ride.UserName = *patch.UserName
	}
	if patch.StudentID != nil {
		ride.StudentID = *patch.StudentID
	}
	if patch.PhoneNumber != nil {
		ride.PhoneNumber = *patch.PhoneNumber
	}
	if patch.IsPrimaryWhatsapp != nil {
		ride.IsPrimaryWhatsapp = *patch.IsPrimaryWhatsapp
	}
	if patch.Email != nil {
		ride.Email = *patch.Email
	}
	if patch.PreferredContactMethod != nil {
		ride.PreferredContactMethod = *patch.PreferredContactMethod
	}
	if patch.Status != nil {
		ride.Status = *patch.Status
	}
}

// DeleteRide removes a listing
func (u *RideUsecase) DeleteRide(ctx context.Context, id uuid.UUID) error {
	return u.rideRepo.Delete(ctx, id)
}

// ListAllRidesForAdmin returns every listing with moderator attribution
func (u *RideUsecase) ListAllRidesForAdmin(ctx context.Context, params utils.PaginationParams) ([]*entities.Ride, utils.PaginationMeta, error) {
	rides, total, err := u.rideRepo.ListAll(ctx, params.Limit, params.CalculateOffset())
	if err != nil {
		return nil, utils.PaginationMeta{}, err
	}
	meta := utils.CalculateMeta(total, params.Page, params.Limit)
	return rides, meta, nil
}

// FlagRide marks a listing for review without touching its lifecycle state
func (u *RideUsecase) FlagRide(ctx context.Context, id, adminID uuid.UUID, reason string) (*entities.Ride, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, domainerrors.BadRequest("flag reason is required")
	}

	ride, err := u.rideRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	ride.IsFlagged = true
	ride.FlagReason = reason
	ride.LastModeratedBy = null.StringFrom(adminID.String())
	ride.LastModeratedAt = null.TimeFrom(time.Now())

	if err := u.rideRepo.Update(ctx, ride); err != nil {
		return nil, err
	}
	return ride, nil
}

// ModerateRide applies an admin review decision.
//
// pending keeps the listing visible but flagged; approved clears the flag
// without resurrecting a cancelled listing; rejected clears the flag and
// cancels the listing for good.
func (u *RideUsecase) ModerateRide(ctx context.Context, id, adminID uuid.UUID, decision entities.ModerationStatus, notes string) (*entities.Ride, error) {
	if !entities.ValidModerationStatus(decision) {
		return nil, domainerrors.BadRequest("invalid moderation status")
	}

	ride, err := u.rideRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	ride.ModerationStatus = decision
	// Only a pending decision keeps the flag raised
	ride.IsFlagged = decision == entities.ModerationPending
	if decision == entities.ModerationRejected {
		ride.Status = entities.RideCancelled
	}
	if strings.TrimSpace(notes) != "" {
		ride.AdminNotes = notes
	}
	ride.LastModeratedBy = null.StringFrom(adminID.String())
	ride.LastModeratedAt = null.TimeFrom(time.Now())

	if err := u.rideRepo.Update(ctx, ride); err != nil {
		return nil, err
	}
	return ride, nil
}

// AdminDeleteRide removes any listing regardless of owner
func (u *RideUsecase) AdminDeleteRide(ctx context.Context, id uuid.UUID) error {
	return u.rideRepo.Delete(ctx, id)
}

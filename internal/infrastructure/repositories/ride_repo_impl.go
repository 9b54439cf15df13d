package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"ridetogether.backend/internal/domain/entities"
	domainerrors "ridetogether.backend/internal/domain/errors"
	"ridetogether.backend/internal/infrastructure/models"
)

// RideRepository implements ride listing data operations
type RideRepository struct {
	db *gorm.DB
}

// NewRideRepository creates a new ride repository
func NewRideRepository(db *gorm.DB) *RideRepository {
	return &RideRepository{db: db}
}

// Create persists a new listing
func (r *RideRepository) Create(ctx context.Context, ride *entities.Ride) error {
	m, err := rideToModel(ride)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	ride.ID = m.ID
	ride.CreatedAt = m.CreatedAt
	ride.UpdatedAt = m.UpdatedAt
	return nil
}

// GetByID gets a listing by id, owner-populated
func (r *RideRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Ride, error) {
	var m models.Ride
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	ride, err := rideToEntity(&m)
	if err != nil {
		return nil, err
	}
	if err := r.populateUsers(ctx, []*entities.Ride{ride}, false); err != nil {
		return nil, err
	}
	return ride, nil
}

// ListActive returns active listings newest first, capped at limit
func (r *RideRepository) ListActive(ctx context.Context, limit int) ([]*entities.Ride, error) {
	query := r.db.WithContext(ctx).
		Where("status = ?", string(entities.RideActive)).
		Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var rideModels []models.Ride
	if err := query.Find(&rideModels).Error; err != nil {
		return nil, err
	}
	rides, err := ridesToEntities(rideModels)
	if err != nil {
		return nil, err
	}
	if err := r.populateUsers(ctx, rides, false); err != nil {
		return nil, err
	}
	return rides, nil
}

// ListByRider returns every listing owned by a rider, newest first
func (r *RideRepository) ListByRider(ctx context.Context, riderID uuid.UUID) ([]*entities.Ride, error) {
	var rideModels []models.Ride
	err := r.db.WithContext(ctx).
		Where("rider_id = ?", riderID).
		Order("created_at DESC").
		Find(&rideModels).Error
	if err != nil {
		return nil, err
	}
	return ridesToEntities(rideModels)
}

// Filter returns active listings matching the route criteria, newest first.
//
// The route match is a four-clause disjunction of case-insensitive substring
// tests over startingPoint/destination/stops; the last clause accepts either
// search term appearing anywhere among the stops. It approximates "does the
// declared route touch the endpoints", not graph reachability.
func (r *RideRepository) Filter(ctx context.Context, filter *entities.RideFilter) ([]*entities.Ride, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Ride{}).
		Where("status = ?", string(entities.RideActive))

	start := strings.ToLower(strings.TrimSpace(filter.StartingPoint))
	dest := strings.ToLower(strings.TrimSpace(filter.Destination))

	switch {
	case start != "" && dest != "":
		s, d := "%"+start+"%", "%"+dest+"%"
		query = query.Where(
			`(LOWER(starting_point) LIKE ? AND LOWER(destination) LIKE ?)
			 OR (LOWER(starting_point) LIKE ? AND LOWER(stops) LIKE ?)
			 OR (LOWER(stops) LIKE ? AND LOWER(destination) LIKE ?)
			 OR (LOWER(stops) LIKE ? OR LOWER(stops) LIKE ?)`,
			s, d, s, d, s, d, s, d)
	case start != "":
		s := "%" + start + "%"
		query = query.Where(`LOWER(starting_point) LIKE ? OR LOWER(stops) LIKE ?`, s, s)
	case dest != "":
		d := "%" + dest + "%"
		query = query.Where(`LOWER(destination) LIKE ? OR LOWER(stops) LIKE ?`, d, d)
	}

	if filter.IsNustStart != nil {
		query = query.Where("is_nust_start = ?", *filter.IsNustStart)
	}
	if filter.IsNustDest != nil {
		query = query.Where("is_nust_dest = ?", *filter.IsNustDest)
	}
	if len(filter.DaysAvailable) > 0 {
		// Exact element intersection: rewrite the array's text form
		// ({Monday,Wednesday}) to ,monday,wednesday, and match whole
		// tokens, so "sun" does not hit "Sunday".
		var clauses []string
		var args []interface{}
		for _, day := range filter.DaysAvailable {
			clauses = append(clauses, "REPLACE(REPLACE(LOWER(days_available), '{', ','), '}', ',') LIKE ?")
			args = append(args, "%,"+strings.ToLower(strings.TrimSpace(day))+",%")
		}
		query = query.Where(strings.Join(clauses, " OR "), args...)
	}
	if filter.VehicleType != "" {
		query = query.Where("vehicle_type = ?", filter.VehicleType)
	}

	var rideModels []models.Ride
	if err := query.Order("created_at DESC").Find(&rideModels).Error; err != nil {
		return nil, err
	}
	rides, err := ridesToEntities(rideModels)
	if err != nil {
		return nil, err
	}
	if err := r.populateUsers(ctx, rides, false); err != nil {
		return nil, err
	}
	return rides, nil
}

// ListAll returns listings of every status with moderator attribution,
// newest first, paginated
func (r *RideRepository) ListAll(ctx context.Context, limit, offset int) ([]*entities.Ride, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Ride{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := r.db.WithContext(ctx).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}

	var rideModels []models.Ride
	if err := query.Find(&rideModels).Error; err != nil {
		return nil, 0, err
	}
	rides, err := ridesToEntities(rideModels)
	if err != nil {
		return nil, 0, err
	}
	if err := r.populateUsers(ctx, rides, true); err != nil {
		return nil, 0, err
	}
	return rides, total, nil
}

// Update rewrites a listing from its entity state
func (r *RideRepository) Update(ctx context.Context, ride *entities.Ride) error {
	m, err := rideToModel(ride)
	if err != nil {
		return err
	}
	result := r.db.WithContext(ctx).
		Model(&models.Ride{}).
		Where("id = ?", ride.ID).
		Updates(map[string]interface{}{
			"starting_point":           m.StartingPoint,
			"destination":              m.Destination,
			"is_nust_start":            m.IsNustStart,
			"is_nust_dest":             m.IsNustDest,
			"stops":                    m.Stops,
			"ride_frequency":           m.RideFrequency,
			"days_available":           m.DaysAvailable,
			"trip_type":                m.TripType,
			"departure_time":           m.DepartureTime,
			"return_time":              m.ReturnTime,
			"price":                    m.Price,
			"vehicle_type":             m.VehicleType,
			"vehicle_details":          m.VehicleDetails,
			"passenger_capacity":       m.PassengerCapacity,
			"preferences":              m.Preferences,
			"additional_info":          m.AdditionalInfo,
			"user_name":                m.UserName,
			"student_id":               m.StudentID,
			"phone_number":             m.PhoneNumber,
			"is_primary_whatsapp":      m.IsPrimaryWhatsapp,
			"email":                    m.Email,
			"preferred_contact_method": m.PreferredContactMethod,
			"status":                   m.Status,
			"is_flagged":               m.IsFlagged,
			"flag_reason":              m.FlagReason,
			"moderation_status":        m.ModerationStatus,
			"admin_notes":              m.AdminNotes,
			"last_moderated_by":        m.LastModeratedBy,
			"last_moderated_at":        m.LastModeratedAt,
			"updated_at":               time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// Delete hard-deletes a listing
func (r *RideRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.Ride{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// populateUsers attaches owner (and optionally moderator) summaries in one
// batched user lookup per list.
func (r *RideRepository) populateUsers(ctx context.Context, rides []*entities.Ride, withModerator bool) error {
	if len(rides) == 0 {
		return nil
	}

	idSet := map[uuid.UUID]bool{}
	for _, ride := range rides {
		idSet[ride.Rider] = true
		if withModerator && ride.LastModeratedBy.Valid {
			if modID, err := uuid.Parse(ride.LastModeratedBy.String); err == nil {
				idSet[modID] = true
			}
		}
	}
	ids := make([]uuid.UUID, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}

	var users []models.User
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&users).Error; err != nil {
		return err
	}
	byID := make(map[uuid.UUID]*entities.UserSummary, len(users))
	for i := range users {
		u := users[i]
		byID[u.ID] = &entities.UserSummary{
			ID:        u.ID,
			FirstName: u.FirstName,
			LastName:  u.LastName,
			Email:     u.Email,
		}
	}

	for _, ride := range rides {
		ride.Owner = byID[ride.Rider]
		if withModerator && ride.LastModeratedBy.Valid {
			if modID, err := uuid.Parse(ride.LastModeratedBy.String); err == nil {
				if mod, ok := byID[modID]; ok {
					// Moderator attribution carries no contact details.
					ride.Moderator = &entities.UserSummary{
						ID:        mod.ID,
						FirstName: mod.FirstName,
						LastName:  mod.LastName,
					}
				}
			}
		}
	}
	return nil
}

func ridesToEntities(rideModels []models.Ride) ([]*entities.Ride, error) {
	rides := make([]*entities.Ride, 0, len(rideModels))
	for i := range rideModels {
		ride, err := rideToEntity(&rideModels[i])
		if err != nil {
			return nil, err
		}
		rides = append(rides, ride)
	}
	return rides, nil
}

func rideToModel(ride *entities.Ride) (*models.Ride, error) {
	prefs, err := json.Marshal(ride.Preferences)
	if err != nil {
		return nil, err
	}

	m := &models.Ride{
		ID:                     ride.ID,
		RiderID:                ride.Rider,
		StartingPoint:          ride.StartingPoint,
		Destination:            ride.Destination,
		IsNustStart:            ride.IsNustStart,
		IsNustDest:             ride.IsNustDest,
		Stops:                  ride.Stops,
		RideFrequency:          string(ride.RideFrequency),
		DaysAvailable:          ride.DaysAvailable,
		TripType:               string(ride.TripType),
		DepartureTime:          ride.DepartureTime,
		Price:                  ride.Price,
		VehicleType:            string(ride.VehicleType),
		VehicleDetails:         ride.VehicleDetails,
		Preferences:            string(prefs),
		AdditionalInfo:         ride.AdditionalInfo,
		UserName:               ride.UserName,
		StudentID:              ride.StudentID,
		PhoneNumber:            ride.PhoneNumber,
		IsPrimaryWhatsapp:      ride.IsPrimaryWhatsapp,
		Email:                  ride.Email,
		PreferredContactMethod: string(ride.PreferredContactMethod),
		ShareContactConsent:    ride.ShareContactConsent,
		Status:                 string(ride.Status),
		IsFlagged:              ride.IsFlagged,
		FlagReason:             ride.FlagReason,
		ModerationStatus:       string(ride.ModerationStatus),
		AdminNotes:             ride.AdminNotes,
	}
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if ride.ReturnTime.Valid {
		m.ReturnTime = &ride.ReturnTime.String
	}
	if ride.PassengerCapacity.Valid {
		m.PassengerCapacity = &ride.PassengerCapacity.String
	}
	if ride.LastModeratedBy.Valid {
		modID, err := uuid.Parse(ride.LastModeratedBy.String)
		if err != nil {
			return nil, err
		}
		m.LastModeratedBy = &modID
	}
	if ride.LastModeratedAt.Valid {
		t := ride.LastModeratedAt.Time
		m.LastModeratedAt = &t
	}
	return m, nil
}

func rideToEntity(m *models.Ride) (*entities.Ride, error) {
	var prefs entities.RidePreferences
	if m.Preferences != "" && m.Preferences != "{}" {
		if err := json.Unmarshal([]byte(m.Preferences), &prefs); err != nil {
			return nil, err
		}
	}

	ride := &entities.Ride{
		ID:                     m.ID,
		Rider:                  m.RiderID,
		StartingPoint:          m.StartingPoint,
		Destination:            m.Destination,
		IsNustStart:            m.IsNustStart,
		IsNustDest:             m.IsNustDest,
		Stops:                  m.Stops,
		RideFrequency:          entities.RideFrequency(m.RideFrequency),
		DaysAvailable:          m.DaysAvailable,
		TripType:               entities.TripType(m.TripType),
		DepartureTime:          m.DepartureTime,
		ReturnTime:             null.StringFromPtr(m.ReturnTime),
		Price:                  m.Price,
		VehicleType:            entities.VehicleType(m.VehicleType),
		VehicleDetails:         m.VehicleDetails,
		PassengerCapacity:      null.StringFromPtr(m.PassengerCapacity),
		Preferences:            prefs,
		AdditionalInfo:         m.AdditionalInfo,
		UserName:               m.UserName,
		StudentID:              m.StudentID,
		PhoneNumber:            m.PhoneNumber,
		IsPrimaryWhatsapp:      m.IsPrimaryWhatsapp,
		Email:                  m.Email,
		PreferredContactMethod: entities.ContactMethod(m.PreferredContactMethod),
		ShareContactConsent:    m.ShareContactConsent,
		Status:                 entities.RideStatus(m.Status),
		IsFlagged:              m.IsFlagged,
		FlagReason:             m.FlagReason,
		ModerationStatus:       entities.ModerationStatus(m.ModerationStatus),
		AdminNotes:             m.AdminNotes,
		CreatedAt:              m.CreatedAt,
		UpdatedAt:              m.UpdatedAt,
	}
	if m.LastModeratedBy != nil {
		ride.LastModeratedBy = null.StringFrom(m.LastModeratedBy.String())
	}
	if m.LastModeratedAt != nil {
		ride.LastModeratedAt = null.TimeFrom(*m.LastModeratedAt)
	}
	return ride, nil
}

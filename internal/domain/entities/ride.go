package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// RideFrequency represents how often a ride repeats
type RideFrequency string

const (
	FrequencyDaily   RideFrequency = "daily"
	FrequencyWeekly  RideFrequency = "weekly"
	FrequencyMonthly RideFrequency = "monthly"
	FrequencyOneTime RideFrequency = "one-time"
)

// TripType represents one-way vs round trips
type TripType string

const (
	TripOneWay    TripType = "one-way"
	TripRoundTrip TripType = "round-trip"
)

// VehicleType represents the offered vehicle
type VehicleType string

const (
	VehicleCar  VehicleType = "car"
	VehicleBike VehicleType = "bike"
)

// ContactMethod represents the rider's preferred contact channel
type ContactMethod string

const (
	ContactWhatsapp ContactMethod = "whatsapp"
	ContactCall     ContactMethod = "call"
	ContactSMS      ContactMethod = "sms"
	ContactEmail    ContactMethod = "email"
)

// RideStatus is the operational lifecycle state of a listing
type RideStatus string

const (
	RideActive    RideStatus = "active"
	RideCompleted RideStatus = "completed"
	RideCancelled RideStatus = "cancelled"
)

// ModerationStatus is the administrative review state, independent of RideStatus
type ModerationStatus string

const (
	ModerationPending  ModerationStatus = "pending"
	ModerationApproved ModerationStatus = "approved"
	ModerationRejected ModerationStatus = "rejected"
)

// CarPreferences are car-specific ride preferences
type CarPreferences struct {
	AirConditioned bool `json:"airConditioned"`
	SmokingAllowed bool `json:"smokingAllowed"`
	PetsAllowed    bool `json:"petsAllowed"`
	MusicAllowed   bool `json:"musicAllowed"`
}

// BikePreferences are bike-specific ride preferences
type BikePreferences struct {
	HelmetProvided    bool `json:"helmetProvided"`
	RainGearAvailable bool `json:"rainGearAvailable"`
}

// RidePreferences nests vehicle-specific preference blocks
type RidePreferences struct {
	Car  CarPreferences  `json:"car"`
	Bike BikePreferences `json:"bike"`
}

// UserSummary is the public owner/moderator attribution on a ride
type UserSummary struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email,omitempty"`
}

// Ride is a carpool offer listing
type Ride struct {
	ID    uuid.UUID `json:"id"`
	Rider uuid.UUID `json:"rider"`

	// Route
	StartingPoint string   `json:"startingPoint"`
	Destination   string   `json:"destination"`
	IsNustStart   bool     `json:"isNustStart"`
	IsNustDest    bool     `json:"isNustDest"`
	Stops         []string `json:"stops"`

	// Schedule
	RideFrequency RideFrequency `json:"rideFrequency"`
	DaysAvailable []string      `json:"daysAvailable"`
	TripType      TripType      `json:"tripType"`
	DepartureTime string        `json:"departureTime"`
	ReturnTime    null.String   `json:"returnTime,omitempty"`
	Price         string        `json:"price"`

	// Vehicle
	VehicleType       VehicleType     `json:"vehicleType"`
	VehicleDetails    string          `json:"vehicleDetails"`
	PassengerCapacity null.String     `json:"passengerCapacity,omitempty"`
	Preferences       RidePreferences `json:"preferences"`
	AdditionalInfo    string          `json:"additionalInfo,omitempty"`

	// Contact
	UserName               string        `json:"userName"`
	StudentID              string        `json:"studentId"`
	PhoneNumber            string        `json:"phoneNumber"`
	IsPrimaryWhatsapp      bool          `json:"isPrimaryWhatsapp"`
	Email                  string        `json:"email,omitempty"`
	PreferredContactMethod ContactMethod `json:"preferredContactMethod"`
	ShareContactConsent    bool          `json:"shareContactConsent"`

	// Lifecycle and moderation
	Status           RideStatus       `json:"status"`
	IsFlagged        bool             `json:"isFlagged"`
	FlagReason       string           `json:"flagReason,omitempty"`
	ModerationStatus ModerationStatus `json:"moderationStatus"`
	AdminNotes       string           `json:"adminNotes,omitempty"`
	LastModeratedBy  null.String      `json:"lastModeratedBy,omitempty"`
	LastModeratedAt  null.Time        `json:"lastModeratedAt,omitempty"`

	// Populated attribution, not persisted as columns
	Owner     *UserSummary `json:"owner,omitempty"`
	Moderator *UserSummary `json:"moderator,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreateRideInput is the payload for posting a listing
type CreateRideInput struct {
	StartingPoint          string          `json:"startingPoint"`
	Destination            string          `json:"destination"`
	IsNustStart            bool            `json:"isNustStart"`
	IsNustDest             bool            `json:"isNustDest"`
	Stops                  []string        `json:"stops"`
	RideFrequency          RideFrequency   `json:"rideFrequency"`
	DaysAvailable          []string        `json:"daysAvailable"`
	TripType               TripType        `json:"tripType"`
	DepartureTime          string          `json:"departureTime"`
	ReturnTime             string          `json:"returnTime"`
	Price                  string          `json:"price"`
	VehicleType            VehicleType     `json:"vehicleType"`
	VehicleDetails         string          `json:"vehicleDetails"`
	PassengerCapacity      string          `json:"passengerCapacity"`
	Preferences            RidePreferences `json:"preferences"`
	AdditionalInfo         string          `json:"additionalInfo"`
	UserName               string          `json:"userName"`
	StudentID              string          `json:"studentId"`
	PhoneNumber            string          `json:"phoneNumber"`
	IsPrimaryWhatsapp      bool            `json:"isPrimaryWhatsapp"`
	Email                  string          `json:"email"`
	PreferredContactMethod ContactMethod   `json:"preferredContactMethod"`
	ShareContactConsent    bool            `json:"shareContactConsent"`
}

// UpdateRideInput is a sparse patch of owner-mutable fields. Nil means
// "leave unchanged"; the merged document is deliberately not re-validated.
type UpdateRideInput struct {
	StartingPoint          *string          `json:"startingPoint"`
	Destination            *string          `json:"destination"`
	IsNustStart            *bool            `json:"isNustStart"`
	IsNustDest             *bool            `json:"isNustDest"`
	Stops                  *[]string        `json:"stops"`
	RideFrequency          *RideFrequency   `json:"rideFrequency"`
	DaysAvailable          *[]string        `json:"daysAvailable"`
	TripType               *TripType        `json:"tripType"`
	DepartureTime          *string          `json:"departureTime"`
	ReturnTime             *string          `json:"returnTime"`
	Price                  *string          `json:"price"`
	VehicleType            *VehicleType     `json:"vehicleType"`
	VehicleDetails         *string          `json:"vehicleDetails"`
	PassengerCapacity      *string          `json:"passengerCapacity"`
	Preferences            *RidePreferences `json:"preferences"`
	AdditionalInfo         *string          `json:"additionalInfo"`
	UserName               *string          `json:"userName"`
	StudentID              *string          `json:"studentId"`
	PhoneNumber            *string          `json:"phoneNumber"`
	IsPrimaryWhatsapp      *bool            `json:"isPrimaryWhatsapp"`
	Email                  *string          `json:"email"`
	PreferredContactMethod *ContactMethod   `json:"preferredContactMethod"`
	Status                 *RideStatus      `json:"status"`
}

// RideFilter narrows the public listing search. Start/Destination are
// case-insensitive substring terms matched against the declared route.
type RideFilter struct {
	StartingPoint string   `form:"startingPoint"`
	Destination   string   `form:"destination"`
	IsNustStart   *bool    `form:"isNustStart"`
	IsNustDest    *bool    `form:"isNustDest"`
	DaysAvailable []string `form:"-"`
	VehicleType   string   `form:"vehicleType"`
}

// ValidFrequency reports enum membership
func ValidFrequency(f RideFrequency) bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly, FrequencyOneTime:
		return true
	}
	return false
}

// ValidTripType reports enum membership
func ValidTripType(t TripType) bool {
	return t == TripOneWay || t == TripRoundTrip
}

// ValidVehicleType reports enum membership
func ValidVehicleType(v VehicleType) bool {
	return v == VehicleCar || v == VehicleBike
}

// ValidContactMethod reports enum membership
func ValidContactMethod(m ContactMethod) bool {
	switch m {
	case ContactWhatsapp, ContactCall, ContactSMS, ContactEmail:
		return true
	}
	return false
}

// ValidRideStatus reports enum membership
func ValidRideStatus(s RideStatus) bool {
	switch s {
	case RideActive, RideCompleted, RideCancelled:
		return true
	}
	return false
}

// ValidModerationStatus reports enum membership
func ValidModerationStatus(s ModerationStatus) bool {
	switch s {
	case ModerationPending, ModerationApproved, ModerationRejected:
		return true
	}
	return false
}

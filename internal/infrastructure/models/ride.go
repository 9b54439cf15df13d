package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type Ride struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	RiderID uuid.UUID `gorm:"type:uuid;not null;index"`

	StartingPoint string         `gorm:"type:varchar(255);not null"`
	Destination   string         `gorm:"type:varchar(255);not null"`
	IsNustStart   bool           `gorm:"not null;default:false"`
	IsNustDest    bool           `gorm:"not null;default:false"`
	// Array fields use pq's text encoding in a plain text column so the
	// route filter can substring-match them with LIKE on any dialect.
	Stops pq.StringArray `gorm:"type:text;default:'{}'"`

	RideFrequency string         `gorm:"type:varchar(20);not null;default:'monthly'"`
	DaysAvailable pq.StringArray `gorm:"type:text;not null"`
	TripType      string         `gorm:"type:varchar(20);not null;default:'round-trip'"`
	DepartureTime string         `gorm:"type:varchar(50);not null"`
	ReturnTime    *string        `gorm:"type:varchar(50)"`
	Price         string         `gorm:"type:varchar(50);not null"`

	VehicleType       string  `gorm:"type:varchar(10);not null;default:'car'"`
	VehicleDetails    string  `gorm:"type:varchar(255);not null"`
	PassengerCapacity *string `gorm:"type:varchar(10)"`
	Preferences       string  `gorm:"type:jsonb;default:'{}'"`
	AdditionalInfo    string  `gorm:"type:text"`

	UserName               string `gorm:"type:varchar(100);not null"`
	StudentID              string `gorm:"type:varchar(50);not null"`
	PhoneNumber            string `gorm:"type:varchar(30);not null"`
	IsPrimaryWhatsapp      bool   `gorm:"not null;default:false"`
	Email                  string `gorm:"type:varchar(255)"`
	PreferredContactMethod string `gorm:"type:varchar(20);not null;default:'whatsapp'"`
	ShareContactConsent    bool   `gorm:"not null"`

	Status           string     `gorm:"type:varchar(20);not null;default:'active';index"`
	IsFlagged        bool       `gorm:"not null;default:false"`
	FlagReason       string     `gorm:"type:text;default:''"`
	ModerationStatus string     `gorm:"type:varchar(20);not null;default:'approved'"`
	AdminNotes       string     `gorm:"type:text;default:''"`
	LastModeratedBy  *uuid.UUID `gorm:"type:uuid"`
	LastModeratedAt  *time.Time

	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time
}

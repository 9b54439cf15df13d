package models

import (
	"time"

	"github.com/google/uuid"
)

type OTP struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	Email     string    `gorm:"type:varchar(255);not null;index"`
	Code      string    `gorm:"type:varchar(6);not null"`
	Purpose   string    `gorm:"type:varchar(20);not null"`
	State     string    `gorm:"type:varchar(10);not null;default:'issued'"`
	ExpiresAt time.Time `gorm:"not null;index"`
	CreatedAt time.Time
}

func (OTP) TableName() string {
	return "otps"
}

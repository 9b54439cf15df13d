package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"ridetogether.backend/internal/domain/entities"
	domainerrors "ridetogether.backend/internal/domain/errors"
	"ridetogether.backend/internal/infrastructure/models"
)

// OTPRepository implements the one-time passcode ledger
type OTPRepository struct {
	db *gorm.DB
}

// NewOTPRepository creates a new OTP repository
func NewOTPRepository(db *gorm.DB) *OTPRepository {
	return &OTPRepository{db: db}
}

// Create persists a freshly issued code
func (r *OTPRepository) Create(ctx context.Context, otp *entities.OTP) error {
	if otp.ID == uuid.Nil {
		otp.ID = uuid.New()
	}
	m := &models.OTP{
		ID:        otp.ID,
		Email:     otp.Email,
		Code:      otp.Code,
		Purpose:   string(otp.Purpose),
		State:     string(otp.State),
		ExpiresAt: otp.ExpiresAt,
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	otp.CreatedAt = m.CreatedAt
	return nil
}

// Find returns the newest unexpired code matching email/code/purpose in the
// given state, or ErrNotFound.
func (r *OTPRepository) Find(ctx context.Context, email, code string, purpose entities.OTPPurpose, state entities.OTPState) (*entities.OTP, error) {
	var m models.OTP
	err := r.db.WithContext(ctx).
		Where("email = ? AND code = ? AND purpose = ? AND state = ? AND expires_at > ?",
			email, code, string(purpose), string(state), time.Now()).
		Order("created_at DESC").
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return otpToEntity(&m), nil
}

// Advance transitions a matching unexpired row from one lifecycle state to
// the next. The state predicate in the WHERE clause is what makes the code
// single-use under concurrent attempts: the losing request affects zero rows.
func (r *OTPRepository) Advance(ctx context.Context, email, code string, purpose entities.OTPPurpose, from, to entities.OTPState) error {
	result := r.db.WithContext(ctx).
		Model(&models.OTP{}).
		Where("email = ? AND code = ? AND purpose = ? AND state = ? AND expires_at > ?",
			email, code, string(purpose), string(from), time.Now()).
		Update("state", string(to))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// DeleteExpired removes rows past their validity window
func (r *OTPRepository) DeleteExpired(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("expires_at <= ?", time.Now()).
		Delete(&models.OTP{})
	return result.RowsAffected, result.Error
}

func otpToEntity(m *models.OTP) *entities.OTP {
	return &entities.OTP{
		ID:        m.ID,
		Email:     m.Email,
		Code:      m.Code,
		Purpose:   entities.OTPPurpose(m.Purpose),
		State:     entities.OTPState(m.State),
		ExpiresAt: m.ExpiresAt,
		CreatedAt: m.CreatedAt,
	}
}

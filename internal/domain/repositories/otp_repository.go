package repositories

import (
	"context"

	"ridetogether.backend/internal/domain/entities"
)

// OTPRepository defines one-time passcode ledger operations.
//
// The state transitions are guarded: Advance succeeds only when the row
// still holds the expected current state and has not expired, so a lost
// race surfaces as ErrNotFound rather than a double consumption.
type OTPRepository interface {
	Create(ctx context.Context, otp *entities.OTP) error
	// Find returns the newest unexpired code matching email/code/purpose in
	// the given state, or ErrNotFound.
	Find(ctx context.Context, email, code string, purpose entities.OTPPurpose, state entities.OTPState) (*entities.OTP, error)
	// Advance transitions a matching unexpired row from one state to the
	// next. ErrNotFound when no such row remains.
	Advance(ctx context.Context, email, code string, purpose entities.OTPPurpose, from, to entities.OTPState) error
	// DeleteExpired removes rows past their validity window (hygiene only;
	// expiry is independently enforced by Find/Advance).
	DeleteExpired(ctx context.Context) (int64, error)
}

package entities

import (
	"time"

	"github.com/google/uuid"
)

// OTPPurpose distinguishes the flow a code was issued for
type OTPPurpose string

const (
	OTPPurposeRegister      OTPPurpose = "register"
	OTPPurposePasswordReset OTPPurpose = "password_reset"
)

// OTPState is the lifecycle state of a code. A code is issued, may be
// verified (reset flow intermediate step), and is consumed exactly once.
type OTPState string

const (
	OTPStateIssued   OTPState = "issued"
	OTPStateVerified OTPState = "verified"
	OTPStateConsumed OTPState = "consumed"
)

// OTPValidity is how long a code stays redeemable after issuance
const OTPValidity = 10 * time.Minute

// OTP is a one-time passcode bound to an email address
type OTP struct {
	ID        uuid.UUID  `json:"id"`
	Email     string     `json:"email"`
	Code      string     `json:"-"`
	Purpose   OTPPurpose `json:"purpose"`
	State     OTPState   `json:"state"`
	ExpiresAt time.Time  `json:"expiresAt"`
	CreatedAt time.Time  `json:"createdAt"`
}

// Expired reports whether the code is past its validity window
func (o *OTP) Expired(now time.Time) bool {
	return !now.Before(o.ExpiresAt)
}

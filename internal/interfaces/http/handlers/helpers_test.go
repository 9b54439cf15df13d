package handlers

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"ridetogether.backend/internal/domain/entities"
	domainerrors "ridetogether.backend/internal/domain/errors"
	"ridetogether.backend/internal/interfaces/http/middleware"
)

type userRepoStub struct {
	getByIDFn     func(ctx context.Context, id uuid.UUID) (*entities.User, error)
	getByEmailFn  func(ctx context.Context, email string) (*entities.User, error)
	getByUserFn   func(ctx context.Context, username string) (*entities.User, error)
	existsFn      func(ctx context.Context, email, username string) (bool, error)
	createFn      func(ctx context.Context, user *entities.User) error
	updateFn      func(ctx context.Context, user *entities.User) error
	updatePwdFn   func(ctx context.Context, id uuid.UUID, hash string) error
}

func (s *userRepoStub) Create(ctx context.Context, user *entities.User) error {
	if s.createFn != nil {
		return s.createFn(ctx, user)
	}
	user.ID = uuid.New()
	return nil
}

func (s *userRepoStub) GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	if s.getByIDFn != nil {
		return s.getByIDFn(ctx, id)
	}
	return nil, domainerrors.ErrNotFound
}

func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	if s.getByEmailFn != nil {
		return s.getByEmailFn(ctx, email)
	}
	return nil, domainerrors.ErrNotFound
}

func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*entities.User, error) {
	if s.getByUserFn != nil {
		return s.getByUserFn(ctx, username)
	}
	return nil, domainerrors.ErrNotFound
}

func (s *userRepoStub) ExistsByEmailOrUsername(ctx context.Context, email, username string) (bool, error) {
	if s.existsFn != nil {
		return s.existsFn(ctx, email, username)
	}
	return false, nil
}

func (s *userRepoStub) Update(ctx context.Context, user *entities.User) error {
	if s.updateFn != nil {
		return s.updateFn(ctx, user)
	}
	return nil
}

func (s *userRepoStub) UpdatePassword(ctx context.Context, id uuid.UUID, hash string) error {
	if s.updatePwdFn != nil {
		return s.updatePwdFn(ctx, id, hash)
	}
	return nil
}

type otpRepoStub struct {
	createFn  func(ctx context.Context, otp *entities.OTP) error
	findFn    func(ctx context.Context, email, code string, purpose entities.OTPPurpose, state entities.OTPState) (*entities.OTP, error)
	advanceFn func(ctx context.Context, email, code string, purpose entities.OTPPurpose, from, to entities.OTPState) error
}

func (s *otpRepoStub) Create(ctx context.Context, otp *entities.OTP) error {
	if s.createFn != nil {
		return s.createFn(ctx, otp)
	}
	return nil
}

func (s *otpRepoStub) Find(ctx context.Context, email, code string, purpose entities.OTPPurpose, state entities.OTPState) (*entities.OTP, error) {
	if s.findFn != nil {
		return s.findFn(ctx, email, code, purpose, state)
	}
	return nil, domainerrors.ErrNotFound
}

func (s *otpRepoStub) Advance(ctx context.Context, email, code string, purpose entities.OTPPurpose, from, to entities.OTPState) error {
	if s.advanceFn != nil {
		return s.advanceFn(ctx, email, code, purpose, from, to)
	}
	return nil
}

func (s *otpRepoStub) DeleteExpired(context.Context) (int64, error) { return 0, nil }

type rideRepoStub struct {
	createFn     func(ctx context.Context, ride *entities.Ride) error
	getByIDFn    func(ctx context.Context, id uuid.UUID) (*entities.Ride, error)
	listActiveFn func(ctx context.Context, limit int) ([]*entities.Ride, error)
	listByFn     func(ctx context.Context, riderID uuid.UUID) ([]*entities.Ride, error)
	filterFn     func(ctx context.Context, filter *entities.RideFilter) ([]*entities.Ride, error)
	listAllFn    func(ctx context.Context, limit, offset int) ([]*entities.Ride, int64, error)
	updateFn     func(ctx context.Context, ride *entities.Ride) error
	deleteFn     func(ctx context.Context, id uuid.UUID) error
}

func (s *rideRepoStub) Create(ctx context.Context, ride *entities.Ride) error {
	if s.createFn != nil {
		return s.createFn(ctx, ride)
	}
	ride.ID = uuid.New()
	return nil
}

func (s *rideRepoStub) GetByID(ctx context.Context, id uuid.UUID) (*entities.Ride, error) {
	if s.getByIDFn != nil {
		return s.getByIDFn(ctx, id)
	}
	return nil, domainerrors.ErrNotFound
}

func (s *rideRepoStub) ListActive(ctx context.Context, limit int) ([]*entities.Ride, error) {
	if s.listActiveFn != nil {
		return s.listActiveFn(ctx, limit)
	}
	return []*entities.Ride{}, nil
}

func (s *rideRepoStub) ListByRider(ctx context.Context, riderID uuid.UUID) ([]*entities.Ride, error) {
	if s.listByFn != nil {
		return s.listByFn(ctx, riderID)
	}
	return []*entities.Ride{}, nil
}

func (s *rideRepoStub) Filter(ctx context.Context, filter *entities.RideFilter) ([]*entities.Ride, error) {
	if s.filterFn != nil {
		return s.filterFn(ctx, filter)
	}
	return []*entities.Ride{}, nil
}

func (s *rideRepoStub) ListAll(ctx context.Context, limit, offset int) ([]*entities.Ride, int64, error) {
	if s.listAllFn != nil {
		return s.listAllFn(ctx, limit, offset)
	}
	return []*entities.Ride{}, 0, nil
}

func (s *rideRepoStub) Update(ctx context.Context, ride *entities.Ride) error {
	if s.updateFn != nil {
		return s.updateFn(ctx, ride)
	}
	return nil
}

func (s *rideRepoStub) Delete(ctx context.Context, id uuid.UUID) error {
	if s.deleteFn != nil {
		return s.deleteFn(ctx, id)
	}
	return nil
}

type mailerStub struct {
	sendOTPFn     func(to, code string) error
	sendResetFn   func(to, code string) error
	sendContactFn func(form *entities.ContactInput) error
}

func (s *mailerStub) SendVerificationOTP(to, code string) error {
	if s.sendOTPFn != nil {
		return s.sendOTPFn(to, code)
	}
	return nil
}

func (s *mailerStub) SendPasswordResetOTP(to, code string) error {
	if s.sendResetFn != nil {
		return s.sendResetFn(to, code)
	}
	return nil
}

func (s *mailerStub) SendContactForm(form *entities.ContactInput) error {
	if s.sendContactFn != nil {
		return s.sendContactFn(form)
	}
	return nil
}

// asUser injects an authenticated account the way AuthMiddleware would.
func asUser(user *entities.User) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.CurrentUserKey, user)
		c.Next()
	}
}

package usecases

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"ridetogether.backend/internal/domain/entities"
	domainerrors "ridetogether.backend/internal/domain/errors"
	"ridetogether.backend/internal/domain/repositories"
	"ridetogether.backend/pkg/crypto"
	"ridetogether.backend/pkg/jwt"
	"ridetogether.backend/pkg/logger"
)

// Mailer dispatches transactional email
type Mailer interface {
	SendVerificationOTP(to, code string) error
	SendPasswordResetOTP(to, code string) error
	SendContactForm(form *entities.ContactInput) error
}

// OTPLimiter bounds code dispatch per email address
type OTPLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// AuthUsecase handles identity and authentication business logic
type AuthUsecase struct {
	userRepo   repositories.UserRepository
	otpRepo    repositories.OTPRepository
	mailer     Mailer
	limiter    OTPLimiter // nil disables rate limiting
	jwtService *jwt.JWTService
}

// NewAuthUsecase creates a new auth usecase
func NewAuthUsecase(
	userRepo repositories.UserRepository,
	otpRepo repositories.OTPRepository,
	mailer Mailer,
	limiter OTPLimiter,
	jwtService *jwt.JWTService,
) *AuthUsecase {
	return &AuthUsecase{
		userRepo:   userRepo,
		otpRepo:    otpRepo,
		mailer:     mailer,
		limiter:    limiter,
		jwtService: jwtService,
	}
}

// RequestOTP issues a signup verification code to an unregistered email
func (u *AuthUsecase) RequestOTP(ctx context.Context, email string) error {
	// Signup codes only go to addresses without an account
	_, err := u.userRepo.GetByEmail(ctx, email)
	if err == nil {
		return domainerrors.Conflict("email already registered")
	}
	if !errors.Is(err, domainerrors.ErrNotFound) {
		return err
	}

	if err := u.checkRateLimit(ctx, email); err != nil {
		return err
	}

	return u.issueAndSend(ctx, email, entities.OTPPurposeRegister)
}

// Register creates an account after consuming a valid signup code
func (u *AuthUsecase) Register(ctx context.Context, input *entities.RegisterInput) (*entities.AuthResponse, error) {
	_, err := u.otpRepo.Find(ctx, input.Email, input.OTP, entities.OTPPurposeRegister, entities.OTPStateIssued)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.InvalidCredentials("invalid or expired OTP")
		}
		return nil, err
	}

	taken, err := u.userRepo.ExistsByEmailOrUsername(ctx, input.Email, input.Username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domainerrors.Conflict("email or username already in use")
	}

	passwordHash, err := crypto.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	// Consume the code before creating the user so concurrent submissions
	// of the same code cannot both register.
	err = u.otpRepo.Advance(ctx, input.Email, input.OTP, entities.OTPPurposeRegister,
		entities.OTPStateIssued, entities.OTPStateConsumed)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.InvalidCredentials("invalid or expired OTP")
		}
		return nil, err
	}

	user := &entities.User{
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: passwordHash,
	}
	if err := u.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	token, err := u.jwtService.GenerateToken(user.ID)
	if err != nil {
		return nil, err
	}
	return &entities.AuthResponse{Token: token, User: user}, nil
}

// Login authenticates by username and password
func (u *AuthUsecase) Login(ctx context.Context, input *entities.LoginInput) (*entities.AuthResponse, error) {
	user, err := u.userRepo.GetByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			// Same answer for unknown user and bad password
			return nil, domainerrors.InvalidCredentials("invalid username or password")
		}
		return nil, err
	}
	if !crypto.CheckPassword(input.Password, user.PasswordHash) {
		return nil, domainerrors.InvalidCredentials("invalid username or password")
	}

	token, err := u.jwtService.GenerateToken(user.ID)
	if err != nil {
		return nil, err
	}
	return &entities.AuthResponse{Token: token, User: user}, nil
}

// RequestPasswordReset issues a reset code to a registered email
func (u *AuthUsecase) RequestPasswordReset(ctx context.Context, email string) error {
	if _, err := u.userRepo.GetByEmail(ctx, email); err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return domainerrors.NotFound("no account found with this email")
		}
		return err
	}

	if err := u.checkRateLimit(ctx, email); err != nil {
		return err
	}

	return u.issueAndSend(ctx, email, entities.OTPPurposePasswordReset)
}

// VerifyResetOTP confirms a reset code without consuming it, so the client
// can collect the new password as a separate step.
func (u *AuthUsecase) VerifyResetOTP(ctx context.Context, email, code string) error {
	err := u.otpRepo.Advance(ctx, email, code, entities.OTPPurposePasswordReset,
		entities.OTPStateIssued, entities.OTPStateVerified)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return domainerrors.InvalidCredentials("invalid or expired OTP")
		}
		return err
	}
	return nil
}

// ResetPassword sets a new password after consuming a verified reset code
func (u *AuthUsecase) ResetPassword(ctx context.Context, input *entities.ResetPasswordInput) error {
	user, err := u.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return domainerrors.NotFound("no account found with this email")
		}
		return err
	}

	err = u.otpRepo.Advance(ctx, input.Email, input.OTP, entities.OTPPurposePasswordReset,
		entities.OTPStateVerified, entities.OTPStateConsumed)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return domainerrors.InvalidCredentials("invalid or expired OTP")
		}
		return err
	}

	passwordHash, err := crypto.HashPassword(input.NewPassword)
	if err != nil {
		return err
	}
	return u.userRepo.UpdatePassword(ctx, user.ID, passwordHash)
}

// GetProfile returns the account for an id
func (u *AuthUsecase) GetProfile(ctx context.Context, userID uuid.UUID) (*entities.User, error) {
	return u.userRepo.GetByID(ctx, userID)
}

// UpdateProfile applies a sparse patch to mutable profile fields
func (u *AuthUsecase) UpdateProfile(ctx context.Context, userID uuid.UUID, patch *entities.UpdateProfileInput) (*entities.User, error) {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if patch.FirstName != nil {
		user.FirstName = *patch.FirstName
	}
	if patch.LastName != nil {
		user.LastName = *patch.LastName
	}
	if patch.Phone != nil {
		user.Phone = *patch.Phone
	}
	if patch.Bio != nil {
		user.Bio = *patch.Bio
	}
	if patch.ProfilePicture != nil {
		user.ProfilePicture = *patch.ProfilePicture
	}

	// Empty hash means "keep the stored password"
	user.PasswordHash = ""
	if patch.Password != nil {
		hash, err := crypto.HashPassword(*patch.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}

	if err := u.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return u.userRepo.GetByID(ctx, userID)
}

func (u *AuthUsecase) checkRateLimit(ctx context.Context, email string) error {
	if u.limiter == nil {
		return nil
	}
	allowed, err := u.limiter.Allow(ctx, email)
	if err != nil {
		// Fail open: a broken limiter must not block signups
		logger.Warn(ctx, "OTP rate limiter unavailable", zap.Error(err))
		return nil
	}
	if !allowed {
		return domainerrors.TooManyRequests("too many OTP requests, please try again later")
	}
	return nil
}

func (u *AuthUsecase) issueAndSend(ctx context.Context, email string, purpose entities.OTPPurpose) error {
	code, err := crypto.GenerateOTP()
	if err != nil {
		return err
	}

	otp := &entities.OTP{
		Email:     email,
		Code:      code,
		Purpose:   purpose,
		State:     entities.OTPStateIssued,
		ExpiresAt: time.Now().Add(entities.OTPValidity),
	}
	if err := u.otpRepo.Create(ctx, otp); err != nil {
		return err
	}

	switch purpose {
	case entities.OTPPurposePasswordReset:
		err = u.mailer.SendPasswordResetOTP(email, code)
	default:
		err = u.mailer.SendVerificationOTP(email, code)
	}
	if err != nil {
		// The stored row ages out on its own
		logger.Error(ctx, "failed to send OTP email", zap.Error(err), zap.String("purpose", string(purpose)))
		return domainerrors.Unavailable("failed to send verification email")
	}
	return nil
}

package usecases

import (
	"context"

	"go.uber.org/zap"
	"ridetogether.backend/internal/domain/entities"
	domainerrors "ridetogether.backend/internal/domain/errors"
	"ridetogether.backend/pkg/logger"
)

// ContactUsecase relays contact-form submissions to the support inbox
type ContactUsecase struct {
	mailer Mailer
}

// NewContactUsecase creates a new contact usecase
func NewContactUsecase(mailer Mailer) *ContactUsecase {
	return &ContactUsecase{mailer: mailer}
}

// Submit relays one submission. Field presence is enforced here as well as
// at the binding layer so the usecase stands on its own.
func (u *ContactUsecase) Submit(ctx context.Context, form *entities.ContactInput) error {
	if form.Name == "" || form.Email == "" || form.Subject == "" || form.Message == "" {
		return domainerrors.BadRequest("name, email, subject and message are required")
	}

	if err := u.mailer.SendContactForm(form); err != nil {
		logger.Error(ctx, "failed to relay contact form", zap.Error(err))
		return domainerrors.Unavailable("failed to send message")
	}
	return nil
}

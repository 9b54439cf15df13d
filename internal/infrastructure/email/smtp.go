package email

import (
	"fmt"

	"gopkg.in/gomail.v2"
	"ridetogether.backend/internal/domain/entities"
)

// SMTPConfig holds the SMTP relay settings
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	From      string
	SupportTo string
}

// SMTPMailer sends transactional mail through an SMTP relay
type SMTPMailer struct {
	config SMTPConfig
}

// NewSMTPMailer creates a new SMTP mailer
func NewSMTPMailer(config SMTPConfig) *SMTPMailer {
	return &SMTPMailer{config: config}
}

// SendVerificationOTP delivers a signup verification code
func (s *SMTPMailer) SendVerificationOTP(to, code string) error {
	body := fmt.Sprintf(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #0066cc;">Welcome to RideTogether!</h2>
  <p>Thank you for signing up. To complete your registration, please use the following OTP:</p>
  <div style="background-color: #f5f5f5; padding: 15px; border-radius: 5px; text-align: center; margin: 20px 0;">
    <h1 style="color: #0066cc; margin: 0; font-size: 32px;">%s</h1>
  </div>
  <p>This OTP will expire in 10 minutes.</p>
  <p>If you didn't request this verification, please ignore this email.</p>
  <hr style="border: 1px solid #eee; margin: 20px 0;">
  <p style="color: #666; font-size: 12px;">This is an automated message, please do not reply.</p>
</div>`, code)

	return s.send(to, "", "Verify Your Email - RideTogether", body)
}

// SendPasswordResetOTP delivers a password-reset code
func (s *SMTPMailer) SendPasswordResetOTP(to, code string) error {
	body := fmt.Sprintf(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #0066cc;">Password Reset Request</h2>
  <p>We received a request to reset your RideTogether account password. Use the OTP below to proceed:</p>
  <div style="background-color: #f5f5f5; padding: 15px; border-radius: 5px; text-align: center; margin: 20px 0;">
    <h1 style="color: #dc3545; margin: 0; font-size: 32px;">%s</h1>
  </div>
  <p>This OTP will expire in 10 minutes.</p>
  <p>If you did not request a password reset, you can safely ignore this email. Your password will remain unchanged.</p>
  <hr style="border: 1px solid #eee; margin: 20px 0;">
  <p style="color: #666; font-size: 12px;">This is an automated message, please do not reply.</p>
</div>`, code)

	return s.send(to, "", "Reset Your Password - RideTogether", body)
}

// SendContactForm relays a contact-form submission to the support inbox,
// with Reply-To set to the submitter.
func (s *SMTPMailer) SendContactForm(form *entities.ContactInput) error {
	phone := form.Phone
	if phone == "" {
		phone = "N/A"
	}
	body := fmt.Sprintf(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #0066cc;">New Contact Form Submission</h2>
  <p><strong>Name:</strong> %s</p>
  <p><strong>NUST Email:</strong> %s</p>
  <p><strong>Phone:</strong> %s</p>
  <p><strong>Subject:</strong> %s</p>
  <p><strong>Message:</strong></p>
  <div style="background-color: #f5f5f5; padding: 15px; border-radius: 5px;">%s</div>
  <hr style="border: 1px solid #eee; margin: 20px 0;">
  <p style="color: #666; font-size: 12px;">This is an automated message from the RideTogether contact form.</p>
</div>`, form.Name, form.Email, phone, form.Subject, form.Message)

	subject := fmt.Sprintf("Contact Form Submission: %s", form.Subject)
	return s.send(s.config.SupportTo, form.Email, subject, body)
}

func (s *SMTPMailer) send(to, replyTo, subject, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.config.From)
	m.SetHeader("To", to)
	if replyTo != "" {
		m.SetHeader("Reply-To", replyTo)
	}
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	d := gomail.NewDialer(s.config.Host, s.config.Port, s.config.Username, s.config.Password)
	return d.DialAndSend(m)
}

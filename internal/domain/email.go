package domain

import (
	"context"
	"time"
)

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(ctx context.Context, to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// WelcomeEmailData holds data for the sign-up welcome email.
type WelcomeEmailData struct {
	Email     string
	FirstName string
}

// ReservationReceivedEmailData holds data for the email sent after a reservation is placed.
type ReservationReceivedEmailData struct {
	Email         string
	FirstName     string
	FieldName     string
	ReservationID string
	StartTime     time.Time
	EndTime       time.Time
	HoldMinutes   int
}

// EmailService defines the contract for sending domain-level emails.
type EmailService interface {
	SendWelcome(ctx context.Context, data *WelcomeEmailData) error
	SendReservationReceived(ctx context.Context, data *ReservationReceivedEmailData) error
}

package service

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"kottage-backend/internal/domain"
	"kottage-backend/internal/logger"
)

type sendGridEmailService struct {
	apiKey    string
	fromEmail string
	fromName  string
}

// NewEmailService builds the SendGrid-backed email service. An empty API
// key puts it in dry-run mode: messages are logged and dropped, which keeps
// local development working without credentials.
func NewEmailService(apiKey, fromEmail, fromName string) EmailService {
	return &sendGridEmailService{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (s *sendGridEmailService) send(toEmail, toName, subject, body string) error {
	if s.apiKey == "" {
		logger.Info("Email dry-run (no SendGrid key configured)", "to", toEmail, "subject", subject)
		return nil
	}

	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, recipient, body, "")

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	return nil
}

func (s *sendGridEmailService) SendReservationConfirmation(ctx context.Context, email, guestName string, res *domain.Reservation) error {
	subject := fmt.Sprintf("Booking confirmed - %s", res.Property.Name)
	body := fmt.Sprintf(
		"Hello %s,\n\nYour stay at %s is confirmed.\n\nCheck-in: %s\nCheck-out: %s\nTotal: $%.2f\nConfirmation code: %s\n\nWe look forward to hosting you.",
		guestName, res.Property.Name, res.CheckIn, res.CheckOut, float64(res.TotalCents)/100, res.ID)
	return s.send(email, guestName, subject, body)
}

func (s *sendGridEmailService) SendReservationCancellation(ctx context.Context, email, guestName string, res *domain.Reservation) error {
	subject := fmt.Sprintf("Booking cancelled - %s", res.Property.Name)
	body := fmt.Sprintf(
		"Hello %s,\n\nYour reservation %s at %s (%s to %s) has been cancelled.",
		guestName, res.ID, res.Property.Name, res.CheckIn, res.CheckOut)
	return s.send(email, guestName, subject, body)
}

func (s *sendGridEmailService) SendApprovalRequest(ctx context.Context, ownerEmail, guestName string, res *domain.Reservation) error {
	subject := fmt.Sprintf("New booking request - %s", res.Property.Name)
	body := fmt.Sprintf(
		"%s requested to book %s from %s to %s.\n\nReservation %s is waiting for your approval.",
		guestName, res.Property.Name, res.CheckIn, res.CheckOut, res.ID)
	return s.send(ownerEmail, "", subject, body)
}

func (s *sendGridEmailService) SendReservationDeclined(ctx context.Context, email, guestName, reason string, res *domain.Reservation) error {
	subject := fmt.Sprintf("Booking request declined - %s", res.Property.Name)
	body := fmt.Sprintf(
		"Hello %s,\n\nYour booking request for %s (%s to %s) was declined by the host.",
		guestName, res.Property.Name, res.CheckIn, res.CheckOut)
	if reason != "" {
		body += fmt.Sprintf("\n\nReason: %s", reason)
	}
	return s.send(email, guestName, subject, body)
}

package service

import (
	"context"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/shopspring/decimal"

	"fashionswap-backend/internal/domain"
	"fashionswap-backend/internal/logger"
	"fashionswap-backend/internal/utils"
)

// mailSender is the part of the SendGrid client we use.
type mailSender interface {
	SendWithContext(ctx context.Context, email *mail.SGMailV3) (*rest.Response, error)
}

type emailService struct {
	client mailSender
	from   *mail.Email
}

// NewEmailService sends through SendGrid. With an empty API key the service
// only logs what it would have sent.
func NewEmailService(apiKey, from, fromName string) EmailService {
	svc := &emailService{from: mail.NewEmail(fromName, from)}
	if apiKey != "" {
		svc.client = sendgrid.NewSendClient(apiKey)
	}
	return svc
}

func (s *emailService) SendRentalNotification(ctx context.Context, email, ownerName, itemName string, quote domain.RentalQuote, start, end time.Time) error {
	subject := fmt.Sprintf("Your %s has been rented", itemName)
	body := fmt.Sprintf("Hello %s,\n\nYour item \"%s\" has been rented from %s to %s (%d days).\n\nRental total: %s\nSecurity deposit held: %s\n\nPayments are released to your wallet daily.\n\nThe FashionSwap Team",
		ownerName, itemName, start.Format(utils.DateLayout), end.Format(utils.DateLayout), quote.Days,
		quote.Total.StringFixed(3), quote.DepositAmount.StringFixed(3))
	return s.send(ctx, email, ownerName, subject, body)
}

func (s *emailService) SendReturnConfirmation(ctx context.Context, email, renterName, itemName string, refund decimal.Decimal) error {
	subject := fmt.Sprintf("Return confirmed: %s", itemName)
	body := fmt.Sprintf("Hello %s,\n\nThanks for returning \"%s\". Your deposit of %s has been released to your wallet.\n\nThe FashionSwap Team",
		renterName, itemName, refund.StringFixed(3))
	return s.send(ctx, email, renterName, subject, body)
}

func (s *emailService) SendOverdueReminder(ctx context.Context, email, renterName, itemName string, endDate time.Time, daysOverdue int) error {
	subject := fmt.Sprintf("Overdue rental: %s", itemName)
	body := fmt.Sprintf("Hello %s,\n\n\"%s\" was due back on %s and is now %d day(s) overdue. Please return it as soon as possible.\n\nThe FashionSwap Team",
		renterName, itemName, endDate.Format(utils.DateLayout), daysOverdue)
	return s.send(ctx, email, renterName, subject, body)
}

func (s *emailService) send(ctx context.Context, email, name, subject, body string) error {
	if s.client == nil {
		logger.Info("Email disabled, skipping send", "to", email, "subject", subject)
		return nil
	}

	logger.ExternalServiceCall("sendgrid", "Send", "to", email, "subject", subject)
	htmlBody := strings.ReplaceAll(html.EscapeString(body), "\n", "<br>")
	msg := mail.NewSingleEmail(s.from, subject, mail.NewEmail(name, email), body, htmlBody)
	resp, err := s.client.SendWithContext(ctx, msg)
	if err == nil && resp.StatusCode >= 300 {
		err = fmt.Errorf("sendgrid returned status %d: %s", resp.StatusCode, resp.Body)
	}
	logger.ExternalServiceResult("sendgrid", "Send", err, "to", email)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

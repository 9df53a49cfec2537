package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/shopspring/decimal"

	"rentaldesk-backend/internal/logger"
)

type sendgridEmailService struct {
	client *sendgrid.Client
	from   *mail.Email
	log    *slog.Logger
}

// NewEmailService returns a SendGrid-backed mailer. With an empty API key
// it degrades to a no-op that only logs, so local setups work without
// outbound mail.
func NewEmailService(apiKey, fromAddress string) EmailService {
	svc := &sendgridEmailService{
		from: mail.NewEmail("RentalDesk", fromAddress),
		log:  logger.WithService("email-service"),
	}
	if apiKey != "" {
		svc.client = sendgrid.NewSendClient(apiKey)
	}
	return svc
}

func (s *sendgridEmailService) SendOverdueReminder(ctx context.Context, to, agreementNumber string, overdueDays int64, fee decimal.Decimal) error {
	subject := fmt.Sprintf("Rent %s is overdue", agreementNumber)
	body := fmt.Sprintf(
		"Rental agreement %s is %d day(s) past its planned end date.\nAccrued late fee: %s.\nPlease contact the client to arrange the return.",
		agreementNumber, overdueDays, fee.StringFixed(2),
	)
	return s.send(ctx, to, subject, body)
}

func (s *sendgridEmailService) SendPaymentReceipt(ctx context.Context, to, agreementNumber string, amount decimal.Decimal) error {
	subject := fmt.Sprintf("Payment received for rent %s", agreementNumber)
	body := fmt.Sprintf(
		"We have registered a payment of %s for rental agreement %s.\nThank you.",
		amount.StringFixed(2), agreementNumber,
	)
	return s.send(ctx, to, subject, body)
}

func (s *sendgridEmailService) send(ctx context.Context, to, subject, body string) error {
	if s.client == nil {
		s.log.Info("mail delivery skipped, no API key configured", "to", to, "subject", subject)
		return nil
	}
	message := mail.NewSingleEmail(s.from, subject, mail.NewEmail("", to), body, body)
	resp, err := s.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("send mail: status %d", resp.StatusCode)
	}
	s.log.Info("mail sent", "to", to, "subject", subject)
	return nil
}

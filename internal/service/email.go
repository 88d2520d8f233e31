package service

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"carrental-backoffice/internal/domain"
	"carrental-backoffice/internal/logger"
)

type sendGridEmailService struct {
	apiKey    string
	fromEmail string
	fromName  string
	settings  SettingsService
}

func NewEmailService(apiKey, fromEmail, fromName string, settings SettingsService) EmailService {
	return &sendGridEmailService{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
		settings:  settings,
	}
}

func (s *sendGridEmailService) SendOpsAlert(ctx context.Context, subject, body string) error {
	to := s.settings.AdminAlertAddress(ctx)
	return s.send(to, "Operations", "[ALERT] "+subject, body, "")
}

func (s *sendGridEmailService) SendRentalStatusEmail(ctx context.Context, toEmail, toName string, req *domain.RentalRequest, car *domain.Car) error {
	subject := fmt.Sprintf("Your rental of the %s is %s", car.DisplayName(), req.Status)
	plainText := fmt.Sprintf("Hi %s,\n\nYour rental request for the %s (%s to %s) is now %s.\n\nThank you.",
		toName, car.DisplayName(),
		req.StartDate.Format("Jan 2, 2006"), req.EndDate.Format("Jan 2, 2006"), req.Status)
	htmlContent := fmt.Sprintf(`
		<html>
			<body>
				<h2>Rental %s</h2>
				<p>Hi %s,</p>
				<p>Your rental request for the <strong>%s</strong> (%s to %s) is now <strong>%s</strong>.</p>
			</body>
		</html>
	`, req.Status, toName, car.DisplayName(),
		req.StartDate.Format("Jan 2, 2006"), req.EndDate.Format("Jan 2, 2006"), req.Status)

	return s.send(toEmail, toName, subject, plainText, htmlContent)
}

func (s *sendGridEmailService) send(to, toName, subject, plainText, htmlContent string) error {
	if htmlContent == "" {
		htmlContent = "<pre>" + plainText + "</pre>"
	}
	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail(toName, to)
	message := mail.NewSingleEmail(from, subject, recipient, plainText, htmlContent)

	logger.ExternalServiceCall("sendgrid", "send", "to", to, "subject", subject)
	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(message)
	if err != nil {
		logger.ExternalServiceResult("sendgrid", "send", err)
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		err = fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
		logger.ExternalServiceResult("sendgrid", "send", err)
		return err
	}
	logger.ExternalServiceResult("sendgrid", "send", nil)
	return nil
}

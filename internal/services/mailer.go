package services

import (
	"fmt"
	"time"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/lumenstudio/cms-auth-service/internal/config"
	"github.com/lumenstudio/cms-auth-service/internal/utils"
)

// Mailer dispatches the OTP code out-of-band. The email channel is an
// external collaborator; the login flow only needs send-and-forget.
type Mailer interface {
	SendOtpCode(toEmail, code string) error
}

// NewMailer returns the SendGrid implementation when an API key is
// configured, otherwise a log-only stand-in for local development.
func NewMailer(cfg *config.Config) Mailer {
	if cfg.SendGridAPIKey == "" {
		utils.Logger.Warn("SENDGRID_API_KEY not set; OTP codes will only be logged")
		return &logMailer{}
	}
	return &sendgridMailer{cfg: cfg, client: sendgrid.NewSendClient(cfg.SendGridAPIKey)}
}

type sendgridMailer struct {
	cfg    *config.Config
	client *sendgrid.Client
}

func (m *sendgridMailer) SendOtpCode(toEmail, code string) error {
	from := mail.NewEmail(m.cfg.OrganizationName, m.cfg.SendGridFromEmail)
	to := mail.NewEmail("", toEmail)
	subject := m.cfg.OrganizationName + " - Login Code"

	plainTextContent := fmt.Sprintf("Your login code is %s", code)
	htmlContent := fmt.Sprintf(otpEmailHTML,
		"Login Code",
		"Use the following code to finish signing in. This code expires in 5 minutes.",
		code,
		time.Now().Year(),
	)
	message := mail.NewSingleEmail(from, subject, to, plainTextContent, htmlContent)

	if _, err := m.client.Send(message); err != nil {
		utils.Logger.WithError(err).Errorf("Failed to send login code to %s via SendGrid", toEmail)
		return fmt.Errorf("failed to send email via sendgrid: %w", err)
	}
	return nil
}

type logMailer struct{}

func (m *logMailer) SendOtpCode(toEmail, code string) error {
	utils.Logger.Infof("[dev mailer] login code for %s: %s", toEmail, code)
	return nil
}

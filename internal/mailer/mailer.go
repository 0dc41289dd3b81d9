package mailer

import (
	"context"
	"fmt"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"

	"github.com/visitordesk/api/internal/config"
)

// ProviderError indicates the transactional email provider rejected the send.
type ProviderError struct {
	StatusCode int
	Body       string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("email provider rejected message (%d): %s", e.StatusCode, e.Body)
}

// sender abstracts the SendGrid client for tests.
type sender interface {
	SendWithContext(ctx context.Context, email *mail.SGMailV3) (*rest.Response, error)
}

// Mailer sends templated transactional email through SendGrid.
type Mailer struct {
	client sender
	cfg    config.MailConfig
	logger *zap.Logger
}

// New builds a Mailer from the mail configuration.
func New(cfg config.MailConfig, logger *zap.Logger) *Mailer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Mailer{
		client: sendgrid.NewSendClient(cfg.APIKey),
		cfg:    cfg,
		logger: logger,
	}
}

// SendWelcome delivers the visitor welcome message.
func (m *Mailer) SendWelcome(ctx context.Context, toEmail, companyName string) error {
	greeting := "there"
	if companyName != "" {
		greeting = "the " + companyName + " team"
	}

	from := mail.NewEmail(m.cfg.FromName, m.cfg.FromEmail)
	to := mail.NewEmail("", toEmail)
	subject := "Welcome! Thanks for visiting us"
	plain := fmt.Sprintf("Hi %s,\n\nThank you for dropping by and sharing your visiting card. We will be in touch shortly.\n\nWarm regards,\n%s", greeting, m.cfg.FromName)
	html := fmt.Sprintf("<p>Hi %s,</p><p>Thank you for dropping by and sharing your visiting card. We will be in touch shortly.</p><p>Warm regards,<br/>%s</p>", greeting, m.cfg.FromName)

	message := mail.NewSingleEmail(from, subject, to, plain, html)
	if m.cfg.ReplyTo != "" {
		message.SetReplyTo(mail.NewEmail("", m.cfg.ReplyTo))
	}

	resp, err := m.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("send welcome email: %w", err)
	}
	if resp.StatusCode >= 400 {
		return &ProviderError{StatusCode: resp.StatusCode, Body: resp.Body}
	}

	m.logger.Info("welcome email dispatched", zap.String("to", toEmail))
	return nil
}

package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/visitordesk/api/internal/repository"
)

// WelcomeSender delivers the templated welcome message to a visitor.
type WelcomeSender interface {
	SendWelcome(ctx context.Context, toEmail, companyName string) error
}

// EmailService validates and dispatches welcome emails.
type EmailService struct {
	mailer WelcomeSender
	repo   repository.VisitorsRepository
	logger *zap.Logger
}

// NewEmailService constructs an EmailService.
func NewEmailService(mailer WelcomeSender, repo repository.VisitorsRepository, logger *zap.Logger) *EmailService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EmailService{mailer: mailer, repo: repo, logger: logger}
}

// SendWelcome validates the address, dispatches the message, and flags
// matching visitor records as emailed.
func (s *EmailService) SendWelcome(ctx context.Context, email, companyName string) error {
	normalized, err := NormalizeEmail(email)
	if err != nil {
		return err
	}

	if err := s.mailer.SendWelcome(ctx, normalized, strings.TrimSpace(companyName)); err != nil {
		s.logger.Error("welcome email failed",
			zap.String("email", normalized),
			zap.Error(err))
		return err
	}

	if s.repo != nil {
		if err := s.repo.MarkEmailSent(ctx, normalized); err != nil {
			// The message went out; the flag update is best-effort.
			s.logger.Warn("could not flag visitor as emailed",
				zap.String("email", normalized),
				zap.Error(err))
		}
	}

	return nil
}

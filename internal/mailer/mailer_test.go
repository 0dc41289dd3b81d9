package mailer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"

	"github.com/visitordesk/api/internal/config"
)

type stubSender struct {
	resp *rest.Response
	err  error
	sent *mail.SGMailV3
}

func (s *stubSender) SendWithContext(ctx context.Context, email *mail.SGMailV3) (*rest.Response, error) {
	s.sent = email
	return s.resp, s.err
}

func testMailer(s *stubSender) *Mailer {
	return &Mailer{
		client: s,
		cfg: config.MailConfig{
			FromName:  "VisitorDesk",
			FromEmail: "hello@visitordesk.io",
			ReplyTo:   "reception@visitordesk.io",
		},
	}
}

func TestMailer_SendWelcome(t *testing.T) {
	stub := &stubSender{resp: &rest.Response{StatusCode: 202}}
	m := testMailer(stub)
	m.logger = zap.NewNop()

	if err := m.SendWelcome(context.Background(), "asha@example.com", "Acme Traders"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stub.sent == nil {
		t.Fatalf("expected a message to be sent")
	}
	if stub.sent.From.Address != "hello@visitordesk.io" {
		t.Fatalf("unexpected sender: %s", stub.sent.From.Address)
	}
	if got := stub.sent.Personalizations[0].To[0].Address; got != "asha@example.com" {
		t.Fatalf("unexpected recipient: %s", got)
	}
	if stub.sent.ReplyTo == nil || stub.sent.ReplyTo.Address != "reception@visitordesk.io" {
		t.Fatalf("expected reply-to to be set")
	}

	var plain string
	for _, content := range stub.sent.Content {
		if content.Type == "text/plain" {
			plain = content.Value
		}
	}
	if !strings.Contains(plain, "the Acme Traders team") {
		t.Fatalf("greeting missing company name: %q", plain)
	}
}

func TestMailer_SendWelcomeDefaultGreeting(t *testing.T) {
	stub := &stubSender{resp: &rest.Response{StatusCode: 202}}
	m := testMailer(stub)
	m.logger = zap.NewNop()

	if err := m.SendWelcome(context.Background(), "asha@example.com", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var plain string
	for _, content := range stub.sent.Content {
		if content.Type == "text/plain" {
			plain = content.Value
		}
	}
	if !strings.Contains(plain, "Hi there,") {
		t.Fatalf("expected generic greeting, got %q", plain)
	}
}

func TestMailer_SendWelcomeProviderRejection(t *testing.T) {
	stub := &stubSender{resp: &rest.Response{StatusCode: 401, Body: "bad api key"}}
	m := testMailer(stub)
	m.logger = zap.NewNop()

	err := m.SendWelcome(context.Background(), "asha@example.com", "")
	var perr *ProviderError
	if !errors.As(err, &perr) {
		t.Fatalf("expected ProviderError, got %v", err)
	}
	if perr.StatusCode != 401 || perr.Body != "bad api key" {
		t.Fatalf("unexpected provider error: %+v", perr)
	}
}

func TestMailer_SendWelcomeTransportFailure(t *testing.T) {
	sentinel := errors.New("connection refused")
	stub := &stubSender{err: sentinel}
	m := testMailer(stub)
	m.logger = zap.NewNop()

	if err := m.SendWelcome(context.Background(), "asha@example.com", ""); !errors.Is(err, sentinel) {
		t.Fatalf("expected transport error, got %v", err)
	}
}

// Package mail dispatches outbound email. The portal sends only two kinds of
// message itself: property contact forms and the send-email endpoint.
// Consultation notifications are drafted, not sent.
package mail

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"
)

var ErrNotConfigured = errors.New("email service is not configured")

type Message struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Text    string `json:"text"`
	HTML    string `json:"html"`
}

type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// Configured reports whether sender can deliver at all. Senders that do not
// say otherwise are assumed to be configured.
func Configured(sender Sender) bool {
	if sender == nil {
		return false
	}
	if c, ok := sender.(interface{ Configured() bool }); ok {
		return c.Configured()
	}
	return true
}

type SendGrid struct {
	client   *sendgrid.Client
	from     *sgmail.Email
	log      *zap.Logger
	disabled bool
}

// NewSendGrid returns a sender that fails with ErrNotConfigured when apiKey
// is empty, so the server can still start without mail credentials.
func NewSendGrid(apiKey, from, fromName string, log *zap.Logger) *SendGrid {
	s := &SendGrid{from: sgmail.NewEmail(fromName, from), log: log, disabled: apiKey == ""}
	if !s.disabled {
		s.client = sendgrid.NewSendClient(apiKey)
	}
	return s
}

// Configured reports whether an API key was supplied.
func (s *SendGrid) Configured() bool { return !s.disabled }

func (s *SendGrid) Send(ctx context.Context, msg Message) error {
	if s.disabled {
		return ErrNotConfigured
	}
	m := sgmail.NewSingleEmail(s.from, msg.Subject, sgmail.NewEmail("", msg.To), msg.Text, msg.HTML)
	resp, err := s.client.SendWithContext(ctx, m)
	if err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	if resp.StatusCode >= 300 {
		s.log.Error("SendGrid rejected message",
			zap.Int("status", resp.StatusCode),
			zap.String("body", resp.Body))
		return fmt.Errorf("send email: provider returned status %d", resp.StatusCode)
	}
	s.log.Info("Email sent", zap.String("to", msg.To), zap.String("subject", msg.Subject))
	return nil
}

// Recorder keeps messages in memory instead of sending them.
type Recorder struct {
	mu   sync.Mutex
	sent []Message
	Err  error
}

func (r *Recorder) Send(_ context.Context, msg Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	r.sent = append(r.sent, msg)
	return nil
}

func (r *Recorder) Sent() []Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Message(nil), r.sent...)
}

package services

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"gopkg.in/gomail.v2"
)

// EmailAttachment is an inline attachment referenced from the HTML body
// through its content id (`<img src="cid:...">`).
type EmailAttachment struct {
	Filename  string
	ContentID string
	MimeType  string
	Content   []byte
}

// EmailMessage is one outbound email to a single recipient.
type EmailMessage struct {
	To          string
	From        string
	Subject     string
	HTML        string
	ScheduledAt *time.Time
	Attachments []EmailAttachment
}

// EmailSender delivers campaign emails. One call sends to exactly one
// recipient; callers loop over resolved addresses.
type EmailSender interface {
	Send(ctx context.Context, msg *EmailMessage) error
}

// GomailSender implements EmailSender over SMTP
type GomailSender struct {
	host        string
	port        int
	username    string
	password    string
	defaultFrom string
}

// NewGomailSender creates a new SMTP email sender
func NewGomailSender(host string, port int, username, password, defaultFrom string) EmailSender {
	return &GomailSender{
		host:        host,
		port:        port,
		username:    username,
		password:    password,
		defaultFrom: defaultFrom,
	}
}

// Send delivers a single email over SMTP
func (s *GomailSender) Send(ctx context.Context, msg *EmailMessage) error {
	if msg == nil || msg.To == "" {
		return fmt.Errorf("email recipient is required")
	}

	from := msg.From
	if from == "" {
		from = s.defaultFrom
	}

	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	if msg.ScheduledAt != nil {
		m.SetHeader("Date", msg.ScheduledAt.Format(time.RFC1123Z))
	}
	m.SetBody("text/html", msg.HTML)

	for _, att := range msg.Attachments {
		content := att.Content
		m.Embed(att.Filename,
			gomail.SetCopyFunc(func(w io.Writer) error {
				_, err := w.Write(content)
				return err
			}),
			gomail.SetHeader(map[string][]string{
				"Content-ID":   {"<" + att.ContentID + ">"},
				"Content-Type": {att.MimeType},
			}),
		)
	}

	// gomail has no context support; honor cancellation before dialing
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	d := gomail.NewDialer(s.host, s.port, s.username, s.password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", msg.To, err)
	}

	return nil
}

// MockEmailSender records sent messages for testing
type MockEmailSender struct {
	mu       sync.Mutex
	sent     []EmailMessage
	FailWith error
}

// NewMockEmailSender creates a new mock email sender
func NewMockEmailSender() *MockEmailSender {
	return &MockEmailSender{}
}

// Send records the message instead of delivering it
func (s *MockEmailSender) Send(ctx context.Context, msg *EmailMessage) error {
	if s.FailWith != nil {
		return s.FailWith
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, *msg)
	return nil
}

// GetSentMessages returns a copy of every recorded message
func (s *MockEmailSender) GetSentMessages() []EmailMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]EmailMessage, len(s.sent))
	copy(out, s.sent)
	return out
}

// ClearSentMessages drops all recorded messages
func (s *MockEmailSender) ClearSentMessages() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = nil
}

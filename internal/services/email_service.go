package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"mime"
	"net/mail"
	"strings"
	"time"

	"github.com/justsurfingit/HireNest/internal/apperr"
	"github.com/justsurfingit/HireNest/internal/dtos"
	"github.com/justsurfingit/HireNest/internal/metrics"
	"go.uber.org/zap"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/googleapi"
)

const senderName = "HireNest"

var ErrMailerDisabled = errors.New("mailer is not configured")

// Message is one plain-text email.
type Message struct {
	From    string
	To      string
	ReplyTo string
	Subject string
	Text    string
}

// Mailer delivers a Message.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// GmailMailer sends through the Gmail API as the authorized account.
type GmailMailer struct {
	Client   *gmail.Service
	Logger   *zap.Logger
	Attempts int
	Backoff  time.Duration
}

func NewGmailMailer(client *gmail.Service, logger *zap.Logger) *GmailMailer {
	return &GmailMailer{
		Client:   client,
		Logger:   logger,
		Attempts: 3,
		Backoff:  time.Second,
	}
}

func (m *GmailMailer) Send(ctx context.Context, msg Message) error {
	raw, err := buildMessage(msg)
	if err != nil {
		return err
	}
	encoded := base64.URLEncoding.EncodeToString(raw)

	return retry(ctx, m.Logger, m.Attempts, m.Backoff, func() error {
		_, err := m.Client.Users.Messages.Send("me", &gmail.Message{Raw: encoded}).Context(ctx).Do()
		return err
	})
}

// buildMessage renders msg as an RFC 5322 message with a UTF-8 text body.
func buildMessage(msg Message) ([]byte, error) {
	to, err := mail.ParseAddressList(msg.To)
	if err != nil {
		return nil, fmt.Errorf("invalid recipient %q: %w", msg.To, err)
	}
	recipients := make([]string, 0, len(to))
	for _, a := range to {
		recipients = append(recipients, a.String())
	}

	var b bytes.Buffer
	writeHeader(&b, "From", msg.From)
	writeHeader(&b, "To", strings.Join(recipients, ", "))
	if msg.ReplyTo != "" {
		if addr, err := mail.ParseAddress(msg.ReplyTo); err == nil {
			writeHeader(&b, "Reply-To", addr.String())
		}
	}
	writeHeader(&b, "Subject", mime.QEncoding.Encode("utf-8", msg.Subject))
	writeHeader(&b, "MIME-Version", "1.0")
	writeHeader(&b, "Content-Type", `text/plain; charset="UTF-8"`)
	b.WriteString("\r\n")
	b.WriteString(msg.Text)
	return b.Bytes(), nil
}

func writeHeader(b *bytes.Buffer, name, value string) {
	value = strings.NewReplacer("\r", " ", "\n", " ").Replace(value)
	fmt.Fprintf(b, "%s: %s\r\n", name, value)
}

// retry runs f with doubling backoff. Client errors other than rate limiting
// are not retried.
func retry(ctx context.Context, logger *zap.Logger, attempts int, sleep time.Duration, f func() error) error {
	var err error
	for i := 0; i < attempts; i++ {
		if err = f(); err == nil {
			return nil
		}
		if isPermanentAPIError(err) || i == attempts-1 {
			break
		}

		logger.Warn("Gmail API error, retrying",
			zap.Error(err),
			zap.Int("attempt", i+1),
			zap.Duration("backoff", sleep))
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(sleep):
		}
		sleep *= 2
	}
	return fmt.Errorf("failed after %d attempts: %w", attempts, err)
}

func isPermanentAPIError(err error) bool {
	var gErr *googleapi.Error
	if errors.As(err, &gErr) {
		return gErr.Code >= 400 && gErr.Code < 500 && gErr.Code != 429
	}
	return false
}

// MailService sends the notification and contact-form emails.
type MailService struct {
	Mailer   Mailer
	MailUser string
	Logger   *zap.Logger
}

// NewMailService builds the service; mailer may be nil when mail is not
// configured, in which case every send fails with ErrMailerDisabled.
func NewMailService(mailer Mailer, mailUser string, logger *zap.Logger) *MailService {
	return &MailService{Mailer: mailer, MailUser: mailUser, Logger: logger}
}

func (s *MailService) from() string {
	return (&mail.Address{Name: senderName, Address: s.MailUser}).String()
}

// SendNotification mails req.Text to req.To from the HireNest account.
func (s *MailService) SendNotification(ctx context.Context, req dtos.EmailRequest) error {
	s.Logger.Info("Email notification request started",
		zap.String("to", req.To),
		zap.String("subject", req.Subject),
		zap.Int("text_length", len(req.Text)))

	err := s.send(ctx, Message{
		From:    s.from(),
		To:      req.To,
		Subject: req.Subject,
		Text:    req.Text,
	})
	metrics.RecordEmail("notification", err)
	if err != nil {
		s.Logger.Error("Email sending failed", zap.String("to", req.To), zap.Error(err))
		return apperr.Internal("Failed to send email", err)
	}
	s.Logger.Info("Email sent successfully", zap.String("to", req.To))
	return nil
}

// SendContact forwards a contact-form message to the HireNest inbox with
// Reply-To set to the sender.
func (s *MailService) SendContact(ctx context.Context, req dtos.ContactRequest) error {
	s.Logger.Info("Contact form email request started",
		zap.String("sender_name", req.Name),
		zap.String("sender_email", req.Email))

	body := fmt.Sprintf(`
You received a new contact form message:

Name: %s
Email: %s
Message:
%s
    `, req.Name, req.Email, req.Message)

	err := s.send(ctx, Message{
		From:    s.from(),
		To:      s.MailUser,
		ReplyTo: req.Email,
		Subject: "New Contact Message Of HireNest from " + req.Name,
		Text:    body,
	})
	metrics.RecordEmail("contact", err)
	if err != nil {
		s.Logger.Error("Contact form email sending failed",
			zap.String("sender_email", req.Email),
			zap.Error(err))
		return apperr.Internal("Failed to send email", err)
	}
	s.Logger.Info("Contact form email sent successfully", zap.String("sender_email", req.Email))
	return nil
}

func (s *MailService) send(ctx context.Context, msg Message) error {
	if s.Mailer == nil || s.MailUser == "" {
		return ErrMailerDisabled
	}
	return s.Mailer.Send(ctx, msg)
}

// Package mail delivers the account emails (verification codes, password resets).
package mail

import (
	"bytes"
	"context"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"text/template"
	"time"

	identityapp "github.com/swiftsupply/backend/internal/application/identity"
	"github.com/swiftsupply/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// Message is a plain-text email
type Message struct {
	To      string
	Subject string
	Body    string
}

// Sender delivers a message
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// New returns the sender selected by cfg.Driver
func New(cfg config.MailConfig, logger *zap.Logger) (Sender, error) {
	switch cfg.Driver {
	case "", "log":
		return NewLogSender(logger), nil
	case "smtp":
		return NewSMTPSender(cfg)
	}
	return nil, fmt.Errorf("unknown mail driver %q", cfg.Driver)
}

// LogSender writes messages to the log instead of sending them (development)
type LogSender struct {
	logger *zap.Logger
}

// NewLogSender creates a LogSender
func NewLogSender(logger *zap.Logger) *LogSender {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogSender{logger: logger.Named("mail")}
}

// Send logs the message
func (s *LogSender) Send(_ context.Context, msg Message) error {
	s.logger.Info("Email not sent, log driver active",
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject),
		zap.String("body", msg.Body))
	return nil
}

// SMTPSender sends mail through an SMTP relay with PLAIN auth
type SMTPSender struct {
	addr string
	host string
	auth smtp.Auth
	from string
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewSMTPSender creates an SMTP sender
func NewSMTPSender(cfg config.MailConfig) (*SMTPSender, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("mail.host is required for the smtp driver")
	}
	if cfg.From == "" {
		return nil, fmt.Errorf("mail.from is required for the smtp driver")
	}
	port := cfg.Port
	if port == 0 {
		port = 587
	}
	var auth smtp.Auth
	if cfg.Username != "" {
		auth = smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	}
	return &SMTPSender{
		addr: net.JoinHostPort(cfg.Host, strconv.Itoa(port)),
		host: cfg.Host,
		auth: auth,
		from: cfg.From,
		send: smtp.SendMail,
	}, nil
}

// Send delivers the message. net/smtp has no context support, so ctx is only
// checked before dialing.
func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.send(s.addr, s.auth, s.from, []string{msg.To}, s.render(msg)); err != nil {
		return fmt.Errorf("failed to send mail to %s: %w", msg.To, err)
	}
	return nil
}

func (s *SMTPSender) render(msg Message) []byte {
	var b bytes.Buffer
	fmt.Fprintf(&b, "From: %s\r\n", s.from)
	fmt.Fprintf(&b, "To: %s\r\n", msg.To)
	fmt.Fprintf(&b, "Subject: %s\r\n", sanitizeHeader(msg.Subject))
	fmt.Fprintf(&b, "Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n\r\n")
	b.WriteString(strings.ReplaceAll(msg.Body, "\n", "\r\n"))
	return b.Bytes()
}

func sanitizeHeader(v string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(v)
}

var (
	otpTemplate = template.Must(template.New("otp").Parse(`Hello {{.Name}},

Your SwiftSupply verification code is {{.Code}}.
It expires in {{.Minutes}} minutes.
`))
	resetTemplate = template.Must(template.New("reset").Parse(`Hello {{.Name}},

A password reset was requested for your SwiftSupply account.
Open the link below to choose a new password. It expires in {{.Minutes}} minutes.

{{.Link}}

If you did not request this, ignore this email.
`))
)

// AccountMailer composes the account emails and hands them to a Sender
type AccountMailer struct {
	sender Sender
}

// NewAccountMailer creates an AccountMailer
func NewAccountMailer(sender Sender) *AccountMailer {
	return &AccountMailer{sender: sender}
}

// SendVerificationCode mails a signup OTP
func (m *AccountMailer) SendVerificationCode(ctx context.Context, to, name, code string, ttl time.Duration) error {
	body, err := execute(otpTemplate, map[string]any{"Name": name, "Code": code, "Minutes": int(ttl.Minutes())})
	if err != nil {
		return err
	}
	return m.sender.Send(ctx, Message{To: to, Subject: "Your SwiftSupply verification code", Body: body})
}

// SendPasswordReset mails a password reset link
func (m *AccountMailer) SendPasswordReset(ctx context.Context, to, name, link string, ttl time.Duration) error {
	body, err := execute(resetTemplate, map[string]any{"Name": name, "Link": link, "Minutes": int(ttl.Minutes())})
	if err != nil {
		return err
	}
	return m.sender.Send(ctx, Message{To: to, Subject: "Reset your SwiftSupply password", Body: body})
}

func execute(t *template.Template, data any) (string, error) {
	var b bytes.Buffer
	if err := t.Execute(&b, data); err != nil {
		return "", fmt.Errorf("failed to render %s mail: %w", t.Name(), err)
	}
	return b.String(), nil
}

var _ identityapp.Notifier = (*AccountMailer)(nil)

package mail

import (
	"context"
	"errors"
	"net/smtp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swiftsupply/backend/internal/infrastructure/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type recordingSender struct {
	sent []Message
	err  error
}

func (r *recordingSender) Send(_ context.Context, msg Message) error {
	r.sent = append(r.sent, msg)
	return r.err
}

func TestAccountMailer(t *testing.T) {
	sender := &recordingSender{}
	m := NewAccountMailer(sender)
	ctx := context.Background()

	require.NoError(t, m.SendVerificationCode(ctx, "ada@example.com", "Ada", "123456", 10*time.Minute))
	require.NoError(t, m.SendPasswordReset(ctx, "ada@example.com", "Ada", "https://app/reset-password?token=t", 30*time.Minute))

	require.Len(t, sender.sent, 2)
	assert.Equal(t, "ada@example.com", sender.sent[0].To)
	assert.Contains(t, sender.sent[0].Body, "123456")
	assert.Contains(t, sender.sent[0].Body, "10 minutes")
	assert.Contains(t, sender.sent[1].Body, "https://app/reset-password?token=t")
	assert.Contains(t, sender.sent[1].Body, "30 minutes")
}

func TestAccountMailer_PropagatesErrors(t *testing.T) {
	boom := errors.New("relay down")
	m := NewAccountMailer(&recordingSender{err: boom})
	err := m.SendVerificationCode(context.Background(), "a@b.c", "A", "1", time.Minute)
	assert.ErrorIs(t, err, boom)
}

func TestLogSender(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	s := NewLogSender(zap.New(core))

	require.NoError(t, s.Send(context.Background(), Message{To: "x@y.z", Subject: "Hi", Body: "code"}))
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "x@y.z", logs.All()[0].ContextMap()["to"])
}

func TestSMTPSender(t *testing.T) {
	s, err := NewSMTPSender(config.MailConfig{Host: "smtp.example.com", Port: 2525, Username: "u", Password: "p", From: "noreply@example.com"})
	require.NoError(t, err)

	var gotAddr string
	var gotBody []byte
	s.send = func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr = addr
		gotBody = msg
		assert.Equal(t, "noreply@example.com", from)
		assert.Equal(t, []string{"x@y.z"}, to)
		return nil
	}

	require.NoError(t, s.Send(context.Background(), Message{To: "x@y.z", Subject: "Hi\r\nBcc: evil", Body: "line1\nline2"}))
	assert.Equal(t, "smtp.example.com:2525", gotAddr)
	assert.Contains(t, string(gotBody), "Subject: Hi  Bcc: evil\r\n")
	assert.Contains(t, string(gotBody), "line1\r\nline2")
}

func TestNew(t *testing.T) {
	s, err := New(config.MailConfig{Driver: "log"}, zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &LogSender{}, s)

	_, err = New(config.MailConfig{Driver: "smtp"}, zap.NewNop())
	assert.Error(t, err, "smtp requires a host")

	_, err = New(config.MailConfig{Driver: "pigeon"}, zap.NewNop())
	assert.Error(t, err)
}

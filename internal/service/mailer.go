package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	mailjet "github.com/mailjet/mailjet-apiv3-go"
)

// Message is one outbound email
type Message struct {
	To      string
	Subject string
	Text    string
	HTML    string
	Headers map[string]string
}

// Mailer delivers transactional email
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// MailjetMailer sends through the Mailjet v3.1 send API
type MailjetMailer struct {
	senderEmail string
	senderName  string
	send        func(*mailjet.MessagesV31) (*mailjet.ResultsV31, error)
}

// MailjetConfig holds Mailjet credentials and the sender identity
type MailjetConfig struct {
	PublicKey   string
	PrivateKey  string
	SenderEmail string
	SenderName  string
}

// NewMailjetMailer creates a mailer backed by a Mailjet client
func NewMailjetMailer(cfg MailjetConfig) *MailjetMailer {
	clt := mailjet.NewMailjetClient(cfg.PublicKey, cfg.PrivateKey)
	return &MailjetMailer{
		senderEmail: cfg.SenderEmail,
		senderName:  cfg.SenderName,
		send: func(msgs *mailjet.MessagesV31) (*mailjet.ResultsV31, error) {
			return clt.SendMailV31(msgs)
		},
	}
}

// Send delivers msg. Provider failures wrap ErrMailRejected.
func (m *MailjetMailer) Send(ctx context.Context, msg Message) error {
	info := mailjet.InfoMessagesV31{
		From:     &mailjet.RecipientV31{Email: m.senderEmail, Name: m.senderName},
		To:       &mailjet.RecipientsV31{mailjet.RecipientV31{Email: msg.To}},
		Subject:  msg.Subject,
		TextPart: msg.Text,
		HTMLPart: msg.HTML,
	}
	if len(msg.Headers) > 0 {
		info.Headers = make(map[string]interface{}, len(msg.Headers))
		for k, v := range msg.Headers {
			info.Headers[k] = v
		}
	}

	res, err := m.send(&mailjet.MessagesV31{Info: []mailjet.InfoMessagesV31{info}})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMailRejected, err)
	}
	if res != nil {
		for _, r := range res.ResultsV31 {
			if !strings.EqualFold(r.Status, "success") {
				return fmt.Errorf("%w: status %q", ErrMailRejected, r.Status)
			}
		}
	}

	slog.DebugContext(ctx, "mail sent", slog.String("subject", msg.Subject))
	return nil
}

// LogMailer logs messages instead of sending them. Used when no provider
// is configured.
type LogMailer struct {
	logger *slog.Logger
}

// NewLogMailer creates a logging mailer. A nil logger uses slog.Default.
func NewLogMailer(logger *slog.Logger) *LogMailer {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogMailer{logger: logger}
}

// Send logs msg and always succeeds
func (m *LogMailer) Send(ctx context.Context, msg Message) error {
	m.logger.InfoContext(ctx, "mail not sent, no provider configured",
		slog.String("to", msg.To),
		slog.String("subject", msg.Subject),
	)
	return nil
}

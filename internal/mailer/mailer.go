// Package mailer delivers transactional mail over SMTP.
package mailer

import (
	"context"
	"fmt"

	"github.com/wneessen/go-mail"
)

// SMTPMailer sends mail through a configured SMTP relay.
type SMTPMailer struct {
	client *mail.Client
	from   string
}

func NewSMTP(host string, port int, username, password, from string) (*SMTPMailer, error) {
	client, err := mail.NewClient(host,
		mail.WithPort(port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(username),
		mail.WithPassword(password),
	)
	if err != nil {
		return nil, fmt.Errorf("create smtp client: %w", err)
	}

	return &SMTPMailer{client: client, from: from}, nil
}

// SendPasswordReset mails a reset link to an NGO contact.
func (m *SMTPMailer) SendPasswordReset(ctx context.Context, to, fullname, resetLink string) error {
	msg := mail.NewMsg()
	if err := msg.FromFormat("AidConnect Support", m.from); err != nil {
		return fmt.Errorf("set from address: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("set to address: %w", err)
	}

	msg.Subject("Password Reset - AidConnect")
	msg.SetBodyString(mail.TypeTextHTML, fmt.Sprintf(`<p>Hi %s,</p>
<p>You requested a password reset for your NGO account.</p>
<p><a href=%q>Click here to reset your password</a></p>
<br><p>If you didn't request this, just ignore this email.</p>`, fullname, resetLink))

	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send password reset mail to %s: %w", to, err)
	}

	return nil
}

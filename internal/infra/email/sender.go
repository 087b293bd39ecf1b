package email

import (
	"context"
	"fmt"
	"time"

	"github.com/wneessen/go-mail"

	"birthday_notifier/internal/domain/notification"
)

// defaultSendTimeout bounds each delivery attempt. A timed-out attempt counts
// as a failure for that recipient only.
const defaultSendTimeout = 15 * time.Second

// SMTPTransport implements the notification.Transport interface using the
// go-mail SMTP client with STARTTLS.
type SMTPTransport struct {
	client *mail.Client
	from   string
}

func NewSMTPTransport(host string, port int, username, password, from string) (*SMTPTransport, error) {
	client, err := mail.NewClient(host,
		mail.WithPort(port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(username),
		mail.WithPassword(password),
		mail.WithTLSPolicy(mail.TLSMandatory),
		mail.WithTimeout(defaultSendTimeout),
	)
	if err != nil {
		return nil, fmt.Errorf("creating smtp client for %s:%d: %w", host, port, err)
	}
	return &SMTPTransport{client: client, from: from}, nil
}

// Send delivers one rendered message, plain-text body with an HTML
// alternative, to its recipient.
func (t *SMTPTransport) Send(ctx context.Context, msg notification.Message) error {
	m := mail.NewMsg()
	if err := m.From(t.from); err != nil {
		return fmt.Errorf("setting sender %q: %w", t.from, err)
	}
	if err := m.To(msg.To.Email); err != nil {
		return fmt.Errorf("setting recipient %q: %w", msg.To.Email, err)
	}
	m.Subject(msg.Subject)
	m.SetBodyString(mail.TypeTextPlain, msg.TextBody)
	m.AddAlternativeString(mail.TypeTextHTML, msg.HTMLBody)

	if err := t.client.DialAndSendWithContext(ctx, m); err != nil {
		return fmt.Errorf("sending to %s: %w", msg.To.Email, err)
	}
	return nil
}

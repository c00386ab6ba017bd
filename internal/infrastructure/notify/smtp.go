// Package notify implements outbound email delivery and the per-event
// message rendering used by the notification dispatcher.
package notify

import (
	"context"

	"gopkg.in/gomail.v2"
)

// SMTPConfig captures the settings for the outbound mail server.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// SMTPNotifier sends HTML email through an SMTP server using gomail.
type SMTPNotifier struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPNotifier(cfg SMTPConfig) *SMTPNotifier {
	return &SMTPNotifier{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

// Send delivers a single message. gomail dials per message; the dispatcher
// already serializes sends per worker, so connection reuse is not worth the
// bookkeeping here.
func (n *SMTPNotifier) Send(_ context.Context, to, subject, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	return n.dialer.DialAndSend(m)
}

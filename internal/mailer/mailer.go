// Package mailer sends customer emails over SMTP. It is a best-effort side
// channel: callers reach it through the notification queue and nothing in the
// request path waits on a send.
package mailer

import (
	"context"
	"fmt"

	"github.com/Saipoo/foodorder/internal/domain"
	"gopkg.in/gomail.v2"
)

type Mailer interface {
	Send(ctx context.Context, msg domain.OrderNotificationMessage) error
}

type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPMailer(cfg Config) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

// Send formats and dispatches the email for a notification message. The send
// runs in its own goroutine so the context deadline bounds how long we wait,
// not how long the SMTP dial may take.
func (m *SMTPMailer) Send(ctx context.Context, msg domain.OrderNotificationMessage) error {
	subject, body := buildMessage(msg)

	mail := gomail.NewMessage()
	mail.SetHeader("From", m.from)
	mail.SetHeader("To", msg.Email)
	mail.SetHeader("Subject", subject)
	mail.SetBody("text/html", body)

	done := make(chan error, 1)
	go func() {
		done <- m.dialer.DialAndSend(mail)
	}()

	select {
	case <-ctx.Done():
		return fmt.Errorf("mail send abandoned: %w", ctx.Err())
	case err := <-done:
		if err != nil {
			return fmt.Errorf("failed to send mail: %w", err)
		}
		return nil
	}
}

func buildMessage(msg domain.OrderNotificationMessage) (subject, body string) {
	switch msg.Kind {
	case domain.NotificationOrderConfirmation:
		return fmt.Sprintf("Order Confirmation - #%s", msg.OrderNumber), confirmationBody(msg)
	default:
		return fmt.Sprintf("Order #%s Status Update", msg.OrderNumber), statusUpdateBody(msg)
	}
}

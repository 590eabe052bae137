package alert

import (
	"context"
	"fmt"

	"gopkg.in/mail.v2"
)

type mailDialer interface {
	DialAndSend(m ...*mail.Message) error
}

type mailSink struct {
	from       string
	recipients []string
	dialer     mailDialer
}

// NewMailSink sends notifications by SMTP.
func NewMailSink(email string, password string, host string, port int, recipients []string) Sink {
	return &mailSink{
		from:       email,
		recipients: recipients,
		dialer:     mail.NewDialer(host, port, email, password),
	}
}

func (s *mailSink) Name() string {
	return "mail"
}

func (s *mailSink) Dispatch(ctx context.Context, notification Notification) error {
	message := mail.NewMessage()
	message.SetHeader("From", s.from)
	message.SetHeader("To", s.recipients...)
	message.SetHeader("Subject", fmt.Sprintf("[watchdog] %s", notification.Message))
	message.SetBody("text/plain", fmt.Sprintf("%s\n\nSubject: %s\nEvent: %s\nTime: %s\n",
		notification.Message,
		notification.Subject,
		notification.Kind,
		notification.Timestamp.Format("2006-01-02 15:04:05")))

	if err := s.dialer.DialAndSend(message); err != nil {
		return fmt.Errorf("mailSink.Dispatch: %w", err)
	}
	return nil
}

package alert

import (
	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap"
)

// Env carries the per-medium credentials. A medium is only constructed
// when its required variables are all present.
type Env struct {
	TelegramToken string `envconfig:"TELEGRAM_TOKEN"`
	TelegramChat  string `envconfig:"TELEGRAM_CHAT"`

	SpryngToken      string   `envconfig:"SPRYNG_TOKEN"`
	SpryngRecipients []string `envconfig:"SPRYNG_RECIPIENTS"`

	WebhookURL string `envconfig:"ALERT_WEBHOOK_URL"`

	ScriptPath string `envconfig:"ALERT_SCRIPT"`

	MailHost       string   `envconfig:"MAIL_HOST"`
	MailPort       int      `envconfig:"MAIL_PORT" default:"587"`
	MailUser       string   `envconfig:"MAIL_USER"`
	MailPassword   string   `envconfig:"MAIL_PASSWORD"`
	MailRecipients []string `envconfig:"MAIL_RECIPIENTS"`
}

// NewManagerFromEnv builds the alert manager with every medium whose
// environment is fully configured.
func NewManagerFromEnv(logger *zap.Logger) (*Manager, error) {
	var env Env
	if err := envconfig.Process("", &env); err != nil {
		return nil, err
	}

	var sinks []Sink
	if env.TelegramToken != "" && env.TelegramChat != "" {
		sinks = append(sinks, NewTelegramSink(env.TelegramToken, env.TelegramChat))
	}
	if env.SpryngToken != "" && len(env.SpryngRecipients) > 0 {
		sinks = append(sinks, NewSpryngSink(env.SpryngToken, env.SpryngRecipients))
	}
	if env.WebhookURL != "" {
		sinks = append(sinks, NewWebhookSink(env.WebhookURL))
	}
	if env.ScriptPath != "" {
		sinks = append(sinks, NewScriptSink(env.ScriptPath))
	}
	if env.MailHost != "" && env.MailUser != "" && len(env.MailRecipients) > 0 {
		sinks = append(sinks, NewMailSink(env.MailUser, env.MailPassword, env.MailHost, env.MailPort, env.MailRecipients))
	}

	for _, sink := range sinks {
		logger.Info("alert medium configured", zap.String("medium", sink.Name()))
	}
	return NewManager(logger, sinks...), nil
}

package relay

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type AppConfig struct {
	ServerURL      string        `envconfig:"WATCHDOG_ADDR" required:"true"`
	Token          string        `envconfig:"WATCHDOG_TOKEN" required:"true"`
	LogLevel       string        `envconfig:"LOG_LEVEL" default:"info"`
	PollInterval   time.Duration `envconfig:"CONFIG_POLL_INTERVAL" default:"30s"`
	RequestTimeout time.Duration `envconfig:"REQUEST_TIMEOUT" default:"5s"`
}

func LoadConfig(path string) (AppConfig, error) {
	_ = godotenv.Load(path)

	var cfg AppConfig
	err := envconfig.Process("", &cfg)
	return cfg, err
}

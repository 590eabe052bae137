package server

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type AppConfig struct {
	Token            string        `envconfig:"WATCHDOG_TOKEN" required:"true"`
	LogLevel         string        `envconfig:"LOG_LEVEL" default:"info"`
	LogFile          string        `envconfig:"LOG_FILE"`
	LivenessInterval time.Duration `envconfig:"LIVENESS_INTERVAL" default:"1s"`
	ShutdownGrace    time.Duration `envconfig:"SHUTDOWN_GRACE" default:"1s"`
}

func LoadConfig(path string) (AppConfig, error) {
	_ = godotenv.Load(path)

	var cfg AppConfig
	err := envconfig.Process("", &cfg)
	return cfg, err
}

package test

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// E2E_DIAL_TIMEOUT bounds how long a test client waits for the server socket
	DialTimeout time.Duration `envconfig:"E2E_DIAL_TIMEOUT" default:"2s"`
	// E2E_READ_TIMEOUT bounds every single expected-line read
	ReadTimeout time.Duration `envconfig:"E2E_READ_TIMEOUT" default:"2s"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	return cfg, err
}

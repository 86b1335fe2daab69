package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// EnvConfig lists the environment variables the server reads. Unset
// variables stay nil and leave the current value alone. Where two names
// exist for one setting, the second listed wins.
type EnvConfig struct {
	Port                *string        `env:"PORT"`
	HTTPAddr            *string        `env:"HTTP_ADDR"`
	GRPCAddr            *string        `env:"GRPC_ADDR"`
	StorageDriver       *string        `env:"STORAGE_DRIVER"`
	MongoURI            *string        `env:"MONGODB_URI"`
	DatabaseURI         *string        `env:"DATABASE_URI"`
	MongoURIFallback    *string        `env:"MONGODB_URI_FALLBACK"`
	DatabaseURIFallback *string        `env:"DATABASE_URI_FALLBACK"`
	DatabaseName        *string        `env:"DATABASE_NAME"`
	ConnectTimeout      *time.Duration `env:"DB_CONNECT_TIMEOUT"`
	RetryDelay          *time.Duration `env:"DB_RETRY_DELAY"`
	SecretKey           *string        `env:"JWT_SECRET"`
	TokenValidity       *time.Duration `env:"JWT_EXPIRES_IN"`
	LogLevel            *string        `env:"LOG_LEVEL"`
	ReadTimeout         *time.Duration `env:"HTTP_READ_TIMEOUT"`
	WriteTimeout        *time.Duration `env:"HTTP_WRITE_TIMEOUT"`
	OTelEndpoint        *string        `env:"OTEL_ENDPOINT"`
}

func parseEnv(config *Config) error {
	var e EnvConfig
	if err := env.Parse(&e); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}

	if e.Port != nil && *e.Port != "" {
		config.HTTPAddr = ":" + *e.Port
	}
	setString(&config.HTTPAddr, e.HTTPAddr)
	setString(&config.GRPCAddr, e.GRPCAddr)
	setString(&config.StorageDriver, e.StorageDriver)
	setString(&config.DatabaseURI, e.MongoURI)
	setString(&config.DatabaseURI, e.DatabaseURI)
	setString(&config.DatabaseURIFallback, e.MongoURIFallback)
	setString(&config.DatabaseURIFallback, e.DatabaseURIFallback)
	setString(&config.DatabaseName, e.DatabaseName)
	setString(&config.SecretKey, e.SecretKey)
	setString(&config.LogLevel, e.LogLevel)
	setString(&config.OTelEndpoint, e.OTelEndpoint)

	setDuration(&config.ConnectTimeout, e.ConnectTimeout)
	setDuration(&config.RetryDelay, e.RetryDelay)
	setDuration(&config.TokenValidityDuration, e.TokenValidity)
	setDuration(&config.ReadTimeout, e.ReadTimeout)
	setDuration(&config.WriteTimeout, e.WriteTimeout)
	return nil
}

func setDuration(dst *time.Duration, v *time.Duration) {
	if v != nil {
		*dst = *v
	}
}

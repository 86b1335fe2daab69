// Package config handles configuration for the server component:
// defaults, an optional JSON or YAML file, environment variables and
// command-line flags, applied in that order.
package config

import (
	"os"
	"time"
)

// Config holds runtime settings for the book shelf server.
//
// DatabaseURI is tried first on every connection round and
// DatabaseURIFallback second; either may be empty. DatabaseName is only
// used by the mongo driver when the URI does not name a database.
// OTelEndpoint is the OTLP/HTTP collector URL; tracing is off when empty.
type Config struct {
	HTTPAddr              string
	GRPCAddr              string
	StorageDriver         string
	DatabaseURI           string
	DatabaseURIFallback   string
	DatabaseName          string
	ConnectTimeout        time.Duration
	RetryDelay            time.Duration
	SecretKey             string
	TokenValidityDuration time.Duration
	LogLevel              string
	ReadTimeout           time.Duration
	WriteTimeout          time.Duration
	OTelEndpoint          string
}

// LoadDefaults populates Config with development defaults.
// NOTE: the secret is insecure and must be overridden in production.
func (c *Config) LoadDefaults() {
	c.HTTPAddr = ":5000"
	c.GRPCAddr = ":50051"
	c.StorageDriver = "mongo"
	c.DatabaseURI = ""
	c.DatabaseURIFallback = "mongodb://mongodb:27017/bookmanagement"
	c.DatabaseName = "bookmanagement"
	c.ConnectTimeout = 5 * time.Second
	c.RetryDelay = 5 * time.Second
	c.SecretKey = "secretKey"
	c.TokenValidityDuration = 7 * 24 * time.Hour
	c.LogLevel = "info"
	c.ReadTimeout = 15 * time.Second
	c.WriteTimeout = 15 * time.Second
	c.OTelEndpoint = ""
}

// LoadConfig builds a Config from defaults, then the file named by -c/-config,
// then the environment, then command-line flags. It panics when a source
// cannot be read.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseFile(cfg, os.Args[1:])
	if err := parseEnv(cfg); err != nil {
		panic(err)
	}
	parseFlags(cfg, os.Args[1:])
	return cfg
}

package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ehsankhan420/SCD-FINAL-PROJECT/internal/flagx"
	"github.com/ehsankhan420/SCD-FINAL-PROJECT/internal/timex"
)

// FileConfig is the on-disk shape of the configuration. Durations accept
// "5s" style strings or integer nanoseconds. Fields left out of the file
// keep their current values.
type FileConfig struct {
	HTTPAddr              *string         `json:"http_addr" yaml:"http_addr"`
	GRPCAddr              *string         `json:"grpc_addr" yaml:"grpc_addr"`
	StorageDriver         *string         `json:"storage_driver" yaml:"storage_driver"`
	DatabaseURI           *string         `json:"database_uri" yaml:"database_uri"`
	DatabaseURIFallback   *string         `json:"database_uri_fallback" yaml:"database_uri_fallback"`
	DatabaseName          *string         `json:"database_name" yaml:"database_name"`
	ConnectTimeout        *timex.Duration `json:"connect_timeout" yaml:"connect_timeout"`
	RetryDelay            *timex.Duration `json:"retry_delay" yaml:"retry_delay"`
	SecretKey             *string         `json:"secret_key" yaml:"secret_key"`
	TokenValidityDuration *timex.Duration `json:"token_validity_duration" yaml:"token_validity_duration"`
	LogLevel              *string         `json:"log_level" yaml:"log_level"`
	ReadTimeout           *timex.Duration `json:"read_timeout" yaml:"read_timeout"`
	WriteTimeout          *timex.Duration `json:"write_timeout" yaml:"write_timeout"`
	OTelEndpoint          *string         `json:"otel_endpoint" yaml:"otel_endpoint"`
}

// parseFile overlays the file named by -c/-config in args. Files ending in
// .yaml or .yml are read as YAML, everything else as JSON. An unreadable or
// malformed file panics.
func parseFile(config *Config, args []string) {
	path := flagx.ConfigFile(args)

	// nothing to load
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	c := &FileConfig{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, c)
	default:
		err = json.Unmarshal(data, c)
	}
	if err != nil {
		panic(err)
	}

	c.apply(config)
}

func (c *FileConfig) apply(config *Config) {
	setString(&config.HTTPAddr, c.HTTPAddr)
	setString(&config.GRPCAddr, c.GRPCAddr)
	setString(&config.StorageDriver, c.StorageDriver)
	setString(&config.DatabaseURI, c.DatabaseURI)
	setString(&config.DatabaseURIFallback, c.DatabaseURIFallback)
	setString(&config.DatabaseName, c.DatabaseName)
	setString(&config.SecretKey, c.SecretKey)
	setString(&config.LogLevel, c.LogLevel)
	setString(&config.OTelEndpoint, c.OTelEndpoint)

	if c.ConnectTimeout != nil {
		config.ConnectTimeout = c.ConnectTimeout.Duration
	}
	if c.RetryDelay != nil {
		config.RetryDelay = c.RetryDelay.Duration
	}
	if c.TokenValidityDuration != nil {
		config.TokenValidityDuration = c.TokenValidityDuration.Duration
	}
	if c.ReadTimeout != nil {
		config.ReadTimeout = c.ReadTimeout.Duration
	}
	if c.WriteTimeout != nil {
		config.WriteTimeout = c.WriteTimeout.Duration
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

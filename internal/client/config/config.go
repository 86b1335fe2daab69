package config

import "time"

// Config holds runtime settings for the book shelf CLI.
//
// Fields:
//   - ServerURL: base URL of the REST API.
//   - TokenFile: where the session token is cached between runs.
//   - RequestTimeout: upper bound for a single API request.
type Config struct {
	ServerURL      string
	TokenFile      string
	RequestTimeout time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:5000"
	c.TokenFile = ".bookshelf_token"
	c.RequestTimeout = 10 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}

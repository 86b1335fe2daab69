package config

import (
	"flag"
	"time"

	"github.com/ehsankhan420/SCD-FINAL-PROJECT/internal/flagx"
)

// parseFlags populates server Config fields from command-line flags.
//
// Supported flags:
//
//	-a string       HTTP bind address (e.g., ":5000")
//	-g string       gRPC health bind address (e.g., ":50051")
//	-driver string  storage driver: mongo, postgres or sqlite
//	-d string       primary database URI
//	-f string       fallback database URI
//	-n string       database name (mongo)
//	-ct int         connect timeout, seconds
//	-rd int         retry delay, seconds
//	-s string       JWT HMAC secret key
//	-t int          token validity, hours
//	-l string       log level
//	-otel string    OTLP/HTTP trace collector URL
//
// args is filtered with flagx.FilterArgs first, so flags meant for other
// parsers (like -c) do not collide.
func parseFlags(config *Config, args []string) {
	args = flagx.FilterArgs(args, []string{"-a", "-g", "-driver", "-d", "-f", "-n", "-ct", "-rd", "-s", "-t", "-l", "-otel"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.HTTPAddr, "a", config.HTTPAddr, "address and port to run the HTTP server")
	fs.StringVar(&config.GRPCAddr, "g", config.GRPCAddr, "address and port to run the gRPC health server")
	fs.StringVar(&config.StorageDriver, "driver", config.StorageDriver, "storage driver (mongo, postgres, sqlite)")
	fs.StringVar(&config.DatabaseURI, "d", config.DatabaseURI, "primary database URI")
	fs.StringVar(&config.DatabaseURIFallback, "f", config.DatabaseURIFallback, "fallback database URI")
	fs.StringVar(&config.DatabaseName, "n", config.DatabaseName, "database name")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level (debug, info, warn, error)")
	fs.StringVar(&config.OTelEndpoint, "otel", config.OTelEndpoint, "OTLP/HTTP trace collector URL (empty disables tracing)")

	connectTimeout := fs.Int("ct", int(config.ConnectTimeout.Seconds()), "connect timeout (in seconds)")
	retryDelay := fs.Int("rd", int(config.RetryDelay.Seconds()), "retry delay (in seconds)")
	tokenValidity := fs.Int("t", int(config.TokenValidityDuration.Hours()), "token validity (in hours)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	// only overwrite durations that were given, so sub-unit values from
	// other sources survive
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "ct":
			config.ConnectTimeout = time.Duration(*connectTimeout) * time.Second
		case "rd":
			config.RetryDelay = time.Duration(*retryDelay) * time.Second
		case "t":
			config.TokenValidityDuration = time.Duration(*tokenValidity) * time.Hour
		}
	})
}

// Package config loads runtime configuration for the book shelf CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the REST API
//	-t string   path of the session token file
//
// # JSON schema
//
// The request timeout uses timex.Duration, so it can be either a string like
// "10s" or integer nanoseconds. Keys that are left out keep their defaults:
//
//	{
//	  "server_url": "http://127.0.0.1:5000",
//	  "token_file": ".bookshelf_token",
//	  "request_timeout": "10s"
//	}
package config

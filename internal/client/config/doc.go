// Package config loads runtime configuration for the submit CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-s string   base URL of the submission server
//	-t int      request timeout (seconds)
//
// # JSON schema
//
// The timeout may be a string like "30s" or integer nanoseconds:
//
//	{
//	  "server_url": "https://submit.example.com",
//	  "timeout": "30s"
//	}
package config

// Package config handles configuration for the submission server,
// including defaults, environment (.env) overlay, JSON overlay and
// command-line flags.
package config

import (
	"log/slog"
	"time"
)

const (
	StorageS3     = "s3"
	StorageMemory = "memory"

	MailResend = "resend"
	MailSMTP   = "smtp"
)

// Config holds runtime settings for the submission server.
//
// Fields:
//   - EndpointAddrHTTP: bind address of the HTTP listener.
//   - StorageBackend: "s3" or "memory".
//   - S3RootUser / S3RootPassword: credentials for the S3-compatible backend.
//   - S3Bucket / S3Region / S3BaseEndpoint: object storage settings.
//   - S3PublicBaseURL: prefix for public asset URLs; derived from
//     S3BaseEndpoint and S3Bucket when empty.
//   - MailProvider: "resend" or "smtp".
//   - MailFrom / MailTo: fixed sender and reviewer addresses.
//   - AnalyticsID: optional analytics tag rendered into the form page.
//   - DiscordBotToken / DiscordChannelID: optional reviewer channel alert;
//     enabled when the channel id is set.
//   - MaxBodyBytes: upper bound on the submission request body.
//   - StrictValidation: re-check required fields on the server.
type Config struct {
	EndpointAddrHTTP string
	StorageBackend   string
	S3RootUser       string
	S3RootPassword   string
	S3Bucket         string
	S3Region         string
	S3BaseEndpoint   string
	S3PublicBaseURL  string
	MailProvider     string
	ResendAPIKey     string
	SMTPHost         string
	SMTPPort         int
	SMTPUser         string
	SMTPPassword     string
	MailFrom         string
	MailTo           string
	AnalyticsID      string
	DiscordBotToken  string
	DiscordChannelID string
	MaxBodyBytes     int64
	StrictValidation bool
	ShutdownTimeout  time.Duration
	LogLevel         slog.Level
}

// LoadDefaults populates Config with development defaults.
// NOTE: credentials here are for a local MinIO and must be overridden.
func (c *Config) LoadDefaults() {
	c.EndpointAddrHTTP = ":8080"
	c.StorageBackend = StorageS3
	c.S3RootUser = "admin"
	c.S3RootPassword = "secretpassword"
	c.S3Bucket = "images"
	c.S3Region = "us-east-1"
	c.S3BaseEndpoint = "http://127.0.0.1:9000/"
	c.MailProvider = MailResend
	c.SMTPPort = 587
	c.MailFrom = "submissions@example.com"
	c.MailTo = "reviewer@example.com"
	c.MaxBodyBytes = 64 << 20
	c.ShutdownTimeout = 10 * time.Second
	c.LogLevel = slog.LevelInfo
}

// LoadConfig builds a Config by applying defaults, then overlaying the
// environment, an optional JSON file and finally command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}

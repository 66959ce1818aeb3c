package config

import (
	"encoding/json"
	"log/slog"
	"os"

	"github.com/dmitrijs2005/toolsubmit/internal/flagx"
	"github.com/dmitrijs2005/toolsubmit/internal/timex"
)

// JsonConfig is the DTO used for reading JSON configuration files. Pointer
// and zero-valued fields that are absent from the file leave the runtime
// Config untouched.
type JsonConfig struct {
	EndpointAddrHTTP string         `json:"endpoint_addr_http"`
	StorageBackend   string         `json:"storage_backend"`
	S3RootUser       string         `json:"s3_root_user"`
	S3RootPassword   string         `json:"s3_root_password"`
	S3Bucket         string         `json:"s3_bucket"`
	S3Region         string         `json:"s3_region"`
	S3BaseEndpoint   string         `json:"s3_base_endpoint"`
	S3PublicBaseURL  string         `json:"s3_public_base_url"`
	MailProvider     string         `json:"mail_provider"`
	ResendAPIKey     string         `json:"resend_api_key"`
	SMTPHost         string         `json:"smtp_host"`
	SMTPPort         int            `json:"smtp_port"`
	SMTPUser         string         `json:"smtp_user"`
	SMTPPassword     string         `json:"smtp_password"`
	MailFrom         string         `json:"mail_from"`
	MailTo           string         `json:"mail_to"`
	AnalyticsID      string         `json:"analytics_id"`
	DiscordBotToken  string         `json:"discord_bot_token"`
	DiscordChannelID string         `json:"discord_channel_id"`
	MaxBodyBytes     int64          `json:"max_body_bytes"`
	StrictValidation *bool          `json:"strict_validation"`
	ShutdownTimeout  timex.Duration `json:"shutdown_timeout"`
	LogLevel         *slog.Level    `json:"log_level"`
}

// parseJson loads the file named by -c / -config (if any) into config.
// It panics if the file cannot be read or contains invalid JSON.
func parseJson(config *Config) {

	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	err = json.Unmarshal(file, c)
	if err != nil {
		panic(err)
	}

	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}

	set(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	set(&config.StorageBackend, c.StorageBackend)
	set(&config.S3RootUser, c.S3RootUser)
	set(&config.S3RootPassword, c.S3RootPassword)
	set(&config.S3Bucket, c.S3Bucket)
	set(&config.S3Region, c.S3Region)
	set(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	set(&config.S3PublicBaseURL, c.S3PublicBaseURL)
	set(&config.MailProvider, c.MailProvider)
	set(&config.ResendAPIKey, c.ResendAPIKey)
	set(&config.SMTPHost, c.SMTPHost)
	set(&config.SMTPUser, c.SMTPUser)
	set(&config.SMTPPassword, c.SMTPPassword)
	set(&config.MailFrom, c.MailFrom)
	set(&config.MailTo, c.MailTo)
	set(&config.AnalyticsID, c.AnalyticsID)
	set(&config.DiscordBotToken, c.DiscordBotToken)
	set(&config.DiscordChannelID, c.DiscordChannelID)

	if c.SMTPPort != 0 {
		config.SMTPPort = c.SMTPPort
	}
	if c.MaxBodyBytes != 0 {
		config.MaxBodyBytes = c.MaxBodyBytes
	}
	if c.StrictValidation != nil {
		config.StrictValidation = *c.StrictValidation
	}
	if c.ShutdownTimeout.Duration != 0 {
		config.ShutdownTimeout = c.ShutdownTimeout.Duration
	}
	if c.LogLevel != nil {
		config.LogLevel = *c.LogLevel
	}
}

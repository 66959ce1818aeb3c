package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config with environment variables. A .env file in the
// working directory is loaded first when present; variables already set in
// the process environment win over the file.
//
// Malformed numeric, boolean or duration values panic, matching the JSON
// and flag layers.
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	str := func(key string, dst *string) {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			*dst = v
		}
	}

	str("HTTP_ADDR", &cfg.EndpointAddrHTTP)
	str("STORAGE_BACKEND", &cfg.StorageBackend)
	str("S3_ROOT_USER", &cfg.S3RootUser)
	str("S3_ROOT_PASSWORD", &cfg.S3RootPassword)
	str("S3_BUCKET", &cfg.S3Bucket)
	str("S3_REGION", &cfg.S3Region)
	str("S3_BASE_ENDPOINT", &cfg.S3BaseEndpoint)
	str("S3_PUBLIC_BASE_URL", &cfg.S3PublicBaseURL)
	str("MAIL_PROVIDER", &cfg.MailProvider)
	str("RESEND_API_KEY", &cfg.ResendAPIKey)
	str("SMTP_HOST", &cfg.SMTPHost)
	str("SMTP_USER", &cfg.SMTPUser)
	str("SMTP_PASSWORD", &cfg.SMTPPassword)
	str("MAIL_FROM", &cfg.MailFrom)
	str("MAIL_TO", &cfg.MailTo)
	str("ANALYTICS_ID", &cfg.AnalyticsID)
	str("DISCORD_BOT_TOKEN", &cfg.DiscordBotToken)
	str("DISCORD_CHANNEL_ID", &cfg.DiscordChannelID)

	if v, ok := os.LookupEnv("SMTP_PORT"); ok && v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			panic(err)
		}
		cfg.SMTPPort = port
	}

	if v, ok := os.LookupEnv("MAX_BODY_BYTES"); ok && v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			panic(err)
		}
		cfg.MaxBodyBytes = n
	}

	if v, ok := os.LookupEnv("STRICT_VALIDATION"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			panic(err)
		}
		cfg.StrictValidation = b
	}

	if v, ok := os.LookupEnv("SHUTDOWN_TIMEOUT"); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			panic(err)
		}
		cfg.ShutdownTimeout = d
	}

	if v, ok := os.LookupEnv("LOG_LEVEL"); ok && v != "" {
		var level slog.Level
		if err := level.UnmarshalText([]byte(v)); err != nil {
			panic(err)
		}
		cfg.LogLevel = level
	}
}

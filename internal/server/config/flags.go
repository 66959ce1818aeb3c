package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/toolsubmit/internal/flagx"
)

var serverFlags = []string{
	"-a", "-u", "-p", "-b", "-g", "-e", "-public-url",
	"-storage", "-mailer", "-resend-key", "-from", "-to",
	"-smtp-host", "-smtp-port", "-smtp-user", "-smtp-password",
	"-analytics", "-max-body", "-strict", "-shutdown",
	"-discord-token", "-discord-channel",
}

// parseFlags populates Config fields from command-line flags.
//
// Supported flags:
//
//	-a string           HTTP bind address (e.g., ":8080")
//	-u string           S3 root user
//	-p string           S3 root password
//	-b string           S3 bucket name
//	-g string           S3 region
//	-e string           S3 base endpoint (e.g., "http://127.0.0.1:9000/")
//	-public-url string  public base URL for stored assets
//	-storage string     storage backend: s3 | memory
//	-mailer string      mail provider: resend | smtp
//	-resend-key string  Resend API key
//	-from, -to string   sender and reviewer addresses
//	-smtp-host, -smtp-port, -smtp-user, -smtp-password
//	-analytics string   analytics id rendered into the form page
//	-max-body int       request body limit in bytes
//	-strict             re-check required fields on the server
//	-shutdown int       graceful shutdown timeout, seconds
//	-discord-token, -discord-channel
//	                    bot token and channel id for reviewer alerts
//
// os.Args is filtered through flagx.FilterArgs first so -c/-config and
// unrelated flags do not trip the parser. Bool flags must be written as
// "-strict" or "-strict=false".
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], serverFlags)

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")
	fs.StringVar(&config.S3PublicBaseURL, "public-url", config.S3PublicBaseURL, "public base URL for stored assets")
	fs.StringVar(&config.StorageBackend, "storage", config.StorageBackend, "storage backend (s3|memory)")
	fs.StringVar(&config.MailProvider, "mailer", config.MailProvider, "mail provider (resend|smtp)")
	fs.StringVar(&config.ResendAPIKey, "resend-key", config.ResendAPIKey, "Resend API key")
	fs.StringVar(&config.MailFrom, "from", config.MailFrom, "sender address")
	fs.StringVar(&config.MailTo, "to", config.MailTo, "reviewer address")
	fs.StringVar(&config.SMTPHost, "smtp-host", config.SMTPHost, "SMTP host")
	fs.IntVar(&config.SMTPPort, "smtp-port", config.SMTPPort, "SMTP port")
	fs.StringVar(&config.SMTPUser, "smtp-user", config.SMTPUser, "SMTP user")
	fs.StringVar(&config.SMTPPassword, "smtp-password", config.SMTPPassword, "SMTP password")
	fs.StringVar(&config.AnalyticsID, "analytics", config.AnalyticsID, "analytics id")
	fs.Int64Var(&config.MaxBodyBytes, "max-body", config.MaxBodyBytes, "request body limit (bytes)")
	fs.StringVar(&config.DiscordBotToken, "discord-token", config.DiscordBotToken, "Discord bot token")
	fs.StringVar(&config.DiscordChannelID, "discord-channel", config.DiscordChannelID, "Discord channel id for reviewer alerts")
	fs.BoolVar(&config.StrictValidation, "strict", config.StrictValidation, "validate required fields on the server")

	shutdown := fs.Int("shutdown", int(config.ShutdownTimeout.Seconds()), "graceful shutdown timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.ShutdownTimeout = time.Duration(*shutdown) * time.Second
}

// Package server wires configuration, storage, mail delivery and the HTTP
// surface together and runs the submission server until it is signalled
// to stop.
package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/toolsubmit/internal/logging"
	"github.com/dmitrijs2005/toolsubmit/internal/server/chat"
	"github.com/dmitrijs2005/toolsubmit/internal/server/config"
	"github.com/dmitrijs2005/toolsubmit/internal/server/httpapi"
	"github.com/dmitrijs2005/toolsubmit/internal/server/mail"
	"github.com/dmitrijs2005/toolsubmit/internal/server/services"
	"github.com/dmitrijs2005/toolsubmit/internal/server/storage"
)

type App struct {
	config *config.Config
	logger logging.Logger
	server *httpapi.Server
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewJSONLogger(os.Stdout, c.LogLevel)
	return newApp(ctx, c, logger)
}

func newApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	uploader, assets, err := newStorage(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("storage init error: %w", err)
	}

	mailer, err := newMailer(c)
	if err != nil {
		return nil, fmt.Errorf("mailer init error: %w", err)
	}

	announcer, err := newAnnouncer(c)
	if err != nil {
		return nil, fmt.Errorf("chat alert init error: %w", err)
	}

	processor := services.NewProcessor(uploader, mailer, services.ProcessorOptions{
		From:             c.MailFrom,
		To:               c.MailTo,
		StrictValidation: c.StrictValidation,
		Announcer:        announcer,
	}, logger)

	router := httpapi.NewRouter(httpapi.Deps{
		Processor:    processor,
		Logger:       logger,
		MaxBodyBytes: c.MaxBodyBytes,
		AnalyticsID:  c.AnalyticsID,
		Assets:       assets,
	})

	srv := httpapi.NewServer(c.EndpointAddrHTTP, router, logger, c.ShutdownTimeout)

	logger.Info(ctx, "app configured", "storage", c.StorageBackend, "mailer", c.MailProvider,
		"strict_validation", c.StrictValidation, "chat_alerts", announcer != nil)

	return &App{config: c, logger: logger, server: srv}, nil
}

// newStorage returns the configured uploader. The memory backend is also
// returned as a handler so its objects are served by the app itself.
func newStorage(ctx context.Context, c *config.Config) (storage.Uploader, http.Handler, error) {
	switch c.StorageBackend {
	case config.StorageS3:
		s, err := storage.NewS3Storage(ctx, storage.S3Options{
			AccessKey:     c.S3RootUser,
			SecretKey:     c.S3RootPassword,
			Bucket:        c.S3Bucket,
			Region:        c.S3Region,
			BaseEndpoint:  c.S3BaseEndpoint,
			PublicBaseURL: c.S3PublicBaseURL,
		})
		if err != nil {
			return nil, nil, err
		}
		return s, nil, nil
	case config.StorageMemory:
		base := c.S3PublicBaseURL
		if base == "" {
			base = localBaseURL(c.EndpointAddrHTTP) + httpapi.AssetsPrefix
		}
		m := storage.NewMemoryStorage(base)
		return m, m, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", c.StorageBackend)
	}
}

func newMailer(c *config.Config) (mail.Mailer, error) {
	switch c.MailProvider {
	case config.MailResend:
		return mail.NewResendMailer(c.ResendAPIKey)
	case config.MailSMTP:
		return mail.NewSMTPMailer(mail.SMTPOptions{
			Host:     c.SMTPHost,
			Port:     c.SMTPPort,
			User:     c.SMTPUser,
			Password: c.SMTPPassword,
		})
	default:
		return nil, fmt.Errorf("unknown mail provider %q", c.MailProvider)
	}
}

// newAnnouncer returns nil when no reviewer channel is configured.
func newAnnouncer(c *config.Config) (chat.Announcer, error) {
	if c.DiscordChannelID == "" {
		return nil, nil
	}
	d, err := chat.NewDiscordAnnouncer(c.DiscordBotToken, c.DiscordChannelID)
	if err != nil {
		return nil, err
	}
	return d, nil
}

// localBaseURL turns a listen address such as ":8080" into a URL a
// browser on the same machine can reach.
func localBaseURL(addr string) string {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return "http://localhost"
	}
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "localhost"
	}
	return "http://" + net.JoinHostPort(host, port)
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.server.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run blocks until the server stops, either on a signal, on cancellation
// of ctx or because it failed to start.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	app.logger.Info(ctx, "App stopped")
}

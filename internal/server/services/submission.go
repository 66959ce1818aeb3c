package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrijs2005/toolsubmit/internal/common"
	"github.com/dmitrijs2005/toolsubmit/internal/datauri"
	"github.com/dmitrijs2005/toolsubmit/internal/logging"
	"github.com/dmitrijs2005/toolsubmit/internal/server/chat"
	"github.com/dmitrijs2005/toolsubmit/internal/server/mail"
	"github.com/dmitrijs2005/toolsubmit/internal/server/notify"
	"github.com/dmitrijs2005/toolsubmit/internal/server/storage"
	"github.com/dmitrijs2005/toolsubmit/internal/submission"
)

// ProcessorOptions holds the fixed addressing and validation settings.
// Announcer is optional.
type ProcessorOptions struct {
	From             string
	To               string
	StrictValidation bool
	Announcer        chat.Announcer
}

// Result summarises one processed submission.
type Result struct {
	LogoURL        *string
	ScreenshotURLs []string
	EmailSent      bool
	MessageID      string
}

// Processor turns one submission into stored assets plus a delivered
// reviewer notification.
type Processor struct {
	storage storage.Uploader
	mailer  mail.Mailer
	opts    ProcessorOptions
	logger  logging.Logger
	now     func() time.Time
}

func NewProcessor(u storage.Uploader, m mail.Mailer, opts ProcessorOptions, l logging.Logger) *Processor {
	return &Processor{
		storage: u,
		mailer:  m,
		opts:    opts,
		logger:  l.With("module", "processor"),
		now:     time.Now,
	}
}

// LogoKey is the storage key of a submission's logo.
func LogoKey(name string, ts time.Time) string {
	return fmt.Sprintf("logos/%s-%d-logo.png", keyName(name), ts.UnixMilli())
}

// ScreenshotKey is the storage key of the n-th (1-based) screenshot.
func ScreenshotKey(name string, ts time.Time, n int) string {
	return fmt.Sprintf("screenshots/%s-%d-screenshot-%d.png", keyName(name), ts.UnixMilli(), n)
}

// keyName keeps the product name from introducing extra path segments.
func keyName(name string) string {
	return strings.ReplaceAll(strings.TrimSpace(name), "/", "-")
}

// DecodeAndUpload decodes a data URI and stores it under key, returning the
// public URL. Nothing is written when decoding fails.
func (p *Processor) DecodeAndUpload(ctx context.Context, blob, key string) (string, error) {
	data, err := datauri.Decode(blob)
	if err != nil {
		return "", err
	}

	if err := p.storage.Put(ctx, key, data, common.ImageContentType); err != nil {
		if !errors.Is(err, common.ErrUpload) {
			err = fmt.Errorf("%w: %v", common.ErrUpload, err)
		}
		return "", err
	}

	logging.FromContext(ctx, p.logger).Debug(ctx, "asset uploaded", "key", key, "bytes", len(data))

	return p.storage.PublicURL(key), nil
}

// Process uploads the logo and up to submission.MaxScreenshots screenshots
// concurrently, then renders and emails the notification.
//
// The first asset failure cancels the remaining uploads and aborts the
// request. Assets already written are left in storage, and a delivery
// failure does not remove them either.
func (p *Processor) Process(ctx context.Context, s *submission.Submission) (*Result, error) {
	log := logging.FromContext(ctx, p.logger)

	if n := len(s.Screenshots); n > submission.MaxScreenshots {
		log.Warn(ctx, "screenshots over the cap dropped", "received", n, "kept", submission.MaxScreenshots)
		trimmed := *s
		trimmed.Screenshots = s.Screenshots[:submission.MaxScreenshots]
		s = &trimmed
	}

	if err := submission.ValidateStructure(s); err != nil {
		return nil, err
	}
	if p.opts.StrictValidation {
		if err := submission.ValidateRequired(s); err != nil {
			return nil, err
		}
	}

	logoURL, screenshotURLs, err := p.uploadAssets(ctx, s)
	if err != nil {
		log.Error(ctx, "asset upload failed", "name", s.Name, "error", err)
		return nil, err
	}

	doc, err := notify.Render(s, logoURL, screenshotURLs)
	if err != nil {
		return nil, err
	}

	id, err := p.Dispatch(ctx, doc)
	if err != nil {
		log.Error(ctx, "notification not delivered", "name", s.Name, "error", err)
		return nil, err
	}

	if p.opts.Announcer != nil {
		alert := chat.Alert{Submission: s, LogoURL: logoURL, ScreenshotURLs: screenshotURLs}
		if err := p.opts.Announcer.Announce(ctx, alert); err != nil {
			log.Warn(ctx, "reviewer channel alert failed", "name", s.Name, "error", err)
		}
	}

	log.Info(ctx, "submission processed", "name", s.Name, "screenshots", len(screenshotURLs), "logo", logoURL != nil, "message_id", id)

	return &Result{LogoURL: logoURL, ScreenshotURLs: screenshotURLs, EmailSent: true, MessageID: id}, nil
}

func (p *Processor) uploadAssets(ctx context.Context, s *submission.Submission) (*string, []string, error) {
	ts := p.now()

	g, gctx := errgroup.WithContext(ctx)

	var logoURL *string
	if s.HasLogo() {
		key := LogoKey(s.Name, ts)
		g.Go(func() error {
			u, err := p.DecodeAndUpload(gctx, *s.Logo, key)
			if err != nil {
				return fmt.Errorf("logo: %w", err)
			}
			logoURL = &u
			return nil
		})
	}

	screenshotURLs := make([]string, len(s.Screenshots))
	for i, blob := range s.Screenshots {
		key := ScreenshotKey(s.Name, ts, i+1)
		g.Go(func() error {
			u, err := p.DecodeAndUpload(gctx, blob, key)
			if err != nil {
				return fmt.Errorf("screenshot %d: %w", i+1, err)
			}
			screenshotURLs[i] = u
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	return logoURL, screenshotURLs, nil
}

// Dispatch sends doc to the configured reviewer from the configured sender.
func (p *Processor) Dispatch(ctx context.Context, doc notify.Document) (string, error) {
	id, err := p.mailer.Send(ctx, mail.Message{
		From:    p.opts.From,
		To:      []string{p.opts.To},
		Subject: doc.Subject,
		HTML:    doc.HTML,
	})
	if err != nil {
		if !errors.Is(err, common.ErrDelivery) {
			err = fmt.Errorf("%w: %v", common.ErrDelivery, err)
		}
		return "", err
	}
	return id, nil
}

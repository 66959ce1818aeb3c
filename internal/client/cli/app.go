package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/dmitrijs2005/toolsubmit/internal/client/client"
	"github.com/dmitrijs2005/toolsubmit/internal/client/config"
	"github.com/dmitrijs2005/toolsubmit/internal/client/form"
	"github.com/dmitrijs2005/toolsubmit/internal/logging"
	"github.com/dmitrijs2005/toolsubmit/internal/submission"
)

const confirmation = `Application Submitted Successfully!
Thank you for applying to have your software tested. We've received your application and will review it shortly.
If your product aligns with our standards, we'll be in touch soon with next steps.
`

// Options are the per-run inputs of the submit command.
type Options struct {
	DraftPath       string
	LogoPath        string
	ScreenshotPaths []string
}

type App struct {
	config    *config.Config
	opts      Options
	submitter *client.Submitter
	logger    logging.Logger
	reader    *bufio.Reader
	out       io.Writer
}

func NewApp(c *config.Config, opts Options, in io.Reader, out io.Writer, l logging.Logger) *App {
	httpClient := &http.Client{Timeout: c.Timeout}
	return &App{
		config:    c,
		opts:      opts,
		submitter: client.NewSubmitter(c.ServerURL, httpClient, l),
		logger:    l,
		reader:    bufio.NewReader(in),
		out:       out,
	}
}

// Run builds the form, submits it and prints the confirmation.
func (a *App) Run(ctx context.Context) error {
	f, err := a.buildForm()
	if err != nil {
		return err
	}

	resp, err := a.submitter.Submit(ctx, f)
	if err != nil {
		return err
	}

	fmt.Fprint(a.out, confirmation)
	if resp.LogoURL != nil {
		fmt.Fprintf(a.out, "Logo: %s\n", *resp.LogoURL)
	}
	for i, u := range resp.ValidScreenshotURLs {
		fmt.Fprintf(a.out, "Screenshot %d: %s\n", i+1, u)
	}
	return nil
}

func (a *App) buildForm() (form.Form, error) {
	var f form.Form

	if a.opts.DraftPath != "" {
		d, err := loadDraft(a.opts.DraftPath)
		if err != nil {
			return f, err
		}
		f = form.FromDraft(d)
	} else {
		var err error
		if f, err = promptForm(a.reader, a.out, form.New()); err != nil {
			return f, err
		}
	}

	if a.opts.LogoPath != "" {
		logo, err := form.LoadAsset(a.opts.LogoPath)
		if err != nil {
			return f, fmt.Errorf("logo: %w", err)
		}
		f = f.SetLogo(logo)
	}

	shots := make([]form.Asset, 0, len(a.opts.ScreenshotPaths))
	for _, p := range a.opts.ScreenshotPaths {
		s, err := form.LoadAsset(p)
		if err != nil {
			return f, fmt.Errorf("screenshot: %w", err)
		}
		shots = append(shots, s)
	}
	if len(shots) > submission.MaxScreenshots {
		a.logger.Warn(context.Background(), "extra screenshots ignored", "given", len(shots), "kept", submission.MaxScreenshots)
	}
	return f.AddScreenshots(shots...), nil
}

func loadDraft(path string) (submission.Submission, error) {
	var d submission.Submission
	data, err := os.ReadFile(path)
	if err != nil {
		return d, err
	}
	if err := json.Unmarshal(data, &d); err != nil {
		return d, fmt.Errorf("draft %s: %w", path, err)
	}
	return d, nil
}

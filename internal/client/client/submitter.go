package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrijs2005/toolsubmit/internal/client/form"
	"github.com/dmitrijs2005/toolsubmit/internal/common"
	"github.com/dmitrijs2005/toolsubmit/internal/logging"
	"github.com/dmitrijs2005/toolsubmit/internal/submission"
)

// maxErrorBody bounds how much of an unparseable error reply is kept.
const maxErrorBody = 4 << 10

type Submitter struct {
	endpointURL string
	httpClient  *http.Client
	logger      logging.Logger
	submitting  atomic.Bool
}

// NewSubmitter posts to serverURL's apply endpoint. A nil httpClient means
// http.DefaultClient.
func NewSubmitter(serverURL string, httpClient *http.Client, l logging.Logger) *Submitter {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Submitter{
		endpointURL: strings.TrimRight(serverURL, "/") + common.ApplyPath,
		httpClient:  httpClient,
		logger:      l.With("module", "submitter"),
	}
}

// Submitting reports whether a submission is in flight.
func (s *Submitter) Submitting() bool {
	return s.submitting.Load()
}

// Submit validates, encodes and sends f. A call made while another is in
// flight fails with common.ErrSubmitInProgress.
func (s *Submitter) Submit(ctx context.Context, f form.Form) (*submission.Response, error) {
	if !s.submitting.CompareAndSwap(false, true) {
		return nil, common.ErrSubmitInProgress
	}
	defer s.submitting.Store(false)

	resp, err := s.submit(ctx, f)
	if err != nil {
		s.logger.Error(ctx, "submission failed", "error", err)
		return nil, err
	}

	s.logger.Info(ctx, "submission accepted", "screenshots", len(resp.ValidScreenshotURLs), "logo", resp.LogoURL != nil)
	return resp, nil
}

func (s *Submitter) submit(ctx context.Context, f form.Form) (*submission.Response, error) {
	payload := f.Fields()
	if err := submission.Validate(&payload); err != nil {
		return nil, err
	}

	logo, screenshots, err := encodeAssets(ctx, f)
	if err != nil {
		return nil, err
	}
	payload.Logo = logo
	payload.Screenshots = screenshots

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpointURL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	s.logger.Debug(ctx, "posting submission", "url", s.endpointURL, "bytes", len(body))

	res, err := s.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, statusError(res)
	}

	var out submission.Response
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &out, nil
}

// encodeAssets turns the logo and screenshots into data URIs concurrently,
// keeping screenshot order.
func encodeAssets(ctx context.Context, f form.Form) (*string, []string, error) {
	g, gctx := errgroup.WithContext(ctx)

	var logo *string
	if a, ok := f.Logo(); ok {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			uri := a.DataURI()
			logo = &uri
			return nil
		})
	}

	shots := f.Screenshots()
	encoded := make([]string, len(shots))
	for i, a := range shots {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			encoded[i] = a.DataURI()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return logo, encoded, nil
}

// StatusError is a non-200 reply from the server. It matches
// common.ErrUnexpectedStatus, and common.ErrValidation for a 400.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %d: %s", common.ErrUnexpectedStatus, e.Code, e.Message)
}

func (e *StatusError) Is(target error) bool {
	switch target {
	case common.ErrUnexpectedStatus:
		return true
	case common.ErrValidation:
		return e.Code == http.StatusBadRequest
	}
	return false
}

func statusError(res *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(res.Body, maxErrorBody))

	msg := strings.TrimSpace(string(raw))
	var er submission.ErrorResponse
	if json.Unmarshal(raw, &er) == nil && er.Error != "" {
		msg = er.Error
	}

	return &StatusError{Code: res.StatusCode, Message: msg}
}

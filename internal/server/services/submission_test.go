package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/toolsubmit/internal/common"
	"github.com/dmitrijs2005/toolsubmit/internal/datauri"
	"github.com/dmitrijs2005/toolsubmit/internal/logging"
	"github.com/dmitrijs2005/toolsubmit/internal/server/chat"
	"github.com/dmitrijs2005/toolsubmit/internal/server/mail"
	"github.com/dmitrijs2005/toolsubmit/internal/server/storage"
	"github.com/dmitrijs2005/toolsubmit/internal/submission"
)

// ---- fakes ----

type fakeUploader struct {
	*storage.MemoryStorage

	mu     sync.Mutex
	calls  []string
	failOn string
}

func newFakeUploader() *fakeUploader {
	return &fakeUploader{MemoryStorage: storage.NewMemoryStorage("https://cdn.test")}
}

func (f *fakeUploader) Put(ctx context.Context, key string, body []byte, contentType string) error {
	f.mu.Lock()
	f.calls = append(f.calls, key)
	f.mu.Unlock()

	if f.failOn != "" && strings.Contains(key, f.failOn) {
		return errors.New("storage rejected " + key)
	}
	return f.MemoryStorage.Put(ctx, key, body, contentType)
}

func (f *fakeUploader) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

type fakeMailer struct {
	sent []mail.Message
	err  error
}

func (f *fakeMailer) Send(ctx context.Context, m mail.Message) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.sent = append(f.sent, m)
	return "msg-1", nil
}

type fakeAnnouncer struct {
	alerts []chat.Alert
	err    error
}

func (f *fakeAnnouncer) Announce(ctx context.Context, a chat.Alert) error {
	f.alerts = append(f.alerts, a)
	return f.err
}

// ---- helpers ----

var fixedNow = time.UnixMilli(1700000000123)

func newTestProcessor(u storage.Uploader, m mail.Mailer, strict bool) *Processor {
	p := NewProcessor(u, m, ProcessorOptions{
		From:             "submissions@example.com",
		To:               "reviewer@example.com",
		StrictValidation: strict,
	}, logging.Nop{})
	p.now = func() time.Time { return fixedNow }
	return p
}

func png(tag string) string {
	return datauri.Encode("image/png", []byte("png-"+tag))
}

func acme() *submission.Submission {
	return &submission.Submission{
		Name:         "Acme",
		Screenshots:  []string{},
		PricingTiers: []submission.PricingTier{{Name: "Pro", Price: 29, Features: []string{"SSO"}}},
		BestFor:      []string{"SMBs"},
		Features:     []string{"Export"},
	}
}

// ---- tests ----

func TestKeys(t *testing.T) {
	assert.Equal(t, "logos/Acme-1700000000123-logo.png", LogoKey("Acme", fixedNow))
	assert.Equal(t, "screenshots/Acme-1700000000123-screenshot-3.png", ScreenshotKey("Acme", fixedNow, 3))
	assert.Equal(t, "logos/A-B-1700000000123-logo.png", LogoKey(" A/B ", fixedNow))
}

func TestDecodeAndUpload(t *testing.T) {
	u := newFakeUploader()
	p := newTestProcessor(u, &fakeMailer{}, false)

	url, err := p.DecodeAndUpload(context.Background(), png("x"), "logos/x.png")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.test/logos/x.png", url)

	o, ok := u.Get("logos/x.png")
	require.True(t, ok)
	assert.Equal(t, []byte("png-x"), o.Body)
	assert.Equal(t, "image/png", o.ContentType)
}

func TestDecodeAndUpload_NoMarkerSkipsStorage(t *testing.T) {
	u := newFakeUploader()
	p := newTestProcessor(u, &fakeMailer{}, false)

	_, err := p.DecodeAndUpload(context.Background(), "data:image/png,cG5n", "logos/x.png")
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrInvalidEncoding)
	assert.Zero(t, u.callCount())
}

func TestDecodeAndUpload_StorageError(t *testing.T) {
	u := newFakeUploader()
	u.failOn = "logos"
	p := newTestProcessor(u, &fakeMailer{}, false)

	_, err := p.DecodeAndUpload(context.Background(), png("x"), "logos/x.png")
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrUpload)
	assert.Contains(t, err.Error(), "storage rejected logos/x.png")
}

func TestProcess_AcmeScenario(t *testing.T) {
	u := newFakeUploader()
	m := &fakeMailer{}
	p := newTestProcessor(u, m, false)

	res, err := p.Process(context.Background(), acme())
	require.NoError(t, err)

	assert.Zero(t, u.callCount())
	require.Len(t, m.sent, 1)
	assert.Equal(t, "New Tool Submission: Acme", m.sent[0].Subject)
	assert.Equal(t, "submissions@example.com", m.sent[0].From)
	assert.Equal(t, []string{"reviewer@example.com"}, m.sent[0].To)
	assert.NotContains(t, m.sent[0].HTML, `alt="Logo"`)

	assert.Nil(t, res.LogoURL)
	assert.Empty(t, res.ScreenshotURLs)
	assert.NotNil(t, res.ScreenshotURLs)
	assert.True(t, res.EmailSent)
	assert.Equal(t, "msg-1", res.MessageID)
}

func TestProcess_UploadsInOrder(t *testing.T) {
	u := newFakeUploader()
	m := &fakeMailer{}
	p := newTestProcessor(u, m, false)

	s := acme()
	logo := png("logo")
	s.Logo = &logo
	for i := 1; i <= 4; i++ {
		s.Screenshots = append(s.Screenshots, png(string(rune('a'+i))))
	}

	res, err := p.Process(context.Background(), s)
	require.NoError(t, err)

	assert.Equal(t, 5, u.callCount())
	require.NotNil(t, res.LogoURL)
	assert.Equal(t, "https://cdn.test/logos/Acme-1700000000123-logo.png", *res.LogoURL)
	assert.Equal(t, []string{
		"https://cdn.test/screenshots/Acme-1700000000123-screenshot-1.png",
		"https://cdn.test/screenshots/Acme-1700000000123-screenshot-2.png",
		"https://cdn.test/screenshots/Acme-1700000000123-screenshot-3.png",
		"https://cdn.test/screenshots/Acme-1700000000123-screenshot-4.png",
	}, res.ScreenshotURLs)

	o, ok := u.Get("screenshots/Acme-1700000000123-screenshot-2.png")
	require.True(t, ok)
	assert.Equal(t, []byte("png-c"), o.Body)

	html := m.sent[0].HTML
	assert.Contains(t, html, *res.LogoURL)
	assert.Less(t, strings.Index(html, res.ScreenshotURLs[0]), strings.Index(html, res.ScreenshotURLs[3]))
}

func TestProcess_TruncatesScreenshots(t *testing.T) {
	u := newFakeUploader()
	p := newTestProcessor(u, &fakeMailer{}, false)

	s := acme()
	for i := 0; i < 12; i++ {
		s.Screenshots = append(s.Screenshots, png("s"))
	}

	res, err := p.Process(context.Background(), s)
	require.NoError(t, err)

	assert.Len(t, res.ScreenshotURLs, submission.MaxScreenshots)
	assert.Equal(t, submission.MaxScreenshots, u.callCount())
	assert.Len(t, s.Screenshots, 12, "caller's submission is not modified")
}

func TestProcess_StorageFailureAborts(t *testing.T) {
	u := newFakeUploader()
	u.failOn = "screenshot-2"
	m := &fakeMailer{}
	p := newTestProcessor(u, m, false)

	s := acme()
	s.Screenshots = []string{png("1"), png("2"), png("3")}

	res, err := p.Process(context.Background(), s)
	require.Error(t, err)
	assert.Nil(t, res)
	assert.ErrorIs(t, err, common.ErrUpload)
	assert.Contains(t, err.Error(), "screenshot 2")
	assert.Empty(t, m.sent)
}

func TestProcess_InvalidEncodingAborts(t *testing.T) {
	u := newFakeUploader()
	p := newTestProcessor(u, &fakeMailer{}, false)

	s := acme()
	bad := "not a data uri"
	s.Logo = &bad

	_, err := p.Process(context.Background(), s)
	assert.ErrorIs(t, err, common.ErrInvalidEncoding)
	assert.Zero(t, u.callCount())
}

func TestProcess_DeliveryFailureKeepsAssets(t *testing.T) {
	u := newFakeUploader()
	m := &fakeMailer{err: errors.New("provider down")}
	p := newTestProcessor(u, m, false)

	s := acme()
	logo := png("logo")
	s.Logo = &logo
	s.Screenshots = []string{png("1")}

	_, err := p.Process(context.Background(), s)
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrDelivery)
	assert.Contains(t, err.Error(), "provider down")

	assert.Equal(t, []string{
		"logos/Acme-1700000000123-logo.png",
		"screenshots/Acme-1700000000123-screenshot-1.png",
	}, u.Keys())
}

func TestProcess_Validation(t *testing.T) {
	p := newTestProcessor(newFakeUploader(), &fakeMailer{}, false)

	s := acme()
	s.PricingTiers[0].Price = -5
	_, err := p.Process(context.Background(), s)
	assert.ErrorIs(t, err, common.ErrValidation)

	strict := newTestProcessor(newFakeUploader(), &fakeMailer{}, true)
	_, err = strict.Process(context.Background(), acme())
	assert.ErrorIs(t, err, common.ErrValidation)
	assert.Contains(t, err.Error(), "email is required")
}

func TestProcess_AnnouncesAfterDelivery(t *testing.T) {
	a := &fakeAnnouncer{}
	p := NewProcessor(newFakeUploader(), &fakeMailer{}, ProcessorOptions{To: "r@x", Announcer: a}, logging.Nop{})

	s := acme()
	s.Screenshots = []string{png("1")}

	res, err := p.Process(context.Background(), s)
	require.NoError(t, err)

	require.Len(t, a.alerts, 1)
	assert.Equal(t, "Acme", a.alerts[0].Submission.Name)
	assert.Equal(t, res.ScreenshotURLs, a.alerts[0].ScreenshotURLs)
	assert.Nil(t, a.alerts[0].LogoURL)
}

func TestProcess_AnnouncerFailureIsNotFatal(t *testing.T) {
	a := &fakeAnnouncer{err: errors.New("discord down")}
	p := NewProcessor(newFakeUploader(), &fakeMailer{}, ProcessorOptions{To: "r@x", Announcer: a}, logging.Nop{})

	res, err := p.Process(context.Background(), acme())
	require.NoError(t, err)
	assert.True(t, res.EmailSent)
	assert.Len(t, a.alerts, 1)
}

func TestProcess_NoAnnounceWhenDeliveryFails(t *testing.T) {
	a := &fakeAnnouncer{}
	p := NewProcessor(newFakeUploader(), &fakeMailer{err: errors.New("x")}, ProcessorOptions{Announcer: a}, logging.Nop{})

	_, err := p.Process(context.Background(), acme())
	require.Error(t, err)
	assert.Empty(t, a.alerts)
}

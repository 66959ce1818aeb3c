package chat

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/toolsubmit/internal/common"
	"github.com/dmitrijs2005/toolsubmit/internal/submission"
)

type fakeSender struct {
	channelID string
	embed     *discordgo.MessageEmbed
	options   int
	err       error
}

func (f *fakeSender) ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.channelID = channelID
	f.embed = embed
	f.options = len(options)
	if f.err != nil {
		return nil, f.err
	}
	return &discordgo.Message{ID: "m1"}, nil
}

func swapSession(t *testing.T, s *fakeSender) *string {
	t.Helper()
	var gotToken string
	orig := newDiscordSession
	newDiscordSession = func(token string) (embedSender, error) {
		gotToken = token
		return s, nil
	}
	t.Cleanup(func() { newDiscordSession = orig })
	return &gotToken
}

func acme() *submission.Submission {
	return &submission.Submission{
		Email:        "owner@acme.test",
		Name:         "Acme",
		URL:          "https://acme.test",
		Description:  "CRM for teams",
		Category:     "crm",
		PricingTiers: []submission.PricingTier{{Name: "Free", Price: 0}, {Name: "Pro", Price: 29.5}},
	}
}

func TestDiscordAnnouncer_Announce(t *testing.T) {
	s := &fakeSender{}
	token := swapSession(t, s)

	d, err := NewDiscordAnnouncer("tkn", "chan-1")
	require.NoError(t, err)
	assert.Equal(t, "tkn", *token)

	logo := "https://cdn.test/logo.png"
	err = d.Announce(context.Background(), Alert{
		Submission:     acme(),
		LogoURL:        &logo,
		ScreenshotURLs: []string{"https://cdn.test/1.png", "https://cdn.test/2.png"},
	})
	require.NoError(t, err)

	assert.Equal(t, "chan-1", s.channelID)
	assert.Equal(t, 1, s.options, "request context is forwarded")
	require.NotNil(t, s.embed)
	assert.Equal(t, "New Tool Submission: Acme", s.embed.Title)
	assert.Equal(t, "https://acme.test", s.embed.URL)
	assert.Equal(t, logo, s.embed.Thumbnail.URL)
	assert.Equal(t, "https://cdn.test/1.png", s.embed.Image.URL)
}

func TestDiscordAnnouncer_SendErrorIsDelivery(t *testing.T) {
	s := &fakeSender{err: errors.New("HTTP 403 Forbidden")}
	swapSession(t, s)

	d, err := NewDiscordAnnouncer("tkn", "chan-1")
	require.NoError(t, err)

	err = d.Announce(context.Background(), Alert{Submission: acme()})
	assert.ErrorIs(t, err, common.ErrDelivery)
	assert.ErrorContains(t, err, "HTTP 403 Forbidden")
}

func TestNewDiscordAnnouncer_MissingSettings(t *testing.T) {
	swapSession(t, &fakeSender{})

	_, err := NewDiscordAnnouncer("", "chan")
	assert.ErrorIs(t, err, common.ErrMissingCredential)

	_, err = NewDiscordAnnouncer("tkn", "")
	assert.ErrorIs(t, err, common.ErrMissingCredential)
}

func TestEmbed_Fields(t *testing.T) {
	e := Embed(Alert{Submission: acme()})

	values := map[string]string{}
	for _, f := range e.Fields {
		values[f.Name] = f.Value
	}
	assert.Equal(t, "owner@acme.test", values["Contact"])
	assert.Equal(t, "CRM Software", values["Category"])
	assert.Equal(t, "0", values["Screenshots"])
	assert.Equal(t, "Free - $0/month\nPro - $29.5/month", values["Pricing"])
	assert.Nil(t, e.Thumbnail)
	assert.Nil(t, e.Image)
}

func TestEmbed_Limits(t *testing.T) {
	s := acme()
	s.Name = strings.Repeat("n", 300)
	s.Description = strings.Repeat("é", submission.MaxDescriptionLength)
	s.Email = " "
	s.PricingTiers = nil

	e := Embed(Alert{Submission: s})

	assert.Len(t, []rune(e.Title), maxEmbedTitle)
	assert.Len(t, []rune(e.Description), maxEmbedDescription)
	assert.True(t, strings.HasSuffix(e.Description, "…"))
	assert.Equal(t, "-", e.Fields[0].Value)
	assert.Len(t, e.Fields, 3)
}

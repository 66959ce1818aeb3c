package chat

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/dmitrijs2005/toolsubmit/internal/common"
	"github.com/dmitrijs2005/toolsubmit/internal/server/notify"
	"github.com/dmitrijs2005/toolsubmit/internal/submission"
)

// Discord embed limits.
const (
	maxEmbedTitle       = 256
	maxEmbedDescription = 4096
	maxFieldValue       = 1024
	embedColor          = 0x2B6CB0
)

type embedSender interface {
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

var newDiscordSession = func(token string) (embedSender, error) {
	s, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// DiscordAnnouncer posts one embed per submission through the bot REST API.
// No gateway connection is opened.
type DiscordAnnouncer struct {
	session   embedSender
	channelID string
}

func NewDiscordAnnouncer(token, channelID string) (*DiscordAnnouncer, error) {
	if token == "" {
		return nil, fmt.Errorf("%w: discord bot token", common.ErrMissingCredential)
	}
	if channelID == "" {
		return nil, fmt.Errorf("%w: discord channel id", common.ErrMissingCredential)
	}

	s, err := newDiscordSession(token)
	if err != nil {
		return nil, fmt.Errorf("discord session: %w", err)
	}
	return &DiscordAnnouncer{session: s, channelID: channelID}, nil
}

func (d *DiscordAnnouncer) Announce(ctx context.Context, a Alert) error {
	if _, err := d.session.ChannelMessageSendEmbed(d.channelID, Embed(a), discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("%w: discord: %v", common.ErrDelivery, err)
	}
	return nil
}

// Embed builds the channel message for a.
func Embed(a Alert) *discordgo.MessageEmbed {
	s := a.Submission

	e := &discordgo.MessageEmbed{
		Title:       truncate(notify.Subject(s.Name), maxEmbedTitle),
		URL:         s.URL,
		Description: truncate(s.Description, maxEmbedDescription),
		Color:       embedColor,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Contact", Value: orDash(s.Email), Inline: true},
			{Name: "Category", Value: orDash(submission.CategoryLabel(s.Category)), Inline: true},
			{Name: "Screenshots", Value: strconv.Itoa(len(a.ScreenshotURLs)), Inline: true},
		},
	}

	if len(s.PricingTiers) > 0 {
		tiers := make([]string, 0, len(s.PricingTiers))
		for _, t := range s.PricingTiers {
			tiers = append(tiers, fmt.Sprintf("%s - $%s/month", t.Name, strconv.FormatFloat(t.Price, 'f', -1, 64)))
		}
		e.Fields = append(e.Fields, &discordgo.MessageEmbedField{
			Name:  "Pricing",
			Value: truncate(strings.Join(tiers, "\n"), maxFieldValue),
		})
	}

	if a.LogoURL != nil {
		e.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: *a.LogoURL}
	}
	if len(a.ScreenshotURLs) > 0 {
		e.Image = &discordgo.MessageEmbedImage{URL: a.ScreenshotURLs[0]}
	}

	return e
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

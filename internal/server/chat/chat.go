// Package chat posts a short alert about each processed submission to a
// reviewer chat channel.
package chat

import (
	"context"

	"github.com/dmitrijs2005/toolsubmit/internal/submission"
)

// Alert is what an announcer gets to see of a processed submission.
type Alert struct {
	Submission     *submission.Submission
	LogoURL        *string
	ScreenshotURLs []string
}

type Announcer interface {
	Announce(ctx context.Context, a Alert) error
}

// Package notify renders the reviewer notification for one submission.
package notify

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strconv"

	"github.com/dmitrijs2005/toolsubmit/internal/submission"
)

//go:embed templates/notification.html
var templates embed.FS

var notificationTmpl = template.Must(template.ParseFS(templates, "templates/notification.html"))

// SubjectPrefix starts every notification subject line.
const SubjectPrefix = "New Tool Submission: "

// Document is a rendered notification.
type Document struct {
	Subject string
	HTML    string
}

type tierView struct {
	Name     string
	Price    string
	Features []string
}

type view struct {
	Subject        string
	Name           string
	Email          string
	Description    string
	Category       string
	Verdict        string
	URL            string
	BestFor        []string
	LessGoodFor    []string
	Features       []string
	Pros           []submission.ProCon
	Cons           []submission.ProCon
	PricingTiers   []tierView
	LogoURL        string
	ScreenshotURLs []string
}

// Subject returns the subject line for a product name.
func Subject(name string) string {
	return SubjectPrefix + name
}

// Render builds the notification. Every submitted value is HTML-escaped;
// URLs with unsafe schemes are neutralised by html/template.
func Render(s *submission.Submission, logoURL *string, screenshotURLs []string) (Document, error) {
	v := view{
		Subject:        Subject(s.Name),
		Name:           s.Name,
		Email:          s.Email,
		Description:    s.Description,
		Category:       s.Category,
		Verdict:        s.Verdict,
		URL:            s.URL,
		BestFor:        s.BestFor,
		LessGoodFor:    s.LessGoodFor,
		Features:       s.Features,
		Pros:           s.Pros,
		Cons:           s.Cons,
		ScreenshotURLs: screenshotURLs,
	}
	if logoURL != nil {
		v.LogoURL = *logoURL
	}
	for _, t := range s.PricingTiers {
		v.PricingTiers = append(v.PricingTiers, tierView{
			Name:     t.Name,
			Price:    strconv.FormatFloat(t.Price, 'f', -1, 64),
			Features: t.Features,
		})
	}

	var buf bytes.Buffer
	if err := notificationTmpl.Execute(&buf, v); err != nil {
		return Document{}, fmt.Errorf("render notification: %w", err)
	}

	return Document{Subject: v.Subject, HTML: buf.String()}, nil
}

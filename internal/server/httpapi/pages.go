package httpapi

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"github.com/dmitrijs2005/toolsubmit/internal/common"
	"github.com/dmitrijs2005/toolsubmit/internal/logging"
	"github.com/dmitrijs2005/toolsubmit/internal/submission"
)

//go:embed templates/*.html
var templates embed.FS

var pageTmpl = template.Must(template.ParseFS(templates, "templates/*.html"))

type PageData struct {
	Title                string
	AnalyticsID          string
	ApplyPath            string
	Categories           []submission.Category
	MaxScreenshots       int
	MaxDescriptionLength int
}

type pages struct {
	analyticsID string
	logger      logging.Logger
}

func (p pages) data(title string) PageData {
	return PageData{
		Title:                title,
		AnalyticsID:          p.analyticsID,
		ApplyPath:            common.ApplyPath,
		Categories:           submission.Categories(),
		MaxScreenshots:       submission.MaxScreenshots,
		MaxDescriptionLength: submission.MaxDescriptionLength,
	}
}

func (p pages) render(w http.ResponseWriter, r *http.Request, name string, data PageData) {
	var buf bytes.Buffer
	if err := pageTmpl.ExecuteTemplate(&buf, name, data); err != nil {
		logging.FromContext(r.Context(), p.logger).Error(r.Context(), "render page", "page", name, "error", err)
		http.Error(w, "Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func (p pages) form(w http.ResponseWriter, r *http.Request) {
	p.render(w, r, "form.html", p.data("Apply to be tested"))
}

func (p pages) success(w http.ResponseWriter, r *http.Request) {
	p.render(w, r, "success.html", p.data("Application Submitted Successfully!"))
}

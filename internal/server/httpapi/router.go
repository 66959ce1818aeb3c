// Package httpapi exposes the submission endpoint, the form and
// confirmation pages and a health check over HTTP.
package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/dmitrijs2005/toolsubmit/internal/common"
	"github.com/dmitrijs2005/toolsubmit/internal/logging"
)

// AssetsPrefix is where a locally served storage backend is mounted.
const AssetsPrefix = "/assets"

// Deps are the router's collaborators. Assets is optional.
type Deps struct {
	Processor    SubmissionProcessor
	Logger       logging.Logger
	MaxBodyBytes int64
	AnalyticsID  string
	Assets       http.Handler
}

func NewRouter(d Deps) *mux.Router {
	logger := d.Logger.With("module", "http")

	p := pages{analyticsID: d.AnalyticsID, logger: logger}

	r := mux.NewRouter()
	r.Use(requestLogger(logger))

	r.HandleFunc("/", p.form).Methods(http.MethodGet)
	r.HandleFunc("/success", p.success).Methods(http.MethodGet)

	r.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok\n"))
	}).Methods(http.MethodGet)

	r.Handle(common.ApplyPath, applyHandler{
		processor:    d.Processor,
		logger:       logger,
		maxBodyBytes: d.MaxBodyBytes,
	}).Methods(http.MethodPost)

	if d.Assets != nil {
		r.PathPrefix(AssetsPrefix + "/").Handler(http.StripPrefix(AssetsPrefix, d.Assets)).Methods(http.MethodGet)
	}

	return r
}

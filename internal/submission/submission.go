// Package submission is the schema shared by the form collector and the
// server-side processor: the payload types, the category set and the
// validation rules both sides enforce.
package submission

const (
	MaxScreenshots       = 10
	MaxDescriptionLength = 5000
)

// ProCon is one titled pro or con entry.
type ProCon struct {
	Title       string `json:"title" complete:"filled"`
	Description string `json:"description" complete:"filled"`
}

// PricingTier is one plan with a monthly price and its feature lines.
type PricingTier struct {
	Name     string   `json:"name" complete:"filled"`
	Price    float64  `json:"price" validate:"gte=0"`
	Features []string `json:"features" complete:"dive,filled"`
}

// Submission is the complete payload of one product application.
// Logo and Screenshots carry data URIs.
type Submission struct {
	Email        string        `json:"email" complete:"filled"`
	Name         string        `json:"name" complete:"filled"`
	Description  string        `json:"description" validate:"max=5000" complete:"filled"`
	Category     string        `json:"category" validate:"omitempty,category" complete:"filled"`
	URL          string        `json:"url" complete:"filled"`
	Logo         *string       `json:"logo"`
	Screenshots  []string      `json:"screenshots" validate:"max=10"`
	Rating       float64       `json:"rating"`
	Verdict      string        `json:"verdict"`
	Pros         []ProCon      `json:"pros" complete:"dive"`
	Cons         []ProCon      `json:"cons" complete:"dive"`
	BestFor      []string      `json:"bestFor" complete:"dive,filled"`
	LessGoodFor  []string      `json:"lessGoodFor" complete:"dive,filled"`
	Features     []string      `json:"features" complete:"dive,filled"`
	PricingTiers []PricingTier `json:"pricingTiers" validate:"dive" complete:"dive"`
}

// HasLogo reports whether a non-empty logo blob is present.
func (s *Submission) HasLogo() bool {
	return s.Logo != nil && *s.Logo != ""
}

// Response is the success body returned by the apply endpoint.
type Response struct {
	Message             string   `json:"message"`
	LogoURL             *string  `json:"logoUrl"`
	ValidScreenshotURLs []string `json:"validScreenshotUrls"`
	EmailSent           bool     `json:"emailSent"`
}

// ErrorResponse is the failure body returned by the apply endpoint.
type ErrorResponse struct {
	Error string `json:"error"`
}

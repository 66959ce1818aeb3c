package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/toolsubmit/internal/common"
	"github.com/dmitrijs2005/toolsubmit/internal/logging"
	"github.com/dmitrijs2005/toolsubmit/internal/server/services"
	"github.com/dmitrijs2005/toolsubmit/internal/submission"
)

const successMessage = "Form data processed successfully"

// SubmissionProcessor is the part of services.Processor the handler needs.
type SubmissionProcessor interface {
	Process(ctx context.Context, s *submission.Submission) (*services.Result, error)
}

type applyHandler struct {
	processor    SubmissionProcessor
	logger       logging.Logger
	maxBodyBytes int64
}

func (h applyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logging.FromContext(ctx, h.logger)

	if h.maxBodyBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
	}

	var s submission.Submission
	if err := json.NewDecoder(r.Body).Decode(&s); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, submission.ErrorResponse{
				Error: fmt.Sprintf("Error processing form data: request body exceeds %d bytes", tooLarge.Limit),
			})
			return
		}
		log.Error(ctx, "decode submission", "error", err)
		writeJSON(w, http.StatusInternalServerError, submission.ErrorResponse{
			Error: "Error processing form data: " + err.Error(),
		})
		return
	}

	log.Info(ctx, "submission received", "name", s.Name, "category", s.Category,
		"logo", s.HasLogo(), "screenshots", len(s.Screenshots))

	res, err := h.processor.Process(ctx, &s)
	if err != nil {
		status, msg := errorResponse(err)
		writeJSON(w, status, submission.ErrorResponse{Error: msg})
		return
	}

	writeJSON(w, http.StatusOK, submission.Response{
		Message:             successMessage,
		LogoURL:             res.LogoURL,
		ValidScreenshotURLs: res.ScreenshotURLs,
		EmailSent:           res.EmailSent,
	})
}

func errorResponse(err error) (int, string) {
	switch {
	case errors.Is(err, common.ErrValidation):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, common.ErrDelivery):
		return http.StatusInternalServerError, "Error sending email"
	default:
		return http.StatusInternalServerError, "Error processing form data: " + err.Error()
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

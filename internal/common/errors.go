// Package common defines sentinel errors shared by the submission processor,
// the HTTP layer and the client. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Asset errors.
	ErrInvalidEncoding = errors.New("invalid encoding")
	ErrUpload          = errors.New("upload error")

	// Notification errors.
	ErrDelivery = errors.New("delivery error")

	// Schema errors.
	ErrValidation = errors.New("validation error")

	// Client-side errors.
	ErrSubmitInProgress  = errors.New("submission already in progress")
	ErrUnexpectedStatus  = errors.New("unexpected response status")
	ErrMissingCredential = errors.New("missing credential")
)

// Package client sends a completed form to the submission server.
//
// # Overview
//
// Submitter validates the form, encodes the attached images as data URIs,
// posts the payload as JSON to the server's apply endpoint and decodes the
// reply. Only one submission may be in flight per Submitter.
//
// # Error Handling
//
// Failures can be matched with errors.Is: common.ErrSubmitInProgress when a
// submission is already running, common.ErrValidation when required fields
// are missing (locally or as reported by the server) and
// common.ErrUnexpectedStatus for any non-200 reply.
package client

// Package mail delivers the reviewer notification through a transactional
// email provider.
package mail

import "context"

// Message is one HTML email.
type Message struct {
	From    string
	To      []string
	Subject string
	HTML    string
}

// Mailer sends a message and returns the provider's message id.
type Mailer interface {
	Send(ctx context.Context, m Message) (string, error)
}

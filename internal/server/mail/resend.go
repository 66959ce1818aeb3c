package mail

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"

	"github.com/dmitrijs2005/toolsubmit/internal/common"
)

type emailSender interface {
	SendWithContext(ctx context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

var newResendEmails = func(apiKey string) emailSender {
	return resend.NewClient(apiKey).Emails
}

// ResendMailer sends through the Resend HTTP API.
type ResendMailer struct {
	emails emailSender
}

// NewResendMailer fails when apiKey is empty.
func NewResendMailer(apiKey string) (*ResendMailer, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: resend api key", common.ErrMissingCredential)
	}
	return &ResendMailer{emails: newResendEmails(apiKey)}, nil
}

func (r *ResendMailer) Send(ctx context.Context, m Message) (string, error) {
	sent, err := r.emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    m.From,
		To:      m.To,
		Subject: m.Subject,
		Html:    m.HTML,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrDelivery, err)
	}
	if sent == nil {
		return "", nil
	}
	return sent.Id, nil
}

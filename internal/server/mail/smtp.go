package mail

import (
	"bytes"
	"context"
	"fmt"
	"mime"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/toolsubmit/internal/common"
)

var sendMail = smtp.SendMail

// SMTPOptions configures an SMTPMailer. Auth is skipped when User is empty.
type SMTPOptions struct {
	Host     string
	Port     int
	User     string
	Password string
}

// SMTPMailer sends through a plain SMTP relay with PLAIN auth.
type SMTPMailer struct {
	addr string
	host string
	auth smtp.Auth
}

// NewSMTPMailer fails when the host is empty.
func NewSMTPMailer(o SMTPOptions) (*SMTPMailer, error) {
	if o.Host == "" {
		return nil, fmt.Errorf("%w: smtp host", common.ErrMissingCredential)
	}
	port := o.Port
	if port == 0 {
		port = 587
	}

	m := &SMTPMailer{addr: net.JoinHostPort(o.Host, strconv.Itoa(port)), host: o.Host}
	if o.User != "" {
		m.auth = smtp.PlainAuth("", o.User, o.Password, o.Host)
	}
	return m, nil
}

// Send ignores ctx beyond an upfront cancellation check; net/smtp has no
// context support.
func (s *SMTPMailer) Send(ctx context.Context, m Message) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrDelivery, err)
	}

	id := fmt.Sprintf("<%s@%s>", uuid.NewString(), s.host)

	if err := sendMail(s.addr, s.auth, m.From, m.To, buildMIME(id, m)); err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrDelivery, err)
	}
	return id, nil
}

func buildMIME(id string, m Message) []byte {
	var b bytes.Buffer

	header := func(k, v string) {
		b.WriteString(k)
		b.WriteString(": ")
		b.WriteString(v)
		b.WriteString("\r\n")
	}

	header("From", m.From)
	header("To", strings.Join(m.To, ", "))
	header("Subject", mime.QEncoding.Encode("utf-8", m.Subject))
	header("Date", time.Now().UTC().Format(time.RFC1123Z))
	header("Message-ID", id)
	header("MIME-Version", "1.0")
	header("Content-Type", `text/html; charset="UTF-8"`)
	b.WriteString("\r\n")
	b.WriteString(m.HTML)

	return b.Bytes()
}

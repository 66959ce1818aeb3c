// Package datauri encodes and decodes the "data:<mime>;base64,<payload>"
// strings the collector uses to carry images inside the JSON submission.
package datauri

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/toolsubmit/internal/common"
)

// Marker separates the meta part from the base64 payload.
const Marker = ";base64,"

// Encode builds a data URI for data with the given MIME type.
func Encode(mimeType string, data []byte) string {
	return "data:" + mimeType + Marker + base64.StdEncoding.EncodeToString(data)
}

// Decode returns the binary payload of blob.
//
// It fails with common.ErrInvalidEncoding when the marker is missing, the
// payload is empty, or the payload is not valid base64.
func Decode(blob string) ([]byte, error) {
	_, payload, ok := cutLast(blob, Marker)
	if !ok {
		return nil, fmt.Errorf("%w: missing %q marker", common.ErrInvalidEncoding, Marker)
	}
	if payload == "" {
		return nil, fmt.Errorf("%w: empty payload", common.ErrInvalidEncoding)
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidEncoding, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty payload", common.ErrInvalidEncoding)
	}

	return data, nil
}

// MimeType returns the MIME type declared in the meta part, if any.
func MimeType(blob string) string {
	meta, _, ok := cutLast(blob, Marker)
	if !ok {
		return ""
	}
	meta = strings.TrimPrefix(meta, "data:")
	mime, _, _ := strings.Cut(meta, ";")
	return mime
}

// cutLast splits around the last occurrence of sep.
func cutLast(s, sep string) (before, after string, found bool) {
	i := strings.LastIndex(s, sep)
	if i < 0 {
		return s, "", false
	}
	return s[:i], s[i+len(sep):], true
}

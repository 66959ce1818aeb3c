// Package storage persists uploaded submission assets and resolves their
// public URLs.
package storage

import (
	"context"
	"net/url"
	"strings"
)

// Uploader writes one object and knows how to address it publicly.
type Uploader interface {
	Put(ctx context.Context, key string, body []byte, contentType string) error
	PublicURL(key string) string
}

// joinURL appends key to base, escaping every key segment.
func joinURL(base, key string) string {
	segments := strings.Split(key, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return strings.TrimRight(base, "/") + "/" + strings.Join(segments, "/")
}

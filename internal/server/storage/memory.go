package storage

import (
	"context"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"
)

// Object is one stored asset.
type Object struct {
	Body        []byte
	ContentType string
}

// MemoryStorage keeps assets in process memory. Used for local runs and
// tests; contents are lost on restart.
type MemoryStorage struct {
	mu      sync.RWMutex
	objects map[string]Object
	baseURL string
}

func NewMemoryStorage(baseURL string) *MemoryStorage {
	return &MemoryStorage{objects: make(map[string]Object), baseURL: baseURL}
}

func (m *MemoryStorage) Put(ctx context.Context, key string, body []byte, contentType string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	b := make([]byte, len(body))
	copy(b, body)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = Object{Body: b, ContentType: contentType}
	return nil
}

func (m *MemoryStorage) PublicURL(key string) string {
	return joinURL(m.baseURL, key)
}

// Get returns the object stored under key.
func (m *MemoryStorage) Get(key string) (Object, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	o, ok := m.objects[key]
	return o, ok
}

// Keys returns every stored key in lexical order.
func (m *MemoryStorage) Keys() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	keys := make([]string, 0, len(m.objects))
	for k := range m.objects {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ServeHTTP serves stored objects by key, so public URLs of the memory
// backend resolve when it is mounted under its base URL path.
func (m *MemoryStorage) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	o, ok := m.Get(strings.TrimPrefix(r.URL.Path, "/"))
	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", o.ContentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(o.Body)))
	_, _ = w.Write(o.Body)
}

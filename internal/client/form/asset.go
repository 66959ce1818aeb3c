package form

import (
	"bytes"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/toolsubmit/internal/datauri"
)

// Asset is a picked image file held in memory until submission.
type Asset struct {
	Name     string
	MimeType string
	Data     []byte
}

// DataURI encodes the asset as "data:<mime>;base64,<payload>".
func (a Asset) DataURI() string {
	return datauri.Encode(a.MimeType, a.Data)
}

// LoadAsset reads the file at path and sniffs its MIME type. Files that do
// not look like images are rejected.
func LoadAsset(path string) (Asset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Asset{}, err
	}
	if len(data) == 0 {
		return Asset{}, fmt.Errorf("%s: empty file", path)
	}

	mime := http.DetectContentType(data)
	if !strings.HasPrefix(mime, "image/") {
		return Asset{}, fmt.Errorf("%s: not an image (%s)", path, mime)
	}

	return Asset{Name: filepath.Base(path), MimeType: mime, Data: data}, nil
}

func (a Asset) clone() Asset {
	a.Data = bytes.Clone(a.Data)
	return a
}

func cloneAssets(assets []Asset) []Asset {
	if assets == nil {
		return nil
	}
	out := make([]Asset, len(assets))
	for i, a := range assets {
		out[i] = a.clone()
	}
	return out
}

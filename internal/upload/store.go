// Package upload hosts image bytes and returns stable URLs. The canvas and
// block editor never reference an image until its hosted URL is final.
package upload

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/thelogs/shelflife/internal/errs"
)

// Store is the image hosting collaborator contract.
type Store interface {
	// Upload persists the image bytes (raw or data URI) under the given name
	// and returns the final URL.
	Upload(ctx context.Context, data []byte, name string) (string, error)
}

// DiskStore writes uploads under a root directory that the HTTP server
// exposes at baseURL.
type DiskStore struct {
	root    string
	baseURL string
}

// NewDiskStore creates the root directory if needed.
func NewDiskStore(root, baseURL string) (*DiskStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("upload root: %w", err)
	}
	return &DiskStore{root: root, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

// Upload writes the image to disk and returns its served URL. Data URIs
// (the paste/drop path) are decoded first; a decode or write failure hosts
// nothing.
func (s *DiskStore) Upload(_ context.Context, data []byte, name string) (string, error) {
	raw, ext, err := normalizeImage(data)
	if err != nil {
		return "", err
	}
	if name == "" {
		return "", fmt.Errorf("%w: empty upload name", errs.ErrValidation)
	}
	filename := filepath.Base(name) + ext
	if err := os.WriteFile(filepath.Join(s.root, filename), raw, 0o644); err != nil {
		return "", fmt.Errorf("%w: write upload: %v", errs.ErrUpstream, err)
	}
	return s.baseURL + "/" + filename, nil
}

// normalizeImage returns the raw image bytes and a file extension, decoding a
// data URI when given one.
func normalizeImage(data []byte) ([]byte, string, error) {
	if !strings.HasPrefix(string(data), "data:") {
		return data, extFromContentType(http.DetectContentType(data)), nil
	}
	s := string(data)
	comma := strings.IndexByte(s, ',')
	if comma < 0 {
		return nil, "", fmt.Errorf("%w: malformed data uri", errs.ErrValidation)
	}
	meta, payload := s[len("data:"):comma], s[comma+1:]
	if !strings.Contains(meta, ";base64") {
		return nil, "", fmt.Errorf("%w: data uri is not base64", errs.ErrValidation)
	}
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", fmt.Errorf("%w: data uri decode: %v", errs.ErrValidation, err)
	}
	contentType := strings.SplitN(meta, ";", 2)[0]
	return raw, extFromContentType(contentType), nil
}

func extFromContentType(ct string) string {
	switch ct {
	case "image/png":
		return ".png"
	case "image/jpeg":
		return ".jpg"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ".bin"
	}
}

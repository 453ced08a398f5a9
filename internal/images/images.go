// Package images validates uploaded image payloads and generates
// deterministic placeholder references for records created without uploads.
package images

import (
	"encoding/base64"
	"errors"
	"fmt"
	"hash/fnv"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// Placeholder dimensions for generated image references.
const (
	placeholderWidth  = 800
	placeholderHeight = 600
)

var (
	// ErrNotDataURI indicates the payload is not a base64 data URI.
	ErrNotDataURI = errors.New("not a base64 image data URI")
	// ErrNotAnImage indicates the decoded payload is not a recognized image format.
	ErrNotAnImage = errors.New("payload is not a recognized image format")
)

// ValidateDataURI checks that s is a base64-encoded image data URI.
// The declared MIME prefix must be an image type and the decoded bytes must
// sniff as an image. Returns the URI unchanged on success so callers can
// store it directly.
func ValidateDataURI(s string) (string, error) {
	if !strings.HasPrefix(s, "data:image/") {
		return "", ErrNotDataURI
	}

	idx := strings.Index(s, ";base64,")
	if idx < 0 {
		return "", ErrNotDataURI
	}

	payload, err := base64.StdEncoding.DecodeString(s[idx+len(";base64,"):])
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNotDataURI, err)
	}
	if len(payload) == 0 {
		return "", ErrNotAnImage
	}

	detected := mimetype.Detect(payload)
	if !strings.HasPrefix(detected.String(), "image/") {
		return "", fmt.Errorf("%w: sniffed %s", ErrNotAnImage, detected.String())
	}

	return s, nil
}

// IsDataURI reports whether s looks like a base64 image data URI, without
// decoding the payload.
func IsDataURI(s string) bool {
	return strings.HasPrefix(s, "data:image/") && strings.Contains(s, ";base64,")
}

// PlaceholderURL returns a deterministic stock-image URL keyed by the given
// parts (typically title plus type or category). The same inputs always
// produce the same reference.
func PlaceholderURL(parts ...string) string {
	h := fnv.New32a()
	for i, p := range parts {
		if i > 0 {
			h.Write([]byte{0})
		}
		h.Write([]byte(strings.ToLower(strings.TrimSpace(p))))
	}
	return fmt.Sprintf("https://picsum.photos/seed/%x/%d/%d", h.Sum32(), placeholderWidth, placeholderHeight)
}

package types

import (
	"errors"
	"strings"
)

// Topic is a named category grouping reference links and a display image.
type Topic struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Links []string `json:"links"`
	Image string   `json:"image"`
}

// Clone returns a deep copy of the topic. Links is never nil in the copy.
func (t Topic) Clone() Topic {
	links := make([]string, len(t.Links))
	copy(links, t.Links)
	t.Links = links
	return t
}

// Image references. Bundled images use the asset scheme and are resolved by
// whatever presents them; anything else is treated as a URI.
const (
	AssetScheme      = "asset:"
	PlaceholderImage = "https://via.placeholder.com/80"
)

// AssetImage returns the image reference for a bundled asset name.
func AssetImage(name string) string {
	return AssetScheme + name
}

// IsAssetImage reports whether image refers to a bundled asset.
func IsAssetImage(image string) bool {
	return strings.HasPrefix(image, AssetScheme)
}

// AssetName returns the bundled asset name for image, or "" when image is a URI.
func AssetName(image string) string {
	if !IsAssetImage(image) {
		return ""
	}
	return strings.TrimPrefix(image, AssetScheme)
}

// Topic operation errors. Input failures wrap ErrValidation so callers can
// tell a rejected operation from a storage problem.
var (
	ErrValidation    = errors.New("validation failed")
	ErrInvalidName   = errors.New("topic name must not be empty")
	ErrInvalidLinks  = errors.New("topic needs at least one link")
	ErrInvalidURL    = errors.New("link url must not be empty")
	ErrInvalidHeader = errors.New("link header must not contain \": \"")
	ErrInvalidID     = errors.New("invalid topic ID")
	ErrNotFound      = errors.New("topic not found")
	ErrStoreClosed   = errors.New("store is closed")
)

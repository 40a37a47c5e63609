package types

import (
	"fmt"
	"strings"
)

// LinkSeparator joins an optional header to a URL in a stored link entry.
const LinkSeparator = ": "

// ComposeLink builds the stored form of a link: "header: url" when header is
// non-empty, otherwise url alone.
func ComposeLink(header, url string) string {
	if header == "" {
		return url
	}
	return header + LinkSeparator + url
}

// SplitLink splits a stored link on the first separator into its header and
// URL. An entry without the separator is a bare URL and yields ("", raw).
func SplitLink(raw string) (header, url string) {
	i := strings.Index(raw, LinkSeparator)
	if i < 0 {
		return "", raw
	}
	return raw[:i], raw[i+len(LinkSeparator):]
}

// ValidateHeader rejects headers that contain the separator, since SplitLink
// would cut them short.
func ValidateHeader(header string) error {
	if strings.Contains(header, LinkSeparator) {
		return fmt.Errorf("%w: %w", ErrValidation, ErrInvalidHeader)
	}
	return nil
}

// ValidateLink reports why a link with this url and header would be rejected.
func ValidateLink(url, header string) error {
	if url == "" {
		return fmt.Errorf("%w: %w", ErrValidation, ErrInvalidURL)
	}
	return ValidateHeader(header)
}

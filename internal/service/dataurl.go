package service

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// ParseDataURL checks that raw is a base64 data URL ("data:<mime>;base64,<payload>")
// and returns the MIME type. A failed parse is reported once and never
// retried; binary content is stored embedded in the owning record.
func ParseDataURL(raw string) (string, error) {
	if !strings.HasPrefix(raw, "data:") {
		return "", fmt.Errorf("%w: missing data: prefix", ErrInvalidDataURL)
	}
	rest := raw[len("data:"):]
	sep := strings.Index(rest, ",")
	if sep < 0 {
		return "", fmt.Errorf("%w: missing payload separator", ErrInvalidDataURL)
	}
	meta, payload := rest[:sep], rest[sep+1:]
	if !strings.HasSuffix(meta, ";base64") {
		return "", fmt.Errorf("%w: payload is not base64", ErrInvalidDataURL)
	}
	mime := strings.TrimSuffix(meta, ";base64")
	if mime == "" {
		return "", fmt.Errorf("%w: missing mime type", ErrInvalidDataURL)
	}
	if _, err := base64.StdEncoding.DecodeString(payload); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidDataURL, err)
	}
	return mime, nil
}

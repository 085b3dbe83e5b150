package validation

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// NormalizeURL trims and validates a URL string, prefixing https:// when no
// scheme is present. It returns the normalized value or an error if the URL is
// empty or invalid.
func NormalizeURL(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", errors.New("URL is required")
	}
	if !strings.Contains(s, "://") {
		s = "https://" + s
	}
	u, err := url.Parse(s)
	if err != nil {
		return "", fmt.Errorf("invalid URL: %w", err)
	}
	if u.Host == "" || u.Hostname() == "" {
		return "", fmt.Errorf("invalid URL: missing host in %q", raw)
	}
	return u.String(), nil
}

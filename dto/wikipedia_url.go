package dto

import (
	"errors"
	"net"
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"
)

var ErrNotWikipediaURL = errors.New("only Wikipedia URLs are allowed")

// NormalizeWikipediaURL percent-decodes raw and checks that it points at wikipedia.org
// or one of its subdomains over http(s). The decoded form is what gets hashed and stored.
func NormalizeWikipediaURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	decoded, err := url.PathUnescape(raw)
	if err != nil {
		return "", ErrNotWikipediaURL
	}
	if !IsWikipediaURL(decoded) {
		return "", ErrNotWikipediaURL
	}
	return decoded, nil
}

// IsWikipediaURL reports whether raw is an absolute http(s) URL on a wikipedia.org host.
func IsWikipediaURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	host := u.Host
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	host = strings.ToLower(host)
	return host == "wikipedia.org" || strings.HasSuffix(host, ".wikipedia.org")
}

// ValidateWikipediaURL is registered with gin's validator as the "wikipedia" tag.
func ValidateWikipediaURL(fl validator.FieldLevel) bool {
	_, err := NormalizeWikipediaURL(fl.Field().String())
	return err == nil
}

package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeWikipediaURL(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
		ok   bool
	}{
		{"english article", "https://en.wikipedia.org/wiki/Cat", "https://en.wikipedia.org/wiki/Cat", true},
		{"apex domain", "http://wikipedia.org/wiki/Cat", "http://wikipedia.org/wiki/Cat", true},
		{"upper case host with port", "https://EN.Wikipedia.org:443/wiki/Cat", "https://EN.Wikipedia.org:443/wiki/Cat", true},
		{"percent encoded", "https://ko.wikipedia.org/wiki/%EA%B3%A0%EC%96%91%EC%9D%B4", "https://ko.wikipedia.org/wiki/고양이", true},
		{"surrounding spaces", "  https://en.wikipedia.org/wiki/Cat ", "https://en.wikipedia.org/wiki/Cat", true},
		{"other domain", "https://example.com/wiki/Cat", "", false},
		{"lookalike suffix", "https://notwikipedia.org/wiki/Cat", "", false},
		{"wikipedia as subdomain", "https://wikipedia.org.evil.com/wiki/Cat", "", false},
		{"ftp scheme", "ftp://en.wikipedia.org/wiki/Cat", "", false},
		{"relative", "/wiki/Cat", "", false},
		{"empty", "", "", false},
		{"bad escape", "https://en.wikipedia.org/wiki/%zz", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeWikipediaURL(tt.in)
			if !tt.ok {
				assert.ErrorIs(t, err, ErrNotWikipediaURL)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

package form

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestURLRule(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  bool
	}{
		{name: "https with path", value: "https://example.com/a.jpg", want: true},
		{name: "imdb title", value: "https://www.imdb.com/title/tt1375666", want: true},
		{name: "www prefix without scheme", value: "www.example.com", want: true},
		{name: "ftp with nested path", value: "ftp://files.example.org/pub/file.tar.gz", want: true},
		{name: "query and fragment", value: "http://example.com/search?q=go&page=2#top", want: true},
		{name: "user at host", value: "user@example.com", want: true},
		{name: "scheme with userinfo", value: "mailto:someone@example.com", want: true},
		{name: "plain words", value: "not a url", want: false},
		{name: "bare host", value: "example.com", want: false},
		{name: "scheme only", value: "http://", want: false},
		{name: "space in host", value: "https://exa mple.com", want: false},
		{name: "imdb id", value: "tt1375666", want: false},
		{name: "missing scheme name", value: "://example.com", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, URL(tt.value), "URL(%q)", tt.value)
		})
	}
}

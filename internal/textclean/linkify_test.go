package textclean

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLinkifyURLs(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "empty",
			in:   "",
			want: "",
		},
		{
			name: "no urls unchanged",
			in:   "nothing to link here",
			want: "nothing to link here",
		},
		{
			name: "bare url wrapped",
			in:   "see https://example.com/page for details",
			want: `see <a href="https://example.com/page" target="_blank" rel="noopener">https://example.com/page</a> for details`,
		},
		{
			name: "trailing punctuation excluded",
			in:   "visit http://example.com/docs.",
			want: `visit <a href="http://example.com/docs" target="_blank" rel="noopener">http://example.com/docs</a>.`,
		},
		{
			name: "url in parentheses",
			in:   "(https://example.com/a)",
			want: `(<a href="https://example.com/a" target="_blank" rel="noopener">https://example.com/a</a>)`,
		},
		{
			name: "multiple urls",
			in:   "http://a.example and http://b.example",
			want: `<a href="http://a.example" target="_blank" rel="noopener">http://a.example</a> and <a href="http://b.example" target="_blank" rel="noopener">http://b.example</a>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LinkifyURLs(tt.in))
		})
	}
}

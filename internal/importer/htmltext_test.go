package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractText(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{
			"simple markup",
			"<h1>Managing Cores</h1><p>How to manage a core facility.</p>",
			"Managing Cores How to manage a core facility.",
		},
		{
			"nested markup and entities",
			"<div><p>Billing &amp; invoicing</p><ul><li>Step one</li><li>Step two</li></ul></div>",
			"Billing & invoicing Step one Step two",
		},
		{"plain text passes through", "Just text.", "Just text."},
		{"whitespace collapsed", "<p>a    b\n\nc</p>", "a b c"},
		{"empty input", "   ", ""},
		{"markup only", "<br/><hr/>", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractText(tt.html))
		})
	}
}

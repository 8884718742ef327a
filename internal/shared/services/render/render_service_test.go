package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToHTMLSanitized(t *testing.T) {
	svc := NewRenderService()

	out, err := svc.ToHTMLSanitized("# Heading\n\nSome **bold** text.")
	require.NoError(t, err)
	assert.Contains(t, out, "<h1")
	assert.Contains(t, out, "<strong>bold</strong>")

	out, err = svc.ToHTMLSanitized("hello <script>alert(1)</script>")
	require.NoError(t, err)
	assert.NotContains(t, out, "<script>")
}

func TestSanitizeStripsScripts(t *testing.T) {
	svc := NewRenderService()

	out := svc.Sanitize(`<p onclick="x()">Steps</p><script>steal()</script>`)
	assert.Equal(t, "<p>Steps</p>", out)
}

func TestArticleHTML(t *testing.T) {
	svc := NewRenderService()

	// Stored HTML is sanitized in place.
	out := svc.ArticleHTML("<p>Use the <em>portal</em>.</p><script>x</script>")
	assert.Equal(t, "<p>Use the <em>portal</em>.</p>", out)

	// Markdown-authored bodies are converted first.
	out = svc.ArticleHTML("Use the **portal**.")
	assert.Contains(t, out, "<strong>portal</strong>")
}

func TestMessageSplitsSignatureAndLinkifies(t *testing.T) {
	svc := NewRenderService()

	view := svc.Message("Please see https://example.com/guide for details.\nThanks,\nNadia Clark")
	assert.True(t, view.HasSignature)
	assert.Contains(t, view.Signature, "Nadia Clark")
	assert.Contains(t, view.Body, `<a href="https://example.com/guide"`)
	assert.NotContains(t, view.Body, "Nadia Clark")
	assert.Contains(t, view.Full, "Nadia Clark")
}

func TestMessageWithoutSignature(t *testing.T) {
	svc := NewRenderService()

	view := svc.Message("The printer is offline again.")
	assert.False(t, view.HasSignature)
	assert.Empty(t, view.Signature)
	assert.Empty(t, view.Full)
	assert.Equal(t, "The printer is offline again.", view.Body)
}

func TestMessageEscapesMarkup(t *testing.T) {
	svc := NewRenderService()

	view := svc.Message(`see <b>this</b> & that`)
	assert.False(t, strings.Contains(view.Body, "<b>"))
	assert.Contains(t, view.Body, "&amp;")
}

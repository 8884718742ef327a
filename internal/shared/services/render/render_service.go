package render

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	htmlrenderer "github.com/yuin/goldmark/renderer/html"

	"supportarchive/internal/textclean"
)

// MessageView is one ticket message prepared for display: the cleaned
// body with URLs linkified, the extracted signature when one was
// split off, and the untouched full text for expansion.
type MessageView struct {
	Body         string `json:"body"`
	Signature    string `json:"signature,omitempty"`
	HasSignature bool   `json:"has_signature"`
	Full         string `json:"full,omitempty"`
}

type RenderService interface {
	ToHTML(markdown string) (string, error)
	Sanitize(htmlContent string) string
	ToHTMLSanitized(markdown string) (string, error)
	Message(cleaned string) MessageView
	ArticleHTML(body string) string
}

type renderServiceImpl struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

func NewRenderService() RenderService {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Linkify,
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			htmlrenderer.WithHardWraps(),
			htmlrenderer.WithXHTML(),
		),
	)

	policy := bluemonday.UGCPolicy()
	policy.AllowAttrs("class").Matching(bluemonday.SpaceSeparatedTokens).OnElements("code", "span", "div", "pre")

	return &renderServiceImpl{
		md:     md,
		policy: policy,
	}
}

func (s *renderServiceImpl) ToHTML(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := s.md.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("failed to convert markdown to HTML: %w", err)
	}
	return buf.String(), nil
}

func (s *renderServiceImpl) Sanitize(htmlContent string) string {
	return s.policy.Sanitize(htmlContent)
}

func (s *renderServiceImpl) ToHTMLSanitized(markdown string) (string, error) {
	converted, err := s.ToHTML(markdown)
	if err != nil {
		return "", err
	}
	return s.Sanitize(converted), nil
}

// Message splits the signature off an already-cleaned message and
// linkifies bare URLs in the remaining body. The input is plain text,
// so it is escaped before the generated anchors go in.
func (s *renderServiceImpl) Message(cleaned string) MessageView {
	body, signature := textclean.SplitSignature(cleaned)

	view := MessageView{
		Body: textclean.LinkifyURLs(html.EscapeString(body)),
	}
	if signature != "" {
		view.Signature = html.EscapeString(signature)
		view.HasSignature = true
		view.Full = textclean.LinkifyURLs(html.EscapeString(cleaned))
	}
	return view
}

// ArticleHTML picks the display path for a stored article body: bodies
// holding markup are sanitized as-is, markdown-authored ones are
// converted first.
func (s *renderServiceImpl) ArticleHTML(body string) string {
	if strings.Contains(body, "<") {
		return s.Sanitize(body)
	}
	converted, err := s.ToHTMLSanitized(body)
	if err != nil {
		return s.Sanitize(body)
	}
	return converted
}

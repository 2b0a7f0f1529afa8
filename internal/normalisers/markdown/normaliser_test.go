package markdown

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/casegen/internal/core/domain"
)

func TestSupportedMIMETypes(t *testing.T) {
	n := New()
	assert.Contains(t, n.SupportedMIMETypes(), "text/markdown")
	assert.Equal(t, 50, n.Priority())
}

func TestNormalise_NilDocument(t *testing.T) {
	result, err := New().Normalise(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Nil(t, result)
}

func TestNormalise_FrontMatterStripped(t *testing.T) {
	content := "---\ntitle: hidden\ntags: [a, b]\n---\n# Signup\n\nUsers register with **email**.\n"
	raw := &domain.RawDocument{URI: "docs/signup.md", MIMEType: "text/markdown", Content: []byte(content)}

	result, err := New().Normalise(context.Background(), raw)
	require.NoError(t, err)

	assert.NotContains(t, result.Text, "title: hidden")
	assert.NotContains(t, result.Text, "---")
	assert.Equal(t, "Signup", result.Title)
	assert.Equal(t, "Signup\n\nUsers register with email.", result.Text)
	assert.Equal(t, "markdown", result.Metadata["format"])
}

func TestNormalise_CRLF(t *testing.T) {
	content := "---\r\nk: v\r\n---\r\nBody line\r\n"
	raw := &domain.RawDocument{URI: "a.md", MIMEType: "text/markdown", Content: []byte(content)}

	result, err := New().Normalise(context.Background(), raw)
	require.NoError(t, err)
	assert.Equal(t, "Body line", result.Text)
}

func TestStripMarkdown(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"heading", "## Password rules", "Password rules"},
		{"link keeps text", "See [the policy](http://x/y) now", "See the policy now"},
		{"image keeps alt", "![login screen](a.png)", "login screen"},
		{"emphasis", "must be *at least* **8** chars", "must be at least 8 chars"},
		{"blockquote", "> quoted", "quoted"},
		{"inline code", "call `verify()` first", "call verify() first"},
		{"code fence content kept", "```go\nx := 1\n```", "x := 1"},
		{"list markers kept", "- one\n- two", "- one\n- two"},
		{"collapse blank lines", "a\n\n\n\nb", "a\n\nb"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, stripMarkdown(tt.input))
		})
	}
}

func TestExtractMarkdownTitle_FallsBackToFilename(t *testing.T) {
	assert.Equal(t, "rate limit notes", extractMarkdownTitle("no heading", "/a/rate_limit-notes.md"))
}

package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderMarkdown(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		contains []string
	}{
		{
			name:     "heading and paragraph",
			input:    "# Summary\n\nA static site generator.",
			contains: []string{"<h1", "Summary", "<p>A static site generator.</p>"},
		},
		{
			name:     "bold and list",
			input:    "**Key features:**\n\n- fast builds\n- themes",
			contains: []string{"<strong>Key features:</strong>", "<li>fast builds</li>", "<li>themes</li>"},
		},
		{
			name:     "fenced code block",
			input:    "```\ngo build ./...\n```",
			contains: []string{"<pre>", "go build ./..."},
		},
		{
			name:     "GFM strikethrough",
			input:    "use ~~make~~ go generate",
			contains: []string{"<del>make</del>"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := RenderMarkdown(tt.input)
			for _, want := range tt.contains {
				assert.Contains(t, out, want)
			}
		})
	}
}

func TestRenderMarkdownEmptyInput(t *testing.T) {
	assert.Equal(t, "", RenderMarkdown(""))
}

func TestRenderMarkdownStripsScriptTags(t *testing.T) {
	out := RenderMarkdown("hello <script>alert(1)</script> world")
	assert.NotContains(t, out, "<script>")
	assert.Contains(t, out, "hello")
}

package ui

import (
	"strings"
	"testing"
)

func TestRenderMarkdownKeepsOneTrailingNewline(t *testing.T) {
	out, err := RenderMarkdown("# Heading", 80)
	if err != nil {
		t.Fatalf("RenderMarkdown: %v", err)
	}
	if !strings.HasSuffix(out, "\n") || strings.HasSuffix(out, "\n\n") {
		t.Fatalf("want exactly one trailing newline, got %q", out)
	}
}

func TestRenderMarkdownDefaultsWidth(t *testing.T) {
	out, err := RenderMarkdown("hello", 0)
	if err != nil {
		t.Fatalf("RenderMarkdown: %v", err)
	}
	if strings.TrimSpace(out) == "" {
		t.Fatal("rendered output is empty")
	}
}

func TestDocsStyleEmphasizesHeadingsAndCode(t *testing.T) {
	style := docsStyle()

	if style.H1.Underline == nil || !*style.H1.Underline {
		t.Error("H1 should be underlined")
	}
	if style.H2.Underline == nil || !*style.H2.Underline {
		t.Error("H2 should be underlined")
	}
	if style.H3.Underline != nil && *style.H3.Underline {
		t.Error("H3 should not be underlined")
	}
	if style.Code.Color == nil {
		t.Error("inline code should carry a color")
	}
	if style.CodeBlock.Theme == "" {
		t.Error("code blocks should use a syntax theme")
	}
}

func TestConfigureMarkdownCodeTheme(t *testing.T) {
	orig := markdownCodeTheme
	t.Cleanup(func() { markdownCodeTheme = orig })

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "known theme", input: "dracula", want: "dracula"},
		{name: "mixed case normalized", input: "DrAcUlA", want: "dracula"},
		{name: "unknown falls back", input: "not-a-real-theme", want: defaultCodeTheme},
		{name: "empty falls back", input: "", want: defaultCodeTheme},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ConfigureMarkdownCodeTheme(tc.input)
			if markdownCodeTheme != tc.want {
				t.Fatalf("code theme = %q, want %q", markdownCodeTheme, tc.want)
			}
		})
	}

	ConfigureMarkdownCodeTheme("dracula")
	if got := docsStyle().CodeBlock.Theme; got != "dracula" {
		t.Fatalf("rendered style theme = %q, want dracula", got)
	}
}

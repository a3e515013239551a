package markdown

import "testing"

func TestFormatInline(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"**bold**", "<strong>bold</strong>"},
		{"__bold__", "<strong>bold</strong>"},
		{"text **bold** more", "text <strong>bold</strong> more"},
		{"*italic*", "<em>italic</em>"},
		{"_italic_", "<em>italic</em>"},
		{"text *italic* more", "text <em>italic</em> more"},
		{"**bold *italic* text**", "<strong>bold <em>italic</em> text</strong>"},
		{"__bold _italic_ text__", "<strong>bold <em>italic</em> text</strong>"},
		{"snake_case_name", "snake_case_name"},
		{"Ouro & <prata>", "Ouro &amp; &lt;prata&gt;"},
	}
	for _, tt := range tests {
		if got := FormatInline(tt.input); got != tt.expected {
			t.Errorf("FormatInline(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestFormatInlineLinks(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"[site](https://example.com/a_b_c)", `<a href="https://example.com/a_b_c" target="_blank" rel="noopener noreferrer">site</a>`},
		{"[local](/posts/x.html)", `<a href="/posts/x.html" target="_blank" rel="noopener noreferrer">local</a>`},
		{"[bad](javascript:alert(1))", "[bad](javascript:alert(1))"},
		{"[bad](javascript:void)", "bad"},
	}
	for _, tt := range tests {
		if got := FormatInline(tt.input); got != tt.expected {
			t.Errorf("FormatInline(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestToHTML(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"paragraphs", "Primeira linha\ncontinua\n\nSegundo", "<p>Primeira linha continua</p><p>Segundo</p>"},
		{"heading", "## Tendências\nTexto", "<h3>Tendências</h3><p>Texto</p>"},
		{"unordered list", "- um\n* dois\n\nfim", "<ul><li>um</li><li>dois</li></ul><p>fim</p>"},
		{"ordered list", "1. um\n2) dois", "<ol><li>um</li><li>dois</li></ol>"},
		{"quote", "> citação\n> longa", "<blockquote>citação longa</blockquote>"},
		{"rule", "a\n---\nb", "<p>a</p><hr/><p>b</p>"},
		{"crlf", "a\r\nb\r\n", "<p>a b</p>"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToHTML(tt.input); got != tt.expected {
				t.Errorf("ToHTML(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestToHTMLKeepsTokens(t *testing.T) {
	got := ToHTML("Antes\n[[CHART]]\nDepois", "[[CHART]]", "[[TABLE]]")
	want := "<p>Antes</p>[[CHART]]<p>Depois</p>"
	if got != want {
		t.Errorf("ToHTML = %q, want %q", got, want)
	}
}

func TestIsHTML(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"<p>Texto</p>", true},
		{"<H3>Título</H3>", true},
		{"Texto com <strong>negrito</strong>", false},
		{"**Markdown**", false},
		{"[[TABLE]]", false},
		{"<pre>code</pre>", false},
	}
	for _, tt := range tests {
		if got := IsHTML(tt.input); got != tt.expected {
			t.Errorf("IsHTML(%q) = %v, want %v", tt.input, got, tt.expected)
		}
	}
}

func TestSafeURL(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"https://example.com", "https://example.com"},
		{"mailto:a@b.c", "mailto:a@b.c"},
		{"#top", "#top"},
		{"javascript:alert(1)", ""},
		{"relative/path", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := SafeURL(tt.input); got != tt.expected {
			t.Errorf("SafeURL(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

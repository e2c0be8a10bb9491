package segment

import (
	"strings"
	"testing"
)

func TestFlatten(t *testing.T) {
	tests := []struct {
		name     string
		document string
		expected string
	}{
		{
			name:     "plain text passes through",
			document: "Just some plain prose.",
			expected: "Just some plain prose.",
		},
		{
			name:     "heading and paragraph",
			document: "# Title\n\nBody text here.",
			expected: "Title Body text here.",
		},
		{
			name:     "link text kept",
			document: "See [the docs](https://example.com) for more.",
			expected: "See the docs for more.",
		},
		{
			name:     "emphasis stripped",
			document: "This is *important* and **very important**.",
			expected: "This is important and very important.",
		},
		{
			name:     "fenced code block dropped",
			document: "Before.\n\n```go\nfunc main() {}\n```\n\nAfter.",
			expected: "Before. After.",
		},
		{
			name:     "list items",
			document: "- first\n- second\n",
			expected: "first second",
		},
		{
			name:     "soft line break becomes space",
			document: "line one\nline two",
			expected: "line one line two",
		},
		{
			name:     "blockquote text kept",
			document: "> quoted words",
			expected: "quoted words",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Flatten(tt.document); got != tt.expected {
				t.Errorf("Flatten(%q) = %q, want %q", tt.document, got, tt.expected)
			}
		})
	}
}

func TestFlattenDropsCodeOnlyDocument(t *testing.T) {
	document := "```\nonly code here\n```"
	if got := Flatten(document); strings.Contains(got, "only code") {
		t.Errorf("Flatten kept code block content: %q", got)
	}
}

// TestFlattenNormalizesNFC checks composed and decomposed forms flatten
// to the same bytes.
func TestFlattenNormalizesNFC(t *testing.T) {
	composed := "café"        // é as a single rune
	decomposed := "café" // e + combining acute
	if Flatten(composed) != Flatten(decomposed) {
		t.Errorf("NFC normalization missing: %q vs %q", Flatten(composed), Flatten(decomposed))
	}
}

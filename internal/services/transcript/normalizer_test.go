package transcript

import (
	"strings"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "removes bracketed timestamps",
			input:    "[00:01:23] JOHN DOE: Revenue was up.",
			expected: "JOHN DOE: Revenue was up.",
		},
		{
			name:     "removes parenthesized annotations",
			input:    "JOHN DOE (Chief Executive Officer): Good morning.",
			expected: "JOHN DOE: Good morning.",
		},
		{
			name:     "collapses runs of spaces and tabs",
			input:    "Revenue   was\t\tup   this quarter.",
			expected: "Revenue was up this quarter.",
		},
		{
			name:     "drops page artifacts",
			input:    "Revenue was up.\nPage 3 of 12\nMargins improved.",
			expected: "Revenue was up.\nMargins improved.",
		},
		{
			name:     "drops pure digit lines",
			input:    "Revenue was up.\n42\nMargins improved.",
			expected: "Revenue was up.\nMargins improved.",
		},
		{
			name:     "drops empty lines",
			input:    "First line.\n\n\nSecond line.",
			expected: "First line.\nSecond line.",
		},
		{
			name:     "trims whitespace around lines",
			input:    "   Revenue was up.   ",
			expected: "Revenue was up.",
		},
		{
			name:     "tightens speaker label colon",
			input:    "JOHN DOE : Good morning.",
			expected: "JOHN DOE: Good morning.",
		},
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.input)
			if got != tt.expected {
				t.Errorf("Normalize() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{
			name:  "mixed artifacts",
			input: "[00:01:23] JOHN DOE (CEO):  Revenue   was up.\nPage 1 of 9\n\nJANE SMITH: Thank you.\n17",
		},
		{
			name:  "page artifact with run of spaces",
			input: "Page 1 of  2\nJOHN DOE: Hi.",
		},
		{
			name:  "page artifact with tab",
			input: "Page 1 of\t2\nJOHN DOE: Hi.",
		},
		{
			name:  "page artifact mid line",
			input: "Revenue was up. Page 1 of 2 Margins improved.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			once := Normalize(tt.input)
			twice := Normalize(once)

			if once != twice {
				t.Errorf("Normalize is not idempotent:\nonce:  %q\ntwice: %q", once, twice)
			}
		})
	}
}

func TestNormalizePreservesLineStructure(t *testing.T) {
	input := "JOHN DOE: Good morning.\nThanks for joining us.\nJANE SMITH: Thank you."

	got := Normalize(input)
	lines := strings.Split(got, "\n")

	if len(lines) != 3 {
		t.Fatalf("expected 3 lines after normalization, got %d: %q", len(lines), got)
	}
}

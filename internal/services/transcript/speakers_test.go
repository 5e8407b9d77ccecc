package transcript

import (
	"testing"

	"github.com/ternarybob/calldigest/internal/models"
)

func TestExtractSpeakers(t *testing.T) {
	text := "JOHN DOE: Good morning.\nThanks for joining us.\nJANE SMITH: Thank you, John."

	segments := ExtractSpeakers(text)

	expected := []models.SpeakerSegment{
		{Speaker: "John Doe", Text: "Good morning. Thanks for joining us."},
		{Speaker: "Jane Smith", Text: "Thank you, John."},
	}

	if len(segments) != len(expected) {
		t.Fatalf("expected %d segments, got %d", len(expected), len(segments))
	}
	for i, want := range expected {
		if segments[i] != want {
			t.Errorf("segment %d = %+v, want %+v", i, segments[i], want)
		}
	}
}

func TestExtractSpeakersNoMergeOnRecurrence(t *testing.T) {
	text := "JOHN DOE: First remarks.\nJANE SMITH: A question.\nJOHN DOE: An answer."

	segments := ExtractSpeakers(text)

	if len(segments) != 3 {
		t.Fatalf("expected 3 segments, got %d", len(segments))
	}
	if segments[0].Speaker != "John Doe" || segments[2].Speaker != "John Doe" {
		t.Errorf("expected first and third segments attributed to John Doe, got %q and %q", segments[0].Speaker, segments[2].Speaker)
	}
	if segments[2].Text != "An answer." {
		t.Errorf("recurring speaker segment = %q, want %q", segments[2].Text, "An answer.")
	}
}

func TestExtractSpeakersDropsPreamble(t *testing.T) {
	text := "Operator instructions and welcome.\nJOHN DOE: Good morning."

	segments := ExtractSpeakers(text)

	if len(segments) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(segments))
	}
	if segments[0].Text != "Good morning." {
		t.Errorf("segment text = %q, preamble should be dropped", segments[0].Text)
	}
}

func TestExtractSpeakersEmptyInput(t *testing.T) {
	if segments := ExtractSpeakers(""); len(segments) != 0 {
		t.Errorf("expected no segments for empty input, got %d", len(segments))
	}
}

func TestNormalizeSpeakerLabel(t *testing.T) {
	tests := []struct {
		label    string
		expected string
	}{
		{"JOHN DOE", "John Doe"},
		{"JANE", "Jane"},
		{"  OPERATOR  ", "Operator"},
	}

	for _, tt := range tests {
		if got := normalizeSpeakerLabel(tt.label); got != tt.expected {
			t.Errorf("normalizeSpeakerLabel(%q) = %q, want %q", tt.label, got, tt.expected)
		}
	}
}

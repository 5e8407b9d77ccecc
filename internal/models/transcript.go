package models

// Chunk is a bounded token-range slice of a transcript with decoded text,
// used as a retrieval unit. Invariant: 0 <= StartToken < EndToken and
// TokenCount == EndToken - StartToken.
type Chunk struct {
	Text       string `json:"text"`
	StartToken int    `json:"start_token"`
	EndToken   int    `json:"end_token"`
	TokenCount int    `json:"token_count"`
}

// SpeakerSegment is one contiguous block of transcript text attributed to a
// single speaker. Consecutive blocks under the same label are not merged;
// each label change produces a new segment.
type SpeakerSegment struct {
	Speaker string `json:"speaker"`
	Text    string `json:"text"`
}

// Section names assigned by the section extractor. Every input line belongs
// to exactly one section; unmatched lines extend the active section.
const (
	SectionPreparedRemarks  = "prepared_remarks"
	SectionQA               = "qa_section"
	SectionGuidance         = "guidance"
	SectionFinancialMetrics = "financial_metrics"
	SectionBusinessUpdate   = "business_update"
	SectionGeneral          = "general"
)

// TranscriptMetadata summarizes a processed transcript.
type TranscriptMetadata struct {
	TotalTokens int `json:"total_tokens"`
	NumChunks   int `json:"num_chunks"`
	NumSpeakers int `json:"num_speakers"`
}

// ProcessedTranscript is the immutable result of running a raw transcript
// through normalization, speaker segmentation, section extraction and
// chunking. Produced once per ingest; never mutated after creation.
type ProcessedTranscript struct {
	OriginalText string             `json:"original_text"`
	CleanedText  string             `json:"cleaned_text"`
	Speakers     []SpeakerSegment   `json:"speakers"`
	Chunks       []Chunk            `json:"chunks"`
	Sections     map[string]string  `json:"sections"`
	Metadata     TranscriptMetadata `json:"metadata"`
}

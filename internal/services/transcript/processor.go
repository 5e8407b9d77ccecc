package transcript

import (
	"fmt"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/calldigest/internal/interfaces"
	"github.com/ternarybob/calldigest/internal/models"
)

// Processor runs a raw transcript through normalization, speaker
// segmentation, section extraction and chunking. The three derivations are
// independent views of the same normalized text.
type Processor struct {
	chunker   *Chunker
	tokenizer interfaces.Tokenizer
	logger    arbor.ILogger
}

// NewProcessor creates a transcript processor with the given window
// parameters. Window validation happens here, at composition time.
func NewProcessor(maxChunkSize, minChunkSize, chunkOverlap int, tokenizer interfaces.Tokenizer, logger arbor.ILogger) (*Processor, error) {
	chunker, err := NewChunker(maxChunkSize, minChunkSize, chunkOverlap, tokenizer)
	if err != nil {
		return nil, fmt.Errorf("invalid chunker parameters: %w", err)
	}

	return &Processor{
		chunker:   chunker,
		tokenizer: tokenizer,
		logger:    logger,
	}, nil
}

// Process produces the immutable ProcessedTranscript for a raw transcript.
func (p *Processor) Process(text string) *models.ProcessedTranscript {
	cleaned := Normalize(text)

	speakers := ExtractSpeakers(cleaned)
	chunks := p.chunker.Chunk(cleaned)
	sections := ExtractSections(cleaned)

	distinct := make(map[string]bool, len(speakers))
	for _, s := range speakers {
		distinct[s.Speaker] = true
	}

	processed := &models.ProcessedTranscript{
		OriginalText: text,
		CleanedText:  cleaned,
		Speakers:     speakers,
		Chunks:       chunks,
		Sections:     sections,
		Metadata: models.TranscriptMetadata{
			TotalTokens: len(p.tokenizer.Encode(cleaned)),
			NumChunks:   len(chunks),
			NumSpeakers: len(distinct),
		},
	}

	p.logger.Debug().
		Int("total_tokens", processed.Metadata.TotalTokens).
		Int("num_chunks", processed.Metadata.NumChunks).
		Int("num_speakers", processed.Metadata.NumSpeakers).
		Msg("Processed transcript")

	return processed
}

package transcript

import (
	"fmt"

	"github.com/ternarybob/calldigest/internal/interfaces"
	"github.com/ternarybob/calldigest/internal/models"
)

// Chunker slides a token window over a transcript, snapping window ends to
// sentence boundaries and emitting overlapping chunks.
type Chunker struct {
	maxChunkSize int
	minChunkSize int
	chunkOverlap int
	tokenizer    interfaces.Tokenizer
	terminals    map[int]bool
}

// NewChunker creates a chunker for the given window parameters. Parameters
// are validated here so malformed windows fail at construction, not
// mid-stream.
func NewChunker(maxChunkSize, minChunkSize, chunkOverlap int, tokenizer interfaces.Tokenizer) (*Chunker, error) {
	if maxChunkSize <= 0 {
		return nil, fmt.Errorf("max_chunk_size must be positive, got %d", maxChunkSize)
	}
	if minChunkSize <= 0 || minChunkSize >= maxChunkSize {
		return nil, fmt.Errorf("min_chunk_size (%d) must be positive and less than max_chunk_size (%d)", minChunkSize, maxChunkSize)
	}
	if chunkOverlap < 0 || chunkOverlap >= maxChunkSize {
		return nil, fmt.Errorf("chunk_overlap (%d) must be non-negative and less than max_chunk_size (%d)", chunkOverlap, maxChunkSize)
	}

	// Sentence-terminal token ids for boundary snapping.
	terminals := make(map[int]bool, 3)
	for _, s := range []string{".", "!", "?"} {
		if ids := tokenizer.Encode(s); len(ids) > 0 {
			terminals[ids[0]] = true
		}
	}

	return &Chunker{
		maxChunkSize: maxChunkSize,
		minChunkSize: minChunkSize,
		chunkOverlap: chunkOverlap,
		tokenizer:    tokenizer,
		terminals:    terminals,
	}, nil
}

// Chunk encodes text and walks a token window over it:
//
//  1. chunkEnd = min(i+max, N)
//  2. for non-final windows, scan backward through the overlap region for a
//     sentence-terminal token and snap chunkEnd to just past it
//  3. emit the decoded window if it holds at least minChunkSize tokens,
//     otherwise drop the candidate (trailing content shorter than the
//     minimum can be lost; chunk quality is favored over full coverage)
//  4. advance i = max(i+1, chunkEnd-overlap), which is strictly positive
//     progress for any valid parameter set
//
// Emitted chunks are ordered by non-decreasing StartToken and adjacent
// chunks overlap by at most chunkOverlap tokens.
func (c *Chunker) Chunk(text string) []models.Chunk {
	tokens := c.tokenizer.Encode(text)
	n := len(tokens)

	var chunks []models.Chunk

	i := 0
	for i < n {
		chunkEnd := i + c.maxChunkSize
		if chunkEnd > n {
			chunkEnd = n
		}

		if chunkEnd < n {
			overlapStart := i + c.maxChunkSize - c.chunkOverlap
			if overlapStart < i {
				overlapStart = i
			}
			for j := chunkEnd - 1; j > overlapStart; j-- {
				if c.terminals[tokens[j]] {
					chunkEnd = j + 1
					break
				}
			}
		}

		if chunkEnd-i >= c.minChunkSize {
			chunks = append(chunks, models.Chunk{
				Text:       c.tokenizer.Decode(tokens[i:chunkEnd]),
				StartToken: i,
				EndToken:   chunkEnd,
				TokenCount: chunkEnd - i,
			})
		}

		next := chunkEnd - c.chunkOverlap
		if next <= i {
			next = i + 1
		}
		i = next
	}

	return chunks
}

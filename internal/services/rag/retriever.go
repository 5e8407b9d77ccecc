package rag

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/calldigest/internal/interfaces"
	"github.com/ternarybob/calldigest/internal/models"
)

// Retriever ranks transcript chunks against a query by cosine similarity
// over embeddings.
type Retriever struct {
	embedder interfaces.EmbeddingClient
	logger   arbor.ILogger
}

// NewRetriever creates a new retriever
func NewRetriever(embedder interfaces.EmbeddingClient, logger arbor.ILogger) *Retriever {
	return &Retriever{
		embedder: embedder,
		logger:   logger,
	}
}

// Retrieve returns up to topK chunks ordered by descending similarity to the
// query. Ties break by ascending original chunk index (the sort is stable),
// making the ordering deterministic for fixed embeddings. An empty chunk set
// returns immediately without invoking the embedding capability. Chunk
// embeddings are requested in a single batched call. An embedding failure is
// logged and degrades to index-order selection, the same ordering a
// constant-vector embedder would produce; it never aborts the retrieval.
func (r *Retriever) Retrieve(ctx context.Context, query string, chunks []models.Chunk, topK int) ([]models.Chunk, error) {
	if len(chunks) == 0 {
		return []models.Chunk{}, nil
	}

	queryVecs, err := r.embedder.Embed(ctx, []string{query})
	if err != nil {
		r.logger.Warn().Err(err).Msg("Query embedding failed, degrading to index-order retrieval")
		return indexOrderSelection(chunks, topK), nil
	}
	if len(queryVecs) != 1 {
		return nil, fmt.Errorf("expected 1 query embedding, got %d", len(queryVecs))
	}

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Text
	}

	chunkVecs, err := r.embedder.Embed(ctx, texts)
	if err != nil {
		r.logger.Warn().Err(err).Msg("Chunk embedding failed, degrading to index-order retrieval")
		return indexOrderSelection(chunks, topK), nil
	}
	if len(chunkVecs) != len(chunks) {
		return nil, fmt.Errorf("expected %d chunk embeddings, got %d", len(chunks), len(chunkVecs))
	}

	type scored struct {
		index      int
		similarity float64
	}

	ranked := make([]scored, len(chunks))
	for i, vec := range chunkVecs {
		ranked[i] = scored{
			index:      i,
			similarity: cosineSimilarity(queryVecs[0], vec),
		}
	}

	// Stable sort keeps equal-similarity chunks in ascending index order.
	sort.SliceStable(ranked, func(a, b int) bool {
		return ranked[a].similarity > ranked[b].similarity
	})

	if topK > len(ranked) {
		topK = len(ranked)
	}

	result := make([]models.Chunk, topK)
	for i := 0; i < topK; i++ {
		result[i] = chunks[ranked[i].index]
	}

	r.logger.Debug().
		Int("candidates", len(chunks)).
		Int("returned", len(result)).
		Msg("Retrieved chunks for query")

	return result, nil
}

// indexOrderSelection takes the first topK chunks in original order. Equal
// similarities under the stable sort produce exactly this ordering, so the
// degraded path is indistinguishable from ranking with constant vectors.
func indexOrderSelection(chunks []models.Chunk, topK int) []models.Chunk {
	if topK > len(chunks) {
		topK = len(chunks)
	}
	result := make([]models.Chunk, topK)
	copy(result, chunks[:topK])
	return result
}

// cosineSimilarity computes the cosine of the angle between two vectors.
// Mismatched lengths compare over the shorter prefix; zero vectors score 0.
func cosineSimilarity(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}

	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

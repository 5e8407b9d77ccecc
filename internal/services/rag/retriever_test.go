package rag

import (
	"context"
	"errors"
	"testing"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/calldigest/internal/interfaces"
	"github.com/ternarybob/calldigest/internal/models"
)

// fakeEmbedder returns preset vectors by text and counts Embed calls.
type fakeEmbedder struct {
	vectors map[string][]float32
	calls   int
}

func (f *fakeEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	f.calls++
	out := make([][]float32, len(texts))
	for i, text := range texts {
		if v, ok := f.vectors[text]; ok {
			out[i] = v
		} else {
			out[i] = []float32{0.1, 0.1}
		}
	}
	return out, nil
}

func (f *fakeEmbedder) Dimension() int { return 2 }

func (f *fakeEmbedder) Mode() interfaces.LLMMode { return interfaces.LLMModeOffline }

func newTestLogger() arbor.ILogger { return arbor.NewLogger() }

func chunksOf(texts ...string) []models.Chunk {
	chunks := make([]models.Chunk, len(texts))
	for i, t := range texts {
		chunks[i] = models.Chunk{Text: t, StartToken: i * 10, EndToken: i*10 + 10, TokenCount: 10}
	}
	return chunks
}

func TestRetrieveRanksBySimilarity(t *testing.T) {
	embedder := &fakeEmbedder{vectors: map[string][]float32{
		"query": {1, 0},
		"a":     {0, 1},   // orthogonal
		"b":     {1, 0},   // identical direction
		"c":     {1, 0.5}, // in between
	}}
	r := NewRetriever(embedder, newTestLogger())

	chunks := chunksOf("a", "b", "c")
	got, err := r.Retrieve(context.Background(), "query", chunks, 2)
	if err != nil {
		t.Fatal(err)
	}

	if len(got) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(got))
	}
	if got[0].Text != "b" || got[1].Text != "c" {
		t.Errorf("ranking = [%q, %q], want [b, c]", got[0].Text, got[1].Text)
	}
}

func TestRetrieveTieBreaksByIndex(t *testing.T) {
	// All vectors identical: similarity ties everywhere, so the original
	// chunk order must win.
	embedder := &fakeEmbedder{vectors: map[string][]float32{}}
	r := NewRetriever(embedder, newTestLogger())

	chunks := chunksOf("first", "second", "third", "fourth")
	got, err := r.Retrieve(context.Background(), "anything", chunks, 2)
	if err != nil {
		t.Fatal(err)
	}

	if len(got) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(got))
	}
	if got[0].Text != "first" || got[1].Text != "second" {
		t.Errorf("tie-break = [%q, %q], want [first, second]", got[0].Text, got[1].Text)
	}
}

func TestRetrieveDeterministic(t *testing.T) {
	embedder := &fakeEmbedder{vectors: map[string][]float32{}}
	r := NewRetriever(embedder, newTestLogger())
	chunks := chunksOf("a", "b", "c")

	first, err := r.Retrieve(context.Background(), "q", chunks, 3)
	if err != nil {
		t.Fatal(err)
	}
	second, err := r.Retrieve(context.Background(), "q", chunks, 3)
	if err != nil {
		t.Fatal(err)
	}

	for i := range first {
		if first[i].Text != second[i].Text {
			t.Errorf("position %d differs across runs: %q vs %q", i, first[i].Text, second[i].Text)
		}
	}
}

func TestRetrieveEmptyChunksSkipsEmbedding(t *testing.T) {
	embedder := &fakeEmbedder{}
	r := NewRetriever(embedder, newTestLogger())

	got, err := r.Retrieve(context.Background(), "query", nil, 5)
	if err != nil {
		t.Fatal(err)
	}

	if len(got) != 0 {
		t.Errorf("expected empty result, got %d chunks", len(got))
	}
	if embedder.calls != 0 {
		t.Errorf("expected no Embed calls for empty chunk set, got %d", embedder.calls)
	}
}

func TestRetrieveTopKLargerThanChunks(t *testing.T) {
	embedder := &fakeEmbedder{}
	r := NewRetriever(embedder, newTestLogger())

	got, err := r.Retrieve(context.Background(), "query", chunksOf("a", "b"), 10)
	if err != nil {
		t.Fatal(err)
	}

	if len(got) != 2 {
		t.Errorf("expected all 2 chunks, got %d", len(got))
	}
}

// failingEmbedder succeeds until failFrom calls have been made, then errors.
type failingEmbedder struct {
	failFrom int
	calls    int
}

func (f *failingEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	f.calls++
	if f.calls >= f.failFrom {
		return nil, errors.New("embedding backend unavailable")
	}
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = []float32{0.1, 0.1}
	}
	return out, nil
}

func (f *failingEmbedder) Dimension() int { return 2 }

func (f *failingEmbedder) Mode() interfaces.LLMMode { return interfaces.LLMModeOffline }

func TestRetrieveDegradesWhenQueryEmbedFails(t *testing.T) {
	r := NewRetriever(&failingEmbedder{failFrom: 1}, newTestLogger())

	got, err := r.Retrieve(context.Background(), "query", chunksOf("a", "b", "c"), 2)
	if err != nil {
		t.Fatalf("embedding failure should degrade, not abort: %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(got))
	}
	if got[0].Text != "a" || got[1].Text != "b" {
		t.Errorf("degraded selection = [%q, %q], want index order [a, b]", got[0].Text, got[1].Text)
	}
}

func TestRetrieveDegradesWhenChunkEmbedFails(t *testing.T) {
	// First call (query embed) succeeds, second call (chunk embed) fails.
	r := NewRetriever(&failingEmbedder{failFrom: 2}, newTestLogger())

	got, err := r.Retrieve(context.Background(), "query", chunksOf("a", "b", "c"), 10)
	if err != nil {
		t.Fatalf("embedding failure should degrade, not abort: %v", err)
	}

	if len(got) != 3 {
		t.Fatalf("expected all 3 chunks, got %d", len(got))
	}
	for i, want := range []string{"a", "b", "c"} {
		if got[i].Text != want {
			t.Errorf("position %d = %q, want %q", i, got[i].Text, want)
		}
	}
}

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name     string
		a, b     []float32
		expected float64
	}{
		{"identical", []float32{1, 0}, []float32{1, 0}, 1},
		{"orthogonal", []float32{1, 0}, []float32{0, 1}, 0},
		{"opposite", []float32{1, 0}, []float32{-1, 0}, -1},
		{"zero vector", []float32{0, 0}, []float32{1, 0}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cosineSimilarity(tt.a, tt.b)
			if diff := got - tt.expected; diff > 1e-9 || diff < -1e-9 {
				t.Errorf("cosineSimilarity = %v, want %v", got, tt.expected)
			}
		})
	}
}

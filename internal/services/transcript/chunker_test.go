package transcript

import (
	"strings"
	"testing"
)

// fakeTokenizer assigns one token per whitespace-separated word, so token
// counts and sentence terminals are easy to reason about in tests.
type fakeTokenizer struct {
	ids   map[string]int
	words []string
}

func newFakeTokenizer() *fakeTokenizer {
	return &fakeTokenizer{ids: make(map[string]int)}
}

func (t *fakeTokenizer) Encode(text string) []int {
	fields := strings.Fields(text)
	tokens := make([]int, len(fields))
	for i, w := range fields {
		id, ok := t.ids[w]
		if !ok {
			id = len(t.words)
			t.ids[w] = id
			t.words = append(t.words, w)
		}
		tokens[i] = id
	}
	return tokens
}

func (t *fakeTokenizer) Decode(tokens []int) string {
	words := make([]string, len(tokens))
	for i, id := range tokens {
		words[i] = t.words[id]
	}
	return strings.Join(words, " ")
}

// sentenceText builds text of n tokens where every sentence is wordsPer
// words followed by a standalone "." token.
func sentenceText(n, wordsPer int) string {
	var b strings.Builder
	count := 0
	for count < n {
		for w := 0; w < wordsPer && count < n; w++ {
			b.WriteString("w")
			b.WriteString(strings.Repeat("x", w%3))
			b.WriteString(" ")
			count++
		}
		if count < n {
			b.WriteString(". ")
			count++
		}
	}
	return strings.TrimSpace(b.String())
}

func TestNewChunkerValidation(t *testing.T) {
	tok := newFakeTokenizer()

	tests := []struct {
		name    string
		max     int
		min     int
		overlap int
		wantErr bool
	}{
		{"valid", 1200, 500, 100, false},
		{"zero max", 0, 500, 100, true},
		{"negative max", -1, 500, 100, true},
		{"zero min", 1200, 0, 100, true},
		{"min equals max", 1200, 1200, 100, true},
		{"negative overlap", 1200, 500, -1, true},
		{"overlap equals max", 1200, 500, 1200, true},
		{"zero overlap ok", 1200, 500, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewChunker(tt.max, tt.min, tt.overlap, tok)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewChunker(%d, %d, %d) error = %v, wantErr %v", tt.max, tt.min, tt.overlap, err, tt.wantErr)
			}
		})
	}
}

func TestChunkWindowInvariants(t *testing.T) {
	tok := newFakeTokenizer()
	chunker, err := NewChunker(1200, 500, 100, tok)
	if err != nil {
		t.Fatal(err)
	}

	text := sentenceText(3000, 10)
	total := len(tok.Encode(text))
	chunks := chunker.Chunk(text)

	if len(chunks) == 0 {
		t.Fatal("expected chunks for a 3000-token transcript")
	}

	for i, c := range chunks {
		if c.TokenCount != c.EndToken-c.StartToken {
			t.Errorf("chunk %d: TokenCount %d != EndToken-StartToken %d", i, c.TokenCount, c.EndToken-c.StartToken)
		}
		if c.TokenCount > 1200 {
			t.Errorf("chunk %d: token count %d exceeds max", i, c.TokenCount)
		}
		if c.TokenCount < 500 {
			t.Errorf("chunk %d: token count %d below min", i, c.TokenCount)
		}
		if c.EndToken > total {
			t.Errorf("chunk %d: EndToken %d past total %d", i, c.EndToken, total)
		}

		if i > 0 {
			prev := chunks[i-1]
			if c.StartToken < prev.StartToken {
				t.Errorf("chunk %d: StartToken %d decreases from %d", i, c.StartToken, prev.StartToken)
			}
			overlap := prev.EndToken - c.StartToken
			if overlap > 100 {
				t.Errorf("chunks %d/%d: overlap %d exceeds configured 100", i-1, i, overlap)
			}
		}
	}
}

func TestChunkSnapsToSentenceBoundary(t *testing.T) {
	tok := newFakeTokenizer()
	chunker, err := NewChunker(1200, 500, 100, tok)
	if err != nil {
		t.Fatal(err)
	}

	text := sentenceText(3000, 10)
	tokens := tok.Encode(text)
	terminal := tok.Encode(".")[0]
	chunks := chunker.Chunk(text)

	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}

	// Every non-final window has a terminal inside its overlap region, so
	// each non-final chunk must end just past a sentence terminal.
	for i := 0; i < len(chunks)-1; i++ {
		last := tokens[chunks[i].EndToken-1]
		if last != terminal {
			t.Errorf("chunk %d ends on token %d, expected sentence terminal", i, last)
		}
	}
}

func TestChunkNoTerminalFullWindow(t *testing.T) {
	tok := newFakeTokenizer()
	chunker, err := NewChunker(1200, 500, 100, tok)
	if err != nil {
		t.Fatal(err)
	}

	// 2000 tokens, no sentence terminals anywhere.
	words := make([]string, 2000)
	for i := range words {
		words[i] = "tok"
	}
	chunks := chunker.Chunk(strings.Join(words, " "))

	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(chunks))
	}
	if chunks[0].StartToken != 0 || chunks[0].EndToken != 1200 {
		t.Errorf("chunk 0 = [%d, %d), want [0, 1200)", chunks[0].StartToken, chunks[0].EndToken)
	}
	if chunks[1].StartToken != 1100 || chunks[1].EndToken != 2000 {
		t.Errorf("chunk 1 = [%d, %d), want [1100, 2000)", chunks[1].StartToken, chunks[1].EndToken)
	}
}

func TestChunkDropsBelowMin(t *testing.T) {
	tok := newFakeTokenizer()
	chunker, err := NewChunker(1200, 500, 100, tok)
	if err != nil {
		t.Fatal(err)
	}

	chunks := chunker.Chunk(sentenceText(300, 10))

	if len(chunks) != 0 {
		t.Errorf("expected no chunks for a 300-token transcript with min 500, got %d", len(chunks))
	}
}

func TestChunkEmptyText(t *testing.T) {
	tok := newFakeTokenizer()
	chunker, err := NewChunker(1200, 500, 100, tok)
	if err != nil {
		t.Fatal(err)
	}

	if chunks := chunker.Chunk(""); len(chunks) != 0 {
		t.Errorf("expected no chunks for empty text, got %d", len(chunks))
	}
}

func TestChunkRoundTripText(t *testing.T) {
	tok := newFakeTokenizer()
	chunker, err := NewChunker(50, 10, 5, tok)
	if err != nil {
		t.Fatal(err)
	}

	text := sentenceText(120, 5)
	tokens := tok.Encode(text)
	chunks := chunker.Chunk(text)

	for i, c := range chunks {
		want := tok.Decode(tokens[c.StartToken:c.EndToken])
		if c.Text != want {
			t.Errorf("chunk %d text mismatch:\ngot:  %q\nwant: %q", i, c.Text, want)
		}
	}
}

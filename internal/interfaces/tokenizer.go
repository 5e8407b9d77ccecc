package interfaces

// Tokenizer provides a reversible text/token-id mapping over a fixed
// vocabulary. Decode(Encode(x)) must round-trip losslessly for text produced
// within a single chunk window.
type Tokenizer interface {
	// Encode converts text to token ids.
	Encode(text string) []int

	// Decode converts token ids back to text.
	Decode(tokens []int) string
}

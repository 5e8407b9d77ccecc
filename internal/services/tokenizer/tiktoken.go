package tokenizer

import (
	"fmt"

	"github.com/pkoukk/tiktoken-go"
)

// encodingName is the GPT-4 byte-pair encoding.
const encodingName = "cl100k_base"

// Service wraps the tiktoken cl100k_base encoding behind the Tokenizer
// capability. Encode/Decode round-trip losslessly within a chunk window.
type Service struct {
	encoding *tiktoken.Tiktoken
}

// NewService loads the cl100k_base encoding.
func NewService() (*Service, error) {
	encoding, err := tiktoken.GetEncoding(encodingName)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s encoding: %w", encodingName, err)
	}

	return &Service{encoding: encoding}, nil
}

// Encode converts text to token ids.
func (s *Service) Encode(text string) []int {
	return s.encoding.Encode(text, nil, nil)
}

// Decode converts token ids back to text.
func (s *Service) Decode(tokens []int) string {
	return s.encoding.Decode(tokens)
}

package interfaces

import (
	"context"
)

// LLMMode represents the operational mode of a language model capability
type LLMMode string

const (
	// LLMModeCloud indicates the capability calls a cloud API
	LLMModeCloud LLMMode = "cloud"

	// LLMModeOffline indicates a deterministic offline substitute, used when
	// no credential is configured or for testing
	LLMModeOffline LLMMode = "offline"
)

// Message represents a single message in a chat conversation
type Message struct {
	// Role identifies the message sender: "user", "assistant", or "system"
	Role string

	// Content contains the text content of the message
	Content string
}

// LanguageModel defines the completion capability the tier engine calls.
// Implementations may use cloud APIs (Anthropic, OpenAI) or a deterministic
// offline substitute; callers never branch on which one they received.
type LanguageModel interface {
	// Complete generates a completion for the given conversation.
	//
	// Parameters:
	//   - ctx: Context for cancellation and timeout control
	//   - messages: Conversation in chronological order
	//   - temperature: Sampling temperature, <= 0 means configured default
	//   - maxTokens: Response token cap, <= 0 means configured default
	//
	// Returns:
	//   - string: Generated completion text
	//   - error: Error if the call fails after the retry budget is exhausted
	Complete(ctx context.Context, messages []Message, temperature float32, maxTokens int) (string, error)

	// Mode returns the current operational mode of the capability.
	Mode() LLMMode

	// Close releases resources held by the client.
	Close() error
}

// EmbeddingClient defines the batch embedding capability used for chunk
// retrieval. One fixed-length vector is returned per input text, in input
// order.
type EmbeddingClient interface {
	// Embed generates one embedding vector per input text.
	Embed(ctx context.Context, texts []string) ([][]float32, error)

	// Dimension returns the embedding vector length.
	Dimension() int

	// Mode returns the current operational mode of the capability.
	Mode() LLMMode
}

package llm

import (
	"context"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/calldigest/internal/common"
	"github.com/ternarybob/calldigest/internal/interfaces"
)

// OpenAILanguageModel implements the completion capability against the
// OpenAI chat completions API.
type OpenAILanguageModel struct {
	client      *openai.Client
	model       string
	temperature float32
	maxTokens   int
	timeout     time.Duration
	retry       RetryConfig
	logger      arbor.ILogger
}

// NewOpenAILanguageModel creates an OpenAI-backed completion client.
func NewOpenAILanguageModel(config *common.OpenAIConfig, logger arbor.ILogger) (*OpenAILanguageModel, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key not configured")
	}

	timeout := 2 * time.Minute
	if config.Timeout != "" {
		if d, err := time.ParseDuration(config.Timeout); err == nil {
			timeout = d
		}
	}

	return &OpenAILanguageModel{
		client:      openai.NewClient(config.APIKey),
		model:       config.Model,
		temperature: config.Temperature,
		maxTokens:   config.MaxTokens,
		timeout:     timeout,
		retry:       NewDefaultRetryConfig(),
		logger:      logger,
	}, nil
}

// Complete generates a completion for the conversation.
func (m *OpenAILanguageModel) Complete(ctx context.Context, messages []interfaces.Message, temperature float32, maxTokens int) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	if maxTokens <= 0 {
		maxTokens = m.maxTokens
	}
	if temperature <= 0 {
		temperature = m.temperature
	}

	converted := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, msg := range messages {
		role := openai.ChatMessageRoleUser
		switch msg.Role {
		case "system":
			role = openai.ChatMessageRoleSystem
		case "assistant":
			role = openai.ChatMessageRoleAssistant
		}
		converted = append(converted, openai.ChatCompletionMessage{
			Role:    role,
			Content: msg.Content,
		})
	}

	request := openai.ChatCompletionRequest{
		Model:       m.model,
		Messages:    converted,
		Temperature: temperature,
		MaxTokens:   maxTokens,
	}

	var resp openai.ChatCompletionResponse
	var apiErr error

	for attempt := 0; attempt <= m.retry.MaxRetries; attempt++ {
		resp, apiErr = m.client.CreateChatCompletion(ctx, request)
		if apiErr == nil {
			break
		}

		if attempt == m.retry.MaxRetries {
			break
		}

		backoff := time.Duration(attempt+1) * 2 * time.Second
		if IsRateLimitError(apiErr) {
			backoff = m.retry.CalculateBackoff(attempt)
		}

		m.logger.Warn().
			Int("attempt", attempt+1).
			Dur("backoff", backoff).
			Err(apiErr).
			Msg("Retrying OpenAI API call")

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(backoff):
		}
	}

	if apiErr != nil {
		return "", fmt.Errorf("OpenAI API call failed after %d retries: %w", m.retry.MaxRetries, apiErr)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty response from OpenAI API")
	}

	return resp.Choices[0].Message.Content, nil
}

// Mode returns LLMModeCloud.
func (m *OpenAILanguageModel) Mode() interfaces.LLMMode {
	return interfaces.LLMModeCloud
}

// Close releases the client.
func (m *OpenAILanguageModel) Close() error {
	m.client = nil
	return nil
}

// OpenAIEmbeddingClient implements the batch embedding capability against
// the OpenAI embeddings API.
type OpenAIEmbeddingClient struct {
	client    *openai.Client
	model     openai.EmbeddingModel
	dimension int
	timeout   time.Duration
	retry     RetryConfig
	logger    arbor.ILogger
}

// NewOpenAIEmbeddingClient creates an OpenAI-backed embedding client.
func NewOpenAIEmbeddingClient(config *common.OpenAIConfig, logger arbor.ILogger) (*OpenAIEmbeddingClient, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key not configured")
	}

	timeout := 2 * time.Minute
	if config.Timeout != "" {
		if d, err := time.ParseDuration(config.Timeout); err == nil {
			timeout = d
		}
	}

	return &OpenAIEmbeddingClient{
		client:    openai.NewClient(config.APIKey),
		model:     openai.EmbeddingModel(config.EmbeddingModel),
		dimension: config.EmbeddingDimension,
		timeout:   timeout,
		retry:     NewDefaultRetryConfig(),
		logger:    logger,
	}, nil
}

// Embed generates one embedding per input text in a single batched call.
func (c *OpenAIEmbeddingClient) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	request := openai.EmbeddingRequest{
		Input: texts,
		Model: c.model,
	}

	var resp openai.EmbeddingResponse
	var apiErr error

	for attempt := 0; attempt <= c.retry.MaxRetries; attempt++ {
		resp, apiErr = c.client.CreateEmbeddings(ctx, request)
		if apiErr == nil {
			break
		}

		if attempt == c.retry.MaxRetries {
			break
		}

		backoff := time.Duration(attempt+1) * 2 * time.Second
		if IsRateLimitError(apiErr) {
			backoff = c.retry.CalculateBackoff(attempt)
		}

		c.logger.Warn().
			Int("attempt", attempt+1).
			Dur("backoff", backoff).
			Err(apiErr).
			Msg("Retrying OpenAI embedding call")

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
	}

	if apiErr != nil {
		return nil, fmt.Errorf("embedding request failed after %d retries: %w", c.retry.MaxRetries, apiErr)
	}

	if len(resp.Data) != len(texts) {
		return nil, fmt.Errorf("expected %d embeddings, got %d", len(texts), len(resp.Data))
	}

	vectors := make([][]float32, len(resp.Data))
	for i, d := range resp.Data {
		vectors[i] = d.Embedding
	}

	return vectors, nil
}

// Dimension returns the embedding vector length.
func (c *OpenAIEmbeddingClient) Dimension() int {
	return c.dimension
}

// Mode returns LLMModeCloud.
func (c *OpenAIEmbeddingClient) Mode() interfaces.LLMMode {
	return interfaces.LLMModeCloud
}

package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/calldigest/internal/common"
	"github.com/ternarybob/calldigest/internal/interfaces"
)

// ClaudeLanguageModel implements the completion capability against the
// Anthropic API. Every call carries a bounded timeout and a small retry
// budget with backoff.
type ClaudeLanguageModel struct {
	client      anthropic.Client
	model       string
	temperature float32
	maxTokens   int
	timeout     time.Duration
	retry       RetryConfig
	logger      arbor.ILogger
}

// NewClaudeLanguageModel creates a Claude-backed completion client.
func NewClaudeLanguageModel(config *common.ClaudeConfig, logger arbor.ILogger) (*ClaudeLanguageModel, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("anthropic API key not configured")
	}

	timeout := 2 * time.Minute
	if config.Timeout != "" {
		if d, err := time.ParseDuration(config.Timeout); err == nil {
			timeout = d
		}
	}

	return &ClaudeLanguageModel{
		client:      anthropic.NewClient(option.WithAPIKey(config.APIKey)),
		model:       config.Model,
		temperature: config.Temperature,
		maxTokens:   config.MaxTokens,
		timeout:     timeout,
		retry:       NewDefaultRetryConfig(),
		logger:      logger,
	}, nil
}

// Complete generates a completion for the conversation.
func (m *ClaudeLanguageModel) Complete(ctx context.Context, messages []interfaces.Message, temperature float32, maxTokens int) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	claudeMessages, systemText := convertMessagesToClaude(messages)

	if maxTokens <= 0 {
		maxTokens = m.maxTokens
	}
	if temperature <= 0 {
		temperature = m.temperature
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(m.model),
		MaxTokens: int64(maxTokens),
		Messages:  claudeMessages,
	}
	if temperature > 0 {
		params.Temperature = anthropic.Float(float64(temperature))
	}
	if systemText != "" {
		params.System = []anthropic.TextBlockParam{
			{Text: systemText},
		}
	}

	var resp *anthropic.Message
	var apiErr error

	for attempt := 0; attempt <= m.retry.MaxRetries; attempt++ {
		resp, apiErr = m.client.Messages.New(ctx, params)
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
			Msg("Retrying Claude API call")

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(backoff):
		}
	}

	if apiErr != nil {
		return "", fmt.Errorf("Claude API call failed after %d retries: %w", m.retry.MaxRetries, apiErr)
	}

	var text strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}

	if text.Len() == 0 {
		return "", fmt.Errorf("empty response from Claude API")
	}

	return text.String(), nil
}

// Mode returns LLMModeCloud.
func (m *ClaudeLanguageModel) Mode() interfaces.LLMMode {
	return interfaces.LLMModeCloud
}

// Close releases the client.
func (m *ClaudeLanguageModel) Close() error {
	m.client = anthropic.Client{} // Reset to zero value
	return nil
}

// convertMessagesToClaude maps generic messages to the Anthropic format.
// System messages are collected separately since the API carries them
// outside the message list.
func convertMessagesToClaude(messages []interfaces.Message) ([]anthropic.MessageParam, string) {
	var converted []anthropic.MessageParam
	var system strings.Builder

	for _, msg := range messages {
		switch msg.Role {
		case "system":
			if system.Len() > 0 {
				system.WriteString("\n")
			}
			system.WriteString(msg.Content)
		case "assistant":
			converted = append(converted, anthropic.NewAssistantMessage(anthropic.NewTextBlock(msg.Content)))
		default:
			converted = append(converted, anthropic.NewUserMessage(anthropic.NewTextBlock(msg.Content)))
		}
	}

	return converted, system.String()
}

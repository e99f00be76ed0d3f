package ai

import (
	"context"
	"fmt"
)

// AnthropicConfig placeholder for anthropic integration configuration.
type AnthropicConfig struct {
	APIKey string
	Model  string
}

// AnthropicTranscriber is a stub implementation that can be expanded once the SDK is available.
type AnthropicTranscriber struct{}

// NewAnthropicTranscriber constructs a new stub transcriber.
func NewAnthropicTranscriber(cfg AnthropicConfig) (*AnthropicTranscriber, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("anthropic api key is required")
	}
	return &AnthropicTranscriber{}, nil
}

// Transcribe is not yet implemented for Anthropic models.
func (a *AnthropicTranscriber) Transcribe(ctx context.Context, imageURL string) (string, error) {
	return "", fmt.Errorf("anthropic transcriber not implemented")
}

// Package llm provides text generation through OpenAI-compatible chat completion APIs.
package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// Generator produces a completion for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// ErrEmptyCompletion is returned when the provider answers with no choices.
var ErrEmptyCompletion = errors.New("completion contained no choices")

// Config configures an OpenAI-compatible chat endpoint. An empty BaseURL targets
// api.openai.com; Ollama serves the same API at http://localhost:11434/v1/.
type Config struct {
	BaseURL     string
	APIKey      string
	Model       string
	Temperature float64
}

// OpenAIGenerator sends the prompt as a single user message. Requests are not retried.
type OpenAIGenerator struct {
	client      openai.Client
	model       string
	temperature float64
}

// NewOpenAIGenerator creates a generator for cfg.
func NewOpenAIGenerator(cfg Config) (*OpenAIGenerator, error) {
	if cfg.Model == "" {
		return nil, errors.New("generation model is required")
	}
	apiKey := cfg.APIKey
	if apiKey == "" {
		apiKey = "unused"
	}
	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	return &OpenAIGenerator{
		client:      openai.NewClient(opts...),
		model:       cfg.Model,
		temperature: cfg.Temperature,
	}, nil
}

// Generate returns the first choice's message content.
func (g *OpenAIGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(g.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	}
	if g.temperature > 0 {
		params.Temperature = openai.Float(g.temperature)
	}
	resp, err := g.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("completion request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyCompletion
	}
	return resp.Choices[0].Message.Content, nil
}

// Model returns the configured model name.
func (g *OpenAIGenerator) Model() string {
	return g.model
}

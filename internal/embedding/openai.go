package embedding

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/hyperjump/sqlrag/pkg/utils"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// OpenAIConfig configures an embedder for an OpenAI-compatible /embeddings endpoint.
// An empty BaseURL targets api.openai.com. Ollama serves the same API under /v1/.
type OpenAIConfig struct {
	BaseURL string
	APIKey  string
	Model   string
}

// OpenAIEmbedder calls an OpenAI-compatible embeddings API. Requests are not retried.
type OpenAIEmbedder struct {
	client openai.Client
	model  string

	mu   sync.RWMutex
	dims int
}

// NewOpenAIEmbedder creates an embedder for cfg.
func NewOpenAIEmbedder(cfg OpenAIConfig) (*OpenAIEmbedder, error) {
	if cfg.Model == "" {
		return nil, errors.New("embedding model is required")
	}
	opts := []option.RequestOption{option.WithMaxRetries(0)}
	if cfg.APIKey != "" {
		opts = append(opts, option.WithAPIKey(cfg.APIKey))
	} else {
		// Ollama and other local servers ignore the key.
		opts = append(opts, option.WithAPIKey("unused"))
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	return &OpenAIEmbedder{
		client: openai.NewClient(opts...),
		model:  cfg.Model,
	}, nil
}

// Embed requests one embedding for text and returns it normalized to unit length.
func (e *OpenAIEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	resp, err := e.client.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Input: openai.EmbeddingNewParamsInputUnion{OfString: openai.String(text)},
		Model: openai.EmbeddingModel(e.model),
	})
	if err != nil {
		return nil, fmt.Errorf("embedding request failed: %w", err)
	}
	if len(resp.Data) == 0 || len(resp.Data[0].Embedding) == 0 {
		return nil, errors.New("embedding response contained no vector")
	}
	vec := utils.ToFloat32(resp.Data[0].Embedding)
	utils.NormalizeL2(vec)

	e.mu.Lock()
	e.dims = len(vec)
	e.mu.Unlock()
	return vec, nil
}

// Dimensions returns the length of the last vector returned by the provider, or 0
// before the first call.
func (e *OpenAIEmbedder) Dimensions() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.dims
}

// Close is a no-op; the HTTP client holds no resources that need releasing.
func (e *OpenAIEmbedder) Close() error {
	return nil
}

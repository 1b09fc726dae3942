// Package embedding maps text to fixed-dimension vectors via ONNX, an OpenAI-compatible API, or a deterministic mock.
package embedding

import (
	"context"
	"fmt"
)

// Embedder produces vector embeddings for text. Every vector returned by one
// Embedder has length Dimensions().
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	Dimensions() int
	Close() error
}

// EmbedAll embeds each text in order and stops at the first failure.
func EmbedAll(ctx context.Context, e Embedder, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, text := range texts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		vec, err := e.Embed(ctx, text)
		if err != nil {
			return nil, fmt.Errorf("embed text %d: %w", i, err)
		}
		out[i] = vec
	}
	return out, nil
}

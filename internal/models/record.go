// Package models defines core data structures for chunks, stored embeddings, and chat messages.
package models

// Chunk is a bounded segment of a raw text unit, sized for embedding.
type Chunk struct {
	Content string `json:"content"`
}

// EmbeddingRecord is one row of the embeddings table.
type EmbeddingRecord struct {
	ID      int64     `json:"id" db:"id"`
	Content string    `json:"content" db:"content"`
	Vector  []float32 `json:"-" db:"embedding"`
}

// Dimensions returns the length of the record's vector.
func (r *EmbeddingRecord) Dimensions() int {
	return len(r.Vector)
}

// ScoredMatch is a retrieval hit. It is never persisted.
type ScoredMatch struct {
	Content string  `json:"content"`
	Score   float64 `json:"score"`
}

// Package storage defines the append-only persistence interface for embedding records.
package storage

import (
	"context"

	"github.com/hyperjump/sqlrag/internal/models"
)

// EmbeddingStore persists (content, vector) records. Records are only ever appended.
type EmbeddingStore interface {
	// Insert appends a record and returns its id, strictly greater than every earlier id.
	Insert(ctx context.Context, content string, vector []float32) (int64, error)
	// ScanAll returns every record ordered by ascending id.
	ScanAll(ctx context.Context) ([]models.EmbeddingRecord, error)
	// Count returns the number of stored records.
	Count(ctx context.Context) (int64, error)

	Close() error
}

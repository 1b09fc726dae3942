package vector

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/hyperjump/sqlrag/internal/models"
)

// ErrDimensionMismatch is returned when a stored vector and the query vector differ in length.
var ErrDimensionMismatch = errors.New("vector dimension mismatch")

// Retriever ranks records against a query vector.
type Retriever interface {
	TopK(ctx context.Context, query []float32, k int, records []models.EmbeddingRecord) ([]models.ScoredMatch, error)
	Type() string
}

// ExhaustiveRetriever scores every record with cosine similarity. Cost is linear in
// record count times dimension.
type ExhaustiveRetriever struct{}

// NewExhaustiveRetriever returns a full-scan retriever.
func NewExhaustiveRetriever() *ExhaustiveRetriever {
	return &ExhaustiveRetriever{}
}

// Type returns the retriever type identifier.
func (r *ExhaustiveRetriever) Type() string {
	return string(RetrieverExhaustive)
}

// TopK returns min(k, len(records)) matches sorted by descending score. Equal scores keep
// the order of records. k <= 0 yields no matches.
func (r *ExhaustiveRetriever) TopK(ctx context.Context, query []float32, k int, records []models.EmbeddingRecord) ([]models.ScoredMatch, error) {
	if k <= 0 || len(records) == 0 {
		return []models.ScoredMatch{}, nil
	}
	scored := make([]models.ScoredMatch, len(records))
	for i := range records {
		if i%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		rec := &records[i]
		if len(rec.Vector) != len(query) {
			return nil, fmt.Errorf("%w: record %d has %d dimensions, query has %d",
				ErrDimensionMismatch, rec.ID, len(rec.Vector), len(query))
		}
		scored[i] = models.ScoredMatch{Content: rec.Content, Score: CosineSimilarity(query, rec.Vector)}
	}
	sort.SliceStable(scored, func(i, j int) bool { return scored[i].Score > scored[j].Score })
	if k > len(scored) {
		k = len(scored)
	}
	return scored[:k], nil
}

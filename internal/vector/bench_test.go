package vector

import (
	"context"
	"testing"

	"github.com/hyperjump/sqlrag/internal/models"
)

func benchRecords(n, dims int) []models.EmbeddingRecord {
	records := make([]models.EmbeddingRecord, n)
	for i := range records {
		v := make([]float32, dims)
		v[0] = float32(i) / float32(n)
		v[i%dims] += 0.5
		records[i] = models.EmbeddingRecord{ID: int64(i + 1), Vector: v}
	}
	return records
}

func BenchmarkExhaustiveRetriever_TopK(b *testing.B) {
	records := benchRecords(1000, 384)
	query := make([]float32, 384)
	query[0] = 1.0
	r := NewExhaustiveRetriever()
	ctx := context.Background()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = r.TopK(ctx, query, 10, records)
	}
}

func BenchmarkCosineSimilarity(b *testing.B) {
	records := benchRecords(2, 384)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = CosineSimilarity(records[0].Vector, records[1].Vector)
	}
}

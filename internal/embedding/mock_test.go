package embedding

import (
	"context"
	"errors"
	"math"
	"testing"
)

func TestMockEmbedder_Deterministic(t *testing.T) {
	e := NewMockEmbedder(16)
	ctx := context.Background()
	a, _ := e.Embed(ctx, "Go is great for AI.")
	b, _ := e.Embed(ctx, "Go is great for AI.")
	if len(a) != 16 {
		t.Fatalf("len = %d, want 16", len(a))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("not deterministic at %d: %v vs %v", i, a[i], b[i])
		}
	}
	c, _ := e.Embed(ctx, "something else entirely")
	same := true
	for i := range a {
		if a[i] != c[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("different texts produced the same embedding")
	}
}

func TestMockEmbedder_UnitLength(t *testing.T) {
	vec, _ := NewMockEmbedder(0).Embed(context.Background(), "hello")
	if len(vec) != 384 {
		t.Errorf("default dimensions = %d, want 384", len(vec))
	}
	var sum float64
	for _, v := range vec {
		sum += float64(v) * float64(v)
	}
	if math.Abs(sum-1) > 1e-4 {
		t.Errorf("squared norm = %v, want 1", sum)
	}
}

func TestEmbedAll(t *testing.T) {
	e := NewMockEmbedder(8)
	vecs, err := EmbedAll(context.Background(), e, []string{"a", "b", "c"})
	if err != nil {
		t.Fatal(err)
	}
	if len(vecs) != 3 {
		t.Fatalf("expected 3 vectors, got %d", len(vecs))
	}
	want, _ := e.Embed(context.Background(), "b")
	for i := range want {
		if vecs[1][i] != want[i] {
			t.Fatalf("vector order not preserved")
		}
	}
}

func TestEmbedAll_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := EmbedAll(ctx, NewMockEmbedder(4), []string{"a"}); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func BenchmarkMockEmbedder_Embed(b *testing.B) {
	e := NewMockEmbedder(384)
	ctx := context.Background()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = e.Embed(ctx, "benchmark query text for embedding")
	}
}

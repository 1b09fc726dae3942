package indexer

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestChunker_Split(t *testing.T) {
	c := NewChunker(10, 3, "\n")
	chunks := c.Split("aaaa\nbbbb\ncccc")
	want := []string{"aaaa\nbbbb", "bbb\ncccc"}
	if len(chunks) != len(want) {
		t.Fatalf("expected %d chunks, got %d: %v", len(want), len(chunks), chunks)
	}
	for i, ch := range chunks {
		if ch.Content != want[i] {
			t.Errorf("chunk %d = %q, want %q", i, ch.Content, want[i])
		}
	}
}

func TestChunker_SplitEmpty(t *testing.T) {
	c := NewChunker(5, 1, "\n")
	for _, text := range []string{"", "\n\n", "   \n\t  "} {
		if chunks := c.Split(text); len(chunks) != 0 {
			t.Errorf("Split(%q) should be empty, got %v", text, chunks)
		}
	}
}

func TestChunker_OversizedUnitEmittedWhole(t *testing.T) {
	c := NewChunker(10, 2, "\n")
	long := strings.Repeat("x", 25)
	chunks := c.Split("ab\n" + long + "\ncd")
	found := false
	for _, ch := range chunks {
		if ch.Content == long {
			found = true
		}
	}
	if !found {
		t.Errorf("oversized unit should be its own chunk, got %v", chunks)
	}
}

func TestChunker_Coverage(t *testing.T) {
	texts := []string{
		"The cat sat.\nThe dog ran.\nBirds fly south in winter.\nFish swim.",
		strings.Repeat("lorem ipsum dolor sit amet\n", 40),
		"short",
		"one\n\ntwo\n\n\nthree\n" + strings.Repeat("z", 50) + "\nfour",
		"héllo wörld\nnaïve café\nüber straße",
	}
	params := [][2]int{{10, 0}, {10, 3}, {30, 5}, {100, 10}, {1000, 100}}
	for _, text := range texts {
		for _, p := range params {
			c := NewChunker(p[0], p[1], "\n")
			chunks := c.Split(text)
			joined := make([]string, len(chunks))
			for i, ch := range chunks {
				joined[i] = ch.Content
			}
			all := strings.Join(joined, "\x00")
			for _, unit := range strings.Split(text, "\n") {
				if strings.TrimSpace(unit) == "" {
					continue
				}
				if !strings.Contains(all, unit) {
					t.Errorf("size=%d overlap=%d: unit %q missing from chunks", p[0], p[1], unit)
				}
			}
		}
	}
}

func TestChunker_BoundedUnlessSingleUnit(t *testing.T) {
	c := NewChunker(20, 5, "\n")
	text := "alpha beta\ngamma delta\nepsilon\nzeta eta theta iota kappa\nlambda"
	for _, ch := range c.Split(text) {
		n := utf8.RuneCountInString(ch.Content)
		if n > 20 && strings.Contains(ch.Content, "\n") {
			t.Errorf("multi-unit chunk exceeds size: %q (%d)", ch.Content, n)
		}
	}
}

func TestChunker_OrderAndDeterminism(t *testing.T) {
	c := NewChunker(12, 4, "\n")
	text := "first line\nsecond line\nthird line\nfourth line"
	a := c.Split(text)
	b := c.Split(text)
	if len(a) != len(b) {
		t.Fatalf("non-deterministic chunk count: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("chunk %d differs between runs", i)
		}
	}
	last := -1
	for _, word := range []string{"first", "second", "third", "fourth"} {
		pos := -1
		for i, ch := range a {
			if strings.Contains(ch.Content, word) {
				pos = i
				break
			}
		}
		if pos < last {
			t.Errorf("%q appears before an earlier unit", word)
		}
		last = pos
	}
}

func TestNewChunker_NormalizesParameters(t *testing.T) {
	c := NewChunker(0, -1, "")
	if c.Size() != DefaultChunkSize || c.Overlap() != 0 || c.separator != DefaultSeparator {
		t.Errorf("got size=%d overlap=%d sep=%q", c.Size(), c.Overlap(), c.separator)
	}
	c = NewChunker(10, 10, "\n")
	if c.Overlap() != 0 {
		t.Errorf("overlap >= size should be dropped, got %d", c.Overlap())
	}
}

func TestChunker_CustomSeparator(t *testing.T) {
	c := NewChunker(8, 0, "|")
	chunks := c.Split("abc|def|ghi")
	if len(chunks) != 2 || chunks[0].Content != "abc|def" || chunks[1].Content != "ghi" {
		t.Errorf("got %v", chunks)
	}
}

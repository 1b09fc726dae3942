// Package indexer provides document chunking and ingestion into the embedding store.
package indexer

import (
	"strings"

	"github.com/hyperjump/sqlrag/internal/models"
	"github.com/hyperjump/sqlrag/pkg/utils"
)

const (
	DefaultChunkSize    = 1000
	DefaultChunkOverlap = 100
	DefaultSeparator    = "\n"
)

// Chunker splits text on a separator and packs the pieces into bounded, overlapping segments.
// Sizes are measured in runes.
type Chunker struct {
	size      int
	overlap   int
	separator string
}

// NewChunker creates a chunker. size <= 0 falls back to DefaultChunkSize, an overlap that is
// negative or not smaller than size is treated as 0, and an empty separator becomes "\n".
func NewChunker(size, overlap int, separator string) *Chunker {
	if size <= 0 {
		size = DefaultChunkSize
	}
	if overlap < 0 || overlap >= size {
		overlap = 0
	}
	if separator == "" {
		separator = DefaultSeparator
	}
	return &Chunker{size: size, overlap: overlap, separator: separator}
}

// Split returns the chunks of text in source order. Blank pieces between separators are
// dropped. A piece longer than the chunk size is emitted whole as its own chunk.
func (c *Chunker) Split(text string) []models.Chunk {
	var units []string
	for _, u := range strings.Split(text, c.separator) {
		if strings.TrimSpace(u) != "" {
			units = append(units, u)
		}
	}
	if len(units) == 0 {
		return nil
	}

	sepLen := utils.RuneLen(c.separator)
	chunks := make([]models.Chunk, 0, 1)
	current := units[0]
	currentLen := utils.RuneLen(current)
	for _, u := range units[1:] {
		uLen := utils.RuneLen(u)
		if currentLen+sepLen+uLen <= c.size {
			current += c.separator + u
			currentLen += sepLen + uLen
			continue
		}
		chunks = append(chunks, models.Chunk{Content: current})

		tail := utils.TailRunes(current, c.overlap)
		tailLen := utils.RuneLen(tail)
		if tailLen > 0 && tailLen+sepLen+uLen <= c.size {
			current = tail + c.separator + u
			currentLen = tailLen + sepLen + uLen
		} else {
			current = u
			currentLen = uLen
		}
	}
	return append(chunks, models.Chunk{Content: current})
}

// Size returns the configured maximum chunk length.
func (c *Chunker) Size() int { return c.size }

// Overlap returns the configured overlap length.
func (c *Chunker) Overlap() int { return c.overlap }

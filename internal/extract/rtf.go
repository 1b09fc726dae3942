package extract

import (
	"fmt"
	"strings"

	"github.com/lu4p/cat"
)

// loadRTF converts Rich Text Format to plain text as one unit.
func loadRTF(content []byte) ([]string, error) {
	text, err := cat.FromBytes(content)
	if err != nil {
		return nil, fmt.Errorf("extract RTF: %w", err)
	}
	return []string{strings.TrimSpace(text)}, nil
}

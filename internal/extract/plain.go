package extract

import (
	"strings"
	"unicode/utf8"
)

// loadPlain returns content as a single unit. Invalid UTF-8 sequences are
// replaced with the replacement character.
func loadPlain(content []byte) ([]string, error) {
	text := string(content)
	if !utf8.ValidString(text) {
		text = strings.ToValidUTF8(text, "�")
	}
	return []string{text}, nil
}

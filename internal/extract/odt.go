package extract

import (
	"fmt"
	"html"
	"regexp"
	"strings"
)

const odtContentPath = "content.xml"

var (
	// odtBlock matches headings and paragraphs; nested spans are flattened by odtTag.
	odtBlock = regexp.MustCompile(`(?s)<text:(p|h)(?:\s[^>]*)?>(.*?)</text:(?:p|h)>`)
	odtTab   = regexp.MustCompile(`<text:(?:tab|s)(?:\s[^>]*)?/>`)
	odtBreak = regexp.MustCompile(`<text:line-break\s*/>`)
	odtTag   = regexp.MustCompile(`<[^>]+>`)
)

// loadODT returns an OpenDocument Text file as one unit with one line per
// paragraph or heading, in document order.
func loadODT(content []byte) ([]string, error) {
	zr, err := openZip(content)
	if err != nil {
		return nil, fmt.Errorf("extract ODT: %w", err)
	}
	contentXML, err := readZipEntry(zr, odtContentPath)
	if err != nil {
		return nil, fmt.Errorf("extract ODT: %w", err)
	}
	if contentXML == nil {
		return nil, fmt.Errorf("extract ODT: %s not found", odtContentPath)
	}

	var lines []string
	for _, m := range odtBlock.FindAllStringSubmatch(string(contentXML), -1) {
		inner := odtTab.ReplaceAllString(m[2], " ")
		inner = odtBreak.ReplaceAllString(inner, "\n")
		inner = odtTag.ReplaceAllString(inner, "")
		lines = append(lines, html.UnescapeString(inner))
	}
	return []string{strings.TrimSpace(strings.Join(lines, "\n"))}, nil
}

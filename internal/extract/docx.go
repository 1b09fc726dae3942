package extract

import (
	"archive/zip"
	"fmt"
	"html"
	"regexp"
	"strings"
)

const (
	docxDocumentXMLPath = "word/document.xml"
	contentTypesPath    = "[Content_Types].xml"
	docxMainContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"
)

var (
	// wParagraph matches a non-empty <w:p> element. <w:pPr> and self-closing
	// paragraphs do not match.
	wParagraph = regexp.MustCompile(`(?s)<w:p(?:\s[^>]*[^/])?>.*?</w:p>`)
	wText      = regexp.MustCompile(`<w:t(?:\s[^>]*)?>([^<]*)</w:t>`)
	wTab       = regexp.MustCompile(`<w:tab/>`)

	partNameRe  = regexp.MustCompile(`<Override[^>]+PartName="([^"]+)"[^>]+ContentType="` + regexp.QuoteMeta(docxMainContentType) + `"`)
	partNameRe2 = regexp.MustCompile(`<Override[^>]+ContentType="` + regexp.QuoteMeta(docxMainContentType) + `"[^>]+PartName="([^"]+)"`)
)

// findDocxMainDocumentPath reads [Content_Types].xml for the main document part.
// Returns the path without leading slash, or empty string if not found.
func findDocxMainDocumentPath(zr *zip.Reader) string {
	data, err := readZipEntry(zr, contentTypesPath)
	if err != nil || data == nil {
		return ""
	}
	s := string(data)
	for _, re := range []*regexp.Regexp{partNameRe, partNameRe2} {
		if m := re.FindStringSubmatch(s); len(m) > 1 {
			return strings.TrimPrefix(m[1], "/")
		}
	}
	return ""
}

// loadDOCX returns the document body as one unit with one line per paragraph.
// Runs within a paragraph are concatenated as written; tabs are kept.
func loadDOCX(content []byte) ([]string, error) {
	zr, err := openZip(content)
	if err != nil {
		return nil, fmt.Errorf("extract DOCX: %w", err)
	}
	docPath := findDocxMainDocumentPath(zr)
	if docPath == "" {
		docPath = docxDocumentXMLPath
	}
	docXML, err := readZipEntry(zr, docPath)
	if err != nil {
		return nil, fmt.Errorf("extract DOCX: %w", err)
	}
	if docXML == nil {
		return nil, fmt.Errorf("extract DOCX: %s not found", docPath)
	}

	var lines []string
	for _, para := range wParagraph.FindAllString(string(docXML), -1) {
		para = wTab.ReplaceAllString(para, "<w:t>\t</w:t>")
		var b strings.Builder
		for _, m := range wText.FindAllStringSubmatch(para, -1) {
			b.WriteString(html.UnescapeString(m[1]))
		}
		lines = append(lines, b.String())
	}
	return []string{strings.TrimSpace(strings.Join(lines, "\n"))}, nil
}

// Package extract loads documents into raw text units. The unit granularity
// depends on the format: one per PDF page, one per spreadsheet sheet, one for
// every other supported type.
package extract

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrUnsupportedType is returned for file extensions with no registered loader.
var ErrUnsupportedType = errors.New("unsupported file type")

// loadFunc turns file bytes into text units.
type loadFunc func(content []byte) ([]string, error)

var loaders = map[string]loadFunc{
	".pdf":  loadPDF,
	".docx": loadDOCX,
	".doc":  loadDOCX,
	".txt":  loadPlain,
	".md":   loadPlain,
	".xlsx": loadExcel,
	".odt":  loadODT,
	".rtf":  loadRTF,
}

// Extractor dispatches on file extension to a format loader.
type Extractor struct{}

// NewExtractor returns a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Supports reports whether name has an extension with a registered loader.
func (e *Extractor) Supports(name string) bool {
	_, ok := loaders[Ext(name)]
	return ok
}

// Load returns the text units of a file named name with the given content.
// Only the extension of name is used. Unknown extensions yield ErrUnsupportedType.
func (e *Extractor) Load(name string, content []byte) ([]string, error) {
	ext := Ext(name)
	load, ok := loaders[ext]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedType, ext)
	}
	units, err := load(content)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", filepath.Base(name), err)
	}
	return units, nil
}

// LoadFile reads the file at path and returns its text units.
func (e *Extractor) LoadFile(path string) ([]string, error) {
	if !e.Supports(path) {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedType, Ext(path))
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return e.Load(path, content)
}

// Ext returns the lowercased extension of name, including the dot.
func Ext(name string) string {
	return strings.ToLower(filepath.Ext(name))
}

// SupportedExtensions returns the registered extensions in sorted order.
func SupportedExtensions() []string {
	exts := make([]string, 0, len(loaders))
	for ext := range loaders {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

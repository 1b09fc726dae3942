// Package cli provides output helpers for the sqlrag command line.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/hyperjump/sqlrag/internal/models"
	"github.com/hyperjump/sqlrag/pkg/utils"
)

// OutputFormat is the format for command output.
type OutputFormat string

const (
	// OutputText is human-readable text (default).
	OutputText OutputFormat = "text"
	// OutputJSON is structured JSON for machine consumption.
	OutputJSON OutputFormat = "json"
)

// ParseOutputFormat accepts "text" and "json" in any case.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch OutputFormat(strings.ToLower(s)) {
	case OutputText, "":
		return OutputText, nil
	case OutputJSON:
		return OutputJSON, nil
	default:
		return "", fmt.Errorf("unknown output format %q (use text or json)", s)
	}
}

// matchPreviewLen is the number of runes of each match shown in text output.
const matchPreviewLen = 200

// WriteAnswer writes an answered query to w. Text output shows the answer and,
// when showMatches is set, the context chunks with their scores.
func WriteAnswer(w io.Writer, resp *models.QueryResponse, format OutputFormat, showMatches bool) error {
	if format == OutputJSON {
		return WriteJSON(w, resp)
	}
	fmt.Fprintf(w, "%s\n", resp.Answer)
	if showMatches {
		writeMatches(w, resp.Matches)
		fmt.Fprintf(w, "(%dms)\n", resp.QueryTime)
	}
	return nil
}

func writeMatches(w io.Writer, matches []models.ScoredMatch) {
	fmt.Fprintf(w, "\n--- Context (%d chunks) ---\n", len(matches))
	for i, m := range matches {
		fmt.Fprintf(w, "─────────────────────────────────────────────────────────\n")
		fmt.Fprintf(w, "[%d] Score: %.4f\n", i+1, m.Score)
		fmt.Fprintf(w, "%s\n", utils.Truncate(strings.TrimSpace(m.Content), matchPreviewLen))
	}
	fmt.Fprintln(w)
}

// WriteIngestReport writes an ingestion summary to w.
func WriteIngestReport(w io.Writer, report *models.IngestReport, format OutputFormat) error {
	if format == OutputJSON {
		return WriteJSON(w, report)
	}
	fmt.Fprintf(w, "Ingested %d file(s) into %d chunk(s)\n", report.Files, report.Chunks)
	if len(report.Skipped) > 0 {
		fmt.Fprintf(w, "Skipped %d unsupported file(s): %s\n", len(report.Skipped), strings.Join(report.Skipped, ", "))
	}
	return nil
}

// WriteHistory writes a conversation as "User: ..." / "AI: ..." lines.
func WriteHistory(w io.Writer, history []models.ChatMessage) {
	for _, msg := range history {
		fmt.Fprintln(w, msg.String())
	}
}

// WriteJSON writes v as indented JSON.
func WriteJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

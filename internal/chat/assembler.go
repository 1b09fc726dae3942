// Package chat assembles retrieval-augmented prompts and runs conversation turns.
package chat

import (
	"strings"

	"github.com/hyperjump/sqlrag/internal/models"
)

// BuildPrompt renders matches, history and the current query into one prompt:
//
//	Context:
//	<match 1>
//
//	<match 2>
//
//	Chat History:
//	User: ...
//	AI: ...
//	User: <query>
//	AI:
//
// history must not already contain query. Nothing is truncated or deduplicated.
func BuildPrompt(matches []models.ScoredMatch, history []models.ChatMessage, query string) string {
	var b strings.Builder
	b.WriteString("Context:\n")
	for i, m := range matches {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(m.Content)
	}
	b.WriteString("\n\nChat History:\n")
	for _, msg := range history {
		b.WriteString(msg.String())
		b.WriteByte('\n')
	}
	b.WriteString(models.UserMessage(query).String())
	b.WriteString("\nAI:")
	return b.String()
}

// HistoryWindow returns the newest max messages of history. max <= 0 keeps everything.
func HistoryWindow(history []models.ChatMessage, max int) []models.ChatMessage {
	if max <= 0 || len(history) <= max {
		return history
	}
	return history[len(history)-max:]
}

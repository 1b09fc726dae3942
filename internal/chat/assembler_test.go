package chat

import (
	"testing"

	"github.com/hyperjump/sqlrag/internal/models"
)

func TestBuildPrompt(t *testing.T) {
	matches := []models.ScoredMatch{
		{Content: "The cat sat.", Score: 0.9},
		{Content: "The dog ran.", Score: 0.2},
	}
	history := []models.ChatMessage{
		models.AssistantMessage("Hi, I'm a bot. How can I help you?"),
		models.UserMessage("hello"),
		models.AssistantMessage("hi there"),
	}
	got := BuildPrompt(matches, history, "What did the cat do?")
	want := "Context:\nThe cat sat.\n\nThe dog ran.\n\nChat History:\n" +
		"AI: Hi, I'm a bot. How can I help you?\n" +
		"User: hello\n" +
		"AI: hi there\n" +
		"User: What did the cat do?\nAI:"
	if got != want {
		t.Errorf("BuildPrompt =\n%q\nwant\n%q", got, want)
	}
}

func TestBuildPrompt_noMatchesNoHistory(t *testing.T) {
	got := BuildPrompt(nil, nil, "anything?")
	want := "Context:\n\n\nChat History:\nUser: anything?\nAI:"
	if got != want {
		t.Errorf("BuildPrompt = %q, want %q", got, want)
	}
}

func TestBuildPrompt_keepsMatchOrderAndDuplicates(t *testing.T) {
	matches := []models.ScoredMatch{{Content: "b"}, {Content: "a"}, {Content: "b"}}
	got := BuildPrompt(matches, nil, "q")
	want := "Context:\nb\n\na\n\nb\n\nChat History:\nUser: q\nAI:"
	if got != want {
		t.Errorf("BuildPrompt = %q, want %q", got, want)
	}
}

func TestHistoryWindow(t *testing.T) {
	history := []models.ChatMessage{
		models.AssistantMessage("greet"),
		models.UserMessage("1"),
		models.AssistantMessage("2"),
		models.UserMessage("3"),
	}
	tests := []struct {
		max   int
		want  int
		first string
	}{
		{0, 4, "greet"},
		{-3, 4, "greet"},
		{10, 4, "greet"},
		{4, 4, "greet"},
		{2, 2, "2"},
		{1, 1, "3"},
	}
	for _, tt := range tests {
		got := HistoryWindow(history, tt.max)
		if len(got) != tt.want || got[0].Content != tt.first {
			t.Errorf("HistoryWindow(max=%d) = %v, want %d messages starting with %q", tt.max, got, tt.want, tt.first)
		}
	}
}

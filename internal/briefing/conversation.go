package briefing

import "strings"

// Turn is one prior exchange in the conversation.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// AssembleConversation folds prior turns and the new user message into a
// single prompt. Only the most recent window turns are kept; the bound is a
// sliding window to cap prompt size, not a summarization. With no history
// the message passes through untouched.
func AssembleConversation(message string, history []Turn, window int) string {
	if len(history) == 0 || window <= 0 {
		return message
	}
	if len(history) > window {
		history = history[len(history)-window:]
	}

	var b strings.Builder
	b.WriteString("Previous conversation:\n")
	for _, turn := range history {
		if turn.Role == "user" {
			b.WriteString("User: ")
		} else {
			b.WriteString("Assistant: ")
		}
		b.WriteString(turn.Content)
		b.WriteByte('\n')
	}
	b.WriteString("\nNew user question: ")
	b.WriteString(message)
	return b.String()
}

package amqp

import (
	"encoding/json"
	"time"
)

// ChatEventMessage is the audit record published after each answered chat.
// It deliberately carries no message content, only shape and outcome.
type ChatEventMessage struct {
	Timestamp    time.Time `json:"timestamp"`
	DurationMS   int64     `json:"duration_ms"`
	MessageChars int       `json:"message_chars"`
	HistoryTurns int       `json:"history_turns"`
	Degraded     bool      `json:"degraded"`
}

// NewChatEventMessage builds an audit event for one completed chat request.
func NewChatEventMessage(duration time.Duration, messageChars, historyTurns int, degraded bool) *ChatEventMessage {
	return &ChatEventMessage{
		Timestamp:    time.Now(),
		DurationMS:   duration.Milliseconds(),
		MessageChars: messageChars,
		HistoryTurns: historyTurns,
		Degraded:     degraded,
	}
}

// ToJSON converts the message to JSON bytes.
func (m *ChatEventMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// ChatEventMessageFromJSON creates a message from JSON bytes.
func ChatEventMessageFromJSON(data []byte) (*ChatEventMessage, error) {
	var msg ChatEventMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

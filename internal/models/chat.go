package models

import "time"

// MessageRole identifies the author of a chat message.
type MessageRole string

const (
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
	RoleSystem    MessageRole = "system"
)

// ChatMessage is a single turn in a session. Messages are immutable once
// created; sessions only ever append them.
type ChatMessage struct {
	ID        string      `json:"id"`
	Role      MessageRole `json:"role"`
	Content   string      `json:"content"`
	Timestamp time.Time   `json:"timestamp"`
}

// ChatSession is an append-only ordered message history with lifecycle
// timestamps. UpdatedAt is bumped on every append and never moves backwards.
type ChatSession struct {
	ID        string        `json:"id"`
	Messages  []ChatMessage `json:"messages"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// Append adds a message and bumps UpdatedAt, keeping it monotonic.
func (s *ChatSession) Append(msg ChatMessage) {
	s.Messages = append(s.Messages, msg)
	if msg.Timestamp.After(s.UpdatedAt) {
		s.UpdatedAt = msg.Timestamp
	}
}

// Title derives a display name for the session from its first user message.
func (s *ChatSession) Title() string {
	for _, m := range s.Messages {
		if m.Role == RoleUser && m.Content != "" {
			if len(m.Content) > 40 {
				return m.Content[:37] + "..."
			}
			return m.Content
		}
	}
	return "New chat"
}

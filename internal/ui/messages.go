package ui

import (
	"sync"
	"time"
)

// Message is a status line message with its timestamp
type Message struct {
	Text      string
	IsError   bool
	Timestamp time.Time
}

// Format renders the message for the message log overlay
func (m *Message) Format() string {
	prefix := "  "
	if m.IsError {
		prefix = "! "
	}
	return m.Timestamp.Format("15:04:05") + " " + prefix + m.Text
}

// MessageLogger keeps the last N status messages
type MessageLogger struct {
	messages []*Message
	maxSize  int
	now      func() time.Time
	mu       sync.Mutex
}

// NewMessageLogger creates a new message logger with the specified max size
func NewMessageLogger(maxSize int) *MessageLogger {
	return &MessageLogger{
		messages: make([]*Message, 0, maxSize),
		maxSize:  maxSize,
		now:      time.Now,
	}
}

// AddMessage records a status message. Empty messages are ignored.
func (ml *MessageLogger) AddMessage(text string, isError bool) {
	ml.mu.Lock()
	defer ml.mu.Unlock()

	if text == "" {
		return
	}
	ml.messages = append(ml.messages, &Message{
		Text:      text,
		IsError:   isError,
		Timestamp: ml.now(),
	})
	if len(ml.messages) > ml.maxSize {
		ml.messages = ml.messages[len(ml.messages)-ml.maxSize:]
	}
}

// Last returns the newest message
func (ml *MessageLogger) Last() (*Message, bool) {
	ml.mu.Lock()
	defer ml.mu.Unlock()
	if len(ml.messages) == 0 {
		return nil, false
	}
	return ml.messages[len(ml.messages)-1], true
}

// Lines returns the formatted messages, newest first
func (ml *MessageLogger) Lines() []string {
	ml.mu.Lock()
	defer ml.mu.Unlock()

	out := make([]string, len(ml.messages))
	for i, msg := range ml.messages {
		out[len(ml.messages)-1-i] = msg.Format()
	}
	return out
}

// Count returns the number of messages in the logger
func (ml *MessageLogger) Count() int {
	ml.mu.Lock()
	defer ml.mu.Unlock()
	return len(ml.messages)
}

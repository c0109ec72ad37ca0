package socket

import "github.com/pstuifzand/outline-engine/internal/model"

// Message is a command sent to a running outliner instance
type Message struct {
	Command  string          `json:"command"`
	Text     string          `json:"text,omitempty"`
	Mode     string          `json:"mode,omitempty"` // search mode: "literal" or "regex"
	Indent   int             `json:"indent,omitempty"`
	Snapshot *model.Snapshot `json:"snapshot,omitempty"`

	// ResponseChan is set by the server for synchronous commands; the
	// handler must send exactly one response on it.
	ResponseChan chan *Response `json:"-"`
}

// Response is the reply to a Message
type Response struct {
	Success  bool            `json:"success"`
	Message  string          `json:"message"`
	Version  uint64          `json:"version,omitempty"`
	Snapshot *model.Snapshot `json:"snapshot,omitempty"`
	Matches  []MatchInfo     `json:"matches,omitempty"`
}

// MatchInfo is a search hit as sent over the wire
type MatchInfo struct {
	Line  int    `json:"line"`
	Start int    `json:"start"`
	End   int    `json:"end"`
	Text  string `json:"text"`
}

// Command types
const (
	CommandSnapshot      = "snapshot"
	CommandApplySnapshot = "apply_snapshot"
	CommandVersion       = "version"
	CommandSearch        = "search"
	CommandAppendLine    = "append_line"
)

// synchronous reports whether the client waits for the handler's response.
func synchronous(command string) bool {
	return command != CommandAppendLine
}

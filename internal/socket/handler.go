package socket

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/pstuifzand/outline-engine/internal/model"
	"github.com/pstuifzand/outline-engine/internal/search"
)

// Document is the part of the engine the socket commands operate on.
type Document interface {
	Lines() []model.Line
	Version() uint64
	ToSnapshot() model.Snapshot
	ApplySnapshot(s model.Snapshot)
	AppendLine(text string, indent int)
}

// Handler executes socket commands against a document. It must run on the
// goroutine that owns the document.
type Handler struct {
	Doc     Document
	Matcher *search.Matcher
	Logger  *slog.Logger
}

// Dispatch executes msg and delivers the response to the waiting client, if
// the command is synchronous.
func (h *Handler) Dispatch(msg Message) {
	resp := h.Handle(msg)
	if msg.ResponseChan != nil {
		msg.ResponseChan <- resp
	}
}

// Handle executes msg and returns the response.
func (h *Handler) Handle(msg Message) *Response {
	logger := h.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	logger.Debug("socket command", "command", msg.Command)

	switch msg.Command {
	case CommandVersion:
		return &Response{Success: true, Version: h.Doc.Version()}

	case CommandSnapshot:
		snap := h.Doc.ToSnapshot()
		return &Response{Success: true, Version: h.Doc.Version(), Snapshot: &snap}

	case CommandApplySnapshot:
		if msg.Snapshot == nil {
			return &Response{Success: false, Message: "Missing snapshot"}
		}
		h.Doc.ApplySnapshot(*msg.Snapshot)
		return &Response{Success: true, Message: "Snapshot applied", Version: h.Doc.Version()}

	case CommandAppendLine:
		if msg.Text == "" {
			logger.Warn("append_line without text")
			return &Response{Success: false, Message: "Missing text"}
		}
		h.Doc.AppendLine(msg.Text, msg.Indent)
		return &Response{Success: true, Message: "Line appended", Version: h.Doc.Version()}

	case CommandSearch:
		return h.search(msg, logger)
	}

	logger.Warn("unknown socket command", "command", msg.Command)
	return &Response{Success: false, Message: fmt.Sprintf("Unknown command: %s", msg.Command)}
}

func (h *Handler) search(msg Message, logger *slog.Logger) *Response {
	mode, err := search.ParseMode(msg.Mode)
	if err != nil {
		return &Response{Success: false, Message: err.Error()}
	}
	matcher := h.Matcher
	if matcher == nil {
		matcher = search.NewMatcher()
	}
	matches, err := matcher.Compute(h.Doc.Lines(), search.Query{Text: msg.Text, Mode: mode})
	if err != nil {
		if errors.Is(err, search.ErrTimeout) {
			logger.Warn("socket search timed out", "query", msg.Text)
		}
		return &Response{Success: false, Message: err.Error(), Version: h.Doc.Version()}
	}

	resp := &Response{
		Success: true,
		Message: fmt.Sprintf("%d matches", len(matches)),
		Version: h.Doc.Version(),
	}
	for _, m := range matches {
		resp.Matches = append(resp.Matches, MatchInfo{Line: m.Line, Start: m.Start, End: m.End, Text: m.Text})
	}
	return resp
}

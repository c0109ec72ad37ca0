// Package model contains the value types shared by the outline engine,
// the search engine and the transport layers.
package model

import (
	"unicode/utf8"

	"github.com/google/uuid"
)

// Kind distinguishes text lines from atomic attachment lines
type Kind int

const (
	KindText Kind = iota
	KindAttachment
)

func (k Kind) String() string {
	if k == KindAttachment {
		return "attachment"
	}
	return "text"
}

// Attachment is an opaque non-text payload. The engine never looks inside it.
type Attachment struct {
	Src      string `json:"src"`
	Name     string `json:"name,omitempty"`
	MimeType string `json:"mimeType,omitempty"`
	Width    int    `json:"width,omitempty"`
	Height   int    `json:"height,omitempty"`
}

// Line is a single row of the outline. Nesting is encoded by Indent only.
type Line struct {
	ID         string      `json:"id"`
	Text       string      `json:"text"`
	Indent     int         `json:"indent"`
	Collapsed  bool        `json:"collapsed"`
	Attachment *Attachment `json:"attachment,omitempty"`
}

// NewLine creates a text line with a generated ID
func NewLine(text string, indent int) *Line {
	if indent < 0 {
		indent = 0
	}
	return &Line{
		ID:     NewID(),
		Text:   text,
		Indent: indent,
	}
}

// NewAttachmentLine creates an attachment line with a generated ID
func NewAttachmentLine(att Attachment, indent int) *Line {
	if indent < 0 {
		indent = 0
	}
	return &Line{
		ID:         NewID(),
		Indent:     indent,
		Attachment: &att,
	}
}

// Kind reports whether the line holds text or an attachment
func (l *Line) Kind() Kind {
	if l.Attachment != nil {
		return KindAttachment
	}
	return KindText
}

// IsAtomic reports whether the line must be treated as a single unit
func (l *Line) IsAtomic() bool {
	return l.Attachment != nil
}

// Len returns the caret length of the line: the rune count of the text,
// or 1 for an attachment line (0 is before it, 1 after it).
func (l *Line) Len() int {
	if l.IsAtomic() {
		return 1
	}
	return utf8.RuneCountInString(l.Text)
}

// Clone returns a deep copy of the line
func (l *Line) Clone() *Line {
	c := *l
	if l.Attachment != nil {
		att := *l.Attachment
		c.Attachment = &att
	}
	return &c
}

// NewID returns a fresh line identifier
func NewID() string {
	return uuid.New().String()
}

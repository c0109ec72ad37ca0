package diff

// LineData is the identity-relevant view of one line for diffing.
type LineData struct {
	ID         string
	Text       string
	Indent     int
	ParentID   string // empty for top-level lines
	Position   int    // index among the siblings under ParentID
	Index      int    // flat index in the document
	Collapsed  bool
	Attachment string // attachment Src, empty for text lines
}

// Result contains the changes between two documents, each list in document
// order.
type Result struct {
	New      []*LineData
	Deleted  []*LineData
	Modified []*LineChange
}

// Empty reports whether the documents are identical line for line.
func (r *Result) Empty() bool {
	return len(r.New) == 0 && len(r.Deleted) == 0 && len(r.Modified) == 0
}

// LineChange describes what changed for a line present in both documents.
type LineChange struct {
	Line    *LineData
	OldLine *LineData

	TextChanged       bool
	IndentChanged     bool
	Moved             bool // parent or sibling position changed
	CollapsedChanged  bool
	AttachmentChanged bool
}

// LineType indicates the type of diff line for rendering
type LineType int

const (
	TypeHeader LineType = iota
	TypeNewSection
	TypeDeletedSection
	TypeModifiedSection
	TypeNewLine
	TypeDeletedLine
	TypeModifiedLine
	TypeDetail
	TypeSummary
	TypeBlank
)

// Line is a rendered line of diff output
type Line struct {
	Type    LineType
	Content string
	Indent  int
}

package outline

import (
	"fmt"

	"github.com/davecgh/go-spew/spew"

	"github.com/pstuifzand/outline-engine/internal/model"
)

func line(text string, indent int) model.Line {
	return model.Line{Text: text, Indent: indent}
}

func collapsed(text string, indent int) model.Line {
	return model.Line{Text: text, Indent: indent, Collapsed: true}
}

func attachment(indent int) model.Line {
	return model.Line{Indent: indent, Attachment: &model.Attachment{Src: "data:image/png;base64,AAAA", Name: "pic.png"}}
}

func newEngine(lines ...model.Line) *Engine {
	n := 0
	return New(
		WithLines(lines),
		WithIDGenerator(func() string {
			n++
			return fmt.Sprintf("line-%d", n)
		}),
	)
}

func texts(e *Engine) []string {
	out := make([]string, e.LineCount())
	for i, l := range e.Lines() {
		out[i] = l.Text
	}
	return out
}

func indents(e *Engine) []int {
	out := make([]int, e.LineCount())
	for i, l := range e.Lines() {
		out[i] = l.Indent
	}
	return out
}

func dump(e *Engine) string {
	return spew.Sdump(e.ToSnapshot())
}

func pt(line, char int) model.Point {
	return model.Point{Line: line, Char: char}
}

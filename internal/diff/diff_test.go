package diff

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pstuifzand/outline-engine/internal/model"
)

func TestAnalyzeParents(t *testing.T) {
	data := analyze([]model.Line{
		{ID: "a", Text: "Parent", Indent: 0},
		{ID: "b", Text: "Child", Indent: 1},
		{ID: "c", Text: "Grandchild", Indent: 2},
		{ID: "d", Text: "Child 2", Indent: 1},
		{ID: "e", Text: "Next", Indent: 0},
	})

	type pp struct {
		parent string
		pos    int
	}
	var got []pp
	for _, d := range data {
		got = append(got, pp{d.ParentID, d.Position})
	}
	assert.Equal(t, []pp{{"", 0}, {"a", 0}, {"b", 0}, {"a", 1}, {"", 1}}, got)
}

func TestComputeIdentical(t *testing.T) {
	lines := []model.Line{{ID: "a", Text: "x"}, {ID: "b", Text: "y", Indent: 1}}
	r := Compute(lines, lines)
	assert.True(t, r.Empty())
	assert.Empty(t, BuildLines(r, false))
}

func TestComputeChanges(t *testing.T) {
	before := []model.Line{
		{ID: "a", Text: "Groceries"},
		{ID: "b", Text: "Milk", Indent: 1},
		{ID: "c", Text: "Eggs", Indent: 1},
		{ID: "d", Text: "Old"},
	}
	after := []model.Line{
		{ID: "a", Text: "Groceries", Collapsed: true},
		{ID: "c", Text: "Eggs", Indent: 1},
		{ID: "b", Text: "Oat milk", Indent: 1},
		{ID: "n", Attachment: &model.Attachment{Src: "cart.png"}},
	}

	r := Compute(before, after)
	require.Len(t, r.New, 1, spew.Sdump(r))
	assert.Equal(t, "n", r.New[0].ID)
	assert.Equal(t, "cart.png", r.New[0].Attachment)

	require.Len(t, r.Deleted, 1)
	assert.Equal(t, "d", r.Deleted[0].ID)

	require.Len(t, r.Modified, 3)
	assert.Equal(t, "a", r.Modified[0].Line.ID)
	assert.True(t, r.Modified[0].CollapsedChanged)
	assert.False(t, r.Modified[0].Moved)

	assert.Equal(t, "c", r.Modified[1].Line.ID)
	assert.True(t, r.Modified[1].Moved)
	assert.False(t, r.Modified[1].TextChanged)

	assert.Equal(t, "b", r.Modified[2].Line.ID)
	assert.True(t, r.Modified[2].TextChanged)
	assert.True(t, r.Modified[2].Moved)
}

func TestIndentChangeMovesUnderNewParent(t *testing.T) {
	before := []model.Line{{ID: "a", Text: "A"}, {ID: "b", Text: "B"}}
	after := []model.Line{{ID: "a", Text: "A"}, {ID: "b", Text: "B", Indent: 1}}

	r := Compute(before, after)
	require.Len(t, r.Modified, 1)
	c := r.Modified[0]
	assert.True(t, c.IndentChanged)
	assert.True(t, c.Moved)
	assert.Equal(t, "a", c.Line.ParentID)

	out := Render(BuildLines(r, false))
	assert.Contains(t, out, "INDENT: 0 → 1")
	assert.Contains(t, out, "MOVED: from parent root to parent a")
	assert.Contains(t, out, "1 modified, 0 added, 0 deleted")
}

func TestTruncateText(t *testing.T) {
	assert.Equal(t, "short", truncateText("short", 10))
	assert.Equal(t, "日本...", truncateText("日本語", 2))
}

package search

import "testing"

func TestExpandReplacement(t *testing.T) {
	full := "one cat two"
	m := Match{
		Line:   0,
		Start:  4,
		End:    7,
		Text:   "cat",
		Groups: []string{"red", "5"},
		Named:  map[string]string{"name": "x"},
	}

	tests := []struct {
		pattern string
		regex   bool
		want    string
	}{
		{"[$&]", true, "[cat]"},
		{"$1-$2", true, "red-5"},
		{"$$", true, "$"},
		{"$1", false, "$1"},
		{"$`|$'", true, "one | two"},
		{"<$<name>>", true, "<x>"},
		{"$<missing>!", true, "!"},
		{"$<open", true, "$<open"},
		{"$0", true, ""},
		{"$3", true, ""},
		{"$12", true, ""},
		{"$19", true, ""},
		{"$1x", true, "redx"},
		{"$x", true, "$x"},
		{"cost $", true, "cost $"},
		{"plain", true, "plain"},
	}

	for _, tt := range tests {
		got := ExpandReplacement(m, tt.pattern, full, tt.regex)
		if got != tt.want {
			t.Errorf("ExpandReplacement(%q, regex=%v): expected %q, got %q", tt.pattern, tt.regex, tt.want, got)
		}
	}
}

func TestExpandReplacementTwoDigitGroup(t *testing.T) {
	groups := make([]string, 12)
	for i := range groups {
		groups[i] = string(rune('a' + i))
	}
	m := Match{Text: "x", Groups: groups}

	if got := ExpandReplacement(m, "$12$123", "x", true); got != "ll3" {
		t.Errorf("Expected %q, got %q", "ll3", got)
	}
}

func TestReplaceInLine(t *testing.T) {
	matches := []Match{
		{Start: 3, End: 4, Text: "-"},
		{Start: 1, End: 2, Text: "-"},
	}
	if got := ReplaceInLine("a-b-c", matches, "+", false); got != "a+b+c" {
		t.Errorf("Expected %q, got %q", "a+b+c", got)
	}

	matches = []Match{
		{Start: 0, End: 3, Text: "a@b", Groups: []string{"a", "b"}},
		{Start: 4, End: 7, Text: "c@d", Groups: []string{"c", "d"}},
	}
	if got := ReplaceInLine("a@b c@d", matches, "$2.$1", true); got != "b.a d.c" {
		t.Errorf("Expected %q, got %q", "b.a d.c", got)
	}
}

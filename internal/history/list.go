package history

// Names of the lists kept by the application.
const (
	SearchFile  = "search.toml"
	ReplaceFile = "replace.toml"
	CommandFile = "command.toml"
)

// List is a bounded list of recent inputs with prompt-style navigation.
// Re-adding an entry moves it to the end instead of duplicating it.
type List struct {
	entries    []string
	index      int // -1 when not navigating
	maxEntries int
	temporary  string
	manager    *Manager
	name       string
}

// NewList creates an in-memory list.
func NewList(maxEntries int) *List {
	return &List{
		entries:    []string{},
		index:      -1,
		maxEntries: maxEntries,
	}
}

// Open creates a list backed by the file name in m and loads it.
func Open(m *Manager, name string, maxEntries int) (*List, error) {
	l := NewList(maxEntries)
	l.manager = m
	l.name = name

	entries, err := m.Load(name)
	if err != nil {
		return l, err
	}
	if len(entries) > maxEntries {
		entries = entries[len(entries)-maxEntries:]
	}
	l.entries = entries
	return l, nil
}

// Add appends entry, dropping the oldest entries beyond the limit, and saves
// when the list is file backed. Empty entries are ignored.
func (l *List) Add(entry string) error {
	if entry == "" {
		return nil
	}
	for i, e := range l.entries {
		if e == entry {
			l.entries = append(l.entries[:i], l.entries[i+1:]...)
			break
		}
	}
	l.entries = append(l.entries, entry)
	if len(l.entries) > l.maxEntries {
		l.entries = l.entries[len(l.entries)-l.maxEntries:]
	}
	l.Reset()
	return l.Save()
}

// Save persists the list. It does nothing for in-memory lists.
func (l *List) Save() error {
	if l.manager == nil || l.name == "" {
		return nil
	}
	return l.manager.Save(l.name, l.entries)
}

// Previous steps back to an older entry.
func (l *List) Previous() (string, bool) {
	if len(l.entries) == 0 {
		return "", false
	}
	if l.index < 0 {
		l.index = len(l.entries) - 1
	} else if l.index > 0 {
		l.index--
	}
	return l.entries[l.index], true
}

// Next steps forward. Past the newest entry it returns the input saved with
// SetTemporary and stops navigating.
func (l *List) Next() (string, bool) {
	if l.index < 0 {
		return "", false
	}
	l.index++
	if l.index >= len(l.entries) {
		temp := l.temporary
		l.Reset()
		return temp, true
	}
	return l.entries[l.index], true
}

// Reset stops navigating.
func (l *List) Reset() {
	l.index = -1
	l.temporary = ""
}

// SetTemporary stores the input being typed before navigation starts.
func (l *List) SetTemporary(input string) {
	l.temporary = input
}

// Latest returns the newest entry.
func (l *List) Latest() (string, bool) {
	if len(l.entries) == 0 {
		return "", false
	}
	return l.entries[len(l.entries)-1], true
}

// All returns a copy of the entries, oldest first.
func (l *List) All() []string {
	out := make([]string, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len returns the number of entries.
func (l *List) Len() int {
	return len(l.entries)
}

// IsNavigating reports whether Previous has been called since the last reset.
func (l *List) IsNavigating() bool {
	return l.index >= 0
}

// Package listbox implements the keyboard-driven single-select dropdown used
// by the signup form selectors. It holds no rendering code: callers feed it
// key names and read back the open state, the highlighted index and the
// selected item.
package listbox

import "strings"

// NoHighlight is the highlighted index of a closed or empty listbox.
const NoHighlight = -1

// ChangeFunc is called with the newly selected item after a selection
// changes the value.
type ChangeFunc func(item string)

// Listbox is a single-select menu over an ordered list of string items.
// The zero value is a closed, empty listbox.
type Listbox struct {
	items       []string
	selected    string
	isOpen      bool
	highlighted int
	scroll      int

	onChange ChangeFunc
}

// Option configures a Listbox.
type Option func(*Listbox)

// WithSelected sets the initially selected item.
func WithSelected(item string) Option {
	return func(l *Listbox) {
		l.selected = item
	}
}

// WithOnSelectedItemChange registers fn to be called when a selection
// changes the selected item.
func WithOnSelectedItemChange(fn ChangeFunc) Option {
	return func(l *Listbox) {
		l.onChange = fn
	}
}

// New returns a closed listbox over items.
func New(items []string, opts ...Option) *Listbox {
	l := &Listbox{
		items:       append([]string(nil), items...),
		highlighted: NoHighlight,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(l)
		}
	}
	return l
}

// Items returns a copy of the items.
func (l *Listbox) Items() []string {
	return append([]string(nil), l.items...)
}

// Len reports the number of items.
func (l *Listbox) Len() int { return len(l.items) }

// Selected returns the selected item.
func (l *Listbox) Selected() string { return l.selected }

// IsOpen reports whether the menu is open.
func (l *Listbox) IsOpen() bool { return l.isOpen }

// Highlighted returns the highlighted index, or NoHighlight when the menu is
// closed or empty.
func (l *Listbox) Highlighted() int {
	if !l.isOpen || len(l.items) == 0 {
		return NoHighlight
	}
	return l.highlighted
}

// HighlightedItem returns the highlighted item.
func (l *Listbox) HighlightedItem() (string, bool) {
	idx := l.Highlighted()
	if idx == NoHighlight {
		return "", false
	}
	return l.items[idx], true
}

// SetItems replaces the items. The selection is kept as-is; callers that
// need it reset use SetSelected. An open menu re-highlights the selection.
func (l *Listbox) SetItems(items []string) {
	l.items = append([]string(nil), items...)
	l.scroll = 0
	if l.isOpen {
		l.highlighted = l.initialHighlight()
	}
}

// SetSelected changes the selected item without firing the change callback.
func (l *Listbox) SetSelected(item string) {
	l.selected = item
}

// Open opens the menu and highlights the selected item, or the first item
// when the selection is not in the list.
func (l *Listbox) Open() {
	l.isOpen = true
	l.highlighted = l.initialHighlight()
}

// Close closes the menu without changing the selection.
func (l *Listbox) Close() {
	l.isOpen = false
	l.highlighted = NoHighlight
}

// Toggle opens a closed menu and closes an open one.
func (l *Listbox) Toggle() {
	if l.isOpen {
		l.Close()
		return
	}
	l.Open()
}

// MoveHighlight moves the highlight by delta, clamping at the ends. A closed
// menu is opened first.
func (l *Listbox) MoveHighlight(delta int) {
	if !l.isOpen {
		l.Open()
		return
	}
	l.Highlight(l.highlighted + delta)
}

// HighlightFirst highlights the first item.
func (l *Listbox) HighlightFirst() { l.Highlight(0) }

// HighlightLast highlights the last item.
func (l *Listbox) HighlightLast() { l.Highlight(len(l.items) - 1) }

// Highlight highlights index i, clamped to the item range. It has no effect
// on a closed menu.
func (l *Listbox) Highlight(i int) {
	if !l.isOpen || len(l.items) == 0 {
		return
	}
	l.highlighted = clamp(i, 0, len(l.items)-1)
}

// Select selects the item at index i and closes the menu. It reports whether
// the selected item changed. Out-of-range indices are ignored.
func (l *Listbox) Select(i int) bool {
	if i < 0 || i >= len(l.items) {
		return false
	}
	item := l.items[i]
	l.Close()
	if item == l.selected {
		return false
	}
	l.selected = item
	if l.onChange != nil {
		l.onChange(item)
	}
	return true
}

// SelectHighlighted selects the highlighted item.
func (l *Listbox) SelectHighlighted() bool {
	idx := l.Highlighted()
	if idx == NoHighlight {
		return false
	}
	return l.Select(idx)
}

// HandleKey applies a key press using bubbletea key names. It reports
// whether the key was consumed.
func (l *Listbox) HandleKey(key string) bool {
	switch strings.ToLower(key) {
	case "up", "k":
		if !l.isOpen {
			l.Open()
			return true
		}
		l.MoveHighlight(-1)
	case "down", "j":
		l.MoveHighlight(1)
	case "home":
		if !l.isOpen {
			return false
		}
		l.HighlightFirst()
	case "end":
		if !l.isOpen {
			return false
		}
		l.HighlightLast()
	case "enter", " ", "space":
		if !l.isOpen {
			l.Open()
			return true
		}
		l.SelectHighlighted()
	case "esc":
		if !l.isOpen {
			return false
		}
		l.Close()
	default:
		return false
	}
	return true
}

// Window returns the half-open item range [start, end) to display when at
// most maxVisible rows fit, keeping the highlight in view.
func (l *Listbox) Window(maxVisible int) (int, int) {
	n := len(l.items)
	if maxVisible <= 0 || maxVisible >= n {
		l.scroll = 0
		return 0, n
	}
	focus := l.Highlighted()
	if focus == NoHighlight {
		focus = l.IndexOf(l.selected)
	}
	if focus >= 0 {
		if focus < l.scroll {
			l.scroll = focus
		} else if focus >= l.scroll+maxVisible {
			l.scroll = focus - maxVisible + 1
		}
	}
	l.scroll = clamp(l.scroll, 0, n-maxVisible)
	return l.scroll, l.scroll + maxVisible
}

// IndexOf returns the index of item, or -1.
func (l *Listbox) IndexOf(item string) int {
	for i, candidate := range l.items {
		if candidate == item {
			return i
		}
	}
	return -1
}

func (l *Listbox) initialHighlight() int {
	if len(l.items) == 0 {
		return NoHighlight
	}
	if idx := l.IndexOf(l.selected); idx >= 0 {
		return idx
	}
	return 0
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

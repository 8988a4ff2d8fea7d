package components

// List is a paged cursor over row keys. The cursor always stays inside the
// visible page.
type List struct {
	keys     []string
	Cursor   int
	Offset   int
	PageSize int
}

// NewList creates a list with the given page size.
func NewList(pageSize int) *List {
	if pageSize < 1 {
		pageSize = 1
	}
	return &List{PageSize: pageSize}
}

// SetKeys replaces the rows. The cursor stays on keep when it is still
// present, otherwise it is clamped to the new length.
func (l *List) SetKeys(keys []string, keep string) {
	l.keys = keys
	if !l.Focus(keep) {
		l.clamp()
	}
}

// Focus moves the cursor to key and scrolls it into view.
func (l *List) Focus(key string) bool {
	if key == "" {
		return false
	}
	for i, k := range l.keys {
		if k == key {
			l.Cursor = i
			l.scroll()
			return true
		}
	}
	return false
}

// Len returns the number of rows.
func (l *List) Len() int {
	return len(l.keys)
}

// Down moves the cursor down.
func (l *List) Down() {
	if l.Cursor < len(l.keys)-1 {
		l.Cursor++
		l.scroll()
	}
}

// Up moves the cursor up.
func (l *List) Up() {
	if l.Cursor > 0 {
		l.Cursor--
		l.scroll()
	}
}

// Current returns the key under the cursor.
func (l *List) Current() (string, bool) {
	if l.Cursor < 0 || l.Cursor >= len(l.keys) {
		return "", false
	}
	return l.keys[l.Cursor], true
}

// Window returns the half-open range of visible row indexes.
func (l *List) Window() (int, int) {
	end := l.Offset + l.PageSize
	if end > len(l.keys) {
		end = len(l.keys)
	}
	if l.Offset > end {
		return end, end
	}
	return l.Offset, end
}

// IsSelected reports whether idx is the cursor row.
func (l *List) IsSelected(idx int) bool {
	return idx == l.Cursor
}

// Resize changes the page size and keeps the cursor visible.
func (l *List) Resize(pageSize int) {
	if pageSize < 1 {
		pageSize = 1
	}
	l.PageSize = pageSize
	l.scroll()
}

func (l *List) clamp() {
	if l.Cursor >= len(l.keys) {
		l.Cursor = len(l.keys) - 1
	}
	if l.Cursor < 0 {
		l.Cursor = 0
	}
	l.scroll()
}

func (l *List) scroll() {
	if l.Cursor < l.Offset {
		l.Offset = l.Cursor
	}
	if l.Cursor >= l.Offset+l.PageSize {
		l.Offset = l.Cursor - l.PageSize + 1
	}
	if last := len(l.keys) - l.PageSize; l.Offset > last {
		l.Offset = last
	}
	if l.Offset < 0 {
		l.Offset = 0
	}
}

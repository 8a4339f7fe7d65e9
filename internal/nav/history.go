package nav

// History is a linear stack of visited locations with a cursor, in the
// manner of a browser tab. The zero value is not usable; use NewHistory.
type History struct {
	entries []Location
	index   int
}

// NewHistory starts a history at start.
func NewHistory(start Location) *History {
	return &History{entries: []Location{start}}
}

// Location returns the current entry.
func (h *History) Location() Location {
	return h.entries[h.index]
}

// Push adds a new entry after the current one, discarding forward entries.
func (h *History) Push(loc Location) {
	h.entries = append(h.entries[:h.index+1], loc)
	h.index = len(h.entries) - 1
}

// Replace overwrites the current entry without adding one.
func (h *History) Replace(loc Location) {
	h.entries[h.index] = loc
}

// Back moves the cursor one entry back.
func (h *History) Back() (Location, bool) {
	if h.index == 0 {
		return h.Location(), false
	}
	h.index--
	return h.Location(), true
}

// Forward moves the cursor one entry forward.
func (h *History) Forward() (Location, bool) {
	if h.index >= len(h.entries)-1 {
		return h.Location(), false
	}
	h.index++
	return h.Location(), true
}

// CanBack reports whether Back would move.
func (h *History) CanBack() bool { return h.index > 0 }

// CanForward reports whether Forward would move.
func (h *History) CanForward() bool { return h.index < len(h.entries)-1 }

// Len returns the number of entries.
func (h *History) Len() int { return len(h.entries) }

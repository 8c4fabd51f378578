package canvas

// DefaultHistoryLimit is the number of snapshots kept when no limit is given.
const DefaultHistoryLimit = 25

// History is a bounded linear undo/redo buffer of full-surface snapshots.
//
// The entry at the cursor always equals what is visible on the surface. Entries
// after the cursor are redo candidates and are discarded as soon as a new edit
// starts. When the buffer grows past its limit the oldest entry is evicted.
type History struct {
	limit   int
	entries [][]byte
	cursor  int
}

// NewHistory returns an empty history holding at most limit snapshots. Limits
// below 2 are raised to 2 so that at least one edit can be undone.
func NewHistory(limit int) *History {
	if limit < 2 {
		limit = 2
	}
	return &History{limit: limit, cursor: -1}
}

// Reset drops all entries and records state as the only snapshot.
func (h *History) Reset(state []byte) {
	h.entries = [][]byte{clonePix(state)}
	h.cursor = 0
}

// Discard drops every entry after the cursor.
func (h *History) Discard() {
	if h.cursor < 0 || h.cursor >= len(h.entries)-1 {
		return
	}
	for i := h.cursor + 1; i < len(h.entries); i++ {
		h.entries[i] = nil
	}
	h.entries = h.entries[:h.cursor+1]
}

// Push discards the redo tail and appends state as the new current snapshot.
func (h *History) Push(state []byte) {
	h.Discard()
	h.entries = append(h.entries, clonePix(state))
	if len(h.entries) > h.limit {
		n := copy(h.entries, h.entries[len(h.entries)-h.limit:])
		for i := n; i < len(h.entries); i++ {
			h.entries[i] = nil
		}
		h.entries = h.entries[:n]
	}
	h.cursor = len(h.entries) - 1
}

// Undo moves the cursor back one entry and returns the snapshot now current.
func (h *History) Undo() ([]byte, bool) {
	if !h.CanUndo() {
		return nil, false
	}
	h.cursor--
	return h.entries[h.cursor], true
}

// Redo moves the cursor forward one entry and returns the snapshot now current.
func (h *History) Redo() ([]byte, bool) {
	if !h.CanRedo() {
		return nil, false
	}
	h.cursor++
	return h.entries[h.cursor], true
}

// Current returns the snapshot at the cursor.
func (h *History) Current() ([]byte, bool) {
	if h.cursor < 0 {
		return nil, false
	}
	return h.entries[h.cursor], true
}

func (h *History) CanUndo() bool { return h.cursor > 0 }

func (h *History) CanRedo() bool { return h.cursor >= 0 && h.cursor < len(h.entries)-1 }

// Len returns the number of stored snapshots.
func (h *History) Len() int { return len(h.entries) }

// Cursor returns the index of the current snapshot, or -1 when empty.
func (h *History) Cursor() int { return h.cursor }

func (h *History) Limit() int { return h.limit }

func clonePix(p []byte) []byte {
	out := make([]byte, len(p))
	copy(out, p)
	return out
}

package canvas

import (
	"bytes"
	"testing"
)

func TestHistoryUndoRedo(t *testing.T) {
	h := NewHistory(10)
	h.Reset([]byte{0})
	h.Push([]byte{1})
	h.Push([]byte{2})

	if h.Len() != 3 || h.Cursor() != 2 {
		t.Fatalf("unexpected state: len=%d cursor=%d", h.Len(), h.Cursor())
	}

	got, ok := h.Undo()
	if !ok || !bytes.Equal(got, []byte{1}) {
		t.Errorf("Undo mismatch: got %v (ok=%v), want [1]", got, ok)
	}
	got, ok = h.Undo()
	if !ok || !bytes.Equal(got, []byte{0}) {
		t.Errorf("Undo mismatch: got %v (ok=%v), want [0]", got, ok)
	}
	if _, ok := h.Undo(); ok {
		t.Error("expected Undo at the first entry to fail")
	}

	got, ok = h.Redo()
	if !ok || !bytes.Equal(got, []byte{1}) {
		t.Errorf("Redo mismatch: got %v (ok=%v), want [1]", got, ok)
	}
}

func TestHistoryPushDiscardsRedoTail(t *testing.T) {
	h := NewHistory(10)
	h.Reset([]byte{0})
	h.Push([]byte{1})
	h.Push([]byte{2})
	h.Undo()
	h.Undo()

	h.Push([]byte{9})

	if h.CanRedo() {
		t.Error("expected redo tail to be discarded")
	}
	if h.Len() != 2 {
		t.Errorf("Len mismatch: got %d, want 2", h.Len())
	}
	cur, _ := h.Current()
	if !bytes.Equal(cur, []byte{9}) {
		t.Errorf("Current mismatch: got %v, want [9]", cur)
	}
}

func TestHistoryDiscard(t *testing.T) {
	h := NewHistory(10)
	h.Reset([]byte{0})
	h.Push([]byte{1})
	h.Undo()

	h.Discard()

	if h.CanRedo() {
		t.Error("expected Discard to drop the redo tail")
	}
	if h.Len() != 1 || h.Cursor() != 0 {
		t.Errorf("unexpected state: len=%d cursor=%d", h.Len(), h.Cursor())
	}
}

func TestHistoryEvictsOldest(t *testing.T) {
	h := NewHistory(3)
	h.Reset([]byte{0})
	for i := byte(1); i <= 5; i++ {
		h.Push([]byte{i})
	}

	if h.Len() != 3 {
		t.Fatalf("Len mismatch: got %d, want 3", h.Len())
	}
	if h.Cursor() != 2 {
		t.Errorf("Cursor mismatch: got %d, want 2", h.Cursor())
	}

	var seen []byte
	for {
		cur, _ := h.Current()
		seen = append(seen, cur[0])
		if _, ok := h.Undo(); !ok {
			break
		}
	}
	if !bytes.Equal(seen, []byte{5, 4, 3}) {
		t.Errorf("retained entries mismatch: got %v, want [5 4 3]", seen)
	}
}

func TestHistoryCopiesState(t *testing.T) {
	h := NewHistory(5)
	state := []byte{1, 2, 3}
	h.Reset(state)
	state[0] = 42

	cur, _ := h.Current()
	if cur[0] != 1 {
		t.Errorf("expected snapshot to be independent of caller buffer, got %v", cur)
	}
}

func TestHistoryEmpty(t *testing.T) {
	h := NewHistory(0)
	if h.Limit() != 2 {
		t.Errorf("Limit mismatch: got %d, want 2", h.Limit())
	}
	if h.CanUndo() || h.CanRedo() {
		t.Error("expected empty history to have nothing to undo or redo")
	}
	if _, ok := h.Current(); ok {
		t.Error("expected no current entry")
	}
	h.Discard()
}

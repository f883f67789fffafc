// Package history keeps an undo/redo trail of profile snapshots.
//
// A History is a value: every operation returns a new History and leaves the
// receiver untouched, so earlier values stay valid after later edits.
package history

import "github.com/jonathan/sitemaker/internal/types"

// Entry is one snapshot in the trail together with its position.
type Entry struct {
	Index    int
	Snapshot *types.ProfileData
}

// History is an append-only list of snapshots plus a cursor.
type History struct {
	snapshots []*types.ProfileData
	cursor    int
	capacity  int
}

// New starts a history at initial. A capacity <= 0 keeps every snapshot;
// otherwise the oldest snapshots are dropped once the limit is exceeded.
func New(initial *types.ProfileData, capacity int) History {
	return History{
		snapshots: []*types.ProfileData{initial.Clone()},
		cursor:    0,
		capacity:  capacity,
	}
}

// Push records p as the new current snapshot, discarding any redo branch.
func (h History) Push(p *types.ProfileData) History {
	next := make([]*types.ProfileData, h.cursor+1, h.cursor+2)
	copy(next, h.snapshots[:h.cursor+1])
	next = append(next, p.Clone())

	if h.capacity > 0 && len(next) > h.capacity {
		next = next[len(next)-h.capacity:]
	}
	return History{snapshots: next, cursor: len(next) - 1, capacity: h.capacity}
}

// Undo moves the cursor back one snapshot. It is a no-op at the start.
func (h History) Undo() History {
	if !h.CanUndo() {
		return h
	}
	h.cursor--
	return h
}

// Redo moves the cursor forward one snapshot. It is a no-op at the end.
func (h History) Redo() History {
	if !h.CanRedo() {
		return h
	}
	h.cursor++
	return h
}

func (h History) CanUndo() bool { return h.cursor > 0 }

func (h History) CanRedo() bool { return h.cursor < len(h.snapshots)-1 }

// Current returns a copy of the snapshot under the cursor. Callers may edit
// the copy freely and Push it back.
func (h History) Current() *types.ProfileData {
	if len(h.snapshots) == 0 {
		return nil
	}
	return h.snapshots[h.cursor].Clone()
}

// Cursor is the index of the current snapshot.
func (h History) Cursor() int { return h.cursor }

// Len is the number of stored snapshots.
func (h History) Len() int { return len(h.snapshots) }

// Entries lists every snapshot in order. Snapshots are copies.
func (h History) Entries() []Entry {
	out := make([]Entry, len(h.snapshots))
	for i, s := range h.snapshots {
		out[i] = Entry{Index: i, Snapshot: s.Clone()}
	}
	return out
}

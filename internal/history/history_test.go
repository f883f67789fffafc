package history

import (
	"testing"

	"github.com/jonathan/sitemaker/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func named(name string) *types.ProfileData {
	return &types.ProfileData{Name: name, Skills: []string{"Go"}}
}

func TestHistory_UndoRedo(t *testing.T) {
	h := New(named("v0"), 0)
	assert.False(t, h.CanUndo())
	assert.False(t, h.CanRedo())

	h = h.Push(named("v1")).Push(named("v2"))
	assert.Equal(t, "v2", h.Current().Name)
	assert.Equal(t, 3, h.Len())

	h = h.Undo()
	assert.Equal(t, "v1", h.Current().Name)
	assert.True(t, h.CanRedo())

	h = h.Undo().Undo().Undo()
	assert.Equal(t, "v0", h.Current().Name)
	assert.Equal(t, 0, h.Cursor())

	h = h.Redo().Redo().Redo()
	assert.Equal(t, "v2", h.Current().Name)
	assert.False(t, h.CanRedo())
}

func TestHistory_PushDiscardsRedoBranch(t *testing.T) {
	h := New(named("v0"), 0).Push(named("v1")).Push(named("v2"))
	h = h.Undo().Undo().Push(named("branch"))

	require.Equal(t, 2, h.Len())
	assert.Equal(t, "branch", h.Current().Name)
	assert.False(t, h.CanRedo())
}

func TestHistory_ValuesAreImmutable(t *testing.T) {
	base := New(named("v0"), 0).Push(named("v1"))
	undone := base.Undo()
	branched := undone.Push(named("other"))

	assert.Equal(t, "v1", base.Current().Name, "undo must not move the original cursor")
	assert.Equal(t, "v0", undone.Current().Name)
	assert.Equal(t, 2, base.Len())
	assert.Equal(t, "v1", base.Entries()[1].Snapshot.Name, "push after undo must not overwrite shared storage")
	assert.Equal(t, "other", branched.Current().Name)
}

func TestHistory_SnapshotsAreCopies(t *testing.T) {
	p := named("v0")
	h := New(p, 0)

	p.Name = "mutated"
	p.Skills[0] = "Rust"
	assert.Equal(t, "v0", h.Current().Name)
	assert.Equal(t, []string{"Go"}, h.Current().Skills)

	cur := h.Current()
	cur.Skills[0] = "Zig"
	assert.Equal(t, []string{"Go"}, h.Current().Skills)
}

func TestHistory_Capacity(t *testing.T) {
	h := New(named("v0"), 3)
	for _, n := range []string{"v1", "v2", "v3", "v4"} {
		h = h.Push(named(n))
	}
	require.Equal(t, 3, h.Len())

	entries := h.Entries()
	assert.Equal(t, "v2", entries[0].Snapshot.Name)
	assert.Equal(t, "v4", entries[2].Snapshot.Name)
	for i, e := range entries {
		assert.Equal(t, i, e.Index)
	}

	h = h.Undo().Undo()
	assert.Equal(t, "v2", h.Current().Name)
	assert.False(t, h.CanUndo())
}

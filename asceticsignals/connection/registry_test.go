package connection

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func values(slots []*Slot) []any {
	result := make([]any, 0, len(slots))
	for _, s := range slots {
		result = append(result, s.Value())
	}
	return result
}

func TestID_ZeroIsInvalid(t *testing.T) {
	var id ID
	assert.False(t, id.Valid())
	assert.Equal(t, InvalidID, id)
	assert.True(t, ID(1).Valid())
}

func TestRegistry_AddAssignsIncreasingIDs(t *testing.T) {
	r := NewRegistry()
	h1, err := r.Add("a")
	require.NoError(t, err)
	h2, err := r.Add("b")
	require.NoError(t, err)
	assert.True(t, h1.Valid())
	assert.Less(t, uint64(h1.ID()), uint64(h2.ID()))
	assert.Equal(t, 2, r.Len())
}

func TestRegistry_IDsAreNotReused(t *testing.T) {
	r := NewRegistry()
	h1, _ := r.Add("a")
	r.Disconnect(h1.ID())
	r.Clear()
	h2, _ := r.Add("b")
	assert.NotEqual(t, h1.ID(), h2.ID())
}

func TestRegistry_SnapshotPreservesOrder(t *testing.T) {
	r := NewRegistry()
	_, _ = r.Add("a")
	hb, _ := r.Add("b")
	_, _ = r.Add("c")
	r.Disconnect(hb.ID())
	assert.Equal(t, []any{"a", "c"}, values(r.Snapshot()))
}

func TestRegistry_DisconnectMarksSnapshotSlotDead(t *testing.T) {
	r := NewRegistry()
	h, _ := r.Add("a")
	snapshot := r.Snapshot()
	require.Len(t, snapshot, 1)
	assert.True(t, snapshot[0].Alive())

	assert.True(t, r.Disconnect(h.ID()))
	assert.False(t, snapshot[0].Alive())
	assert.Equal(t, h.ID(), snapshot[0].ID())
}

func TestRegistry_DisconnectUnknownReturnsFalse(t *testing.T) {
	r := NewRegistry()
	assert.False(t, r.Disconnect(42))
	assert.False(t, r.Disconnect(InvalidID))
}

func TestRegistry_DisconnectTwiceIsIdempotent(t *testing.T) {
	r := NewRegistry()
	h, _ := r.Add("a")
	assert.True(t, r.Disconnect(h.ID()))
	assert.False(t, r.Disconnect(h.ID()))
}

func TestRegistry_SnapshotIsNotAffectedByLaterAdds(t *testing.T) {
	r := NewRegistry()
	_, _ = r.Add("a")
	snapshot := r.Snapshot()
	_, _ = r.Add("b")
	assert.Equal(t, []any{"a"}, values(snapshot))
}

func TestRegistry_ClearKeepsRegistryOpen(t *testing.T) {
	r := NewRegistry()
	h, _ := r.Add("a")
	assert.Equal(t, 1, r.Clear())
	assert.False(t, h.Connected())
	assert.False(t, r.Closed())
	_, err := r.Add("b")
	assert.NoError(t, err)
}

func TestRegistry_CloseRejectsAdd(t *testing.T) {
	r := NewRegistry()
	h, _ := r.Add("a")
	r.Close()
	r.Close()
	assert.True(t, r.Closed())
	assert.False(t, h.Connected())
	h2, err := r.Add("b")
	assert.ErrorIs(t, err, ErrClosed)
	assert.False(t, h2.Valid())
}

func TestHandle_ConnectedAndDisconnect(t *testing.T) {
	r := NewRegistry()
	h, _ := r.Add("a")
	assert.True(t, h.Connected())
	assert.True(t, h.Disconnect())
	assert.False(t, h.Valid())
	assert.False(t, h.Connected())
	assert.False(t, h.Disconnect())
}

func TestHandle_CopiesShareConnection(t *testing.T) {
	r := NewRegistry()
	h, _ := r.Add("a")
	other := h
	assert.Equal(t, h, other)
	other.Disconnect()
	assert.False(t, h.Connected())
}

func TestHandle_ZeroValueIsSafe(t *testing.T) {
	var h Handle
	assert.False(t, h.Valid())
	assert.False(t, h.Connected())
	assert.False(t, h.Disconnect())
	h.Dispose()
}

func TestHandle_SafeAfterRegistryIsCollected(t *testing.T) {
	h := func() Handle {
		r := NewRegistry()
		h, _ := r.Add("a")
		return h
	}()
	runtime.GC()
	assert.False(t, h.Connected())
	assert.False(t, h.Disconnect())
}

func TestGuard_CloseDisconnects(t *testing.T) {
	r := NewRegistry()
	h, _ := r.Add("a")
	func() {
		g := h.Guard()
		defer g.Close()
		assert.True(t, g.Connected())
	}()
	assert.False(t, h.Connected())
}

func TestGuard_ReleaseKeepsConnection(t *testing.T) {
	r := NewRegistry()
	h, _ := r.Add("a")
	g := NewGuard(h)
	assert.Equal(t, h.ID(), g.Release())
	assert.NoError(t, g.Close())
	assert.True(t, h.Connected())
	assert.False(t, g.Connected())
}

func TestGuard_MoveTransfersOwnership(t *testing.T) {
	r := NewRegistry()
	h, _ := r.Add("a")
	g := NewGuard(h)
	moved := g.Move()
	assert.False(t, g.Connected())
	assert.Equal(t, InvalidID, g.ID())

	g.Close()
	assert.True(t, h.Connected())
	assert.Equal(t, h, moved.Handle())

	moved.Dispose()
	assert.False(t, h.Connected())
}

func TestGuard_DisconnectIsIdempotent(t *testing.T) {
	r := NewRegistry()
	h, _ := r.Add("a")
	g := NewGuard(h)
	assert.True(t, g.Disconnect())
	assert.False(t, g.Disconnect())
}

func TestRegistry_DisconnectDropsSlotFromBackingArray(t *testing.T) {
	r := NewRegistry()
	ha, _ := r.Add("a")
	_, _ = r.Add("b")
	r.Disconnect(ha.ID())
	require.Len(t, r.slots, 1)
	assert.Nil(t, r.slots[:2][1])
}

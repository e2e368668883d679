package gridmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoRoomLayout() [][]Classification {
	return [][]Classification{{
		{Room: "kitchen"},
		{Blocked: true},
		{Room: "living_room"},
	}}
}

func TestNew_RejectsRaggedRows(t *testing.T) {
	_, err := New([][]Classification{
		{{Room: "kitchen"}, {Room: "kitchen"}},
		{{Room: "kitchen"}},
	}, nil)
	assert.Error(t, err)
}

func TestNew_RejectsItemOutOfBounds(t *testing.T) {
	_, err := New(twoRoomLayout(), map[string]Cell{"cup": {X: 5, Y: 0}})
	assert.Error(t, err)
}

func TestNew_RejectsItemOnBlockedCell(t *testing.T) {
	_, err := New(twoRoomLayout(), map[string]Cell{"cup": {X: 1, Y: 0}})
	assert.Error(t, err)
}

func TestIsObstacle_OutOfBoundsAndBlocked(t *testing.T) {
	m, err := New(twoRoomLayout(), nil)
	require.NoError(t, err)

	assert.True(t, m.IsObstacle(Cell{X: -1, Y: 0}))
	assert.True(t, m.IsObstacle(Cell{X: 1, Y: 0}))
	assert.False(t, m.IsObstacle(Cell{X: 0, Y: 0}))
}

func TestRoomOf_UntaggedAndBlockedBothFalse(t *testing.T) {
	layout := [][]Classification{{{Room: "kitchen"}, {}}}
	m, err := New(layout, nil)
	require.NoError(t, err)

	tag, ok := m.RoomOf(Cell{X: 0, Y: 0})
	assert.True(t, ok)
	assert.Equal(t, "kitchen", tag)

	_, ok = m.RoomOf(Cell{X: 1, Y: 0})
	assert.False(t, ok)
}

func TestNeighbours_FixedEastWestSouthNorthOrder(t *testing.T) {
	layout := [][]Classification{
		{{}, {}, {}},
		{{}, {}, {}},
		{{}, {}, {}},
	}
	m, err := New(layout, nil)
	require.NoError(t, err)

	got := m.Neighbours(Cell{X: 1, Y: 1})
	want := []Cell{{X: 2, Y: 1}, {X: 0, Y: 1}, {X: 1, Y: 2}, {X: 1, Y: 0}}
	assert.Equal(t, want, got)
}

func TestNeighbours_ExcludesObstaclesAndOutOfBounds(t *testing.T) {
	m, err := New(twoRoomLayout(), nil)
	require.NoError(t, err)

	got := m.Neighbours(Cell{X: 0, Y: 0})
	assert.Empty(t, got)
}

func TestItemLocation_UnknownItemErrors(t *testing.T) {
	m, err := New(twoRoomLayout(), nil)
	require.NoError(t, err)

	_, err = m.ItemLocation("cup")
	assert.ErrorIs(t, err, ErrUnknownItem)
}

func TestSetItemLocation_MovesAndHolds(t *testing.T) {
	m, err := New(twoRoomLayout(), map[string]Cell{"cup": {X: 0, Y: 0}})
	require.NoError(t, err)

	require.NoError(t, m.SetItemLocation("cup", HeldLocation()))
	loc, err := m.ItemLocation("cup")
	require.NoError(t, err)
	assert.True(t, loc.Held)

	require.NoError(t, m.SetItemLocation("cup", At(Cell{X: 2, Y: 0})))
	loc, err = m.ItemLocation("cup")
	require.NoError(t, err)
	assert.Equal(t, Cell{X: 2, Y: 0}, loc.Cell)
}

func TestSetItemLocation_RejectsBlockedDestination(t *testing.T) {
	m, err := New(twoRoomLayout(), map[string]Cell{"cup": {X: 0, Y: 0}})
	require.NoError(t, err)

	err = m.SetItemLocation("cup", At(Cell{X: 1, Y: 0}))
	assert.Error(t, err)
}

func TestRoomCellsAndOpenCells(t *testing.T) {
	m, err := New(twoRoomLayout(), nil)
	require.NoError(t, err)

	assert.Equal(t, []Cell{{X: 0, Y: 0}}, m.RoomCells("kitchen"))
	assert.Equal(t, []Cell{{X: 0, Y: 0}, {X: 2, Y: 0}}, m.OpenCells())
}

func TestDeltaBetween(t *testing.T) {
	got := DeltaBetween(Cell{X: 1, Y: 1}, Cell{X: 2, Y: 0})
	assert.Equal(t, Delta{DX: 1, DY: -1}, got)
}

package pathfind

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"robotsim/internal/gridmap"
)

func openGrid(t *testing.T, w, h int, blocked ...gridmap.Cell) *gridmap.Map {
	t.Helper()
	isBlocked := make(map[gridmap.Cell]bool, len(blocked))
	for _, c := range blocked {
		isBlocked[c] = true
	}
	layout := make([][]gridmap.Classification, h)
	for y := 0; y < h; y++ {
		layout[y] = make([]gridmap.Classification, w)
		for x := 0; x < w; x++ {
			layout[y][x] = gridmap.Classification{Blocked: isBlocked[gridmap.Cell{X: x, Y: y}]}
		}
	}
	m, err := gridmap.New(layout, nil)
	require.NoError(t, err)
	return m
}

func TestPath_SameStartAndGoal(t *testing.T) {
	m := openGrid(t, 3, 3)
	path, ok := Path(m, gridmap.Cell{X: 1, Y: 1}, gridmap.Cell{X: 1, Y: 1})
	require.True(t, ok)
	assert.Equal(t, []gridmap.Cell{{X: 1, Y: 1}}, path)
}

func TestPath_StraightLine(t *testing.T) {
	m := openGrid(t, 5, 1)
	path, ok := Path(m, gridmap.Cell{X: 0, Y: 0}, gridmap.Cell{X: 4, Y: 0})
	require.True(t, ok)
	assert.Len(t, path, 5)
	assert.Equal(t, gridmap.Cell{X: 0, Y: 0}, path[0])
	assert.Equal(t, gridmap.Cell{X: 4, Y: 0}, path[len(path)-1])
}

func TestPath_RoutesAroundWall(t *testing.T) {
	// 3x3 grid with the middle column blocked except the bottom row,
	// forcing a detour.
	m := openGrid(t, 3, 3, gridmap.Cell{X: 1, Y: 0}, gridmap.Cell{X: 1, Y: 1})
	path, ok := Path(m, gridmap.Cell{X: 0, Y: 0}, gridmap.Cell{X: 2, Y: 0})
	require.True(t, ok)
	for _, c := range path {
		assert.False(t, m.IsObstacle(c))
	}
	assert.Equal(t, gridmap.Cell{X: 0, Y: 0}, path[0])
	assert.Equal(t, gridmap.Cell{X: 2, Y: 0}, path[len(path)-1])
}

func TestPath_NoRouteReturnsFalse(t *testing.T) {
	m := openGrid(t, 3, 1, gridmap.Cell{X: 1, Y: 0})
	_, ok := Path(m, gridmap.Cell{X: 0, Y: 0}, gridmap.Cell{X: 2, Y: 0})
	assert.False(t, ok)
}

func TestPath_TieBreakIsDeterministic(t *testing.T) {
	m := openGrid(t, 3, 3)
	first, ok := Path(m, gridmap.Cell{X: 0, Y: 0}, gridmap.Cell{X: 2, Y: 2})
	require.True(t, ok)
	for i := 0; i < 5; i++ {
		again, ok := Path(m, gridmap.Cell{X: 0, Y: 0}, gridmap.Cell{X: 2, Y: 2})
		require.True(t, ok)
		assert.Equal(t, first, again)
	}
}

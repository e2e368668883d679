// Package pathfind implements the Grid Pathfinder: least-cost path between
// two cells over 4-connected open space, grounded on
// original_source/astar_search.py (spec.md §4.2).
package pathfind

import (
	"container/heap"

	"robotsim/internal/gridmap"
)

// Path returns the contiguous, obstacle-free path from start to goal,
// starting with start and ending with goal. ok is false if no path
// exists. start == goal returns ([]Cell{start}, true).
//
// The search orders by g+h (Manhattan heuristic) with a closed set keyed
// on cell and a stable insertion-order tie-break, so that under ties the
// returned path is fixed by neighbour enumeration order (gridmap.Map's
// east/west/south/north order) and push order alone.
func Path(m *gridmap.Map, start, goal gridmap.Cell) ([]gridmap.Cell, bool) {
	if start == goal {
		return []gridmap.Cell{start}, true
	}

	pq := &frontier{}
	heap.Init(pq)
	var seq int
	push := func(c gridmap.Cell, path []gridmap.Cell) {
		heap.Push(pq, &frontierItem{
			cell: c,
			path: path,
			g:    len(path) - 1,
			h:    manhattan(c, goal),
			seq:  seq,
		})
		seq++
	}
	push(start, []gridmap.Cell{start})

	closed := make(map[gridmap.Cell]bool)

	for pq.Len() > 0 {
		item := heap.Pop(pq).(*frontierItem)
		if item.cell == goal {
			return item.path, true
		}
		if closed[item.cell] {
			continue
		}
		closed[item.cell] = true

		for _, n := range m.Neighbours(item.cell) {
			if closed[n] {
				continue
			}
			newPath := make([]gridmap.Cell, len(item.path)+1)
			copy(newPath, item.path)
			newPath[len(item.path)] = n
			push(n, newPath)
		}
	}
	return nil, false
}

func manhattan(a, b gridmap.Cell) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

type frontierItem struct {
	cell gridmap.Cell
	path []gridmap.Cell
	g, h int
	seq  int
}

func (it *frontierItem) f() int { return it.g + it.h }

// frontier is a min-heap on (f, seq): lowest f first, ties broken by
// insertion order (lowest seq first), reproducing the original's
// FIFO-stable heap tie-break.
type frontier []*frontierItem

func (f frontier) Len() int { return len(f) }
func (f frontier) Less(i, j int) bool {
	if f[i].f() != f[j].f() {
		return f[i].f() < f[j].f()
	}
	return f[i].seq < f[j].seq
}
func (f frontier) Swap(i, j int) { f[i], f[j] = f[j], f[i] }
func (f *frontier) Push(x any)   { *f = append(*f, x.(*frontierItem)) }
func (f *frontier) Pop() any {
	old := *f
	n := len(old)
	item := old[n-1]
	*f = old[:n-1]
	return item
}

package main

import "robotsim/internal/gridmap"

// buildDefaultScenario lays out the 9x10 four-room home used throughout
// spec.md §8's worked scenarios: kitchen, living_room, bedroom, bathroom
// as quadrants separated by walls with single-cell doors, and cup,
// book, phone, toothbrush placed one per room. The door cells are left
// untagged, so the Executor's hallway fallback (spec.md §9) is exercised
// by this CLI's own demo scene rather than only by tests.
func buildDefaultScenario() (layout [][]gridmap.Classification, items map[string]gridmap.Cell) {
	const width, height = 9, 10

	layout = make([][]gridmap.Classification, height)
	for y := 0; y < height; y++ {
		layout[y] = make([]gridmap.Classification, width)
		for x := 0; x < width; x++ {
			blocked := isWall(x, y)
			var room string
			if !blocked {
				room = roomAt(x, y)
			}
			layout[y][x] = gridmap.Classification{Blocked: blocked, Room: room}
		}
	}

	items = map[string]gridmap.Cell{
		"cup":        {X: 1, Y: 1},
		"book":       {X: 6, Y: 1},
		"phone":      {X: 1, Y: 6},
		"toothbrush": {X: 6, Y: 6},
	}
	return layout, items
}

// isWall reports whether (x,y) is part of the cross-shaped dividing
// wall, with one door cell per wall segment.
func isWall(x, y int) bool {
	if x == 4 && y != 2 && y != 7 {
		return true
	}
	if y == 5 && x != 1 && x != 7 {
		return true
	}
	return false
}

// roomAt returns the quadrant tag for an open, non-door cell; door
// cells (x==4 or y==5) return "" and surface as the hallway pseudo-room.
func roomAt(x, y int) string {
	switch {
	case x < 4 && y < 5:
		return "kitchen"
	case x > 4 && y < 5:
		return "living_room"
	case x < 4 && y > 5:
		return "bedroom"
	case x > 4 && y > 5:
		return "bathroom"
	default:
		return ""
	}
}

package robotsim

import (
	"strings"

	"robotsim/internal/gridmap"
)

// Render draws an ASCII view of the session's Grid Map: blocked cells,
// open cells, item positions, and the robot's most-likely cell (room
// tags are not shown; every open cell is drawn alike),
// adapted from b-librobot/librobot_warehouse.go's Render (which drew a
// fixed-size warehouse grid of robots and crates onto a terminal-sized
// buffer in the same row-by-row style).
func (s *Session) Render() string {
	width, height := s.m.Width(), s.m.Height()
	grid := make([][]string, height)
	for y := range grid {
		grid[y] = make([]string, width)
		for x := range grid[y] {
			c := gridmap.Cell{X: x, Y: y}
			switch {
			case s.m.IsObstacle(c):
				grid[y][x] = "###"
			default:
				grid[y][x] = " . "
			}
		}
	}

	for name, loc := range s.m.Items() {
		if loc.Held {
			continue
		}
		label := itemLabel(name)
		grid[loc.Cell.Y][loc.Cell.X] = label
	}

	robotPos := s.MostLikely()
	grid[robotPos.Y][robotPos.X] = " R "

	var b strings.Builder
	b.WriteString("--- Session view ---\n")
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			b.WriteString(grid[y][x])
		}
		b.WriteString("\n")
	}
	b.WriteString("---------------------\n")
	return b.String()
}

func itemLabel(name string) string {
	if len(name) >= 2 {
		return " " + strings.ToUpper(name[:1]) + strings.ToLower(name[1:2])
	}
	return " " + strings.ToUpper(name) + " "
}

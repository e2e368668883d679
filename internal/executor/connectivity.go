package executor

import "sort"

// HallwayRoom is the pseudo-room the Executor falls back to when the
// robot's estimated cell carries no room tag. Kept per spec.md §9's
// Open Question: §4.5's body prescribes this fallback as a requirement,
// not merely as a flagged ambiguity, so it stays; the source's
// direct-path special cases that papered over its consequences did not
// (see executor.go).
const HallwayRoom = "hallway"

// Connectivity is the static room-adjacency table supplied at
// construction time (spec.md §6: "this table is supplied at
// construction time, it is not derived"). It is independent of
// geometric adjacency — two rooms can be Connected without sharing a
// wall, and vice versa.
type Connectivity struct {
	edges map[string]map[string]bool
}

// NewConnectivity builds a Connectivity from a set of directed edges.
// Pass both (a,b) and (b,a) for a bidirectional link.
func NewConnectivity(edges ...[2]string) Connectivity {
	c := Connectivity{edges: make(map[string]map[string]bool)}
	for _, e := range edges {
		c.add(e[0], e[1])
	}
	return c
}

func (c Connectivity) add(from, to string) {
	if c.edges[from] == nil {
		c.edges[from] = make(map[string]bool)
	}
	c.edges[from][to] = true
}

// Connected reports whether a GoTo from `from` to `to` is licensed.
func (c Connectivity) Connected(from, to string) bool {
	return c.edges[from] != nil && c.edges[from][to]
}

// Neighbours returns every room reachable in one GoTo hop from room, sorted.
func (c Connectivity) Neighbours(room string) []string {
	var out []string
	for to := range c.edges[room] {
		out = append(out, to)
	}
	sort.Strings(out)
	return out
}

// Rooms returns every room name appearing as either endpoint of an
// edge, sorted, excluding HallwayRoom (which is synthesised, not
// configured).
func (c Connectivity) Rooms() []string {
	seen := make(map[string]bool)
	for from, tos := range c.edges {
		if from != HallwayRoom {
			seen[from] = true
		}
		for to := range tos {
			if to != HallwayRoom {
				seen[to] = true
			}
		}
	}
	out := make([]string, 0, len(seen))
	for r := range seen {
		out = append(out, r)
	}
	sort.Strings(out)
	return out
}

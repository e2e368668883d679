// Package belief implements the discrete-state HMM localiser: the Belief
// Filter of spec.md §4.3. Grounded on original_source/robot_hmm.py, but
// restructured so prediction only fans mass across a cell's own
// neighbourhood (the O(|S|*d) optimisation spec.md calls out) instead of
// the full O(|S|^2) double loop.
package belief

import (
	"math/rand"
	"sort"

	"robotsim/internal/gridmap"
)

// WeightedCell pairs a cell with its belief mass, for TopK results.
type WeightedCell struct {
	Cell gridmap.Cell
	Mass float64
}

// Filter maintains a probability distribution over the grid's open
// cells and advances it by (intended motion, observation) pairs.
type Filter struct {
	m      *gridmap.Map
	motion Motion
	sensor Sensor
	rng    *rand.Rand

	order []gridmap.Cell       // insertion order, for stable tie-break
	index map[gridmap.Cell]int // cell -> position in order
	mass  []float64            // mass[index[c]] == b(c)

	// numObservations is the closed observation-set size: one token
	// per distinct room tag present in m, plus unknown_sensed,
	// action_succeeded, action_failed.
	numObservations int
	rooms           []string // distinct room tags present in m, sorted
}

// NewFilter builds a Filter over every open cell of m, seeded uniform
// unless seed is provided. rng is the single seedable randomness source
// threaded in per spec.md §9 ("Global RNG" redesign note); the Filter
// stores it but none of its methods use it (Update is deterministic
// given its inputs, and SampleObservation takes its own rng argument),
// which keeps construction symmetric with executor.New.
func NewFilter(m *gridmap.Map, motion Motion, sensor Sensor, rng *rand.Rand, seed map[gridmap.Cell]float64) *Filter {
	open := m.OpenCells()
	f := &Filter{
		m:      m,
		motion: motion,
		sensor: sensor,
		rng:    rng,
		order:  open,
		index:  make(map[gridmap.Cell]int, len(open)),
		mass:   make([]float64, len(open)),
	}
	rooms := make(map[string]bool)
	for i, c := range open {
		f.index[c] = i
		if tag, ok := m.RoomOf(c); ok {
			rooms[tag] = true
		}
	}
	f.numObservations = len(rooms) + 3 // + unknown/succeeded/failed
	f.rooms = make([]string, 0, len(rooms))
	for r := range rooms {
		f.rooms = append(f.rooms, r)
	}
	sort.Strings(f.rooms)
	if seed != nil {
		var total float64
		for _, c := range open {
			total += seed[c]
		}
		if total > 0 {
			for i, c := range open {
				f.mass[i] = seed[c] / total
			}
			return f
		}
	}
	uniform := 1.0 / float64(len(open))
	for i := range f.mass {
		f.mass[i] = uniform
	}
	return f
}

// transitionProb computes T(next | prev, a) exactly per spec.md §4.3.
func (f *Filter) transitionProb(prev gridmap.Cell, a gridmap.Delta, next gridmap.Cell) float64 {
	expected := prev.Add(a)
	neighbours := f.m.Neighbours(prev)

	if f.m.IsObstacle(expected) {
		if len(neighbours) == 0 {
			// Nowhere for the slip mass to go: it collapses onto prev.
			if next == prev {
				return f.motion.PCorrect + f.motion.PStay + f.motion.PSlip
			}
			return 0
		}
		if next == prev {
			return f.motion.PCorrect + f.motion.PStay
		}
		for _, n := range neighbours {
			if n == next {
				return f.motion.PSlip / float64(len(neighbours))
			}
		}
		return 0
	}

	switch {
	case next == expected:
		return f.motion.PCorrect
	case next == prev:
		return f.motion.PStay
	default:
		var unintended []gridmap.Cell
		for _, n := range neighbours {
			if n != expected {
				unintended = append(unintended, n)
			}
		}
		for _, n := range unintended {
			if n == next {
				return f.motion.PSlip / float64(len(unintended))
			}
		}
		return 0
	}
}

// emissionProb computes E(obs | s) exactly per spec.md §4.3.
func (f *Filter) emissionProb(s gridmap.Cell, obs Observation) float64 {
	room, ok := f.m.RoomOf(s)

	if !ok {
		if obs == UnknownSensed {
			return 0.8
		}
		return 0.2 / float64(f.numObservations-1)
	}

	correct := RoomSensed(room)
	adjacentRooms := map[string]bool{}
	for _, n := range f.m.Neighbours(s) {
		if r, ok := f.m.RoomOf(n); ok {
			adjacentRooms[r] = true
		}
	}

	switch {
	case obs == correct:
		return f.sensor.PCorrect
	case obs == UnknownSensed:
		return f.sensor.PUnknown
	default:
		if adjacentRooms[roomFromObservation(obs)] {
			return f.sensor.PAdjacent / float64(len(adjacentRooms))
		}
		// Remaining mass spread uniformly across every other
		// unmodelled observation (other rooms, action outcomes).
		remaining := 1.0 - f.sensor.PCorrect - f.sensor.PUnknown
		otherCount := f.numObservations - 2 - len(adjacentRooms)
		if len(adjacentRooms) > 0 {
			remaining -= f.sensor.PAdjacent
		}
		if otherCount <= 0 {
			return 0
		}
		return remaining / float64(otherCount)
	}
}

func roomFromObservation(obs Observation) string {
	s := string(obs)
	if len(s) > len(roomSensedSuffix) && s[len(s)-len(roomSensedSuffix):] == roomSensedSuffix {
		return s[:len(s)-len(roomSensedSuffix)]
	}
	return ""
}

// Update advances the belief by one (action, observation) step: predict
// via the motion model, correct via the sensor model, normalise. If the
// correction sums to zero the prior is left unchanged (spec.md §4.3,
// §7's "Degenerate observation" case), and Update reports that via its
// bool return so callers can log the event.
func (f *Filter) Update(a gridmap.Delta, obs Observation) (normalised bool) {
	predicted := make([]float64, len(f.order))
	for i, s := range f.order {
		// Only {s} U N(s) can have nonzero prior mass transitioning
		// into s under any delta with |dx|+|dy|<=1; scan the small
		// reverse-neighbourhood instead of all of S.
		candidates := append([]gridmap.Cell{s}, f.m.Neighbours(s)...)
		seen := make(map[gridmap.Cell]bool, len(candidates))
		var sum float64
		for _, prev := range candidates {
			if seen[prev] {
				continue
			}
			seen[prev] = true
			pi, ok := f.index[prev]
			if !ok {
				continue
			}
			sum += f.transitionProb(prev, a, s) * f.mass[pi]
		}
		predicted[i] = sum
	}

	var total float64
	corrected := make([]float64, len(f.order))
	for i, s := range f.order {
		corrected[i] = f.emissionProb(s, obs) * predicted[i]
		total += corrected[i]
	}

	if total <= 0 {
		return false
	}
	for i := range corrected {
		f.mass[i] = corrected[i] / total
	}
	return true
}

// MostLikely returns the cell maximising the belief, with ties broken
// by insertion order (the order cells were registered in OpenCells,
// which is row-major and therefore deterministic).
func (f *Filter) MostLikely() gridmap.Cell {
	best := 0
	for i := 1; i < len(f.mass); i++ {
		if f.mass[i] > f.mass[best] {
			best = i
		}
	}
	return f.order[best]
}

// TopK returns the k highest-mass cells, descending, ties broken by
// insertion order.
func (f *Filter) TopK(k int) []WeightedCell {
	out := make([]WeightedCell, len(f.order))
	for i, c := range f.order {
		out[i] = WeightedCell{Cell: c, Mass: f.mass[i]}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Mass > out[j].Mass })
	if k < len(out) {
		out = out[:k]
	}
	return out
}

// Snapshot returns a copy of the current distribution.
func (f *Filter) Snapshot() map[gridmap.Cell]float64 {
	out := make(map[gridmap.Cell]float64, len(f.order))
	for i, c := range f.order {
		out[c] = f.mass[i]
	}
	return out
}

// Mass returns the belief mass on cell c (0 for blocked/unknown cells).
func (f *Filter) Mass(c gridmap.Cell) float64 {
	i, ok := f.index[c]
	if !ok {
		return 0
	}
	return f.mass[i]
}

// Observations returns the closed observation set this Filter's emission
// model is defined over, in a fixed order: every room's RoomSensed
// token, then UnknownSensed, ActionSucceeded, ActionFailed.
func (f *Filter) Observations() []Observation {
	out := make([]Observation, 0, f.numObservations)
	for _, r := range f.rooms {
		out = append(out, RoomSensed(r))
	}
	return append(out, UnknownSensed, ActionSucceeded, ActionFailed)
}

// SampleObservation draws a single observation from E(· | trueCell),
// the same emission model Update's correction step queries. This is the
// Executor's "sensor reading presented to update is drawn from the same
// categorical distribution as E(· | true_pos)" (spec.md §4.5).
func (f *Filter) SampleObservation(rng *rand.Rand, trueCell gridmap.Cell) Observation {
	draw := rng.Float64()
	var cumulative float64
	for _, obs := range f.Observations() {
		cumulative += f.emissionProb(trueCell, obs)
		if draw < cumulative {
			return obs
		}
	}
	return UnknownSensed
}

// Package executor implements the Executor of spec.md §4.5: it walks a
// Plan against the Grid Map and Belief Filter, maintaining a hidden true
// position the Belief Filter never observes directly, and derives the
// predicate WorldState the Planner reasons over between goals. Grounded
// on original_source/robot.py's move_to/pickup_item/putdown_item/
// execute_plan/current_world_state_for_planner, with the hallway
// fallback kept (spec.md §9) and the book/toothbrush direct-path special
// cases removed.
package executor

import (
	"fmt"
	"math/rand"
	"sort"

	"robotsim/internal/belief"
	"robotsim/internal/gridmap"
	"robotsim/internal/logging"
	"robotsim/internal/pathfind"
	"robotsim/internal/planner"
)

// Executor owns the hidden true position and the item-held flag; the
// Belief Filter owns its own distribution; the Grid Map owns item
// locations. No component aliases another's mutable state (spec.md §5).
type Executor struct {
	m            *gridmap.Map
	filter       *belief.Filter
	motion       belief.Motion
	rng          *rand.Rand
	connectivity Connectivity
	sink         logging.Sink

	truePos  gridmap.Cell
	itemHeld string // "" means holding nothing
}

// New builds an Executor. truePos is the robot's actual starting
// position, hidden from the filter it is paired with. connectivity is
// the static adjacency table of spec.md §6, supplied by the caller.
func New(m *gridmap.Map, filter *belief.Filter, motion belief.Motion, rng *rand.Rand, truePos gridmap.Cell, connectivity Connectivity, sink logging.Sink) *Executor {
	return &Executor{
		m:            m,
		filter:       filter,
		motion:       motion,
		rng:          rng,
		connectivity: connectivity,
		sink:         sink,
		truePos:      truePos,
	}
}

// TruePos exposes the hidden ground-truth position, for tests and
// scenario setup only; production callers have no legitimate use for it.
func (e *Executor) TruePos() gridmap.Cell { return e.truePos }

// ItemHeld returns the name of the item the robot is holding, or "" if
// its gripper is empty.
func (e *Executor) ItemHeld() string { return e.itemHeld }

// MostLikely delegates to the paired Belief Filter.
func (e *Executor) MostLikely() gridmap.Cell { return e.filter.MostLikely() }

// Execute walks plan action by action, stopping at the first failure.
// It returns (true, nil) iff every action completed its postcondition.
// A non-nil error is returned for a plan naming an action this Executor
// doesn't implement, for a PickUp of an item the Grid Map has no record
// of, and when the Grid Map rejects an item move; other execution
// failures are reported via the bool return, with the reason logged to
// the sink (spec.md §7's propagation policy).
func (e *Executor) Execute(plan planner.Plan) (bool, error) {
	for _, action := range plan {
		var ok bool
		var err error
		switch action.Name {
		case "GoTo":
			ok, err = e.goTo(action.Args[0])
		case "PickUp":
			ok, err = e.pickUp(action.Args[0], action.Args[1])
		case "PutDown":
			ok, err = e.putDown(action.Args[0], action.Args[1])
		default:
			return false, fmt.Errorf("%w: %q", ErrUnsupportedAction, action.Name)
		}
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

// candidateCells returns every open cell belonging to room, closest
// first from the filter's current most-likely cell (spec.md §4.5's
// "sort by Manhattan distance" step). HallwayRoom is handled specially:
// its candidates are the untagged open cells, since it isn't a real
// room tag in the Grid Map.
func (e *Executor) candidateCells(room string) []gridmap.Cell {
	var cells []gridmap.Cell
	if room == HallwayRoom {
		for _, c := range e.m.OpenCells() {
			if _, ok := e.m.RoomOf(c); !ok {
				cells = append(cells, c)
			}
		}
	} else {
		cells = e.m.RoomCells(room)
	}

	from := e.filter.MostLikely()
	sort.SliceStable(cells, func(i, j int) bool {
		return manhattan(from, cells[i]) < manhattan(from, cells[j])
	})
	return cells
}

func manhattan(a, b gridmap.Cell) int {
	return absInt(a.X-b.X) + absInt(a.Y-b.Y)
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// goTo implements spec.md §4.5's GoTo semantics, including the single
// recovery attempt.
func (e *Executor) goTo(targetRoom string) (bool, error) {
	if !e.navigateTowards(targetRoom) {
		e.sink.Warn("goto: no path to any candidate cell", map[string]any{"room": targetRoom})
		return false, nil
	}
	if e.inRoom(targetRoom) {
		return true, nil
	}

	// One recovery attempt from wherever the walk actually left us.
	if !e.navigateTowards(targetRoom) {
		e.sink.Warn("goto: recovery found no path", map[string]any{"room": targetRoom})
		return false, nil
	}
	if e.inRoom(targetRoom) {
		return true, nil
	}
	e.sink.Warn("goto: recovery still in wrong room", map[string]any{"room": targetRoom})
	return false, nil
}

// inRoom reports whether the filter's current most-likely cell belongs
// to room (HallwayRoom matching any untagged cell).
func (e *Executor) inRoom(room string) bool {
	tag, ok := e.m.RoomOf(e.filter.MostLikely())
	if !ok {
		return room == HallwayRoom
	}
	return tag == room
}

// navigateTowards walks the first reachable candidate cell for room, in
// distance order, returning whether any path existed and was walked.
func (e *Executor) navigateTowards(room string) bool {
	for _, cand := range e.candidateCells(room) {
		path, ok := pathfind.Path(e.m, e.filter.MostLikely(), cand)
		if !ok {
			continue
		}
		e.walk(path)
		return true
	}
	return false
}

// walk advances the hidden true position and the Belief Filter one unit
// motion at a time along path (spec.md §4.5: "invoke the Belief Filter
// with a = c_{i+1} - c_i and an observation simulated against the true
// position").
func (e *Executor) walk(path []gridmap.Cell) {
	for i := 1; i < len(path); i++ {
		delta := gridmap.DeltaBetween(path[i-1], path[i])
		e.stepTrue(delta)
		obs := e.filter.SampleObservation(e.rng, e.truePos)
		if !e.filter.Update(delta, obs) {
			e.sink.Info("degenerate observation, belief unchanged", map[string]any{"delta": delta, "obs": obs})
		}
	}
}

// stepTrue mutates the hidden ground-truth position by one noisy unit
// motion, per spec.md §4.5's "Simulated ground truth" paragraph. The
// probabilities are drawn from the same motion model that parameterises
// the Belief Filter's transition model, so a blocked-destination draw
// collapses P(correct)+P(stay) onto staying, exactly mirroring
// transitionProb's blocked branch.
func (e *Executor) stepTrue(intended gridmap.Delta) {
	expected := e.truePos.Add(intended)
	neighbours := e.m.Neighbours(e.truePos)
	draw := e.rng.Float64()

	if e.m.IsObstacle(expected) {
		if draw < e.motion.PCorrect+e.motion.PStay {
			return
		}
		if len(neighbours) > 0 {
			e.truePos = neighbours[e.rng.Intn(len(neighbours))]
		}
		return
	}

	switch {
	case draw < e.motion.PCorrect:
		e.truePos = expected
	case draw < e.motion.PCorrect+e.motion.PStay:
		// stay
	default:
		var unintended []gridmap.Cell
		for _, n := range neighbours {
			if n != expected {
				unintended = append(unintended, n)
			}
		}
		if len(unintended) > 0 {
			e.truePos = unintended[e.rng.Intn(len(unintended))]
		}
	}
}

// pickUp implements spec.md §4.5's PickUp semantics.
func (e *Executor) pickUp(item, room string) (bool, error) {
	loc, err := e.m.ItemLocation(item)
	if err != nil {
		return false, fmt.Errorf("%w: %q", ErrUnknownItem, item)
	}
	if loc.Held {
		e.sink.Warn("pickup: item already held", map[string]any{"item": item})
		return false, nil
	}

	if e.filter.MostLikely() != loc.Cell {
		path, ok := pathfind.Path(e.m, e.filter.MostLikely(), loc.Cell)
		if !ok {
			e.sink.Warn("pickup: no path to item", map[string]any{"item": item})
			e.recordActionOutcome(false)
			return false, nil
		}
		e.walk(path)
	}

	if e.filter.MostLikely() == loc.Cell {
		if err := e.m.SetItemLocation(item, gridmap.HeldLocation()); err != nil {
			return false, err
		}
		e.itemHeld = item
		e.recordActionOutcome(true)
		return true, nil
	}

	e.sink.Warn("pickup: most-likely cell is not the item's cell", map[string]any{"item": item})
	e.recordActionOutcome(false)
	return false, nil
}

// putDown implements spec.md §4.5's PutDown semantics.
func (e *Executor) putDown(item, room string) (bool, error) {
	if !e.inRoom(room) || e.itemHeld != item {
		e.sink.Warn("putdown: wrong room or item not held", map[string]any{"item": item, "room": room})
		e.recordActionOutcome(false)
		return false, nil
	}

	if err := e.m.SetItemLocation(item, gridmap.At(e.filter.MostLikely())); err != nil {
		return false, err
	}
	e.itemHeld = ""
	e.recordActionOutcome(true)
	return true, nil
}

// recordActionOutcome injects the zero-motion action_succeeded/
// action_failed observation spec.md §4.5 calls for after PickUp/PutDown.
func (e *Executor) recordActionOutcome(success bool) {
	obs := belief.ActionFailed
	if success {
		obs = belief.ActionSucceeded
	}
	e.filter.Update(gridmap.Delta{}, obs)
}

// WorldState derives the predicate world state the Planner consumes,
// per spec.md §4.5's "State predicate derivation". It is recomputed
// before every planning call rather than tracked incrementally, since
// the true source of robot position is the Belief Filter's most-likely
// estimate, which can shift between calls even without a GoTo.
func (e *Executor) WorldState() planner.WorldState {
	mostLikely := e.filter.MostLikely()
	robotRoom, tagged := e.m.RoomOf(mostLikely)
	if !tagged {
		robotRoom = HallwayRoom
	}

	held := e.itemHeld
	if held == "" {
		held = planner.Nothing
	}

	preds := []planner.Predicate{
		planner.P(planner.At, planner.Robot, robotRoom),
		planner.P(planner.Holding, planner.Robot, held),
	}

	for name, loc := range e.m.Items() {
		if loc.Held {
			continue
		}
		itemRoom, ok := e.m.RoomOf(loc.Cell)
		if !ok {
			itemRoom = HallwayRoom
		}
		preds = append(preds, planner.P(planner.At, name, itemRoom))
	}

	rooms := e.connectivity.Rooms()
	for _, from := range rooms {
		for _, to := range e.connectivity.Neighbours(from) {
			preds = append(preds, planner.P(planner.Connected, from, to))
		}
	}
	if !tagged {
		for _, room := range rooms {
			preds = append(preds, planner.P(planner.Connected, HallwayRoom, room))
			preds = append(preds, planner.P(planner.Connected, room, HallwayRoom))
		}
	}

	return planner.NewWorldState(preds...)
}

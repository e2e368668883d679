package planner

import "sort"

// Binding is a realisable parameter assignment for one Schema, as
// enumerated by that Schema's own Bindings method (never a Cartesian
// product over all objects — spec.md §4.4 calls this out explicitly as
// the thing that keeps branching small).
type Binding map[string]string

// Action is a grounded action: schema name plus ordered argument values,
// e.g. Action{Name: "GoTo", Args: []string{"kitchen"}}.
type Action struct {
	Name string
	Args []string
}

// Plan is an ordered list of grounded actions.
type Plan []Action

// Schema is the sealed STRIPS action-schema variant. Each implementation
// owns both how it enumerates realisable bindings and how it applies
// itself — replacing the original's name-switch dispatch in
// is_applicable/apply_action/forward_planner with direct method calls
// (spec.md §9's "Dynamic dispatch" redesign note).
type Schema interface {
	// Bindings returns every realisable parameter binding for this
	// schema in state s, in the schema's own fixed enumeration order
	// (spec.md §4.4's determinism requirement).
	Bindings(s WorldState) []Binding
	// Apply grounds this schema under b against s, returning the
	// successor state and the instantiated Action. Apply is only ever
	// called with a b produced by this schema's own Bindings, so it
	// never needs to re-check applicability.
	Apply(s WorldState, b Binding) (WorldState, Action)
}

// GoTo moves the robot between connected rooms.
type GoTo struct{}

// Bindings finds the robot's current room r0, then yields {room: r1}
// for every r1 != r0 with (Connected, r0, r1) in s, in sorted room-name
// order. Map iteration order is nondeterministic in Go, so the
// candidates are sorted before return to keep the planner's output
// reproducible under a fixed seed.
func (GoTo) Bindings(s WorldState) []Binding {
	r0, ok := s.RobotRoom()
	if !ok {
		return nil
	}
	var rooms []string
	for p := range s {
		if p.Relation == Connected && p.Args[0] == r0 {
			rooms = append(rooms, p.Args[1])
		}
	}
	sortStrings(rooms)
	out := make([]Binding, 0, len(rooms))
	for _, r1 := range rooms {
		if r1 == r0 {
			continue
		}
		out = append(out, Binding{"room": r1})
	}
	return out
}

func (GoTo) Apply(s WorldState, b Binding) (WorldState, Action) {
	r0, _ := s.RobotRoom()
	r1 := b["room"]
	next := s.With(
		[]Predicate{P(At, Robot, r0)},
		[]Predicate{P(At, Robot, r1)},
	)
	return next, Action{Name: "GoTo", Args: []string{r1}}
}

// PickUp picks up an item sharing the robot's room, when the robot is
// holding nothing.
type PickUp struct{}

// Bindings requires (Holding, robot, nothing) and a robot room r, then
// yields {item: i, room: r} for every (At, i, r) with i != robot.
func (PickUp) Bindings(s WorldState) []Binding {
	held, ok := s.Held()
	if !ok || held != Nothing {
		return nil
	}
	r, ok := s.RobotRoom()
	if !ok {
		return nil
	}
	var items []string
	for p := range s {
		if p.Relation == At && p.Args[0] != Robot && p.Args[1] == r {
			items = append(items, p.Args[0])
		}
	}
	sortStrings(items)
	out := make([]Binding, 0, len(items))
	for _, item := range items {
		out = append(out, Binding{"item": item, "room": r})
	}
	return out
}

func (PickUp) Apply(s WorldState, b Binding) (WorldState, Action) {
	item, room := b["item"], b["room"]
	next := s.With(
		[]Predicate{P(At, item, room), P(Holding, Robot, Nothing)},
		[]Predicate{P(Holding, Robot, item)},
	)
	return next, Action{Name: "PickUp", Args: []string{item, room}}
}

// PutDown places whatever the robot is holding in its current room.
type PutDown struct{}

// Bindings requires a robot room r and (Holding, robot, i) with
// i != nothing, yielding the single binding {item: i, room: r}.
func (PutDown) Bindings(s WorldState) []Binding {
	r, ok := s.RobotRoom()
	if !ok {
		return nil
	}
	held, ok := s.Held()
	if !ok || held == Nothing {
		return nil
	}
	return []Binding{{"item": held, "room": r}}
}

func (PutDown) Apply(s WorldState, b Binding) (WorldState, Action) {
	item, room := b["item"], b["room"]
	next := s.With(
		[]Predicate{P(Holding, Robot, item)},
		[]Predicate{P(At, item, room), P(Holding, Robot, Nothing)},
	)
	return next, Action{Name: "PutDown", Args: []string{item, room}}
}

// DefaultSchemas returns the three built-in schemas in the fixed
// enumeration order spec.md §4.4 requires for deterministic tie-break:
// GoTo, then PickUp, then PutDown.
func DefaultSchemas() []Schema {
	return []Schema{GoTo{}, PickUp{}, PutDown{}}
}

func sortStrings(ss []string) { sort.Strings(ss) }

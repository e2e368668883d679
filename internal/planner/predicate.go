// Package planner implements the Symbolic Planner of spec.md §4.4: a
// STRIPS-style forward search over grounded predicate states. Grounded on
// original_source/planner.py and action_schema.py, but the name-keyed
// if/elif dispatch of the original is replaced by a sealed Schema variant
// (spec.md §9's "Dynamic dispatch" redesign note) — GoTo, PickUp, and
// PutDown each implement Schema directly instead of being interpreted
// generically from data.
package planner

import (
	"fmt"
	"sort"
	"strings"
)

// Relation is one of the closed set of predicate names spec.md §4.1
// allows: At, Holding, Connected.
type Relation string

const (
	At        Relation = "At"
	Holding   Relation = "Holding"
	Connected Relation = "Connected"
)

// Nothing is the sentinel Holding argument meaning the robot's gripper is
// empty, matching original_source's ('Holding', 'robot', 'nothing').
const Nothing = "nothing"

// Robot is the fixed first argument of every At/Holding predicate about
// the robot itself.
const Robot = "robot"

// Predicate is an ordered tuple (relation, args...). Predicates are
// comparable (no slice fields) so they can key a Go map directly.
type Predicate struct {
	Relation Relation
	Args     [2]string // unused trailing args are "", since every
	// relation in the closed set takes at most two arguments
}

// P builds a two-argument predicate, e.g. P(At, "robot", "kitchen").
func P(rel Relation, a, b string) Predicate {
	return Predicate{Relation: rel, Args: [2]string{a, b}}
}

func (p Predicate) String() string {
	return fmt.Sprintf("(%s %s %s)", p.Relation, p.Args[0], p.Args[1])
}

// WorldState is a set of Predicates. Since Predicate is comparable it can
// be used directly as a Go map key, giving WorldState natural set
// semantics (spec.md §4.1). A WorldState is itself a map and so not
// hashable; the planner's visited set keys on its canonical key().
type WorldState map[Predicate]struct{}

// NewWorldState builds a WorldState from a list of predicates.
func NewWorldState(preds ...Predicate) WorldState {
	s := make(WorldState, len(preds))
	for _, p := range preds {
		s[p] = struct{}{}
	}
	return s
}

// Has reports whether p holds in s.
func (s WorldState) Has(p Predicate) bool {
	_, ok := s[p]
	return ok
}

// Subset reports whether every predicate of goal holds in s, i.e.
// goal ⊆ s.
func (s WorldState) Subset(goal WorldState) bool {
	for p := range goal {
		if !s.Has(p) {
			return false
		}
	}
	return true
}

// Clone returns a shallow copy, since Predicate has no reference fields.
func (s WorldState) Clone() WorldState {
	out := make(WorldState, len(s))
	for p := range s {
		out[p] = struct{}{}
	}
	return out
}

// With returns a copy of s with del removed then add applied, the
// generic STRIPS update rule of spec.md §4.4 ("removing every grounded
// delete effect then adding every grounded add effect" — del is applied
// first here only to make room for an add of the same predicate; order
// does not matter when add and del are disjoint, which every schema in
// this package guarantees).
func (s WorldState) With(del, add []Predicate) WorldState {
	out := s.Clone()
	for _, p := range del {
		delete(out, p)
	}
	for _, p := range add {
		out[p] = struct{}{}
	}
	return out
}

// key returns a canonical string for s, used as the visited-set key
// since Go maps aren't themselves comparable/hashable.
func (s WorldState) key() string {
	keys := make([]string, 0, len(s))
	for p := range s {
		keys = append(keys, p.String())
	}
	sort.Strings(keys)
	return strings.Join(keys, "|")
}

// RobotRoom returns the room the robot is At, per the single-At-predicate
// invariant of spec.md §4.1.
func (s WorldState) RobotRoom() (string, bool) {
	for p := range s {
		if p.Relation == At && p.Args[0] == Robot {
			return p.Args[1], true
		}
	}
	return "", false
}

// Held returns what the robot is Holding (Nothing if empty-handed).
func (s WorldState) Held() (string, bool) {
	for p := range s {
		if p.Relation == Holding && p.Args[0] == Robot {
			return p.Args[1], true
		}
	}
	return "", false
}

// ItemRoom returns the room item is At, if any (false if held or unknown).
func (s WorldState) ItemRoom(item string) (string, bool) {
	for p := range s {
		if p.Relation == At && p.Args[0] == item {
			return p.Args[1], true
		}
	}
	return "", false
}

package executor

import "errors"

// Sentinel errors for the Executor's failure taxonomy (spec.md §7), in
// the teacher's librobot_errors.go idiom.
var (
	// ErrUnreachable: the Grid Pathfinder found no path to any candidate cell.
	ErrUnreachable = errors.New("executor: no path to target")
	// ErrUnknownItem: the Grid Map has no record of the named item.
	ErrUnknownItem = errors.New("executor: unknown item")
	// ErrPreconditionMismatch: runtime state deviated from what the action required.
	ErrPreconditionMismatch = errors.New("executor: precondition mismatch")
	// ErrUnsupportedAction: a plan named an action this Executor doesn't implement.
	ErrUnsupportedAction = errors.New("executor: unsupported action")
)

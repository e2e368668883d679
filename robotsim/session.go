// Package robotsim is the public façade of spec.md §6: it wires the
// Grid Map, Belief Filter, Planner, and Executor together behind the
// three collaborator-facing operations (construction, goal submission,
// introspection) and wraps goal submission in the teacher's
// goroutine-per-entity worker loop (b-librobot/librobot_robot.go's
// robotImpl: a buffered task queue, one cancellation channel per task,
// a dedicated worker goroutine), generalised from robot commands to
// planner goals.
package robotsim

import (
	"errors"
	"math/rand"
	"sync"

	"github.com/google/uuid"

	"robotsim/internal/belief"
	"robotsim/internal/config"
	"robotsim/internal/executor"
	"robotsim/internal/gridmap"
	"robotsim/internal/logging"
	"robotsim/internal/planner"
)

// ErrGoalNotFound mirrors librobot's ErrTaskNotFound for CancelGoal.
var ErrGoalNotFound = errors.New("robotsim: goal not found")

// ErrGoalCancelled is delivered on a cancelled goal's error channel.
var ErrGoalCancelled = errors.New("robotsim: goal cancelled")

// goalTask is one EnqueueGoal request working its way through the
// session's worker, mirroring robotTask in the teacher's librobot.
type goalTask struct {
	id       string
	goal     planner.WorldState
	schemas  []planner.Schema
	resultCh chan bool
	errCh    chan error
	cancelCh chan struct{}
}

// Session owns one simulated robot: its Grid Map, Belief Filter,
// Executor, and the single RNG the Belief Filter and Executor share
// (spec.md §5's single-seedable-source requirement).
type Session struct {
	m      *gridmap.Map
	filter *belief.Filter
	exec   *executor.Executor
	depth  int
	sink   logging.Sink

	taskQueue      chan *goalTask
	cancelChannels map[string]chan struct{}
	mu             sync.Mutex
	stopWorker     chan struct{}
	workerStarted  bool
}

// NewSession builds a Session over m, starting the robot's hidden true
// position at truePos with an initially uniform (or seed-weighted)
// belief, and starts its worker goroutine. connectivity is the static
// room-adjacency table of spec.md §6.
func NewSession(m *gridmap.Map, cfg config.Config, truePos gridmap.Cell, connectivity executor.Connectivity, beliefSeed map[gridmap.Cell]float64, sink logging.Sink) *Session {
	rng := rand.New(rand.NewSource(cfg.Seed))
	filter := belief.NewFilter(m, cfg.Motion(), cfg.Sensor(), rng, beliefSeed)
	exec := executor.New(m, filter, cfg.Motion(), rng, truePos, connectivity, sink)

	s := &Session{
		m:              m,
		filter:         filter,
		exec:           exec,
		depth:          cfg.PlanDepthBound,
		sink:           sink,
		taskQueue:      make(chan *goalTask, 100),
		cancelChannels: make(map[string]chan struct{}),
		stopWorker:     make(chan struct{}),
	}
	go s.startWorker()
	return s
}

// EnqueueGoal submits a goal predicate set for planning and execution,
// per spec.md §6's execute_goal façade. It returns immediately; the
// result and any wiring error arrive on the returned channels once the
// session's worker reaches this goal in FIFO order.
func (s *Session) EnqueueGoal(goal planner.WorldState, schemas []planner.Schema) (taskID string, result <-chan bool, errs <-chan error) {
	taskID = uuid.New().String()
	resultCh := make(chan bool, 1)
	errCh := make(chan error, 1)

	task := &goalTask{
		id:       taskID,
		goal:     goal,
		schemas:  schemas,
		resultCh: resultCh,
		errCh:    errCh,
		cancelCh: make(chan struct{}),
	}

	s.mu.Lock()
	s.cancelChannels[taskID] = task.cancelCh
	s.taskQueue <- task
	s.mu.Unlock()

	return taskID, resultCh, errCh
}

// CancelGoal cancels a goal the worker has not started yet, mirroring
// robotImpl.CancelTask: that goal's error channel then receives
// ErrGoalCancelled. A goal whose planning or execution has already
// begun runs to completion; cancelling it only drops its bookkeeping
// entry.
func (s *Session) CancelGoal(taskID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cancelCh, ok := s.cancelChannels[taskID]
	if !ok {
		return ErrGoalNotFound
	}
	select {
	case <-cancelCh:
		// already closed
	default:
		close(cancelCh)
	}
	delete(s.cancelChannels, taskID)
	return nil
}

// Close stops the session's worker goroutine. Further EnqueueGoal calls
// will block forever once the queue fills, so Close should be called
// exactly once when the session is done.
func (s *Session) Close() {
	close(s.stopWorker)
}

func (s *Session) startWorker() {
	s.mu.Lock()
	if s.workerStarted {
		s.mu.Unlock()
		return
	}
	s.workerStarted = true
	s.mu.Unlock()

	for {
		select {
		case task := <-s.taskQueue:
			s.runGoal(task)
			s.mu.Lock()
			delete(s.cancelChannels, task.id)
			s.mu.Unlock()
		case <-s.stopWorker:
			return
		}
	}
}

// runGoal invokes the Planner then the Executor, matching spec.md §6's
// execute_goal(map, runtime, goal_predicates, schemas) → bool contract.
func (s *Session) runGoal(task *goalTask) {
	defer close(task.resultCh)
	defer close(task.errCh)

	select {
	case <-task.cancelCh:
		task.errCh <- ErrGoalCancelled
		return
	default:
	}

	initial := s.exec.WorldState()
	plan, ok := planner.Plan(initial, task.goal, task.schemas, s.depth)
	if !ok {
		s.sink.Warn("goal: planner exhausted depth bound", map[string]any{"goal": task.goal})
		task.resultCh <- false
		return
	}

	success, err := s.exec.Execute(plan)
	if err != nil {
		s.sink.Error("goal: executor wiring error", err, map[string]any{"plan": plan})
		task.errCh <- err
		task.resultCh <- false
		return
	}
	task.resultCh <- success
}

// MostLikely, TopK, ItemHeld, and ItemLocation are the read-only
// introspection surface of spec.md §6.
func (s *Session) MostLikely() gridmap.Cell { return s.exec.MostLikely() }

func (s *Session) TopK(k int) []belief.WeightedCell { return s.filter.TopK(k) }

func (s *Session) ItemHeld() string { return s.exec.ItemHeld() }

func (s *Session) ItemLocation(name string) (gridmap.ItemLocation, error) {
	return s.m.ItemLocation(name)
}

// WorldState exposes the Executor's derived predicate state, for
// callers that want to inspect what the next EnqueueGoal call would
// plan from.
func (s *Session) WorldState() planner.WorldState { return s.exec.WorldState() }

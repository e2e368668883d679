package robotsim

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"robotsim/internal/config"
	"robotsim/internal/executor"
	"robotsim/internal/gridmap"
	"robotsim/internal/logging"
	"robotsim/internal/planner"
)

func twoRoomMap(t *testing.T) *gridmap.Map {
	t.Helper()
	layout := [][]gridmap.Classification{{
		{Room: "kitchen"},
		{Room: "kitchen"},
		{Room: "living_room"},
		{Room: "living_room"},
	}}
	m, err := gridmap.New(layout, map[string]gridmap.Cell{"cup": {X: 0, Y: 0}})
	require.NoError(t, err)
	return m
}

func newTestSession(t *testing.T) *Session {
	t.Helper()
	m := twoRoomMap(t)
	cfg := config.Default()
	cfg.Seed = 42
	conn := executor.NewConnectivity(
		[2]string{"kitchen", "living_room"},
		[2]string{"living_room", "kitchen"},
	)
	var buf bytes.Buffer
	s := NewSession(m, cfg, gridmap.Cell{X: 0, Y: 0}, conn, nil, logging.New(&buf))
	t.Cleanup(s.Close)
	return s
}

func TestSession_EnqueueGoal_DeliversVerdict(t *testing.T) {
	s := newTestSession(t)
	goal := planner.NewWorldState(planner.P(planner.At, planner.Robot, "living_room"))

	_, result, errs := s.EnqueueGoal(goal, planner.DefaultSchemas())

	// The motion model is noisy, so a single GoTo with only one recovery
	// attempt is not guaranteed to succeed for every seed; this asserts
	// the worker wiring delivers a verdict promptly, not which verdict.
	select {
	case _, ok := <-result:
		assert.True(t, ok, "result channel closed without a value")
	case err := <-errs:
		t.Fatalf("unexpected wiring error: %v", err)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for goal result")
	}
}

func TestSession_CancelGoal_UnknownIDErrors(t *testing.T) {
	s := newTestSession(t)
	err := s.CancelGoal("does-not-exist")
	assert.ErrorIs(t, err, ErrGoalNotFound)
}

func TestSession_Render_IncludesRobotMarker(t *testing.T) {
	s := newTestSession(t)
	out := s.Render()
	assert.Contains(t, out, " R ")
}

func TestSession_ItemLocation_DelegatesToMap(t *testing.T) {
	s := newTestSession(t)
	loc, err := s.ItemLocation("cup")
	require.NoError(t, err)
	assert.Equal(t, gridmap.Cell{X: 0, Y: 0}, loc.Cell)
}

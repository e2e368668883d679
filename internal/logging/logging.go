// Package logging is the error-handling side channel of spec.md §7:
// every Executor/planner failure surfaces to its caller as a bool, with
// a human-readable reason reachable through a Sink instead of a panic or
// bare error return. Grounded on smilemakc-mbflow's zerolog usage
// (internal/config.go, internal/db/base.go).
package logging

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// Sink is the narrow logging surface the planner/executor/robotsim
// layers depend on, so tests can substitute a buffer without pulling in
// zerolog directly.
type Sink interface {
	Info(msg string, fields map[string]any)
	Warn(msg string, fields map[string]any)
	Error(msg string, err error, fields map[string]any)
}

// zerologSink is the default Sink, writing structured events through
// zerolog the way smilemakc-mbflow's config/base packages do.
type zerologSink struct {
	logger zerolog.Logger
}

// New builds a Sink writing to w (os.Stderr for production use, as
// Default does; a bytes.Buffer in tests).
func New(w io.Writer) Sink {
	return &zerologSink{logger: zerolog.New(w).With().Timestamp().Logger()}
}

// Default is a ready-to-use stderr sink.
func Default() Sink {
	return New(os.Stderr)
}

func (s *zerologSink) Info(msg string, fields map[string]any) {
	s.logger.Info().Fields(fields).Msg(msg)
}

func (s *zerologSink) Warn(msg string, fields map[string]any) {
	s.logger.Warn().Fields(fields).Msg(msg)
}

func (s *zerologSink) Error(msg string, err error, fields map[string]any) {
	s.logger.Error().Err(err).Fields(fields).Msg(msg)
}

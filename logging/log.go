// Package logging provides a swappable logging interface so the cost of
// formatting log lines can be avoided on hot paths (the interpreter's tick
// loop) without touching call sites.
package logging

import "go.uber.org/zap"

// Logger is the minimal logging surface the engine packages depend on.
// Swap the package-level Logger variable in each consuming package to
// enable verbose tracing; the default (Null) never formats its
// arguments, which is significantly cheaper than routing through a
// discard writer.
type Logger interface {
	Printf(format string, v ...interface{})
	Println(v ...interface{})
}

type nullLogger struct{}

func (nullLogger) Printf(format string, v ...interface{}) {}
func (nullLogger) Println(v ...interface{})               {}

// Null returns a Logger that discards everything without formatting it.
func Null() Logger {
	return nullLogger{}
}

type zapLogger struct {
	s *zap.SugaredLogger
}

func (z zapLogger) Printf(format string, v ...interface{}) {
	z.s.Debugf(format, v...)
}

func (z zapLogger) Println(v ...interface{}) {
	z.s.Debug(v...)
}

// Real returns a Logger backed by a production zap.Logger, logging at
// debug level. Intended for development tracing of a single organism or
// update; too expensive to leave enabled across a 3600-organism world.
func Real() Logger {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	l, err := cfg.Build()
	if err != nil {
		// Fall back to a no-op logger rather than panic from a logging
		// constructor; a broken logger should never take down the sim.
		return Null()
	}
	return zapLogger{s: l.Sugar()}
}

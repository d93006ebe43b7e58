package sections

import "time"

// ResolveEvent describes one resolution attempt for logging. Engine is
// set only for expression evaluation.
type ResolveEvent struct {
	Section  string
	Option   string
	Kind     string
	Engine   string
	Duration time.Duration
	Err      error
}

// ResolveLogger records resolution events.
type ResolveLogger interface {
	LogResolve(ResolveEvent)
}

// ResolveLoggerFunc adapts a function to ResolveLogger.
type ResolveLoggerFunc func(ResolveEvent)

// LogResolve implements ResolveLogger.
func (f ResolveLoggerFunc) LogResolve(event ResolveEvent) {
	if f != nil {
		f(event)
	}
}

type noopResolveLogger struct{}

func (noopResolveLogger) LogResolve(ResolveEvent) {}

func (st *Store) logger() ResolveLogger {
	if st.cfg.logger != nil {
		return st.cfg.logger
	}
	return noopResolveLogger{}
}

// Package bathylog wraps the standard log package with the iteration-banner
// style a simplification run reports in, mirroring the source tool's
// nested "-"/"\t-" prefixed progress messages (e.g. "-Simplifying Mesh",
// "\t-Iteration Count: 3", "\t\t-Mesh Vertices Before Iteration: 512").
package bathylog

import "log"

// Logger indents every message by its nesting level: level 0 gets a single
// "-" prefix, level 1 gets "\t-", level 2 "\t\t-", and so on, matching the
// source's own banner style exactly.
type Logger struct {
	std *log.Logger
}

// New wraps the given stdlib logger (or log.Default() if nil).
func New(std *log.Logger) *Logger {
	if std == nil {
		std = log.Default()
	}
	return &Logger{std: std}
}

// Info logs a message at the given indent level.
func (l *Logger) Info(level int, format string, args ...any) {
	l.std.Printf(prefix(level)+format, args...)
}

func prefix(level int) string {
	p := "-"
	for i := 0; i < level; i++ {
		p = "\t" + p
	}
	return p
}

package core

import "time"

// Severity classifies a diagnostic raised by node code.
type Severity int

const (
	// SeverityDebug is developer chatter.
	SeverityDebug Severity = iota
	// SeverityInfo is routine operational information.
	SeverityInfo
	// SeverityWarning flags a recoverable anomaly.
	SeverityWarning
	// SeverityError flags a failure the tree survives.
	SeverityError
	// SeverityFatal flags an unrecoverable failure; posting it also
	// requests tree termination.
	SeverityFatal
)

// String returns the severity's name.
func (s Severity) String() string {
	switch s {
	case SeverityDebug:
		return "debug"
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityFatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// Diagnostic is one entry of the tree's diagnostic event stream: a severity,
// the absolute path of the originating node and a message, stamped with the
// tree instance id and emission time.
type Diagnostic struct {
	Tree     string
	Severity Severity
	Path     string
	Message  string
	Time     time.Time
}

// DiagnosticSink receives the tree's diagnostic stream. The core never
// depends on a concrete logging implementation; the logging package bridges
// this interface onto structured loggers.
type DiagnosticSink interface {
	Post(d Diagnostic)
}

// NoOpSink discards every diagnostic.
type NoOpSink struct{}

// Post discards d.
func (NoOpSink) Post(Diagnostic) {}

package logging

import "github.com/treekit/treekit/core"

// diagnosticSink bridges the tree's diagnostic stream onto a Logger,
// mapping severities to log levels. Fatal diagnostics are logged at error
// level with a fatal marker; the tree itself handles the termination side.
type diagnosticSink struct {
	logger Logger
}

// NewDiagnosticSink wraps logger as a core.DiagnosticSink. A nil logger is
// substituted with NoOpLogger.
func NewDiagnosticSink(logger Logger) core.DiagnosticSink {
	if logger == nil {
		logger = NoOpLogger{}
	}
	return &diagnosticSink{logger: logger}
}

// Post implements core.DiagnosticSink.
func (s *diagnosticSink) Post(d core.Diagnostic) {
	args := []any{"tree", d.Tree, "path", d.Path}
	switch d.Severity {
	case core.SeverityDebug:
		s.logger.Debug(d.Message, args...)
	case core.SeverityInfo:
		s.logger.Info(d.Message, args...)
	case core.SeverityWarning:
		s.logger.Warn(d.Message, args...)
	case core.SeverityError:
		s.logger.Error(d.Message, args...)
	case core.SeverityFatal:
		s.logger.Error(d.Message, append(args, "fatal", true)...)
	}
}

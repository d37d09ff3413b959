package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// ZerologAdapter wraps a zerolog.Logger to implement the Logger interface.
type ZerologAdapter struct {
	logger zerolog.Logger
}

// NewZerologAdapter creates a Logger from a zerolog.Logger.
func NewZerologAdapter(logger zerolog.Logger) Logger {
	return &ZerologAdapter{logger: logger}
}

// NewConsoleLogger creates a colorized human-readable console logger on
// stderr. This is the facility intended for interactive host loops and
// crash reports; services should prefer NewJSONLogger.
func NewConsoleLogger(level LogLevel) Logger {
	return NewConsoleLoggerTo(os.Stderr, level)
}

// NewConsoleLoggerTo is NewConsoleLogger writing to w.
func NewConsoleLoggerTo(w io.Writer, level LogLevel) Logger {
	out := zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	logger := zerolog.New(out).Level(zerologLevel(level)).With().Timestamp().Logger()
	return &ZerologAdapter{logger: logger}
}

func zerologLevel(l LogLevel) zerolog.Level {
	switch l {
	case LogLevelDebug:
		return zerolog.DebugLevel
	case LogLevelInfo:
		return zerolog.InfoLevel
	case LogLevelWarn:
		return zerolog.WarnLevel
	case LogLevelError:
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// Debug logs a debug message.
func (z *ZerologAdapter) Debug(msg string, args ...any) { z.log(z.logger.Debug(), msg, args) }

// Info logs an informational message.
func (z *ZerologAdapter) Info(msg string, args ...any) { z.log(z.logger.Info(), msg, args) }

// Warn logs a warning message.
func (z *ZerologAdapter) Warn(msg string, args ...any) { z.log(z.logger.Warn(), msg, args) }

// Error logs an error message.
func (z *ZerologAdapter) Error(msg string, args ...any) { z.log(z.logger.Error(), msg, args) }

func (z *ZerologAdapter) log(evt *zerolog.Event, msg string, args []any) {
	for i := 0; i+1 < len(args); i += 2 {
		key, ok := args[i].(string)
		if !ok {
			key = "arg"
		}
		evt = evt.Interface(key, args[i+1])
	}
	evt.Msg(msg)
}

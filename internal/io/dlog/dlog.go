// Package dlog is the ricat logger. It wraps zerolog and always writes to
// standard error, as standard output carries the processed text.
package dlog

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

// Output formats.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// Standard field keys.
const (
	FieldComponent = "component"
	FieldError     = "error"
	FieldSource    = "source"
)

// Config contains logging configuration.
type Config struct {
	Level     string
	Format    string
	NoColor   bool
	Timestamp bool
	// Out defaults to os.Stderr.
	Out io.Writer
}

// ApplyDefaults applies default values to logging configuration.
func (c *Config) ApplyDefaults() {
	if c.Level == "" {
		c.Level = "warn"
	}
	if c.Format == "" {
		c.Format = FormatConsole
	}
	if c.Out == nil {
		c.Out = os.Stderr
	}
}

// Validate validates logging configuration.
func (c *Config) Validate() error {
	if _, err := zerolog.ParseLevel(strings.ToLower(c.Level)); err != nil || c.Level == "" {
		return fmt.Errorf("log level must be one of [trace debug info warn error] (got: %s)", c.Level)
	}
	switch c.Format {
	case FormatConsole, FormatJSON:
		return nil
	}
	return fmt.Errorf("log format must be one of [console json] (got: %s)", c.Format)
}

// Logger wraps zerolog.Logger.
type Logger struct {
	logger zerolog.Logger
}

// New creates a new logger instance with configuration.
func New(cfg Config) *Logger {
	cfg.ApplyDefaults()

	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.WarnLevel
	}

	var zl zerolog.Logger
	if cfg.Format == FormatJSON {
		zl = zerolog.New(cfg.Out)
	} else {
		zl = zerolog.New(zerolog.ConsoleWriter{
			Out:        cfg.Out,
			NoColor:    cfg.NoColor,
			TimeFormat: "15:04:05",
			PartsExclude: func() []string {
				if cfg.Timestamp {
					return nil
				}
				return []string{zerolog.TimestampFieldName}
			}(),
		})
	}
	if cfg.Timestamp {
		zl = zl.With().Timestamp().Logger()
	}

	return &Logger{logger: zl.Level(level)}
}

// Nop returns a logger discarding everything.
func Nop() *Logger {
	return &Logger{logger: zerolog.Nop()}
}

// WithComponent returns a logger tagged with a component name.
func (l *Logger) WithComponent(name string) *Logger {
	return &Logger{logger: l.logger.With().Str(FieldComponent, name).Logger()}
}

// WithError returns a logger with an error field.
func (l *Logger) WithError(err error) *Logger {
	return &Logger{logger: l.logger.With().Err(err).Logger()}
}

// Enabled reports whether messages of the given level are written.
func (l *Logger) Enabled(level zerolog.Level) bool {
	return l.logger.GetLevel() <= level
}

// Trace logs a trace message.
func (l *Logger) Trace(msg string, fields ...map[string]interface{}) {
	event := l.logger.Trace()
	addFields(event, fields...)
	event.Msg(msg)
}

// Debug logs a debug message.
func (l *Logger) Debug(msg string, fields ...map[string]interface{}) {
	event := l.logger.Debug()
	addFields(event, fields...)
	event.Msg(msg)
}

// Info logs an info message.
func (l *Logger) Info(msg string, fields ...map[string]interface{}) {
	event := l.logger.Info()
	addFields(event, fields...)
	event.Msg(msg)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string, fields ...map[string]interface{}) {
	event := l.logger.Warn()
	addFields(event, fields...)
	event.Msg(msg)
}

// Error logs an error message.
func (l *Logger) Error(msg string, fields ...map[string]interface{}) {
	event := l.logger.Error()
	addFields(event, fields...)
	event.Msg(msg)
}

// Fields builds a field map from alternating key-value pairs.
//
//	dlog.Common.Debug("opened", dlog.Fields("source", path, "mmap", true))
func Fields(kvs ...interface{}) map[string]interface{} {
	m := make(map[string]interface{}, len(kvs)/2)
	for i := 0; i < len(kvs)-1; i += 2 {
		if key, ok := kvs[i].(string); ok {
			m[key] = kvs[i+1]
		}
	}
	return m
}

func addFields(event *zerolog.Event, fields ...map[string]interface{}) {
	if event == nil {
		return
	}
	for _, fm := range fields {
		for k, v := range fm {
			event.Interface(k, v)
		}
	}
}

var (
	mu sync.RWMutex
	// Common is the process wide logger. It discards everything until Start
	// is called.
	Common = Nop()
)

// Start installs the process wide logger.
func Start(cfg Config) *Logger {
	l := New(cfg)
	mu.Lock()
	Common = l
	mu.Unlock()
	return l
}

// Get returns the process wide logger.
func Get() *Logger {
	mu.RLock()
	defer mu.RUnlock()
	return Common
}

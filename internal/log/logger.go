// Package log provides structured logging for the uaman application, backed
// by logrus. It supports plain-text and JSON output, optional file teeing,
// field chaining, and helpers that turn application errors into log fields.
package log

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sync/atomic"

	"uaman/internal/errors"

	"github.com/sirupsen/logrus"
)

// callerField is the reserved data key the formatters lift the call site
// out of.
const callerField = "@caller"

var debugEnabled atomic.Bool

// logger is the process-wide default, replaced by Configure.
var logger = NewLogger()

// Field is one structured key/value pair.
type Field struct {
	Key   string
	Value interface{}
}

// F builds a Field.
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// Logger wraps a logrus logger with caller annotation and debug gating.
type Logger struct {
	lr   *logrus.Logger
	file *os.File
}

// Option configures a Logger.
type Option func(*Logger)

// WithOutput directs log output to w.
func WithOutput(w io.Writer) Option {
	return func(l *Logger) {
		l.lr.SetOutput(w)
	}
}

// WithJSON switches the logger to JSON output.
func WithJSON() Option {
	return func(l *Logger) {
		l.lr.SetFormatter(&jsonFormatter{})
	}
}

// WithFile tees output to the given file in addition to standard output.
// The file is opened for append and kept open for the logger's lifetime.
func WithFile(path string) Option {
	return func(l *Logger) {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "log: cannot open %s: %v\n", path, err)
			return
		}
		l.file = f
		l.lr.SetOutput(io.MultiWriter(os.Stdout, f))
	}
}

// NewLogger creates a logger writing plain text to standard output.
func NewLogger(opts ...Option) *Logger {
	lr := logrus.New()
	lr.SetOutput(os.Stdout)
	lr.SetFormatter(&textFormatter{})
	// Level gating happens in the wrapper so SetDebug applies to loggers
	// created before the flag flips.
	lr.SetLevel(logrus.TraceLevel)
	l := &Logger{lr: lr}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Configure replaces the process-wide default logger.
func Configure(opts ...Option) {
	logger = NewLogger(opts...)
}

// Default returns the process-wide logger.
func Default() *Logger {
	return logger
}

// SetDebug enables or disables debug-level output for every logger.
func SetDebug(on bool) {
	debugEnabled.Store(on)
}

// DebugEnabled reports whether debug output is on.
func DebugEnabled() bool {
	return debugEnabled.Load()
}

// Entry carries accumulated fields toward a single log call.
type Entry struct {
	l      *Logger
	fields logrus.Fields
}

// With returns an entry on the logger carrying the given fields.
func (l *Logger) With(fields ...Field) *Entry {
	return (&Entry{l: l, fields: logrus.Fields{}}).With(fields...)
}

// WithContext is reserved for context-aware logging; it currently attaches
// nothing.
func (l *Logger) WithContext(_ context.Context) *Entry {
	return &Entry{l: l, fields: logrus.Fields{}}
}

// With adds fields, returning a new entry so chains do not alias.
func (e *Entry) With(fields ...Field) *Entry {
	merged := logrus.Fields{}
	for k, v := range e.fields {
		merged[k] = v
	}
	for _, f := range fields {
		merged[f.Key] = f.Value
	}
	return &Entry{l: e.l, fields: merged}
}

// emit writes one record. Every exported logging method calls emit directly
// so the call site is always three frames up.
func (l *Logger) emit(level logrus.Level, fields logrus.Fields, msg string) {
	if level == logrus.DebugLevel && !debugEnabled.Load() {
		return
	}
	entry := l.lr.WithField(callerField, callSite(3))
	if len(fields) > 0 {
		entry = entry.WithFields(fields)
	}
	entry.Log(level, msg)
}

func callSite(skip int) string {
	_, file, line, ok := runtime.Caller(skip)
	if !ok {
		return "unknown"
	}
	return fmt.Sprintf("%s:%d", filepath.Base(file), line)
}

// Debug logs at debug level when debug output is enabled.
func (l *Logger) Debug(args ...interface{}) {
	l.emit(logrus.DebugLevel, nil, fmt.Sprint(args...))
}

// Debugf logs a formatted message at debug level.
func (l *Logger) Debugf(format string, args ...interface{}) {
	l.emit(logrus.DebugLevel, nil, fmt.Sprintf(format, args...))
}

// Info logs at info level.
func (l *Logger) Info(args ...interface{}) {
	l.emit(logrus.InfoLevel, nil, fmt.Sprint(args...))
}

// Infof logs a formatted message at info level.
func (l *Logger) Infof(format string, args ...interface{}) {
	l.emit(logrus.InfoLevel, nil, fmt.Sprintf(format, args...))
}

// Warn logs at warning level.
func (l *Logger) Warn(args ...interface{}) {
	l.emit(logrus.WarnLevel, nil, fmt.Sprint(args...))
}

// Warnf logs a formatted message at warning level.
func (l *Logger) Warnf(format string, args ...interface{}) {
	l.emit(logrus.WarnLevel, nil, fmt.Sprintf(format, args...))
}

// Error logs at error level.
func (l *Logger) Error(args ...interface{}) {
	l.emit(logrus.ErrorLevel, nil, fmt.Sprint(args...))
}

// Errorf logs a formatted message at error level.
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.emit(logrus.ErrorLevel, nil, fmt.Sprintf(format, args...))
}

// Debug logs on the entry's fields.
func (e *Entry) Debug(args ...interface{}) {
	e.l.emit(logrus.DebugLevel, e.fields, fmt.Sprint(args...))
}

// Debugf logs a formatted message on the entry's fields.
func (e *Entry) Debugf(format string, args ...interface{}) {
	e.l.emit(logrus.DebugLevel, e.fields, fmt.Sprintf(format, args...))
}

// Info logs on the entry's fields.
func (e *Entry) Info(args ...interface{}) {
	e.l.emit(logrus.InfoLevel, e.fields, fmt.Sprint(args...))
}

// Infof logs a formatted message on the entry's fields.
func (e *Entry) Infof(format string, args ...interface{}) {
	e.l.emit(logrus.InfoLevel, e.fields, fmt.Sprintf(format, args...))
}

// Warn logs on the entry's fields.
func (e *Entry) Warn(args ...interface{}) {
	e.l.emit(logrus.WarnLevel, e.fields, fmt.Sprint(args...))
}

// Warnf logs a formatted message on the entry's fields.
func (e *Entry) Warnf(format string, args ...interface{}) {
	e.l.emit(logrus.WarnLevel, e.fields, fmt.Sprintf(format, args...))
}

// Error logs on the entry's fields.
func (e *Entry) Error(args ...interface{}) {
	e.l.emit(logrus.ErrorLevel, e.fields, fmt.Sprint(args...))
}

// Errorf logs a formatted message on the entry's fields.
func (e *Entry) Errorf(format string, args ...interface{}) {
	e.l.emit(logrus.ErrorLevel, e.fields, fmt.Sprintf(format, args...))
}

// Debug logs on the default logger.
func Debug(args ...interface{}) {
	logger.emit(logrus.DebugLevel, nil, fmt.Sprint(args...))
}

// Debugf logs a formatted message on the default logger.
func Debugf(format string, args ...interface{}) {
	logger.emit(logrus.DebugLevel, nil, fmt.Sprintf(format, args...))
}

// Info logs on the default logger.
func Info(args ...interface{}) {
	logger.emit(logrus.InfoLevel, nil, fmt.Sprint(args...))
}

// Infof logs a formatted message on the default logger.
func Infof(format string, args ...interface{}) {
	logger.emit(logrus.InfoLevel, nil, fmt.Sprintf(format, args...))
}

// Warn logs on the default logger.
func Warn(args ...interface{}) {
	logger.emit(logrus.WarnLevel, nil, fmt.Sprint(args...))
}

// Warnf logs a formatted message on the default logger.
func Warnf(format string, args ...interface{}) {
	logger.emit(logrus.WarnLevel, nil, fmt.Sprintf(format, args...))
}

// Error logs on the default logger.
func Error(args ...interface{}) {
	logger.emit(logrus.ErrorLevel, nil, fmt.Sprint(args...))
}

// Errorf logs a formatted message on the default logger.
func Errorf(format string, args ...interface{}) {
	logger.emit(logrus.ErrorLevel, nil, fmt.Sprintf(format, args...))
}

// With returns an entry on the default logger carrying fields.
func With(fields ...Field) *Entry {
	return logger.With(fields...)
}

// LogWithFields returns an entry on the default logger carrying fields.
func LogWithFields(fields ...Field) *Entry {
	return logger.With(fields...)
}

// LogWithError returns an entry annotated with the error's message, kind,
// and any path/param/executable detail the error carries. A nil error is
// recorded as error=<nil>.
func LogWithError(err error) *Entry {
	if err == nil {
		return logger.With(F("error", "<nil>"))
	}
	fields := []Field{
		F("error", err.Error()),
		F("error_kind", int(errors.KindOf(err))),
	}
	var fileErr *errors.FileError
	if errors.As(err, &fileErr) && fileErr.Path() != "" {
		fields = append(fields, F("path", fileErr.Path()))
	}
	var configErr *errors.ConfigError
	if errors.As(err, &configErr) && configErr.Param() != "" {
		fields = append(fields, F("param", configErr.Param()))
	}
	var launchErr *errors.LaunchError
	if errors.As(err, &launchErr) && launchErr.Executable() != "" {
		fields = append(fields, F("executable", launchErr.Executable()))
	}
	var storageErr *errors.StorageError
	if errors.As(err, &storageErr) && storageErr.Operation() != "" {
		fields = append(fields, F("operation", storageErr.Operation()))
	}
	return logger.With(fields...)
}

// LogError logs err at error level with the given message.
func LogError(err error, msg string) {
	LogWithError(err).Error(msg)
}

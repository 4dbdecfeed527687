package log

import (
	"fmt"
	"sync"
	"time"

	"github.com/tav/golly/process"
)

var bufpool = sync.Pool{
	New: func() interface{} {
		return &buffer{}
	},
}

type buffer struct {
	buf []byte
}

func (b *buffer) release() {
	b.buf = b.buf[:0]
	bufpool.Put(b)
}

type entry struct {
	fields    []Field
	level     Level
	parfields []Field
	text      string
	time      time.Time
}

// Logger encapsulates the state of a logger with custom fields.
type Logger struct {
	fields []Field
}

func (l *Logger) log(lvl Level, text string, fields []Field) {
	if minLevel > lvl {
		return
	}
	textLog(entry{fields, lvl, l.fields, text, time.Now().UTC()})
}

// Debug logs the given text and fields at DebugLevel.
func (l *Logger) Debug(text string, fields ...Field) {
	l.log(DebugLevel, text, fields)
}

// Debugf formats similarly to Printf and logs the resulting output at the
// DebugLevel.
func (l *Logger) Debugf(format string, args ...interface{}) {
	l.log(DebugLevel, fmt.Sprintf(format, args...), nil)
}

// Error logs the given text and fields at ErrorLevel.
func (l *Logger) Error(text string, fields ...Field) {
	l.log(ErrorLevel, text, fields)
}

// Errorf formats similarly to Printf and logs the resulting output at the
// ErrorLevel.
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.log(ErrorLevel, fmt.Sprintf(format, args...), nil)
}

// Fatal logs the given text and fields at FatalLevel and then exits.
func (l *Logger) Fatal(text string, fields ...Field) {
	l.log(FatalLevel, text, fields)
	process.Exit(1)
}

// Fatalf formats similarly to Printf, logs the resulting output at the
// FatalLevel and then exits.
func (l *Logger) Fatalf(format string, args ...interface{}) {
	l.log(FatalLevel, fmt.Sprintf(format, args...), nil)
	process.Exit(1)
}

// Info logs the given text and fields at InfoLevel.
func (l *Logger) Info(text string, fields ...Field) {
	l.log(InfoLevel, text, fields)
}

// Infof formats similarly to Printf and logs the resulting output at the
// InfoLevel.
func (l *Logger) Infof(format string, args ...interface{}) {
	l.log(InfoLevel, fmt.Sprintf(format, args...), nil)
}

// Warn logs the given text and fields at WarnLevel.
func (l *Logger) Warn(text string, fields ...Field) {
	l.log(WarnLevel, text, fields)
}

// Warnf formats similarly to Printf and logs the resulting output at the
// WarnLevel.
func (l *Logger) Warnf(format string, args ...interface{}) {
	l.log(WarnLevel, fmt.Sprintf(format, args...), nil)
}

// With returns a new logger that comes preset with the given fields.
func (l *Logger) With(fields ...Field) *Logger {
	if l.fields == nil {
		return &Logger{fields}
	}
	f := make([]Field, len(l.fields)+len(fields))
	copy(f, l.fields)
	copy(f[len(l.fields):], fields)
	return &Logger{f}
}

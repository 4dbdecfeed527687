package log

import (
	"fmt"
	"strconv"
	"strings"
)

// Logging levels.
const (
	DebugLevel Level = iota + 1
	InfoLevel
	WarnLevel
	ErrorLevel
	FatalLevel
)

const maxLevel = FatalLevel + 1

const (
	blue    = 34
	magenta = 35
	red     = 31
	yellow  = 33
)

var (
	minLevel     = ErrorLevel
	consoleLevel = ErrorLevel
	fileLevel    = maxLevel
)

var level2color = [...]string{
	"",
	color(yellow, "DEBUG"),
	color(blue, "INFO"),
	color(magenta, "WARN"),
	color(red, "ERROR"),
	color(red, "FATAL"),
}

// Level represents a logging level.
type Level int8

// MarshalYAML implements the YAML encoding interface.
func (l Level) MarshalYAML() (interface{}, error) {
	switch l {
	case 0:
		return "", nil
	case DebugLevel, InfoLevel, WarnLevel, ErrorLevel, FatalLevel:
		return strings.ToLower(l.String()), nil
	default:
		return nil, fmt.Errorf("log: unknown level: %d", l)
	}
}

func (l Level) String() string {
	switch l {
	case DebugLevel:
		return "DEBUG"
	case ErrorLevel:
		return "ERROR"
	case FatalLevel:
		return "FATAL"
	case InfoLevel:
		return "INFO"
	case WarnLevel:
		return "WARN"
	default:
		return "Level(" + strconv.FormatInt(int64(l), 10) + ")"
	}
}

// UnmarshalYAML implements the YAML decoding interface.
func (l *Level) UnmarshalYAML(unmarshal func(interface{}) error) error {
	raw := ""
	if err := unmarshal(&raw); err != nil {
		return err
	}
	switch strings.ToLower(raw) {
	case "":
		return nil
	case "debug":
		*l = DebugLevel
	case "error":
		*l = ErrorLevel
	case "fatal":
		*l = FatalLevel
	case "info":
		*l = InfoLevel
	case "warn", "warning":
		*l = WarnLevel
	default:
		return fmt.Errorf("log: unable to decode Level value: %q", raw)
	}
	return nil
}

func color(code int64, text string) string {
	return "\x1b[" + strconv.FormatInt(code, 10) + "m" + rpad(text) + "\x1b[0m"
}

func rpad(text string) string {
	for i := len(text); i < 8; i++ {
		text += " "
	}
	return text
}

func updateMinLevels() {
	minLevel = maxLevel
	if consoleLevel < minLevel {
		minLevel = consoleLevel
	}
	if fileLevel < minLevel {
		minLevel = fileLevel
	}
}

// AtDebug returns whether the current configuration will log at the DebugLevel.
func AtDebug() bool {
	return minLevel <= DebugLevel
}

// AtError returns whether the current configuration will log at the ErrorLevel.
func AtError() bool {
	return minLevel <= ErrorLevel
}

// AtInfo returns whether the current configuration will log at the InfoLevel.
func AtInfo() bool {
	return minLevel <= InfoLevel
}

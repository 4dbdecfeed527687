package log

import (
	"log"
	"math"
	"os"
	"strconv"
	"sync"
	"time"
	"unicode/utf8"
)

const (
	hex     = "0123456789abcdef"
	timefmt = "2006-01-02 15:04:05"
)

var (
	consoleMu sync.Mutex
	fileMu    sync.Mutex
	logFile   *os.File
)

func textLog(e entry) {
	b := bufpool.Get().(*buffer)
	defer b.release()
	b.buf = append(b.buf, '[')
	b.buf = e.time.AppendFormat(b.buf, timefmt)
	b.buf = append(b.buf, ']', ' ', ' ', ' ')
	b.buf = append(b.buf, level2color[e.level]...)
	b.buf = append(b.buf, e.text...)
	b.buf = append(b.buf, '\n')
	if len(e.parfields) > 0 || len(e.fields) > 0 {
		b.buf = append(b.buf, "                                  "...)
		writeTextFields(b, e.parfields)
		writeTextFields(b, e.fields)
		b.buf = append(b.buf, '\n')
	}
	if consoleLevel <= e.level {
		consoleMu.Lock()
		os.Stderr.Write(b.buf)
		consoleMu.Unlock()
	}
	fileMu.Lock()
	if logFile != nil && fileLevel <= e.level {
		logFile.Write(b.buf)
	}
	fileMu.Unlock()
}

func writeInt32s(b *buffer, val []int32) {
	last := len(val) - 1
	b.buf = append(b.buf, '[')
	for i, v := range val {
		b.buf = strconv.AppendInt(b.buf, int64(v), 10)
		if i != last {
			b.buf = append(b.buf, ',', ' ')
		}
	}
	b.buf = append(b.buf, ']')
}

// Adapted from the MIT-licensed zap.
func writeTextByte(b *buffer, v byte) bool {
	if v >= utf8.RuneSelf {
		return false
	}
	if 0x20 <= v && v != '\\' && v != '"' {
		b.buf = append(b.buf, v)
		return true
	}
	switch v {
	case '\\', '"':
		b.buf = append(b.buf, '\\', v)
	case '\n':
		b.buf = append(b.buf, '\\', 'n')
	case '\r':
		b.buf = append(b.buf, '\\', 'r')
	case '\t':
		b.buf = append(b.buf, '\\', 't')
	default:
		b.buf = append(b.buf, `\u00`...)
		b.buf = append(b.buf, hex[v>>4], hex[v&0x0f])
	}
	return true
}

func writeTextFields(b *buffer, fields []Field) {
	for _, field := range fields {
		if field.typ == TypeErr {
			b.buf = append(b.buf, "  \x1b[101m "...)
		} else {
			b.buf = append(b.buf, "  \x1b[100m "...)
		}
		b.buf = append(b.buf, field.key...)
		b.buf = append(b.buf, " \x1b[0m "...)
		switch field.typ {
		case TypeBool:
			b.buf = strconv.AppendBool(b.buf, field.ival == 1)
		case TypeBytes:
			for _, v := range field.xval.([]byte) {
				b.buf = append(b.buf, hex[v>>4], hex[v&0x0f])
			}
		case TypeDuration:
			b.buf = append(b.buf, time.Duration(field.ival).String()...)
		case TypeErr, TypeString:
			b.buf = append(b.buf, '"')
			writeTextString(b, field.sval)
			b.buf = append(b.buf, '"')
		case TypeFloat64:
			b.buf = strconv.AppendFloat(b.buf, math.Float64frombits(uint64(field.ival)), 'f', -1, 64)
		case TypeInt, TypeInt32, TypeInt64:
			b.buf = strconv.AppendInt(b.buf, field.ival, 10)
		case TypeInt32s:
			writeInt32s(b, field.xval.([]int32))
		case TypeStrings:
			val := field.xval.([]string)
			last := len(val) - 1
			b.buf = append(b.buf, '[')
			for i, v := range val {
				b.buf = append(b.buf, '"')
				writeTextString(b, v)
				b.buf = append(b.buf, '"')
				if i != last {
					b.buf = append(b.buf, ',', ' ')
				}
			}
			b.buf = append(b.buf, ']')
		case TypeUint8, TypeUint64:
			b.buf = strconv.AppendUint(b.buf, uint64(field.ival), 10)
		default:
			b.buf = append(b.buf, '?')
		}
	}
}

// Adapted from the MIT-licensed zap.
func writeTextString(b *buffer, s string) {
	for i := 0; i < len(s); {
		if writeTextByte(b, s[i]) {
			i++
			continue
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			b.buf = append(b.buf, `\ufffd`...)
			i++
			continue
		}
		b.buf = append(b.buf, s[i:i+size]...)
		i += size
	}
}

// ToConsole sets the log level of the console logger. By default only errors are
// written to the console.
func ToConsole(lvl Level) {
	log.SetFlags(0)
	log.SetOutput(&intercept{})
	log.SetPrefix("")
	consoleLevel = lvl
	updateMinLevels()
}

// ToFile starts logging at the given file path.
func ToFile(path string, lvl Level) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0644)
	if err != nil {
		return err
	}
	fileMu.Lock()
	if logFile != nil {
		logFile.Close()
	}
	logFile = f
	fileLevel = lvl
	fileMu.Unlock()
	updateMinLevels()
	return nil
}

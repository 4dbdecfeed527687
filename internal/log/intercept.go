package log

import (
	"time"
)

// intercept routes output from the standard library logger, e.g. from
// dependencies, into the text log at InfoLevel.
type intercept struct{}

func (i intercept) Write(p []byte) (n int, err error) {
	n = len(p)
	if n > 0 && p[n-1] == '\n' {
		p = p[:n-1]
	}
	textLog(entry{
		level: InfoLevel,
		text:  string(p),
		time:  time.Now().UTC(),
	})
	return n, nil
}

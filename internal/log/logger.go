// SPDX-License-Identifier: EPL-2.0

// Package log holds the process-wide diagnostic logger.
package log

import (
	"io"
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	mu     sync.RWMutex
	logger *logrus.Logger
)

// Init configures the shared logger. Unknown levels fall back to info.
func Init(level string) {
	InitWithOutput(level, os.Stderr)
}

// InitWithOutput is Init writing to w.
func InitWithOutput(level string, w io.Writer) {
	l := logrus.New()
	l.SetOutput(w)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
	})

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	l.SetLevel(lvl)

	mu.Lock()
	logger = l
	mu.Unlock()
}

// Logger returns the shared logger, or the logrus standard logger when Init
// was never called.
func Logger() logrus.FieldLogger {
	mu.RLock()
	defer mu.RUnlock()

	if logger == nil {
		return logrus.StandardLogger()
	}
	return logger
}

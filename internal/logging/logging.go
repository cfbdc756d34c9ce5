// Package logging provides the debug logger. Terminal output belongs to the
// pager and menus, so log records only ever go to a file, and only when
// SHADOWOPS_DEBUG is set.
package logging

import (
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/charmbracelet/log"
)

const (
	debugEnv     = "SHADOWOPS_DEBUG"
	debugLogName = "debug.log"
)

var (
	mu     sync.Mutex
	logger = discard()
	closer io.Closer
)

func discard() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}

// Enabled reports whether debug logging was requested through the environment.
func Enabled() bool {
	switch os.Getenv(debugEnv) {
	case "1", "true", "yes":
		return true
	}
	return false
}

// Init opens dir/debug.log for appending when debug logging is enabled. It is
// safe to call more than once; the last call wins.
func Init(dir string) error {
	if !Enabled() {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(filepath.Join(dir, debugLogName), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	SetOutput(f, log.DebugLevel)

	mu.Lock()
	closer = f
	mu.Unlock()
	return nil
}

// SetOutput routes log records to w at the given level.
func SetOutput(w io.Writer, level log.Level) {
	mu.Lock()
	defer mu.Unlock()
	if closer != nil {
		_ = closer.Close()
		closer = nil
	}
	logger = log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: true,
		Prefix:          "shadowops",
	})
}

// L returns the process logger.
func L() *log.Logger {
	mu.Lock()
	defer mu.Unlock()
	return logger
}

// Close flushes and closes the log file, if any.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	if closer != nil {
		_ = closer.Close()
		closer = nil
	}
	logger = discard()
}

// Package log provides the debug logger shared by lazycommit packages.
package log

import (
	"io"
	"log"
	"os"
	"sync"
)

// DebugLogger buffers debug output until a destination is chosen, then
// writes to a file, to an arbitrary writer (stderr for --debug) or discards.
// It implements io.Writer to be compatible with standard log.Logger.
type DebugLogger struct {
	mu      sync.Mutex
	out     io.Writer
	file    *os.File
	buffer  []byte
	discard bool
}

var (
	globalDebugLogger = &DebugLogger{}
	stdLogger         = log.New(globalDebugLogger, "", log.LstdFlags|log.Lmicroseconds)
)

// Write implements io.Writer.
func (l *DebugLogger) Write(p []byte) (n int, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.discard {
		return len(p), nil
	}

	if l.out != nil {
		n, err = l.out.Write(p)
		if l.file != nil {
			// ignoring sync errors as they are not critical for logging
			_ = l.file.Sync()
		}
		return n, err
	}

	// p might be reused by the caller
	b := make([]byte, len(p))
	copy(b, p)
	l.buffer = append(l.buffer, b...)
	return len(p), nil
}

// closeFileLocked closes a previously opened file. l.mu must be held.
func (l *DebugLogger) closeFileLocked() {
	if l.file != nil {
		_ = l.file.Close()
		l.file = nil
	}
	l.out = nil
}

// flushLocked writes buffered output to the current destination.
func (l *DebugLogger) flushLocked() {
	if len(l.buffer) > 0 && l.out != nil {
		_, _ = l.out.Write(l.buffer)
	}
	l.buffer = nil
}

// SetFile sets the debug log file path. Creates the file if it doesn't exist.
// If path is empty, discards all buffered logs and future logs.
func SetFile(path string) error {
	globalDebugLogger.mu.Lock()
	defer globalDebugLogger.mu.Unlock()

	globalDebugLogger.closeFileLocked()

	if path == "" {
		globalDebugLogger.discard = true
		globalDebugLogger.buffer = nil
		return nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600) //nolint:gosec
	if err != nil {
		globalDebugLogger.discard = true
		globalDebugLogger.buffer = nil
		return err
	}

	globalDebugLogger.file = f
	globalDebugLogger.out = f
	globalDebugLogger.discard = false
	globalDebugLogger.flushLocked()
	return nil
}

// SetWriter routes debug output to w, flushing anything buffered so far.
// A nil writer behaves like SetFile("").
func SetWriter(w io.Writer) {
	globalDebugLogger.mu.Lock()
	defer globalDebugLogger.mu.Unlock()

	globalDebugLogger.closeFileLocked()

	if w == nil {
		globalDebugLogger.discard = true
		globalDebugLogger.buffer = nil
		return
	}

	globalDebugLogger.out = w
	globalDebugLogger.discard = false
	globalDebugLogger.flushLocked()
}

// Printf writes a formatted debug message via the standard logger.
func Printf(format string, args ...any) {
	stdLogger.Printf(format, args...)
}

// Println writes a debug message via the standard logger.
func Println(v ...any) {
	stdLogger.Println(v...)
}

// Close closes the debug log file if open.
func Close() error {
	globalDebugLogger.mu.Lock()
	defer globalDebugLogger.mu.Unlock()

	if globalDebugLogger.file == nil {
		return nil
	}

	err := globalDebugLogger.file.Close()
	globalDebugLogger.file = nil
	globalDebugLogger.out = nil
	return err
}

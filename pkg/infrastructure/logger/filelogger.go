package logger

import (
	"bufio"
	"fmt"
	"os"
	"sync"
)

// FileLogger outputs log messages to a text file, one line per call,
// flushing after every write so a crash mid-session doesn't lose the tail.
type FileLogger struct {
	verbosity Verbosity
	file      *os.File
	writer    *bufio.Writer
	mu        sync.Mutex
}

// NewFileLogger creates a new FileLogger that writes to the given path.
func NewFileLogger(logFilePath string, verbosity Verbosity) (*FileLogger, error) {
	file, err := os.Create(logFilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to create log file: %w", err)
	}

	return &FileLogger{
		verbosity: verbosity,
		file:      file,
		writer:    bufio.NewWriter(file),
	}, nil
}

func (l *FileLogger) GetVerbosity() Verbosity {
	return l.verbosity
}

func (l *FileLogger) SetVerbosity(verbosity Verbosity) {
	l.verbosity = verbosity
}

func (l *FileLogger) LogInfo(message string) {
	if l.verbosity > VerbosityInfo {
		return
	}
	l.writeLine("<INFO> " + message)
}

func (l *FileLogger) LogWarning(message string) {
	if l.verbosity > VerbosityWarning {
		return
	}
	l.writeLine("<WARN> " + message)
}

func (l *FileLogger) LogError(message string) {
	l.writeLine("<ERROR> " + message)
}

func (l *FileLogger) writeLine(line string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.writer.WriteString(line + "\n")
	l.writer.Flush()
}

// Close flushes and closes the underlying file.
func (l *FileLogger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.writer.Flush(); err != nil {
		return fmt.Errorf("failed to flush log buffer: %w", err)
	}
	if err := l.file.Close(); err != nil {
		return fmt.Errorf("failed to close log file: %w", err)
	}
	return nil
}

var _ Logger = (*FileLogger)(nil)

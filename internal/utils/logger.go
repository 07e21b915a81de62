package utils

import (
	"fmt"
	"io"
	"os"

	"github.com/apex/log"
	"github.com/apex/log/handlers/logfmt"
)

// NewLogger returns a logfmt logger writing to every given output.
func NewLogger(level log.Level, debug bool, outputs ...io.Writer) *log.Logger {
	logger := &log.Logger{}

	if debug {
		logger.Level = log.DebugLevel
	} else {
		logger.Level = level
	}

	logger.Handler = logfmt.New(io.MultiWriter(outputs...))

	return logger
}

// NewFileLogger returns a logger writing to both stderr and the file at path. The
// file is appended to and must be closed by the caller.
func NewFileLogger(path string, debug bool) (*log.Logger, io.Closer, error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o640)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}

	return NewLogger(log.InfoLevel, debug, os.Stderr, f), f, nil
}

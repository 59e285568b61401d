// Package logfile provides the rotating debug trace file.
package logfile

import (
	"io"
	"log"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Path returns the path to the debug log file.
// If PORTIT_LOG_FILE is set, uses that path.
// Otherwise, uses ~/.portit/logs/portit.log
func Path() string {
	if customPath := os.Getenv("PORTIT_LOG_FILE"); customPath != "" {
		return customPath
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if we can't get home dir
		return "portit.log"
	}

	return filepath.Join(homeDir, ".portit", "logs", "portit.log")
}

// Logger returns a logger writing to the rotating debug log file
func Logger() *log.Logger {
	path := Path()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return log.New(io.Discard, "", 0)
	}

	return log.New(&lumberjack.Logger{
		Filename:   path,
		MaxSize:    5, // megabytes
		MaxBackups: 2,
	}, "portit ", log.LstdFlags)
}

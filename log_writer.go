package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

// logWriter implements io.Writer with custom timestamp format
type logWriter struct {
	writer io.Writer
}

func (w *logWriter) Write(p []byte) (n int, err error) {
	timestamp := time.Now().Format("2006-01-02 15:04:05")
	message := fmt.Sprintf("[%s] %s", timestamp, string(p))
	return w.writer.Write([]byte(message))
}

// setupLogging sends diagnostics to stderr and, when logFilePath is set,
// additionally to a rotating log file. The report itself never goes through
// this path; stdout stays clean for the Markdown output.
func setupLogging(logFilePath string) {
	var out io.Writer = os.Stderr

	if logFilePath != "" {
		fileLogger := &lumberjack.Logger{
			Filename:   logFilePath,
			MaxSize:    10, // megabytes
			MaxBackups: 3,  // keep last 3 files
			MaxAge:     0,  // don't delete by age
			Compress:   false,
		}
		out = io.MultiWriter(os.Stderr, fileLogger)
	}

	log.SetOutput(&logWriter{writer: out})
	log.SetFlags(0) // disable default flags since we handle timestamps
}

package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// New returns a JSON logger writing to w at the given level.
// An unparsable level falls back to info.
func New(w io.Writer, level string) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetFormatter(&logrus.JSONFormatter{})
	logLevel, err := logrus.ParseLevel(level)
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)
	return logger
}

// Default logs to stderr so stdout only carries the report, at the level
// named by LOG_LEVEL.
func Default() *logrus.Logger {
	return New(os.Stderr, os.Getenv("LOG_LEVEL"))
}

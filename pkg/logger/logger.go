package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Log is the process-wide logger. Level comes from LOG_LEVEL (default info).
var Log = New(os.Getenv("LOG_LEVEL"))

// New creates a logger with the specified log level
func New(level string) *logrus.Logger {
	l := logrus.New()

	logLevel, err := logrus.ParseLevel(level)
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	l.SetLevel(logLevel)

	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	l.SetOutput(os.Stdout)

	return l
}

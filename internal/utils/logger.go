package util

import (
	"io"

	"github.com/sirupsen/logrus"
)

// NewLogger builds a text logger writing to out. An unknown level falls back
// to warn and the returned error says so.
func NewLogger(out io.Writer, level string) (*logrus.Logger, error) {
	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
	})

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		logger.SetLevel(logrus.WarnLevel)
		return logger, err
	}
	logger.SetLevel(lvl)

	return logger, nil
}

// DiscardLogger returns a logger that drops everything, for tests.
func DiscardLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

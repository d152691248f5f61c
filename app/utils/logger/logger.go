// logger/logger.go
package logger

import (
	"os"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	Logger *logrus.Logger
	once   sync.Once
)

// GetLogger returns the singleton logger instance
func GetLogger() *logrus.Logger {
	once.Do(func() {
		Logger = logrus.New()
		Logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02 15:04:05",
		})
		Logger.SetOutput(os.Stdout)
		Logger.SetLevel(levelFromEnv(os.Getenv("LOG_LEVEL")))
	})
	return Logger
}

func levelFromEnv(value string) logrus.Level {
	if value == "" {
		return logrus.InfoLevel
	}
	level, err := logrus.ParseLevel(strings.TrimSpace(value))
	if err != nil {
		return logrus.InfoLevel
	}
	return level
}

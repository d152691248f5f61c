package logger

import (
	"testing"

	"github.com/sirupsen/logrus"
)

func TestLevelFromEnv(t *testing.T) {
	cases := map[string]logrus.Level{
		"":        logrus.InfoLevel,
		"debug":   logrus.DebugLevel,
		" warn ":  logrus.WarnLevel,
		"verbose": logrus.InfoLevel,
	}
	for input, expected := range cases {
		if got := levelFromEnv(input); got != expected {
			t.Fatalf("levelFromEnv(%q) = %s, expected %s", input, got, expected)
		}
	}
}

func TestGetLoggerIsSingleton(t *testing.T) {
	if GetLogger() != GetLogger() {
		t.Fatalf("expected the same logger instance")
	}
}

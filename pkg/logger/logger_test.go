package logger

import (
	"testing"

	"github.com/sirupsen/logrus"
)

func TestNewLogger(t *testing.T) {
	// Create a new logger without webhooks
	l := NewLogger("", "")
	if l == nil {
		t.Fatal("Expected logger to be created, got nil")
	}

	// Test that logger methods don't panic
	l.Info("Test info message", "TEST")
	l.Warn("Test warning message", "TEST")
	l.Debug("Test debug message", "TEST")
	l.System("Test system message", "TEST")
	l.Success("Test success message", "TEST")

	l.Close()
}

func TestLogLevelString(t *testing.T) {
	tests := []struct {
		level    LogLevel
		expected string
	}{
		{LevelCritical, "CRITICAL"},
		{LevelError, "ERROR"},
		{LevelWarn, "WARN"},
		{LevelSuccess, "SUCCESS"},
		{LevelInfo, "INFO"},
		{LevelDebug, "DEBUG"},
		{LevelSystem, "SYSTEM"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.level.String(); got != tt.expected {
				t.Errorf("LogLevel.String() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestLogrusLevelMapping(t *testing.T) {
	tests := []struct {
		level    LogLevel
		expected logrus.Level
	}{
		{LevelCritical, logrus.FatalLevel},
		{LevelError, logrus.ErrorLevel},
		{LevelWarn, logrus.WarnLevel},
		{LevelSuccess, logrus.InfoLevel},
		{LevelInfo, logrus.InfoLevel},
		{LevelDebug, logrus.DebugLevel},
		{LevelSystem, logrus.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level.String(), func(t *testing.T) {
			if got := tt.level.logrusLevel(); got != tt.expected {
				t.Errorf("logrusLevel() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestLogLevelColor(t *testing.T) {
	levels := []LogLevel{
		LevelCritical,
		LevelError,
		LevelWarn,
		LevelSuccess,
		LevelInfo,
		LevelDebug,
		LevelSystem,
	}

	seen := make(map[string]bool)
	for _, level := range levels {
		color := level.Color()
		if color == "" {
			t.Errorf("Color() for %v returned empty string", level)
		}
		seen[color] = true
	}

	if len(seen) != len(levels) {
		t.Errorf("expected %d distinct colors, got %d", len(levels), len(seen))
	}
}

package logger

import (
	"testing"

	"go.uber.org/zap"
)

func TestInitialize(t *testing.T) {
	tests := []struct {
		name       string
		jsonOutput bool
	}{
		{name: "JSON output mode", jsonOutput: true},
		{name: "Console output mode", jsonOutput: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Logger = nil
			JSONOutput = false

			if err := Initialize(tt.jsonOutput); err != nil {
				t.Fatalf("Initialize() error = %v", err)
			}
			if Logger == nil {
				t.Error("Initialize() did not set global Logger")
			}
			if JSONOutput != tt.jsonOutput {
				t.Errorf("Initialize() JSONOutput = %v, want %v", JSONOutput, tt.jsonOutput)
			}

			if Logger != nil {
				Logger.Sync()
				Logger = nil
			}
		})
	}
}

func TestCleanupWithNilLogger(t *testing.T) {
	Logger = nil
	defer func() {
		if r := recover(); r != nil {
			t.Errorf("Cleanup() panicked with nil logger: %v", r)
		}
	}()
	Cleanup()
}

// newTestLogger creates a logger for testing without modifying global state.
func newTestLogger(t *testing.T) *zap.SugaredLogger {
	t.Helper()

	config := zap.NewDevelopmentConfig()
	config.Level = zap.NewAtomicLevelAt(zap.InfoLevel)

	zapLogger, err := config.Build()
	if err != nil {
		t.Fatalf("Failed to create test logger: %v", err)
	}

	return zapLogger.Sugar()
}

func TestLoggingFunctions(t *testing.T) {
	Logger = newTestLogger(t)
	defer func() {
		if Logger != nil {
			Logger.Sync()
			Logger = nil
		}
	}()

	t.Run("with initialized logger", func(t *testing.T) {
		Infof("test %s", "format")
		Infow("test", "key", "value")
		Warnw("test", "key", "value")
		Errorw("test", "key", "value")
		Debugw("test", "key", "value")
	})

	t.Run("with nil logger (should not panic)", func(t *testing.T) {
		Logger = nil

		Infof("test %s", "format")
		Infow("test", "key", "value")
		Warnw("test", "key", "value")
		Errorw("test", "key", "value")
		Debugw("test", "key", "value")
	})
}

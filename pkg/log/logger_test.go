package log

import (
	"context"
	"testing"
)

func TestTestLoggerCapturesRecords(t *testing.T) {
	logger, buffer := NewTestLogger(LevelDebug)

	logger.Debug("estimation started", AlgorithmKey, "RANSAC", SamplesKey, 100)
	logger.Info("best hypothesis improved", InliersKey, 42)

	out := buffer.String()
	if !logger.Contains("estimation started") {
		t.Errorf("Expected captured debug record, got %q", out)
	}
	if !logger.Contains("algorithm=RANSAC") {
		t.Errorf("Expected structured field in output, got %q", out)
	}
	if !logger.Contains("estimation.inliers=42") {
		t.Errorf("Expected inlier count in output, got %q", out)
	}
}

func TestTestLoggerRespectsLevel(t *testing.T) {
	logger, _ := NewTestLogger(LevelWarn)

	logger.Debug("hidden")
	logger.Info("also hidden")
	logger.Warn("shown")

	if logger.Contains("hidden") {
		t.Error("Expected records below the minimum level to be dropped")
	}
	if !logger.Contains("shown") {
		t.Error("Expected warn-level record to be captured")
	}
}

func TestTestLoggerWith(t *testing.T) {
	logger, _ := NewTestLogger(LevelInfo)
	child := logger.With(ComponentKey, "robust.engine")

	child.Info("hello")

	if !logger.Contains("component=robust.engine") {
		t.Error("Expected pre-populated field on child records")
	}
}

func TestEnabled(t *testing.T) {
	logger, _ := NewTestLogger(LevelInfo)
	ctx := context.Background()

	if logger.Enabled(ctx, LevelDebug) {
		t.Error("Debug should be disabled at info level")
	}
	if !logger.Enabled(ctx, LevelError) {
		t.Error("Error should be enabled at info level")
	}
}

func TestToLogLevel(t *testing.T) {
	for name, want := range map[string]Level{
		"debug": LevelDebug,
		"info":  LevelInfo,
		"warn":  LevelWarn,
		"error": LevelError,
	} {
		if got := ToLogLevel(name); Level(got) != want {
			t.Errorf("ToLogLevel(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestToLogLevelPanicsOnUnknown(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Expected panic for unknown level name")
		}
	}()
	ToLogLevel("verbose")
}

func TestLevelString(t *testing.T) {
	tests := []struct {
		level Level
		want  string
	}{
		{LevelDebug, "DEBUG"},
		{LevelInfo, "INFO"},
		{LevelWarn, "WARN"},
		{LevelError, "ERROR"},
		{Level(42), "UNKNOWN"},
	}
	for _, tt := range tests {
		if got := tt.level.String(); got != tt.want {
			t.Errorf("Level(%d).String() = %q, want %q", tt.level, got, tt.want)
		}
	}
}

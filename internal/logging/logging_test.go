package logging

import (
	"testing"

	"go.uber.org/zap/zapcore"

	"trainerdex/internal/config"
)

func TestBuildConfigLevels(t *testing.T) {
	cases := []struct {
		level string
		want  zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"warn", zapcore.WarnLevel},
		{"", zapcore.InfoLevel},
		{"loud", zapcore.InfoLevel},
	}
	for _, tc := range cases {
		got := buildConfig(config.LoggingConfig{Level: tc.level}).Level.Level()
		if got != tc.want {
			t.Fatalf("level %q: got %v want %v", tc.level, got, tc.want)
		}
	}
}

func TestBuildConfigFormats(t *testing.T) {
	if enc := buildConfig(config.LoggingConfig{Format: "json"}).Encoding; enc != "json" {
		t.Fatalf("expected json encoding, got %q", enc)
	}
	console := buildConfig(config.LoggingConfig{Format: "console"})
	if console.Encoding != "console" || !console.DisableCaller {
		t.Fatalf("unexpected console config %+v", console)
	}
}

func TestNew(t *testing.T) {
	logger, err := New(config.LoggingConfig{Level: "error", Format: "json"})
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	if logger.Core().Enabled(zapcore.InfoLevel) {
		t.Fatalf("info should be disabled at error level")
	}
	_ = logger.Sync()
}

package logger

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestInit_Levels(t *testing.T) {
	t.Cleanup(func() { Logger = zap.NewNop() })

	tests := []struct {
		in   string
		want zapcore.Level
	}{
		{in: "", want: zapcore.InfoLevel},
		{in: " WARN ", want: zapcore.WarnLevel},
		{in: "error", want: zapcore.ErrorLevel},
		{in: "debug", want: zapcore.DebugLevel},
		{in: "verbose", want: zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if err := Init(tt.in); err != nil {
				t.Fatalf("init: %v", err)
			}
			if !Logger.Core().Enabled(tt.want) {
				t.Fatalf("expected %s enabled", tt.want)
			}
			if tt.want > zapcore.DebugLevel && Logger.Core().Enabled(tt.want-1) {
				t.Fatalf("expected %s disabled", tt.want-1)
			}
		})
	}
}

func TestNamed_UsesProcessLogger(t *testing.T) {
	t.Cleanup(func() { Logger = zap.NewNop() })
	if err := Init("error"); err != nil {
		t.Fatalf("init: %v", err)
	}
	if Named("consumer").Core().Enabled(zapcore.InfoLevel) {
		t.Fatalf("expected child to inherit error level")
	}
}

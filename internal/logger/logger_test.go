package logger

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		json      bool
		debug     bool
		wantDebug bool
	}{
		{name: "console info", wantDebug: false},
		{name: "console debug", debug: true, wantDebug: true},
		{name: "json info", json: true, wantDebug: false},
		{name: "json debug", json: true, debug: true, wantDebug: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			log, err := New(tt.json, tt.debug)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := log.Core().Enabled(zapcore.DebugLevel); got != tt.wantDebug {
				t.Fatalf("expected debug enabled %v, got %v", tt.wantDebug, got)
			}
			if !log.Core().Enabled(zapcore.InfoLevel) {
				t.Fatal("expected info level to be enabled")
			}
		})
	}
}

func TestEncoderConfig(t *testing.T) {
	t.Parallel()

	cfg := encoderConfig()
	if cfg.MessageKey != "msg" || cfg.LevelKey != "level" || cfg.TimeKey != "time" {
		t.Fatalf("unexpected keys: %+v", cfg)
	}
	if encoding(true) != "json" || encoding(false) != "console" {
		t.Fatal("unexpected encodings")
	}
}

package log

import (
	"context"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"INFO", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"fatal", zapcore.FatalLevel},
		{"bogus", zapcore.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseLevel(tt.in); got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestValidLevel(t *testing.T) {
	if !ValidLevel("dpanic") {
		t.Error("dpanic should be valid")
	}
	if ValidLevel("verbose") {
		t.Error("verbose should be invalid")
	}
}

func TestWithFieldsAccumulates(t *testing.T) {
	ctx := WithFields(context.Background(), "user_id", 1)
	ctx = WithFields(ctx, "task_id", 2)

	fields := fieldsFrom(ctx)
	if len(fields) != 4 {
		t.Fatalf("expected 4 field entries, got %d", len(fields))
	}
	if fields[0] != "user_id" || fields[2] != "task_id" {
		t.Errorf("unexpected field order: %v", fields)
	}
}

func TestInitDoesNotPanic(t *testing.T) {
	l := Init(ZapConfig{Level: "debug", Mode: ModeDevelopment, Encoding: EncodingConsole, ColorEnabled: true})
	l.Infof(WithFields(context.Background(), "k", "v"), "hello %s", "world")

	l = Init(ZapConfig{Level: "info", Mode: ModeProduction, Encoding: EncodingJSON})
	l.Debug(context.Background(), "dropped")
}

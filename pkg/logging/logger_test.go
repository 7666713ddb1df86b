package logging

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestNewWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf)

	logger.Info().Str("entry", "Sword of Gold").Msg("creating")

	out := buf.String()
	if !strings.Contains(out, `"entry":"Sword of Gold"`) {
		t.Errorf("Expected structured field in output, got: %s", out)
	}
	if !strings.Contains(out, `"message":"creating"`) {
		t.Errorf("Expected message in output, got: %s", out)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"off", zerolog.Disabled},
		{"not-a-level", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		if got := parseLevel(tt.input); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestFromContextFallsBackToDefault(t *testing.T) {
	if FromContext(context.Background()) != Default() {
		t.Error("Expected default logger for bare context")
	}
	if FromContext(nil) != Default() { //nolint:staticcheck // nil context is part of the contract
		t.Error("Expected default logger for nil context")
	}
}

func TestWithLoggerRoundTrip(t *testing.T) {
	tl := NewTestLogger(t)
	ctx := WithLogger(context.Background(), tl.Logger)

	Ctx(ctx).Info().Msg("hello from context")

	if !tl.Contains("hello from context") {
		t.Errorf("Expected captured message, got: %s", tl.Output())
	}
}

func TestWithEntryAddsField(t *testing.T) {
	tl := NewTestLogger(t)
	ctx := WithLogger(context.Background(), tl.Logger)
	ctx = WithEntry(ctx, "VIP Pass")

	Ctx(ctx).Info().Msg("updating")

	if !tl.Contains(`"entry":"VIP Pass"`) {
		t.Errorf("Expected entry field, got: %s", tl.Output())
	}
}

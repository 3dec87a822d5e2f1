package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rs/zerolog"
)

func logLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to decode log line %q: %v", buf.String(), err)
	}
	return entry
}

func TestInfoCarriesServiceName(t *testing.T) {
	t.Setenv("LOG_FORMAT", "json")

	var buf bytes.Buffer
	logg := New(Options{ServiceName: "storefront-test", Output: &buf})

	logg.Info(context.Background(), "server.started")

	entry := logLine(t, &buf)
	if entry["service"] != "storefront-test" {
		t.Fatalf("expected service field, got %v", entry)
	}
	if entry["message"] != "server.started" {
		t.Fatalf("unexpected message %v", entry["message"])
	}
}

func TestContextFieldsPropagate(t *testing.T) {
	t.Setenv("LOG_FORMAT", "json")

	var buf bytes.Buffer
	logg := New(Options{ServiceName: "storefront-test", Output: &buf})

	ctx := logg.WithRequestID(context.Background(), "req-1")
	ctx = logg.WithSessionID(ctx, "sess-1")
	ctx = logg.WithUserID(ctx, "user-1")
	logg.Info(ctx, "cart.updated")

	entry := logLine(t, &buf)
	if entry["request_id"] != "req-1" || entry["session_id"] != "sess-1" || entry["user_id"] != "user-1" {
		t.Fatalf("context fields missing: %v", entry)
	}
}

func TestErrorIncludesErrAndStack(t *testing.T) {
	t.Setenv("LOG_FORMAT", "json")

	var buf bytes.Buffer
	logg := New(Options{ServiceName: "storefront-test", Output: &buf})

	logg.Error(context.Background(), "checkout.failed", errors.New("boom"))

	entry := logLine(t, &buf)
	if entry["error"] != "boom" {
		t.Fatalf("expected error field, got %v", entry)
	}
	if entry["stack"] == nil || entry["stack"] == "" {
		t.Fatal("expected a stack trace on error logs")
	}
}

func TestLevelFiltersLowerEvents(t *testing.T) {
	t.Setenv("LOG_FORMAT", "json")

	var buf bytes.Buffer
	logg := New(Options{ServiceName: "storefront-test", Level: zerolog.WarnLevel, Output: &buf})

	logg.Info(context.Background(), "should-be-dropped")
	if buf.Len() != 0 {
		t.Fatalf("info below warn level must be dropped, got %q", buf.String())
	}

	logg.Warn(context.Background(), "should-be-kept")
	if buf.Len() == 0 {
		t.Fatal("warn events must be written")
	}
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	cases := []struct {
		input string
		want  zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"INFO", zerolog.InfoLevel},
		{" warn ", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"", zerolog.InfoLevel},
		{"bogus", zerolog.InfoLevel},
	}
	for _, tc := range cases {
		if got := ParseLevel(tc.input); got != tc.want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

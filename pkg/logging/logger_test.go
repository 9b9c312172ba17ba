package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
)

func TestInit_LevelAndRequestID(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "warn", Format: "json", Output: &buf})
	defer Init(DefaultConfig())

	Info().Msg("suppressed")
	if buf.Len() != 0 {
		t.Fatalf("info log emitted at warn level: %s", buf.String())
	}

	ctx := ContextWithRequestID(context.Background(), "abc12345")
	Ctx(ctx).Warn().Str("k", "v").Msg("hello")

	var entry map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("invalid json log line %q: %v", buf.String(), err)
	}
	if entry["request_id"] != "abc12345" || entry["message"] != "hello" || entry["k"] != "v" {
		t.Errorf("unexpected log entry: %v", entry)
	}
}

func TestRequestID(t *testing.T) {
	if RequestIDFromContext(context.Background()) != "" {
		t.Error("empty context should have no request id")
	}
	if id := NewRequestID(); len(id) != 8 {
		t.Errorf("NewRequestID() = %q, want 8 chars", id)
	}
}

package observability

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestNewLogger_JSONWithSession(t *testing.T) {
	var buf bytes.Buffer
	l := WithSession(newLogger("prod", &buf))
	l.Info().Str("room", "101").Msg("booking confirmed")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected JSON log line, got %q: %v", buf.String(), err)
	}
	if entry["message"] != "booking confirmed" || entry["room"] != "101" {
		t.Fatalf("unexpected entry: %v", entry)
	}
	if s, _ := entry["session"].(string); len(s) != 36 {
		t.Fatalf("expected uuid session, got %v", entry["session"])
	}
}

func TestNewLogger_DevConsole(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger("dev", &buf)
	l.Info().Msg("hello")
	if json.Valid(buf.Bytes()) {
		t.Fatalf("dev logger should not emit JSON: %q", buf.String())
	}
	if !bytes.Contains(buf.Bytes(), []byte("hello")) {
		t.Fatalf("missing message: %q", buf.String())
	}
}

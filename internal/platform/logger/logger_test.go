package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestLogger_TextFormat_SortedKeysAndLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Level: Info, Format: FormatText, App: "pet-boarding", Output: &buf}).(*StdLogger)
	l.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }

	l.Debug("hidden", nil)
	l.Info("hello", map[string]any{"zeta": 1, "alpha": "a"})

	out := strings.TrimSpace(buf.String())
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug line should be filtered, got %q", out)
	}
	want := "alpha=a app=pet-boarding level=info msg=hello ts=2026-01-02T03:04:05Z zeta=1"
	if out != want {
		t.Fatalf("unexpected line\n got: %s\nwant: %s", out, want)
	}
}

func TestLogger_JSONFormat_WithFieldsAndErrors(t *testing.T) {
	var buf bytes.Buffer
	base := New(Options{Level: Debug, Format: FormatJSON, Output: &buf})
	l := base.With(map[string]any{"request_id": "r-1"})

	l.Error("boom", map[string]any{"error": errors.New("db down")})

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("invalid json line: %v (%q)", err, buf.String())
	}
	if entry["request_id"] != "r-1" || entry["error"] != "db down" || entry["level"] != "error" {
		t.Fatalf("unexpected entry: %#v", entry)
	}
}

func TestFromContext_Fallback(t *testing.T) {
	fallback := Nop()
	if got := FromContext(context.Background(), fallback); got != fallback {
		t.Fatalf("expected fallback logger")
	}

	scoped := Nop().With(map[string]any{"k": "v"})
	ctx := WithContext(context.Background(), scoped)
	if got := FromContext(ctx, fallback); got != scoped {
		t.Fatalf("expected logger stored in context")
	}
}

func TestParseLevelAndFormat(t *testing.T) {
	if ParseLevel("WARNING") != Warn || ParseLevel("nope") != Info {
		t.Fatalf("unexpected level parsing")
	}
	if ParseFormat("JSON") != FormatJSON || ParseFormat("") != FormatText {
		t.Fatalf("unexpected format parsing")
	}
}

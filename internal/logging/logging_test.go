package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"WARNING": slog.LevelWarn,
		" error ": slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestSetupAddsStackToErrors(t *testing.T) {
	prev := slog.Default()
	defer slog.SetDefault(prev)

	var buf bytes.Buffer
	Setup(&buf, "WARN")

	slog.Info("dropped")
	if buf.Len() != 0 {
		t.Fatalf("Expected INFO to be filtered at WARN, got %s", buf.String())
	}

	slog.Error("boom", "land_cost", 1.5)
	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("Expected one JSON record, got %q: %v", buf.String(), err)
	}
	if rec["msg"] != "boom" {
		t.Errorf("Expected msg boom, got %v", rec["msg"])
	}
	if _, ok := rec["stacktrace"]; !ok {
		t.Error("Expected stacktrace on ERROR record")
	}
}

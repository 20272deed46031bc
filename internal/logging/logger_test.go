package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestNew_JSONLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: "warn", Format: "json"}, &buf)
	l.Info().Msg("hidden")
	l.Warn().Str("file", "test.json").Msg("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info should be filtered at warn level: %s", out)
	}
	if !strings.Contains(out, `"file":"test.json"`) || !strings.Contains(out, `"level":"warn"`) {
		t.Fatalf("expected structured warn line, got %s", out)
	}
}

func TestNew_UnknownLevelFallsBackToWarn(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: "loud", Format: "json"}, &buf)
	l.Info().Msg("x")
	if buf.Len() != 0 {
		t.Fatalf("expected warn fallback, got %s", buf.String())
	}
}

func TestWithComponent_Console(t *testing.T) {
	var buf bytes.Buffer
	l := WithComponent(New(Config{Level: "debug", Format: "console"}, &buf), "validator")
	l.Debug().Msg("hello")
	out := buf.String()
	if !strings.Contains(out, "component=validator") || !strings.Contains(out, "hello") {
		t.Fatalf("unexpected console output: %q", out)
	}
}

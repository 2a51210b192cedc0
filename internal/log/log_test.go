package log

import (
	"bytes"
	"strings"
	"testing"
)

// Not parallel: level and output are package globals.
func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(nil)
	prev := GetLevel()
	defer SetLevel(prev)

	SetLevel(LevelWarn)
	Debug("hidden %d", 1)
	Info("hidden %d", 2)
	Warn("shown %d", 3)
	Error("shown %d", 4)

	got := buf.String()
	if strings.Contains(got, "hidden") {
		t.Errorf("debug/info leaked at warn level: %q", got)
	}
	if !strings.Contains(got, "[WARN] shown 3") || !strings.Contains(got, "[ERROR] shown 4") {
		t.Errorf("missing warn/error lines: %q", got)
	}

	buf.Reset()
	SetLevel(LevelDebug)
	Debug("now %s", "visible")
	if !strings.Contains(buf.String(), "[DEBUG] now visible") {
		t.Errorf("debug not emitted at debug level: %q", buf.String())
	}
}

func TestErrorAlwaysEmitted(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(nil)
	prev := GetLevel()
	defer SetLevel(prev)

	SetLevel(LevelError + 4)
	Error("boom")
	if !strings.Contains(buf.String(), "[ERROR] boom") {
		t.Errorf("error suppressed: %q", buf.String())
	}
}

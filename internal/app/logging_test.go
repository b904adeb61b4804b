package app

import (
	"bytes"
	"strings"
	"testing"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want LogLevel
	}{
		{"debug", LogLevelDebug},
		{"DEBUG", LogLevelDebug},
		{"info", LogLevelInfo},
		{"warn", LogLevelWarn},
		{"warning", LogLevelWarn},
		{"error", LogLevelError},
		{"nonsense", LogLevelInfo},
		{"", LogLevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLogLevel(tt.in); got != tt.want {
			t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLogLevelString(t *testing.T) {
	if LogLevelDebug.String() != "DEBUG" {
		t.Errorf("got %s", LogLevelDebug)
	}
	if LogLevelError.String() != "ERROR" {
		t.Errorf("got %s", LogLevelError)
	}
	if LogLevel(99).String() != "UNKNOWN" {
		t.Errorf("got %s", LogLevel(99))
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(LogLevelWarn, &buf)

	l.Debug("hidden debug")
	l.Info("hidden info")
	l.Warn("visible warn")
	l.Error("visible error")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("messages below the level leaked: %s", out)
	}
	if !strings.Contains(out, "visible warn") || !strings.Contains(out, "visible error") {
		t.Errorf("expected warn and error lines, got: %s", out)
	}
}

func TestLogger_SetLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(LogLevelError, &buf)

	l.Info("before")
	l.SetLevel(LogLevelDebug)
	l.Debug("after")

	out := buf.String()
	if strings.Contains(out, "before") {
		t.Error("info logged while level was error")
	}
	if !strings.Contains(out, "after") {
		t.Error("debug not logged after lowering the level")
	}
}

func TestLogger_Formatting(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(LogLevelInfo, &buf)

	l.Info("count=%d name=%s", 3, "roads")

	out := buf.String()
	if !strings.Contains(out, "count=3 name=roads") {
		t.Errorf("printf args not applied: %s", out)
	}
	if !strings.Contains(out, "[INFO] mapyard:") {
		t.Errorf("expected level and prefix in line: %s", out)
	}
}

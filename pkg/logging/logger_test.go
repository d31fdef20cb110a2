package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected LogLevel
		wantErr  bool
	}{
		{"debug", LevelDebug, false},
		{"INFO", LevelInfo, false},
		{"", LevelInfo, false},
		{"warning", LevelWarn, false},
		{"Error", LevelError, false},
		{"verbose", LevelInfo, true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			level, err := ParseLevel(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Expected error %v, got %v", tt.wantErr, err)
			}
			if level != tt.expected {
				t.Errorf("Expected %s, got %s", tt.expected, level)
			}
		})
	}
}

func TestInitWithWriter(t *testing.T) {
	defer Close()
	_ = Close()

	var buf bytes.Buffer
	if err := InitWithWriter(&buf, Config{Level: LevelInfo, Format: "text"}); err != nil {
		t.Fatalf("InitWithWriter failed: %v", err)
	}
	if err := InitWithWriter(&buf, Config{}); err == nil {
		t.Error("Expected error initializing twice")
	}

	WithLibrary("Sales").Info("pass finished", "statements", 3)
	Debug("hidden")

	out := buf.String()
	for _, want := range []string{"library=Sales", "statements=3", "pass finished"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected log to contain %q, got %q", want, out)
		}
	}
	if strings.Contains(out, "hidden") {
		t.Errorf("Expected debug message to be filtered, got %q", out)
	}
}

func TestJSONFormat(t *testing.T) {
	defer Close()
	_ = Close()

	var buf bytes.Buffer
	if err := InitWithWriter(&buf, Config{Level: LevelDebug, Format: "json"}); err != nil {
		t.Fatalf("InitWithWriter failed: %v", err)
	}
	WithComponent("emission").Debug("emitting")

	if !strings.Contains(buf.String(), `"component":"emission"`) {
		t.Errorf("Expected JSON component attribute, got %q", buf.String())
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	if err := Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if err := Close(); err != nil {
		t.Errorf("Expected second Close to succeed, got %v", err)
	}
	if GetLogger() == nil {
		t.Error("Expected GetLogger to fall back to the default logger")
	}
	_ = Close()
}

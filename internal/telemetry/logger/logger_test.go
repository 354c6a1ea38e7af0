package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestNew_Formats(t *testing.T) {
	tests := []struct {
		name     string
		format   string
		wantJSON bool
	}{
		{"json", "json", true},
		{"json upper", "JSON", true},
		{"text", "text", false},
		{"empty defaults to text", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			l := New(Config{Level: "info", Format: tt.format, Output: &buf})
			l.Info("hello", "component", "test")

			var entry map[string]any
			isJSON := json.Unmarshal(buf.Bytes(), &entry) == nil
			if isJSON != tt.wantJSON {
				t.Errorf("output %q: json = %v, want %v", buf.String(), isJSON, tt.wantJSON)
			}
		})
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: "warn", Format: "json", Output: &buf})

	l.Debug("debug message")
	l.Info("info message")
	if buf.Len() > 0 {
		t.Error("Debug/Info messages should be filtered when level is warn")
	}

	l.Warn("warn message")
	if buf.Len() == 0 {
		t.Error("Warn message should be logged")
	}
}

func TestLogger_With(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: "info", Format: "json", Output: &buf})

	l.With("operation", "tags.list").Info("request done")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Failed to parse JSON log: %v", err)
	}
	if entry["operation"] != "tags.list" {
		t.Errorf("operation = %v, want tags.list", entry["operation"])
	}
}

func TestSetLevel(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"debug", "debug"},
		{"INFO", "info"},
		{"warning", "warn"},
		{"error", "error"},
		{"bogus", "info"},
		{"", "info"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			SetLevel(tt.input)
			if got := GetLevel(); got != tt.want {
				t.Errorf("SetLevel(%q); GetLevel() = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestDiscard(t *testing.T) {
	l := Discard()
	l.Error("dropped")
	l.With("k", "v").Info("dropped too")
}

func TestDefault(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: "debug", Format: "text", Output: &buf})
	prev := Default()
	SetDefault(l)
	defer SetDefault(prev)

	Default().Debug("via default")
	if !strings.Contains(buf.String(), "via default") {
		t.Errorf("Default() did not use the installed logger: %q", buf.String())
	}
}

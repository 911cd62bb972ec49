package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewToJSON(t *testing.T) {
	var buf bytes.Buffer
	l, err := NewTo(&buf, "info", "json")
	if err != nil {
		t.Fatalf("NewTo: %v", err)
	}

	l.Debug("hidden")
	l.Info("processed", zap.String("file", "a.csv"), zap.String("channel", "Fp1"))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1: %q", len(lines), buf.String())
	}

	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("not JSON: %v", err)
	}
	if entry["msg"] != "processed" || entry["file"] != "a.csv" || entry["channel"] != "Fp1" {
		t.Fatalf("unexpected entry %v", entry)
	}
}

func TestNewToConsole(t *testing.T) {
	var buf bytes.Buffer
	l, err := NewTo(&buf, "debug", "console")
	if err != nil {
		t.Fatalf("NewTo: %v", err)
	}
	l.Debug("visible")
	if !strings.Contains(buf.String(), "DEBUG") || !strings.Contains(buf.String(), "visible") {
		t.Fatalf("unexpected console output %q", buf.String())
	}
}

func TestNewRejectsBadSettings(t *testing.T) {
	if _, err := New("loud", "json"); err == nil {
		t.Fatal("expected error for unknown level")
	}
	if _, err := New("info", "xml"); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]zapcore.Level{
		"":      zapcore.InfoLevel,
		"DEBUG": zapcore.DebugLevel,
		" warn": zapcore.WarnLevel,
		"error": zapcore.ErrorLevel,
	}
	for in, want := range tests {
		got, err := ParseLevel(in)
		if err != nil || got != want {
			t.Fatalf("ParseLevel(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
}

func TestVerbosityLevel(t *testing.T) {
	if got := VerbosityLevel("warn", 0); got != "warn" {
		t.Fatalf("got %q want warn", got)
	}
	if got := VerbosityLevel("warn", 2); got != "debug" {
		t.Fatalf("got %q want debug", got)
	}
}

func TestZapProgress(t *testing.T) {
	core, obs := observer.New(zapcore.InfoLevel)
	p := NewProgress(zap.New(core))

	p.OnProgress(1, 4)
	p.OnMessage("skipped a.csv/O2: missing column")

	entries := obs.All()
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["done"] != int64(1) || fields["total"] != int64(4) || fields["percent"] != 25.0 {
		t.Fatalf("unexpected progress fields %v", fields)
	}
	if entries[1].Message != "skipped a.csv/O2: missing column" {
		t.Fatalf("unexpected message %q", entries[1].Message)
	}
}

func TestNewProgressNilLogger(t *testing.T) {
	p := NewProgress(nil)
	p.OnProgress(0, 0)
	p.OnMessage("ok")
}

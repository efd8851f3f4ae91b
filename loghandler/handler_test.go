package loghandler

import (
	"bytes"
	"log/slog"
	"regexp"
	"strings"
	"testing"
)

var stamp = regexp.MustCompile(`^\d{4}/\d{2}/\d{2} \d{2}:\d{2}:\d{2} `)

func TestCompactFormat(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(NewCompactHandler(&buf, slog.LevelInfo))
	log.Info("run started", "tag", "lobby", "run", "abc", "seed", 42)

	line := buf.String()
	if !stamp.MatchString(line) {
		t.Fatalf("expected a timestamp prefix, got %q", line)
	}
	if got := stamp.ReplaceAllString(line, ""); got != "[lobby] run started run=abc seed=42\n" {
		t.Errorf("unexpected line %q", got)
	}
}

func TestLevelFilterAndLabel(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(NewCompactHandler(&buf, ParseLevel("warn")))
	log.Info("hidden")
	log.Warn("shown", "tag", "config")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("expected info records filtered at warn level")
	}
	if !strings.Contains(out, "WARN [config] shown") {
		t.Errorf("expected the level label before the tag, got %q", out)
	}
}

func TestWithAttrsAndGroup(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(NewCompactHandler(&buf, slog.LevelDebug)).With("tag", "ws", "client", 7)
	log.WithGroup("msg").Debug("received", "type", "move")

	got := stamp.ReplaceAllString(buf.String(), "")
	if got != "[ws] received client=7 msg.type=move\n" {
		t.Errorf("unexpected line %q", got)
	}
}

func TestParseLevel(t *testing.T) {
	if ParseLevel("debug") != slog.LevelDebug || ParseLevel("ERROR") != slog.LevelError {
		t.Error("expected known levels parsed")
	}
	if ParseLevel("loud") != slog.LevelInfo {
		t.Error("expected unknown levels to mean info")
	}
}

package logging

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestConsoleHandlerFormat(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "info", Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	logger = NewComponentLogger(logger, "processor")
	logger.Info("video processed", slog.String(FieldVideoID, "dQw4w9WgXcQ"), slog.Int("blocks", 7))

	line := buf.String()
	if !strings.Contains(line, " INFO processor: video processed") {
		t.Errorf("unexpected line: %q", line)
	}
	if !strings.Contains(line, "video_id=dQw4w9WgXcQ") || !strings.Contains(line, "blocks=7") {
		t.Errorf("attributes missing: %q", line)
	}
	if strings.Contains(line, "component=") {
		t.Errorf("component should be a prefix, not an attribute: %q", line)
	}
}

func TestConsoleHandlerQuotesValues(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	logger.Warn("fetch failed", Error(errors.New("no subtitles found")))
	if !strings.Contains(buf.String(), `error="no subtitles found"`) {
		t.Errorf("error value not quoted: %q", buf.String())
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "warn", Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	logger.Info("hidden")
	logger.Warn("visible")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info line leaked through warn level: %q", out)
	}
	if !strings.Contains(out, "visible") {
		t.Errorf("warn line missing: %q", out)
	}
}

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "debug", Format: "json", Writer: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	logger.Debug("starting", slog.String(FieldVideoID, "abc123def45"))
	out := buf.String()
	for _, want := range []string{`"level":"debug"`, `"msg":"starting"`, `"video_id":"abc123def45"`} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in %q", want, out)
		}
	}
}

func TestUnsupportedFormat(t *testing.T) {
	if _, err := New(Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestNopLoggerDiscards(t *testing.T) {
	logger := NewNop()
	logger.Error("should not panic", Error(nil))
}

func TestGroupedAttrsFlatten(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	logger.Info("done", slog.Group("timing", slog.Int("chunks", 12)))
	if !strings.Contains(buf.String(), "timing.chunks=12") {
		t.Errorf("group not flattened: %q", buf.String())
	}
}

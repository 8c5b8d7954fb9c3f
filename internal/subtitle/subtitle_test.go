package subtitle_test

import (
	"strings"
	"testing"

	"tubenotes/internal/subtitle"
)

func TestCueEndDefaultsDuration(t *testing.T) {
	cue := subtitle.Cue{Start: 10}
	if got := cue.End(); got != 15 {
		t.Fatalf("End() = %v, want 15", got)
	}
	cue.Duration = 2.5
	if got := cue.End(); got != 12.5 {
		t.Fatalf("End() = %v, want 12.5", got)
	}
}

func TestVideoEnd(t *testing.T) {
	if got := subtitle.VideoEnd(nil); got != 0 {
		t.Fatalf("VideoEnd(nil) = %v, want 0", got)
	}
	cues := []subtitle.Cue{
		{Start: 0, Duration: 5, Text: "a"},
		{Start: 90, Duration: 4, Text: "b"},
	}
	if got := subtitle.VideoEnd(cues); got != 94 {
		t.Fatalf("VideoEnd = %v, want 94", got)
	}
}

func TestJoinText(t *testing.T) {
	cues := []subtitle.Cue{
		{Text: " Hello "},
		{Text: ""},
		{Text: "world"},
	}
	if got := subtitle.JoinText(cues); got != "Hello world" {
		t.Fatalf("JoinText = %q", got)
	}
}

func TestFormatTranscript(t *testing.T) {
	if got := subtitle.FormatTranscript(nil); got != "No subtitles available." {
		t.Fatalf("empty transcript rendering = %q", got)
	}
	cues := []subtitle.Cue{
		{Start: 0, Duration: 5, Text: "Hello"},
		{Start: 65, Duration: 5, Text: "world"},
	}
	got := subtitle.FormatTranscript(cues)
	if !strings.Contains(got, "[00:00:00] Hello") || !strings.Contains(got, "[00:01:05] world") {
		t.Fatalf("unexpected rendering:\n%s", got)
	}
}

func TestParseJSON3(t *testing.T) {
	payload := `{
		"wireMagic": "pb3",
		"events": [
			{"tStartMs": 0, "dDurationMs": 5000, "segs": [{"utf8": "Hello "}, {"utf8": "there"}]},
			{"tStartMs": 1000, "segs": [{"utf8": "\n"}]},
			{"tStartMs": 5200, "dDurationMs": 4800, "aAppend": 1, "segs": [{"utf8": "friend"}]},
			{"tStartMs": 20000, "dDurationMs": 3000, "segs": [{"utf8": "new topic"}]}
		]
	}`
	cues, err := subtitle.ParseJSON3([]byte(payload))
	if err != nil {
		t.Fatalf("ParseJSON3: %v", err)
	}
	if len(cues) != 2 {
		t.Fatalf("expected 2 cues, got %d: %#v", len(cues), cues)
	}
	if cues[0].Text != "Hello there friend" {
		t.Errorf("append event not folded: %q", cues[0].Text)
	}
	if cues[0].Start != 0 || cues[0].Duration != 5 {
		t.Errorf("unexpected timing: %+v", cues[0])
	}
	if cues[1].Start != 20 || cues[1].Text != "new topic" {
		t.Errorf("unexpected second cue: %+v", cues[1])
	}
}

func TestParseJSON3MissingDurationDefaults(t *testing.T) {
	payload := `{"events": [{"tStartMs": 2000, "segs": [{"utf8": "hi"}]}]}`
	cues, err := subtitle.ParseJSON3([]byte(payload))
	if err != nil {
		t.Fatalf("ParseJSON3: %v", err)
	}
	if len(cues) != 1 || cues[0].Duration != subtitle.DefaultCueDuration {
		t.Fatalf("expected default duration, got %#v", cues)
	}
}

func TestParseJSON3Errors(t *testing.T) {
	if _, err := subtitle.ParseJSON3(nil); err == nil {
		t.Fatal("expected error for empty input")
	}
	if _, err := subtitle.ParseJSON3([]byte("{broken")); err == nil {
		t.Fatal("expected error for invalid json")
	}
}

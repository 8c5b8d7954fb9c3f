package translate

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"tubenotes/internal/subtitle"
)

type fakeCompleter struct {
	jsonReplies []string
	jsonErr     error
	plainReply  string
	plainErr    error
	jsonCalls   int
	plainCalls  int
}

func (f *fakeCompleter) Complete(_ context.Context, _, _ string) (string, error) {
	f.plainCalls++
	return f.plainReply, f.plainErr
}

func (f *fakeCompleter) CompleteJSON(_ context.Context, _, _ string) (string, error) {
	f.jsonCalls++
	if f.jsonErr != nil {
		return "", f.jsonErr
	}
	if len(f.jsonReplies) == 0 {
		return "[]", nil
	}
	reply := f.jsonReplies[0]
	f.jsonReplies = f.jsonReplies[1:]
	return reply, nil
}

func sampleCues(n int) []subtitle.Cue {
	cues := make([]subtitle.Cue, n)
	for i := range cues {
		cues[i] = subtitle.Cue{Start: float64(i * 5), Duration: 5, Text: fmt.Sprintf("line %d", i)}
	}
	return cues
}

func TestLanguages(t *testing.T) {
	languages := Languages()
	if len(languages) != 8 {
		t.Fatalf("expected 8 languages, got %d", len(languages))
	}
	if languages[0].Code != "en" || languages[0].Name != "English" {
		t.Errorf("unexpected first language: %+v", languages[0])
	}
	for _, lang := range languages {
		if !Supported(lang.Code) {
			t.Errorf("listed language %q not supported", lang.Code)
		}
	}
}

func TestNormalize(t *testing.T) {
	if got := Normalize("en-US"); got != "en" {
		t.Errorf("Normalize(en-US) = %q", got)
	}
	if got := Normalize(" RU "); got != "ru" {
		t.Errorf("Normalize(RU) = %q", got)
	}
}

func TestSupported(t *testing.T) {
	if !Supported("ja") || !Supported("en-GB") {
		t.Error("expected ja and en-GB to be supported")
	}
	if Supported("tlh") {
		t.Error("did not expect klingon support")
	}
}

func TestTranslateSameLanguageShortCircuits(t *testing.T) {
	completer := &fakeCompleter{}
	svc := NewService(completer, 8)
	cues := sampleCues(3)

	translated, err := svc.Translate(context.Background(), cues, "en-US", "en")
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	if completer.jsonCalls != 0 || completer.plainCalls != 0 {
		t.Error("same-language translation must not call the model")
	}
	for i, cue := range translated {
		if cue.Translated != cues[i].Text {
			t.Errorf("cue %d translated = %q, want original", i, cue.Translated)
		}
	}
}

func TestTranslateUnsupportedTarget(t *testing.T) {
	svc := NewService(&fakeCompleter{}, 8)
	if _, err := svc.Translate(context.Background(), sampleCues(1), "en", "tlh"); err == nil {
		t.Fatal("expected error for unsupported target")
	}
}

func TestTranslateBatches(t *testing.T) {
	completer := &fakeCompleter{jsonReplies: []string{
		`["uno 0","uno 1","uno 2"]`,
		`["uno 3","uno 4"]`,
	}}
	svc := NewService(completer, 3)

	translated, err := svc.Translate(context.Background(), sampleCues(5), "en", "es")
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	if completer.jsonCalls != 2 {
		t.Errorf("expected 2 batch calls, got %d", completer.jsonCalls)
	}
	if len(translated) != 5 {
		t.Fatalf("expected 5 cues, got %d", len(translated))
	}
	if translated[3].Translated != "uno 3" {
		t.Errorf("cue 3 translated = %q", translated[3].Translated)
	}
	if translated[3].Start != 15 {
		t.Errorf("cue timing lost: %v", translated[3].Start)
	}
}

func TestTranslateBatchFailureFallsBackPerCue(t *testing.T) {
	completer := &fakeCompleter{
		jsonErr:    errors.New("boom"),
		plainReply: "einzeln",
	}
	svc := NewService(completer, 8)

	translated, err := svc.Translate(context.Background(), sampleCues(2), "en", "de")
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	if completer.plainCalls != 2 {
		t.Errorf("expected 2 per-cue calls, got %d", completer.plainCalls)
	}
	for i, cue := range translated {
		if cue.Translated != "einzeln" {
			t.Errorf("cue %d translated = %q", i, cue.Translated)
		}
	}
}

func TestTranslateCountMismatchFallsBack(t *testing.T) {
	completer := &fakeCompleter{
		jsonReplies: []string{`["only one"]`},
		plainReply:  "each",
	}
	svc := NewService(completer, 8)

	translated, err := svc.Translate(context.Background(), sampleCues(2), "en", "fr")
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	if translated[0].Translated != "each" || translated[1].Translated != "each" {
		t.Errorf("expected per-cue fallback, got %+v", translated)
	}
}

func TestTranslateMarksFailedCues(t *testing.T) {
	completer := &fakeCompleter{
		jsonErr:  errors.New("boom"),
		plainErr: errors.New("still down"),
	}
	svc := NewService(completer, 8)

	translated, err := svc.Translate(context.Background(), sampleCues(1), "en", "ru")
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	if translated[0].Translated != ErrorMarker {
		t.Errorf("expected error marker, got %q", translated[0].Translated)
	}
}

func TestFormatBilingual(t *testing.T) {
	cues := []TranslatedCue{
		{Cue: subtitle.Cue{Start: 65, Text: "hello"}, Translated: "hola"},
	}
	formatted := FormatBilingual(cues)
	for _, want := range []string{"[00:01:05]", "**Original:** hello", "**Translated:** hola"} {
		if !strings.Contains(formatted, want) {
			t.Errorf("missing %q in:\n%s", want, formatted)
		}
	}
	if FormatBilingual(nil) != "No subtitles available." {
		t.Error("unexpected empty formatting")
	}
}

package translate

import (
	"context"
	"fmt"
	"strings"

	"tubenotes/internal/llm"
	"tubenotes/internal/subtitle"
	"tubenotes/internal/timeutil"
)

const (
	defaultBatchSize = 8

	// ErrorMarker replaces a cue whose translation failed after retries.
	ErrorMarker = "[Translation error]"
)

const systemPrompt = `You are a professional subtitle translator. Translate each subtitle line from %s to %s.
Preserve the meaning and register of the original. Reply with a JSON array of translated strings, one per input line, in the same order. Reply with JSON only.`

// Completer issues chat completions. Batch translation uses the JSON
// variant; the per-cue fallback uses plain completions.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
	CompleteJSON(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// TranslatedCue pairs a cue with its translated text.
type TranslatedCue struct {
	subtitle.Cue
	Translated string
}

// Service translates subtitle cues.
type Service struct {
	completer Completer
	batchSize int
}

// NewService constructs a translation service. batchSize <= 0 falls back
// to the default of eight cues per request.
func NewService(completer Completer, batchSize int) *Service {
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	return &Service{completer: completer, batchSize: batchSize}
}

// Translate renders cues from the source to the target language. Matching
// languages short-circuit to a copy. Batch failures retry cue by cue, and
// a cue that still fails carries the error marker instead of text.
func (s *Service) Translate(ctx context.Context, cues []subtitle.Cue, sourceLang, targetLang string) ([]TranslatedCue, error) {
	source := Normalize(sourceLang)
	target := Normalize(targetLang)
	if !Supported(target) {
		return nil, fmt.Errorf("translate: unsupported target language %q", targetLang)
	}

	if source == target {
		translated := make([]TranslatedCue, len(cues))
		for i, cue := range cues {
			translated[i] = TranslatedCue{Cue: cue, Translated: cue.Text}
		}
		return translated, nil
	}

	sourceName := DisplayName(source)
	targetName := DisplayName(target)
	system := fmt.Sprintf(systemPrompt, sourceName, targetName)

	translated := make([]TranslatedCue, 0, len(cues))
	for start := 0; start < len(cues); start += s.batchSize {
		end := start + s.batchSize
		if end > len(cues) {
			end = len(cues)
		}
		batch := cues[start:end]

		texts, err := s.translateBatch(ctx, system, batch)
		if err != nil {
			texts = s.translateOneByOne(ctx, system, batch)
		}
		for i, cue := range batch {
			translated = append(translated, TranslatedCue{Cue: cue, Translated: texts[i]})
		}
	}
	return translated, nil
}

func (s *Service) translateBatch(ctx context.Context, system string, batch []subtitle.Cue) ([]string, error) {
	var builder strings.Builder
	for i, cue := range batch {
		fmt.Fprintf(&builder, "%d. %s\n", i+1, cue.Text)
	}
	reply, err := s.completer.CompleteJSON(ctx, system, builder.String())
	if err != nil {
		return nil, err
	}
	var texts []string
	if err := llm.DecodeJSON(reply, &texts); err != nil {
		return nil, fmt.Errorf("translate: parse batch reply: %w", err)
	}
	if len(texts) != len(batch) {
		return nil, fmt.Errorf("translate: got %d lines for %d cues", len(texts), len(batch))
	}
	for i := range texts {
		texts[i] = strings.TrimSpace(texts[i])
	}
	return texts, nil
}

func (s *Service) translateOneByOne(ctx context.Context, system string, batch []subtitle.Cue) []string {
	texts := make([]string, len(batch))
	for i, cue := range batch {
		reply, err := s.completer.Complete(ctx, system+"\nReply with the translated line only.", cue.Text)
		if err != nil || strings.TrimSpace(reply) == "" {
			texts[i] = ErrorMarker
			continue
		}
		texts[i] = strings.TrimSpace(reply)
	}
	return texts
}

// FormatBilingual renders translated cues as markdown with the original
// and translated text under each timestamp.
func FormatBilingual(cues []TranslatedCue) string {
	if len(cues) == 0 {
		return "No subtitles available."
	}
	var builder strings.Builder
	for _, cue := range cues {
		fmt.Fprintf(
			&builder,
			"[%s]\n**Original:** %s\n**Translated:** %s\n\n",
			timeutil.FormatTime(cue.Start),
			cue.Text,
			cue.Translated,
		)
	}
	return builder.String()
}

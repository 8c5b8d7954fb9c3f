package chat

import (
	"context"
	"errors"
	"strings"
	"testing"

	"tubenotes/internal/store"
)

type fakeCompleter struct {
	replies []string
	err     error
	prompts []string
	inputs  []string
}

func (f *fakeCompleter) Complete(_ context.Context, systemPrompt, userPrompt string) (string, error) {
	f.prompts = append(f.prompts, systemPrompt)
	f.inputs = append(f.inputs, userPrompt)
	if f.err != nil {
		return "", f.err
	}
	reply := "answer"
	if len(f.replies) > 0 {
		reply = f.replies[0]
		f.replies = f.replies[1:]
	}
	return reply, nil
}

type fakeEmbedder struct {
	err  error
	seen []string
}

func (f *fakeEmbedder) EmbedOne(_ context.Context, text string) ([]float32, error) {
	f.seen = append(f.seen, text)
	if f.err != nil {
		return nil, f.err
	}
	return []float32{1, 0}, nil
}

type fakeSearcher struct {
	results []store.SearchResult
	err     error
	k       int
}

func (f *fakeSearcher) Search(_ context.Context, _ string, _ []float32, k int) ([]store.SearchResult, error) {
	f.k = k
	return f.results, f.err
}

func sampleResults() []store.SearchResult {
	return []store.SearchResult{
		{Chunk: store.Chunk{Text: "we discuss goroutines", StartTime: 95}, Score: 0.9},
		{Chunk: store.Chunk{Text: "channels connect them", StartTime: 210}, Score: 0.8},
	}
}

func TestAskWithoutHistory(t *testing.T) {
	completer := &fakeCompleter{replies: []string{"Goroutines are lightweight."}}
	embedder := &fakeEmbedder{}
	searcher := &fakeSearcher{results: sampleResults()}
	svc := NewService(completer, embedder, searcher, 0)

	answer, err := svc.Ask(context.Background(), "vid", "what are goroutines?", nil)
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if !strings.HasPrefix(answer.Text, "Goroutines are lightweight.") {
		t.Errorf("answer = %q", answer.Text)
	}
	if !strings.Contains(answer.Text, "Relevant timestamps: 00:01:35, 00:03:30") {
		t.Errorf("missing timestamp suffix: %q", answer.Text)
	}
	if len(answer.Timestamps) != 2 || answer.Timestamps[0] != 95 {
		t.Errorf("timestamps = %v", answer.Timestamps)
	}
	if searcher.k != 3 {
		t.Errorf("expected default top_k of 3, got %d", searcher.k)
	}
	// No history: only one completion, no condense call.
	if len(completer.prompts) != 1 {
		t.Fatalf("expected 1 completion, got %d", len(completer.prompts))
	}
	if !strings.Contains(completer.inputs[0], "[00:01:35] we discuss goroutines") {
		t.Errorf("context missing from prompt: %q", completer.inputs[0])
	}
	if len(embedder.seen) != 1 || embedder.seen[0] != "what are goroutines?" {
		t.Errorf("embedded text = %v", embedder.seen)
	}
}

func TestAskCondensesFollowUp(t *testing.T) {
	completer := &fakeCompleter{replies: []string{"How do channels work in Go?", "They pass values."}}
	embedder := &fakeEmbedder{}
	searcher := &fakeSearcher{results: sampleResults()}
	svc := NewService(completer, embedder, searcher, 2)

	history := []Exchange{{Question: "what are goroutines?", Answer: "Lightweight threads."}}
	_, err := svc.Ask(context.Background(), "vid", "and how do they talk?", history)
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if len(completer.prompts) != 2 {
		t.Fatalf("expected condense + answer completions, got %d", len(completer.prompts))
	}
	if !strings.Contains(completer.inputs[0], "Follow Up Input: and how do they talk?") {
		t.Errorf("condense input missing follow up: %q", completer.inputs[0])
	}
	if !strings.Contains(completer.inputs[0], "Human: what are goroutines?") {
		t.Errorf("condense input missing history: %q", completer.inputs[0])
	}
	// Retrieval must use the condensed standalone question.
	if embedder.seen[0] != "How do channels work in Go?" {
		t.Errorf("embedded text = %q", embedder.seen[0])
	}
}

func TestAskCondenseFailureFallsBack(t *testing.T) {
	completer := &fakeCompleter{}
	embedder := &fakeEmbedder{}
	searcher := &fakeSearcher{results: sampleResults()}
	svc := NewService(completer, embedder, searcher, 3)

	// First completion (condense) succeeds in the fake, so force the
	// fallback through an empty reply instead.
	completer.replies = []string{"", "still answered"}
	history := []Exchange{{Question: "q", Answer: "a"}}
	_, err := svc.Ask(context.Background(), "vid", "follow up", history)
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if embedder.seen[0] != "follow up" {
		t.Errorf("expected raw question on empty condensation, got %q", embedder.seen[0])
	}
}

func TestAskRequiresQuestion(t *testing.T) {
	svc := NewService(&fakeCompleter{}, &fakeEmbedder{}, &fakeSearcher{}, 3)
	if _, err := svc.Ask(context.Background(), "vid", "   ", nil); err == nil {
		t.Fatal("expected error for empty question")
	}
}

func TestAskSurfacesMissingIndex(t *testing.T) {
	searcher := &fakeSearcher{err: store.ErrNotIndexed}
	svc := NewService(&fakeCompleter{}, &fakeEmbedder{}, searcher, 3)
	_, err := svc.Ask(context.Background(), "vid", "anything?", nil)
	if !errors.Is(err, store.ErrNotIndexed) {
		t.Fatalf("expected ErrNotIndexed, got %v", err)
	}
}

func TestAskEmbedFailure(t *testing.T) {
	embedder := &fakeEmbedder{err: errors.New("endpoint down")}
	svc := NewService(&fakeCompleter{}, embedder, &fakeSearcher{}, 3)
	if _, err := svc.Ask(context.Background(), "vid", "anything?", nil); err == nil {
		t.Fatal("expected embed error to surface")
	}
}

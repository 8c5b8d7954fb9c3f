package segment_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"tubenotes/internal/segment"
)

func TestGenerateTitlesEnhancedKeywords(t *testing.T) {
	blocks := []segment.Block{{
		Content: "machine learning is amazing. we discuss machine learning models and neural networks today. neural networks learn patterns.",
	}}
	segment.GenerateTitles(blocks, segment.StrategyEnhancedKeywords)
	want := "Machine learning is amazing [machine, learning, neural]"
	if blocks[0].Title != want {
		t.Fatalf("title = %q, want %q", blocks[0].Title, want)
	}
}

func TestGenerateTitlesEmptyContent(t *testing.T) {
	blocks := []segment.Block{{Content: ""}, {Content: "   "}}
	segment.GenerateTitles(blocks, segment.StrategyEnhancedKeywords)
	if blocks[0].Title != "Section 1" {
		t.Errorf("first title = %q, want Section 1", blocks[0].Title)
	}
	if blocks[1].Title != "Section 2" {
		t.Errorf("second title = %q, want Section 2", blocks[1].Title)
	}
}

func TestGenerateTitlesFirstSentence(t *testing.T) {
	blocks := []segment.Block{
		{Content: "This is the opening sentence. And this one is ignored."},
		{Content: strings.Repeat("a very long opening sentence without end ", 4) + "finally done."},
	}
	segment.GenerateTitles(blocks, segment.StrategyFirstSentence)
	if blocks[0].Title != "This is the opening sentence." {
		t.Errorf("title = %q", blocks[0].Title)
	}
	if n := len([]rune(blocks[1].Title)); n > 63 {
		t.Errorf("long sentence not truncated: %d runes", n)
	}
	if !strings.HasSuffix(blocks[1].Title, "...") {
		t.Errorf("truncated title missing ellipsis: %q", blocks[1].Title)
	}
}

func TestGenerateTitlesSimple(t *testing.T) {
	blocks := []segment.Block{{Content: "hello world this is a short one more"}}
	segment.GenerateTitles(blocks, segment.StrategySimple)
	if blocks[0].Title != "Hello world this is a short one..." {
		t.Errorf("title = %q", blocks[0].Title)
	}
}

type fakeTitleService struct {
	title string
	err   error
	calls int
	seen  []string
}

func (f *fakeTitleService) Title(_ context.Context, text string) (string, error) {
	f.calls++
	f.seen = append(f.seen, text)
	return f.title, f.err
}

func TestGenerateTitlesWithService(t *testing.T) {
	svc := &fakeTitleService{title: `"Understanding Goroutines In Depth"`}
	blocks := []segment.Block{{Content: "goroutines are cheap threads managed by the runtime"}}
	segment.GenerateTitlesWithService(context.Background(), blocks, svc)
	if blocks[0].Title != "Understanding Goroutines In Depth" {
		t.Fatalf("title = %q", blocks[0].Title)
	}
	if svc.calls != 1 {
		t.Fatalf("expected 1 service call, got %d", svc.calls)
	}
}

func TestGenerateTitlesWithServiceCapsText(t *testing.T) {
	svc := &fakeTitleService{title: "ok"}
	blocks := []segment.Block{{Content: strings.Repeat("x", 5000)}}
	segment.GenerateTitlesWithService(context.Background(), blocks, svc)
	if len(svc.seen) != 1 || len(svc.seen[0]) != 2003 {
		t.Fatalf("expected capped text of 2003 bytes, got %d", len(svc.seen[0]))
	}
}

func TestGenerateTitlesWithServiceFallsBackPerBlock(t *testing.T) {
	svc := &fakeTitleService{err: errors.New("boom")}
	blocks := []segment.Block{{Content: "one two three four five six seven eight nine"}}
	segment.GenerateTitlesWithService(context.Background(), blocks, svc)
	if blocks[0].Title != "one two three four five six seven..." {
		t.Fatalf("fallback title = %q", blocks[0].Title)
	}
}

func TestGenerateTitlesWithNilServiceUsesKeywords(t *testing.T) {
	blocks := []segment.Block{{Content: "testing fallback path. testing fallback again and again."}}
	segment.GenerateTitlesWithService(context.Background(), blocks, nil)
	if blocks[0].Title == "" {
		t.Fatal("expected keyword fallback title")
	}
}

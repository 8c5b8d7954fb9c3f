package pipeline_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"tubenotes/internal/logging"
	"tubenotes/internal/pipeline"
	"tubenotes/internal/segment"
	"tubenotes/internal/subtitle"
	"tubenotes/internal/testsupport"
	"tubenotes/internal/youtube"
)

type fakeMetadata struct{}

func (fakeMetadata) VideoInfo(_ context.Context, videoID string) youtube.VideoInfo {
	return youtube.VideoInfo{
		VideoID: videoID,
		Title:   "Concurrency Patterns",
		Author:  "Go Channel",
		URL:     "https://www.youtube.com/watch?v=" + videoID,
	}
}

type fakeFetcher struct {
	cues []subtitle.Cue
	err  error
}

func (f fakeFetcher) Fetch(_ context.Context, _ string, _ []string) (youtube.Transcript, error) {
	if f.err != nil {
		return youtube.Transcript{}, f.err
	}
	return youtube.Transcript{Cues: f.cues, Language: "en"}, nil
}

type fakeChapters struct {
	chapters []segment.Chapter
}

func (f fakeChapters) Chapters(context.Context, string) []segment.Chapter {
	return f.chapters
}

type fakeEmbedder struct {
	err   error
	calls int
}

func (f *fakeEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	vectors := make([][]float32, len(texts))
	for i := range vectors {
		vectors[i] = []float32{float32(i + 1), 1}
	}
	return vectors, nil
}

type fakeTitler struct{}

func (fakeTitler) Title(context.Context, string) (string, error) {
	return "Generated Title", nil
}

func transcriptCues(n int) []subtitle.Cue {
	cues := make([]subtitle.Cue, n)
	for i := range cues {
		cues[i] = subtitle.Cue{
			Start:    float64(i * 10),
			Duration: 10,
			Text:     fmt.Sprintf("sentence number %d about goroutines and channels", i),
		}
	}
	return cues
}

func TestProcessStoresSession(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	embedder := &fakeEmbedder{}
	proc := pipeline.NewProcessor(cfg, st, logging.NewNop(),
		pipeline.WithMetadata(fakeMetadata{}),
		pipeline.WithTranscriptFetcher(fakeFetcher{cues: transcriptCues(12)}),
		pipeline.WithChapterSources(fakeChapters{}),
		pipeline.WithEmbedder(embedder),
	)

	session, err := proc.Process(context.Background(), "https://youtu.be/dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if session.Video.VideoID != "dQw4w9WgXcQ" {
		t.Errorf("video id = %q", session.Video.VideoID)
	}
	if session.Video.Title != "Concurrency Patterns" || session.Video.Language != "en" {
		t.Errorf("unexpected metadata: %+v", session.Video)
	}
	if session.Video.HasChapters {
		t.Error("no chapter source should mean no chapter blocks")
	}
	if len(session.Blocks) == 0 || len(session.Chunks) == 0 {
		t.Fatalf("expected blocks and chunks, got %d/%d", len(session.Blocks), len(session.Chunks))
	}
	if !session.Indexed() {
		t.Error("expected embedded chunks")
	}
	if embedder.calls != 1 {
		t.Errorf("embedder calls = %d", embedder.calls)
	}

	loaded, err := st.LoadSession(context.Background(), "dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("LoadSession: %v", err)
	}
	if loaded == nil || len(loaded.Cues) != 12 {
		t.Fatalf("stored session incomplete: %+v", loaded)
	}
}

func TestProcessUsesChapters(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	end := 60.0
	chapters := []segment.Chapter{
		{Title: "Intro", StartTime: 0, EndTime: &end},
		{Title: "Deep Dive", StartTime: 60},
	}
	proc := pipeline.NewProcessor(cfg, st, logging.NewNop(),
		pipeline.WithMetadata(fakeMetadata{}),
		pipeline.WithTranscriptFetcher(fakeFetcher{cues: transcriptCues(12)}),
		pipeline.WithChapterSources(fakeChapters{chapters: chapters}),
		pipeline.WithEmbedder(&fakeEmbedder{}),
	)

	session, err := proc.Process(context.Background(), "dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if !session.Video.HasChapters {
		t.Error("expected chapter-derived blocks")
	}
	if len(session.Blocks) != 2 {
		t.Fatalf("expected 2 chapter blocks, got %d", len(session.Blocks))
	}
	if session.Blocks[0].Title != "Intro" || session.Blocks[1].Title != "Deep Dive" {
		t.Errorf("chapter titles not preserved: %+v", session.Blocks)
	}
}

func TestProcessConsultsChapterSourcesInOrder(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	fallback := []segment.Chapter{{Title: "From Description", StartTime: 0}}
	proc := pipeline.NewProcessor(cfg, st, logging.NewNop(),
		pipeline.WithMetadata(fakeMetadata{}),
		pipeline.WithTranscriptFetcher(fakeFetcher{cues: transcriptCues(12)}),
		pipeline.WithChapterSources(fakeChapters{}, fakeChapters{chapters: fallback}),
		pipeline.WithEmbedder(&fakeEmbedder{}),
	)

	session, err := proc.Process(context.Background(), "dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if !session.Video.HasChapters || session.Blocks[0].Title != "From Description" {
		t.Errorf("fallback chapter source not used: %+v", session.Blocks)
	}
}

func TestProcessTitleService(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	proc := pipeline.NewProcessor(cfg, st, logging.NewNop(),
		pipeline.WithMetadata(fakeMetadata{}),
		pipeline.WithTranscriptFetcher(fakeFetcher{cues: transcriptCues(12)}),
		pipeline.WithChapterSources(fakeChapters{}),
		pipeline.WithTitleService(fakeTitler{}),
		pipeline.WithEmbedder(&fakeEmbedder{}),
	)

	session, err := proc.Process(context.Background(), "dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	for _, block := range session.Blocks {
		if block.Title != "Generated Title" {
			t.Errorf("block title = %q", block.Title)
		}
	}
}

func TestProcessEmbedFailureDegrades(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	proc := pipeline.NewProcessor(cfg, st, logging.NewNop(),
		pipeline.WithMetadata(fakeMetadata{}),
		pipeline.WithTranscriptFetcher(fakeFetcher{cues: transcriptCues(12)}),
		pipeline.WithChapterSources(fakeChapters{}),
		pipeline.WithEmbedder(&fakeEmbedder{err: errors.New("endpoint down")}),
	)

	session, err := proc.Process(context.Background(), "dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("embedding failure must not fail processing: %v", err)
	}
	if session.Indexed() {
		t.Error("expected unindexed session after embed failure")
	}
	if len(session.Chunks) == 0 {
		t.Error("chunks should still be stored without embeddings")
	}
}

func TestProcessTranscriptFailure(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	proc := pipeline.NewProcessor(cfg, st, logging.NewNop(),
		pipeline.WithMetadata(fakeMetadata{}),
		pipeline.WithTranscriptFetcher(fakeFetcher{err: youtube.ErrNoSubtitles}),
		pipeline.WithChapterSources(fakeChapters{}),
	)

	if _, err := proc.Process(context.Background(), "dQw4w9WgXcQ"); !errors.Is(err, youtube.ErrNoSubtitles) {
		t.Fatalf("expected ErrNoSubtitles, got %v", err)
	}
}

func TestProcessInvalidURL(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	proc := pipeline.NewProcessor(cfg, st, logging.NewNop(),
		pipeline.WithMetadata(fakeMetadata{}),
		pipeline.WithTranscriptFetcher(fakeFetcher{}),
		pipeline.WithChapterSources(fakeChapters{}),
	)

	if _, err := proc.Process(context.Background(), "not a url"); !errors.Is(err, youtube.ErrInvalidURL) {
		t.Fatalf("expected ErrInvalidURL, got %v", err)
	}
}

func TestLoadUnknownVideo(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	proc := pipeline.NewProcessor(cfg, st, logging.NewNop(),
		pipeline.WithMetadata(fakeMetadata{}),
		pipeline.WithTranscriptFetcher(fakeFetcher{}),
		pipeline.WithChapterSources(fakeChapters{}),
	)

	if _, err := proc.Load(context.Background(), "dQw4w9WgXcQ"); !errors.Is(err, pipeline.ErrUnknownVideo) {
		t.Fatalf("expected ErrUnknownVideo, got %v", err)
	}
}

// Package pipeline orchestrates the end-to-end processing of a video:
// metadata lookup, subtitle download, segmentation, chunking, embedding,
// and persistence. Embedding failures degrade to an unindexed session
// instead of failing the whole run.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"tubenotes/internal/chunk"
	"tubenotes/internal/config"
	"tubenotes/internal/embed"
	"tubenotes/internal/llm"
	"tubenotes/internal/logging"
	"tubenotes/internal/segment"
	"tubenotes/internal/store"
	"tubenotes/internal/subtitle"
	"tubenotes/internal/youtube"
)

// ErrUnknownVideo indicates a lookup for a video that was never processed.
var ErrUnknownVideo = errors.New("pipeline: video not processed")

// Metadata looks up a video's public metadata.
type Metadata interface {
	VideoInfo(ctx context.Context, videoID string) youtube.VideoInfo
}

// TranscriptFetcher downloads a subtitle track in one of the preferred
// languages.
type TranscriptFetcher interface {
	Fetch(ctx context.Context, videoID string, languages []string) (youtube.Transcript, error)
}

// Embedder turns chunk texts into vectors for the search index.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

// Processor runs the processing pipeline and persists the result.
type Processor struct {
	cfg         *config.Config
	store       *store.Store
	logger      *slog.Logger
	metadata    Metadata
	transcripts TranscriptFetcher
	chapters    []youtube.ChapterSource
	titles      segment.TitleService
	embedder    Embedder
}

// Option overrides one of the processor's collaborators, mainly for tests.
type Option func(*Processor)

// WithMetadata replaces the metadata client.
func WithMetadata(metadata Metadata) Option {
	return func(p *Processor) { p.metadata = metadata }
}

// WithTranscriptFetcher replaces the subtitle fetcher.
func WithTranscriptFetcher(fetcher TranscriptFetcher) Option {
	return func(p *Processor) { p.transcripts = fetcher }
}

// WithChapterSources replaces the chapter sources, consulted in order.
func WithChapterSources(sources ...youtube.ChapterSource) Option {
	return func(p *Processor) { p.chapters = sources }
}

// WithTitleService replaces the block title service.
func WithTitleService(service segment.TitleService) Option {
	return func(p *Processor) { p.titles = service }
}

// WithEmbedder replaces the embedding client.
func WithEmbedder(embedder Embedder) Option {
	return func(p *Processor) { p.embedder = embedder }
}

// NewProcessor wires a processor from configuration. Collaborators not
// overridden through options are constructed from the config: the YouTube
// client for metadata and chapters, yt-dlp for subtitles, and the LLM and
// embedding clients when their features are enabled.
func NewProcessor(cfg *config.Config, st *store.Store, logger *slog.Logger, opts ...Option) *Processor {
	p := &Processor{
		cfg:    cfg,
		store:  st,
		logger: logging.NewComponentLogger(logger, "processor"),
	}
	for _, opt := range opts {
		opt(p)
	}

	if p.metadata == nil || p.chapters == nil {
		client := youtube.NewClient(youtube.Config{DataAPIKey: cfg.YouTube.DataAPIKey})
		if p.metadata == nil {
			p.metadata = client
		}
		if p.chapters == nil {
			p.chapters = []youtube.ChapterSource{client, client.DescriptionSource()}
		}
	}
	if p.transcripts == nil {
		p.transcripts = youtube.NewFetcher()
	}
	if p.titles == nil && cfg.LLM.Titles && cfg.LLM.APIKey != "" {
		p.titles = llm.NewClient(llm.Config{
			APIKey:         cfg.LLM.APIKey,
			BaseURL:        cfg.LLM.BaseURL,
			Model:          cfg.LLM.Model,
			Temperature:    cfg.LLM.Temperature,
			TimeoutSeconds: cfg.LLM.TimeoutSeconds,
		})
	}
	if p.embedder == nil && cfg.Embeddings.Enabled && cfg.Embeddings.APIKey != "" {
		p.embedder = embed.NewClient(embed.Config{
			APIKey:         cfg.Embeddings.APIKey,
			BaseURL:        cfg.Embeddings.BaseURL,
			Model:          cfg.Embeddings.Model,
			TimeoutSeconds: cfg.Embeddings.TimeoutSeconds,
		})
	}
	return p
}

// Process downloads, segments, chunks, and stores one video. Re-processing
// a known video replaces its previous session.
func (p *Processor) Process(ctx context.Context, rawURL string) (*store.Session, error) {
	videoID, err := youtube.ExtractVideoID(rawURL)
	if err != nil {
		return nil, err
	}
	log := p.logger.With(slog.String(logging.FieldVideoID, videoID))

	info := p.metadata.VideoInfo(ctx, videoID)
	log.Info("processing video", slog.String("title", info.Title))

	transcript, err := p.transcripts.Fetch(ctx, videoID, p.cfg.YouTube.Languages)
	if err != nil {
		return nil, fmt.Errorf("pipeline: fetch transcript: %w", err)
	}
	log.Info("subtitles downloaded",
		slog.String("language", transcript.Language),
		slog.Int("cues", len(transcript.Cues)))

	var chapters []segment.Chapter
	for _, source := range p.chapters {
		if chapters = source.Chapters(ctx, videoID); len(chapters) > 0 {
			break
		}
	}

	blocks := segment.SplitWithChapters(transcript.Cues, chapters, segment.Options{
		MinBlockDuration:  p.cfg.Segmentation.MinBlockDuration,
		MinPauseThreshold: p.cfg.Segmentation.MinPauseThreshold,
		MaxBlockSize:      p.cfg.Segmentation.MaxBlockSize,
	})
	p.applyTitles(ctx, blocks, log)

	chunks := p.buildChunks(ctx, transcript.Cues, log)

	session := store.Session{
		Video: store.Video{
			VideoID:     videoID,
			Title:       info.Title,
			Author:      info.Author,
			URL:         info.URL,
			Thumbnail:   info.Thumbnail,
			Language:    transcript.Language,
			HasChapters: segment.HasChapterBlocks(blocks),
		},
		Cues:   transcript.Cues,
		Blocks: segment.MetadataList(blocks),
		Chunks: chunks,
	}
	if err := p.store.SaveSession(ctx, session); err != nil {
		return nil, fmt.Errorf("pipeline: save session: %w", err)
	}

	log.Info("video processed",
		slog.Int("blocks", len(session.Blocks)),
		slog.Int("chunks", len(session.Chunks)),
		slog.Bool("chapters", session.Video.HasChapters),
		slog.Bool("indexed", session.Indexed()))
	return &session, nil
}

// applyTitles re-titles automatically split blocks per configuration.
// Chapter titles are authoritative and left alone.
func (p *Processor) applyTitles(ctx context.Context, blocks []segment.Block, log *slog.Logger) {
	if segment.HasChapterBlocks(blocks) {
		return
	}
	if p.titles != nil {
		log.Info("generating block titles", slog.Int("blocks", len(blocks)))
		segment.GenerateTitlesWithService(ctx, blocks, p.titles)
		return
	}
	strategy := segment.Strategy(p.cfg.Segmentation.TitleStrategy)
	if strategy != "" && strategy != segment.StrategyEnhancedKeywords {
		segment.GenerateTitles(blocks, strategy)
	}
}

func (p *Processor) buildChunks(ctx context.Context, cues []subtitle.Cue, log *slog.Logger) []store.Chunk {
	pieces := chunk.Chunker{
		Size:    p.cfg.Chunking.Size,
		Overlap: p.cfg.Chunking.Overlap,
	}.Chunk(cues)

	chunks := make([]store.Chunk, len(pieces))
	texts := make([]string, len(pieces))
	for i, piece := range pieces {
		chunks[i] = store.Chunk{Index: piece.Index, Text: piece.Text, StartTime: piece.StartTime}
		texts[i] = piece.Text
	}

	if p.embedder == nil || len(chunks) == 0 {
		return chunks
	}
	vectors, err := p.embedder.Embed(ctx, texts)
	if err != nil {
		log.Warn("embedding failed, chat will be unavailable for this video", logging.Error(err))
		return chunks
	}
	if len(vectors) != len(chunks) {
		log.Warn("embedding count mismatch, skipping index",
			slog.Int("chunks", len(chunks)), slog.Int("vectors", len(vectors)))
		return chunks
	}
	for i := range chunks {
		chunks[i].Embedding = vectors[i]
	}
	return chunks
}

// Load restores the stored session for a video URL or bare ID.
func (p *Processor) Load(ctx context.Context, rawURL string) (*store.Session, error) {
	videoID, err := youtube.ExtractVideoID(rawURL)
	if err != nil {
		return nil, err
	}
	session, err := p.store.LoadSession(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownVideo, videoID)
	}
	return session, nil
}

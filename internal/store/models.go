package store

import (
	"time"

	"tubenotes/internal/segment"
	"tubenotes/internal/subtitle"
)

// Video is the stored metadata for a processed video.
type Video struct {
	VideoID     string
	Title       string
	Author      string
	URL         string
	Thumbnail   string
	Language    string
	HasChapters bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Chunk is one embedded slice of transcript text. Embedding is empty when
// indexing was skipped.
type Chunk struct {
	ID        string
	Index     int
	Text      string
	StartTime float64
	Embedding []float32
}

// Session is everything persisted for one processed video.
type Session struct {
	Video  Video
	Cues   []subtitle.Cue
	Blocks []segment.BlockMeta
	Chunks []Chunk
}

// Blocks rebuilt from stored metadata and cues.
func (s *Session) RebuiltBlocks() []segment.Block {
	return segment.RebuildBlocks(s.Blocks, s.Cues)
}

// Indexed reports whether the session carries embedded chunks.
func (s *Session) Indexed() bool {
	for _, chunk := range s.Chunks {
		if len(chunk.Embedding) > 0 {
			return true
		}
	}
	return false
}

// SearchResult is one chunk ranked by similarity to a query vector.
type SearchResult struct {
	Chunk Chunk
	Score float64
}

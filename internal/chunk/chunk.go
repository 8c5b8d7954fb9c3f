// Package chunk splits transcripts into overlapping text chunks for
// embedding. Each chunk keeps the start timestamp of the first cue whose
// text begins inside it, so retrieval results can cite a position in the
// video.
package chunk

import (
	"strings"

	"tubenotes/internal/subtitle"
)

const (
	// DefaultSize is the chunk length in runes.
	DefaultSize = 1000
	// DefaultOverlap is the number of runes shared between adjacent chunks.
	DefaultOverlap = 100
)

// Piece is one chunk of transcript text ready for embedding.
type Piece struct {
	Text      string
	StartTime float64
	Index     int
}

// Chunker splits cue text into fixed-size overlapping pieces. Zero values
// fall back to defaults.
type Chunker struct {
	Size    int
	Overlap int
}

func (c Chunker) withDefaults() Chunker {
	if c.Size <= 0 {
		c.Size = DefaultSize
	}
	if c.Overlap < 0 || c.Overlap >= c.Size {
		c.Overlap = DefaultOverlap
		if c.Overlap >= c.Size {
			c.Overlap = c.Size / 10
		}
	}
	return c
}

type cueOffset struct {
	pos   int
	start float64
}

// Chunk joins all cue text into one transcript and splits it into
// overlapping pieces. The piece timestamp is the start of the first cue
// beginning inside the piece, or the nearest preceding cue when none does.
func (c Chunker) Chunk(cues []subtitle.Cue) []Piece {
	c = c.withDefaults()
	if len(cues) == 0 {
		return nil
	}

	var builder strings.Builder
	offsets := make([]cueOffset, 0, len(cues))
	pos := 0
	for _, cue := range cues {
		text := strings.TrimSpace(cue.Text)
		if text == "" {
			continue
		}
		offsets = append(offsets, cueOffset{pos: pos, start: cue.Start})
		builder.WriteString(text)
		builder.WriteString(" ")
		pos += len([]rune(text)) + 1
	}
	full := []rune(strings.TrimRight(builder.String(), " "))
	if len(full) == 0 {
		return nil
	}

	stride := c.Size - c.Overlap
	var pieces []Piece
	for start := 0; start < len(full); start += stride {
		end := start + c.Size
		if end > len(full) {
			end = len(full)
		}
		text := strings.TrimSpace(string(full[start:end]))
		if text != "" {
			pieces = append(pieces, Piece{
				Text:      text,
				StartTime: timestampFor(offsets, start, end),
				Index:     len(pieces),
			})
		}
		if end == len(full) {
			break
		}
	}
	return pieces
}

func timestampFor(offsets []cueOffset, start, end int) float64 {
	var preceding float64
	for _, offset := range offsets {
		if offset.pos < start {
			preceding = offset.start
			continue
		}
		if offset.pos <= end {
			return offset.start
		}
		break
	}
	return preceding
}

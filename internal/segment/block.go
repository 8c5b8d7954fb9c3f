package segment

import (
	"tubenotes/internal/subtitle"
)

// Block is one contiguous, titled grouping of cues covering a topical
// segment of the video.
type Block struct {
	StartTime   float64
	EndTime     float64
	Cues        []subtitle.Cue
	Content     string
	Title       string
	FromChapter bool
}

// Duration returns the block's time span in seconds.
func (b Block) Duration() float64 {
	return b.EndTime - b.StartTime
}

// BlockMeta is the persisted identity of a block. Bounds plus title are
// sufficient to rebuild the block from a reloaded transcript.
type BlockMeta struct {
	StartTime   float64 `json:"start_time"`
	EndTime     float64 `json:"end_time"`
	Title       string  `json:"title"`
	FromChapter bool    `json:"is_chapter"`
}

// Metadata returns the persistable record for the block.
func (b Block) Metadata() BlockMeta {
	return BlockMeta{
		StartTime:   b.StartTime,
		EndTime:     b.EndTime,
		Title:       b.Title,
		FromChapter: b.FromChapter,
	}
}

// MetadataList collects persistable records for a block sequence.
func MetadataList(blocks []Block) []BlockMeta {
	metas := make([]BlockMeta, len(blocks))
	for i, block := range blocks {
		metas[i] = block.Metadata()
	}
	return metas
}

// RebuildBlocks reconstructs blocks from persisted metadata by filtering the
// reloaded transcript against each block's saved bounds. Cue membership uses
// the same half-open rule as chapter reconciliation.
func RebuildBlocks(metas []BlockMeta, cues []subtitle.Cue) []Block {
	blocks := make([]Block, 0, len(metas))
	for _, meta := range metas {
		var member []subtitle.Cue
		for _, cue := range cues {
			if cue.Start >= meta.StartTime && cue.Start < meta.EndTime {
				member = append(member, cue)
			}
		}
		blocks = append(blocks, Block{
			StartTime:   meta.StartTime,
			EndTime:     meta.EndTime,
			Cues:        member,
			Content:     subtitle.JoinText(member),
			Title:       meta.Title,
			FromChapter: meta.FromChapter,
		})
	}
	return blocks
}

// HasChapterBlocks reports whether any block's boundaries came from
// creator-declared chapters.
func HasChapterBlocks(blocks []Block) bool {
	for _, block := range blocks {
		if block.FromChapter {
			return true
		}
	}
	return false
}

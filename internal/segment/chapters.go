package segment

import (
	"tubenotes/internal/subtitle"
)

// Chapter is an externally declared segment boundary. EndTime is nil when
// the source only published start times; ResolveEndTimes fills the gaps.
type Chapter struct {
	Title     string
	StartTime float64
	EndTime   *float64
}

type resolvedChapter struct {
	Title     string
	StartTime float64
	EndTime   float64
}

// ResolveEndTimes fills missing chapter end times: each unresolved chapter
// ends where the next one starts, and the final chapter ends at videoEnd.
func resolveEndTimes(chapters []Chapter, videoEnd float64) []resolvedChapter {
	resolved := make([]resolvedChapter, len(chapters))
	for i, chapter := range chapters {
		end := videoEnd
		if chapter.EndTime != nil {
			end = *chapter.EndTime
		} else if i < len(chapters)-1 {
			end = chapters[i+1].StartTime
		}
		resolved[i] = resolvedChapter{
			Title:     chapter.Title,
			StartTime: chapter.StartTime,
			EndTime:   end,
		}
	}
	return resolved
}

// SplitWithChapters builds blocks from creator-declared chapters, which are
// authoritative when present. With no chapters it delegates to Split.
//
// Each chapter claims the cues with StartTime <= cue.Start < EndTime. A
// chapter is kept when it matched at least one cue or spans at least
// MinBlockDuration; empty, too-short chapters are dropped as noise.
func SplitWithChapters(cues []subtitle.Cue, chapters []Chapter, opts Options) []Block {
	opts = opts.withDefaults()
	if len(chapters) == 0 {
		return Split(cues, opts)
	}

	videoEnd := subtitle.VideoEnd(cues)
	blocks := make([]Block, 0, len(chapters))
	for _, chapter := range resolveEndTimes(chapters, videoEnd) {
		var member []subtitle.Cue
		for _, cue := range cues {
			if cue.Start >= chapter.StartTime && cue.Start < chapter.EndTime {
				member = append(member, cue)
			}
		}
		if len(member) == 0 && chapter.EndTime-chapter.StartTime < opts.MinBlockDuration {
			continue
		}
		blocks = append(blocks, Block{
			StartTime:   chapter.StartTime,
			EndTime:     chapter.EndTime,
			Cues:        member,
			Content:     subtitle.JoinText(member),
			Title:       chapter.Title,
			FromChapter: true,
		})
	}

	// Chapter titles are trusted as-is, but the non-empty title invariant
	// still holds for chapters published without one.
	titleUntitled(blocks)
	return blocks
}

func titleUntitled(blocks []Block) {
	for i := range blocks {
		if blocks[i].Title == "" {
			blocks[i].Title = enhancedKeywordTitle(blocks[i].Content, i)
		}
	}
}

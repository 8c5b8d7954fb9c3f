package segment

import (
	"tubenotes/internal/subtitle"
)

const (
	// DefaultMinBlockDuration is the minimum span, in seconds, a candidate
	// block must cover before it is emitted.
	DefaultMinBlockDuration = 60
	// DefaultMinPauseThreshold is the silent gap, in seconds, between
	// consecutive cues that triggers a split.
	DefaultMinPauseThreshold = 3
	// DefaultMaxBlockSize caps the cue count of a block regardless of pauses.
	DefaultMaxBlockSize = 25

	// minCuesForSplit is the transcript size below which splitting is not
	// attempted and a single block spans everything.
	minCuesForSplit = 5

	// wholeTranscriptTitle labels the single block produced for transcripts
	// too short to segment.
	wholeTranscriptTitle = "Full transcript"
)

// Options tunes the automatic splitter. Zero values fall back to defaults.
type Options struct {
	MinBlockDuration  float64
	MinPauseThreshold float64
	MaxBlockSize      int
}

// DefaultOptions returns the splitter defaults.
func DefaultOptions() Options {
	return Options{
		MinBlockDuration:  DefaultMinBlockDuration,
		MinPauseThreshold: DefaultMinPauseThreshold,
		MaxBlockSize:      DefaultMaxBlockSize,
	}
}

func (o Options) withDefaults() Options {
	if o.MinBlockDuration <= 0 {
		o.MinBlockDuration = DefaultMinBlockDuration
	}
	if o.MinPauseThreshold <= 0 {
		o.MinPauseThreshold = DefaultMinPauseThreshold
	}
	if o.MaxBlockSize <= 0 {
		o.MaxBlockSize = DefaultMaxBlockSize
	}
	return o
}

// Split partitions cues into blocks using pause and size heuristics, then
// titles the result. Cues must be ordered by start time.
//
// A candidate block shorter than MinBlockDuration is not emitted; its cues
// stay in the accumulator and extend into the next candidate. The final
// close is forced so trailing content is never dropped.
func Split(cues []subtitle.Cue, opts Options) []Block {
	opts = opts.withDefaults()

	if len(cues) < minCuesForSplit {
		return []Block{wholeTranscriptBlock(cues)}
	}

	var blocks []Block
	var current []subtitle.Cue

	for i, cue := range cues {
		current = append(current, cue)

		shouldSplit := false
		if i < len(cues)-1 {
			pause := cues[i+1].Start - cue.End()
			if pause >= opts.MinPauseThreshold {
				shouldSplit = true
			}
		}
		if len(current) >= opts.MaxBlockSize {
			shouldSplit = true
		}

		last := i == len(cues)-1
		if !shouldSplit && !last {
			continue
		}

		start := current[0].Start
		end := current[len(current)-1].End()
		if end-start >= opts.MinBlockDuration || last {
			member := make([]subtitle.Cue, len(current))
			copy(member, current)
			blocks = append(blocks, Block{
				StartTime: start,
				EndTime:   end,
				Cues:      member,
				Content:   subtitle.JoinText(member),
			})
			current = current[:0]
		}
		// Too-short candidates keep accumulating into the next block.
	}

	GenerateTitles(blocks, StrategyEnhancedKeywords)
	return blocks
}

func wholeTranscriptBlock(cues []subtitle.Cue) Block {
	block := Block{Title: wholeTranscriptTitle}
	if len(cues) == 0 {
		return block
	}
	member := make([]subtitle.Cue, len(cues))
	copy(member, cues)
	block.StartTime = member[0].Start
	block.EndTime = member[len(member)-1].End()
	block.Cues = member
	block.Content = subtitle.JoinText(member)
	return block
}

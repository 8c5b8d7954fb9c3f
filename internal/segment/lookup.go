package segment

import (
	"fmt"
	"strconv"
	"strings"

	"tubenotes/internal/timeutil"
)

const previewLength = 200

// InvalidIndexError reports a block index that is not an integer.
type InvalidIndexError struct {
	Input string
}

func (e *InvalidIndexError) Error() string {
	return fmt.Sprintf("invalid block index %q: must be an integer", e.Input)
}

// IndexRangeError reports a block index outside the valid range.
type IndexRangeError struct {
	Index int
	Count int
}

func (e *IndexRangeError) Error() string {
	return fmt.Sprintf("block index %d out of range (0-%d)", e.Index, e.Count-1)
}

// Preview summarizes one block for navigation output.
type Preview struct {
	Index    int
	Title    string
	Start    float64
	End      float64
	Excerpt  string
	CueCount int
}

// LookupBlock validates a raw block index and returns a preview of the
// matching block. Non-integer input yields *InvalidIndexError; integers
// outside [0, len(blocks)) yield *IndexRangeError.
func LookupBlock(blocks []Block, rawIndex string) (Preview, error) {
	index, err := parseIndex(blocks, rawIndex)
	if err != nil {
		return Preview{}, err
	}

	block := blocks[index]
	excerpt := block.Content
	if runes := []rune(excerpt); len(runes) > previewLength {
		excerpt = string(runes[:previewLength]) + "..."
	}
	return Preview{
		Index:    index,
		Title:    block.Title,
		Start:    block.StartTime,
		End:      block.EndTime,
		Excerpt:  excerpt,
		CueCount: len(block.Cues),
	}, nil
}

// FullContent renders the complete per-cue timestamped transcript for the
// block at the given raw index. Blocks rebuilt from persisted metadata may
// have lost cue granularity; those fall back to the joined content text.
func FullContent(blocks []Block, rawIndex string) (string, error) {
	index, err := parseIndex(blocks, rawIndex)
	if err != nil {
		return "", err
	}

	block := blocks[index]
	var b strings.Builder
	fmt.Fprintf(&b, "## %s\n\n", block.Title)
	fmt.Fprintf(&b, "**Time range:** %s - %s\n\n",
		timeutil.FormatTime(block.StartTime), timeutil.FormatTime(block.EndTime))
	b.WriteString("### Content\n\n")

	if len(block.Cues) == 0 {
		if block.Content == "" {
			b.WriteString("Content unavailable.\n")
		} else {
			b.WriteString(block.Content)
			b.WriteByte('\n')
		}
		return b.String(), nil
	}

	for _, cue := range block.Cues {
		fmt.Fprintf(&b, "**[%s]** %s\n\n", timeutil.FormatTime(cue.Start), strings.TrimSpace(cue.Text))
	}
	return b.String(), nil
}

func parseIndex(blocks []Block, rawIndex string) (int, error) {
	trimmed := strings.TrimSpace(rawIndex)
	index, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, &InvalidIndexError{Input: rawIndex}
	}
	if index < 0 || index >= len(blocks) {
		return 0, &IndexRangeError{Index: index, Count: len(blocks)}
	}
	return index, nil
}

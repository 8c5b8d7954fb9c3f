// Package subtitle defines the timed cue model produced by transcript
// acquisition and consumed by segmentation, chunking, and translation.
package subtitle

import (
	"strings"

	"tubenotes/internal/timeutil"
)

// DefaultCueDuration is assumed for cues whose source omitted a duration.
const DefaultCueDuration = 5

// Cue is a single timestamped transcript entry. Cues are ordered by Start
// ascending; adjacent cues may overlap.
type Cue struct {
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
	Text     string  `json:"text"`
}

// End returns the end time of the cue, substituting DefaultCueDuration when
// the duration is missing.
func (c Cue) End() float64 {
	duration := c.Duration
	if duration <= 0 {
		duration = DefaultCueDuration
	}
	return c.Start + duration
}

// VideoEnd returns the end time of the last cue, or zero for an empty
// transcript.
func VideoEnd(cues []Cue) float64 {
	if len(cues) == 0 {
		return 0
	}
	return cues[len(cues)-1].End()
}

// JoinText concatenates cue texts with single spaces, trimming the result.
func JoinText(cues []Cue) string {
	var b strings.Builder
	for _, cue := range cues {
		text := strings.TrimSpace(cue.Text)
		if text == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(text)
	}
	return b.String()
}

// FormatTranscript renders cues as one "[HH:MM:SS] text" line per cue.
func FormatTranscript(cues []Cue) string {
	if len(cues) == 0 {
		return "No subtitles available."
	}
	var b strings.Builder
	for _, cue := range cues {
		b.WriteByte('[')
		b.WriteString(timeutil.FormatTime(cue.Start))
		b.WriteString("] ")
		b.WriteString(strings.TrimSpace(cue.Text))
		b.WriteByte('\n')
	}
	return b.String()
}

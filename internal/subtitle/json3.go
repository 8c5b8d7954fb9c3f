package subtitle

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// rawJSON3 mirrors the json3 subtitle payload emitted by yt-dlp. Unknown
// fields are ignored on purpose; the format carries plenty we never read.
type rawJSON3 struct {
	WireMagic string     `json:"wireMagic,omitempty"`
	Events    []rawEvent `json:"events"`
}

type rawEvent struct {
	StartMs    *int64   `json:"tStartMs,omitempty"`
	DurationMs *int64   `json:"dDurationMs,omitempty"`
	Append     *int     `json:"aAppend,omitempty"`
	Segs       []rawSeg `json:"segs,omitempty"`
}

type rawSeg struct {
	UTF8     string `json:"utf8"`
	OffsetMs *int64 `json:"tOffsetMs,omitempty"`
}

func (e rawEvent) text() string {
	var b strings.Builder
	for _, seg := range e.Segs {
		b.WriteString(seg.UTF8)
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// ParseJSON3 converts a json3 subtitle payload into ordered cues. Events
// without text (window styling, bare newlines) are dropped. Append events
// continue the previous cue and are folded into it.
func ParseJSON3(data []byte) ([]Cue, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("parse json3: empty input")
	}

	var raw rawJSON3
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("parse json3: decode: %w", err)
	}

	cues := make([]Cue, 0, len(raw.Events))
	for _, event := range raw.Events {
		text := event.text()
		if text == "" {
			continue
		}
		if event.Append != nil && *event.Append == 1 && len(cues) > 0 {
			last := &cues[len(cues)-1]
			last.Text = strings.TrimSpace(last.Text + " " + text)
			continue
		}

		cue := Cue{Text: text}
		if event.StartMs != nil {
			cue.Start = float64(*event.StartMs) / 1000
		}
		if event.DurationMs != nil {
			cue.Duration = float64(*event.DurationMs) / 1000
		} else {
			cue.Duration = DefaultCueDuration
		}
		cues = append(cues, cue)
	}
	return cues, nil
}

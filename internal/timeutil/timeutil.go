// Package timeutil formats and parses the timestamp notation used across
// transcripts, chapter listings, and rendered output.
package timeutil

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatTime renders a duration in seconds as HH:MM:SS. Fractional seconds
// are truncated; negative inputs clamp to zero.
func FormatTime(seconds float64) string {
	total := int(seconds)
	if total < 0 {
		total = 0
	}
	hours := total / 3600
	minutes := (total % 3600) / 60
	secs := total % 60
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, secs)
}

// ParseTimestamp converts a MM:SS or H:MM:SS string into seconds. The hour
// field is optional and unpadded values are accepted, matching the notation
// creators use in video descriptions.
func ParseTimestamp(value string) (float64, bool) {
	parts := strings.Split(strings.TrimSpace(value), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, false
	}

	fields := make([]int, 0, 3)
	for _, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || n < 0 {
			return 0, false
		}
		fields = append(fields, n)
	}

	var hours, minutes, secs int
	if len(fields) == 2 {
		minutes, secs = fields[0], fields[1]
	} else {
		hours, minutes, secs = fields[0], fields[1], fields[2]
	}
	if secs > 59 || (len(fields) == 3 && minutes > 59) {
		return 0, false
	}
	return float64(hours*3600 + minutes*60 + secs), true
}

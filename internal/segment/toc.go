package segment

import (
	"fmt"
	"strings"

	"tubenotes/internal/timeutil"
)

const chapterMarker = "🔖 "

// TableOfContents renders a navigable markdown listing of the blocks. When
// any block came from creator-declared chapters, the header says so and
// those entries carry a marker glyph.
func TableOfContents(blocks []Block) string {
	var b strings.Builder
	b.WriteString("# Video Table of Contents\n\n")

	if HasChapterBlocks(blocks) {
		b.WriteString("> ℹ️ Built from the video's chapter markers\n\n")
	}

	for i, block := range blocks {
		marker := ""
		if block.FromChapter {
			marker = chapterMarker
		}
		fmt.Fprintf(&b, "### %d. %s%s\n", i+1, marker, block.Title)
		fmt.Fprintf(&b, "**Start:** %s | **Duration:** %s\n\n",
			timeutil.FormatTime(block.StartTime),
			timeutil.FormatTime(block.Duration()))
	}

	return b.String()
}

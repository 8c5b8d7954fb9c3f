package segment_test

import (
	"strings"
	"testing"

	"tubenotes/internal/segment"
)

func TestTableOfContents(t *testing.T) {
	blocks := []segment.Block{
		{StartTime: 0, EndTime: 75, Title: "Introduction", FromChapter: true},
		{StartTime: 75, EndTime: 200, Title: "Main part"},
	}
	toc := segment.TableOfContents(blocks)

	for _, want := range []string{
		"# Video Table of Contents",
		"chapter markers",
		"### 1. 🔖 Introduction",
		"### 2. Main part",
		"**Start:** 00:00:00 | **Duration:** 00:01:15",
		"**Start:** 00:01:15 | **Duration:** 00:02:05",
	} {
		if !strings.Contains(toc, want) {
			t.Errorf("TOC missing %q:\n%s", want, toc)
		}
	}
}

func TestTableOfContentsWithoutChapters(t *testing.T) {
	blocks := []segment.Block{{StartTime: 0, EndTime: 60, Title: "Only"}}
	toc := segment.TableOfContents(blocks)
	if strings.Contains(toc, "chapter markers") {
		t.Errorf("chapter note should be absent:\n%s", toc)
	}
	if strings.Contains(toc, "🔖") {
		t.Errorf("chapter glyph should be absent:\n%s", toc)
	}
}

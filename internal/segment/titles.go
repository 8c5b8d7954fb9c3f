package segment

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"unicode"
)

// Strategy selects how block titles are produced. Every strategy is total:
// when nothing useful can be extracted the block still receives a numbered
// section title.
type Strategy string

const (
	// StrategyEnhancedKeywords combines the block's lead phrase with its
	// most frequent content words. This is the default.
	StrategyEnhancedKeywords Strategy = "enhanced_keywords"
	// StrategyFirstSentence titles blocks with their opening sentence.
	StrategyFirstSentence Strategy = "first_sentence"
	// StrategySimple titles blocks with their first few words.
	StrategySimple Strategy = "simple"
)

const (
	maxTitleLength      = 70
	maxLeadPhraseLength = 30
	leadPhraseWords     = 7
	topKeywordCount     = 4
)

// TitleService produces a short descriptive title for a block of text. It
// is the capability interface for network-backed title generation; callers
// treat every failure as non-fatal.
type TitleService interface {
	Title(ctx context.Context, text string) (string, error)
}

// maxServiceTextLength caps the text sent to a TitleService.
const maxServiceTextLength = 2000

// GenerateTitles assigns a title to every block in place using the given
// strategy and returns the slice. Unknown strategies fall back to
// StrategySimple.
func GenerateTitles(blocks []Block, strategy Strategy) []Block {
	for i := range blocks {
		switch strategy {
		case StrategyEnhancedKeywords:
			blocks[i].Title = enhancedKeywordTitle(blocks[i].Content, i)
		case StrategyFirstSentence:
			blocks[i].Title = firstSentenceTitle(blocks[i].Content, i)
		default:
			blocks[i].Title = simpleTitle(blocks[i].Content, i)
		}
	}
	return blocks
}

// GenerateTitlesWithService titles blocks through an external service,
// degrading per block to the first words on failure. A nil service titles
// the whole batch with the keyword heuristic instead.
func GenerateTitlesWithService(ctx context.Context, blocks []Block, service TitleService) []Block {
	if service == nil {
		return GenerateTitles(blocks, StrategyEnhancedKeywords)
	}
	for i := range blocks {
		text := blocks[i].Content
		if len(text) > maxServiceTextLength {
			text = text[:maxServiceTextLength] + "..."
		}
		title, err := service.Title(ctx, text)
		title = strings.Trim(strings.TrimSpace(title), `"'`)
		if err != nil || title == "" {
			title = firstWords(blocks[i].Content, leadPhraseWords)
			if title == "" {
				title = sectionTitle(i)
			} else {
				title += "..."
			}
		}
		blocks[i].Title = truncate(title, maxTitleLength)
	}
	return blocks
}

// enhancedKeywordTitle builds "Lead phrase [kw1, kw2, kw3]" from the block
// text, using whichever half is available, and a numbered section title when
// neither is.
func enhancedKeywordTitle(content string, index int) string {
	text := strings.ToLower(content)

	lead := leadPhrase(firstSentence(text))
	keywords := topKeywords(text)

	var title string
	switch {
	case lead != "" && len(keywords) > 0:
		limit := 3
		if limit > len(keywords) {
			limit = len(keywords)
		}
		title = capitalize(lead) + " [" + strings.Join(keywords[:limit], ", ") + "]"
	case lead != "":
		title = capitalize(lead)
	case len(keywords) > 0:
		title = "Topic: " + strings.Join(keywords, ", ")
	default:
		return sectionTitle(index)
	}

	return truncate(title, maxTitleLength)
}

func firstSentenceTitle(content string, index int) string {
	sentence := strings.TrimSpace(firstSentence(content))
	if sentence == "" {
		words := firstWords(content, leadPhraseWords)
		if words == "" {
			return sectionTitle(index)
		}
		return fmt.Sprintf("Section %d: %s...", index+1, words)
	}
	return truncate(sentence, 60)
}

func simpleTitle(content string, index int) string {
	words := firstWords(content, leadPhraseWords)
	if words == "" {
		return sectionTitle(index)
	}
	return truncate(capitalize(words)+"...", maxTitleLength)
}

func sectionTitle(index int) string {
	return fmt.Sprintf("Section %d", index+1)
}

// firstSentence returns the text up to and including the first sentence
// terminator, or the whole text when none is found.
func firstSentence(text string) string {
	for i, r := range text {
		if r == '.' || r == '!' || r == '?' {
			return text[:i+1]
		}
	}
	return text
}

// leadPhrase keeps the first words of a sentence, stripped to alphanumeric
// runes, dropping single-character leftovers. Long phrases are truncated.
func leadPhrase(sentence string) string {
	fields := strings.Fields(sentence)
	if len(fields) > leadPhraseWords {
		fields = fields[:leadPhraseWords]
	}
	clean := make([]string, 0, len(fields))
	for _, word := range fields {
		var b strings.Builder
		for _, r := range word {
			if unicode.IsLetter(r) || unicode.IsDigit(r) {
				b.WriteRune(r)
			}
		}
		if b.Len() > 1 {
			clean = append(clean, b.String())
		}
	}
	phrase := strings.Join(clean, " ")
	return truncate(phrase, maxLeadPhraseLength)
}

// topKeywords returns up to four content words that occur more than once,
// most frequent first. Ties keep first-appearance order so titles are
// deterministic.
func topKeywords(text string) []string {
	words := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	counts := make(map[string]int)
	order := make(map[string]int)
	for i, word := range words {
		if len([]rune(word)) <= 2 {
			continue
		}
		if _, stop := stopwords[word]; stop {
			continue
		}
		if _, seen := counts[word]; !seen {
			order[word] = i
		}
		counts[word]++
	}

	unique := make([]string, 0, len(counts))
	for word, count := range counts {
		if count > 1 {
			unique = append(unique, word)
		}
	}
	sort.Slice(unique, func(i, j int) bool {
		if counts[unique[i]] != counts[unique[j]] {
			return counts[unique[i]] > counts[unique[j]]
		}
		return order[unique[i]] < order[unique[j]]
	})

	if len(unique) > topKeywordCount {
		unique = unique[:topKeywordCount]
	}
	return unique
}

func firstWords(text string, n int) string {
	fields := strings.Fields(text)
	if len(fields) > n {
		fields = fields[:n]
	}
	return strings.Join(fields, " ")
}

func capitalize(text string) string {
	for i, r := range text {
		return string(unicode.ToUpper(r)) + text[i+len(string(r)):]
	}
	return text
}

func truncate(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + "..."
}

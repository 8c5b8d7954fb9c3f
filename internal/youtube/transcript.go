package youtube

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/lrstanley/go-ytdlp"

	"tubenotes/internal/subtitle"
)

// ErrNoSubtitles indicates that the video has no subtitle track in any of
// the requested languages.
var ErrNoSubtitles = errors.New("youtube: no subtitles available")

// Transcript is a downloaded subtitle track with its resolved language.
type Transcript struct {
	Cues     []subtitle.Cue
	Language string
}

// Fetcher downloads subtitle tracks through yt-dlp. The binary is installed
// on first use and cached for the life of the process.
type Fetcher struct {
	installOnce sync.Once
	installErr  error
}

// NewFetcher constructs a subtitle fetcher.
func NewFetcher() *Fetcher {
	return &Fetcher{}
}

func (f *Fetcher) ensureInstalled(ctx context.Context) error {
	f.installOnce.Do(func() {
		_, f.installErr = ytdlp.Install(ctx, nil)
	})
	if f.installErr != nil {
		return fmt.Errorf("youtube: install yt-dlp: %w", f.installErr)
	}
	return nil
}

// Fetch downloads the subtitle track for the video, preferring manual
// subtitles in the requested languages and falling back to auto-generated
// ones. Languages are tried in order.
func (f *Fetcher) Fetch(ctx context.Context, videoID string, languages []string) (Transcript, error) {
	var empty Transcript
	if err := f.ensureInstalled(ctx); err != nil {
		return empty, err
	}
	if len(languages) == 0 {
		languages = []string{"en"}
	}

	dir, err := os.MkdirTemp("", "tubenotes-subs-")
	if err != nil {
		return empty, fmt.Errorf("youtube: temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	dl := ytdlp.New().
		SkipDownload().
		SubFormat("json3").
		SubLangs(strings.Join(languages, ",")).
		WriteSubs().
		WriteAutoSubs().
		Output(filepath.Join(dir, "%(id)s.%(ext)s"))

	if _, err := dl.Run(ctx, "https://www.youtube.com/watch?v="+videoID); err != nil {
		return empty, fmt.Errorf("youtube: yt-dlp: %w", err)
	}

	path, language, err := pickSubtitleFile(dir, languages)
	if err != nil {
		return empty, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return empty, fmt.Errorf("youtube: read subtitles: %w", err)
	}
	cues, err := subtitle.ParseJSON3(data)
	if err != nil {
		return empty, fmt.Errorf("youtube: parse subtitles: %w", err)
	}
	return Transcript{Cues: cues, Language: language}, nil
}

// pickSubtitleFile selects the downloaded track whose language code comes
// earliest in the preference list. Files are named "<id>.<lang>.json3".
func pickSubtitleFile(dir string, languages []string) (string, string, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.json3"))
	if err != nil {
		return "", "", fmt.Errorf("youtube: scan subtitles: %w", err)
	}
	if len(paths) == 0 {
		return "", "", ErrNoSubtitles
	}

	best := paths[0]
	bestLang := subtitleLanguage(best)
	bestRank := languageRank(bestLang, languages)
	for _, path := range paths[1:] {
		lang := subtitleLanguage(path)
		if rank := languageRank(lang, languages); rank < bestRank {
			best, bestLang, bestRank = path, lang, rank
		}
	}
	return best, bestLang, nil
}

func subtitleLanguage(path string) string {
	name := strings.TrimSuffix(filepath.Base(path), ".json3")
	if idx := strings.LastIndex(name, "."); idx >= 0 {
		return name[idx+1:]
	}
	return "unknown"
}

func languageRank(lang string, preferred []string) int {
	for i, candidate := range preferred {
		if lang == candidate || strings.HasPrefix(lang, candidate+"-") {
			return i
		}
	}
	return len(preferred)
}

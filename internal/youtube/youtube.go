package youtube

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"sort"
	"strings"
	"time"

	"tubenotes/internal/segment"
	"tubenotes/internal/timeutil"
)

const (
	defaultOEmbedBaseURL  = "https://www.youtube.com/oembed"
	defaultWatchBaseURL   = "https://www.youtube.com/watch"
	defaultDataAPIBaseURL = "https://www.googleapis.com/youtube/v3/videos"

	defaultHTTPTimeout = 15 * time.Second

	// Fallbacks when the oEmbed lookup fails; processing continues anyway.
	unknownTitle  = "Unknown title"
	unknownAuthor = "Unknown author"
)

var videoIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:v=|/)([0-9A-Za-z_-]{11})`),
	regexp.MustCompile(`embed/([0-9A-Za-z_-]{11})`),
	regexp.MustCompile(`watch\?v=([0-9A-Za-z_-]{11})`),
	regexp.MustCompile(`youtu\.be/([0-9A-Za-z_-]{11})`),
}

var bareVideoID = regexp.MustCompile(`^[0-9A-Za-z_-]{11}$`)

// ErrInvalidURL indicates that no video id could be extracted from the input.
var ErrInvalidURL = errors.New("youtube: invalid video url")

// ExtractVideoID pulls the 11-character video id out of a YouTube URL.
// A bare video id is accepted as-is.
func ExtractVideoID(rawURL string) (string, error) {
	trimmed := strings.TrimSpace(rawURL)
	if trimmed == "" {
		return "", ErrInvalidURL
	}
	if bareVideoID.MatchString(trimmed) {
		return trimmed, nil
	}
	for _, pattern := range videoIDPatterns {
		if match := pattern.FindStringSubmatch(trimmed); match != nil {
			return match[1], nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrInvalidURL, trimmed)
}

// VideoInfo describes a video's public metadata.
type VideoInfo struct {
	VideoID   string
	Title     string
	Author    string
	Thumbnail string
	URL       string
}

// Config carries the endpoints and credentials for the client. Zero values
// use the public YouTube endpoints.
type Config struct {
	DataAPIKey     string
	OEmbedBaseURL  string
	WatchBaseURL   string
	DataAPIBaseURL string
}

// Client looks up video metadata and chapter markers.
type Client struct {
	cfg        Config
	httpClient *http.Client
}

// Option customizes the client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// NewClient constructs a metadata client.
func NewClient(cfg Config, opts ...Option) *Client {
	client := &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: defaultHTTPTimeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	if client.cfg.OEmbedBaseURL == "" {
		client.cfg.OEmbedBaseURL = defaultOEmbedBaseURL
	}
	if client.cfg.WatchBaseURL == "" {
		client.cfg.WatchBaseURL = defaultWatchBaseURL
	}
	if client.cfg.DataAPIBaseURL == "" {
		client.cfg.DataAPIBaseURL = defaultDataAPIBaseURL
	}
	return client
}

// VideoInfo fetches the title and author through the oEmbed endpoint.
// Lookup failures degrade to placeholder metadata rather than an error so
// that subtitle processing can continue.
func (c *Client) VideoInfo(ctx context.Context, videoID string) VideoInfo {
	watchURL := c.cfg.WatchBaseURL + "?v=" + url.QueryEscape(videoID)
	info := VideoInfo{
		VideoID: videoID,
		Title:   unknownTitle,
		Author:  unknownAuthor,
		URL:     watchURL,
	}

	endpoint := c.cfg.OEmbedBaseURL + "?url=" + url.QueryEscape(watchURL) + "&format=json"
	body, err := c.get(ctx, endpoint)
	if err != nil {
		return info
	}
	var payload struct {
		Title        string `json:"title"`
		AuthorName   string `json:"author_name"`
		ThumbnailURL string `json:"thumbnail_url"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return info
	}
	if title := strings.TrimSpace(payload.Title); title != "" {
		info.Title = title
	}
	if author := strings.TrimSpace(payload.AuthorName); author != "" {
		info.Author = author
	}
	info.Thumbnail = strings.TrimSpace(payload.ThumbnailURL)
	return info
}

func (c *Client) get(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("youtube: http %d from %s", resp.StatusCode, endpoint)
	}
	return io.ReadAll(resp.Body)
}

// ChapterSource yields chapter markers for a video. Implementations return
// an empty slice when no chapters are available; errors are reserved for
// the caller deciding whether to log, never for "not found".
type ChapterSource interface {
	Chapters(ctx context.Context, videoID string) []segment.Chapter
}

var embeddedChapters = regexp.MustCompile(`"chapters":\[(.*?)\]`)

// Chapters scrapes the watch page for the embedded chapter JSON. Any fetch
// or parse failure yields an empty list.
func (c *Client) Chapters(ctx context.Context, videoID string) []segment.Chapter {
	body, err := c.get(ctx, c.cfg.WatchBaseURL+"?v="+url.QueryEscape(videoID))
	if err != nil {
		return nil
	}
	match := embeddedChapters.FindSubmatch(body)
	if match == nil {
		return nil
	}
	var raw []struct {
		Title       string  `json:"title"`
		ChapterName string  `json:"chapterName"`
		StartTime   float64 `json:"start_time"`
		StartTimeMs float64 `json:"startTime"`
	}
	if err := json.Unmarshal([]byte("["+string(match[1])+"]"), &raw); err != nil {
		return nil
	}

	chapters := make([]segment.Chapter, 0, len(raw))
	for i, entry := range raw {
		title := strings.TrimSpace(entry.Title)
		if title == "" {
			title = strings.TrimSpace(entry.ChapterName)
		}
		if title == "" {
			title = fmt.Sprintf("Chapter %d", i+1)
		}
		start := entry.StartTime
		if start == 0 && entry.StartTimeMs > 0 {
			start = entry.StartTimeMs
		}
		chapters = append(chapters, segment.Chapter{Title: title, StartTime: start})
	}
	sort.SliceStable(chapters, func(i, j int) bool {
		return chapters[i].StartTime < chapters[j].StartTime
	})
	return fillChapterEnds(chapters)
}

// descriptionClient adapts the Data API description scan to ChapterSource.
type descriptionClient struct {
	client *Client
}

func (d descriptionClient) Chapters(ctx context.Context, videoID string) []segment.Chapter {
	return d.client.DescriptionChapters(ctx, videoID)
}

// DescriptionSource exposes the Data API description scan as a
// ChapterSource, consulted after the watch-page scrape.
func (c *Client) DescriptionSource() ChapterSource {
	return descriptionClient{client: c}
}

var descriptionTimestamp = regexp.MustCompile(`(?m)^\s*((?:\d{1,2}:)?\d{1,2}:\d{2})\s+(.+)$`)

// DescriptionChapters scans the video description for timestamp lines
// ("MM:SS Title" or "H:MM:SS Title") through the Data API. Without an API
// key the lookup is skipped.
func (c *Client) DescriptionChapters(ctx context.Context, videoID string) []segment.Chapter {
	if c.cfg.DataAPIKey == "" {
		return nil
	}
	endpoint := c.cfg.DataAPIBaseURL +
		"?part=snippet&id=" + url.QueryEscape(videoID) +
		"&key=" + url.QueryEscape(c.cfg.DataAPIKey)
	body, err := c.get(ctx, endpoint)
	if err != nil {
		return nil
	}
	var payload struct {
		Items []struct {
			Snippet struct {
				Description string `json:"description"`
			} `json:"snippet"`
		} `json:"items"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || len(payload.Items) == 0 {
		return nil
	}
	return ParseDescriptionChapters(payload.Items[0].Snippet.Description)
}

// ParseDescriptionChapters extracts chapters from timestamp lines in a
// video description. Lines must start with a timestamp followed by a title.
func ParseDescriptionChapters(description string) []segment.Chapter {
	matches := descriptionTimestamp.FindAllStringSubmatch(description, -1)
	if len(matches) == 0 {
		return nil
	}
	chapters := make([]segment.Chapter, 0, len(matches))
	for _, match := range matches {
		start, ok := timeutil.ParseTimestamp(match[1])
		if !ok {
			continue
		}
		title := strings.TrimSpace(match[2])
		if title == "" {
			continue
		}
		chapters = append(chapters, segment.Chapter{Title: title, StartTime: start})
	}
	return fillChapterEnds(chapters)
}

// fillChapterEnds sets each chapter's end to the next chapter's start. The
// final chapter stays open ended; the splitter resolves it against the last
// cue.
func fillChapterEnds(chapters []segment.Chapter) []segment.Chapter {
	for i := range chapters {
		if i+1 < len(chapters) {
			end := chapters[i+1].StartTime
			chapters[i].EndTime = &end
		}
	}
	return chapters
}

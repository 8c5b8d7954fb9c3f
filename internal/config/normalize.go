package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeYouTube()
	c.normalizeLLM()
	c.normalizeEmbeddings()
	c.normalizeSegmentation()
	c.normalizeChunking()
	c.normalizeChat()
	c.normalizeTranslation()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir
	}
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeYouTube() {
	langs := make([]string, 0, len(c.YouTube.Languages))
	seen := make(map[string]struct{}, len(c.YouTube.Languages))
	for _, lang := range c.YouTube.Languages {
		normalized := strings.ToLower(strings.TrimSpace(lang))
		if normalized == "" {
			continue
		}
		if _, exists := seen[normalized]; exists {
			continue
		}
		seen[normalized] = struct{}{}
		langs = append(langs, normalized)
	}
	if len(langs) == 0 {
		langs = []string{"en"}
	}
	c.YouTube.Languages = langs

	c.YouTube.DataAPIKey = strings.TrimSpace(c.YouTube.DataAPIKey)
	if c.YouTube.DataAPIKey == "" {
		if value, ok := os.LookupEnv("YOUTUBE_DATA_API_KEY"); ok {
			c.YouTube.DataAPIKey = strings.TrimSpace(value)
		}
	}
}

func (c *Config) normalizeLLM() {
	c.LLM.APIKey = strings.TrimSpace(c.LLM.APIKey)
	if c.LLM.APIKey == "" {
		if value, ok := os.LookupEnv("TUBENOTES_LLM_API_KEY"); ok {
			c.LLM.APIKey = strings.TrimSpace(value)
		} else if value, ok := os.LookupEnv("OPENAI_API_KEY"); ok {
			c.LLM.APIKey = strings.TrimSpace(value)
		}
	}
	c.LLM.BaseURL = strings.TrimSpace(c.LLM.BaseURL)
	if c.LLM.BaseURL == "" {
		c.LLM.BaseURL = defaultLLMBaseURL
	}
	c.LLM.Model = strings.TrimSpace(c.LLM.Model)
	if c.LLM.Model == "" {
		c.LLM.Model = defaultLLMModel
	}
	if c.LLM.TimeoutSeconds <= 0 {
		c.LLM.TimeoutSeconds = defaultLLMTimeoutSeconds
	}
	if c.LLM.Temperature < 0 {
		c.LLM.Temperature = 0
	}
}

func (c *Config) normalizeEmbeddings() {
	c.Embeddings.APIKey = strings.TrimSpace(c.Embeddings.APIKey)
	if c.Embeddings.APIKey == "" {
		// Embeddings share the chat credentials unless set explicitly.
		c.Embeddings.APIKey = c.LLM.APIKey
	}
	c.Embeddings.BaseURL = strings.TrimSpace(c.Embeddings.BaseURL)
	if c.Embeddings.BaseURL == "" {
		c.Embeddings.BaseURL = defaultEmbeddingsBaseURL
	}
	c.Embeddings.Model = strings.TrimSpace(c.Embeddings.Model)
	if c.Embeddings.Model == "" {
		c.Embeddings.Model = defaultEmbeddingsModel
	}
}

func (c *Config) normalizeSegmentation() {
	if c.Segmentation.MinBlockDuration <= 0 {
		c.Segmentation.MinBlockDuration = defaultMinBlockDuration
	}
	if c.Segmentation.MinPauseThreshold <= 0 {
		c.Segmentation.MinPauseThreshold = defaultMinPauseThreshold
	}
	if c.Segmentation.MaxBlockSize <= 0 {
		c.Segmentation.MaxBlockSize = defaultMaxBlockSize
	}
	c.Segmentation.TitleStrategy = strings.ToLower(strings.TrimSpace(c.Segmentation.TitleStrategy))
	if c.Segmentation.TitleStrategy == "" {
		c.Segmentation.TitleStrategy = defaultTitleStrategy
	}
}

func (c *Config) normalizeChunking() {
	if c.Chunking.Size <= 0 {
		c.Chunking.Size = defaultChunkSize
	}
	if c.Chunking.Overlap < 0 {
		c.Chunking.Overlap = defaultChunkOverlap
	}
}

func (c *Config) normalizeChat() {
	if c.Chat.TopK <= 0 {
		c.Chat.TopK = defaultChatTopK
	}
	if c.Chat.HistoryLimit <= 0 {
		c.Chat.HistoryLimit = defaultChatHistoryLimit
	}
}

func (c *Config) normalizeTranslation() {
	if c.Translation.BatchSize <= 0 {
		c.Translation.BatchSize = defaultTranslationBatch
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

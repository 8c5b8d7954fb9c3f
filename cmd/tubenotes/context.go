package main

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"tubenotes/internal/config"
	"tubenotes/internal/embed"
	"tubenotes/internal/llm"
	"tubenotes/internal/store"
	"tubenotes/internal/youtube"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// withStore opens the session store for the duration of fn.
func (c *commandContext) withStore(fn func(*config.Config, *store.Store) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	st, err := store.Open(cfg)
	if err != nil {
		return err
	}
	defer st.Close()
	return fn(cfg, st)
}

// loadSession restores the stored session for a URL or bare video ID.
func loadSession(ctx context.Context, st *store.Store, rawURL string) (*store.Session, error) {
	videoID, err := youtube.ExtractVideoID(rawURL)
	if err != nil {
		return nil, err
	}
	session, err := st.LoadSession(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, fmt.Errorf("video %s has not been processed; run `tubenotes process %s` first", videoID, rawURL)
	}
	return session, nil
}

func newLLMClient(cfg *config.Config) (*llm.Client, error) {
	if strings.TrimSpace(cfg.LLM.APIKey) == "" {
		return nil, fmt.Errorf("llm api_key is not configured (set it in the config file or export OPENAI_API_KEY)")
	}
	return llm.NewClient(llm.Config{
		APIKey:         cfg.LLM.APIKey,
		BaseURL:        cfg.LLM.BaseURL,
		Model:          cfg.LLM.Model,
		Temperature:    cfg.LLM.Temperature,
		TimeoutSeconds: cfg.LLM.TimeoutSeconds,
	}), nil
}

func newEmbedClient(cfg *config.Config) (*embed.Client, error) {
	if !cfg.Embeddings.Enabled {
		return nil, fmt.Errorf("embeddings are disabled in the configuration")
	}
	if strings.TrimSpace(cfg.Embeddings.APIKey) == "" {
		return nil, fmt.Errorf("embeddings api_key is not configured")
	}
	return embed.NewClient(embed.Config{
		APIKey:         cfg.Embeddings.APIKey,
		BaseURL:        cfg.Embeddings.BaseURL,
		Model:          cfg.Embeddings.Model,
		TimeoutSeconds: cfg.Embeddings.TimeoutSeconds,
	}), nil
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}

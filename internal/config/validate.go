package config

import (
	"errors"
	"fmt"
)

var validTitleStrategies = map[string]struct{}{
	"enhanced_keywords": {},
	"first_sentence":    {},
	"simple":            {},
}

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateSegmentation(); err != nil {
		return err
	}
	if err := c.validateChunking(); err != nil {
		return err
	}
	if err := c.validateChat(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateSegmentation() error {
	if c.Segmentation.MinBlockDuration <= 0 {
		return errors.New("segmentation.min_block_duration must be positive")
	}
	if c.Segmentation.MinPauseThreshold <= 0 {
		return errors.New("segmentation.min_pause_threshold must be positive")
	}
	if c.Segmentation.MaxBlockSize <= 0 {
		return errors.New("segmentation.max_block_size must be positive")
	}
	if _, ok := validTitleStrategies[c.Segmentation.TitleStrategy]; !ok {
		return fmt.Errorf("segmentation.title_strategy %q is not one of enhanced_keywords, first_sentence, simple", c.Segmentation.TitleStrategy)
	}
	return nil
}

func (c *Config) validateChunking() error {
	if c.Chunking.Size <= 0 {
		return errors.New("chunking.size must be positive")
	}
	if c.Chunking.Overlap < 0 {
		return errors.New("chunking.overlap must be >= 0")
	}
	if c.Chunking.Overlap >= c.Chunking.Size {
		return errors.New("chunking.overlap must be smaller than chunking.size")
	}
	return nil
}

func (c *Config) validateChat() error {
	if c.Chat.TopK <= 0 {
		return errors.New("chat.top_k must be positive")
	}
	if c.Chat.HistoryLimit <= 0 {
		return errors.New("chat.history_limit must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level %q is not one of debug, info, warn, error", c.Logging.Level)
	}
}

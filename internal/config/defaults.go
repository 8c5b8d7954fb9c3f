package config

const (
	defaultDataDir            = "~/.local/share/tubenotes"
	defaultLogDir             = "~/.local/share/tubenotes/logs"
	defaultLLMBaseURL         = "https://api.openai.com/v1/chat/completions"
	defaultLLMModel           = "gpt-4o-mini"
	defaultLLMTimeoutSeconds  = 60
	defaultEmbeddingsBaseURL  = "https://api.openai.com/v1/embeddings"
	defaultEmbeddingsModel    = "text-embedding-3-small"
	defaultMinBlockDuration   = 60.0
	defaultMinPauseThreshold  = 3.0
	defaultMaxBlockSize       = 25
	defaultTitleStrategy      = "enhanced_keywords"
	defaultChunkSize          = 1000
	defaultChunkOverlap       = 100
	defaultChatTopK           = 3
	defaultChatHistoryLimit   = 10
	defaultTranslationBatch   = 8
	defaultLogFormat          = "console"
	defaultLogLevel           = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		YouTube: YouTube{
			Languages: []string{"en"},
		},
		LLM: LLM{
			BaseURL:        defaultLLMBaseURL,
			Model:          defaultLLMModel,
			TimeoutSeconds: defaultLLMTimeoutSeconds,
		},
		Embeddings: Embeddings{
			Enabled: true,
			BaseURL: defaultEmbeddingsBaseURL,
			Model:   defaultEmbeddingsModel,
		},
		Segmentation: Segmentation{
			MinBlockDuration:  defaultMinBlockDuration,
			MinPauseThreshold: defaultMinPauseThreshold,
			MaxBlockSize:      defaultMaxBlockSize,
			TitleStrategy:     defaultTitleStrategy,
		},
		Chunking: Chunking{
			Size:    defaultChunkSize,
			Overlap: defaultChunkOverlap,
		},
		Chat: Chat{
			TopK:         defaultChatTopK,
			HistoryLimit: defaultChatHistoryLimit,
		},
		Translation: Translation{
			BatchSize: defaultTranslationBatch,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}

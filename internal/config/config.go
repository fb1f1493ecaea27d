// Package config loads the application configuration from YAML, falling
// back to sensible defaults when no config file exists.
package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// MatcherConfig tunes the lexical match stage.
type MatcherConfig struct {
	// LocalMatchThreshold is the minimum cosine similarity for a corpus
	// answer to be returned directly without generation. A pointer so an
	// explicit 0 (always match locally) survives default application.
	LocalMatchThreshold *float64 `yaml:"local_match_threshold"`
	// ContextThreshold is the minimum similarity for an entry to be
	// included as grounding context in the generative fallback.
	ContextThreshold float64 `yaml:"context_threshold"`
	// ContextTopK caps how many entries are passed as context.
	ContextTopK int `yaml:"context_top_k"`
}

// CorpusConfig locates the FAQ corpus file.
type CorpusConfig struct {
	Path string `yaml:"path"`
	// Watch enables reloading the index when the corpus file changes.
	Watch bool `yaml:"watch"`
}

// VectorStoreConfig selects and configures the vector store implementation.
type VectorStoreConfig struct {
	Type   string        `yaml:"type"`
	Qdrant *QdrantConfig `yaml:"qdrant,omitempty"`
}

// QdrantConfig contains connection details for a Qdrant vector store.
type QdrantConfig struct {
	URL         string `yaml:"url"`
	APIKey      string `yaml:"api_key"`
	Collection  string `yaml:"collection"`
	TimeoutSecs int    `yaml:"timeout_secs"`
}

// OpenAICompletionConfig holds configuration for the OpenAI-compatible
// chat completion backend.
type OpenAICompletionConfig struct {
	BaseURL   string `yaml:"base_url"`
	APIKeyEnv string `yaml:"api_key_env"`
	Model     string `yaml:"model"`
	// Temperature is a pointer so an explicit 0 (greedy decoding) is
	// distinguishable from unset.
	Temperature *float64 `yaml:"temperature"`
	MaxTokens   int      `yaml:"max_tokens"`
	TimeoutSecs int      `yaml:"timeout_secs"`
}

// CompletionConfig selects and configures the generative backend.
type CompletionConfig struct {
	Type   string                  `yaml:"type"`
	OpenAI *OpenAICompletionConfig `yaml:"openai,omitempty"`
}

// ServerConfig configures the HTTP API server.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Corpus      CorpusConfig      `yaml:"corpus"`
	Matcher     MatcherConfig     `yaml:"matcher"`
	VectorStore VectorStoreConfig `yaml:"vector_store"`
	Completion  CompletionConfig  `yaml:"completion"`
	Server      ServerConfig      `yaml:"server"`
}

// Load reads a config from a specified path. If the file does not exist, returns defaults.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return defaultConfig(), nil
		}
		return nil, err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	applyConfigDefaults(&cfg)
	return &cfg, nil
}

// LoadDefault tries ./config.yaml first, then ~/.config/faqbot/config.yaml.
// If neither exists, it writes defaults to ~/.config/faqbot/config.yaml and returns them.
func LoadDefault() (*AppConfig, string, error) {
	cwdPath := "config.yaml"
	if _, err := os.Stat(cwdPath); err == nil {
		cfg, err := Load(cwdPath)
		return cfg, cwdPath, err
	}
	userPath, err := defaultUserConfigPath()
	if err != nil {
		return nil, "", err
	}
	if _, err := os.Stat(userPath); err == nil {
		cfg, err := Load(userPath)
		return cfg, userPath, err
	}
	cfg := defaultConfig()
	if err := Save(userPath, cfg); err != nil {
		return nil, "", err
	}
	return cfg, userPath, nil
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func defaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "faqbot", "config.yaml"), nil
}

func defaultConfig() *AppConfig {
	return &AppConfig{
		Corpus: CorpusConfig{Path: "faqs.json"},
		Matcher: MatcherConfig{
			LocalMatchThreshold: f64(0.6),
			ContextThreshold:    0.2,
			ContextTopK:         3,
		},
		VectorStore: VectorStoreConfig{Type: "memory"},
		Completion: CompletionConfig{
			Type: "openai",
			OpenAI: &OpenAICompletionConfig{
				BaseURL:     "https://api.openai.com/v1",
				APIKeyEnv:   "OPENAI_API_KEY",
				Model:       "gpt-4o",
				Temperature: f64(0.7),
				MaxTokens:   500,
				TimeoutSecs: 30,
			},
		},
		Server: ServerConfig{Addr: ":8080"},
	}
}

func applyConfigDefaults(cfg *AppConfig) {
	if cfg.Corpus.Path == "" {
		cfg.Corpus.Path = "faqs.json"
	}
	if cfg.Matcher.LocalMatchThreshold == nil {
		cfg.Matcher.LocalMatchThreshold = f64(0.6)
	}
	if cfg.Matcher.ContextThreshold == 0 {
		cfg.Matcher.ContextThreshold = 0.2
	}
	if cfg.Matcher.ContextTopK == 0 {
		cfg.Matcher.ContextTopK = 3
	}
	if cfg.VectorStore.Type == "" {
		cfg.VectorStore.Type = "memory"
	}
	if cfg.VectorStore.Type == "qdrant" && cfg.VectorStore.Qdrant != nil {
		if cfg.VectorStore.Qdrant.Collection == "" {
			cfg.VectorStore.Qdrant.Collection = "faqbot"
		}
		if cfg.VectorStore.Qdrant.TimeoutSecs == 0 {
			cfg.VectorStore.Qdrant.TimeoutSecs = 10
		}
	}
	if cfg.Completion.Type == "" {
		cfg.Completion.Type = "openai"
	}
	if cfg.Completion.Type == "openai" {
		if cfg.Completion.OpenAI == nil {
			cfg.Completion.OpenAI = &OpenAICompletionConfig{}
		}
		o := cfg.Completion.OpenAI
		if o.BaseURL == "" {
			o.BaseURL = "https://api.openai.com/v1"
		}
		if o.APIKeyEnv == "" {
			o.APIKeyEnv = "OPENAI_API_KEY"
		}
		if o.Model == "" {
			o.Model = "gpt-4o"
		}
		if o.Temperature == nil {
			o.Temperature = f64(0.7)
		}
		if o.MaxTokens == 0 {
			o.MaxTokens = 500
		}
		if o.TimeoutSecs == 0 {
			o.TimeoutSecs = 30
		}
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
}

func f64(v float64) *float64 { return &v }

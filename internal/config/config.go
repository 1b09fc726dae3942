// Package config provides configuration loading and structs for the sqlrag service.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application.
type Config struct {
	Debug      bool             `yaml:"debug"`
	Server     ServerConfig     `yaml:"server"`
	Storage    StorageConfig    `yaml:"storage"`
	Embedding  EmbeddingConfig  `yaml:"embedding"`
	Generation GenerationConfig `yaml:"generation"`
	Chunking   ChunkingConfig   `yaml:"chunking"`
	Retrieval  RetrievalConfig  `yaml:"retrieval"`
	Chat       ChatConfig       `yaml:"chat"`
	Ingest     IngestConfig     `yaml:"ingest"`
	Watch      WatchConfig      `yaml:"watch"`
}

// WatchConfig holds inbox directory watch settings.
type WatchConfig struct {
	Directories []string `yaml:"directories"`
	Extensions  []string `yaml:"extensions"`
	Recursive   *bool    `yaml:"recursive"`
}

// RecursiveOrDefault returns whether to watch recursively; defaults to true when unset.
func (w *WatchConfig) RecursiveOrDefault() bool {
	if w.Recursive != nil {
		return *w.Recursive
	}
	return true
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// StorageConfig holds the path of the embeddings database.
type StorageConfig struct {
	DatabasePath string `yaml:"database_path"`
}

// EmbeddingConfig selects and configures the embedding provider.
// Provider is one of "onnx", "openai" or "mock".
type EmbeddingConfig struct {
	Provider   string `yaml:"provider"`
	ModelPath  string `yaml:"model_path"`
	Dimensions int    `yaml:"dimensions"`
	MaxTokens  int    `yaml:"max_tokens"`
	Model      string `yaml:"model"`
	BaseURL    string `yaml:"base_url"`
	APIKeyEnv  string `yaml:"api_key_env"`
}

// GenerationConfig configures the OpenAI-compatible chat model (OpenAI, Ollama /v1, vLLM).
type GenerationConfig struct {
	Model       string  `yaml:"model"`
	BaseURL     string  `yaml:"base_url"`
	APIKeyEnv   string  `yaml:"api_key_env"`
	Temperature float64 `yaml:"temperature"`
}

// ChunkingConfig holds chunk size and overlap in characters.
type ChunkingConfig struct {
	Size      int    `yaml:"size"`
	Overlap   int    `yaml:"overlap"`
	Separator string `yaml:"separator"`
}

// RetrievalConfig holds similarity retrieval settings.
type RetrievalConfig struct {
	TopK      int    `yaml:"top_k"`
	Retriever string `yaml:"retriever"`
}

// ChatConfig holds conversation settings. MaxHistoryMessages of 0 keeps the whole history.
// RejectConcurrent answers a second query on a busy session with an error instead of queueing it.
type ChatConfig struct {
	Greeting           string `yaml:"greeting"`
	MaxHistoryMessages int    `yaml:"max_history_messages"`
	RejectConcurrent   bool   `yaml:"reject_concurrent"`
}

// IngestConfig holds ingestion policy. UnsupportedPolicy is "skip" or "reject".
type IngestConfig struct {
	UnsupportedPolicy string `yaml:"unsupported_policy"`
}

// Load reads and parses the config file at path, expands paths, and applies defaults.
// Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	ApplyDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	configDir := filepath.Dir(path)
	cfg.Storage.DatabasePath = expandPath(cfg.Storage.DatabasePath, configDir)
	cfg.Embedding.ModelPath = expandPath(cfg.Embedding.ModelPath, configDir)
	for i := range cfg.Watch.Directories {
		cfg.Watch.Directories[i] = expandPath(cfg.Watch.Directories[i], configDir)
	}

	return &cfg, nil
}

// Validate rejects values that defaults cannot repair.
func (c *Config) Validate() error {
	switch c.Embedding.Provider {
	case "onnx", "openai", "mock":
	default:
		return fmt.Errorf("unknown embedding provider: %s (supported: onnx, openai, mock)", c.Embedding.Provider)
	}
	switch c.Ingest.UnsupportedPolicy {
	case "skip", "reject":
	default:
		return fmt.Errorf("unknown unsupported_policy: %s (supported: skip, reject)", c.Ingest.UnsupportedPolicy)
	}
	if c.Chunking.Overlap >= c.Chunking.Size {
		return fmt.Errorf("chunking overlap (%d) must be smaller than size (%d)", c.Chunking.Overlap, c.Chunking.Size)
	}
	if c.Chat.MaxHistoryMessages < 0 {
		return fmt.Errorf("max_history_messages must not be negative")
	}
	return nil
}

// Save writes the config to path.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// APIKey returns the value of the environment variable named by envName, or "".
func APIKey(envName string) string {
	if envName == "" {
		return ""
	}
	return os.Getenv(envName)
}

// expandPath converts a path to absolute. Paths starting with "./" are relative to configDir;
// other relative paths are relative to the home directory.
func expandPath(path string, configDir string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "./") || path == "." {
		return filepath.Join(configDir, path)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, path)
	}
	return path
}

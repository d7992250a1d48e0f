package config

import (
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the document Q&A service. Settings
// are process-wide and fixed at startup.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Ingest    IngestConfig    `yaml:"ingest"`
	Embedding EmbeddingConfig `yaml:"embedding"`
	Retrieve  RetrieveConfig  `yaml:"retrieve"`
	Storage   StorageConfig   `yaml:"storage"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Addr               string `yaml:"addr"`
	RequestTimeoutSec  int    `yaml:"request_timeout_sec"`
	ShutdownTimeoutSec int    `yaml:"shutdown_timeout_sec"`
	MaxUploadBytes     int64  `yaml:"max_upload_bytes"`
}

// RequestTimeout returns the per-request timeout.
func (c ServerConfig) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSec) * time.Second
}

// ShutdownTimeout returns the graceful shutdown deadline.
func (c ServerConfig) ShutdownTimeout() time.Duration {
	return time.Duration(c.ShutdownTimeoutSec) * time.Second
}

// IngestConfig holds chunking configuration.
type IngestConfig struct {
	ChunkTokens  int `yaml:"chunk_tokens"`
	ChunkOverlap int `yaml:"chunk_overlap"`
}

// EmbeddingConfig holds embedding model configuration. The model is
// loaded once at startup and shared; swapping it invalidates previously
// built indices.
type EmbeddingConfig struct {
	Provider   string `yaml:"provider"`    // "openai", "ollama", "local"
	Model      string `yaml:"model"`       // e.g. "all-minilm"
	APIKeyEnv  string `yaml:"api_key_env"` // environment variable holding the API key
	BaseURL    string `yaml:"base_url"`
	Dimension  int    `yaml:"dimension"` // 0 = derive from model
	BatchSize  int    `yaml:"batch_size"`
	TimeoutSec int    `yaml:"timeout_sec"`
}

// Timeout bounds a single embedding inference call.
func (c EmbeddingConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSec) * time.Second
}

// RetrieveConfig holds retrieval configuration.
type RetrieveConfig struct {
	TopK         int  `yaml:"top_k"`
	CacheEnabled bool `yaml:"cache_enabled"`
	CacheSize    int  `yaml:"cache_size"`
	CacheTTLSec  int  `yaml:"cache_ttl_sec"`
}

// CacheTTL returns the answer cache entry lifetime.
func (c RetrieveConfig) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSec) * time.Second
}

// StorageConfig holds on-disk persistence configuration.
type StorageConfig struct {
	DataDir string `yaml:"data_dir"`
	Persist bool   `yaml:"persist"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:               ":8080",
			RequestTimeoutSec:  30,
			ShutdownTimeoutSec: 10,
			MaxUploadBytes:     32 << 20,
		},
		Ingest: IngestConfig{
			ChunkTokens:  500,
			ChunkOverlap: 50,
		},
		Embedding: EmbeddingConfig{
			Provider:   "local",
			Model:      "all-minilm",
			APIKeyEnv:  "OPENAI_API_KEY",
			Dimension:  384,
			BatchSize:  100,
			TimeoutSec: 60,
		},
		Retrieve: RetrieveConfig{
			TopK:         5,
			CacheEnabled: true,
			CacheSize:    100,
			CacheTTLSec:  300,
		},
		Storage: StorageConfig{
			DataDir: "./data",
			Persist: true,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from a YAML file, falling back to defaults
// when the file does not exist.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromDir loads configuration from a directory (looks for docqa.yaml).
func LoadFromDir(dir string) (*Config, error) {
	path := filepath.Join(dir, "docqa.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}
	return DefaultConfig(), nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// StoreDBPath returns the path to the persistence database.
func StoreDBPath(dataDir string) string {
	return filepath.Join(dataDir, "docqa.db")
}

// EnsureDataDir ensures the data directory exists.
func EnsureDataDir(dataDir string) error {
	return os.MkdirAll(dataDir, 0755)
}

// Package config provides application configuration management with
// multi-source priority.
//
// Configuration sources (highest to lowest priority):
//  1. Environment variables (STUDYOWL_* prefix, runtime override)
//  2. Config file (~/.studyowl/config.yaml or ./config.yaml)
//  3. Default values
//
// Main configuration categories:
//   - Chunking: chunk size and overlap for document splitting
//   - Embedder: model name and vector dimension
//   - Storage: on-disk location of the vector index
//   - Retrieval: default top-k for semantic queries
//   - Server: HTTP listen address
//
// Validation is fail-fast: callers run Validate before the pipeline
// touches any document, and out-of-range values surface as sentinel
// errors supporting errors.Is() checks. The API key is read from the
// environment only and is never written to the config file or logged.
// Load itself does not validate, so display-only commands can still
// read the configuration without an API key.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

var (
	// ErrConfigNil indicates the configuration is nil.
	ErrConfigNil = errors.New("configuration is nil")

	// ErrMissingAPIKey indicates the embedding API key is missing.
	ErrMissingAPIKey = errors.New("missing API key")

	// ErrInvalidChunkSize indicates the chunk size is out of range.
	ErrInvalidChunkSize = errors.New("invalid chunk size")

	// ErrInvalidChunkOverlap indicates the overlap is negative or not
	// smaller than the chunk size.
	ErrInvalidChunkOverlap = errors.New("invalid chunk overlap")

	// ErrInvalidEmbedderModel indicates the embedder model is invalid.
	ErrInvalidEmbedderModel = errors.New("invalid embedder model")

	// ErrInvalidEmbedderDimension indicates the embedder vector dimension is invalid.
	ErrInvalidEmbedderDimension = errors.New("invalid embedder dimension")

	// ErrInvalidTopK indicates the retrieval top-k is out of range.
	ErrInvalidTopK = errors.New("invalid retrieval top-k")

	// ErrInvalidStorageDir indicates the index storage directory is invalid.
	ErrInvalidStorageDir = errors.New("invalid storage directory")
)

const (
	// DefaultEmbedderModel is the default embedding model identifier.
	DefaultEmbedderModel = "text-embedding-004"

	// DefaultEmbedderDimension is the vector dimension of the reference
	// embedding model. Must match the model configured above; the store
	// rejects vectors of any other length.
	DefaultEmbedderDimension = 384

	// DefaultChunkSize is the target chunk length in characters.
	DefaultChunkSize = 1000

	// DefaultChunkOverlap is the character overlap between consecutive chunks.
	DefaultChunkOverlap = 200

	// DefaultTopK is the default number of passages returned per query.
	DefaultTopK = 5

	// MaxTopK bounds per-query result counts to keep retrieval latency predictable.
	MaxTopK = 20
)

// Config stores application configuration.
type Config struct {
	// Chunking configuration
	ChunkSize    int `mapstructure:"chunk_size" json:"chunk_size"`
	ChunkOverlap int `mapstructure:"chunk_overlap" json:"chunk_overlap"`

	// Embedder configuration
	EmbedderModel     string `mapstructure:"embedder_model" json:"embedder_model"`
	EmbedderDimension int    `mapstructure:"embedder_dimension" json:"embedder_dimension"`

	// Storage configuration: directory holding the persistent vector index.
	StorageDir string `mapstructure:"storage_dir" json:"storage_dir"`

	// Retrieval configuration
	TopK int `mapstructure:"top_k" json:"top_k"`

	// Server configuration
	ServerAddr string `mapstructure:"server_addr" json:"server_addr"`
}

// Load loads configuration.
// Priority: Environment variables > Configuration file > Default values
func Load() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("getting user home directory: %w", err)
	}

	configDir := filepath.Join(home, ".studyowl")

	// 0750: the directory may hold a config file referencing private material.
	if err := os.MkdirAll(configDir, 0o750); err != nil {
		return nil, fmt.Errorf("creating config directory: %w", err)
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configDir)
	v.AddConfigPath(".")

	setDefaults(v, configDir)

	v.SetEnvPrefix("STUDYOWL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is not an error; defaults apply.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		slog.Debug("configuration file not found, using defaults",
			"search_paths", []string{configDir, "."})
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets all default configuration values.
func setDefaults(v *viper.Viper, configDir string) {
	v.SetDefault("chunk_size", DefaultChunkSize)
	v.SetDefault("chunk_overlap", DefaultChunkOverlap)
	v.SetDefault("embedder_model", DefaultEmbedderModel)
	v.SetDefault("embedder_dimension", DefaultEmbedderDimension)
	v.SetDefault("storage_dir", filepath.Join(configDir, "index"))
	v.SetDefault("top_k", DefaultTopK)
	v.SetDefault("server_addr", "127.0.0.1:8400")
}

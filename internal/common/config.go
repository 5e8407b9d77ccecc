package common

import (
	"fmt"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration
type Config struct {
	Environment string           `toml:"environment"` // "development" or "production"
	Server      ServerConfig     `toml:"server"`
	Storage     StorageConfig    `toml:"storage"`
	Logging     LoggingConfig    `toml:"logging"`
	Processing  ProcessingConfig `toml:"processing"`
	LLM         LLMConfig        `toml:"llm"`
	Claude      ClaudeConfig     `toml:"claude"`
	OpenAI      OpenAIConfig     `toml:"openai"`
	Market      MarketConfig     `toml:"market"`
	Reports     ReportsConfig    `toml:"reports"`
}

type ServerConfig struct {
	Port int    `toml:"port"`
	Host string `toml:"host"`
}

type StorageConfig struct {
	Badger BadgerConfig `toml:"badger"`
}

// BadgerConfig represents BadgerDB-specific configuration
type BadgerConfig struct {
	Path           string `toml:"path"`             // Database directory path
	ResetOnStartup bool   `toml:"reset_on_startup"` // Delete database on startup for clean test runs
}

type LoggingConfig struct {
	Level      string   `toml:"level"`       // "debug", "info", "warn", "error"
	Output     []string `toml:"output"`      // "stdout", "file"
	TimeFormat string   `toml:"time_format"` // Time format for logs
}

// ProcessingConfig holds the chunking and retrieval parameters.
// Cross-field constraints (min < max, overlap < max) are enforced by
// Validate at startup; the pipeline assumes they hold.
type ProcessingConfig struct {
	MaxChunkSize int `toml:"max_chunk_size" validate:"gt=0"` // Window size in tokens
	MinChunkSize int `toml:"min_chunk_size" validate:"gt=0"` // Candidates below this are dropped
	ChunkOverlap int `toml:"chunk_overlap" validate:"gte=0"` // Max token overlap between adjacent chunks
	TopK         int `toml:"top_k" validate:"gt=0"`          // Chunks returned per retrieval
}

// LLMConfig selects which language model provider the factory composes.
type LLMConfig struct {
	Provider string `toml:"provider" validate:"oneof=claude openai offline"` // "claude", "openai", or "offline"
}

type ClaudeConfig struct {
	APIKey      string  `toml:"api_key"`
	Model       string  `toml:"model"`
	Temperature float32 `toml:"temperature"`
	MaxTokens   int     `toml:"max_tokens"`
	Timeout     string  `toml:"timeout"` // e.g. "2m"
}

type OpenAIConfig struct {
	APIKey             string  `toml:"api_key"`
	Model              string  `toml:"model"`
	EmbeddingModel     string  `toml:"embedding_model"`
	EmbeddingDimension int     `toml:"embedding_dimension"`
	Temperature        float32 `toml:"temperature"`
	MaxTokens          int     `toml:"max_tokens"`
	Timeout            string  `toml:"timeout"`
}

type MarketConfig struct {
	YahooEnabled        bool   `toml:"yahoo_enabled"`
	AlphaVantageEnabled bool   `toml:"alpha_vantage_enabled"`
	AlphaVantageAPIKey  string `toml:"alpha_vantage_api_key"`
	RequestsPerSecond   int    `toml:"requests_per_second"`
}

type ReportsConfig struct {
	OutputDir string `toml:"output_dir"`
}

// NewDefaultConfig creates a configuration with default values.
// Only user-facing settings are exposed in calldigest.toml.
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Port: 8080,
			Host: "localhost",
		},
		Storage: StorageConfig{
			Badger: BadgerConfig{
				Path: "./data",
			},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Output: []string{"stdout"},
		},
		Processing: ProcessingConfig{
			MaxChunkSize: 1200,
			MinChunkSize: 500,
			ChunkOverlap: 100,
			TopK:         5,
		},
		LLM: LLMConfig{
			Provider: "claude",
		},
		Claude: ClaudeConfig{
			APIKey:      "", // User must provide API key (ANTHROPIC_API_KEY or config)
			Model:       "claude-sonnet-4-20250514",
			Temperature: 0.1,
			MaxTokens:   2000,
			Timeout:     "2m",
		},
		OpenAI: OpenAIConfig{
			APIKey:             "",
			Model:              "gpt-4",
			EmbeddingModel:     "text-embedding-ada-002",
			EmbeddingDimension: 1536,
			Temperature:        0.1,
			MaxTokens:          2000,
			Timeout:            "2m",
		},
		Market: MarketConfig{
			YahooEnabled:      true,
			RequestsPerSecond: 5,
		},
		Reports: ReportsConfig{
			OutputDir: "./data/reports",
		},
	}
}

// LoadFromFiles loads configuration from multiple files with priority:
// default -> file1 -> file2 -> ... -> env. Later files override earlier ones.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for i, path := range paths {
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s (file %d of %d): %w", path, i+1, len(paths), err)
		}
	}

	applyEnvOverrides(config)

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks structural constraints and the chunk-window invariants.
// Malformed window parameters fail here, at configuration time, never
// mid-stream.
func (c *Config) Validate() error {
	v := validator.New()
	if err := v.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	p := c.Processing
	if p.MinChunkSize >= p.MaxChunkSize {
		return fmt.Errorf("invalid configuration: min_chunk_size (%d) must be less than max_chunk_size (%d)", p.MinChunkSize, p.MaxChunkSize)
	}
	if p.ChunkOverlap >= p.MaxChunkSize {
		return fmt.Errorf("invalid configuration: chunk_overlap (%d) must be less than max_chunk_size (%d)", p.ChunkOverlap, p.MaxChunkSize)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("CALLDIGEST_ENV"); env != "" {
		config.Environment = env
	}

	if port := os.Getenv("CALLDIGEST_SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if host := os.Getenv("CALLDIGEST_SERVER_HOST"); host != "" {
		config.Server.Host = host
	}

	if level := os.Getenv("CALLDIGEST_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}

	if key := os.Getenv("ANTHROPIC_API_KEY"); key != "" && config.Claude.APIKey == "" {
		config.Claude.APIKey = key
	}
	if key := os.Getenv("OPENAI_API_KEY"); key != "" && config.OpenAI.APIKey == "" {
		config.OpenAI.APIKey = key
	}
	if key := os.Getenv("ALPHA_VANTAGE_API_KEY"); key != "" && config.Market.AlphaVantageAPIKey == "" {
		config.Market.AlphaVantageAPIKey = key
	}
}

// ApplyFlagOverrides applies command-line flag overrides (highest priority)
func ApplyFlagOverrides(config *Config, port int, host string) {
	if port != 0 {
		config.Server.Port = port
	}
	if host != "" {
		config.Server.Host = host
	}
}

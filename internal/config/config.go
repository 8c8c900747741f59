package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/pelletier/go-toml/v2"
)

type ServerConfig struct {
	Port         string   `toml:"port"`
	Mode         string   `toml:"mode"`
	AllowOrigins []string `toml:"allow_origins"`
}

type DatabaseConfig struct {
	Driver string `toml:"driver"` // "postgres" or "sqlite"
	DSN    string `toml:"dsn"`
}

type LLMConfig struct {
	Provider string `toml:"provider"`
	Model    string `toml:"model"`
	APIKey   string `toml:"api_key"`
	BaseURL  string `toml:"base_url"`
}

type GlossaryConfig struct {
	DefaultCategory string `toml:"default_category"`
	ResolveWorkers  int    `toml:"resolve_workers"`
}

type TranslateConfig struct {
	BatchWorkers int `toml:"batch_workers"`
	MaxTokens    int `toml:"max_tokens"`
}

type Config struct {
	Server    ServerConfig    `toml:"server"`
	Database  DatabaseConfig  `toml:"database"`
	LLM       LLMConfig       `toml:"llm"`
	Glossary  GlossaryConfig  `toml:"glossary"`
	Translate TranslateConfig `toml:"translate"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// Default returns a config usable without a config file on disk.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Server.Port == "" {
		c.Server.Port = "8080"
	}
	if c.Database.Driver == "" {
		c.Database.Driver = "sqlite"
	}
	if c.Database.DSN == "" && c.Database.Driver == "sqlite" {
		c.Database.DSN = "termbridge.db"
	}
	if c.Glossary.DefaultCategory == "" {
		c.Glossary.DefaultCategory = "General"
	}
	if c.Glossary.ResolveWorkers <= 0 {
		c.Glossary.ResolveWorkers = 4
	}
	if c.Translate.BatchWorkers <= 0 {
		c.Translate.BatchWorkers = 4
	}
	if c.Translate.MaxTokens <= 0 {
		c.Translate.MaxTokens = 1000
	}
}

// ApplyEnv overlays environment variables on top of file values so
// deployments can override without editing the TOML.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("PORT"); v != "" {
		c.Server.Port = v
	}
	if v := os.Getenv("DB_DRIVER"); v != "" {
		c.Database.Driver = v
	}
	if v := os.Getenv("DB_DSN"); v != "" {
		c.Database.DSN = v
	}
	if v := os.Getenv("LLM_PROVIDER"); v != "" {
		c.LLM.Provider = v
	}
	if v := os.Getenv("LLM_MODEL"); v != "" {
		c.LLM.Model = v
	}
	if v := os.Getenv("LLM_API_KEY"); v != "" {
		c.LLM.APIKey = v
	}
	if v := os.Getenv("LLM_BASE_URL"); v != "" {
		c.LLM.BaseURL = v
	}
	if v := os.Getenv("TRANSLATE_BATCH_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Translate.BatchWorkers = n
		}
	}
}

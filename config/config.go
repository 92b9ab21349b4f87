package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Addr string `yaml:"-"` // computed after load, not read from file
	} `yaml:"server"`
	OpenAI struct {
		APIKey     string `yaml:"api_key"`
		Model      string `yaml:"model"`
		BaseURL    string `yaml:"base_url"`
		TimeoutSec int    `yaml:"timeout_sec"` // upstream call timeout, seconds
	} `yaml:"openai"`
	Analysis struct {
		ChunkSize int    `yaml:"chunk_size"` // entries per upstream request
		IDField   string `yaml:"id_field"`   // row field holding the unique id
	} `yaml:"analysis"`
	TransferIntent struct {
		Column   string   `yaml:"column"`   // opinion column scanned for intent
		Keywords []string `yaml:"keywords"` // substrings signalling transfer intent
	} `yaml:"transfer_intent"`
	Log struct {
		Level    string `yaml:"level"`
		Format   string `yaml:"format"`
		Output   string `yaml:"output"`
		FilePath string `yaml:"file_path"`
	} `yaml:"log"`
}

func Load() *Config {
	// Load .env first; if the file is missing, system environment variables still apply.
	_ = godotenv.Load()

	var cfg Config

	if data, err := os.ReadFile("config.yaml"); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			log.Printf("Error loading config.yaml: %v, falling back to environment variables", err)
			return loadFromEnv()
		}
		log.Println("Loading configuration from config.yaml")
		applyEnvOverrides(&cfg)
		applyDefaults(&cfg)
		return &cfg
	}

	// No config.yaml, configure entirely from the environment.
	return loadFromEnv()
}

func loadFromEnv() *Config {
	var cfg Config

	if port := os.Getenv("SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			cfg.Server.Port = p
		}
	}

	applyEnvOverrides(&cfg)
	applyDefaults(&cfg)

	log.Println("Configuration loaded from environment variables")
	return &cfg
}

// applyEnvOverrides lets environment variables take precedence for secrets
// and deploy-specific settings.
func applyEnvOverrides(cfg *Config) {
	if apiKey := os.Getenv("OPENAI_API_KEY"); apiKey != "" {
		cfg.OpenAI.APIKey = apiKey
	}
	if model := os.Getenv("OPENAI_MODEL"); model != "" {
		cfg.OpenAI.Model = model
	}
	if baseURL := os.Getenv("OPENAI_BASE_URL"); baseURL != "" {
		cfg.OpenAI.BaseURL = baseURL
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8000
	}
	cfg.Server.Addr = fmt.Sprintf(":%d", cfg.Server.Port)

	if cfg.OpenAI.Model == "" {
		cfg.OpenAI.Model = "gpt-4o-mini"
	}
	if cfg.OpenAI.BaseURL == "" {
		cfg.OpenAI.BaseURL = "https://api.openai.com/v1"
	}
	if cfg.OpenAI.TimeoutSec <= 0 {
		cfg.OpenAI.TimeoutSec = 60
	}

	if cfg.Analysis.ChunkSize <= 0 {
		cfg.Analysis.ChunkSize = 10
	}
	if cfg.Analysis.IDField == "" {
		cfg.Analysis.IDField = "uniqueId"
	}

	if cfg.TransferIntent.Column == "" {
		cfg.TransferIntent.Column = "(2) 성장/역량/커리어-구성원 의견"
	}
	if len(cfg.TransferIntent.Keywords) == 0 {
		cfg.TransferIntent.Keywords = []string{"이동", "변경"}
	}
}

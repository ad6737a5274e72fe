package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
)

type Config struct {
	App   AppConfig   `toml:"app"`
	Auth  AuthConfig  `toml:"auth"`
	LLM   LLMConfig   `toml:"llm"`
	Redis RedisConfig `toml:"redis"`
	Chat  ChatConfig  `toml:"chat"`
}

type AppConfig struct {
	Name    string `toml:"name"`
	Env     string `toml:"env"`
	Host    string `toml:"host"`
	Port    int    `toml:"port"`
	GinMode string `toml:"gin_mode"`
}

type AuthConfig struct {
	// EnrichToken is the static bearer secret required by the ingestion
	// endpoints. There are no user accounts.
	EnrichToken string `toml:"enrich_token"`
}

type LLMConfig struct {
	BaseURL    string `toml:"base_url"`
	APIKey     string `toml:"api_key"`
	Model      string `toml:"model"`
	TitleModel string `toml:"title_model"`
	CostModel  string `toml:"cost_model"`
}

type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

type ChatConfig struct {
	StreamDelayMS int `toml:"stream_delay_ms"`
	// MaxContextChars bounds the assembled document context.
	// 0 means unbounded.
	MaxContextChars      int `toml:"max_context_chars"`
	ChatTimeoutSeconds   int `toml:"chat_timeout_seconds"`
	EnrichTimeoutSeconds int `toml:"enrich_timeout_seconds"`
}

func Load() (*Config, error) {
	cfg := defaultConfig()

	configPath := getEnv("CONFIG_FILE", "configs/config.toml")
	if _, err := os.Stat(configPath); err == nil {
		if _, err := toml.DecodeFile(configPath, cfg); err != nil {
			return nil, fmt.Errorf("decode config file failed: %w", err)
		}
	}

	overrideByEnv(cfg)
	return cfg, nil
}

func (c *Config) HTTPAddr() string {
	return fmt.Sprintf("%s:%d", c.App.Host, c.App.Port)
}

func defaultConfig() *Config {
	return &Config{
		App: AppConfig{
			Name:    "brari",
			Env:     "dev",
			Host:    "0.0.0.0",
			Port:    8080,
			GinMode: "debug",
		},
		Auth: AuthConfig{
			EnrichToken: "change-me-in-production",
		},
		LLM: LLMConfig{
			BaseURL:    "https://generativelanguage.googleapis.com/v1beta/openai",
			APIKey:     "",
			Model:      "gemini-2.0-flash",
			TitleModel: "gemini-2.0-flash",
			CostModel:  "o3-mini",
		},
		Redis: RedisConfig{
			Addr:     "127.0.0.1:6379",
			Password: "",
			DB:       0,
		},
		Chat: ChatConfig{
			StreamDelayMS:        20,
			MaxContextChars:      0,
			ChatTimeoutSeconds:   60,
			EnrichTimeoutSeconds: 300,
		},
	}
}

func overrideByEnv(cfg *Config) {
	cfg.App.Name = getEnv("APP_NAME", cfg.App.Name)
	cfg.App.Env = getEnv("APP_ENV", cfg.App.Env)
	cfg.App.Host = getEnv("APP_HOST", cfg.App.Host)
	cfg.App.Port = getEnvAsInt("APP_PORT", cfg.App.Port)
	cfg.App.GinMode = getEnv("GIN_MODE", cfg.App.GinMode)

	cfg.Auth.EnrichToken = getEnv("ENRICH_PASSWORD", cfg.Auth.EnrichToken)

	cfg.LLM.BaseURL = getEnv("LLM_BASE_URL", cfg.LLM.BaseURL)
	cfg.LLM.APIKey = getEnv("LLM_API_KEY", cfg.LLM.APIKey)
	cfg.LLM.Model = getEnv("LLM_MODEL", cfg.LLM.Model)
	cfg.LLM.TitleModel = getEnv("LLM_TITLE_MODEL", cfg.LLM.TitleModel)
	cfg.LLM.CostModel = getEnv("LLM_COST_MODEL", cfg.LLM.CostModel)

	cfg.Redis.Addr = getEnv("REDIS_ADDR", cfg.Redis.Addr)
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", cfg.Redis.Password)
	cfg.Redis.DB = getEnvAsInt("REDIS_DB", cfg.Redis.DB)

	cfg.Chat.StreamDelayMS = getEnvAsInt("CHAT_STREAM_DELAY_MS", cfg.Chat.StreamDelayMS)
	cfg.Chat.MaxContextChars = getEnvAsInt("CHAT_MAX_CONTEXT_CHARS", cfg.Chat.MaxContextChars)
	cfg.Chat.ChatTimeoutSeconds = getEnvAsInt("CHAT_TIMEOUT_SECONDS", cfg.Chat.ChatTimeoutSeconds)
	cfg.Chat.EnrichTimeoutSeconds = getEnvAsInt("ENRICH_TIMEOUT_SECONDS", cfg.Chat.EnrichTimeoutSeconds)
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return parsed
}

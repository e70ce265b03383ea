package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config defines client and server configuration.
type Config struct {
	Backend   BackendConfig   `yaml:"backend"`
	Sync      SyncConfig      `yaml:"sync"`
	Server    ServerConfig    `yaml:"server"`
	Transport TransportConfig `yaml:"transport"`
	Cache     CacheConfig     `yaml:"cache"`
	Log       LogConfig       `yaml:"log"`
}

type BackendConfig struct {
	BaseURL string `yaml:"base_url"`
	Token   string `yaml:"token"`
}

type SyncConfig struct {
	PollIntervalMS int `yaml:"poll_interval_ms"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type TransportConfig struct {
	Mode string `yaml:"mode"` // "stdio" or "http"
}

type CacheConfig struct {
	Path string `yaml:"path"` // empty disables the snapshot cache
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// PollInterval returns the poll interval as a duration.
func (c Config) PollInterval() time.Duration {
	return time.Duration(c.Sync.PollIntervalMS) * time.Millisecond
}

// Load reads configuration from an optional YAML file and environment variables.
func Load() (Config, error) {
	cfg := Config{
		Backend: BackendConfig{
			BaseURL: "http://localhost:8000",
		},
		Sync: SyncConfig{
			PollIntervalMS: 3000,
		},
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Transport: TransportConfig{
			Mode: "stdio",
		},
		Log: LogConfig{
			Level: "info",
		},
	}

	if path := os.Getenv("SYNAPSE_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if baseURL := os.Getenv("SYNAPSE_BASE_URL"); baseURL != "" {
		cfg.Backend.BaseURL = baseURL
	}
	if token := os.Getenv("SYNAPSE_API_TOKEN"); token != "" {
		cfg.Backend.Token = token
	}
	if intervalStr := os.Getenv("SYNAPSE_POLL_INTERVAL_MS"); intervalStr != "" {
		interval, err := strconv.Atoi(intervalStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid SYNAPSE_POLL_INTERVAL_MS: %w", err)
		}
		cfg.Sync.PollIntervalMS = interval
	}
	if mode := os.Getenv("SYNAPSE_TRANSPORT"); mode != "" {
		cfg.Transport.Mode = mode
	}
	if host := os.Getenv("SYNAPSE_SERVER_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if portStr := os.Getenv("SYNAPSE_SERVER_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid SYNAPSE_SERVER_PORT: %w", err)
		}
		cfg.Server.Port = port
	}
	if cachePath := os.Getenv("SYNAPSE_CACHE_PATH"); cachePath != "" {
		cfg.Cache.Path = cachePath
	}
	if level := os.Getenv("SYNAPSE_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}

	if cfg.Sync.PollIntervalMS <= 0 {
		return Config{}, fmt.Errorf("poll interval must be positive, got %d", cfg.Sync.PollIntervalMS)
	}
	if cfg.Transport.Mode != "stdio" && cfg.Transport.Mode != "http" {
		return Config{}, fmt.Errorf("transport mode must be stdio or http, got %q", cfg.Transport.Mode)
	}

	return cfg, nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

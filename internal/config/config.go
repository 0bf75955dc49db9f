package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config covers both the backend server and the mockctl client.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	DB      DBConfig      `yaml:"db"`
	Log     LogConfig     `yaml:"log"`
	API     APIConfig     `yaml:"api"`
	Preview PreviewConfig `yaml:"preview"`
	State   StateConfig   `yaml:"state"`
	Auth    AuthConfig    `yaml:"auth"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type DBConfig struct {
	Path string `yaml:"path"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	// Path, when set, sends logs to a size-capped file.
	Path string `yaml:"path"`
}

// APIConfig is how clients reach the backend.
type APIConfig struct {
	BaseURL string        `yaml:"base_url"`
	Token   string        `yaml:"token"`
	Timeout time.Duration `yaml:"timeout"`
}

// PreviewConfig is the base used when building record preview URLs.
// Empty means the API base URL.
type PreviewConfig struct {
	BaseURL string `yaml:"base_url"`
}

// StateConfig locates the client's local parameter database.
type StateConfig struct {
	Path string `yaml:"path"`
}

// AuthConfig is the server side bearer token; empty disables auth.
type AuthConfig struct {
	Token string `yaml:"token"`
}

// Default returns the configuration used when nothing is overridden.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		DB: DBConfig{
			Path: "mockdata.db",
		},
		Log: LogConfig{
			Level: "info",
		},
		API: APIConfig{
			BaseURL: "http://localhost:8080",
			Timeout: 10 * time.Second,
		},
		State: StateConfig{
			Path: defaultStatePath(),
		},
	}
}

// Load reads configuration from an optional YAML file and environment variables.
func Load() (Config, error) {
	cfg := Default()

	if path := os.Getenv("MOCKDATA_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if host := os.Getenv("MOCKDATA_SERVER_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if portStr := os.Getenv("MOCKDATA_SERVER_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid MOCKDATA_SERVER_PORT: %w", err)
		}
		cfg.Server.Port = port
	}
	if dbPath := os.Getenv("MOCKDATA_DB_PATH"); dbPath != "" {
		cfg.DB.Path = dbPath
	}
	if level := os.Getenv("MOCKDATA_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if logPath := os.Getenv("MOCKDATA_LOG_PATH"); logPath != "" {
		cfg.Log.Path = logPath
	}
	if base := os.Getenv("MOCKDATA_API_BASE_URL"); base != "" {
		cfg.API.BaseURL = base
	}
	if token := os.Getenv("MOCKDATA_API_TOKEN"); token != "" {
		cfg.API.Token = token
	}
	if timeoutStr := os.Getenv("MOCKDATA_API_TIMEOUT"); timeoutStr != "" {
		timeout, err := time.ParseDuration(timeoutStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid MOCKDATA_API_TIMEOUT: %w", err)
		}
		cfg.API.Timeout = timeout
	}
	if base := os.Getenv("MOCKDATA_PREVIEW_BASE_URL"); base != "" {
		cfg.Preview.BaseURL = base
	}
	if statePath := os.Getenv("MOCKDATA_STATE_PATH"); statePath != "" {
		cfg.State.Path = statePath
	}
	if token := os.Getenv("MOCKDATA_AUTH_TOKEN"); token != "" {
		cfg.Auth.Token = token
	}

	cfg.API.BaseURL = strings.TrimRight(cfg.API.BaseURL, "/")
	if cfg.Preview.BaseURL == "" {
		cfg.Preview.BaseURL = cfg.API.BaseURL
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

func defaultStatePath() string {
	dir, err := os.UserConfigDir()
	if err != nil || dir == "" {
		return "mockctl.db"
	}
	return dir + string(os.PathSeparator) + "mockdata" + string(os.PathSeparator) + "mockctl.db"
}

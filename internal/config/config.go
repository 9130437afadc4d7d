package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config defines server configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	DB      DBConfig      `yaml:"db"`
	Log     LogConfig     `yaml:"log"`
	Audio   AudioConfig   `yaml:"audio"`
	Modules ModulesConfig `yaml:"modules"`
	Visp    VispConfig    `yaml:"visp"`
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
	Path  string `yaml:"path"`
}

type AudioConfig struct {
	// StoragePath is the root under which sequenced chunks are written.
	StoragePath string `yaml:"storage_path"`
	// UploadsPath is the root the relocation path promotes chunks into.
	UploadsPath string `yaml:"uploads_path"`
}

type ModulesConfig struct {
	// Enabled names the handler modules to register, in delivery order.
	Enabled []string `yaml:"enabled"`
}

type VispConfig struct {
	GitLabURL         string `yaml:"gitlab_url"`
	GitLabToken       string `yaml:"gitlab_token"`
	GitLabBranch      string `yaml:"gitlab_branch"`
	SessionManagerURL string `yaml:"session_manager_url"`
}

// Load reads configuration from an optional YAML file and environment variables.
func Load() (Config, error) {
	cfg := Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		DB: DBConfig{
			Path: "wsrng.db",
		},
		Log: LogConfig{
			Level: "info",
		},
		Audio: AudioConfig{
			StoragePath: "audio",
			UploadsPath: "uploads",
		},
		Visp: VispConfig{
			GitLabURL:         "http://gitlab",
			GitLabBranch:      "master",
			SessionManagerURL: "http://session-manager:8080/api/importaudiofiles",
		},
	}

	if path := os.Getenv("WSRNG_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if host := os.Getenv("WSRNG_SERVER_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if portStr := os.Getenv("WSRNG_SERVER_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid WSRNG_SERVER_PORT: %w", err)
		}
		cfg.Server.Port = port
	}
	if dbPath := os.Getenv("WSRNG_DB_PATH"); dbPath != "" {
		cfg.DB.Path = dbPath
	}
	if level := os.Getenv("WSRNG_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if logPath := os.Getenv("WSRNG_LOG_PATH"); logPath != "" {
		cfg.Log.Path = logPath
	}
	if storagePath := os.Getenv("WSRNG_AUDIO_STORAGE_PATH"); storagePath != "" {
		cfg.Audio.StoragePath = storagePath
	}
	if uploadsPath := os.Getenv("WSRNG_UPLOADS_PATH"); uploadsPath != "" {
		cfg.Audio.UploadsPath = uploadsPath
	}
	if modules := os.Getenv("WSRNG_ENABLED_MODULES"); modules != "" {
		cfg.Modules.Enabled = splitList(modules)
	}
	if u := os.Getenv("WSRNG_GITLAB_URL"); u != "" {
		cfg.Visp.GitLabURL = u
	}
	if token := os.Getenv("WSRNG_GITLAB_TOKEN"); token != "" {
		cfg.Visp.GitLabToken = token
	}
	if branch := os.Getenv("WSRNG_GITLAB_BRANCH"); branch != "" {
		cfg.Visp.GitLabBranch = branch
	}
	if u := os.Getenv("WSRNG_SESSION_MANAGER_URL"); u != "" {
		cfg.Visp.SessionManagerURL = u
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

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

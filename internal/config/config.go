// Package config provides configuration loading and validation for the
// toolkit: an optional JSON file merged with environment variables.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Environment variable names. godotenv loads a .env file into the process
// environment before these are read.
const (
	EnvAPIBaseURL = "THRIVE_API_BASE_URL"
	EnvBackendURL = "THRIVE_BACKEND_URL"
	EnvSecretKey  = "THRIVE_API_SECRET_KEY"
	EnvDataDir    = "THRIVE_DATA_DIR"
	EnvTimeout    = "THRIVE_TIMEOUT_SECONDS"
	EnvPort       = "PORT"
)

// Config holds the toolkit's runtime settings. All fields are optional in
// the JSON file; environment variables win over file values.
type Config struct {
	// APIBaseURL is the STAR generation service base URL.
	APIBaseURL string `json:"api_base_url,omitempty"`
	// BackendURL is the persona backend base URL, also the ping target.
	BackendURL string `json:"backend_url,omitempty"`
	// SecretKey authenticates the ping proxy's backend health check.
	SecretKey string `json:"secret_key,omitempty"`
	// DataDir is where the local store keeps its JSON files.
	DataDir string `json:"data_dir,omitempty"`
	// TimeoutSeconds bounds generation requests; zero uses the client default.
	TimeoutSeconds int `json:"timeout_seconds,omitempty"`
	// Port is the HTTP server listen port.
	Port int `json:"port,omitempty"`
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FromEnv builds a Config from environment variables alone.
func FromEnv() Config {
	cfg := Config{
		APIBaseURL: os.Getenv(EnvAPIBaseURL),
		BackendURL: os.Getenv(EnvBackendURL),
		SecretKey:  os.Getenv(EnvSecretKey),
		DataDir:    os.Getenv(EnvDataDir),
	}
	if v := os.Getenv(EnvTimeout); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.TimeoutSeconds = n
		}
	}
	if v := os.Getenv(EnvPort); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Port = n
		}
	}
	return cfg
}

// MergeEnv returns c with environment variables overriding file values.
func (c Config) MergeEnv() Config {
	env := FromEnv()
	result := c
	if env.APIBaseURL != "" {
		result.APIBaseURL = env.APIBaseURL
	}
	if env.BackendURL != "" {
		result.BackendURL = env.BackendURL
	}
	if env.SecretKey != "" {
		result.SecretKey = env.SecretKey
	}
	if env.DataDir != "" {
		result.DataDir = env.DataDir
	}
	if env.TimeoutSeconds != 0 {
		result.TimeoutSeconds = env.TimeoutSeconds
	}
	if env.Port != 0 {
		result.Port = env.Port
	}
	return result
}

// ApplyDefaults fills unset fields with working local defaults.
func (c Config) ApplyDefaults() Config {
	result := c
	if result.DataDir == "" {
		result.DataDir = defaultDataDir()
	}
	if result.Port == 0 {
		result.Port = 8080
	}
	return result
}

// Validate checks that the configuration has usable values.
func (c *Config) Validate() error {
	if c.TimeoutSeconds < 0 {
		return fmt.Errorf("config error: 'timeout_seconds' must be non-negative")
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be a valid TCP port")
	}
	if c.DataDir == "" {
		return fmt.Errorf("config error: 'data_dir' is required")
	}
	return nil
}

// Timeout returns the generation timeout as a duration, zero when unset.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".thrive"
	}
	return filepath.Join(home, ".thrive")
}

// Load is the standard loading sequence: optional file, environment
// overrides, defaults, validation.
func Load(path string) (Config, error) {
	var cfg Config
	if path != "" {
		loaded, err := LoadConfig(path)
		if err != nil {
			return Config{}, err
		}
		cfg = *loaded
	}
	cfg = cfg.MergeEnv().ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_ValidJSON(t *testing.T) {
	content := `{
		"api_base_url": "https://gen.example.com",
		"backend_url": "https://backend.example.com",
		"data_dir": "/var/lib/thrive",
		"timeout_seconds": 45,
		"port": 9090
	}`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "https://gen.example.com", cfg.APIBaseURL)
	assert.Equal(t, "https://backend.example.com", cfg.BackendURL)
	assert.Equal(t, "/var/lib/thrive", cfg.DataDir)
	assert.Equal(t, 45, cfg.TimeoutSeconds)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, 45*time.Second, cfg.Timeout())
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(tmpFile, []byte(`{ invalid json }`), 0644))

	cfg, err := LoadConfig(tmpFile)
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.json")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "config path is empty")
}

func TestMergeEnv_EnvironmentWins(t *testing.T) {
	t.Setenv(EnvAPIBaseURL, "https://env.example.com")
	t.Setenv(EnvTimeout, "15")

	cfg := Config{APIBaseURL: "https://file.example.com", BackendURL: "https://backend.example.com", TimeoutSeconds: 45}
	merged := cfg.MergeEnv()

	assert.Equal(t, "https://env.example.com", merged.APIBaseURL)
	assert.Equal(t, "https://backend.example.com", merged.BackendURL, "unset env vars keep file values")
	assert.Equal(t, 15, merged.TimeoutSeconds)
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}.ApplyDefaults()
	assert.NotEmpty(t, cfg.DataDir)
	assert.Equal(t, 8080, cfg.Port)

	kept := Config{DataDir: "/tmp/x", Port: 9999}.ApplyDefaults()
	assert.Equal(t, "/tmp/x", kept.DataDir)
	assert.Equal(t, 9999, kept.Port)
}

func TestValidate_Errors(t *testing.T) {
	cfg := &Config{DataDir: "/tmp/x", TimeoutSeconds: -1}
	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "timeout_seconds")

	cfg = &Config{DataDir: "/tmp/x", Port: 70000}
	err = cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "port")

	cfg = &Config{}
	err = cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "data_dir")
}

func TestLoad_FullSequence(t *testing.T) {
	content := `{"api_base_url": "https://gen.example.com"}`
	tmpFile := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(tmpFile, []byte(content), 0644))
	t.Setenv(EnvDataDir, filepath.Join(t.TempDir(), "data"))

	cfg, err := Load(tmpFile)
	require.NoError(t, err)
	assert.Equal(t, "https://gen.example.com", cfg.APIBaseURL)
	assert.NotEmpty(t, cfg.DataDir)
	assert.Equal(t, 8080, cfg.Port)
}

package jian

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestLoadConfig_StrictMode_UnknownKeys(t *testing.T) {
	// Create a temporary config file with unknown keys
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "jian.yaml")

	configContent := `
resolver:
  lambda_scope: nested
  unknown_resolver_key: "should cause error"
unknown_key: "should also cause error"
`

	err := os.WriteFile(configPath, []byte(configContent), 0644)
	assert.NoError(t, err)

	_, err = LoadConfig(configPath)
	assert.Error(t, err, "expected error for unknown keys in strict mode")
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestLoadConfig_ValidConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "jian.yaml")

	configContent := `
resolver:
  lambda_scope: flat
markdown:
  fence: js
  extensions: [".md", ".jmd"]
output:
  color: never
  format: yaml
log:
  level: debug
  format: json
backend: interp
`

	err := os.WriteFile(configPath, []byte(configContent), 0644)
	assert.NoError(t, err)

	config, err := LoadConfig(configPath)
	assert.NoError(t, err)
	assert.Equal(t, &Config{
		Resolver: ResolverConfig{LambdaScope: "flat"},
		Markdown: MarkdownConfig{Fence: "js", Extensions: []string{".md", ".jmd"}},
		Output:   OutputConfig{Color: "never", Format: "yaml"},
		Log:      LogConfig{Level: "debug", Format: "json"},
		Backend:  "interp",
	}, config)
}

func TestValidateConfig_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		message string
	}{
		{
			name:    "lambda scope",
			config:  Config{Resolver: ResolverConfig{LambdaScope: "dynamic"}},
			message: "invalid resolver.lambda_scope 'dynamic'",
		},
		{
			name:    "fence with space",
			config:  Config{Markdown: MarkdownConfig{Fence: "jian script"}},
			message: "markdown.fence 'jian script' must be a single word",
		},
		{
			name:    "extension without dot",
			config:  Config{Markdown: MarkdownConfig{Extensions: []string{"md"}}},
			message: "markdown.extensions entry 'md' must start with '.'",
		},
		{
			name:    "color",
			config:  Config{Output: OutputConfig{Color: "sometimes"}},
			message: "output.color 'sometimes' is invalid",
		},
		{
			name:    "format",
			config:  Config{Output: OutputConfig{Format: "csv"}},
			message: "output.format 'csv' is invalid",
		},
		{
			name:    "log level",
			config:  Config{Log: LogConfig{Level: "trace"}},
			message: "log.level 'trace' is invalid",
		},
		{
			name:    "log format",
			config:  Config{Log: LogConfig{Format: "console"}},
			message: "log.format 'console' is invalid",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateConfig(&tt.config)
			assert.IsError(t, err, ErrConfigValidation)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestValidateConfig_ValidConfig(t *testing.T) {
	assert.NoError(t, validateConfig(getDefaultConfig()))
	assert.NoError(t, validateConfig(&Config{}))
	assert.NoError(t, validateConfig(&Config{Resolver: ResolverConfig{LambdaScope: "FLAT"}, Log: LogConfig{Level: "INFO", Format: "JSON"}}))
}

func TestLoadConfig_ValidationErrorFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "jian.yaml")

	err := os.WriteFile(configPath, []byte("output:\n  format: csv\n"), 0644)
	assert.NoError(t, err)

	_, err = LoadConfig(configPath)
	assert.IsError(t, err, ErrConfigValidation)
}

package jian

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"
)

// DefaultConfigFile is the configuration file looked up when no path is given
const DefaultConfigFile = "jian.yaml"

// Config represents the JianScript toolchain configuration
type Config struct {
	Resolver ResolverConfig `yaml:"resolver"`
	Markdown MarkdownConfig `yaml:"markdown"`
	Output   OutputConfig   `yaml:"output"`
	Log      LogConfig      `yaml:"log"`
	Backend  string         `yaml:"backend"`
}

// ResolverConfig represents name resolution settings
type ResolverConfig struct {
	// LambdaScope is "nested" (lambda parameters shadow and vanish after the body)
	// or "flat" (lambda parameters join the enclosing definition's locals)
	LambdaScope string `yaml:"lambda_scope"`
}

// MarkdownConfig represents literate source settings
type MarkdownConfig struct {
	Fence      string   `yaml:"fence"`
	Extensions []string `yaml:"extensions"`
}

// OutputConfig represents CLI output settings
type OutputConfig struct {
	Color  string `yaml:"color"`
	Format string `yaml:"format"`
}

// LogConfig represents logger settings
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// LoadConfig loads configuration from the specified file
func LoadConfig(configPath string) (*Config, error) {
	// Load .env files first
	err := loadEnvFiles()
	if err != nil {
		return nil, fmt.Errorf("failed to load environment files: %w", err)
	}

	// Return default configuration if file doesn't exist
	_, err = os.Stat(configPath)
	if os.IsNotExist(err) {
		config := getDefaultConfig()
		expandConfigEnvVars(config)

		return config, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return ParseConfig(data)
}

// ParseConfig parses YAML configuration data. Unknown keys are rejected.
func ParseConfig(data []byte) (*Config, error) {
	var config Config

	err := yaml.UnmarshalWithOptions(data, &config, yaml.Strict())
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	expandConfigEnvVars(&config)

	if err := validateConfig(&config); err != nil {
		return nil, err
	}

	applyDefaults(&config)

	return &config, nil
}

// DefaultConfig returns the configuration used when no file is present
func DefaultConfig() *Config {
	return getDefaultConfig()
}

// validateConfig validates the configuration for common errors and inconsistencies
func validateConfig(config *Config) error {
	switch strings.ToLower(config.Resolver.LambdaScope) {
	case "", "nested", "flat":
	default:
		return fmt.Errorf("%w: invalid resolver.lambda_scope '%s': must be one of nested, flat", ErrConfigValidation, config.Resolver.LambdaScope)
	}

	if strings.ContainsAny(config.Markdown.Fence, " \t\n`") {
		return fmt.Errorf("%w: markdown.fence '%s' must be a single word", ErrConfigValidation, config.Markdown.Fence)
	}

	for _, ext := range config.Markdown.Extensions {
		if !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("%w: markdown.extensions entry '%s' must start with '.'", ErrConfigValidation, ext)
		}
	}

	validColors := map[string]bool{
		"":       true,
		"auto":   true,
		"always": true,
		"never":  true,
	}
	if !validColors[config.Output.Color] {
		return fmt.Errorf("%w: output.color '%s' is invalid: must be one of auto, always, never", ErrConfigValidation, config.Output.Color)
	}

	validFormats := map[string]bool{
		"":     true,
		"text": true,
		"json": true,
		"yaml": true,
		"xml":  true,
	}
	if !validFormats[config.Output.Format] {
		return fmt.Errorf("%w: output.format '%s' is invalid: must be one of text, json, yaml, xml", ErrConfigValidation, config.Output.Format)
	}

	validLevels := map[string]bool{
		"":      true,
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[strings.ToLower(config.Log.Level)] {
		return fmt.Errorf("%w: log.level '%s' is invalid: must be one of debug, info, warn, error", ErrConfigValidation, config.Log.Level)
	}

	switch strings.ToLower(config.Log.Format) {
	case "", "text", "json":
	default:
		return fmt.Errorf("%w: log.format '%s' is invalid: must be one of text, json", ErrConfigValidation, config.Log.Format)
	}

	return nil
}

// getDefaultConfig returns the default configuration
func getDefaultConfig() *Config {
	return &Config{
		Resolver: ResolverConfig{
			LambdaScope: "nested",
		},
		Markdown: MarkdownConfig{
			Fence:      "jian",
			Extensions: []string{".md", ".markdown"},
		},
		Output: OutputConfig{
			Color:  "auto",
			Format: "text",
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
	}
}

// applyDefaults applies default values to missing configuration fields
func applyDefaults(config *Config) {
	defaults := getDefaultConfig()

	if config.Resolver.LambdaScope == "" {
		config.Resolver.LambdaScope = defaults.Resolver.LambdaScope
	}

	if config.Markdown.Fence == "" {
		config.Markdown.Fence = defaults.Markdown.Fence
	}

	if config.Markdown.Extensions == nil {
		config.Markdown.Extensions = defaults.Markdown.Extensions
	}

	if config.Output.Color == "" {
		config.Output.Color = defaults.Output.Color
	}

	if config.Output.Format == "" {
		config.Output.Format = defaults.Output.Format
	}

	if config.Log.Level == "" {
		config.Log.Level = defaults.Log.Level
	}

	if config.Log.Format == "" {
		config.Log.Format = defaults.Log.Format
	}
}

// loadEnvFiles loads .env files if they exist
func loadEnvFiles() error {
	if fileExists(".env") {
		err := godotenv.Load(".env")
		if err != nil {
			return fmt.Errorf("failed to load .env file: %w", err)
		}
	}

	return nil
}

var (
	bracedEnvVar = regexp.MustCompile(`\$\{([^}]+)\}`)
	plainEnvVar  = regexp.MustCompile(`\$([A-Za-z_][A-Za-z0-9_]*)`)
)

// expandEnvVars expands environment variables in the format ${VAR} or $VAR
func expandEnvVars(s string) string {
	s = bracedEnvVar.ReplaceAllStringFunc(s, func(match string) string {
		return os.Getenv(match[2 : len(match)-1])
	})

	return plainEnvVar.ReplaceAllStringFunc(s, func(match string) string {
		return os.Getenv(match[1:])
	})
}

// expandConfigEnvVars expands environment variables in string fields
func expandConfigEnvVars(config *Config) {
	config.Resolver.LambdaScope = expandEnvVars(config.Resolver.LambdaScope)
	config.Markdown.Fence = expandEnvVars(config.Markdown.Fence)

	for i, ext := range config.Markdown.Extensions {
		config.Markdown.Extensions[i] = expandEnvVars(ext)
	}

	config.Output.Color = expandEnvVars(config.Output.Color)
	config.Output.Format = expandEnvVars(config.Output.Format)
	config.Log.Level = expandEnvVars(config.Log.Level)
	config.Log.Format = expandEnvVars(config.Log.Format)
	config.Backend = expandEnvVars(config.Backend)
}

// fileExists checks if a file exists
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

// DefaultPath is where config init writes the file
const DefaultPath = "~/.config/hub/config.toml"

// EnvFiles are loaded in order; earlier files win over later ones
var EnvFiles = []string{".env.local", ".env"}

// Load reads and parses the configuration file. The file must exist.
func Load(path string) (*Config, error) {
	return load(path, false)
}

// LoadOptional is Load for the server: a missing file yields the defaults
// plus environment overrides.
func LoadOptional(path string) (*Config, error) {
	return load(path, true)
}

func load(path string, optional bool) (*Config, error) {
	expandedPath, err := expandPath(path)
	if err != nil {
		return nil, fmt.Errorf("failed to expand config path: %w", err)
	}

	cfg := Default()

	data, err := os.ReadFile(expandedPath)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	case os.IsNotExist(err) && optional:
	case os.IsNotExist(err):
		return nil, fmt.Errorf("config file not found: %s (run 'hub config init' to create)", expandedPath)
	default:
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg.applyEnv()

	if err := cfg.expandPaths(); err != nil {
		return nil, fmt.Errorf("failed to expand paths: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// LoadEnvFiles loads the given dotenv files into the process environment.
// Missing files are skipped; variables already set are kept.
func LoadEnvFiles(files ...string) error {
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("failed to load %s: %w", f, err)
		}
	}
	return nil
}

// applyEnv overrides file values with the deployment environment
func (c *Config) applyEnv() {
	if v := os.Getenv("GOOGLE_CLIENT_ID"); v != "" {
		c.Google.ClientID = v
	}
	if v := os.Getenv("GOOGLE_CLIENT_SECRET"); v != "" {
		c.Google.ClientSecret = v
	}
	if v := os.Getenv("BASE_URL"); v != "" {
		c.Server.BaseURL = v
	}
	if v := os.Getenv("PORT"); v != "" {
		c.Server.Listen = ":" + v
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		c.LLM.OpenAI.APIKey = v
	}
}

// expandPath expands ~ to home directory
func expandPath(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(home, path[1:]), nil
}

// ExpandPath is expandPath for callers outside the package
func ExpandPath(path string) (string, error) {
	return expandPath(path)
}

// expandPaths expands ~ in all path fields
func (c *Config) expandPaths() error {
	var err error

	c.Database.Path, err = expandPath(c.Database.Path)
	if err != nil {
		return err
	}

	c.Server.StaticDir, err = expandPath(c.Server.StaticDir)
	if err != nil {
		return err
	}

	return nil
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	var errs []error

	// Server validation
	if c.Server.Listen == "" {
		errs = append(errs, errors.New("server.listen is required"))
	}
	if !strings.HasPrefix(c.Server.BaseURL, "http://") && !strings.HasPrefix(c.Server.BaseURL, "https://") {
		errs = append(errs, fmt.Errorf("server.base_url must start with http:// or https://, got '%s'", c.Server.BaseURL))
	}
	if c.Server.ReadTimeoutSeconds < 1 || c.Server.WriteTimeoutSeconds < 1 {
		errs = append(errs, errors.New("server timeouts must be at least 1 second"))
	}

	if len(c.Google.Scopes) == 0 {
		errs = append(errs, errors.New("google.scopes must not be empty"))
	}

	// Session validation
	if c.Session.StateTTLSeconds < 1 {
		errs = append(errs, errors.New("session.state_ttl_seconds must be at least 1"))
	}
	if c.Session.RefreshTTLDays < 1 {
		errs = append(errs, errors.New("session.refresh_ttl_days must be at least 1"))
	}

	// Gmail validation
	if c.Gmail.ListLimit < 1 || c.Gmail.ListLimit > 500 {
		errs = append(errs, errors.New("gmail.list_limit must be between 1 and 500"))
	}
	if c.Gmail.DetailLimit < 1 || c.Gmail.DetailLimit > c.Gmail.ListLimit {
		errs = append(errs, errors.New("gmail.detail_limit must be between 1 and gmail.list_limit"))
	}
	if c.Gmail.FetchConcurrency < 1 {
		errs = append(errs, errors.New("gmail.fetch_concurrency must be at least 1"))
	}
	if _, err := c.Gmail.Location(); err != nil {
		errs = append(errs, fmt.Errorf("gmail.timezone: %w", err))
	}

	// Database validation
	if c.Database.Path == "" {
		errs = append(errs, errors.New("database.path is required"))
	}

	// Log validation
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Log.Level] {
		errs = append(errs, fmt.Errorf("log.level must be one of debug, info, warn, error, got '%s'", c.Log.Level))
	}
	if c.Log.Format != "console" && c.Log.Format != "json" {
		errs = append(errs, fmt.Errorf("log.format must be 'console' or 'json', got '%s'", c.Log.Format))
	}

	// MCP validation
	if c.MCP.Transport != "stdio" {
		errs = append(errs, fmt.Errorf("mcp.transport must be 'stdio', got '%s'", c.MCP.Transport))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// GoogleConfigured reports whether the OAuth client is usable
func (c *Config) GoogleConfigured() bool {
	return c.Google.ClientID != "" && c.Google.ClientSecret != ""
}

// EnsureDirectories creates necessary directories for the database
func (c *Config) EnsureDirectories() error {
	dir := filepath.Dir(c.Database.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}

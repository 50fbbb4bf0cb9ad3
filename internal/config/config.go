package config

import "time"

// Config represents the application configuration
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Google   GoogleConfig   `toml:"google"`
	Session  SessionConfig  `toml:"session"`
	Gmail    GmailConfig    `toml:"gmail"`
	Database DatabaseConfig `toml:"database"`
	LLM      LLMConfig      `toml:"llm"`
	Log      LogConfig      `toml:"log"`
	MCP      MCPConfig      `toml:"mcp"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Listen              string   `toml:"listen"`
	BaseURL             string   `toml:"base_url"`
	StaticDir           string   `toml:"static_dir"`
	AllowedOrigins      []string `toml:"allowed_origins"`
	ReadTimeoutSeconds  int      `toml:"read_timeout_seconds"`
	WriteTimeoutSeconds int      `toml:"write_timeout_seconds"`
}

// ReadTimeout returns the read timeout as a duration
func (s ServerConfig) ReadTimeout() time.Duration {
	return time.Duration(s.ReadTimeoutSeconds) * time.Second
}

// WriteTimeout returns the write timeout as a duration
func (s ServerConfig) WriteTimeout() time.Duration {
	return time.Duration(s.WriteTimeoutSeconds) * time.Second
}

// GoogleConfig contains the OAuth client. Client id and secret are checked
// per request, not at load time.
type GoogleConfig struct {
	ClientID     string   `toml:"client_id"`
	ClientSecret string   `toml:"client_secret"`
	Scopes       []string `toml:"scopes"`
}

// SessionConfig contains cookie lifetimes
type SessionConfig struct {
	StateTTLSeconds int `toml:"state_ttl_seconds"`
	RefreshTTLDays  int `toml:"refresh_ttl_days"`
}

// StateTTL returns the state cookie lifetime
func (s SessionConfig) StateTTL() time.Duration {
	return time.Duration(s.StateTTLSeconds) * time.Second
}

// RefreshTTL returns the refresh-token cookie lifetime
func (s SessionConfig) RefreshTTL() time.Duration {
	return time.Duration(s.RefreshTTLDays) * 24 * time.Hour
}

// GmailConfig contains inbox settings
type GmailConfig struct {
	ListLimit        int    `toml:"list_limit"`
	DetailLimit      int    `toml:"detail_limit"`
	FetchConcurrency int    `toml:"fetch_concurrency"`
	Timezone         string `toml:"timezone"` // IANA name, empty for the host zone
}

// Location resolves Timezone
func (g GmailConfig) Location() (*time.Location, error) {
	if g.Timezone == "" {
		return time.Local, nil
	}
	return time.LoadLocation(g.Timezone)
}

// DatabaseConfig contains database settings
type DatabaseConfig struct {
	Path string `toml:"path"`
}

// LLMConfig contains LLM provider settings
type LLMConfig struct {
	OpenAI OpenAIConfig `toml:"openai"`
}

// OpenAIConfig contains OpenAI-specific settings
type OpenAIConfig struct {
	Model   string `toml:"model"`
	BaseURL string `toml:"base_url"`
	// API key is read from OPENAI_API_KEY environment variable
	APIKey string `toml:"-"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// MCPConfig contains MCP server settings
type MCPConfig struct {
	Enabled   bool   `toml:"enabled"`
	Transport string `toml:"transport"`
}

// Default returns a Config with sensible defaults
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Listen:              ":8080",
			BaseURL:             "http://localhost:8080",
			ReadTimeoutSeconds:  15,
			WriteTimeoutSeconds: 30,
		},
		Google: GoogleConfig{
			Scopes: []string{"https://www.googleapis.com/auth/gmail.readonly"},
		},
		Session: SessionConfig{
			StateTTLSeconds: 600,
			RefreshTTLDays:  30,
		},
		Gmail: GmailConfig{
			ListLimit:        20,
			DetailLimit:      15,
			FetchConcurrency: 5,
		},
		Database: DatabaseConfig{
			Path: "~/.local/share/hub/hub.db",
		},
		LLM: LLMConfig{
			OpenAI: OpenAIConfig{
				Model: "gpt-4o-mini",
			},
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
		MCP: MCPConfig{
			Enabled:   true,
			Transport: "stdio",
		},
	}
}

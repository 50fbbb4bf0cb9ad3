package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/meadbax/hub/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create default configuration file",
	RunE:  runConfigInit,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display current configuration",
	RunE:  runConfigShow,
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	configFile := configPath
	configDir := filepath.Dir(configFile)

	dataDir, err := config.ExpandPath(filepath.Dir(config.Default().Database.Path))
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}

	// Create directories
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	// Check if config already exists
	if _, err := os.Stat(configFile); err == nil {
		fmt.Printf("Config file already exists at %s\n", configFile)
		fmt.Println("Use 'hub config show' to view current configuration")
		return nil
	}

	// Write default config
	if err := os.WriteFile(configFile, []byte(defaultConfig), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Printf("Created config file at %s\n", configFile)
	fmt.Println()
	fmt.Println("Next steps:")
	fmt.Println("  1. Create an OAuth client in Google Cloud with the Gmail API enabled")
	fmt.Println("  2. Register <base_url>/auth/gmail/callback as an authorized redirect URI")
	fmt.Println("  3. Set GOOGLE_CLIENT_ID and GOOGLE_CLIENT_SECRET (or put them in .env.local)")
	fmt.Println("  4. Run 'hub serve' and open the hub in your browser")
	fmt.Println()
	fmt.Println("For model-written daily suggestions, also set OPENAI_API_KEY.")

	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			fmt.Println("No config file found. Run 'hub config init' to create one.")
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}

	fmt.Printf("# Config file: %s\n\n", configPath)
	fmt.Println(string(data))
	return nil
}

const defaultConfig = `# MeadBax Hub Configuration

[server]
listen = ":8080"
base_url = "http://localhost:8080"   # public origin; the OAuth callback is <base_url>/auth/gmail/callback
static_dir = ""                      # directory served under /hub/
allowed_origins = []                 # enable CORS for these origins
read_timeout_seconds = 15
write_timeout_seconds = 30

[google]
# client_id and client_secret are usually set through
# GOOGLE_CLIENT_ID / GOOGLE_CLIENT_SECRET instead
client_id = ""
client_secret = ""
scopes = ["https://www.googleapis.com/auth/gmail.readonly"]

[session]
state_ttl_seconds = 600
refresh_ttl_days = 30

[gmail]
list_limit = 20         # inbox ids requested
detail_limit = 15       # ids expanded into summaries
fetch_concurrency = 5
timezone = ""           # IANA name for labels; empty uses the host zone

[database]
path = "~/.local/share/hub/hub.db"

[llm.openai]
model = "gpt-4o-mini"
# API key read from OPENAI_API_KEY env var

[log]
level = "info"          # debug, info, warn, error
format = "console"      # console, json

[mcp]
enabled = true
transport = "stdio"
`

package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/meadbax/hub/internal/config"
	"github.com/meadbax/hub/internal/database"
	"github.com/meadbax/hub/internal/log"
	"github.com/meadbax/hub/internal/suggest"
)

// loadConfig reads the config file and applies its log settings. serve
// passes optional so a bare checkout runs on defaults and the environment.
func loadConfig(optional bool) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if optional {
		cfg, err = config.LoadOptional(configPath)
	} else {
		cfg, err = config.Load(configPath)
	}
	if err != nil {
		return nil, err
	}

	level := log.ParseLevel(cfg.Log.Level)
	if verbose {
		level = log.LevelDebug
	}
	log.Configure(os.Stderr, cfg.Log.Format, level)
	return cfg, nil
}

// openDB opens the local store, creating its directory first
func openDB(cfg *config.Config) (*database.DB, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, err
	}
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

func newGenerator(cfg *config.Config) *suggest.Generator {
	return suggest.NewGenerator(suggest.Options{
		APIKey:  cfg.LLM.OpenAI.APIKey,
		Model:   cfg.LLM.OpenAI.Model,
		BaseURL: cfg.LLM.OpenAI.BaseURL,
	})
}

// localNow is the current time in the configured zone
func localNow(cfg *config.Config) time.Time {
	loc, err := cfg.Gmail.Location()
	if err != nil {
		return time.Now()
	}
	return time.Now().In(loc)
}

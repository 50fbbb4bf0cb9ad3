package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/meadbax/hub/internal/api"
	"github.com/meadbax/hub/internal/config"
	"github.com/meadbax/hub/internal/email"
	"github.com/meadbax/hub/internal/email/gmail"
	"github.com/meadbax/hub/internal/log"
	"github.com/meadbax/hub/internal/oauth"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the hub HTTP server",
	Long: `Run the HTTP server for the browser hub: the Gmail connect flow,
the inbox and message proxy, the command interpreter and the daily
suggestion. The config file is optional; GOOGLE_CLIENT_ID,
GOOGLE_CLIENT_SECRET, BASE_URL and PORT can come from the environment
or a .env.local file.

Examples:
  hub serve
  PORT=3000 hub serve --static ./web`,
	RunE: runServe,
}

var serveStatic string

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveStatic, "static", "", "Directory served under /hub/ (overrides server.static_dir)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(true)
	if err != nil {
		return err
	}
	if serveStatic != "" {
		cfg.Server.StaticDir = serveStatic
	}

	deps, err := serverDeps(cfg)
	if err != nil {
		return err
	}

	if !verbose && cfg.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	srv := &http.Server{
		Addr:         cfg.Server.Listen,
		Handler:      api.SetupRouter(deps),
		ReadTimeout:  cfg.Server.ReadTimeout(),
		WriteTimeout: cfg.Server.WriteTimeout(),
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("hub listening", "addr", cfg.Server.Listen, "base_url", cfg.Server.BaseURL,
			"gmail_configured", cfg.GoogleConfigured())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	return nil
}

// serverDeps turns the config into router dependencies
func serverDeps(cfg *config.Config) (api.Deps, error) {
	loc, err := cfg.Gmail.Location()
	if err != nil {
		return api.Deps{}, fmt.Errorf("invalid gmail.timezone: %w", err)
	}

	oc := oauth.DefaultConfig()
	oc.ClientID = cfg.Google.ClientID
	oc.ClientSecret = cfg.Google.ClientSecret
	oc.BaseURL = cfg.Server.BaseURL
	oc.StateTTL = cfg.Session.StateTTL()
	oc.RefreshTTL = cfg.Session.RefreshTTL()
	if len(cfg.Google.Scopes) > 0 {
		oc.Scopes = cfg.Google.Scopes
	}

	provider := gmail.New(oc.OAuth2(), email.Options{
		ListLimit:   cfg.Gmail.ListLimit,
		DetailLimit: cfg.Gmail.DetailLimit,
		Concurrency: cfg.Gmail.FetchConcurrency,
		Location:    loc,
	})

	return api.Deps{
		OAuth:          oc,
		Mail:           provider,
		Suggest:        newGenerator(cfg),
		StaticDir:      cfg.Server.StaticDir,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Now: func() time.Time {
			return time.Now().In(loc)
		},
	}, nil
}

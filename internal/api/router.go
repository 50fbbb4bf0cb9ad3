// Package api wires the hub's HTTP routes onto a gin engine.
package api

import (
	"net/http"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/meadbax/hub/internal/api/handlers"
	"github.com/meadbax/hub/internal/api/middleware"
	"github.com/meadbax/hub/internal/email"
	"github.com/meadbax/hub/internal/oauth"
	"github.com/meadbax/hub/internal/suggest"
)

// Deps is everything the router needs. Nothing in it holds per-user state.
type Deps struct {
	OAuth     oauth.Config
	Mail      email.Provider
	Suggest   *suggest.Generator
	StaticDir string

	// AllowedOrigins enables CORS for the listed origins; empty disables it
	AllowedOrigins []string

	// Now is the clock for interpreter and suggestion requests
	Now func() time.Time
}

// SetupRouter initializes and returns the gin engine with all routes configured
func SetupRouter(d Deps) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger())

	if len(d.AllowedOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     d.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	generator := d.Suggest
	if generator == nil {
		generator = suggest.NewGenerator(suggest.Options{})
	}

	defaults := oauth.DefaultConfig()
	if d.OAuth.CallbackPath == "" {
		d.OAuth.CallbackPath = defaults.CallbackPath
	}
	if d.OAuth.HomePath == "" {
		d.OAuth.HomePath = defaults.HomePath
	}

	authHandler := handlers.NewAuthHandler(d.OAuth)
	mailHandler := handlers.NewMailHandler(d.Mail)
	commandHandler := handlers.NewCommandHandler(d.Now)
	suggestHandler := handlers.NewSuggestHandler(generator, d.Now)

	handle(router, "/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}, http.MethodGet)

	handle(router, "/auth/gmail", authHandler.Connect, http.MethodGet)
	handle(router, d.OAuth.CallbackPath, authHandler.Callback, http.MethodGet)
	handle(router, "/auth/gmail/signout", authHandler.SignOut, http.MethodGet, http.MethodPost)

	handle(router, "/gmail/inbox", mailHandler.Inbox, http.MethodGet)
	handle(router, "/gmail/message/:id", mailHandler.Message, http.MethodGet)

	handle(router, "/command", commandHandler.Interpret, http.MethodPost)
	handle(router, "/suggest", suggestHandler.Suggest, http.MethodPost)

	handle(router, "/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, d.OAuth.HomePath)
	}, http.MethodGet)

	if d.StaticDir != "" {
		router.Static("/hub", d.StaticDir)
		notAllowed := middleware.MethodNotAllowed(http.MethodGet, http.MethodHead)
		for _, m := range middleware.Methods {
			if m != http.MethodGet && m != http.MethodHead {
				router.Handle(m, "/hub/*filepath", notAllowed)
			}
		}
	}

	return router
}

// handle registers h for the allowed methods and a 405 for every other one
func handle(r gin.IRoutes, path string, h gin.HandlerFunc, allowed ...string) {
	notAllowed := middleware.MethodNotAllowed(allowed...)
	for _, m := range middleware.Methods {
		if slices.Contains(allowed, m) {
			r.Handle(m, path, h)
		} else {
			r.Handle(m, path, notAllowed)
		}
	}
}

// Package handlers implements the hub HTTP endpoints on top of gin.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/meadbax/hub/internal/log"
	"github.com/meadbax/hub/internal/oauth"
)

// AuthHandler serves the Gmail connect, callback and sign-out routes
type AuthHandler struct {
	authorizer *oauth.Authorizer
	callback   *oauth.Callback
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(cfg oauth.Config) *AuthHandler {
	return &AuthHandler{
		authorizer: oauth.NewAuthorizer(cfg),
		callback:   oauth.NewCallback(cfg),
	}
}

// Connect handles GET /auth/gmail
func (h *AuthHandler) Connect(c *gin.Context) {
	url, cookie, err := h.authorizer.Begin()
	if err != nil {
		if errors.Is(err, oauth.ErrNotConfigured) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "GOOGLE_CLIENT_ID not configured"})
			return
		}
		log.Error("failed to start gmail connect", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start sign-in"})
		return
	}

	http.SetCookie(c.Writer, cookie)
	c.Redirect(http.StatusFound, url)
}

// Callback handles GET /auth/gmail/callback. It always redirects home; the
// query parameter tells the page whether the connect worked.
func (h *AuthHandler) Callback(c *gin.Context) {
	out := h.callback.Complete(
		c.Request.Context(),
		c.Query("code"),
		c.Query("state"),
		oauth.StoredState(c.Request),
	)

	for _, cookie := range out.Cookies {
		http.SetCookie(c.Writer, cookie)
	}
	c.Header("Cache-Control", "no-store")
	c.Redirect(http.StatusFound, out.Redirect)
}

// SignOut handles GET|POST /auth/gmail/signout
func (h *AuthHandler) SignOut(c *gin.Context) {
	http.SetCookie(c.Writer, oauth.SignOutCookie())
	c.Header("Cache-Control", "no-store, no-cache, must-revalidate")
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

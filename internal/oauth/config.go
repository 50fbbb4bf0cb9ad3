// Package oauth implements the Gmail connect flow: the consent redirect with
// its anti-forgery state cookie, the authorization-code callback that turns a
// code into a refresh-token cookie, and sign-out.
//
// Nothing here is stored server-side. The state token and the refresh token
// live only in the browser's cookies.
package oauth

import (
	"errors"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/gmail/v1"
)

// Cookie names
const (
	StateCookie   = "oauth_state"
	RefreshCookie = "refresh_token"
)

var (
	// ErrNotConfigured means the OAuth client id or secret is missing
	ErrNotConfigured = errors.New("oauth client not configured")

	// ErrMissingCode means the callback carried no authorization code
	ErrMissingCode = errors.New("missing authorization code")

	// ErrStateMismatch means the callback state did not match the state cookie
	ErrStateMismatch = errors.New("oauth state mismatch")

	// ErrTokenExchange means the provider rejected the code or was unreachable
	ErrTokenExchange = errors.New("token exchange failed")

	// ErrNoRefreshToken means the provider returned tokens without a refresh token
	ErrNoRefreshToken = errors.New("no refresh token in token response")
)

// DefaultScopes is read-only mail access
var DefaultScopes = []string{gmail.GmailReadonlyScope}

// Config holds everything the authorizer and callback need
type Config struct {
	ClientID     string
	ClientSecret string

	// BaseURL is the public origin of the hub, e.g. https://hub.example.com
	BaseURL      string
	CallbackPath string
	HomePath     string

	Scopes     []string
	StateTTL   time.Duration
	RefreshTTL time.Duration

	Endpoint oauth2.Endpoint
}

// DefaultConfig returns a Config for Google with the standard paths and TTLs
func DefaultConfig() Config {
	return Config{
		CallbackPath: "/auth/gmail/callback",
		HomePath:     "/hub/",
		Scopes:       DefaultScopes,
		StateTTL:     10 * time.Minute,
		RefreshTTL:   30 * 24 * time.Hour,
		Endpoint:     google.Endpoint,
	}
}

// RedirectURI is the callback URL registered with the provider. The token
// exchange must send exactly the same value.
func (c Config) RedirectURI() string {
	return c.base() + c.CallbackPath
}

// Secure reports whether cookies should carry the Secure attribute
func (c Config) Secure() bool {
	return strings.HasPrefix(strings.ToLower(c.BaseURL), "https")
}

// HomeURL is where the browser lands after the callback
func (c Config) HomeURL(connected bool) string {
	status := "error"
	if connected {
		status = "connected"
	}
	return c.base() + c.HomePath + "?gmail=" + status
}

// OAuth2 returns the golang.org/x/oauth2 view of this config
func (c Config) OAuth2() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     c.ClientID,
		ClientSecret: c.ClientSecret,
		RedirectURL:  c.RedirectURI(),
		Scopes:       c.Scopes,
		Endpoint:     c.Endpoint,
	}
}

func (c Config) base() string {
	return strings.TrimRight(c.BaseURL, "/")
}

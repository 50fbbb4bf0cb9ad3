package oauth

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"

	"github.com/meadbax/hub/internal/log"
)

const stateBytes = 32

// Authorizer starts the consent flow
type Authorizer struct {
	cfg Config
}

// NewAuthorizer creates an Authorizer
func NewAuthorizer(cfg Config) *Authorizer {
	return &Authorizer{cfg: cfg}
}

// Begin returns the provider consent URL and the state cookie that binds the
// browser to this authorization request.
func (a *Authorizer) Begin() (string, *http.Cookie, error) {
	if a.cfg.ClientID == "" {
		return "", nil, ErrNotConfigured
	}

	state, err := generateState()
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate state: %w", err)
	}

	url := a.cfg.OAuth2().AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.ApprovalForce)
	return url, stateCookie(a.cfg, state), nil
}

// generateState returns 32 random bytes, base64url without padding
func generateState() (string, error) {
	b := make([]byte, stateBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// Outcome is what the callback tells the browser. Err is nil only when the
// refresh-token cookie was issued.
type Outcome struct {
	Redirect string
	Cookies  []*http.Cookie
	Err      error
}

// Callback completes the flow
type Callback struct {
	cfg Config
}

// NewCallback creates a Callback
func NewCallback(cfg Config) *Callback {
	return &Callback{cfg: cfg}
}

// Complete validates the callback parameters, exchanges the code and builds
// the response. Every failure produces the same generic redirect; the cause
// is only logged. The state cookie is cleared either way.
func (c *Callback) Complete(ctx context.Context, code, state, storedState string) Outcome {
	token, err := c.exchange(ctx, code, state, storedState)
	if err != nil {
		log.Warn("gmail connect failed", "reason", err.Error())
		return Outcome{
			Redirect: c.cfg.HomeURL(false),
			Cookies:  []*http.Cookie{clearStateCookie()},
			Err:      err,
		}
	}

	log.Info("gmail connected")
	return Outcome{
		Redirect: c.cfg.HomeURL(true),
		Cookies:  []*http.Cookie{refreshCookie(c.cfg, token), clearStateCookie()},
	}
}

func (c *Callback) exchange(ctx context.Context, code, state, storedState string) (string, error) {
	if code == "" {
		return "", ErrMissingCode
	}
	if c.cfg.ClientID == "" || c.cfg.ClientSecret == "" {
		return "", ErrNotConfigured
	}
	if !statesMatch(state, storedState) {
		return "", ErrStateMismatch
	}

	tok, err := c.cfg.OAuth2().Exchange(ctx, code)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTokenExchange, err)
	}
	if tok.RefreshToken == "" {
		return "", ErrNoRefreshToken
	}

	return tok.RefreshToken, nil
}

// statesMatch requires a stored state and an exact, constant-time match
func statesMatch(state, stored string) bool {
	if stored == "" || len(state) != len(stored) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(state), []byte(stored)) == 1
}

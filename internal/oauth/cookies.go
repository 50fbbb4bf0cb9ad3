package oauth

import (
	"net/http"
	"net/url"
	"time"
)

func stateCookie(cfg Config, state string) *http.Cookie {
	return &http.Cookie{
		Name:     StateCookie,
		Value:    state,
		Path:     "/",
		MaxAge:   int(cfg.StateTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

func clearStateCookie() *http.Cookie {
	return &http.Cookie{
		Name:     StateCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

// refreshCookie escapes the token so any provider alphabet survives the
// cookie value rules.
func refreshCookie(cfg Config, token string) *http.Cookie {
	return &http.Cookie{
		Name:     RefreshCookie,
		Value:    url.QueryEscape(token),
		Path:     "/",
		MaxAge:   int(cfg.RefreshTTL.Seconds()),
		HttpOnly: true,
		Secure:   cfg.Secure(),
		SameSite: http.SameSiteLaxMode,
	}
}

// SignOutCookie expires the refresh-token cookie
func SignOutCookie() *http.Cookie {
	return &http.Cookie{
		Name:     RefreshCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0).UTC(),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

// RefreshToken reads the refresh token from the request cookies. It returns
// "" when the cookie is absent, empty or not decodable.
func RefreshToken(r *http.Request) string {
	c, err := r.Cookie(RefreshCookie)
	if err != nil || c.Value == "" {
		return ""
	}
	token, err := url.QueryUnescape(c.Value)
	if err != nil {
		return ""
	}
	return token
}

// StoredState reads the state cookie, "" when absent
func StoredState(r *http.Request) string {
	c, err := r.Cookie(StateCookie)
	if err != nil {
		return ""
	}
	return c.Value
}

package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"

	"github.com/meadbax/hub/internal/oauth"
)

func authConfig(tokenURL string) oauth.Config {
	cfg := oauth.DefaultConfig()
	cfg.ClientID = "client-id"
	cfg.ClientSecret = "client-secret"
	cfg.BaseURL = "https://hub.example.com"
	cfg.Endpoint = oauth2.Endpoint{
		AuthURL:   "https://accounts.example.com/auth",
		TokenURL:  tokenURL,
		AuthStyle: oauth2.AuthStyleInParams,
	}
	return cfg
}

func authRouter(cfg oauth.Config) *gin.Engine {
	h := NewAuthHandler(cfg)
	r := gin.New()
	r.GET("/auth/gmail", h.Connect)
	r.GET("/auth/gmail/callback", h.Callback)
	r.GET("/auth/gmail/signout", h.SignOut)
	return r
}

func findCookie(w *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestConnect(t *testing.T) {
	w := get(authRouter(authConfig("https://unused.example.com/token")), "/auth/gmail")

	if w.Code != http.StatusFound {
		t.Fatalf("status = %d", w.Code)
	}
	loc, err := url.Parse(w.Header().Get("Location"))
	if err != nil {
		t.Fatalf("bad Location: %v", err)
	}
	if !strings.HasPrefix(loc.String(), "https://accounts.example.com/auth?") {
		t.Errorf("Location = %s", loc)
	}

	state := findCookie(w, oauth.StateCookie)
	if state == nil || !state.HttpOnly || state.MaxAge != 600 {
		t.Fatalf("state cookie = %+v", state)
	}
	if loc.Query().Get("state") != state.Value {
		t.Errorf("state param %q does not match cookie %q", loc.Query().Get("state"), state.Value)
	}
}

func TestConnectNotConfigured(t *testing.T) {
	cfg := authConfig("https://unused.example.com/token")
	cfg.ClientID = ""

	w := get(authRouter(cfg), "/auth/gmail")

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", w.Code)
	}
	if body := decode(t, w); body["error"] != "GOOGLE_CLIENT_ID not configured" {
		t.Errorf("body = %v", body)
	}
	if findCookie(w, oauth.StateCookie) != nil {
		t.Error("no state cookie expected")
	}
}

func TestCallback(t *testing.T) {
	tokens := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token":  "at",
			"token_type":    "Bearer",
			"expires_in":    3600,
			"refresh_token": "1//refresh",
		})
	}))
	defer tokens.Close()
	router := authRouter(authConfig(tokens.URL))

	tests := []struct {
		name        string
		query       string
		stateCookie string
		wantURL     string
		wantRefresh bool
	}{
		{"success", "?code=abc&state=s1", "s1", "https://hub.example.com/hub/?gmail=connected", true},
		{"state mismatch", "?code=abc&state=s1", "s2", "https://hub.example.com/hub/?gmail=error", false},
		{"no state cookie", "?code=abc&state=s1", "", "https://hub.example.com/hub/?gmail=error", false},
		{"missing code", "?state=s1", "s1", "https://hub.example.com/hub/?gmail=error", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cookies []*http.Cookie
			if tt.stateCookie != "" {
				cookies = append(cookies, &http.Cookie{Name: oauth.StateCookie, Value: tt.stateCookie})
			}

			w := get(router, "/auth/gmail/callback"+tt.query, cookies...)

			if w.Code != http.StatusFound {
				t.Fatalf("status = %d", w.Code)
			}
			if got := w.Header().Get("Location"); got != tt.wantURL {
				t.Errorf("Location = %q, want %q", got, tt.wantURL)
			}
			if c := findCookie(w, oauth.StateCookie); c == nil || c.MaxAge >= 0 {
				t.Errorf("state cookie not cleared: %+v", c)
			}

			refresh := findCookie(w, oauth.RefreshCookie)
			if tt.wantRefresh {
				if refresh == nil || !refresh.HttpOnly || !refresh.Secure {
					t.Fatalf("refresh cookie = %+v", refresh)
				}
				if v, _ := url.QueryUnescape(refresh.Value); v != "1//refresh" {
					t.Errorf("refresh token = %q", v)
				}
			} else if refresh != nil {
				t.Errorf("unexpected refresh cookie %+v", refresh)
			}
		})
	}
}

func TestSignOut(t *testing.T) {
	w := get(authRouter(authConfig("")), "/auth/gmail/signout", refreshCookie("rt"))

	if w.Code != http.StatusOK || w.Body.String() != `{"ok":true}` {
		t.Fatalf("got %d %s", w.Code, w.Body.String())
	}
	if !strings.HasPrefix(w.Header().Get("Cache-Control"), "no-store") {
		t.Errorf("Cache-Control = %q", w.Header().Get("Cache-Control"))
	}
	c := findCookie(w, oauth.RefreshCookie)
	if c == nil || c.Value != "" || c.MaxAge >= 0 {
		t.Errorf("refresh cookie not cleared: %+v", c)
	}
}

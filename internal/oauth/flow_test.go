package oauth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"golang.org/x/oauth2"
)

// tokenServer fakes the provider token endpoint. It answers with body and
// status, and counts calls.
type tokenServer struct {
	*httptest.Server
	calls    atomic.Int32
	lastForm url.Values
}

func newTokenServer(t *testing.T, status int, body string) *tokenServer {
	t.Helper()
	ts := &tokenServer{}
	ts.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ts.calls.Add(1)
		_ = r.ParseForm()
		ts.lastForm = r.PostForm
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		fmt.Fprint(w, body)
	}))
	t.Cleanup(ts.Close)
	return ts
}

func testConfig(tokenURL string) Config {
	cfg := DefaultConfig()
	cfg.ClientID = "client-123"
	cfg.ClientSecret = "secret-456"
	cfg.BaseURL = "https://hub.example.com/"
	cfg.Endpoint = oauth2.Endpoint{
		AuthURL:   "https://accounts.example.com/o/oauth2/v2/auth",
		TokenURL:  tokenURL,
		AuthStyle: oauth2.AuthStyleInParams,
	}
	return cfg
}

const okTokenBody = `{"access_token":"at","token_type":"Bearer","expires_in":3600,"refresh_token":"1//rt/with+chars"}`

func TestBegin(t *testing.T) {
	a := NewAuthorizer(testConfig("https://unused"))

	target, cookie, err := a.Begin()
	if err != nil {
		t.Fatalf("Begin: %v", err)
	}

	u, err := url.Parse(target)
	if err != nil {
		t.Fatalf("bad redirect url: %v", err)
	}
	q := u.Query()

	want := map[string]string{
		"client_id":     "client-123",
		"redirect_uri":  "https://hub.example.com/auth/gmail/callback",
		"response_type": "code",
		"scope":         "https://www.googleapis.com/auth/gmail.readonly",
		"access_type":   "offline",
		"prompt":        "consent",
	}
	for k, v := range want {
		if got := q.Get(k); got != v {
			t.Errorf("param %s = %q, want %q", k, got, v)
		}
	}
	if len(q) != len(want)+1 {
		t.Errorf("unexpected parameter set: %v", q)
	}

	if q.Get("state") == "" || q.Get("state") != cookie.Value {
		t.Errorf("state param %q does not match cookie %q", q.Get("state"), cookie.Value)
	}
	if cookie.Name != StateCookie || !cookie.HttpOnly || cookie.SameSite != http.SameSiteLaxMode || cookie.MaxAge != 600 {
		t.Errorf("unexpected state cookie: %+v", cookie)
	}
}

func TestBeginStatesAreUnique(t *testing.T) {
	a := NewAuthorizer(testConfig("https://unused"))
	seen := make(map[string]bool)

	for i := 0; i < 50; i++ {
		_, c, err := a.Begin()
		if err != nil {
			t.Fatalf("Begin: %v", err)
		}
		if len(c.Value) < 22 {
			t.Fatalf("state too short: %q", c.Value)
		}
		if seen[c.Value] {
			t.Fatalf("state repeated: %q", c.Value)
		}
		seen[c.Value] = true
	}
}

func TestBeginNotConfigured(t *testing.T) {
	cfg := testConfig("https://unused")
	cfg.ClientID = ""

	_, _, err := NewAuthorizer(cfg).Begin()
	if !errors.Is(err, ErrNotConfigured) {
		t.Errorf("expected ErrNotConfigured, got %v", err)
	}
}

func TestCompleteSuccess(t *testing.T) {
	ts := newTokenServer(t, http.StatusOK, okTokenBody)
	cb := NewCallback(testConfig(ts.URL))

	out := cb.Complete(context.Background(), "the-code", "s1", "s1")
	if out.Err != nil {
		t.Fatalf("expected success, got %v", out.Err)
	}
	if out.Redirect != "https://hub.example.com/hub/?gmail=connected" {
		t.Errorf("redirect = %q", out.Redirect)
	}

	if got := ts.lastForm.Get("grant_type"); got != "authorization_code" {
		t.Errorf("grant_type = %q", got)
	}
	if got := ts.lastForm.Get("redirect_uri"); got != "https://hub.example.com/auth/gmail/callback" {
		t.Errorf("redirect_uri = %q", got)
	}
	if got := ts.lastForm.Get("code"); got != "the-code" {
		t.Errorf("code = %q", got)
	}

	if len(out.Cookies) != 2 {
		t.Fatalf("expected refresh + cleared state cookies, got %d", len(out.Cookies))
	}
	refresh, state := out.Cookies[0], out.Cookies[1]

	if refresh.Name != RefreshCookie || !refresh.HttpOnly || !refresh.Secure || refresh.MaxAge != 30*24*60*60 {
		t.Errorf("unexpected refresh cookie: %+v", refresh)
	}
	if refresh.SameSite != http.SameSiteLaxMode {
		t.Errorf("refresh cookie SameSite = %v", refresh.SameSite)
	}
	if state.Name != StateCookie || state.MaxAge >= 0 {
		t.Errorf("state cookie not cleared: %+v", state)
	}

	// the cookie round-trips back to the issued token
	req := httptest.NewRequest(http.MethodGet, "/gmail/inbox", nil)
	req.AddCookie(refresh)
	if got := RefreshToken(req); got != "1//rt/with+chars" {
		t.Errorf("RefreshToken() = %q", got)
	}
}

func TestCompleteInsecureBaseURL(t *testing.T) {
	ts := newTokenServer(t, http.StatusOK, okTokenBody)
	cfg := testConfig(ts.URL)
	cfg.BaseURL = "http://localhost:8080"

	out := NewCallback(cfg).Complete(context.Background(), "c", "s", "s")
	if out.Err != nil {
		t.Fatalf("expected success, got %v", out.Err)
	}
	if out.Cookies[0].Secure {
		t.Error("refresh cookie must not be Secure on plain http")
	}
	if out.Redirect != "http://localhost:8080/hub/?gmail=connected" {
		t.Errorf("redirect = %q", out.Redirect)
	}
}

func TestCompleteFailures(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		modify   func(*Config)
		code     string
		state    string
		stored   string
		wantErr  error
		wantCall bool
	}{
		{
			name: "missing code", status: 200, body: okTokenBody,
			code: "", state: "s", stored: "s",
			wantErr: ErrMissingCode,
		},
		{
			name: "missing secret", status: 200, body: okTokenBody,
			modify: func(c *Config) { c.ClientSecret = "" },
			code:   "c", state: "s", stored: "s",
			wantErr: ErrNotConfigured,
		},
		{
			name: "missing state cookie", status: 200, body: okTokenBody,
			code: "c", state: "s", stored: "",
			wantErr: ErrStateMismatch,
		},
		{
			name: "both states empty", status: 200, body: okTokenBody,
			code: "c", state: "", stored: "",
			wantErr: ErrStateMismatch,
		},
		{
			name: "prefix is not a match", status: 200, body: okTokenBody,
			code: "c", state: "abc", stored: "abcd",
			wantErr: ErrStateMismatch,
		},
		{
			name: "provider rejects code", status: 400, body: `{"error":"invalid_grant"}`,
			code: "c", state: "s", stored: "s",
			wantErr: ErrTokenExchange, wantCall: true,
		},
		{
			name: "no refresh token", status: 200, body: `{"access_token":"at","token_type":"Bearer","expires_in":3600}`,
			code: "c", state: "s", stored: "s",
			wantErr: ErrNoRefreshToken, wantCall: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTokenServer(t, tt.status, tt.body)
			cfg := testConfig(ts.URL)
			if tt.modify != nil {
				tt.modify(&cfg)
			}

			out := NewCallback(cfg).Complete(context.Background(), tt.code, tt.state, tt.stored)

			if !errors.Is(out.Err, tt.wantErr) {
				t.Errorf("err = %v, want %v", out.Err, tt.wantErr)
			}
			if out.Redirect != "https://hub.example.com/hub/?gmail=error" {
				t.Errorf("redirect = %q", out.Redirect)
			}
			if strings.Contains(out.Redirect, "invalid_grant") {
				t.Error("provider error leaked into redirect")
			}
			if len(out.Cookies) != 1 || out.Cookies[0].Name != StateCookie || out.Cookies[0].MaxAge >= 0 {
				t.Errorf("expected only a cleared state cookie, got %+v", out.Cookies)
			}
			if called := ts.calls.Load() > 0; called != tt.wantCall {
				t.Errorf("token endpoint called = %v, want %v", called, tt.wantCall)
			}
		})
	}
}

func TestProperty_StateMismatchNeverConnects(t *testing.T) {
	ts := newTokenServer(t, http.StatusOK, okTokenBody)
	cb := NewCallback(testConfig(ts.URL))

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	nonEmpty := gen.AnyString().SuchThat(func(s string) bool { return s != "" })

	properties.Property("distinct states always fail", prop.ForAll(
		func(a, b string) bool {
			if a == b {
				b = b + "x"
			}
			out := cb.Complete(context.Background(), "code", a, b)
			return out.Err != nil &&
				errors.Is(out.Err, ErrStateMismatch) &&
				strings.HasSuffix(out.Redirect, "?gmail=error") &&
				len(out.Cookies) == 1
		},
		nonEmpty, nonEmpty,
	))

	properties.TestingRun(t)

	if ts.calls.Load() != 0 {
		t.Errorf("token endpoint must not be called on mismatch, got %d calls", ts.calls.Load())
	}
}

func TestSignOutCookie(t *testing.T) {
	c := SignOutCookie()
	s := c.String()

	for _, want := range []string{"refresh_token=", "Path=/", "Max-Age=0", "HttpOnly", "SameSite=Lax", "Expires=Thu, 01 Jan 1970 00:00:00 GMT"} {
		if !strings.Contains(s, want) {
			t.Errorf("cookie %q missing %q", s, want)
		}
	}
}

func TestRefreshTokenMissingOrBad(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if got := RefreshToken(req); got != "" {
		t.Errorf("expected empty token, got %q", got)
	}

	req.AddCookie(&http.Cookie{Name: RefreshCookie, Value: "%zz"})
	if got := RefreshToken(req); got != "" {
		t.Errorf("expected undecodable cookie to be ignored, got %q", got)
	}
}

package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"golang.org/x/oauth2"

	"github.com/meadbax/hub/internal/email"
	"github.com/meadbax/hub/internal/email/gmail"
	"github.com/meadbax/hub/internal/oauth"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeProvider struct {
	summaries []email.Summary
	detail    *email.Detail
	err       error

	gotToken string
	gotID    string
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) ListInbox(_ context.Context, refreshToken string) ([]email.Summary, error) {
	f.gotToken = refreshToken
	return f.summaries, f.err
}

func (f *fakeProvider) GetMessage(_ context.Context, refreshToken, id string) (*email.Detail, error) {
	f.gotToken = refreshToken
	f.gotID = id
	return f.detail, f.err
}

func mailRouter(p email.Provider) *gin.Engine {
	h := NewMailHandler(p)
	r := gin.New()
	r.GET("/gmail/inbox", h.Inbox)
	r.GET("/gmail/message/:id", h.Message)
	return r
}

func get(r http.Handler, path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json %q: %v", w.Body.String(), err)
	}
	return body
}

func refreshCookie(token string) *http.Cookie {
	return &http.Cookie{Name: oauth.RefreshCookie, Value: url.QueryEscape(token)}
}

func TestInbox(t *testing.T) {
	p := &fakeProvider{summaries: []email.Summary{
		{ID: "m1", Subject: "Hello", Sender: "Alice", Time: "09:15 AM"},
	}}

	w := get(mailRouter(p), "/gmail/inbox", refreshCookie("1//rt/with+chars"))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	if p.gotToken != "1//rt/with+chars" {
		t.Errorf("provider got token %q", p.gotToken)
	}
	if cc := w.Header().Get("Cache-Control"); cc != mailCacheControl {
		t.Errorf("Cache-Control = %q", cc)
	}

	var body struct {
		Emails []email.Summary `json:"emails"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(body.Emails) != 1 || body.Emails[0].Sender != "Alice" {
		t.Errorf("emails = %+v", body.Emails)
	}
}

func TestInboxEmpty(t *testing.T) {
	w := get(mailRouter(&fakeProvider{}), "/gmail/inbox", refreshCookie("rt"))

	if w.Body.String() != `{"emails":[]}` {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestMessage(t *testing.T) {
	p := &fakeProvider{detail: &email.Detail{ID: "m1", Subject: "Hi", BodyPlain: "text", Body: "text"}}

	w := get(mailRouter(p), "/gmail/message/m1", refreshCookie("rt"))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if p.gotID != "m1" {
		t.Errorf("provider got id %q", p.gotID)
	}
	body := decode(t, w)
	if body["bodyPlain"] != "text" || body["subject"] != "Hi" {
		t.Errorf("body = %v", body)
	}
}

func TestMailErrors(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		err        error
		wantStatus int
		wantError  string
		wantCode   string
	}{
		{"no cookie", "/gmail/inbox", email.ErrNotConnected, http.StatusUnauthorized, "Not connected", "NOT_CONNECTED"},
		{"refresh refused", "/gmail/inbox", fmt.Errorf("%w: invalid_grant", email.ErrNotConnected), http.StatusUnauthorized, "Invalid or expired token", "NOT_CONNECTED"},
		{"not configured", "/gmail/inbox", email.ErrNotConfigured, http.StatusInternalServerError, "Gmail not configured", ""},
		{"inbox upstream failure", "/gmail/inbox", errors.New("quota exceeded"), http.StatusInternalServerError, "Failed to fetch inbox", ""},
		{"unknown message", "/gmail/message/nope", fmt.Errorf("get message: %w", email.ErrNotFound), http.StatusNotFound, "Message not found", ""},
		{"message upstream failure", "/gmail/message/m1", errors.New("backend error"), http.StatusInternalServerError, "Failed to fetch message", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := get(mailRouter(&fakeProvider{err: tt.err}), tt.path)

			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			body := decode(t, w)
			if body["error"] != tt.wantError {
				t.Errorf("error = %v, want %q", body["error"], tt.wantError)
			}
			if tt.wantCode != "" && body["code"] != tt.wantCode {
				t.Errorf("code = %v, want %q", body["code"], tt.wantCode)
			}
			if tt.wantStatus == http.StatusInternalServerError && tt.wantError != "Gmail not configured" {
				if body["message"] != tt.err.Error() {
					t.Errorf("message = %v, want %q", body["message"], tt.err.Error())
				}
			}
			if w.Header().Get("Cache-Control") != "" {
				t.Errorf("error responses must not be cached")
			}
		})
	}
}

// Without a refresh-token cookie every mail route answers 401 NOT_CONNECTED
// and nothing is sent to the provider.
func TestProperty_MissingCookieNeverReachesProvider(t *testing.T) {
	var calls atomic.Int32
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "unexpected", http.StatusTeapot)
	}))
	defer upstream.Close()

	provider := gmail.New(&oauth2.Config{
		ClientID:     "client",
		ClientSecret: "secret",
		Endpoint:     oauth2.Endpoint{TokenURL: upstream.URL + "/token"},
	}, email.DefaultOptions(), gmail.WithEndpoint(upstream.URL+"/"))
	router := mailRouter(provider)

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50
	properties := gopter.NewProperties(parameters)

	idGen := gen.SliceOfN(12, gen.AlphaNumChar()).Map(func(chars []rune) string {
		return string(chars)
	})

	properties.Property("no_cookie_is_not_connected", prop.ForAll(
		func(id string, inbox bool) bool {
			path := "/gmail/message/" + id
			if inbox {
				path = "/gmail/inbox"
			}

			w := get(router, path)
			if w.Code != http.StatusUnauthorized {
				return false
			}
			var body map[string]any
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				return false
			}
			return body["code"] == "NOT_CONNECTED" && calls.Load() == 0
		},
		idGen,
		gen.Bool(),
	))

	properties.TestingRun(t)
}

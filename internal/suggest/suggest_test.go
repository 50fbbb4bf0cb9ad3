package suggest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func TestLocal(t *testing.T) {
	tests := []struct {
		name     string
		ctx      Context
		contains []string
		excludes []string
	}{
		{
			name:     "first task leads in the morning",
			ctx:      Context{Weekday: "Monday", Hour: 9, Tasks: []string{"write report"}},
			contains: []string{`Focus on "write report" first this morning.`},
			excludes: []string{"momentum", "weekend"},
		},
		{
			name:     "several tasks add momentum",
			ctx:      Context{Weekday: "Tuesday", Hour: 14, Tasks: []string{"a", "b", "c"}},
			contains: []string{"this afternoon", "You have 3 tasks today"},
		},
		{
			name:     "goal when no tasks",
			ctx:      Context{Weekday: "Wednesday", Hour: 20, Goals: []string{"learn Go"}},
			contains: []string{`Consider breaking "learn Go" into a small step`},
		},
		{
			name:     "empty lists",
			ctx:      Context{Weekday: "Saturday", Hour: 10},
			contains: []string{"No tasks or goals yet."},
			excludes: []string{"weekend"},
		},
		{
			name:     "rain prefers indoors",
			ctx:      Context{Weekday: "Monday", Hour: 9, Tasks: []string{"x"}, Weather: "Light Rain, 12°C"},
			contains: []string{"indoor or low-mobility"},
		},
		{
			name:     "clear sky suggests outdoors",
			ctx:      Context{Weekday: "Monday", Hour: 9, Tasks: []string{"x"}, Weather: "Clear sky"},
			contains: []string{"something outdoors"},
		},
		{
			name:     "weekend sentence with tasks",
			ctx:      Context{Weekday: "Sunday", Hour: 18, Tasks: []string{"x"}},
			contains: []string{"this evening", "Use the weekend"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Local(tt.ctx)
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("Local() = %q, missing %q", got, want)
				}
			}
			for _, bad := range tt.excludes {
				if strings.Contains(got, bad) {
					t.Errorf("Local() = %q, should not contain %q", got, bad)
				}
			}
		})
	}
}

func TestNewContext(t *testing.T) {
	now := time.Date(2024, time.January, 6, 16, 45, 0, 0, time.UTC)
	c := NewContext(now, []string{"t"}, nil, "")

	if c.Date != "Saturday, January 6, 2024" || c.Weekday != "Saturday" || c.Time != "16:45" || c.Hour != 16 {
		t.Errorf("unexpected context: %+v", c)
	}
	if !c.Weekend() || c.TimeOfDay() != "afternoon" {
		t.Errorf("Weekend()=%v TimeOfDay()=%q", c.Weekend(), c.TimeOfDay())
	}
}

func TestPrompt(t *testing.T) {
	p := Prompt(Context{Date: "Monday, January 1, 2024", Weekday: "Monday", Time: "09:00", Tasks: []string{"a", "b"}})

	for _, want := range []string{"Weather: Unknown", "Current tasks: a; b", "Current goals: None", "Reply with only the suggestion"} {
		if !strings.Contains(p, want) {
			t.Errorf("prompt missing %q:\n%s", want, p)
		}
	}
}

func fakeOpenAI(t *testing.T, status int, content string) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var calls atomic.Int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if !strings.HasSuffix(r.URL.Path, "/chat/completions") {
			http.NotFound(w, r)
			return
		}

		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["max_tokens"] != float64(200) {
			t.Errorf("max_tokens = %v", body["max_tokens"])
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if status != http.StatusOK {
			_, _ = w.Write([]byte(`{"error":{"message":"boom","type":"server_error"}}`))
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":      "cmpl-1",
			"object":  "chat.completion",
			"created": 1700000000,
			"model":   "gpt-4o-mini",
			"choices": []map[string]any{{
				"index":         0,
				"finish_reason": "stop",
				"message":       map[string]any{"role": "assistant", "content": content},
			}},
		})
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func TestGenerator(t *testing.T) {
	c := Context{Weekday: "Monday", Hour: 9, Tasks: []string{"write report"}}

	tests := []struct {
		name       string
		status     int
		content    string
		key        string
		wantSource Source
		wantText   string
		wantCalls  int32
	}{
		{"model reply", http.StatusOK, "  Start with the report.  ", "sk-test", SourceOpenAI, "Start with the report.", 1},
		{"empty reply falls back", http.StatusOK, "   ", "sk-test", SourceLocal, Local(c), 1},
		{"server error falls back", http.StatusInternalServerError, "", "sk-test", SourceLocal, Local(c), 1},
		{"no key stays local", http.StatusOK, "unused", "", SourceLocal, Local(c), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, calls := fakeOpenAI(t, tt.status, tt.content)
			g := NewGenerator(Options{APIKey: tt.key, BaseURL: srv.URL + "/v1/"})

			got := g.Suggest(context.Background(), c)
			if got.Source != tt.wantSource || got.Text != tt.wantText {
				t.Errorf("Suggest() = %+v, want %s %q", got, tt.wantSource, tt.wantText)
			}
			if calls.Load() != tt.wantCalls {
				t.Errorf("calls = %d, want %d", calls.Load(), tt.wantCalls)
			}
		})
	}
}

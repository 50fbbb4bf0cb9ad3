package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/meadbax/hub/internal/suggest"
)

// SuggestRequest is the body of POST /suggest. Calendar fields left empty
// are filled from the server clock.
type SuggestRequest struct {
	Date    string   `json:"date"`
	Weekday string   `json:"weekday"`
	Time    string   `json:"time"`
	Hour    *int     `json:"hour"`
	Tasks   []string `json:"tasks"`
	Goals   []string `json:"goals"`
	Weather string   `json:"weather"`
}

// SuggestHandler serves the daily suggestion
type SuggestHandler struct {
	generator *suggest.Generator
	now       func() time.Time
}

// NewSuggestHandler creates a new SuggestHandler
func NewSuggestHandler(generator *suggest.Generator, now func() time.Time) *SuggestHandler {
	if now == nil {
		now = time.Now
	}
	return &SuggestHandler{generator: generator, now: now}
}

// Suggest handles POST /suggest
func (h *SuggestHandler) Suggest(c *gin.Context) {
	var req SuggestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	sc := suggest.NewContext(h.now(), req.Tasks, req.Goals, req.Weather)
	if req.Date != "" {
		sc.Date = req.Date
	}
	if req.Weekday != "" {
		sc.Weekday = req.Weekday
	}
	if req.Time != "" {
		sc.Time = req.Time
	}
	if req.Hour != nil && *req.Hour >= 0 && *req.Hour < 24 {
		sc.Hour = *req.Hour
	}

	c.JSON(http.StatusOK, h.generator.Suggest(c.Request.Context(), sc))
}

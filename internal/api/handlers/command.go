package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/meadbax/hub/internal/command"
)

// CommandRequest is the body of POST /command
type CommandRequest struct {
	Text string `json:"text"`

	// Now overrides the server clock, RFC 3339. The browser sends its own
	// local time so dates resolve in the user's zone.
	Now string `json:"now,omitempty"`
}

// CommandHandler runs the interpreter without storing anything; the browser
// keeps the result.
type CommandHandler struct {
	now func() time.Time
}

// NewCommandHandler creates a new CommandHandler
func NewCommandHandler(now func() time.Time) *CommandHandler {
	if now == nil {
		now = time.Now
	}
	return &CommandHandler{now: now}
}

// Interpret handles POST /command
func (h *CommandHandler) Interpret(c *gin.Context) {
	var req CommandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text is required"})
		return
	}

	now := h.now()
	if req.Now != "" {
		t, err := time.Parse(time.RFC3339, req.Now)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "now must be RFC 3339"})
			return
		}
		now = t
	}

	c.JSON(http.StatusOK, command.Interpret(req.Text, now))
}

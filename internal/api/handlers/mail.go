package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/meadbax/hub/internal/email"
	"github.com/meadbax/hub/internal/log"
	"github.com/meadbax/hub/internal/oauth"
)

// mailCacheControl lets the browser reuse a mail response briefly. It is
// private because the body belongs to the cookie holder.
const mailCacheControl = "private, max-age=60"

// MailHandler proxies inbox reads for the holder of the refresh-token cookie
type MailHandler struct {
	provider email.Provider
}

// NewMailHandler creates a new MailHandler
func NewMailHandler(provider email.Provider) *MailHandler {
	return &MailHandler{provider: provider}
}

// Inbox handles GET /gmail/inbox
func (h *MailHandler) Inbox(c *gin.Context) {
	emails, err := h.provider.ListInbox(c.Request.Context(), oauth.RefreshToken(c.Request))
	if err != nil {
		mailError(c, err, "Failed to fetch inbox")
		return
	}
	if emails == nil {
		emails = []email.Summary{}
	}

	c.Header("Cache-Control", mailCacheControl)
	c.JSON(http.StatusOK, gin.H{"emails": emails})
}

// Message handles GET /gmail/message/:id
func (h *MailHandler) Message(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing message id"})
		return
	}

	detail, err := h.provider.GetMessage(c.Request.Context(), oauth.RefreshToken(c.Request), id)
	if err != nil {
		mailError(c, err, "Failed to fetch message")
		return
	}

	c.Header("Cache-Control", mailCacheControl)
	c.JSON(http.StatusOK, detail)
}

// mailError maps provider errors onto responses. Only the upstream error
// text reaches the client, never tokens.
func mailError(c *gin.Context, err error, msg string) {
	switch {
	case err == email.ErrNotConnected:
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not connected", "code": "NOT_CONNECTED"})
	case errors.Is(err, email.ErrNotConnected):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token", "code": "NOT_CONNECTED"})
	case errors.Is(err, email.ErrNotConfigured):
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Gmail not configured"})
	case errors.Is(err, email.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Message not found"})
	default:
		log.Error(msg, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": msg, "message": err.Error()})
	}
}

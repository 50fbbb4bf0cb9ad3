// Package middleware holds the gin middleware shared by every route.
package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/meadbax/hub/internal/log"
)

// RequestLogger logs one line per request through the app logger. Only the
// path is logged; query strings may carry authorization codes.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		kv := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start).String(),
		}
		switch status := c.Writer.Status(); {
		case status >= http.StatusInternalServerError:
			log.Warn("request", kv...)
		default:
			log.Debug("request", kv...)
		}
	}
}

// Methods is every method a route answers, either with its handler or with 405
var Methods = []string{
	http.MethodGet,
	http.MethodHead,
	http.MethodPost,
	http.MethodPut,
	http.MethodPatch,
	http.MethodDelete,
	http.MethodOptions,
}

// MethodNotAllowed answers 405 with the Allow header set to allowed
func MethodNotAllowed(allowed ...string) gin.HandlerFunc {
	header := strings.Join(allowed, ", ")
	return func(c *gin.Context) {
		c.Header("Allow", header)
		c.AbortWithStatusJSON(http.StatusMethodNotAllowed, gin.H{"error": "Method not allowed"})
	}
}

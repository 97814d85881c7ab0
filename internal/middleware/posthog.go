package middleware

import (
	"net/http"
	"strings"

	"github.com/SscSPs/expense_tracker/internal/utils"
	"github.com/gin-gonic/gin"
)

// pathsToSkip contains paths that should not be tracked by PostHog
var pathsToSkip = map[string]bool{
	"/health": true,
}

// ledgerEvents names the routes product analytics cares about.
var ledgerEvents = map[string]string{
	"POST /transactions/":   "transaction_created",
	"PUT /transactions/:id": "transaction_updated",
	"GET /statement/":       "statement_viewed",
	"GET /statement/pdf":    "statement_exported",
	"GET /charts/":          "charts_viewed",
}

// filterParams are the query parameters that narrow a statement or chart.
var filterParams = []string{"month", "startDate", "endDate", "description"}

// PosthogMiddleware creates a Gin middleware handler that tracks successful
// API calls with PostHog. Events are keyed by the token subject, or by
// client IP when auth is off.
func PosthogMiddleware(posthogClient *utils.PosthogClientWrapper) gin.HandlerFunc {
	return func(c *gin.Context) {
		if posthogClient == nil || !posthogClient.IsInitialized() || pathsToSkip[c.Request.URL.Path] {
			c.Next()
			return
		}

		c.Next()

		if len(c.Errors) > 0 || c.Writer.Status() >= http.StatusBadRequest {
			return
		}

		props := map[string]any{
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"status_code": c.Writer.Status(),
		}
		var filters []string
		for _, key := range filterParams {
			if c.Query(key) != "" {
				filters = append(filters, key)
			}
		}
		if len(filters) > 0 {
			props["filters"] = filters
		}

		posthogClient.Enqueue(distinctID(c), eventName(c.Request.Method, c.FullPath()), props)
	}
}

// eventName maps a route to its analytics event, e.g. "GET /balance/" ->
// "get_balance".
func eventName(method, fullPath string) string {
	if name, ok := ledgerEvents[method+" "+fullPath]; ok {
		return name
	}
	path := strings.ReplaceAll(strings.Trim(fullPath, "/"), "/", "_")
	if path == "" {
		path = "root"
	}
	return strings.ToLower(method) + "_" + path
}

func distinctID(c *gin.Context) string {
	if subject, ok := GetSubjectFromContext(c); ok {
		return subject
	}
	return c.ClientIP()
}

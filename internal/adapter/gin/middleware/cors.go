package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"user-management-api/pkg/logger"
)

var (
	corsAllowMethods  = strings.Join([]string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions}, ", ")
	corsAllowHeaders  = strings.Join([]string{"Content-Type", logger.RequestIDHeader}, ", ")
	corsExposeHeaders = strings.Join([]string{"Location", logger.RequestIDHeader}, ", ")
)

// CORS lets the Client UI call the API from the configured origins.
// Requests without an Origin header, or whose Origin is the server's own
// scheme://host, pass through untouched. A cross-origin request from outside
// the list is rejected with 403; "*" allows any origin.
func CORS(allowOrigins []string) gin.HandlerFunc {
	anyOrigin := false
	allowed := make(map[string]struct{}, len(allowOrigins))
	for _, o := range allowOrigins {
		if o == "*" {
			anyOrigin = true
		}
		allowed[o] = struct{}{}
	}

	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin == "" || origin == requestOrigin(c.Request) {
			c.Next()
			return
		}

		c.Writer.Header().Add("Vary", "Origin")

		switch _, ok := allowed[origin]; {
		case anyOrigin:
			c.Header("Access-Control-Allow-Origin", "*")
		case ok:
			c.Header("Access-Control-Allow-Origin", origin)
		default:
			c.AbortWithStatus(http.StatusForbidden)
			return
		}

		c.Header("Access-Control-Allow-Methods", corsAllowMethods)
		c.Header("Access-Control-Allow-Headers", corsAllowHeaders)
		c.Header("Access-Control-Expose-Headers", corsExposeHeaders)

		if c.Request.Method == http.MethodOptions {
			c.Header("Access-Control-Max-Age", "600")
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// requestOrigin is the origin the request was addressed to. A TLS-terminating
// proxy is honoured through X-Forwarded-Proto.
func requestOrigin(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = strings.ToLower(strings.TrimSpace(strings.Split(proto, ",")[0]))
	}
	return scheme + "://" + r.Host
}

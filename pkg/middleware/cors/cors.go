package cors

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const allowedHeaders = "Authorization, Content-Type, X-Requested-With, X-Request-ID"
const allowedMethods = "GET, POST, PUT, PATCH, DELETE, OPTIONS"

// New returns a CORS middleware restricted to the configured origins. An
// empty list, or a "*" entry, allows any origin. Uploads and document
// downloads go through the same API origin, so no extra exposed headers are
// needed beyond Content-Disposition.
func New(origins []string) gin.HandlerFunc {
	allowAny := len(origins) == 0
	allowed := make(map[string]bool, len(origins))
	for _, o := range origins {
		o = strings.TrimRight(strings.TrimSpace(o), "/")
		if o == "*" {
			allowAny = true
			continue
		}
		allowed[o] = true
	}

	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Add("Vary", "Origin")

		origin := c.GetHeader("Origin")
		switch {
		case origin == "" && allowAny:
			h.Set("Access-Control-Allow-Origin", "*")
		case origin != "" && (allowAny || allowed[strings.TrimRight(origin, "/")]):
			h.Set("Access-Control-Allow-Origin", origin)
			h.Set("Access-Control-Allow-Credentials", "true")
		}

		h.Set("Access-Control-Allow-Headers", allowedHeaders)
		h.Set("Access-Control-Allow-Methods", allowedMethods)
		h.Set("Access-Control-Expose-Headers", "Content-Disposition")
		h.Set("Access-Control-Max-Age", "600")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

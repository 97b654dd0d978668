package middleware

import (
	"bytes"
	"io"

	"github.com/gin-gonic/gin"

	"teamfeedback-backend/utilities"
)

// RequestDumpMiddleware logs every request at debug level. The body is
// restored so handlers can still bind it.
func RequestDumpMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		var bodyBytes []byte
		if c.Request.Body != nil {
			bodyBytes, _ = io.ReadAll(c.Request.Body)
		}
		c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))

		utilities.Debug(
			"[Request]\n"+
				"\tMethod: %s\n"+
				"\tURL: %s\n"+
				"\tHeaders: %v\n"+
				"\tParams: %v\n"+
				"\tBody: %s",
			c.Request.Method,
			c.Request.URL.String(),
			redactHeaders(c.Request.Header),
			c.Params,
			string(bodyBytes),
		)

		c.Next()
	}
}

func redactHeaders(h map[string][]string) map[string][]string {
	out := make(map[string][]string, len(h))
	for k, v := range h {
		if k == "Authorization" || k == "Cookie" {
			out[k] = []string{"[redacted]"}
			continue
		}
		out[k] = v
	}
	return out
}

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	customerrors "github.com/axellelanca/qrlinks/internal/errors"
)

const ownerKey = "owner"

// Authenticator resolves the principal of a request.
type Authenticator interface {
	Authenticate(r *http.Request) (string, error)
}

// RequestLogger logs one line per request with its status and latency.
func RequestLogger(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		duration := time.Since(start)
		status := c.Writer.Status()

		var msg string
		switch {
		case status >= 500:
			msg = "server error"
		case status >= 400:
			msg = "client error"
		default:
			msg = "request completed"
		}

		entry := log.Info().
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", status).
			Dur("duration_ms", duration).
			Int("bytes", c.Writer.Size()).
			Str("ip", c.ClientIP())

		if duration > 100*time.Millisecond {
			entry = entry.Bool("slow", true)
		}
		if status >= 500 {
			entry = entry.Str("error_type", "server_error")
		} else if status >= 400 {
			entry = entry.Str("error_type", "client_error")
		}
		entry.Msg(msg)
	}
}

// RequireOwner rejects requests without a resolved principal and stores the owner in the context.
func RequireOwner(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		owner, err := auth.Authenticate(c.Request)
		if err != nil {
			if !errors.Is(err, customerrors.ErrUnauthenticated) {
				err = customerrors.ErrUnauthenticated
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		c.Set(ownerKey, owner)
		c.Next()
	}
}

func ownerFrom(c *gin.Context) string {
	return c.GetString(ownerKey)
}

package common

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/apex/log"
	"github.com/apex/log/handlers/json"
	"github.com/apex/log/handlers/text"
	"github.com/gin-gonic/gin"
)

// SetupLogging installs the apex/log handler for format ("text" or "json")
// writing to w, at the given level.
func SetupLogging(w io.Writer, level, format string) error {
	lvl, err := log.ParseLevel(strings.ToLower(level))
	if err != nil {
		return fmt.Errorf("log level: %w", err)
	}

	switch strings.ToLower(format) {
	case "json":
		log.SetHandler(json.New(w))
	case "text", "":
		log.SetHandler(text.New(w))
	default:
		return fmt.Errorf("unknown log format %q", format)
	}
	log.SetLevel(lvl)
	return nil
}

// MustSetupLogging is SetupLogging on stderr, exiting on bad settings.
func MustSetupLogging(level, format string) {
	if err := SetupLogging(os.Stderr, level, format); err != nil {
		log.WithError(err).Fatal("Failed to configure logging")
	}
}

// RequestLogger logs every request served by gin.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		entry := log.WithFields(log.Fields{
			"method":   c.Request.Method,
			"path":     c.Request.URL.Path,
			"status":   c.Writer.Status(),
			"duration": time.Since(start).String(),
			"client":   c.ClientIP(),
		})
		switch {
		case c.Writer.Status() >= 500:
			entry.Error("request failed")
		case c.Writer.Status() >= 400:
			entry.Warn("request rejected")
		default:
			entry.Info("request served")
		}
	}
}

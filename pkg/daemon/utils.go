package daemon

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ginLogger routes gin request logs through logrus instead of gin's
// default writer.
func ginLogger(logger logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		start := time.Now()
		c.Next()

		latency := time.Since(start).Milliseconds()
		status := c.Writer.Status()
		size := c.Writer.Size()
		if size < 0 {
			size = 0
		}

		entry := logger.WithFields(logrus.Fields{
			"status":  status,
			"latency": latency,
			"method":  c.Request.Method,
			"path":    path,
			"size":    size,
		})

		switch {
		case len(c.Errors) > 0:
			entry.Error(c.Errors.ByType(gin.ErrorTypePrivate).String())
		case status >= http.StatusInternalServerError:
			entry.Errorf("%s %s %d (%dms)", c.Request.Method, path, status, latency)
		case status >= http.StatusBadRequest:
			entry.Warnf("%s %s %d (%dms)", c.Request.Method, path, status, latency)
		default:
			entry.Debugf("%s %s %d (%dms)", c.Request.Method, path, status, latency)
		}
	}
}

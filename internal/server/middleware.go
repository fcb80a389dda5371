package server

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"mediadesk/internal/api"
	"mediadesk/internal/logging"
	"mediadesk/internal/services"
)

// RequestIDHeader carries the correlation identifier in both directions.
const RequestIDHeader = "X-Request-ID"

func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(RequestIDHeader))
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}
		c.Header(RequestIDHeader, id)
		c.Request = c.Request.WithContext(services.WithRequestID(c.Request.Context(), id))
		c.Next()
	}
}

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		attrs := []logging.Attr{
			logging.String("method", c.Request.Method),
			logging.String("path", c.Request.URL.Path),
			logging.Int("status", status),
			logging.Duration("elapsed", time.Since(start)),
		}
		if kind := c.GetString(errorKindKey); kind != "" {
			attrs = append(attrs, logging.String("error_kind", kind))
		}
		reqLogger := logging.WithContext(c.Request.Context(), logger)
		if status >= http.StatusBadRequest {
			reqLogger.Warn("request failed", logging.Args(attrs...)...)
			return
		}
		reqLogger.Info("request completed", logging.Args(attrs...)...)
	}
}

func (s *Server) handlePanic(c *gin.Context, recovered any) {
	logging.WithContext(c.Request.Context(), s.logger).Error("handler panic", logging.Any("panic", recovered))
	c.AbortWithStatusJSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal error", Kind: "internal"})
}

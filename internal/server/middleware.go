package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"logoserver/internal/logging"
)

// RequestIDHeader はリクエストIDを返すレスポンスヘッダー
const RequestIDHeader = "X-Request-ID"

const requestIDKey = "request_id"

// requestID は各リクエストにUUIDを割り当てる
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := uuid.NewString()
		c.Set(requestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// accessLog はリクエストごとに1行のINFOログを出す
func accessLog(logger logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		logger.Infof("%s %s %d (%s) request_id=%s",
			c.Request.Method,
			c.Request.URL.Path,
			c.Writer.Status(),
			time.Since(start),
			c.GetString(requestIDKey),
		)
	}
}

// recovery はハンドラのパニックを500に変換し、プロセスを落とさない
func recovery(logger logging.Logger) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, err any) {
		logger.Errorf("panic recovered: %v request_id=%s", err, c.GetString(requestIDKey))
		c.AbortWithStatus(http.StatusInternalServerError)
	})
}

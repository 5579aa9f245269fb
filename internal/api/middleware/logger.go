package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	applogger "rotation-status/backend/pkg/logger"
)

// Logger 请求日志中间件
// 需挂在 RequestID 之后：请求级 logger 带上 request_id 后放入 Request.Context，供业务层取用
func Logger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		reqLogger := logger
		if rid, ok := c.Get(requestIDKey); ok {
			reqLogger = logger.With(zap.Any("request_id", rid))
		}
		c.Request = c.Request.WithContext(applogger.WithContext(c.Request.Context(), reqLogger))

		c.Next()

		statusCode := c.Writer.Status()
		fields := []zap.Field{
			zap.Int("status", statusCode),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("route", c.FullPath()),
			zap.String("ip", c.ClientIP()),
			zap.Duration("latency", time.Since(start)),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}

		switch {
		case statusCode >= 500:
			reqLogger.Error("请求处理失败", fields...)
		case statusCode >= 400:
			reqLogger.Warn("客户端错误", fields...)
		default:
			reqLogger.Info("请求完成", fields...)
		}
	}
}

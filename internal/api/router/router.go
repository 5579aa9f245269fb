package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"rotation-status/backend/config"
	"rotation-status/backend/internal/api/handler"
	"rotation-status/backend/internal/api/middleware"
	"rotation-status/backend/pkg/jwt"
	"rotation-status/backend/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
// jwtMgr、rdb、db 均可为 nil：对应的令牌校验、限流、数据库健康检查将被跳过
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, db *gorm.DB, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(cfg.Server.MaxBodyBytes))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		if db != nil {
			if sqlDB, err := db.DB(); err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "database": "unreachable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// nil *redis.Client 不能直接装进接口，否则限流中间件无法识别为未启用
	var limiter middleware.RateLimiter
	if rdb != nil {
		limiter = rdb
	}

	// 仅在开启 require_token 时对查询接口校验令牌
	var tokenMgr *jwt.Manager
	if cfg.Auth.RequireToken {
		tokenMgr = jwtMgr
	}

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		v1.POST("/validate",
			middleware.RateLimit(limiter, cfg.Auth.RateLimit, cfg.Auth.RateLimitWindow),
			h.Auth.ValidatePIN)

		status := v1.Group("")
		status.Use(middleware.PINAuth(tokenMgr))
		{
			status.GET("/schedule-status/:date", h.ScheduleStatus.GetStatus)
			status.GET("/schedule-status/:date/export", h.Export.ExportStatus)
			status.GET("/schedule-status/:date/ics", h.Export.ExportCalendar)
			status.GET("/residents/:date", h.ScheduleStatus.GetResidents)
		}
	}

	return r
}

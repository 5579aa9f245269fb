package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"rotation-status/backend/pkg/jwt"
	"rotation-status/backend/pkg/response"
)

// PINAuth 访问令牌中间件
// 令牌由 POST /validate 在 PIN 校验通过后签发；jwtMgr 为 nil 时不做校验
func PINAuth(jwtMgr *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if jwtMgr == nil {
			c.Next()
			return
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, 10002, "缺少认证头")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(c, 10002, "认证头格式无效")
			c.Abort()
			return
		}

		claims, err := jwtMgr.ParseToken(parts[1])
		if err != nil {
			response.Unauthorized(c, 10002, "Token 无效或已过期")
			c.Abort()
			return
		}

		c.Set("token_jti", claims.ID)
		c.Next()
	}
}

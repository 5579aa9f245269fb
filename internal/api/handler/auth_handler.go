package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"rotation-status/backend/internal/dto"
	"rotation-status/backend/internal/service"
	"rotation-status/backend/pkg/response"
)

// AuthHandler PIN 校验 HTTP 处理器
type AuthHandler struct {
	authSvc service.AuthService
}

// NewAuthHandler 创建 AuthHandler
func NewAuthHandler(authSvc service.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

// ValidatePIN 校验 PIN
// POST /api/v1/validate
func (h *AuthHandler) ValidatePIN(c *gin.Context) {
	var req dto.ValidatePINRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, codeInvalidParam, "参数校验失败")
		return
	}

	result, err := h.authSvc.ValidatePIN(c.Request.Context(), req.PIN)
	if err != nil {
		if errors.Is(err, service.ErrInvalidPIN) {
			response.Unauthorized(c, 11001, "PIN 错误")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

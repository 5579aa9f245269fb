package handler

import (
	"github.com/gin-gonic/gin"

	"rotation-status/backend/internal/dto"
	"rotation-status/backend/internal/service"
	"rotation-status/backend/pkg/response"
)

// ScheduleStatusHandler 排班状态模块 HTTP 处理器
type ScheduleStatusHandler struct {
	statusSvc service.ScheduleStatusService
}

// NewScheduleStatusHandler 创建 ScheduleStatusHandler
func NewScheduleStatusHandler(statusSvc service.ScheduleStatusService) *ScheduleStatusHandler {
	return &ScheduleStatusHandler{statusSvc: statusSvc}
}

// GetStatus 查询某日所有成员的 off 状态
// GET /api/v1/schedule-status/:date
func (h *ScheduleStatusHandler) GetStatus(c *gin.Context) {
	status, err := h.statusSvc.GetStatus(c.Request.Context(), c.Param("date"))
	if err != nil {
		writeError(c, err)
		return
	}

	response.OK(c, dto.ScheduleStatusEnvelope{Status: status})
}

// GetResidents 简化版查询
// GET /api/v1/residents/:date
func (h *ScheduleStatusHandler) GetResidents(c *gin.Context) {
	residents, err := h.statusSvc.GetResidents(c.Request.Context(), c.Param("date"))
	if err != nil {
		writeError(c, err)
		return
	}

	response.OK(c, residents)
}

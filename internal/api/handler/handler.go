package handler

import "rotation-status/backend/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth           *AuthHandler
	ScheduleStatus *ScheduleStatusHandler
	Export         *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:           NewAuthHandler(svc.Auth),
		ScheduleStatus: NewScheduleStatusHandler(svc.ScheduleStatus),
		Export:         NewExportHandler(svc.Export),
	}
}

package service

import (
	"go.uber.org/zap"

	"rotation-status/backend/config"
	"rotation-status/backend/internal/repository"
	"rotation-status/backend/pkg/jwt"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Auth           AuthService
	ScheduleStatus ScheduleStatusService
	Export         ExportService
}

// NewService 创建 Service 聚合
// jwtMgr 可为 nil
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	logger *zap.Logger,
) (*Service, error) {
	statusSvc, err := NewScheduleStatusService(&cfg.Schedule, repo, logger)
	if err != nil {
		return nil, err
	}
	return &Service{
		Auth:           NewAuthService(&cfg.Auth, jwtMgr, logger),
		ScheduleStatus: statusSvc,
		Export:         NewExportService(statusSvc, &cfg.Schedule, logger),
	}, nil
}

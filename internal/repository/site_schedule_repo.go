package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"rotation-status/backend/internal/model"
)

// SiteScheduleRepository 第二院区排班数据访问接口（按日期主键查询）
type SiteScheduleRepository interface {
	ListByDate(ctx context.Context, date time.Time) ([]model.SiteScheduleDay, error)
}

type siteScheduleRepo struct {
	db *gorm.DB
}

// NewSiteScheduleRepo 创建 SiteScheduleRepository 实例
func NewSiteScheduleRepo(db *gorm.DB) SiteScheduleRepository {
	return &siteScheduleRepo{db: db}
}

func (r *siteScheduleRepo) ListByDate(ctx context.Context, date time.Time) ([]model.SiteScheduleDay, error) {
	var rows []model.SiteScheduleDay
	err := r.db.WithContext(ctx).
		Where("schedule_date = ?", date.Format(dateLayout)).
		Find(&rows).Error
	return rows, err
}

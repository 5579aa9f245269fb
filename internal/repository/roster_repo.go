package repository

import (
	"context"

	"gorm.io/gorm"

	"rotation-status/backend/internal/model"
)

// RosterRepository 名单数据访问接口
type RosterRepository interface {
	ListByBlock(ctx context.Context, blockName, role string) ([]model.RosterEntry, error)
}

type rosterRepo struct {
	db *gorm.DB
}

// NewRosterRepo 创建 RosterRepository 实例
func NewRosterRepo(db *gorm.DB) RosterRepository {
	return &rosterRepo{db: db}
}

func (r *rosterRepo) ListByBlock(ctx context.Context, blockName, role string) ([]model.RosterEntry, error) {
	var entries []model.RosterEntry
	query := r.db.WithContext(ctx).Where("block_name = ?", blockName)
	if role != "" {
		query = query.Where("role = ?", role)
	}
	err := query.Order("name ASC").Find(&entries).Error
	return entries, err
}

package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"rotation-status/backend/internal/model"
)

// BlockRepository 轮转 block 数据访问接口
type BlockRepository interface {
	// ListCovering 返回 [start_date, end_date] 包含 date 的 block；role 为空时不过滤角色
	ListCovering(ctx context.Context, date time.Time, role string) ([]model.Block, error)
}

type blockRepo struct {
	db *gorm.DB
}

// NewBlockRepo 创建 BlockRepository 实例
func NewBlockRepo(db *gorm.DB) BlockRepository {
	return &blockRepo{db: db}
}

func (r *blockRepo) ListCovering(ctx context.Context, date time.Time, role string) ([]model.Block, error) {
	var blocks []model.Block
	d := date.Format(dateLayout)
	query := r.db.WithContext(ctx).
		Where("start_date <= ? AND end_date >= ?", d, d)
	if role != "" {
		query = query.Where("role = ?", role)
	}
	err := query.Order("start_date ASC").Find(&blocks).Error
	return blocks, err
}

package repository

import (
	"context"
	"strconv"

	"gorm.io/gorm"

	"rotation-status/backend/internal/model"
)

// OffQuery 轮转模板查询条件
type OffQuery struct {
	DayNumber  int
	BlockTypes []string // 当前 block 类型与 Any
	Statuses   []string // OFF / MAYBE 哨兵值
	Role       string   // 为空时不过滤角色
}

// RotationTemplateRepository 轮转模板数据访问接口
type RotationTemplateRepository interface {
	ListForDay(ctx context.Context, q OffQuery) ([]model.RotationTemplate, error)
}

type rotationTemplateRepo struct {
	db *gorm.DB
}

// NewRotationTemplateRepo 创建 RotationTemplateRepository 实例
func NewRotationTemplateRepo(db *gorm.DB) RotationTemplateRepository {
	return &rotationTemplateRepo{db: db}
}

func (r *rotationTemplateRepo) ListForDay(ctx context.Context, q OffQuery) ([]model.RotationTemplate, error) {
	var rows []model.RotationTemplate
	query := r.db.WithContext(ctx).
		Where("block_type IN ?", q.BlockTypes).
		Where("days ->> ? IN ?", strconv.Itoa(q.DayNumber), q.Statuses)
	if q.Role != "" {
		query = query.Where("role = ?", q.Role)
	}
	err := query.Order("service ASC, position ASC").Find(&rows).Error
	return rows, err
}

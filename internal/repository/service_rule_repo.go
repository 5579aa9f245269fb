package repository

import (
	"context"

	"gorm.io/gorm"

	"rotation-status/backend/internal/model"
)

// ServiceRuleRepository 匹配规则模板数据访问接口
type ServiceRuleRepository interface {
	ListByServices(ctx context.Context, services []string) ([]model.ServiceRule, error)
}

type serviceRuleRepo struct {
	db *gorm.DB
}

// NewServiceRuleRepo 创建 ServiceRuleRepository 实例
func NewServiceRuleRepo(db *gorm.DB) ServiceRuleRepository {
	return &serviceRuleRepo{db: db}
}

func (r *serviceRuleRepo) ListByServices(ctx context.Context, services []string) ([]model.ServiceRule, error) {
	if len(services) == 0 {
		return nil, nil
	}
	var rules []model.ServiceRule
	err := r.db.WithContext(ctx).
		Where("service IN ?", services).
		Order("service ASC, category ASC").
		Find(&rules).Error
	return rules, err
}

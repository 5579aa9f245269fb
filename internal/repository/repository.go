package repository

import "gorm.io/gorm"

// dateLayout 以字符串传入 date 列参数，避免 timestamptz 与会话时区的隐式转换
const dateLayout = "2006-01-02"

// Repository 所有 Repository 的聚合入口
type Repository struct {
	Block            BlockRepository
	RotationTemplate RotationTemplateRepository
	SiteSchedule     SiteScheduleRepository
	ServiceRule      ServiceRuleRepository
	Roster           RosterRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		Block:            NewBlockRepo(db),
		RotationTemplate: NewRotationTemplateRepo(db),
		SiteSchedule:     NewSiteScheduleRepo(db),
		ServiceRule:      NewServiceRuleRepo(db),
		Roster:           NewRosterRepo(db),
	}
}

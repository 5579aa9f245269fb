package model

// ServiceRule 匹配规则模板表，对应 service_rules
// Expression 中的占位符在请求时替换为当日 position
type ServiceRule struct {
	RuleID     string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"rule_id"`
	Service    string `gorm:"type:varchar(100);not null"                     json:"service"`
	Category   string `gorm:"type:varchar(20);not null"                      json:"category"` // off | maybe_off
	Expression string `gorm:"type:varchar(500);not null"                     json:"expression"`
	BaseModel
}

// TableName 指定表名
func (ServiceRule) TableName() string { return "service_rules" }

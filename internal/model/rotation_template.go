package model

// RotationTemplate 轮转模板表，对应 rotation_templates
// 一行描述某 service 的某 position 在 A/B/Any 类 block 中每天的状态
type RotationTemplate struct {
	TemplateID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"template_id"`
	Service    string    `gorm:"type:varchar(100);not null"                     json:"service"`
	Position   string    `gorm:"type:varchar(50);not null"                      json:"position"`
	BlockType  string    `gorm:"type:varchar(10);not null"                      json:"block_type"` // A | B | Any
	Role       string    `gorm:"type:varchar(20);not null"                      json:"role"`
	Days       DayStatus `gorm:"type:jsonb;not null"                            json:"days"`
	BaseModel
}

// TableName 指定表名
func (RotationTemplate) TableName() string { return "rotation_templates" }

package model

import "time"

// Block 轮转周期表，对应 blocks
// 同一日期每个角色最多一个有效 block
type Block struct {
	BlockID   string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"block_id"`
	BlockName string    `gorm:"type:varchar(20);not null"                      json:"block_name"` // 如 9A / 9B
	Role      string    `gorm:"type:varchar(20);not null"                      json:"role"`
	StartDate time.Time `gorm:"type:date;not null"                             json:"start_date"`
	EndDate   time.Time `gorm:"type:date;not null"                             json:"end_date"`
	BaseModel
}

// TableName 指定表名
func (Block) TableName() string { return "blocks" }

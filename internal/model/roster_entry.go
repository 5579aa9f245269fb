package model

// RosterEntry 名单表，对应 roster_entries，记录成员在某 block 的轮转分配（如 "CCU - A"）
type RosterEntry struct {
	EntryID    string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"entry_id"`
	BlockName  string `gorm:"type:varchar(20);not null"                      json:"block_name"`
	Role       string `gorm:"type:varchar(20);not null"                      json:"role"`
	Name       string `gorm:"type:varchar(100);not null"                     json:"name"`
	Assignment string `gorm:"type:varchar(200);not null"                     json:"assignment"`
	BaseModel
}

// TableName 指定表名
func (RosterEntry) TableName() string { return "roster_entries" }

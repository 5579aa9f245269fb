package model

import "time"

// SiteScheduleDay 第二院区排班表，对应 site_schedules，按日期直接索引
type SiteScheduleDay struct {
	ScheduleDate time.Time `gorm:"type:date;primaryKey" json:"schedule_date"`
	Slots        SlotList  `gorm:"type:jsonb;not null"  json:"slots"`
	BaseModel
}

// TableName 指定表名
func (SiteScheduleDay) TableName() string { return "site_schedules" }

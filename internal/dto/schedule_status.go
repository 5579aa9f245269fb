package dto

import "rotation-status/backend/internal/schedule"

// ── 排班状态模块 DTO ──

// BlockStatus 某角色当日所在 block
type BlockStatus struct {
	BlockName string `json:"blockName"`
	IsTypeA   bool   `json:"isTypeA"`
	DayNumber int    `json:"dayNumber"`
}

// ScheduleStatusResponse 按角色合并后的分类结果，每名成员恰好出现在一个分类中
type ScheduleStatusResponse struct {
	FetchedDate string                 `json:"fetchedDate"`
	MinDate     string                 `json:"minDate"` // 首个可查询日期
	MaxDate     string                 `json:"maxDate"`
	Blocks      map[string]BlockStatus `json:"blocks"`
	DayNumber   int                    `json:"dayNumber"` // 角色顺序中第一个 block 的 dayNumber

	Off      []schedule.StaffAssignment `json:"off"`
	MaybeOff []schedule.StaffAssignment `json:"maybe_off"`
	NotSure  []schedule.StaffAssignment `json:"not_sure"`
}

// ScheduleStatusEnvelope GET /schedule-status/:date 的 data 字段
type ScheduleStatusEnvelope struct {
	Status *ScheduleStatusResponse `json:"schedule-status"`
}

// ResidentsResponse 简化版结果：只填充命中的分类，同一成员可出现在多个分类
type ResidentsResponse struct {
	FetchedDate string `json:"fetchedDate"`
	MinDate     string `json:"minDate"`
	MaxDate     string `json:"maxDate"`
	BlockName   string `json:"blockName"`
	DayNumber   int    `json:"dayNumber"`

	Off      []schedule.StaffAssignment `json:"off"`
	MaybeOff []schedule.StaffAssignment `json:"maybe_off"`
}

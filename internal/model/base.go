package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// ── PostgreSQL JSONB 自定义类型 ──

// DayStatus 对应 rotation_templates.days（JSONB），键为 block 内第几天（"1".."14"），值为状态哨兵
type DayStatus map[string]string

// Scan 将 JSONB 文本解析为 map
func (d *DayStatus) Scan(src interface{}) error {
	b, err := jsonBytes(src, "DayStatus")
	if err != nil || b == nil {
		*d = nil
		return err
	}
	m := DayStatus{}
	if err := json.Unmarshal(b, &m); err != nil {
		return fmt.Errorf("DayStatus.Scan: %w", err)
	}
	*d = m
	return nil
}

// Value 将 map 序列化为 JSONB
func (d DayStatus) Value() (driver.Value, error) {
	if d == nil {
		return nil, nil
	}
	b, err := json.Marshal(d)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// SiteSlot 第二院区一个岗位列
type SiteSlot struct {
	Position string `json:"position"`
	Value    string `json:"value"`
}

// SlotList 对应 site_schedules.slots（JSONB 数组），保持岗位列顺序
type SlotList []SiteSlot

// Scan 将 JSONB 数组解析为 []SiteSlot
func (s *SlotList) Scan(src interface{}) error {
	b, err := jsonBytes(src, "SlotList")
	if err != nil || b == nil {
		*s = nil
		return err
	}
	var list SlotList
	if err := json.Unmarshal(b, &list); err != nil {
		return fmt.Errorf("SlotList.Scan: %w", err)
	}
	*s = list
	return nil
}

// Value 将 []SiteSlot 序列化为 JSONB
func (s SlotList) Value() (driver.Value, error) {
	if s == nil {
		return nil, nil
	}
	b, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func jsonBytes(src interface{}, typ string) ([]byte, error) {
	switch v := src.(type) {
	case nil:
		return nil, nil
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	default:
		return nil, fmt.Errorf("%s.Scan: unsupported type %T", typ, src)
	}
}

// BaseModel 通用审计字段
type BaseModel struct {
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

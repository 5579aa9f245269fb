package schedule

import (
	"strings"
	"time"

	"rotation-status/backend/config"
	"rotation-status/backend/internal/model"
	pkgerrors "rotation-status/backend/pkg/errors"
)

// BlockInfo 某日期在所属轮转 block 内的派生视图，每次请求重新计算
type BlockInfo struct {
	BlockName string
	Role      string
	IsTypeA   bool
	DayNumber int
}

// BlockType 返回 "A" 或 "B"，与轮转模板中的 block_type 对应
func (b BlockInfo) BlockType() string {
	if b.IsTypeA {
		return "A"
	}
	return "B"
}

// IsTypeA block 名称包含 "A" 即为 A 类；名称为空时为 false
func IsTypeA(blockName string) bool {
	return strings.Contains(blockName, "A")
}

// NewBlockInfo 计算 date 在 block 中的第几天（首日为 1）
func NewBlockInfo(block model.Block, date time.Time) BlockInfo {
	return BlockInfo{
		BlockName: block.BlockName,
		Role:      block.Role,
		IsTypeA:   IsTypeA(block.BlockName),
		DayNumber: DaysBetween(block.StartDate, date) + 1,
	}
}

// DaysBetween 按日历日计算 to - from 的天数，忽略时分秒与时区偏移
func DaysBetween(from, to time.Time) int {
	f := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	t := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(t.Sub(f).Hours() / 24)
}

// ── 日期区间 ──

// DateRange 可查询日期区间 (Min, Max]，以及输入/展示格式
type DateRange struct {
	InputFormat   string
	DisplayFormat string
	Min           time.Time
	Max           time.Time
}

// NewDateRange 由配置构造 DateRange
func NewDateRange(cfg *config.ScheduleConfig) (DateRange, error) {
	w, err := cfg.Window()
	if err != nil {
		return DateRange{}, err
	}
	return DateRange{
		InputFormat:   cfg.InputFormat,
		DisplayFormat: cfg.DisplayFormat,
		Min:           w.Min,
		Max:           w.Max,
	}, nil
}

// FirstDate 首个可查询日期（min_date 的后一天）
func (r DateRange) FirstDate() time.Time {
	return r.Min.AddDate(0, 0, 1)
}

// Display 按展示格式输出日期
func (r DateRange) Display(t time.Time) string {
	return t.Format(r.DisplayFormat)
}

// Parse 解析并校验请求日期
func (r DateRange) Parse(raw string) (time.Time, error) {
	date, err := time.Parse(r.InputFormat, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, pkgerrors.InvalidInput("invalid date %q, expected YYYY-MM-DD", raw)
	}
	if !date.After(r.Min) || date.After(r.Max) {
		return time.Time{}, pkgerrors.InvalidInput("date must be between %s and %s",
			r.Display(r.FirstDate()), r.Display(r.Max))
	}
	return date, nil
}

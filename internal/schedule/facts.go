package schedule

import (
	"strconv"

	"rotation-status/backend/config"
	"rotation-status/backend/internal/model"
)

// Positions service → position
type Positions map[string]string

// FactSet 某天处于 off / maybe-off 状态的轮转科室
type FactSet struct {
	Off      Positions
	MaybeOff Positions
}

// NewFactSet 创建空 FactSet
func NewFactSet() FactSet {
	return FactSet{Off: Positions{}, MaybeOff: Positions{}}
}

// For 按分类键取对应的事实集合
func (f FactSet) For(category string, cats config.CategoryConfig) Positions {
	switch category {
	case cats.Off:
		return f.Off
	case cats.MaybeOff:
		return f.MaybeOff
	}
	return nil
}

// MergeSite 第二院区事实并入 OFF，同名 service 直接覆盖
func (f FactSet) MergeSite(site Positions) {
	for service, position := range site {
		f.Off[service] = position
	}
}

// FactsFromTemplates 按 days[dayNumber] 的哨兵值把轮转模板归入 OFF / MAYBE_OFF
// 同一 service 出现多行时后者覆盖前者
func FactsFromTemplates(rows []model.RotationTemplate, dayNumber int, s config.SentinelConfig) FactSet {
	facts := NewFactSet()
	key := strconv.Itoa(dayNumber)
	for _, row := range rows {
		switch row.Days[key] {
		case s.Off:
			facts.Off[row.Service] = row.Position
		case s.MaybeOff:
			facts.MaybeOff[row.Service] = row.Position
		}
	}
	return facts
}

// SiteFacts 第二院区按日期记录每个岗位列的状态，值为 OFF 的岗位归到固定 service 名下
// 多个岗位命中时只保留最后一个
func SiteFacts(rows []model.SiteScheduleDay, offSentinel, serviceName string) Positions {
	facts := Positions{}
	for _, row := range rows {
		for _, slot := range row.Slots {
			if slot.Value == offSentinel {
				facts[serviceName] = slot.Position
			}
		}
	}
	return facts
}

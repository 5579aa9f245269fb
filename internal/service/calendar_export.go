package service

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/google/uuid"
	"go.uber.org/zap"

	applogger "rotation-status/backend/pkg/logger"
)

// ── iCalendar 导出 ──────────────────────────────────────────
//
// 每名 off / maybe_off 成员生成一个全天 VEVENT：
//   - SUMMARY: "<姓名> (<分类>)"
//   - CATEGORIES: 分类键
//   - DESCRIPTION: 角色与轮转分配
//   - UID 由日期、分类、角色、姓名派生，同一天重复导出 UID 不变
// ─────────────────────────────────────────────────────────────

const calendarProductID = "-//rotation-status//schedule-status//EN"

func (s *exportService) ExportCalendar(ctx context.Context, rawDate string) (*bytes.Buffer, string, error) {
	status, err := s.statusSvc.GetStatus(ctx, rawDate)
	if err != nil {
		return nil, "", err
	}

	log := applogger.FromContext(ctx, s.logger)
	day, err := time.Parse(s.displayFormat, status.FetchedDate)
	if err != nil {
		log.Error("解析查询日期失败", zap.String("fetched_date", status.FetchedDate), zap.Error(err))
		return nil, "", ErrCalendarGenerateFail
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(calendarProductID)

	stamp := time.Now().UTC()
	for _, group := range s.groups(status) {
		if group.category == s.categories.NotSure {
			continue
		}
		for _, staff := range group.list {
			key := strings.Join([]string{day.Format("20060102"), group.category, staff.Role, staff.Name}, "|")
			event := cal.AddEvent(uuid.NewSHA1(uuid.NameSpaceURL, []byte(key)).String())
			event.SetDtStampTime(stamp)
			event.SetAllDayStartAt(day)
			event.SetAllDayEndAt(day.AddDate(0, 0, 1))
			event.SetSummary(fmt.Sprintf("%s (%s)", staff.Name, group.category))
			event.SetProperty(ics.ComponentPropertyCategories, group.category)
			event.SetDescription(fmt.Sprintf("%s: %s", staff.Role, staff.Assignment))
		}
	}

	buf := bytes.NewBufferString(cal.Serialize())
	filename := fmt.Sprintf("schedule-status-%s.ics", strings.TrimSpace(rawDate))
	return buf, filename, nil
}

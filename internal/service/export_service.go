package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"rotation-status/backend/config"
	"rotation-status/backend/internal/dto"
	"rotation-status/backend/internal/schedule"
	applogger "rotation-status/backend/pkg/logger"
)

// ── 导出模块业务错误 ──

var (
	ErrExportGenerateFail   = errors.New("生成 Excel 文件失败")
	ErrCalendarGenerateFail = errors.New("生成日历文件失败")
)

// ExportService 导出业务接口
//
// 设计说明：
//   - 导出内容与 GET /schedule-status/:date 完全一致，复用 ScheduleStatusService
//   - 以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response
//   - Excel 格式：单 Sheet，标题行 + 各角色 block 信息 + 按分类顺序排列的成员明细
//   - iCalendar 格式：off / maybe_off 成员各一个全天 VEVENT，not_sure 不导出
type ExportService interface {
	ExportStatus(ctx context.Context, rawDate string) (*bytes.Buffer, string, error)
	ExportCalendar(ctx context.Context, rawDate string) (*bytes.Buffer, string, error)
}

type exportService struct {
	statusSvc     ScheduleStatusService
	categories    config.CategoryConfig
	displayFormat string
	logger        *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(statusSvc ScheduleStatusService, cfg *config.ScheduleConfig, logger *zap.Logger) ExportService {
	return &exportService{
		statusSvc:     statusSvc,
		categories:    cfg.Categories,
		displayFormat: cfg.DisplayFormat,
		logger:        logger,
	}
}

const exportSheet = "Status"

func (s *exportService) ExportStatus(ctx context.Context, rawDate string) (*bytes.Buffer, string, error) {
	// 1. 计算当日分类
	status, err := s.statusSvc.GetStatus(ctx, rawDate)
	if err != nil {
		return nil, "", err
	}

	// 2. 生成 Excel
	log := applogger.FromContext(ctx, s.logger)
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		log.Error("创建 Sheet 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	_ = f.SetColWidth(exportSheet, "A", "A", 14)
	_ = f.SetColWidth(exportSheet, "B", "B", 24)
	_ = f.SetColWidth(exportSheet, "C", "C", 12)
	_ = f.SetColWidth(exportSheet, "D", "D", 32)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	// 标题行
	_ = f.SetCellValue(exportSheet, "A1", fmt.Sprintf("Schedule status %s", status.FetchedDate))
	_ = f.MergeCell(exportSheet, "A1", "D1")
	_ = f.SetCellStyle(exportSheet, "A1", "A1", headerStyle)

	// block 信息（按角色名排序保证输出稳定）
	row := 2
	for _, role := range sortedRoles(status.Blocks) {
		b := status.Blocks[role]
		_ = f.SetCellValue(exportSheet, cell("A", row), role)
		_ = f.SetCellValue(exportSheet, cell("B", row), fmt.Sprintf("Block %s, day %d", b.BlockName, b.DayNumber))
		row++
	}

	// 表头
	row++
	headers := []string{"Category", "Name", "Role", "Assignment"}
	for i, h := range headers {
		_ = f.SetCellValue(exportSheet, cell(colName(i), row), h)
	}
	_ = f.SetCellStyle(exportSheet, cell("A", row), cell("D", row), headerStyle)
	row++

	// 明细
	for _, group := range s.groups(status) {
		for _, staff := range group.list {
			_ = f.SetCellValue(exportSheet, cell("A", row), group.category)
			_ = f.SetCellValue(exportSheet, cell("B", row), staff.Name)
			_ = f.SetCellValue(exportSheet, cell("C", row), staff.Role)
			_ = f.SetCellValue(exportSheet, cell("D", row), staff.Assignment)
			row++
		}
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		log.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("schedule-status-%s.xlsx", strings.TrimSpace(rawDate))
	return buf, filename, nil
}

type exportGroup struct {
	category string
	list     []schedule.StaffAssignment
}

func (s *exportService) groups(status *dto.ScheduleStatusResponse) []exportGroup {
	return []exportGroup{
		{category: s.categories.Off, list: status.Off},
		{category: s.categories.MaybeOff, list: status.MaybeOff},
		{category: s.categories.NotSure, list: status.NotSure},
	}
}

func sortedRoles(blocks map[string]dto.BlockStatus) []string {
	roles := make([]string, 0, len(blocks))
	for role := range blocks {
		roles = append(roles, role)
	}
	sort.Strings(roles)
	return roles
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

package service

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"rotation-status/backend/config"
	"rotation-status/backend/internal/dto"
	"rotation-status/backend/internal/model"
	"rotation-status/backend/internal/repository"
	"rotation-status/backend/internal/schedule"
	pkgerrors "rotation-status/backend/pkg/errors"
	applogger "rotation-status/backend/pkg/logger"
)

// ScheduleStatusService 排班状态查询业务接口
//
// 设计说明：
//   - 每次请求独立计算，不缓存任何中间结果
//   - 任一数据源查询失败即整体失败，不返回部分结果
//   - 多角色时按 roles.order 依次处理，最后合并排序
type ScheduleStatusService interface {
	// GetStatus 按角色判定所有成员的 off / maybe_off / not_sure 状态
	GetStatus(ctx context.Context, rawDate string) (*dto.ScheduleStatusResponse, error)
	// GetResidents 简化版：仅高年资角色，只返回命中的分类
	GetResidents(ctx context.Context, rawDate string) (*dto.ResidentsResponse, error)
}

type scheduleStatusService struct {
	repo   *repository.Repository
	cfg    config.ScheduleConfig
	dates  schedule.DateRange
	rules  *schedule.RuleBuilder
	logger *zap.Logger
}

// NewScheduleStatusService 创建 ScheduleStatusService 实例
func NewScheduleStatusService(cfg *config.ScheduleConfig, repo *repository.Repository, logger *zap.Logger) (ScheduleStatusService, error) {
	dates, err := schedule.NewDateRange(cfg)
	if err != nil {
		return nil, err
	}
	compiler := schedule.NewCompiler(cfg.Matcher, cfg.Placeholder)
	return &scheduleStatusService{
		repo:   repo,
		cfg:    *cfg,
		dates:  dates,
		rules:  schedule.NewRuleBuilder(compiler, cfg.Categories),
		logger: logger,
	}, nil
}

// ────────────────────── GetStatus ──────────────────────

func (s *scheduleStatusService) GetStatus(ctx context.Context, rawDate string) (*dto.ScheduleStatusResponse, error) {
	date, err := s.dates.Parse(rawDate)
	if err != nil {
		return nil, err
	}

	infos, err := s.resolveBlocks(ctx, date)
	if err != nil {
		return nil, err
	}

	results := make([]schedule.Result, 0, len(infos))
	blocks := make(map[string]dto.BlockStatus, len(infos))
	for _, info := range infos {
		result, err := s.classifyRole(ctx, date, info)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
		blocks[info.Role] = dto.BlockStatus{
			BlockName: info.BlockName,
			IsTypeA:   info.IsTypeA,
			DayNumber: info.DayNumber,
		}
	}

	merged := schedule.MergeResults(results...)
	cats := s.cfg.Categories
	return &dto.ScheduleStatusResponse{
		FetchedDate: s.dates.Display(date),
		MinDate:     s.dates.Display(s.dates.FirstDate()),
		MaxDate:     s.dates.Display(s.dates.Max),
		Blocks:      blocks,
		DayNumber:   infos[0].DayNumber,
		Off:         merged.Bucket(cats.Off),
		MaybeOff:    merged.Bucket(cats.MaybeOff),
		NotSure:     merged.Bucket(cats.NotSure),
	}, nil
}

// resolveBlocks 查出覆盖该日期的 block，每个角色取一个，按 roles.order 排序
func (s *scheduleStatusService) resolveBlocks(ctx context.Context, date time.Time) ([]schedule.BlockInfo, error) {
	blocks, err := s.repo.Block.ListCovering(ctx, date, "")
	if err != nil {
		s.log(ctx).Error("查询 block 失败", zap.Time("date", date), zap.Error(err))
		return nil, pkgerrors.Unexpected(err)
	}

	byRole := make(map[string]model.Block, len(blocks))
	for _, b := range blocks {
		if _, exists := byRole[b.Role]; exists {
			s.log(ctx).Warn("同一角色存在多个覆盖该日期的 block",
				zap.String("role", b.Role), zap.String("block", b.BlockName))
			continue
		}
		byRole[b.Role] = b
	}

	infos := make([]schedule.BlockInfo, 0, len(byRole))
	for _, role := range s.cfg.Roles.Order {
		if b, ok := byRole[role]; ok {
			infos = append(infos, schedule.NewBlockInfo(b, date))
			delete(byRole, role)
		}
	}
	// 剩余的 block 角色不在 roles.order 中
	for role, b := range byRole {
		s.log(ctx).Warn("block 角色未在 roles.order 中配置，已忽略",
			zap.String("role", role), zap.String("block", b.BlockName))
	}
	if len(infos) == 0 {
		return nil, pkgerrors.NotFound("no schedule block for that date")
	}
	return infos, nil
}

// classifyRole 单个角色的完整流程：名单与 off 事实并发获取 → 构建规则 → 分类
func (s *scheduleStatusService) classifyRole(ctx context.Context, date time.Time, info schedule.BlockInfo) (schedule.Result, error) {
	var (
		roster []schedule.StaffAssignment
		facts  schedule.FactSet
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		roster, err = s.fetchRoster(gctx, info)
		return err
	})
	g.Go(func() error {
		var err error
		facts, err = s.fetchOffFacts(gctx, date, info)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	idx, err := s.loadTemplates(ctx, serviceNames(facts.Off, facts.MaybeOff))
	if err != nil {
		return nil, err
	}

	rules, err := s.rules.Build(facts, idx)
	if err != nil {
		s.log(ctx).Error("构建匹配规则失败", zap.String("role", info.Role), zap.Error(err))
		return nil, pkgerrors.Unexpected(err)
	}
	s.warnMissing(ctx, info, rules)

	return schedule.ClassifyExhaustive(rules, roster, s.cfg.Categories.NotSure), nil
}

// ────────────────────── GetResidents ──────────────────────

func (s *scheduleStatusService) GetResidents(ctx context.Context, rawDate string) (*dto.ResidentsResponse, error) {
	date, err := s.dates.Parse(rawDate)
	if err != nil {
		return nil, err
	}

	role := s.cfg.Roles.Senior
	blocks, err := s.repo.Block.ListCovering(ctx, date, role)
	if err != nil {
		s.log(ctx).Error("查询 block 失败", zap.Time("date", date), zap.Error(err))
		return nil, pkgerrors.Unexpected(err)
	}
	if len(blocks) == 0 {
		return nil, pkgerrors.NotFound("no schedule block for that date")
	}
	if len(blocks) > 1 {
		s.log(ctx).Warn("存在多个覆盖该日期的 block，使用最早开始的一个", zap.Int("count", len(blocks)))
	}
	info := schedule.NewBlockInfo(blocks[0], date)

	var (
		roster []schedule.StaffAssignment
		facts  schedule.FactSet
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		roster, err = s.fetchRoster(gctx, info)
		return err
	})
	g.Go(func() error {
		var err error
		facts, err = s.fetchOffFacts(gctx, date, info)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	services := append(serviceNames(facts.Off), s.cfg.GenericRuleService)
	idx, err := s.loadTemplates(ctx, services)
	if err != nil {
		return nil, err
	}

	rules, err := s.rules.BuildSimple(facts.Off, idx, s.cfg.GenericRuleService)
	if err != nil {
		s.log(ctx).Error("构建匹配规则失败", zap.String("role", role), zap.Error(err))
		return nil, pkgerrors.Unexpected(err)
	}
	s.warnMissing(ctx, info, rules)

	result := schedule.ClassifyEach(rules, roster)
	cats := s.cfg.Categories
	return &dto.ResidentsResponse{
		FetchedDate: s.dates.Display(date),
		MinDate:     s.dates.Display(s.dates.FirstDate()),
		MaxDate:     s.dates.Display(s.dates.Max),
		BlockName:   info.BlockName,
		DayNumber:   info.DayNumber,
		Off:         result.Bucket(cats.Off),
		MaybeOff:    result.Bucket(cats.MaybeOff),
	}, nil
}

// ────────────────────── 数据获取 ──────────────────────

// fetchOffFacts 主数据源与第二院区并发查询，二者都完成后合并
func (s *scheduleStatusService) fetchOffFacts(ctx context.Context, date time.Time, info schedule.BlockInfo) (schedule.FactSet, error) {
	var (
		rows []model.RotationTemplate
		site schedule.Positions
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		rows, err = s.repo.RotationTemplate.ListForDay(gctx, repository.OffQuery{
			DayNumber:  info.DayNumber,
			BlockTypes: []string{s.cfg.Sentinels.AnyBlock, info.BlockType()},
			Statuses:   []string{s.cfg.Sentinels.Off, s.cfg.Sentinels.MaybeOff},
			Role:       info.Role,
		})
		if err != nil {
			s.log(ctx).Error("查询轮转模板失败",
				zap.String("role", info.Role), zap.Int("day", info.DayNumber), zap.Error(err))
			return pkgerrors.Unexpected(err)
		}
		return nil
	})
	if s.cfg.UsesSecondarySite(info.Role) {
		g.Go(func() error {
			var err error
			site, err = s.fetchSiteFacts(gctx, date)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return schedule.FactSet{}, err
	}

	facts := schedule.FactsFromTemplates(rows, info.DayNumber, s.cfg.Sentinels)
	facts.MergeSite(site)
	return facts, nil
}

// fetchSiteFacts 第二院区按日期直接查询；当天无记录视为 NotFound
func (s *scheduleStatusService) fetchSiteFacts(ctx context.Context, date time.Time) (schedule.Positions, error) {
	rows, err := s.repo.SiteSchedule.ListByDate(ctx, date)
	if err != nil {
		s.log(ctx).Error("查询第二院区排班失败", zap.Time("date", date), zap.Error(err))
		return nil, pkgerrors.Unexpected(err)
	}
	if len(rows) == 0 {
		return nil, pkgerrors.NotFound("no %s schedule found for given date", s.cfg.SiteName)
	}
	return schedule.SiteFacts(rows, s.cfg.Sentinels.Off, s.cfg.SiteServiceName), nil
}

func (s *scheduleStatusService) fetchRoster(ctx context.Context, info schedule.BlockInfo) ([]schedule.StaffAssignment, error) {
	entries, err := s.repo.Roster.ListByBlock(ctx, info.BlockName, info.Role)
	if err != nil {
		s.log(ctx).Error("查询名单失败", zap.String("block", info.BlockName), zap.Error(err))
		return nil, pkgerrors.Unexpected(err)
	}

	roster := make([]schedule.StaffAssignment, 0, len(entries))
	for _, e := range entries {
		roster = append(roster, schedule.StaffAssignment{
			Name:       e.Name,
			Role:       e.Role,
			Assignment: e.Assignment,
		})
	}
	return roster, nil
}

func (s *scheduleStatusService) loadTemplates(ctx context.Context, services []string) (schedule.TemplateIndex, error) {
	rules, err := s.repo.ServiceRule.ListByServices(ctx, services)
	if err != nil {
		s.log(ctx).Error("查询规则模板失败", zap.Strings("services", services), zap.Error(err))
		return nil, pkgerrors.Unexpected(err)
	}
	return schedule.IndexTemplates(rules), nil
}

func (s *scheduleStatusService) warnMissing(ctx context.Context, info schedule.BlockInfo, rules schedule.RuleSet) {
	if len(rules.Missing) > 0 {
		s.log(ctx).Warn("部分 service 缺少规则模板，已跳过",
			zap.String("role", info.Role), zap.Strings("services", rules.Missing))
	}
}

// log 优先使用请求级 logger（带 request_id）
func (s *scheduleStatusService) log(ctx context.Context) *zap.Logger {
	return applogger.FromContext(ctx, s.logger)
}

// serviceNames 汇总去重后的 service 名称
func serviceNames(sets ...schedule.Positions) []string {
	seen := make(map[string]bool)
	var names []string
	for _, set := range sets {
		for name := range set {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	return names
}

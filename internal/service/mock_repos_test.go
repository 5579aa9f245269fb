package service

import (
	"context"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"

	"rotation-status/backend/config"
	"rotation-status/backend/internal/model"
	"rotation-status/backend/internal/repository"
)

// ── Mock BlockRepository ──

type mockBlockRepo struct {
	blocks []model.Block
	err    error
}

func (m *mockBlockRepo) ListCovering(_ context.Context, date time.Time, role string) ([]model.Block, error) {
	if m.err != nil {
		return nil, m.err
	}
	var result []model.Block
	for _, b := range m.blocks {
		if date.Before(b.StartDate) || date.After(b.EndDate) {
			continue
		}
		if role != "" && b.Role != role {
			continue
		}
		result = append(result, b)
	}
	return result, nil
}

// ── Mock RotationTemplateRepository ──

type mockRotationTemplateRepo struct {
	mu      sync.Mutex
	rows    []model.RotationTemplate
	err     error
	queries []repository.OffQuery
}

func (m *mockRotationTemplateRepo) ListForDay(_ context.Context, q repository.OffQuery) ([]model.RotationTemplate, error) {
	m.mu.Lock()
	m.queries = append(m.queries, q)
	m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}

	types := make(map[string]bool, len(q.BlockTypes))
	for _, t := range q.BlockTypes {
		types[t] = true
	}
	statuses := make(map[string]bool, len(q.Statuses))
	for _, s := range q.Statuses {
		statuses[s] = true
	}

	var result []model.RotationTemplate
	for _, r := range m.rows {
		if !types[r.BlockType] || (q.Role != "" && r.Role != q.Role) {
			continue
		}
		if statuses[r.Days[strconv.Itoa(q.DayNumber)]] {
			result = append(result, r)
		}
	}
	return result, nil
}

// ── Mock SiteScheduleRepository ──

type mockSiteScheduleRepo struct {
	days  map[string]model.SiteScheduleDay
	err   error
	calls int
	mu    sync.Mutex
}

func (m *mockSiteScheduleRepo) ListByDate(_ context.Context, date time.Time) ([]model.SiteScheduleDay, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	if d, ok := m.days[date.Format("2006-01-02")]; ok {
		return []model.SiteScheduleDay{d}, nil
	}
	return nil, nil
}

// ── Mock ServiceRuleRepository ──

type mockServiceRuleRepo struct {
	rules []model.ServiceRule
	err   error
}

func (m *mockServiceRuleRepo) ListByServices(_ context.Context, services []string) ([]model.ServiceRule, error) {
	if m.err != nil {
		return nil, m.err
	}
	wanted := make(map[string]bool, len(services))
	for _, s := range services {
		wanted[s] = true
	}
	var result []model.ServiceRule
	for _, r := range m.rules {
		if wanted[r.Service] {
			result = append(result, r)
		}
	}
	return result, nil
}

// ── Mock RosterRepository ──

type mockRosterRepo struct {
	entries []model.RosterEntry
	err     error
}

func (m *mockRosterRepo) ListByBlock(_ context.Context, blockName, role string) ([]model.RosterEntry, error) {
	if m.err != nil {
		return nil, m.err
	}
	var result []model.RosterEntry
	for _, e := range m.entries {
		if e.BlockName == blockName && (role == "" || e.Role == role) {
			result = append(result, e)
		}
	}
	return result, nil
}

// ── 测试夹具 ──

type mockRepos struct {
	block    *mockBlockRepo
	template *mockRotationTemplateRepo
	site     *mockSiteScheduleRepo
	rule     *mockServiceRuleRepo
	roster   *mockRosterRepo
}

func (m *mockRepos) repository() *repository.Repository {
	return &repository.Repository{
		Block:            m.block,
		RotationTemplate: m.template,
		SiteSchedule:     m.site,
		ServiceRule:      m.rule,
		Roster:           m.roster,
	}
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func testScheduleConfig() config.ScheduleConfig {
	return config.ScheduleConfig{
		InputFormat:   "2006-01-02",
		DisplayFormat: "01/02/2006",
		MinDate:       "2023-03-31",
		MaxDate:       "2024-06-30",
		Sentinels:     config.SentinelConfig{Off: "OFF", MaybeOff: "MAYBE", AnyBlock: "Any"},
		Roles: config.RoleConfig{
			Junior: "intern",
			Senior: "resident",
			Order:  []string{"intern", "resident"},
		},
		Categories: config.CategoryConfig{
			Off:      "off",
			MaybeOff: "maybe_off",
			NotSure:  "not_sure",
			Order:    []string{"off", "maybe_off"},
		},
		SecondarySiteRoles: []string{"resident"},
		SiteName:           "VA",
		SiteServiceName:    "VA ICU",
		Placeholder:        ":position",
		GenericRuleService: "*",
		Matcher:            "regexp",
	}
}

// newFixture 2023-04-06 ~ 2023-04-19：resident 在 9A，intern 在 9B
func newFixture() *mockRepos {
	return &mockRepos{
		block: &mockBlockRepo{blocks: []model.Block{
			{BlockName: "9A", Role: "resident", StartDate: day(2023, 4, 6), EndDate: day(2023, 4, 19)},
			{BlockName: "9B", Role: "intern", StartDate: day(2023, 4, 6), EndDate: day(2023, 4, 19)},
		}},
		template: &mockRotationTemplateRepo{rows: []model.RotationTemplate{
			{Service: "CCU", Position: "A", BlockType: "Any", Role: "resident", Days: model.DayStatus{"5": "OFF"}},
			{Service: "Wards", Position: "Red", BlockType: "B", Role: "intern", Days: model.DayStatus{"5": "MAYBE"}},
			{Service: "Wards", Position: "Blue", BlockType: "A", Role: "resident", Days: model.DayStatus{"5": "OFF"}},
		}},
		site: &mockSiteScheduleRepo{days: map[string]model.SiteScheduleDay{
			"2023-04-10": {ScheduleDate: day(2023, 4, 10), Slots: model.SlotList{
				{Position: "1", Value: "OFF"},
				{Position: "2", Value: "ON"},
			}},
		}},
		rule: &mockServiceRuleRepo{rules: []model.ServiceRule{
			{Service: "CCU", Category: "off", Expression: `CCU\s*-?\s*:position`},
			{Service: "Wards", Category: "off", Expression: "Wards :position"},
			{Service: "Wards", Category: "maybe_off", Expression: "Wards :position"},
			{Service: "VA ICU", Category: "off", Expression: "VA ICU :position"},
			{Service: "*", Category: "maybe_off", Expression: "research|elective"},
		}},
		roster: &mockRosterRepo{entries: []model.RosterEntry{
			{BlockName: "9A", Role: "resident", Name: "Alice", Assignment: "CCU - A"},
			{BlockName: "9A", Role: "resident", Name: "Bob", Assignment: "Janeway - B"},
			{BlockName: "9A", Role: "resident", Name: "Eve", Assignment: "VA ICU 1"},
			{BlockName: "9A", Role: "resident", Name: "Frank", Assignment: "Research"},
			{BlockName: "9B", Role: "intern", Name: "Carol", Assignment: "Wards Red"},
			{BlockName: "9B", Role: "intern", Name: "Dan", Assignment: "Wards Blue"},
		}},
	}
}

func newTestStatusService(repos *mockRepos) (ScheduleStatusService, error) {
	cfg := testScheduleConfig()
	return NewScheduleStatusService(&cfg, repos.repository(), zap.NewNop())
}

package schedule

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"rotation-status/backend/config"
	"rotation-status/backend/internal/model"
)

// Matcher 判断一条轮转分配字符串是否命中
type Matcher interface {
	Match(assignment string) bool
}

// Compiler 把规则模板与 position 编译为 Matcher
// 调用方只依赖该接口，底层匹配引擎可替换
type Compiler interface {
	Compile(template, position string) (Matcher, error)
}

// NewCompiler 按配置选择匹配引擎
func NewCompiler(kind, placeholder string) Compiler {
	if kind == "contains" {
		return ContainsCompiler{Placeholder: placeholder}
	}
	return RegexpCompiler{Placeholder: placeholder}
}

// ── regexp 引擎 ──

// RegexpCompiler 占位符替换为 position 原文后编译为大小写不敏感的正则
type RegexpCompiler struct {
	Placeholder string
}

type regexpMatcher struct{ re *regexp.Regexp }

func (m regexpMatcher) Match(s string) bool { return m.re.MatchString(s) }

func (c RegexpCompiler) Compile(template, position string) (Matcher, error) {
	expr := strings.ReplaceAll(template, c.Placeholder, position)
	re, err := regexp.Compile("(?i)" + expr)
	if err != nil {
		return nil, fmt.Errorf("编译规则 %q 失败: %w", expr, err)
	}
	return regexpMatcher{re: re}, nil
}

// ── contains 引擎 ──

// ContainsCompiler 替换占位符后做大小写不敏感的子串匹配，不解释任何正则语法
type ContainsCompiler struct {
	Placeholder string
}

type containsMatcher struct{ needle string }

func (m containsMatcher) Match(s string) bool {
	return strings.Contains(strings.ToLower(s), m.needle)
}

func (c ContainsCompiler) Compile(template, position string) (Matcher, error) {
	needle := strings.ToLower(strings.ReplaceAll(template, c.Placeholder, position))
	if needle == "" {
		return nil, fmt.Errorf("规则模板为空")
	}
	return containsMatcher{needle: needle}, nil
}

// AnyOf 任一 Matcher 命中即命中（同一分类下多个 service 的表达式取或）
type AnyOf []Matcher

func (a AnyOf) Match(s string) bool {
	for _, m := range a {
		if m.Match(s) {
			return true
		}
	}
	return false
}

// ── 模板索引 ──

type templateKey struct {
	service  string
	category string
}

// TemplateIndex (service, category) → 表达式模板
type TemplateIndex map[templateKey]string

// IndexTemplates 建立模板索引
func IndexTemplates(rules []model.ServiceRule) TemplateIndex {
	idx := make(TemplateIndex, len(rules))
	for _, r := range rules {
		idx[templateKey{service: r.Service, category: r.Category}] = r.Expression
	}
	return idx
}

// Lookup 查找模板
func (idx TemplateIndex) Lookup(service, category string) (string, bool) {
	tpl, ok := idx[templateKey{service: service, category: category}]
	return tpl, ok
}

// ── 规则构建 ──

// CategoryRule 一个分类及其合并后的 Matcher
type CategoryRule struct {
	Category string
	Matcher  Matcher
}

// RuleSet 有序规则集；顺序即分类器的覆盖顺序
type RuleSet struct {
	Rules []CategoryRule
	// Missing 缺少模板而被跳过的 service
	Missing []string
}

// Categories 返回规则集中的分类键（按顺序）
func (rs RuleSet) Categories() []string {
	keys := make([]string, 0, len(rs.Rules))
	for _, r := range rs.Rules {
		keys = append(keys, r.Category)
	}
	return keys
}

// RuleBuilder 把 off / maybe-off 事实转换为可匹配的规则
type RuleBuilder struct {
	compiler   Compiler
	categories config.CategoryConfig
}

// NewRuleBuilder 创建 RuleBuilder
func NewRuleBuilder(compiler Compiler, categories config.CategoryConfig) *RuleBuilder {
	return &RuleBuilder{compiler: compiler, categories: categories}
}

// Build 按 categories.order 为每个分类生成一条规则，无表达式的分类不出现在结果中
func (b *RuleBuilder) Build(facts FactSet, idx TemplateIndex) (RuleSet, error) {
	var rs RuleSet
	for _, category := range b.categories.Order {
		matcher, missing, err := b.compileCategory(facts.For(category, b.categories), category, idx)
		if err != nil {
			return RuleSet{}, err
		}
		rs.Missing = append(rs.Missing, missing...)
		if matcher != nil {
			rs.Rules = append(rs.Rules, CategoryRule{Category: category, Matcher: matcher})
		}
	}
	return rs, nil
}

// BuildSimple 简化版：OFF 来自各 service 的模板，MAYBE_OFF 只用一条通用兜底模板
func (b *RuleBuilder) BuildSimple(off Positions, idx TemplateIndex, genericService string) (RuleSet, error) {
	var rs RuleSet

	matcher, missing, err := b.compileCategory(off, b.categories.Off, idx)
	if err != nil {
		return RuleSet{}, err
	}
	rs.Missing = append(rs.Missing, missing...)
	if matcher != nil {
		rs.Rules = append(rs.Rules, CategoryRule{Category: b.categories.Off, Matcher: matcher})
	}

	tpl, ok := idx.Lookup(genericService, b.categories.MaybeOff)
	if !ok {
		rs.Missing = append(rs.Missing, genericService)
		return rs, nil
	}
	generic, err := b.compiler.Compile(tpl, "")
	if err != nil {
		return RuleSet{}, err
	}
	rs.Rules = append(rs.Rules, CategoryRule{Category: b.categories.MaybeOff, Matcher: generic})
	return rs, nil
}

func (b *RuleBuilder) compileCategory(positions Positions, category string, idx TemplateIndex) (Matcher, []string, error) {
	services := make([]string, 0, len(positions))
	for service := range positions {
		services = append(services, service)
	}
	sort.Strings(services)

	var (
		matchers AnyOf
		missing  []string
	)
	for _, service := range services {
		tpl, ok := idx.Lookup(service, category)
		if !ok {
			missing = append(missing, service)
			continue
		}
		m, err := b.compiler.Compile(tpl, positions[service])
		if err != nil {
			return nil, nil, err
		}
		matchers = append(matchers, m)
	}
	if len(matchers) == 0 {
		return nil, missing, nil
	}
	return matchers, missing, nil
}

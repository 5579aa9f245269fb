package schedule

import (
	"reflect"
	"testing"

	"rotation-status/backend/internal/model"
)

func TestRegexpCompiler_SubstitutesPosition(t *testing.T) {
	c := RegexpCompiler{Placeholder: ":position"}
	m, err := c.Compile("CCU :position", "A")
	if err != nil {
		t.Fatalf("编译失败: %v", err)
	}

	cases := map[string]bool{
		"CCU A":       true,
		"ccu a":       true,
		"Night CCU A": true,
		"CCU B":       false,
		"Wards":       false,
	}
	for s, want := range cases {
		if got := m.Match(s); got != want {
			t.Errorf("Match(%q) 期望 %v，实际: %v", s, want, got)
		}
	}
}

func TestRegexpCompiler_InvalidExpression(t *testing.T) {
	c := RegexpCompiler{Placeholder: ":position"}
	if _, err := c.Compile("CCU (:position", "A"); err == nil {
		t.Error("期望非法正则返回错误")
	}
}

func TestContainsCompiler(t *testing.T) {
	c := ContainsCompiler{Placeholder: ":position"}
	m, err := c.Compile("Wards :position", "Red (2)")
	if err != nil {
		t.Fatalf("编译失败: %v", err)
	}
	if !m.Match("wards red (2) nights") {
		t.Error("期望大小写不敏感的子串命中")
	}
	if m.Match("Wards Red 2") {
		t.Error("期望不按正则解释括号")
	}

	if _, err := c.Compile(":position", ""); err == nil {
		t.Error("期望空模板返回错误")
	}
}

func TestNewCompiler(t *testing.T) {
	if _, ok := NewCompiler("contains", ":p").(ContainsCompiler); !ok {
		t.Error("期望 contains 返回 ContainsCompiler")
	}
	if _, ok := NewCompiler("regexp", ":p").(RegexpCompiler); !ok {
		t.Error("期望 regexp 返回 RegexpCompiler")
	}
}

func testIndex() TemplateIndex {
	return IndexTemplates([]model.ServiceRule{
		{Service: "CCU", Category: "off", Expression: `CCU\s*-?\s*:position`},
		{Service: "CCU", Category: "maybe_off", Expression: `CCU\s*-?\s*:position`},
		{Service: "Wards", Category: "maybe_off", Expression: "Wards :position"},
		{Service: "*", Category: "maybe_off", Expression: "elective|research"},
	})
}

func TestRuleBuilder_Build_OrderAndDropEmpty(t *testing.T) {
	b := NewRuleBuilder(RegexpCompiler{Placeholder: ":position"}, testCategories)

	facts := NewFactSet()
	facts.Off["CCU"] = "A"
	rs, err := b.Build(facts, testIndex())
	if err != nil {
		t.Fatalf("Build 失败: %v", err)
	}
	if got := rs.Categories(); !reflect.DeepEqual(got, []string{"off"}) {
		t.Errorf("期望空分类被丢弃，实际: %v", got)
	}

	facts.MaybeOff["Wards"] = "Red"
	rs, err = b.Build(facts, testIndex())
	if err != nil {
		t.Fatalf("Build 失败: %v", err)
	}
	if got := rs.Categories(); !reflect.DeepEqual(got, []string{"off", "maybe_off"}) {
		t.Errorf("期望按配置顺序输出分类，实际: %v", got)
	}
}

func TestRuleBuilder_Build_MultipleServicesAreOred(t *testing.T) {
	b := NewRuleBuilder(RegexpCompiler{Placeholder: ":position"}, testCategories)

	facts := NewFactSet()
	facts.MaybeOff["CCU"] = "B"
	facts.MaybeOff["Wards"] = "Red"
	rs, err := b.Build(facts, testIndex())
	if err != nil {
		t.Fatalf("Build 失败: %v", err)
	}
	if len(rs.Rules) != 1 {
		t.Fatalf("期望 1 条规则，实际: %d", len(rs.Rules))
	}
	m := rs.Rules[0].Matcher
	if !m.Match("CCU - B") || !m.Match("Wards Red") {
		t.Error("期望任一 service 表达式命中即命中")
	}
	if m.Match("CCU - A") {
		t.Error("期望 position 不同时不命中")
	}
}

func TestRuleBuilder_Build_MissingTemplateSkipped(t *testing.T) {
	b := NewRuleBuilder(RegexpCompiler{Placeholder: ":position"}, testCategories)

	facts := NewFactSet()
	facts.Off["Clinic"] = "1"
	rs, err := b.Build(facts, testIndex())
	if err != nil {
		t.Fatalf("Build 失败: %v", err)
	}
	if len(rs.Rules) != 0 {
		t.Errorf("期望无规则，实际: %v", rs.Categories())
	}
	if !reflect.DeepEqual(rs.Missing, []string{"Clinic"}) {
		t.Errorf("期望记录缺失模板的 service，实际: %v", rs.Missing)
	}
}

func TestRuleBuilder_Build_EmptyFacts(t *testing.T) {
	b := NewRuleBuilder(RegexpCompiler{Placeholder: ":position"}, testCategories)

	rs, err := b.Build(NewFactSet(), testIndex())
	if err != nil {
		t.Fatalf("Build 失败: %v", err)
	}
	if len(rs.Rules) != 0 || len(rs.Missing) != 0 {
		t.Errorf("期望空规则集，实际: %+v", rs)
	}
}

func TestRuleBuilder_BuildSimple(t *testing.T) {
	b := NewRuleBuilder(RegexpCompiler{Placeholder: ":position"}, testCategories)

	rs, err := b.BuildSimple(Positions{"CCU": "A"}, testIndex(), "*")
	if err != nil {
		t.Fatalf("BuildSimple 失败: %v", err)
	}
	if got := rs.Categories(); !reflect.DeepEqual(got, []string{"off", "maybe_off"}) {
		t.Fatalf("分类不符: %v", got)
	}
	if !rs.Rules[1].Matcher.Match("Research block") {
		t.Error("期望通用 maybe 规则命中")
	}
}

func TestRuleBuilder_BuildSimple_NoGenericTemplate(t *testing.T) {
	b := NewRuleBuilder(RegexpCompiler{Placeholder: ":position"}, testCategories)

	rs, err := b.BuildSimple(Positions{"CCU": "A"}, testIndex(), "generic")
	if err != nil {
		t.Fatalf("BuildSimple 失败: %v", err)
	}
	if got := rs.Categories(); !reflect.DeepEqual(got, []string{"off"}) {
		t.Errorf("分类不符: %v", got)
	}
	if !reflect.DeepEqual(rs.Missing, []string{"generic"}) {
		t.Errorf("期望记录缺失的通用模板，实际: %v", rs.Missing)
	}
}

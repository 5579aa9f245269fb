package schedule

import "sort"

// StaffAssignment 名单中一名成员在当前 block 的轮转分配
type StaffAssignment struct {
	Name       string `json:"name"`
	Role       string `json:"role,omitempty"`
	Assignment string `json:"assignment"`
}

// Result 分类键 → 成员列表
type Result map[string][]StaffAssignment

// Bucket 取分类列表，不存在时返回空切片（序列化为 []）
func (r Result) Bucket(category string) []StaffAssignment {
	if list, ok := r[category]; ok && list != nil {
		return list
	}
	return []StaffAssignment{}
}

// ClassifyExhaustive 每名成员恰好落入一个分类：
// 依次测试所有规则，后命中的分类覆盖先命中的；都不命中则归入 notSure
func ClassifyExhaustive(rules RuleSet, roster []StaffAssignment, notSure string) Result {
	result := Result{notSure: {}}
	for _, r := range rules.Rules {
		result[r.Category] = []StaffAssignment{}
	}

	for _, staff := range roster {
		category := notSure
		for _, r := range rules.Rules {
			if r.Matcher.Match(staff.Assignment) {
				category = r.Category
			}
		}
		result[category] = append(result[category], staff)
	}

	for category := range result {
		SortByName(result[category])
	}
	return result
}

// ClassifyEach 每个分类独立扫描全部名单，同一成员可出现在多个分类中，无默认分类
func ClassifyEach(rules RuleSet, roster []StaffAssignment) Result {
	result := Result{}
	for _, r := range rules.Rules {
		matched := []StaffAssignment{}
		for _, staff := range roster {
			if r.Matcher.Match(staff.Assignment) {
				matched = append(matched, staff)
			}
		}
		SortByName(matched)
		result[r.Category] = matched
	}
	return result
}

// SortByName 按姓名升序（区分大小写）稳定排序
func SortByName(list []StaffAssignment) {
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].Name < list[j].Name
	})
}

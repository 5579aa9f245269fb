package schedule

// MergeResults 按传入顺序拼接各角色的分类结果，再对每个分类整体排序一次
func MergeResults(results ...Result) Result {
	merged := Result{}
	for _, r := range results {
		for category, list := range r {
			merged[category] = append(merged.Bucket(category), list...)
		}
	}
	for category := range merged {
		SortByName(merged[category])
	}
	return merged
}

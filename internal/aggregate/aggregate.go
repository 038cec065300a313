// Package aggregate 把单文件的行统计合并为按语言的汇总和总计。
//
// 合并是逐项加法，满足交换律和结合律，因此文件的处理顺序和分组方式不影响最终报告。
// 每个 worker 持有私有的 Partial，运行结束后由单个 goroutine 顺序折叠，不需要细粒度加锁。
package aggregate

import "tokount/internal/model"

// Merge 把一个文件的行统计计入语言累加器，文件数加一。
func Merge(current model.LanguageStats, delta model.LineCounts) model.LanguageStats {
	return model.LanguageStats{
		Files:   current.Files + 1,
		Blank:   current.Blank + delta.Blank,
		Comment: current.Comment + delta.Comment,
		Code:    current.Code + delta.Code,
	}
}

// Partial 是单个 worker 私有的按语言累加器，不能被并发写入。
type Partial map[string]model.LanguageStats

// Add 计入一个文件。
func (p Partial) Add(language string, delta model.LineCounts) {
	p[language] = Merge(p[language], delta)
}

// Combine 把 other 的所有累加器并入 p。
func (p Partial) Combine(other Partial) {
	for language, stats := range other {
		p[language] = p[language].Add(stats)
	}
}

// Policy 控制最终报告保留哪些语言。
type Policy struct {
	// KeepEmpty 为 true 时保留 code 为 0 的语言；默认丢弃。
	KeepEmpty bool
}

// Finalize 折叠所有 Partial 并生成报告。
// SUM 只对保留下来的语言求和，保证 SUM 等于报告中各语言之和。
func Finalize(partials []Partial, policy Policy) model.Report {
	merged := make(Partial)
	for _, partial := range partials {
		merged.Combine(partial)
	}

	report := model.Report{Languages: make(map[string]model.LanguageStats, len(merged))}
	for language, stats := range merged {
		if stats.Code == 0 && !policy.KeepEmpty {
			continue
		}
		report.Languages[language] = stats
		report.Sum = report.Sum.Add(stats)
	}
	return report
}

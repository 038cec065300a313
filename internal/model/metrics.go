// Package model 定义 tokount 的核心数据模型。
// 这些结构会被扫描器、聚合器、输出层和命令层共同使用。
package model

import "encoding/json"

// SumKey 是报告中汇总项使用的固定键名。
const SumKey = "SUM"

// LineCounts 表示单个文件的行分类结果。
//
// 约束：
// - 每个物理行只归入一个类别，Blank + Comment + Code 等于文件总行数
// - 同一行既有代码又有注释时计为 Code，不重复计数
type LineCounts struct {
	Blank   int64 `json:"blank"`
	Comment int64 `json:"comment"`
	Code    int64 `json:"code"`
}

// Lines 返回物理行总数。
func (c LineCounts) Lines() int64 {
	return c.Blank + c.Comment + c.Code
}

// Add 将另一个文件的统计值叠加到当前对象。
func (c *LineCounts) Add(other LineCounts) {
	c.Blank += other.Blank
	c.Comment += other.Comment
	c.Code += other.Code
}

// LanguageStats 表示某个语言的聚合结果。
// JSON 键名与对外输出约定保持一致。
type LanguageStats struct {
	Files   int64 `json:"nFiles" yaml:"nFiles"`
	Blank   int64 `json:"blank" yaml:"blank"`
	Comment int64 `json:"comment" yaml:"comment"`
	Code    int64 `json:"code" yaml:"code"`
}

// Add 按元素相加两个聚合值。
func (s LanguageStats) Add(other LanguageStats) LanguageStats {
	return LanguageStats{
		Files:   s.Files + other.Files,
		Blank:   s.Blank + other.Blank,
		Comment: s.Comment + other.Comment,
		Code:    s.Code + other.Code,
	}
}

// Lines 返回该语言的物理行总数。
func (s LanguageStats) Lines() int64 {
	return s.Blank + s.Comment + s.Code
}

// Report 是一次运行的最终统计结果。
// Sum 始终等于 Languages 中所有条目的逐项之和。
type Report struct {
	Languages map[string]LanguageStats
	Sum       LanguageStats
}

// Flatten 返回对外输出使用的扁平映射，包含 SUM 键。
func (r Report) Flatten() map[string]LanguageStats {
	flat := make(map[string]LanguageStats, len(r.Languages)+1)
	for name, stats := range r.Languages {
		flat[name] = stats
	}
	flat[SumKey] = r.Sum
	return flat
}

// MarshalJSON 输出 {"Go": {...}, "SUM": {...}} 形式的扁平对象。
func (r Report) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Flatten())
}

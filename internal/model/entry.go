package model

// FileEntry 描述遍历得到的一个候选文件。
// Language 由匹配器解析一次后不再改变，空字符串表示未识别。
type FileEntry struct {
	Path     string
	RelPath  string
	Size     int64
	Language string
}

// SkippedFile 记录单文件被跳过的原因。
// 跳过不会中断整体扫描，也不会影响任何计数。
type SkippedFile struct {
	Path    string `json:"path"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// ScanResult 是 scan 命令的完整结果模型。
// Report 面向输出层，Skipped 与 Bytes 供日志、表格和指标使用。
type ScanResult struct {
	Roots   []string      `json:"roots"`
	Report  Report        `json:"report"`
	Skipped []SkippedFile `json:"skipped"`
	Bytes   int64         `json:"bytes"`
}

// Package report 提供 tokount 的输出能力。
// 支持 json（默认，紧凑单行）、yaml 和 table 三种格式，并支持导出到文件。
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"fortio.org/safecast"
	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"gopkg.in/yaml.v3"

	"tokount/internal/config"
	"tokount/internal/model"
)

// Options 控制渲染细节。
type Options struct {
	Format  string
	NoColor bool
}

// Write 按格式把扫描结果写到 writer。
func Write(writer io.Writer, result model.ScanResult, opts Options) error {
	switch strings.ToLower(strings.TrimSpace(opts.Format)) {
	case "", config.FormatJSON:
		return WriteJSON(writer, result.Report)
	case config.FormatYAML:
		return WriteYAML(writer, result.Report)
	case config.FormatTable:
		return WriteTable(writer, result, opts.NoColor)
	default:
		return fmt.Errorf("unsupported format %q, allowed values: json, yaml, table", opts.Format)
	}
}

// WriteJSON 输出以语言名和 SUM 为键的扁平 JSON 对象，末尾带换行。
func WriteJSON(writer io.Writer, report model.Report) error {
	content, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	content = append(content, '\n')
	if _, err := writer.Write(content); err != nil {
		return fmt.Errorf("write json: %w", err)
	}
	return nil
}

// WriteYAML 输出与 JSON 相同结构的 YAML 文档。
func WriteYAML(writer io.Writer, report model.Report) error {
	encoder := yaml.NewEncoder(writer)
	encoder.SetIndent(2)

	if err := encoder.Encode(report.Flatten()); err != nil {
		return fmt.Errorf("write yaml: %w", err)
	}
	return encoder.Close()
}

// WriteTable 使用表格展示扫描结果，语言按 code 行数降序排列，SUM 放在表尾。
// 有文件被跳过时会在表格下方追加提示。
func WriteTable(writer io.Writer, result model.ScanResult, noColor bool) error {
	names := make([]string, 0, len(result.Report.Languages))
	for name := range result.Report.Languages {
		names = append(names, name)
	}
	sort.Slice(names, func(i int, j int) bool {
		left := result.Report.Languages[names[i]]
		right := result.Report.Languages[names[j]]
		if left.Code != right.Code {
			return left.Code > right.Code
		}
		return names[i] < names[j]
	})

	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	if len(result.Roots) > 0 {
		tbl.SetTitle(strings.Join(result.Roots, ", "))
	}
	tbl.AppendHeader(table.Row{"Language", "Files", "Lines", "Blank", "Comment", "Code"})
	tbl.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight, AlignFooter: text.AlignRight},
		{Number: 3, Align: text.AlignRight, AlignFooter: text.AlignRight},
		{Number: 4, Align: text.AlignRight, AlignFooter: text.AlignRight},
		{Number: 5, Align: text.AlignRight, AlignFooter: text.AlignRight},
		{Number: 6, Align: text.AlignRight, AlignFooter: text.AlignRight},
	})

	for _, name := range names {
		tbl.AppendRow(statsRow(name, result.Report.Languages[name]))
	}
	tbl.AppendFooter(statsRow(model.SumKey, result.Report.Sum))

	if _, err := fmt.Fprintln(writer, tbl.Render()); err != nil {
		return fmt.Errorf("write table: %w", err)
	}

	if size, convErr := safecast.Conv[uint64](result.Bytes); convErr == nil && size > 0 {
		if _, err := fmt.Fprintf(writer, "read %s\n", humanize.Bytes(size)); err != nil {
			return fmt.Errorf("write table: %w", err)
		}
	}

	if len(result.Skipped) == 0 {
		return nil
	}

	warn := color.New(color.FgYellow)
	if noColor {
		warn.DisableColor()
	}
	if _, err := warn.Fprintf(writer, "skipped %d file(s):\n", len(result.Skipped)); err != nil {
		return fmt.Errorf("write table: %w", err)
	}
	for _, item := range result.Skipped {
		if _, err := fmt.Fprintf(writer, "  - %s [%s] %s\n", item.Path, item.Kind, item.Message); err != nil {
			return fmt.Errorf("write table: %w", err)
		}
	}
	return nil
}

func statsRow(name string, stats model.LanguageStats) table.Row {
	return table.Row{
		name,
		humanize.Comma(stats.Files),
		humanize.Comma(stats.Lines()),
		humanize.Comma(stats.Blank),
		humanize.Comma(stats.Comment),
		humanize.Comma(stats.Code),
	}
}

// WriteFile 将结果导出到指定路径，目录不存在时自动创建。
// 写入文件时总是关闭颜色。
func WriteFile(path string, result model.ScanResult, opts Options) (err error) {
	directory := filepath.Dir(path)
	if directory != "." && directory != "" {
		if mkErr := os.MkdirAll(directory, 0o755); mkErr != nil {
			return fmt.Errorf("create output directory: %w", mkErr)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close output file: %w", closeErr)
		}
	}()

	opts.NoColor = true
	return Write(file, result, opts)
}

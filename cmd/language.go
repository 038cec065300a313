package cmd

import (
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"tokount/internal/languages"
)

// newLanguageCmd 创建 language 子命令。
// 命令用于展示已注册的语言、匹配规则以及注释语法。
func newLanguageCmd(registry *languages.Registry) *cobra.Command {
	return &cobra.Command{
		Use:     "language",
		Aliases: []string{"languages"},
		Short:   "展示已支持的语言、后缀与注释语法",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tbl := table.NewWriter()
			tbl.SetStyle(table.StyleLight)
			tbl.SetOutputMirror(cmd.OutOrStdout())
			tbl.AppendHeader(table.Row{"Language", "Filenames", "Extensions", "Comments"})

			for _, item := range registry.Languages() {
				tbl.AppendRow(table.Row{
					item.Name,
					strings.Join(item.Filenames, ", "),
					strings.Join(item.Extensions, ", "),
					item.Comments,
				})
			}
			tbl.AppendFooter(table.Row{"", "", "Total", registry.Len()})

			tbl.Render()
			return nil
		},
	}
}

// Package cmd 提供 tokount 的命令行入口与子命令编排。
package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"tokount/internal/languages"
)

// rootOptions 存放所有子命令共享的全局参数。
type rootOptions struct {
	configPath string
	verbose    bool
	quiet      bool
}

// Execute 组装根命令并执行。
// version 参数由 main 包注入，便于在 CI/CD 中打包不同版本。
func Execute(version string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	registry := languages.NewRegistry()
	rootCmd := newRootCmd(version, registry)
	return rootCmd.ExecuteContext(ctx)
}

// newRootCmd 创建根命令并注册全部子命令。
func newRootCmd(version string, registry *languages.Registry) *cobra.Command {
	options := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "tokount",
		Short: "按语言统计源码的空行、注释行与代码行",
		Long: "tokount 遍历目录树，按语言统计文件数以及 blank/comment/code 行数，\n" +
			"默认以单行 JSON 输出，键为语言名，另附 SUM 汇总。",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&options.configPath, "config", "", "配置文件路径，默认在当前目录和 ~/.config/tokount 中查找 tokount.toml")
	rootCmd.PersistentFlags().BoolVarP(&options.verbose, "verbose", "v", false, "输出 debug 日志")
	rootCmd.PersistentFlags().BoolVarP(&options.quiet, "quiet", "q", false, "只输出 error 日志")

	rootCmd.AddCommand(newVersionCmd(version))
	rootCmd.AddCommand(newLanguageCmd(registry))
	rootCmd.AddCommand(newScanCmd(registry, options))
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

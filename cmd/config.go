package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"tokount/internal/config"
)

// newConfigCmd 创建 config 子命令组。
func newConfigCmd() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "管理 tokount 配置文件",
	}
	configCmd.AddCommand(newConfigInitCmd())
	return configCmd
}

// newConfigInitCmd 创建 config init 子命令。
// 示例：
//
//	tokount config init
//	tokount config init ~/.config/tokount/tokount.toml --force
func newConfigInitCmd() *cobra.Command {
	var force bool

	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "写出默认配置文件（TOML）",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.DefaultFileName
			if len(args) == 1 {
				path = args[0]
			}

			if err := config.WriteDefault(path, force); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "config written to %s\n", path)
			return nil
		},
	}

	initCmd.Flags().BoolVar(&force, "force", false, "覆盖已存在的配置文件")
	return initCmd
}

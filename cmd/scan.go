package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"tokount/internal/apperr"
	"tokount/internal/config"
	"tokount/internal/languages"
	"tokount/internal/logging"
	"tokount/internal/metrics"
	"tokount/internal/report"
	"tokount/internal/scanner"
)

// scanOptions 存放 scan 命令的可配置参数。
// 只有显式传入的参数才会覆盖配置文件与环境变量中的取值。
type scanOptions struct {
	exclude         []string
	notMatch        []string
	workers         int
	format          string
	output          string
	maxFileSize     string
	keepEmpty       bool
	noColor         bool
	metricsTextfile string
}

// newScanCmd 创建 scan 子命令。
// 示例：
//
//	tokount scan .
//	tokount scan ./project --exclude vendor,node_modules
//	tokount scan ./a ./b --format table --output out/report.txt
func newScanCmd(registry *languages.Registry, root *rootOptions) *cobra.Command {
	options := scanOptions{}

	scanCmd := &cobra.Command{
		Use:   "scan [path...]",
		Short: "扫描目录或文件并按语言输出行数统计",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(root.configPath)
			if err != nil {
				return err
			}
			options.applyTo(cmd, cfg)
			if err := cfg.Validate(); err != nil {
				return apperr.Wrap(apperr.InvalidArgs, "invalid configuration", err)
			}

			logger, err := logging.New(logging.Options{
				Level:   cfg.Logging.Level,
				Format:  cfg.Logging.Format,
				Verbose: root.verbose,
				Quiet:   root.quiet,
			}, cmd.ErrOrStderr())
			if err != nil {
				return apperr.Wrap(apperr.InvalidArgs, "invalid logging configuration", err)
			}

			maxFileSize, err := cfg.MaxFileSizeBytes()
			if err != nil {
				return apperr.Wrap(apperr.InvalidArgs, "invalid max file size", err)
			}

			matcher, err := languages.NewMatcher(registry, languages.DefaultMatcherCacheSize)
			if err != nil {
				return err
			}

			roots := args
			if len(roots) == 0 {
				roots = []string{"."}
			}

			service := scanner.NewService(matcher, logger, metrics.New())
			result, err := service.Scan(cmd.Context(), roots, scanner.Options{
				Workers:     cfg.Scan.Workers,
				Exclude:     cfg.Scan.Exclude,
				NotMatch:    cfg.Scan.NotMatch,
				MaxFileSize: maxFileSize,
				KeepEmpty:   cfg.Scan.KeepEmpty,
			})
			if err != nil {
				return err
			}

			if path := strings.TrimSpace(cfg.Metrics.Textfile); path != "" {
				if err := service.Metrics().WriteTextfile(path); err != nil {
					return apperr.Wrap(apperr.IoError, "failed to write metrics textfile", err).WithDetail("path", path)
				}
			}

			reportOptions := report.Options{Format: cfg.Output.Format, NoColor: cfg.Output.NoColor}
			if path := strings.TrimSpace(cfg.Output.File); path != "" {
				if err := report.WriteFile(path, result, reportOptions); err != nil {
					return apperr.Wrap(apperr.IoError, "failed to write report", err).WithDetail("path", path)
				}
				logger.Info("report exported", "path", path)
				return nil
			}
			return report.Write(cmd.OutOrStdout(), result, reportOptions)
		},
	}

	flags := scanCmd.Flags()
	flags.StringSliceVarP(&options.exclude, "exclude", "e", nil, "排除的目录名，逗号分隔，按路径段精确匹配")
	flags.StringSliceVar(&options.notMatch, "not-match", nil, "跳过匹配这些 glob 的文件（支持 **）")
	flags.IntVarP(&options.workers, "workers", "w", 0, "并发 worker 数量，0 表示 CPU 核数")
	flags.StringVarP(&options.format, "format", "f", "", "输出格式: json、yaml 或 table")
	flags.StringVarP(&options.output, "output", "o", "", "导出文件路径，默认输出到 stdout")
	flags.StringVar(&options.maxFileSize, "max-file-size", "", "跳过大于该大小的文件，例如 4MB")
	flags.BoolVar(&options.keepEmpty, "keep-empty", false, "保留没有代码行的语言")
	flags.BoolVar(&options.noColor, "no-color", false, "关闭彩色输出")
	flags.StringVar(&options.metricsTextfile, "metrics-textfile", "", "把运行指标写入 Prometheus textfile")

	return scanCmd
}

// applyTo 用显式传入的参数覆盖配置。
func (o scanOptions) applyTo(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()

	if flags.Changed("exclude") {
		cfg.Scan.Exclude = o.exclude
	}
	if flags.Changed("not-match") {
		cfg.Scan.NotMatch = o.notMatch
	}
	if flags.Changed("workers") {
		cfg.Scan.Workers = o.workers
	}
	if flags.Changed("format") {
		cfg.Output.Format = o.format
	}
	if flags.Changed("output") {
		cfg.Output.File = o.output
	}
	if flags.Changed("max-file-size") {
		cfg.Scan.MaxFileSize = o.maxFileSize
	}
	if flags.Changed("keep-empty") {
		cfg.Scan.KeepEmpty = o.keepEmpty
	}
	if flags.Changed("no-color") {
		cfg.Output.NoColor = o.noColor
	}
	if flags.Changed("metrics-textfile") {
		cfg.Metrics.Textfile = o.metricsTextfile
	}
}

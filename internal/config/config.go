// Package config 负责加载 tokount 的配置。
// 优先级从高到低：命令行参数（由 cmd 层覆盖）、TOKOUNT_ 环境变量、配置文件、内置默认值。
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"fortio.org/safecast"
	"github.com/BurntSushi/toml"
	"github.com/dustin/go-humanize"
	"github.com/spf13/viper"

	"tokount/internal/apperr"
	"tokount/internal/logging"
)

// Sentinel validation errors.
var (
	ErrInvalidWorkers     = errors.New("scan.workers must not be negative")
	ErrInvalidMaxFileSize = errors.New("scan.max_file_size is not a valid size")
	ErrInvalidFormat      = errors.New("output.format must be one of json, yaml, table")
	ErrInvalidLogLevel    = errors.New("logging.level must be one of debug, info, warn, error")
	ErrInvalidLogFormat   = errors.New("logging.format must be one of text, json")
)

const (
	configName = "tokount"
	envPrefix  = "TOKOUNT"

	// DefaultFileName 是 config init 未指定路径时写入的文件名。
	DefaultFileName = "tokount.toml"
)

// DefaultExclude 是 scan.exclude 的默认值：常见的依赖、构建产物和版本库目录。
var DefaultExclude = []string{"node_modules", "vendor", ".git", "dist", "build", "__pycache__"}

// 输出格式。
const (
	FormatJSON  = "json"
	FormatYAML  = "yaml"
	FormatTable = "table"
)

// Config 是 tokount 的完整配置。
type Config struct {
	Scan    ScanConfig    `mapstructure:"scan" toml:"scan"`
	Output  OutputConfig  `mapstructure:"output" toml:"output"`
	Logging LoggingConfig `mapstructure:"logging" toml:"logging"`
	Metrics MetricsConfig `mapstructure:"metrics" toml:"metrics"`
}

// ScanConfig 控制遍历与统计。
type ScanConfig struct {
	Workers     int      `mapstructure:"workers" toml:"workers"`
	Exclude     []string `mapstructure:"exclude" toml:"exclude"`
	NotMatch    []string `mapstructure:"not_match" toml:"not_match"`
	MaxFileSize string   `mapstructure:"max_file_size" toml:"max_file_size"`
	KeepEmpty   bool     `mapstructure:"keep_empty" toml:"keep_empty"`
}

// OutputConfig 控制报告输出。
type OutputConfig struct {
	Format  string `mapstructure:"format" toml:"format"`
	File    string `mapstructure:"file" toml:"file"`
	NoColor bool   `mapstructure:"no_color" toml:"no_color"`
}

// LoggingConfig 控制 stderr 日志。
type LoggingConfig struct {
	Level  string `mapstructure:"level" toml:"level"`
	Format string `mapstructure:"format" toml:"format"`
}

// MetricsConfig 控制 Prometheus textfile 导出，Textfile 为空表示关闭。
type MetricsConfig struct {
	Textfile string `mapstructure:"textfile" toml:"textfile"`
}

// Default 返回内置默认配置。
func Default() Config {
	return Config{
		Scan: ScanConfig{
			Workers:  0,
			Exclude:  slices.Clone(DefaultExclude),
			NotMatch: []string{},
		},
		Output: OutputConfig{
			Format: FormatJSON,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load 读取配置。
// configPath 非空时只读取该文件，且文件必须存在；
// 否则依次在当前目录和 $HOME/.config/tokount 中查找 tokount.{toml,yaml,json}，找不到时使用默认值。
// Load 不做取值校验，调用方应在叠加命令行参数之后调用 Validate。
func Load(configPath string) (*Config, error) {
	viperCfg := viper.New()

	setDefaults(viperCfg)

	if configPath != "" {
		viperCfg.SetConfigFile(configPath)
	} else {
		viperCfg.SetConfigName(configName)
		viperCfg.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viperCfg.AddConfigPath(filepath.Join(home, ".config", configName))
		}
	}

	viperCfg.SetEnvPrefix(envPrefix)
	viperCfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viperCfg.AutomaticEnv()

	readErr := viperCfg.ReadInConfig()
	if readErr != nil {
		var notFoundErr viper.ConfigFileNotFoundError
		if !errors.As(readErr, &notFoundErr) {
			return nil, apperr.Wrap(apperr.InvalidArgs, "failed to read config file", readErr).
				WithDetail("path", configPath)
		}
	}

	var cfg Config

	unmarshalErr := viperCfg.Unmarshal(&cfg)
	if unmarshalErr != nil {
		return nil, apperr.Wrap(apperr.InvalidArgs, "failed to unmarshal config", unmarshalErr)
	}

	return &cfg, nil
}

func setDefaults(viperCfg *viper.Viper) {
	defaults := Default()

	viperCfg.SetDefault("scan.workers", defaults.Scan.Workers)
	viperCfg.SetDefault("scan.exclude", defaults.Scan.Exclude)
	viperCfg.SetDefault("scan.not_match", defaults.Scan.NotMatch)
	viperCfg.SetDefault("scan.max_file_size", defaults.Scan.MaxFileSize)
	viperCfg.SetDefault("scan.keep_empty", defaults.Scan.KeepEmpty)

	viperCfg.SetDefault("output.format", defaults.Output.Format)
	viperCfg.SetDefault("output.file", defaults.Output.File)
	viperCfg.SetDefault("output.no_color", defaults.Output.NoColor)

	viperCfg.SetDefault("logging.level", defaults.Logging.Level)
	viperCfg.SetDefault("logging.format", defaults.Logging.Format)

	viperCfg.SetDefault("metrics.textfile", defaults.Metrics.Textfile)
}

// Validate 校验配置取值。
func (c *Config) Validate() error {
	if c.Scan.Workers < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidWorkers, c.Scan.Workers)
	}

	if _, err := c.MaxFileSizeBytes(); err != nil {
		return err
	}

	switch strings.ToLower(c.Output.Format) {
	case FormatJSON, FormatYAML, FormatTable:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidFormat, c.Output.Format)
	}

	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.Logging.Level)
	}

	switch strings.ToLower(c.Logging.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogFormat, c.Logging.Format)
	}

	return nil
}

// MaxFileSizeBytes 解析 scan.max_file_size，空字符串表示不限制并返回 0。
func (c *Config) MaxFileSizeBytes() (int64, error) {
	raw := strings.TrimSpace(c.Scan.MaxFileSize)
	if raw == "" {
		return 0, nil
	}
	return ParseSize(raw)
}

// ParseSize 解析 "4MB"、"512KiB"、"1024" 这样的大小。
func ParseSize(raw string) (int64, error) {
	size, err := humanize.ParseBytes(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidMaxFileSize, raw)
	}
	limit, err := safecast.Conv[int64](size)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidMaxFileSize, raw)
	}
	return limit, nil
}

// WriteDefault 把默认配置以 TOML 写入 path。
// 文件已存在且 force 为 false 时返回 InvalidArgs。
func WriteDefault(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return apperr.New(apperr.InvalidArgs, "config file already exists, use --force to overwrite").
				WithDetail("path", path)
		}
	}

	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	if err := enc.Encode(Default()); err != nil {
		return apperr.Wrap(apperr.IoError, "failed to encode config", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return apperr.Wrap(apperr.IoError, "failed to create config directory", err).WithDetail("path", dir)
		}
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return apperr.Wrap(apperr.IoError, "failed to write config file", err).WithDetail("path", path)
	}
	return nil
}

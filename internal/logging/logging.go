// Package logging 根据配置构建 slog.Logger。
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// Options 是日志配置。
type Options struct {
	Level   string
	Format  string
	Verbose bool
	Quiet   bool
}

// ParseLevel 把配置中的级别名解析为 slog.Level。
func ParseLevel(name string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(name))); err != nil {
		return slog.LevelInfo, fmt.Errorf("parse log level %q: %w", name, err)
	}
	return level, nil
}

// New 创建写入 w 的 logger。
// Verbose 强制 debug，Quiet 只保留 error，两者同时出现时 Quiet 优先。
func New(opts Options, w io.Writer) (*slog.Logger, error) {
	level := slog.LevelInfo
	if opts.Level != "" {
		parsed, err := ParseLevel(opts.Level)
		if err != nil {
			return nil, err
		}
		level = parsed
	}
	if opts.Verbose {
		level = slog.LevelDebug
	}
	if opts.Quiet {
		level = slog.LevelError
	}

	handlerOpts := &slog.HandlerOptions{Level: level}
	switch strings.ToLower(strings.TrimSpace(opts.Format)) {
	case "", "text":
		return slog.New(slog.NewTextHandler(w, handlerOpts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, handlerOpts)), nil
	default:
		return nil, fmt.Errorf("unsupported log format %q, allowed values: text, json", opts.Format)
	}
}

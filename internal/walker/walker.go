// Package walker 负责枚举根目录下的候选文件。
//
// 枚举是惰性的一次性序列：每次 range 都会重新遍历文件系统。
// 符号链接不会被跟随，非普通文件被静默跳过，遍历中消失或不可读的条目只记录不致命。
package walker

import (
	"errors"
	"io/fs"
	"iter"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"tokount/internal/apperr"
	"tokount/internal/model"
)

// Options 是遍历配置。
type Options struct {
	// Exclude 是需要剪枝的目录名，按路径片段精确比较（区分大小写）。
	Exclude []string
	// NotMatch 是 doublestar 模式，匹配相对路径或文件名的文件会被跳过。
	NotMatch []string
	Logger   *slog.Logger
	// OnSkip 在条目因 I/O 问题被跳过时回调，可以为 nil。
	OnSkip func(model.SkippedFile)
}

// Walker 是校验过的遍历器，可以重复调用 Walk。
type Walker struct {
	exclude  map[string]struct{}
	notMatch []string
	logger   *slog.Logger
	onSkip   func(model.SkippedFile)
}

// New 校验配置并创建遍历器。
// 非法的排除项或模式返回 InvalidArgs 错误。
func New(opts Options) (*Walker, error) {
	names, err := NormalizeExclusions(opts.Exclude)
	if err != nil {
		return nil, err
	}

	patterns := make([]string, 0, len(opts.NotMatch))
	for _, raw := range opts.NotMatch {
		pattern := strings.TrimSpace(raw)
		if pattern == "" {
			continue
		}
		if !doublestar.ValidatePattern(pattern) {
			return nil, apperr.New(apperr.InvalidArgs, "invalid file pattern").WithDetail("pattern", pattern)
		}
		patterns = append(patterns, pattern)
	}

	exclude := make(map[string]struct{}, len(names))
	for _, name := range names {
		exclude[name] = struct{}{}
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Walker{
		exclude:  exclude,
		notMatch: patterns,
		logger:   logger,
		onSkip:   opts.OnSkip,
	}, nil
}

// NormalizeExclusions 去掉空白项并校验每个目录名。
// 目录名不能包含路径分隔符，也不能是 . 或 ..。
func NormalizeExclusions(raw []string) ([]string, error) {
	names := make([]string, 0, len(raw))
	for _, item := range raw {
		name := strings.TrimSpace(item)
		if name == "" {
			continue
		}
		if name == "." || name == ".." || strings.ContainsRune(name, '/') || strings.ContainsRune(name, filepath.Separator) {
			return nil, apperr.New(apperr.InvalidArgs, "exclusion must be a bare directory name").WithDetail("entry", name)
		}
		names = append(names, name)
	}
	return names, nil
}

// Excluded 判断目录名是否在排除集合中。
func (w *Walker) Excluded(name string) bool {
	_, ok := w.exclude[name]
	return ok
}

// Walk 返回 root 下所有候选文件的惰性序列。
// root 本身是普通文件时，序列只包含它自己。
func (w *Walker) Walk(root string) iter.Seq[model.FileEntry] {
	return func(yield func(model.FileEntry) bool) {
		resolved, err := filepath.EvalSymlinks(root)
		if err != nil {
			w.skip(root, err)
			return
		}

		info, err := os.Stat(resolved)
		if err != nil {
			w.skip(root, err)
			return
		}
		if !info.IsDir() {
			if info.Mode().IsRegular() && !w.filtered(info.Name(), info.Name()) {
				yield(model.FileEntry{Path: resolved, RelPath: info.Name(), Size: info.Size()})
			}
			return
		}

		_ = filepath.WalkDir(resolved, func(path string, entry fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				w.skip(path, walkErr)
				if entry != nil && entry.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			if entry.IsDir() {
				if path != resolved && w.Excluded(entry.Name()) {
					w.logger.Debug("prune excluded directory", "path", path)
					return filepath.SkipDir
				}
				return nil
			}

			if entry.Type()&fs.ModeSymlink != 0 {
				w.logger.Debug("skip symlink", "path", path)
				return nil
			}
			if !entry.Type().IsRegular() {
				return nil
			}

			relative, relErr := filepath.Rel(resolved, path)
			if relErr != nil {
				relative = path
			}
			relative = filepath.ToSlash(relative)
			if w.filtered(relative, entry.Name()) {
				w.logger.Debug("skip file matching pattern", "path", relative)
				return nil
			}

			// 条目可能在枚举与读取之间被删除。
			info, infoErr := entry.Info()
			if infoErr != nil {
				w.skip(path, infoErr)
				return nil
			}

			if !yield(model.FileEntry{Path: path, RelPath: relative, Size: info.Size()}) {
				return filepath.SkipAll
			}
			return nil
		})
	}
}

// filtered 判断文件是否命中 NotMatch 模式。
func (w *Walker) filtered(relative string, name string) bool {
	for _, pattern := range w.notMatch {
		if matched, err := doublestar.Match(pattern, relative); err == nil && matched {
			return true
		}
		if matched, err := doublestar.Match(pattern, name); err == nil && matched {
			return true
		}
	}
	return false
}

// skip 记录一个可恢复的遍历错误。
func (w *Walker) skip(path string, err error) {
	kind := apperr.TransientIoError
	if errors.Is(err, fs.ErrNotExist) {
		w.logger.Debug("entry vanished during walk", "path", path, "error", err)
	} else {
		w.logger.Warn("skip unreadable entry", "path", path, "kind", kind, "error", err)
	}

	if w.onSkip != nil {
		w.onSkip(model.SkippedFile{Path: path, Kind: string(kind), Message: err.Error()})
	}
}

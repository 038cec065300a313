// Package scanner 提供并发扫描调度能力。
// 该层负责根路径校验、任务分发、并发执行和结果聚合，不负责语法解析细节。
package scanner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"fortio.org/safecast"
	"github.com/dustin/go-humanize"
	"golang.org/x/sync/errgroup"

	"tokount/internal/aggregate"
	"tokount/internal/apperr"
	"tokount/internal/classify"
	"tokount/internal/languages"
	"tokount/internal/metrics"
	"tokount/internal/model"
	"tokount/internal/walker"
)

// SkipSizeLimit 是超过大小上限被跳过的文件在 SkippedFile.Kind 中的取值。
const SkipSizeLimit = "SizeLimit"

// Options 是单次扫描的参数。
type Options struct {
	// Workers <= 0 时使用 CPU 核数。
	Workers  int
	Exclude  []string
	NotMatch []string
	// MaxFileSize 为 0 表示不限制。
	MaxFileSize int64
	KeepEmpty   bool
}

// Service 是扫描服务对象，可以重复使用。
type Service struct {
	matcher *languages.Matcher
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// scanTask 表示一个已匹配语言、待分类的文件。
type scanTask struct {
	entry    model.FileEntry
	language *languages.Language
}

// NewService 创建扫描服务。logger 与 m 为 nil 时分别使用丢弃型 logger 和新的指标集。
func NewService(matcher *languages.Matcher, logger *slog.Logger, m *metrics.Metrics) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if m == nil {
		m = metrics.New()
	}
	return &Service{matcher: matcher, logger: logger, metrics: m}
}

// Metrics 返回服务使用的指标集。
func (s *Service) Metrics() *metrics.Metrics {
	return s.metrics
}

// Scan 扫描一个或多个根路径并生成报告。
//
// 非法参数、根路径不存在或不可读会在任何分类开始之前返回致命错误；
// 单文件错误只会让该文件被跳过并记录在 ScanResult.Skipped 中。
func (s *Service) Scan(ctx context.Context, roots []string, opts Options) (model.ScanResult, error) {
	var result model.ScanResult

	if len(roots) == 0 {
		return result, apperr.New(apperr.InvalidArgs, "missing required <path> argument").
			WithDetail("usage", "tokount scan <path>... [--exclude dir1,dir2]")
	}
	if opts.MaxFileSize < 0 {
		return result, apperr.New(apperr.InvalidArgs, "max file size must not be negative")
	}

	ledger := &skipLedger{metrics: s.metrics}
	walk, err := walker.New(walker.Options{
		Exclude:  opts.Exclude,
		NotMatch: opts.NotMatch,
		Logger:   s.logger,
		OnSkip:   ledger.add,
	})
	if err != nil {
		return result, err
	}

	absoluteRoots, err := resolveRoots(roots)
	if err != nil {
		return result, err
	}
	result.Roots = absoluteRoots

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	started := time.Now()
	s.logger.Info("scan started", "roots", absoluteRoots, "workers", workers)

	tasks := make(chan scanTask, workers*4)
	partials := make([]aggregate.Partial, workers)
	bytesRead := make([]int64, workers)

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		defer close(tasks)
		return s.enqueue(groupCtx, walk, absoluteRoots, opts.MaxFileSize, ledger, tasks)
	})

	for i := 0; i < workers; i++ {
		partials[i] = make(aggregate.Partial)
		group.Go(func() error {
			for task := range tasks {
				counts, classifyErr := s.classifyFile(task)
				if classifyErr != nil {
					ledger.addError(task.entry.Path, classifyErr)
					continue
				}
				partials[i].Add(task.language.Name, counts)
				bytesRead[i] += task.entry.Size
				s.metrics.ObserveFile(task.language.Name, task.entry.Size, counts)
			}
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return result, apperr.Wrap(apperr.IoError, "scan interrupted", err)
	}

	result.Report = aggregate.Finalize(partials, aggregate.Policy{KeepEmpty: opts.KeepEmpty})
	result.Skipped = ledger.sorted()
	for _, n := range bytesRead {
		result.Bytes += n
	}

	s.logger.Info("scan finished",
		"languages", len(result.Report.Languages),
		"files", result.Report.Sum.Files,
		"skipped", len(result.Skipped),
		"bytes", humanBytes(result.Bytes),
		"elapsed", time.Since(started).Round(time.Millisecond),
	)
	return result, nil
}

// resolveRoots 把根路径转换为绝对路径并确认它们存在。
func resolveRoots(roots []string) ([]string, error) {
	resolved := make([]string, 0, len(roots))
	for _, root := range roots {
		trimmed := strings.TrimSpace(root)
		if trimmed == "" {
			return nil, apperr.New(apperr.InvalidArgs, "scan path is empty")
		}

		absolute, err := filepath.Abs(trimmed)
		if err != nil {
			return nil, apperr.Wrap(apperr.IoError, "resolve absolute path", err).WithDetail("path", trimmed)
		}

		if _, err := os.Stat(absolute); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, apperr.New(apperr.NotFound, "path does not exist").WithDetail("path", trimmed)
			}
			return nil, apperr.Wrap(apperr.IoError, "failed to read path metadata", err).WithDetail("path", trimmed)
		}
		resolved = append(resolved, absolute)
	}
	return resolved, nil
}

// enqueue 遍历所有根路径，把匹配到语言的文件推入任务队列。
// 同一个文件经由多个根路径到达时只计一次。
func (s *Service) enqueue(
	ctx context.Context,
	walk *walker.Walker,
	roots []string,
	maxFileSize int64,
	ledger *skipLedger,
	tasks chan<- scanTask,
) error {
	seen := make(map[string]struct{})

	for _, root := range roots {
		for entry := range walk.Walk(root) {
			if err := ctx.Err(); err != nil {
				return err
			}
			if _, dup := seen[entry.Path]; dup {
				continue
			}
			seen[entry.Path] = struct{}{}

			language, ok := s.matcher.Match(entry.Path)
			if !ok {
				continue
			}
			entry.Language = language.Name
			s.metrics.FilesMatched.Inc()

			if maxFileSize > 0 && entry.Size > maxFileSize {
				s.logger.Warn("skip oversized file", "path", entry.Path, "size", humanBytes(entry.Size))
				ledger.add(model.SkippedFile{
					Path:    entry.Path,
					Kind:    SkipSizeLimit,
					Message: fmt.Sprintf("file size %s exceeds limit %s", humanBytes(entry.Size), humanBytes(maxFileSize)),
				})
				continue
			}

			select {
			case tasks <- scanTask{entry: entry, language: language}:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
	return nil
}

// classifyFile 执行真实的文件读取和行分类。
// 文件句柄在所有返回路径上都会被关闭。
func (s *Service) classifyFile(task scanTask) (model.LineCounts, error) {
	file, err := os.Open(task.entry.Path)
	if err != nil {
		return model.LineCounts{}, apperr.Wrap(apperr.TransientIoError, "open file", err)
	}
	defer func() { _ = file.Close() }()

	return classify.ClassifyReader(task.language, file, task.entry.Size)
}

// skipLedger 收集被跳过的文件，可被遍历 goroutine 与 worker 并发写入。
type skipLedger struct {
	mu      sync.Mutex
	items   []model.SkippedFile
	metrics *metrics.Metrics
}

func (l *skipLedger) add(item model.SkippedFile) {
	l.mu.Lock()
	l.items = append(l.items, item)
	l.mu.Unlock()
	l.metrics.ObserveSkip(item.Kind)
}

func (l *skipLedger) addError(path string, err error) {
	kind := apperr.KindOf(err)
	if kind == "" {
		kind = apperr.TransientIoError
	}
	l.add(model.SkippedFile{Path: path, Kind: string(kind), Message: err.Error()})
}

func (l *skipLedger) sorted() []model.SkippedFile {
	l.mu.Lock()
	defer l.mu.Unlock()

	items := append(make([]model.SkippedFile, 0, len(l.items)), l.items...)
	sort.Slice(items, func(i int, j int) bool {
		return items[i].Path < items[j].Path
	})
	return items
}

// humanBytes 把字节数格式化为易读字符串。
func humanBytes(n int64) string {
	size, err := safecast.Conv[uint64](n)
	if err != nil {
		return fmt.Sprintf("%d B", n)
	}
	return humanize.Bytes(size)
}

// Package metrics 记录一次运行的计数指标，并可导出为 Prometheus textfile。
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"tokount/internal/model"
)

const namespace = "tokount"

// Metrics 持有一次运行使用的独立 registry，所有计数器都可以并发更新。
type Metrics struct {
	registry *prometheus.Registry

	FilesMatched    prometheus.Counter
	FilesClassified *prometheus.CounterVec
	FilesSkipped    *prometheus.CounterVec
	Lines           *prometheus.CounterVec
	BytesRead       prometheus.Counter
}

// New 创建并注册全部指标。
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		FilesMatched: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "files_matched_total",
			Help:      "Files whose path matched a registered language.",
		}),
		FilesClassified: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "files_classified_total",
			Help:      "Files classified successfully, by language.",
		}, []string{"language"}),
		FilesSkipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "files_skipped_total",
			Help:      "Files skipped because of a recoverable error, by kind.",
		}, []string{"kind"}),
		Lines: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lines_total",
			Help:      "Classified physical lines, by kind.",
		}, []string{"kind"}),
		BytesRead: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bytes_read_total",
			Help:      "Bytes read from classified files.",
		}),
	}

	m.registry.MustRegister(m.FilesMatched, m.FilesClassified, m.FilesSkipped, m.Lines, m.BytesRead)
	return m
}

// ObserveFile 记录一个成功分类的文件。
func (m *Metrics) ObserveFile(language string, size int64, counts model.LineCounts) {
	m.FilesClassified.WithLabelValues(language).Inc()
	m.Lines.WithLabelValues("blank").Add(float64(counts.Blank))
	m.Lines.WithLabelValues("comment").Add(float64(counts.Comment))
	m.Lines.WithLabelValues("code").Add(float64(counts.Code))
	m.BytesRead.Add(float64(size))
}

// ObserveSkip 记录一个被跳过的文件。
func (m *Metrics) ObserveSkip(kind string) {
	m.FilesSkipped.WithLabelValues(kind).Inc()
}

// Registry 返回底层 registry，供测试或嵌入方采集。
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// WriteTextfile 把当前指标写入 node_exporter textfile 格式的文件。
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}

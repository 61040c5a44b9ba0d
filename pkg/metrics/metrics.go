// Package metrics 提供基于Prometheus的指标收集
//
// 核心概念：
// - **Counter（计数器）**：只增不减的累计值（请求总数、导入行数）
// - **Gauge（仪表盘）**：可增可减的瞬时值（正在处理的请求数）
// - **Histogram（直方图）**：观测值的分布（请求耗时的P50/P90/P99）
//
// 使用方式：
//
//	func main() {
//	    metrics.InitMetrics()
//	    r.GET("/metrics", gin.WrapH(promhttp.Handler()))
//	}
//
// 最佳实践：
// 1. 使用标签（Label）区分维度：method、path、status
// 2. 避免高基数标签：不要用cabinet名或抽屉编号作为标签（用户可自由输入）
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// initialized 标记是否已初始化（防止重复注册）
	initialized bool

	// HTTP请求相关指标

	// HTTPRequestsTotal HTTP请求总数（Counter）
	// 标签：method（GET/POST）、path（/update）、status（200/500）
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPRequestDuration HTTP请求耗时（Histogram）
	HTTPRequestDuration *prometheus.HistogramVec

	// HTTPRequestsInProgress 正在处理的HTTP请求数（Gauge）
	HTTPRequestsInProgress prometheus.Gauge

	// 库存业务指标

	// DrawerUpdatesTotal 抽屉写入总数（Counter）
	// 标签：result（success/failure）
	DrawerUpdatesTotal *prometheus.CounterVec

	// HistoryOpsTotal 撤销/重做操作总数（Counter）
	// 标签：op（undo/redo）、result（applied/empty/failure）
	HistoryOpsTotal *prometheus.CounterVec

	// ImportRowsTotal 导入记录总数（Counter）
	// 标签：format（csv/json/txt/xlsx/bulk）、result（applied/skipped）
	ImportRowsTotal *prometheus.CounterVec

	// ExportsTotal 导出总数（Counter）
	// 标签：format（csv/json/txt/xlsx）
	ExportsTotal *prometheus.CounterVec

	// BackupRunsTotal 定时备份执行总数（Counter）
	// 标签：result（success/failure）
	BackupRunsTotal *prometheus.CounterVec
)

// InitMetrics 初始化所有Prometheus指标
//
// 必须在程序启动时调用一次，用于注册所有指标到全局Registry。
// 业务代码通过下面的nil安全辅助函数打点，未初始化时（如单元测试）自动退化为空操作。
func InitMetrics() {
	// 防止重复初始化
	if initialized {
		return
	}
	initialized = true

	// HTTP请求指标
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP请求总数",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "http_request_duration_seconds",
			Help: "HTTP请求耗时（秒）",
			// 桶设置：1ms、10ms、100ms、500ms、1s、5s、10s
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 10},
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInProgress = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_progress",
			Help: "正在处理的HTTP请求数",
		},
	)

	// 库存业务指标
	DrawerUpdatesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "drawer_updates_total",
			Help: "抽屉写入总数",
		},
		[]string{"result"},
	)

	HistoryOpsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "history_ops_total",
			Help: "撤销/重做操作总数",
		},
		[]string{"op", "result"},
	)

	ImportRowsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "import_rows_total",
			Help: "导入记录总数",
		},
		[]string{"format", "result"},
	)

	ExportsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "exports_total",
			Help: "导出总数",
		},
		[]string{"format"},
	)

	BackupRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "backup_runs_total",
			Help: "定时备份执行总数",
		},
		[]string{"result"},
	)
}

// IncCounterVec 递增CounterVec（带标签，nil安全）
func IncCounterVec(counter *prometheus.CounterVec, labels map[string]string) {
	if counter == nil {
		return
	}
	counter.With(labels).Inc()
}

// AddCounterVec 按数量递增CounterVec（nil安全）
func AddCounterVec(counter *prometheus.CounterVec, labels map[string]string, delta float64) {
	if counter == nil || delta <= 0 {
		return
	}
	counter.With(labels).Add(delta)
}

// IncGauge 递增Gauge（nil安全）
func IncGauge(gauge prometheus.Gauge) {
	if gauge == nil {
		return
	}
	gauge.Inc()
}

// DecGauge 递减Gauge（nil安全）
func DecGauge(gauge prometheus.Gauge) {
	if gauge == nil {
		return
	}
	gauge.Dec()
}

// ObserveHistogramVec 记录HistogramVec观测值（nil安全）
func ObserveHistogramVec(histogram *prometheus.HistogramVec, labels map[string]string, value float64) {
	if histogram == nil {
		return
	}
	histogram.With(labels).Observe(value)
}

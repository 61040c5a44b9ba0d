package metrics

import "testing"

// TestHelpersNilSafe 未初始化时辅助函数应为空操作
func TestHelpersNilSafe(t *testing.T) {
	// 不调用InitMetrics，直接打点不应panic
	IncCounterVec(nil, map[string]string{"result": "success"})
	AddCounterVec(nil, map[string]string{"format": "csv"}, 3)
	IncGauge(nil)
	DecGauge(nil)
	ObserveHistogramVec(nil, map[string]string{"method": "GET"}, 0.1)
}

// TestInitMetricsIdempotent 重复初始化不应重复注册（promauto重复注册会panic）
func TestInitMetricsIdempotent(t *testing.T) {
	InitMetrics()
	InitMetrics()

	if HTTPRequestsTotal == nil {
		t.Fatal("HTTPRequestsTotal应已初始化")
	}

	// 初始化后打点应正常工作
	IncCounterVec(DrawerUpdatesTotal, map[string]string{"result": "success"})
	AddCounterVec(ImportRowsTotal, map[string]string{"format": "csv", "result": "applied"}, 2)
	IncGauge(HTTPRequestsInProgress)
	DecGauge(HTTPRequestsInProgress)
	ObserveHistogramVec(HTTPRequestDuration, map[string]string{"method": "GET", "path": "/api/inventory"}, 0.05)
}

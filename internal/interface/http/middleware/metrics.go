package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/xiebiao/drawerbox/pkg/metrics"
)

// Metrics HTTP指标中间件
// 学习要点:
// 1. 用c.FullPath()做path标签而不是c.Request.URL.Path,
//    否则/api/cabinets/Workshop/drawers/A1这类带参数的路径会把标签基数撑爆
// 2. 进行中请求数在c.Next()前后增减,panic时由gin.Recovery兜底返回500,
//    defer保证计数不泄漏
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		path := c.FullPath()
		if path == "" {
			// 未匹配到路由的404请求归并到一个标签
			path = "unmatched"
		}
		method := c.Request.Method

		metrics.IncGauge(metrics.HTTPRequestsInProgress)
		defer func() {
			metrics.DecGauge(metrics.HTTPRequestsInProgress)

			labels := map[string]string{"method": method, "path": path}
			metrics.ObserveHistogramVec(metrics.HTTPRequestDuration, labels, time.Since(start).Seconds())

			labels["status"] = strconv.Itoa(c.Writer.Status())
			metrics.IncCounterVec(metrics.HTTPRequestsTotal, labels)
		}()

		c.Next()
	}
}

package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/liuwen/bookmall/pkg/metrics"
)

// Metrics HTTP请求指标中间件
// path使用路由模板(c.FullPath())而非原始URL,避免/books/1、/books/2撑爆标签基数
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		metrics.HTTPRequestsInProgress.Inc()

		c.Next()

		metrics.HTTPRequestsInProgress.Dec()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())

		metrics.HTTPRequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(c.Request.Method, path).
			Observe(time.Since(start).Seconds())
	}
}

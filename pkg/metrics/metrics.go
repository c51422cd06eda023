// Package metrics 基于Prometheus的指标收集
//
// 指标通过 /metrics 端点暴露，由Prometheus定期抓取。
// 命名规范：Counter以_total结尾，Histogram以单位结尾（_seconds），
// Gauge使用现在时态；标签只用低基数维度（method/path/status），
// 不用user_id这类高基数值。
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// initialized 防止重复注册到默认Registry
	initialized bool

	// HTTP请求指标

	// HTTPRequestsTotal HTTP请求总数，标签：method、path、status
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPRequestDuration HTTP请求耗时分布
	HTTPRequestDuration *prometheus.HistogramVec

	// HTTPRequestsInProgress 正在处理的HTTP请求数
	HTTPRequestsInProgress prometheus.Gauge

	// 订单业务指标

	// OrdersCreatedTotal 下单成功总数
	OrdersCreatedTotal prometheus.Counter

	// OrdersFailedTotal 下单失败总数（含库存不足、参数错误）
	OrdersFailedTotal prometheus.Counter

	// OrderCreationDuration 下单耗时分布
	OrderCreationDuration prometheus.Histogram

	// OrdersInProgress 正在处理的下单请求数
	OrdersInProgress prometheus.Gauge

	// StockInsufficientTotal 因库存不足被拒绝的下单总数，标签：book_id不记录（高基数），只记总量
	StockInsufficientTotal prometheus.Counter

	// 熔断器指标

	// CircuitBreakerState 熔断器状态：0=CLOSED, 1=OPEN, 2=HALF_OPEN
	CircuitBreakerState *prometheus.GaugeVec

	// CircuitBreakerRequests 熔断器请求总数，标签：name、result（success/failure/rejected）
	CircuitBreakerRequests *prometheus.CounterVec

	// 消息队列指标

	// MessagesPublishedTotal 事件发布总数，标签：exchange、routing_key
	MessagesPublishedTotal *prometheus.CounterVec

	// MessagesConsumedTotal 事件消费总数，标签：queue、result
	MessagesConsumedTotal *prometheus.CounterVec
)

// InitMetrics 注册全部指标，程序启动时调用一次
func InitMetrics() {
	if initialized {
		return
	}
	initialized = true

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP请求总数",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP请求耗时（秒）",
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

	OrdersCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "orders_created_total",
			Help: "下单成功总数",
		},
	)

	OrdersFailedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "orders_failed_total",
			Help: "下单失败总数",
		},
	)

	OrderCreationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "order_creation_duration_seconds",
			Help: "下单耗时（秒）",
			// 下单涉及库存锁 + 事务提交，比普通请求慢
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10},
		},
	)

	OrdersInProgress = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "orders_in_progress",
			Help: "正在处理的下单请求数",
		},
	)

	StockInsufficientTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "stock_insufficient_total",
			Help: "因库存不足被拒绝的下单总数",
		},
	)

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "熔断器状态（0=CLOSED, 1=OPEN, 2=HALF_OPEN）",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "熔断器请求总数",
		},
		[]string{"name", "result"},
	)

	MessagesPublishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "messages_published_total",
			Help: "事件发布总数",
		},
		[]string{"exchange", "routing_key"},
	)

	MessagesConsumedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "messages_consumed_total",
			Help: "事件消费总数",
		},
		[]string{"queue", "result"},
	)
}

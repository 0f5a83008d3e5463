package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "chowline"

var (
	// RequestDuration HTTP 请求耗时
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	// EligibilityChecks 配送资格校验次数
	EligibilityChecks = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "zones",
			Name:      "eligibility_checks_total",
			Help:      "Delivery eligibility checks by outcome.",
		},
		[]string{"result"},
	)

	// OrdersCreated 成功创建的订单数
	OrdersCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "orders",
			Name:      "created_total",
			Help:      "Orders created by fulfillment type.",
		},
		[]string{"fulfillment_type"},
	)

	// OrdersRejected 因输入校验失败被拒绝的下单请求
	OrdersRejected = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "orders",
		Name:      "rejected_total",
		Help:      "Order requests rejected by validation.",
	})

	// RateLimited 被限流拦截的请求数
	RateLimited = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "rate_limited_total",
			Help:      "Requests rejected by rate limiting, by rule.",
		},
		[]string{"rule"},
	)

	// OrderValueCents 订单金额分布（分）
	OrderValueCents = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "orders",
		Name:      "total_cents",
		Help:      "Order totals in minor currency units.",
		Buckets:   []float64{500, 1000, 2000, 3000, 5000, 10000, 20000},
	})
)

// Registry 应用指标注册表
var Registry = prometheus.NewRegistry()

func init() {
	Registry.MustRegister(collectors.NewGoCollector())
	Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	Registry.MustRegister(
		RequestDuration,
		EligibilityChecks,
		OrdersCreated,
		OrdersRejected,
		OrderValueCents,
		RateLimited,
	)
}

// ObserveEligibility 记录一次配送资格校验
func ObserveEligibility(deliverable bool) {
	result := "rejected"
	if deliverable {
		result = "deliverable"
	}
	EligibilityChecks.WithLabelValues(result).Inc()
}

// ObserveOrderCreated 记录一次下单成功
func ObserveOrderCreated(fulfillmentType string, totalCents int64) {
	OrdersCreated.WithLabelValues(fulfillmentType).Inc()
	OrderValueCents.Observe(float64(totalCents))
}

// ObserveOrderRejected 记录一次下单校验失败
func ObserveOrderRejected() {
	OrdersRejected.Inc()
}

// ObserveRateLimited 记录一次限流拦截
func ObserveRateLimited(rule string) {
	RateLimited.WithLabelValues(rule).Inc()
}

// Middleware 记录请求耗时，route 使用路由模板避免高基数
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		RequestDuration.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}

// Handler 暴露 /metrics
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
}

package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "bidding"

// Результаты принятия ставки для метки result.
const (
	ResultSuccess   = "success"
	ResultConflict  = "conflict"
	ResultForbidden = "forbidden"
	ResultNotFound  = "not_found"
	ResultError     = "error"
)

var (
	BidsSubmitted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bids_submitted_total",
		Help:      "Number of bids accepted into the ledger.",
	})

	BidsWithdrawn = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bids_withdrawn_total",
		Help:      "Number of bids withdrawn by freelancers.",
	})

	Acceptances = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "acceptances_total",
		Help:      "Bid acceptance attempts by result.",
	}, []string{"result"})

	OrdersCreated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_created_total",
		Help:      "Number of orders created by bid acceptance.",
	})

	AcceptanceDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "acceptance_duration_seconds",
		Help:      "Duration of the bid acceptance transaction.",
		Buckets:   prometheus.DefBuckets,
	})

	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests by method, route and status.",
	}, []string{"method", "route", "status"})

	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by method and route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})
)

// ObserveAcceptance учитывает попытку принятия ставки.
func ObserveAcceptance(result string, started time.Time) {
	Acceptances.WithLabelValues(result).Inc()
	AcceptanceDuration.Observe(time.Since(started).Seconds())
	if result == ResultSuccess {
		OrdersCreated.Inc()
	}
}

// Middleware собирает метрики HTTP запросов. Маршрут берется из шаблона gin, а не из URL.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		HTTPRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		HTTPDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

// Handler отдает метрики в формате Prometheus.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}

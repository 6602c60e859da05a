package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// 请求次数
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fundoo_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// 响应耗时
	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fundoo_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.005, .01, .05, .1, .5, 1, 2, 5},
		},
		[]string{"method", "path"},
	)

	// NotesOperationsTotal 成功的笔记操作: create, update, delete, archive, trash, add_labels ...
	NotesOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notes_operations_total",
			Help: "Total number of note operations",
		},
		[]string{"operation"},
	)

	// NotesListSourceTotal 列表读取来源: cache, database
	NotesListSourceTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notes_list_source_total",
			Help: "Note list reads by source",
		},
		[]string{"source"},
	)

	// CacheErrorsTotal 被忽略的缓存错误
	CacheErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notes_cache_errors_total",
			Help: "Cache failures that did not abort the request",
		},
		[]string{"operation"},
	)

	// AuthAttemptsTotal 鉴权结果: success, failure
	AuthAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_attempts_total",
			Help: "Total number of authentication attempts",
		},
		[]string{"status", "mode"},
	)
)

func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()
		if path == "" {
			path = "unknown"
		}

		c.Next()

		status := strconv.Itoa(c.Writer.Status())
		httpRequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		httpRequestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}

func TrackNoteOperation(operation string) {
	NotesOperationsTotal.WithLabelValues(operation).Inc()
}

func TrackListSource(source string) {
	NotesListSourceTotal.WithLabelValues(source).Inc()
}

func TrackCacheError(operation string) {
	CacheErrorsTotal.WithLabelValues(operation).Inc()
}

func TrackAuthAttempt(status, mode string) {
	AuthAttemptsTotal.WithLabelValues(status, mode).Inc()
}

package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "portal_http_requests_total",
		Help: "HTTP 请求总数",
	}, []string{"method", "route", "status"})

	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "portal_http_request_duration_seconds",
		Help:    "HTTP 请求耗时",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	LoginAttemptsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "portal_login_attempts_total",
		Help: "登录尝试次数，按入口和结果区分",
	}, []string{"flow", "result"})

	UploadsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "portal_uploads_total",
		Help: "图片上传次数，按结果区分",
	}, []string{"result"})

	RateLimitedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "portal_rate_limited_total",
		Help: "被限流拒绝的请求数",
	}, []string{"limiter"})

	RegistrationsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "portal_registrations_total",
		Help: "会员自助注册数",
	})
)

var once sync.Once

// Init 注册所有指标，可重复调用
func Init() {
	once.Do(func() {
		prometheus.MustRegister(
			HTTPRequestsTotal,
			HTTPRequestDuration,
			LoginAttemptsTotal,
			UploadsTotal,
			RateLimitedTotal,
			RegistrationsTotal,
		)
	})
}

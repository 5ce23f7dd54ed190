package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	HTTPRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "finquest", Name: "http_requests_total", Help: "Handled HTTP requests",
	}, []string{"method", "route", "status"})
	HTTPDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "finquest", Name: "http_request_duration_seconds", Help: "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})
	Registrations = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "finquest", Name: "registrations_total", Help: "Registered students",
	})
	Logins = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "finquest", Name: "logins_total", Help: "Successful student logins",
	})
	ModuleCompletions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "finquest", Name: "module_completions_total", Help: "Module completions by module id",
	}, []string{"module"})
	DBPing = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "finquest", Name: "db_ping_seconds", Help: "DB ping latency",
		Buckets: prometheus.DefBuckets,
	})
)

func init() {
	prometheus.MustRegister(HTTPRequests, HTTPDuration, Registrations, Logins, ModuleCompletions, DBPing)
}

func ObserveRequest(method, route string, status int, d time.Duration) {
	HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	HTTPDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

func ObserveModuleCompletion(moduleID int) {
	ModuleCompletions.WithLabelValues(strconv.Itoa(moduleID)).Inc()
}

func ObserveDBPing(d time.Duration) { DBPing.Observe(d.Seconds()) }

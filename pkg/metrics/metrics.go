// Package metrics 提供服务的 Prometheus 指标集合
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "optioncalc"

// Collector 业务代码依赖的指标记录接口
type Collector interface {
	// RecordHTTPRequest 记录 HTTP 请求
	RecordHTTPRequest(method, path string, statusCode int, duration time.Duration)
	// RecordEvaluation 记录一次定价或 ROI 计算
	RecordEvaluation(kind, operation string)
	// RecordOptimization 记录一次最优合约计算，cached 表示命中缓存
	RecordOptimization(kind string, cached bool, duration time.Duration)
	// RecordNonFinite 记录结果为 NaN/Inf 的计算
	RecordNonFinite(operation string)
	// RecordDependencyError 记录 Redis、Kafka 等外部依赖的失败
	RecordDependencyError(component string)
}

// Metrics 指标集合，使用独立的 Registry
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	EvaluationsTotal   *prometheus.CounterVec
	OptimizationsTotal *prometheus.CounterVec
	OptimizerDuration  *prometheus.HistogramVec
	NonFiniteTotal     *prometheus.CounterVec
	DependencyErrors   *prometheus.CounterVec
}

// New 创建并注册指标
func New(serviceName string) *Metrics {
	labels := prometheus.Labels{"service": serviceName}
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "http_requests_total",
			Help:        "Total HTTP requests",
			ConstLabels: labels,
		}, []string{"method", "path", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   namespace,
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			ConstLabels: labels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "path"}),
		EvaluationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "evaluations_total",
			Help:        "Pricing and ROI evaluations by option kind and operation",
			ConstLabels: labels,
		}, []string{"kind", "operation"}),
		OptimizationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "optimizations_total",
			Help:        "Best contract searches by option kind and cache outcome",
			ConstLabels: labels,
		}, []string{"kind", "cache"}),
		OptimizerDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   namespace,
			Name:        "optimizer_duration_seconds",
			Help:        "Best contract search duration in seconds",
			ConstLabels: labels,
			Buckets:     []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25},
		}, []string{"kind"}),
		NonFiniteTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "non_finite_results_total",
			Help:        "Results that evaluated to NaN or Inf",
			ConstLabels: labels,
		}, []string{"operation"}),
		DependencyErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "dependency_errors_total",
			Help:        "Failures talking to cache or message broker",
			ConstLabels: labels,
		}, []string{"component"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.EvaluationsTotal,
		m.OptimizationsTotal,
		m.OptimizerDuration,
		m.NonFiniteTotal,
		m.DependencyErrors,
	)
	return m
}

// Registry 底层 Registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler 指标抓取的 HTTP handler
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) RecordHTTPRequest(method, path string, statusCode int, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(statusCode)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

func (m *Metrics) RecordEvaluation(kind, operation string) {
	m.EvaluationsTotal.WithLabelValues(kind, operation).Inc()
}

func (m *Metrics) RecordOptimization(kind string, cached bool, duration time.Duration) {
	outcome := "miss"
	if cached {
		outcome = "hit"
	}
	m.OptimizationsTotal.WithLabelValues(kind, outcome).Inc()
	if !cached {
		m.OptimizerDuration.WithLabelValues(kind).Observe(duration.Seconds())
	}
}

func (m *Metrics) RecordNonFinite(operation string) {
	m.NonFiniteTotal.WithLabelValues(operation).Inc()
}

func (m *Metrics) RecordDependencyError(component string) {
	m.DependencyErrors.WithLabelValues(component).Inc()
}

// Nop 不记录任何指标，用于测试或关闭指标时
type Nop struct{}

func (Nop) RecordHTTPRequest(string, string, int, time.Duration) {}

func (Nop) RecordEvaluation(string, string) {}

func (Nop) RecordOptimization(string, bool, time.Duration) {}

func (Nop) RecordNonFinite(string) {}

func (Nop) RecordDependencyError(string) {}

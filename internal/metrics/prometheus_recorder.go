package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder on Prometheus collectors.
type PrometheusRecorder struct {
	pageDuration      *prom.HistogramVec
	buildDuration     prom.Histogram
	pageResults       *prom.CounterVec
	buildOutcomes     *prom.CounterVec
	workerConcurrency prom.Gauge
}

// NewPrometheusRecorder constructs and registers the collectors on reg, or
// on a fresh registry when reg is nil.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		pageDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "cppdoc",
			Name:      "page_duration_seconds",
			Help:      "Duration of individual page builds",
			Buckets:   prom.DefBuckets,
		}, []string{"category"}),
		buildDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: "cppdoc",
			Name:      "build_duration_seconds",
			Help:      "Total site build duration",
			Buckets:   prom.DefBuckets,
		}),
		pageResults: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "cppdoc",
			Name:      "page_results_total",
			Help:      "Page task results by outcome",
		}, []string{"result"}),
		buildOutcomes: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "cppdoc",
			Name:      "build_outcomes_total",
			Help:      "Build outcomes by final status",
		}, []string{"outcome"}),
		workerConcurrency: prom.NewGauge(prom.GaugeOpts{
			Namespace: "cppdoc",
			Name:      "worker_concurrency",
			Help:      "Configured page worker concurrency for the last build",
		}),
	}
	reg.MustRegister(pr.pageDuration, pr.buildDuration, pr.pageResults, pr.buildOutcomes, pr.workerConcurrency)
	return pr
}

func (p *PrometheusRecorder) ObservePageDuration(category string, d time.Duration) {
	if p == nil || p.pageDuration == nil {
		return
	}
	p.pageDuration.WithLabelValues(category).Observe(d.Seconds())
}

func (p *PrometheusRecorder) ObserveBuildDuration(d time.Duration) {
	if p == nil || p.buildDuration == nil {
		return
	}
	p.buildDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncPageResult(result ResultLabel) {
	if p == nil || p.pageResults == nil {
		return
	}
	p.pageResults.WithLabelValues(string(result)).Inc()
}

func (p *PrometheusRecorder) IncBuildOutcome(outcome OutcomeLabel) {
	if p == nil || p.buildOutcomes == nil {
		return
	}
	p.buildOutcomes.WithLabelValues(string(outcome)).Inc()
}

func (p *PrometheusRecorder) SetWorkerConcurrency(n int) {
	if p == nil || p.workerConcurrency == nil {
		return
	}
	p.workerConcurrency.Set(float64(n))
}

package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	buildDuration    *prom.HistogramVec
	buildOutcome     *prom.CounterVec
	pagesRendered    *prom.CounterVec
	inventoryFetch   *prom.HistogramVec
	inventoryRetries *prom.CounterVec
	highlights       *prom.CounterVec
}

// NewPrometheusRecorder constructs and registers Prometheus metrics on reg
// (a fresh registry when reg is nil).
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		buildDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "rf24docs",
			Name:      "build_duration_seconds",
			Help:      "Duration of output builds by builder",
			Buckets:   prom.DefBuckets,
		}, []string{"builder"}),
		buildOutcome: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "rf24docs",
			Name:      "build_outcomes_total",
			Help:      "Build outcomes by builder and result",
		}, []string{"builder", "result"}),
		pagesRendered: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "rf24docs",
			Name:      "pages_rendered_total",
			Help:      "Pages written by builder",
		}, []string{"builder"}),
		inventoryFetch: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "rf24docs",
			Name:      "inventory_fetch_duration_seconds",
			Help:      "Duration of object inventory loads by target and result",
			Buckets:   prom.DefBuckets,
		}, []string{"target", "result"}),
		inventoryRetries: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "rf24docs",
			Name:      "inventory_retries_total",
			Help:      "Inventory fetch retries after transient failures",
		}, []string{"target"}),
		highlights: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "rf24docs",
			Name:      "highlighted_blocks_total",
			Help:      "Code blocks highlighted by language",
		}, []string{"language"}),
	}
	reg.MustRegister(pr.buildDuration, pr.buildOutcome, pr.pagesRendered, pr.inventoryFetch, pr.inventoryRetries, pr.highlights)
	return pr
}

func resultOf(success bool) string {
	if success {
		return string(ResultSuccess)
	}
	return string(ResultFailed)
}

func (p *PrometheusRecorder) ObserveBuildDuration(builder string, d time.Duration) {
	if p == nil {
		return
	}
	p.buildDuration.WithLabelValues(builder).Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncBuildOutcome(builder string, result ResultLabel) {
	if p == nil {
		return
	}
	p.buildOutcome.WithLabelValues(builder, string(result)).Inc()
}

func (p *PrometheusRecorder) AddPagesRendered(builder string, n int) {
	if p == nil {
		return
	}
	p.pagesRendered.WithLabelValues(builder).Add(float64(n))
}

func (p *PrometheusRecorder) ObserveInventoryFetch(target string, d time.Duration, success bool) {
	if p == nil {
		return
	}
	p.inventoryFetch.WithLabelValues(target, resultOf(success)).Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncInventoryRetry(target string) {
	if p == nil {
		return
	}
	p.inventoryRetries.WithLabelValues(target).Inc()
}

func (p *PrometheusRecorder) IncHighlight(language string) {
	if p == nil {
		return
	}
	p.highlights.WithLabelValues(language).Inc()
}

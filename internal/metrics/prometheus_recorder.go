package metrics

import (
	"sync"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics. Since the
// runner is a one-shot process, exposition happens through WriteTextfile at
// the end of a run rather than a scrape endpoint.
type PrometheusRecorder struct {
	once           sync.Once
	registry       *prom.Registry
	actionDuration *prom.HistogramVec
	actionResults  *prom.CounterVec
	runDuration    prom.Histogram
	runOutcome     *prom.CounterVec
}

// NewPrometheusRecorder constructs and registers Prometheus metrics (idempotent).
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{registry: reg}
	pr.once.Do(func() {
		pr.actionDuration = prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "checkrunner",
			Name:      "action_duration_seconds",
			Help:      "Duration of individual check actions",
			Buckets:   prom.DefBuckets,
		}, []string{"action"})
		pr.actionResults = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "checkrunner",
			Name:      "action_results_total",
			Help:      "Action result counts by outcome",
		}, []string{"action", "result"})
		pr.runDuration = prom.NewHistogram(prom.HistogramOpts{
			Namespace: "checkrunner",
			Name:      "run_duration_seconds",
			Help:      "Total run duration",
			Buckets:   prom.DefBuckets,
		})
		pr.runOutcome = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "checkrunner",
			Name:      "run_outcomes_total",
			Help:      "Run outcomes by final status",
		}, []string{"outcome"})
		reg.MustRegister(pr.actionDuration, pr.actionResults, pr.runDuration, pr.runOutcome)
	})
	return pr
}

func (p *PrometheusRecorder) ObserveActionDuration(action string, d time.Duration) {
	if p == nil || p.actionDuration == nil {
		return
	}
	p.actionDuration.WithLabelValues(action).Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncActionResult(action string, result ResultLabel) {
	if p == nil || p.actionResults == nil {
		return
	}
	p.actionResults.WithLabelValues(action, string(result)).Inc()
}

func (p *PrometheusRecorder) ObserveRunDuration(d time.Duration) {
	if p == nil || p.runDuration == nil {
		return
	}
	p.runDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncRunOutcome(outcome string) {
	if p == nil || p.runOutcome == nil {
		return
	}
	p.runOutcome.WithLabelValues(outcome).Inc()
}

// WriteTextfile exports the registry in the node-exporter textfile-collector
// format. Intended to run once at the end of a run; errors are the caller's
// to log, never fatal.
func (p *PrometheusRecorder) WriteTextfile(path string) error {
	if p == nil || p.registry == nil || path == "" {
		return nil
	}
	return prom.WriteToTextfile(path, p.registry)
}

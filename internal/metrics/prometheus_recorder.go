package metrics

import (
	"net/http"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	buildDuration *prom.HistogramVec
	buildOutcome  *prom.CounterVec
	rebuilds      *prom.CounterVec
	lastSuccess   prom.Gauge
}

// NewPrometheusRecorder constructs the metrics and registers them with reg.
// A nil reg gets a private registry.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		buildDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "kbits",
			Name:      "build_duration_seconds",
			Help:      "Duration of generator runs",
			Buckets:   prom.DefBuckets,
		}, []string{"mode"}),
		buildOutcome: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "kbits",
			Name:      "build_outcomes_total",
			Help:      "Generator runs by mode and outcome",
		}, []string{"mode", "outcome"}),
		rebuilds: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "kbits",
			Name:      "preview_rebuild_triggers_total",
			Help:      "Preview rebuilds requested, by trigger",
		}, []string{"reason"}),
		lastSuccess: prom.NewGauge(prom.GaugeOpts{
			Namespace: "kbits",
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time of the last successful generator run",
		}),
	}
	reg.MustRegister(pr.buildDuration, pr.buildOutcome, pr.rebuilds, pr.lastSuccess)
	return pr
}

func (p *PrometheusRecorder) ObserveBuildDuration(mode string, d time.Duration) {
	p.buildDuration.WithLabelValues(mode).Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncBuildOutcome(mode string, outcome Outcome) {
	p.buildOutcome.WithLabelValues(mode, string(outcome)).Inc()
}

func (p *PrometheusRecorder) IncRebuildTrigger(reason string) {
	p.rebuilds.WithLabelValues(reason).Inc()
}

func (p *PrometheusRecorder) SetLastSuccess(t time.Time) {
	p.lastSuccess.Set(float64(t.Unix()))
}

// HTTPHandler serves the metrics gathered by reg.
func HTTPHandler(reg *prom.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{EnableOpenMetrics: true})
}

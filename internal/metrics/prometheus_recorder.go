package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	documents   *prom.CounterVec
	runDuration prom.Histogram
	outputs     *prom.CounterVec
}

// NewPrometheusRecorder constructs the metrics and registers them on reg.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		documents: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "mdcollect",
			Name:      "documents_total",
			Help:      "Documents visited per processor by outcome",
		}, []string{"processor", "outcome"}),
		runDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: "mdcollect",
			Name:      "run_duration_seconds",
			Help:      "Duration of a full corpus pass including persistence",
			Buckets:   prom.DefBuckets,
		}),
		outputs: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "mdcollect",
			Name:      "outputs_written_total",
			Help:      "Aggregate files written per processor",
		}, []string{"processor"}),
	}
	reg.MustRegister(pr.documents, pr.runDuration, pr.outputs)
	return pr
}

func (p *PrometheusRecorder) ObserveDocument(processor string, outcome Outcome) {
	if p == nil || p.documents == nil {
		return
	}
	p.documents.WithLabelValues(processor, string(outcome)).Inc()
}

func (p *PrometheusRecorder) ObserveRunDuration(d time.Duration) {
	if p == nil || p.runDuration == nil {
		return
	}
	p.runDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncOutputWritten(processor string) {
	if p == nil || p.outputs == nil {
		return
	}
	p.outputs.WithLabelValues(processor).Inc()
}

// WriteTextfile writes every metric in reg to path in the Prometheus text
// exposition format.
func WriteTextfile(reg prom.Gatherer, path string) error {
	return prom.WriteToTextfile(path, reg)
}

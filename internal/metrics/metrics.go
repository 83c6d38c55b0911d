// Package metrics describes one generator run as prometheus metrics and
// writes them in the text exposition format, for node_exporter's textfile
// collector or a CI artefact.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"lifespanchart/internal/record"
)

const namespace = "lifespanchart"

// Run collects the metrics of one invocation.
type Run struct {
	reg *prometheus.Registry

	recordsLoaded  *prometheus.CounterVec
	rowsSkipped    *prometheus.CounterVec
	loadSeconds    *prometheus.GaugeVec
	duplicateNames prometheus.Gauge
	outputBytes    *prometheus.GaugeVec
	events         *prometheus.CounterVec
	lastRun        prometheus.Gauge
}

// New registers the run metrics on a fresh registry.
func New() *Run {
	r := &Run{
		reg: prometheus.NewRegistry(),
		recordsLoaded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_loaded_total",
			Help:      "Records decoded from each source.",
		}, []string{"source"}),
		rowsSkipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_skipped_total",
			Help:      "Rows rejected while decoding, by source and reason.",
		}, []string{"source", "reason"}),
		loadSeconds: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "source_load_seconds",
			Help:      "Time spent fetching and decoding each source.",
		}, []string{"source"}),
		duplicateNames: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "duplicate_names",
			Help:      "Names shared by more than one record.",
		}),
		outputBytes: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "output_bytes",
			Help:      "Size of the written chart.",
		}, []string{"format"}),
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "interaction_events_total",
			Help:      "Pointer and zoom events handled by the terminal viewer.",
		}, []string{"event"}),
		lastRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time the run finished.",
		}),
	}
	r.reg.MustRegister(r.recordsLoaded, r.rowsSkipped, r.loadSeconds, r.duplicateNames, r.outputBytes, r.events, r.lastRun)
	return r
}

// ObserveLoad records the outcome of decoding one source.
func (r *Run) ObserveLoad(source string, rep record.Report, took time.Duration) {
	r.recordsLoaded.WithLabelValues(source).Add(float64(rep.Loaded))
	for kind, n := range rep.SkippedBy() {
		r.rowsSkipped.WithLabelValues(source, string(kind)).Add(float64(n))
	}
	r.loadSeconds.WithLabelValues(source).Set(took.Seconds())
}

// SetDuplicates records the number of shared names after merging sources.
func (r *Run) SetDuplicates(n int) { r.duplicateNames.Set(float64(n)) }

// ObserveOutput records the size of the written artefact.
func (r *Run) ObserveOutput(format string, size int64) {
	r.outputBytes.WithLabelValues(format).Set(float64(size))
}

// Event counts one interaction event by name.
func (r *Run) Event(name string) { r.events.WithLabelValues(name).Inc() }

// WriteFile stamps the run time and writes every metric to path. The file is
// replaced atomically.
func (r *Run) WriteFile(path string) error {
	r.lastRun.Set(float64(time.Now().Unix()))
	return prometheus.WriteToTextfile(path, r.reg)
}

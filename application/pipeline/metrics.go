package pipeline

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the pipeline's Prometheus instruments.
type Metrics struct {
	targetsTotal       prometheus.Counter
	targetsFailed      prometheus.Counter
	evidenceTotal      prometheus.Counter
	malformedTotal     prometheus.Counter
	bundlesTotal       prometheus.Counter
	scoredTotal        prometheus.Counter
	emptyTotal         prometheus.Counter
	storedTotal        prometheus.Counter
	enrichmentMisses   prometheus.Counter
	runDurationSeconds prometheus.Histogram
}

// NewMetrics registers the pipeline metrics with the given registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		targetsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "targetlink_pipeline_targets_total",
			Help: "Targets processed by the scoring pipeline.",
		}),
		targetsFailed: factory.NewCounter(prometheus.CounterOpts{
			Name: "targetlink_pipeline_targets_failed_total",
			Help: "Targets skipped because their evidence could not be read.",
		}),
		evidenceTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "targetlink_pipeline_evidence_total",
			Help: "Evidence records read from storage.",
		}),
		malformedTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "targetlink_pipeline_evidence_malformed_total",
			Help: "Evidence records skipped because they failed validation.",
		}),
		bundlesTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "targetlink_pipeline_bundles_total",
			Help: "Target-disease evidence bundles produced.",
		}),
		scoredTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "targetlink_pipeline_associations_scored_total",
			Help: "Associations computed by the scoring workers.",
		}),
		emptyTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "targetlink_pipeline_associations_empty_total",
			Help: "Associations discarded because they carried no signal.",
		}),
		storedTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "targetlink_pipeline_associations_stored_total",
			Help: "Associations written to the store.",
		}),
		enrichmentMisses: factory.NewCounter(prometheus.CounterOpts{
			Name: "targetlink_pipeline_enrichment_misses_total",
			Help: "Associations stored without gene or disease metadata.",
		}),
		runDurationSeconds: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "targetlink_pipeline_run_duration_seconds",
			Help:    "Wall-clock duration of complete pipeline runs.",
			Buckets: prometheus.ExponentialBuckets(1, 4, 10),
		}),
	}
}

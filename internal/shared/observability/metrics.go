package observability

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Row outcomes recorded by RowsTotal.
const (
	OutcomeFunction     = "function"
	OutcomeDistribution = "distribution"
	OutcomeExcluded     = "excluded"
)

const metricPrefix = "stanlang_"

// Metrics definitions
var (
	RowsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stanlang_rows_total",
		Help: "Function table rows processed, by outcome.",
	}, []string{"outcome"})

	ParseAnomaliesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "stanlang_parse_anomalies_total",
		Help: "Argument lists that produced no parameters.",
	})

	SignatureCollisionsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "stanlang_signature_collisions_total",
		Help: "Overloads replaced by a later row with the same name and signature.",
	})

	BuildDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "stanlang_build_seconds",
		Help:    "Time spent building the function table.",
		Buckets: prometheus.DefBuckets,
	})
)

// Totals gathers the stanlang metric families from g and returns one value per
// series name: counters are summed across labels and histograms report their
// observation count under "<name>_count".
func Totals(g prometheus.Gatherer) (map[string]float64, error) {
	families, err := g.Gather()
	if err != nil {
		return nil, err
	}

	totals := make(map[string]float64)
	for _, mf := range families {
		name := mf.GetName()
		if !strings.HasPrefix(name, metricPrefix) {
			continue
		}
		for _, m := range mf.GetMetric() {
			switch {
			case m.GetCounter() != nil:
				totals[name] += m.GetCounter().GetValue()
			case m.GetHistogram() != nil:
				totals[name+"_count"] += float64(m.GetHistogram().GetSampleCount())
			}
		}
	}
	return totals, nil
}

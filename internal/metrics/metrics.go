package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"rc-service/internal/domain/rc"
)

const (
	OutcomeParsed = "parsed"
	OutcomeEmpty  = "empty"
	OutcomeFailed = "failed"
)

var (
	parseOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "rc",
			Subsystem: "parser",
			Name:      "parse_ops_total",
			Help:      "The total number of parsed OCR texts by outcome.",
		},
		[]string{"outcome"},
	)
	fieldHits = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "rc",
			Subsystem: "parser",
			Name:      "field_hits_total",
			Help:      "The total number of times each record field was extracted.",
		},
		[]string{"field"},
	)
	fieldsFound = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "rc",
			Subsystem: "parser",
			Name:      "fields_found",
			Help:      "Number of non-empty fields per parsed record.",
			Buckets:   prometheus.LinearBuckets(0, 4, 7),
		},
	)
	parseDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "rc",
			Subsystem: "parser",
			Name:      "parse_duration_seconds",
			Help:      "Time taken to parse one OCR text.",
			Buckets:   []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1},
		},
	)

	requestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "rc",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Time taken to serve an HTTP request.",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"route", "method", "status"},
	)

	recordsPurged = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "rc",
			Subsystem: "records",
			Name:      "purged_total",
			Help:      "Total number of stored records removed by retention.",
		},
	)
)

func init() {
	prometheus.MustRegister(parseOps)
	prometheus.MustRegister(fieldHits)
	prometheus.MustRegister(fieldsFound)
	prometheus.MustRegister(parseDuration)
	prometheus.MustRegister(requestDuration)
	prometheus.MustRegister(recordsPurged)
}

// Outcome classifies a parse result for the parse_ops_total counter.
func Outcome(rec rc.ParsedRecord) string {
	switch {
	case rec.ParseError != "":
		return OutcomeFailed
	case rec.FilledCount() == 0:
		return OutcomeEmpty
	default:
		return OutcomeParsed
	}
}

// RecordParse records the outcome, per-field hits and duration of one parse.
func RecordParse(rec rc.ParsedRecord, seconds float64) {
	parseOps.WithLabelValues(Outcome(rec)).Inc()
	found := 0
	for _, f := range rc.Fields() {
		if rec.Get(f) != "" {
			fieldHits.WithLabelValues(string(f)).Inc()
			found++
		}
	}
	fieldsFound.Observe(float64(found))
	parseDuration.Observe(seconds)
}

// RecordRequestDuration records how long a request took
func RecordRequestDuration(route, method, status string, seconds float64) {
	requestDuration.WithLabelValues(route, method, status).Observe(seconds)
}

// RecordPurged adds n to the purged records counter
func RecordPurged(n int64) {
	if n > 0 {
		recordsPurged.Add(float64(n))
	}
}

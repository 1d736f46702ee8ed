// Package metrics provides Prometheus metrics for conversions
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ConversionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "otdconvert_conversions_total",
			Help: "Total number of layout conversions",
		},
		[]string{"status"},
	)

	ConversionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "otdconvert_conversion_duration_seconds",
			Help:    "Time taken to convert one layout file",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
	)

	SchemasTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "otdconvert_schemas_total",
			Help: "Total number of sheet layouts converted",
		},
	)

	ValidationFindings = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "otdconvert_validation_findings_total",
			Help: "Total number of validation warnings and errors",
		},
		[]string{"severity"},
	)
)

const (
	StatusSuccess = "success"
	StatusFailure = "failure"

	SeverityWarning = "warning"
	SeverityError   = "error"
)

// RecordConversion records one finished conversion.
func RecordConversion(err error, schemas int, elapsed time.Duration) {
	status := StatusSuccess
	if err != nil {
		status = StatusFailure
	}
	ConversionsTotal.WithLabelValues(status).Inc()
	ConversionDuration.Observe(elapsed.Seconds())
	SchemasTotal.Add(float64(schemas))
}

// RecordFindings records the validation findings of one conversion.
func RecordFindings(warnings, errors int) {
	ValidationFindings.WithLabelValues(SeverityWarning).Add(float64(warnings))
	ValidationFindings.WithLabelValues(SeverityError).Add(float64(errors))
}

// WriteTextfile writes the default registry to path in the text exposition
// format read by the node exporter textfile collector.
func WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, prometheus.DefaultGatherer); err != nil {
		return fmt.Errorf("writing metrics to %s: %w", path, err)
	}
	return nil
}

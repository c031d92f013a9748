package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Operation labels shared by the compute services.
const (
	OperationBestPrices   = "best_prices"
	OperationVendorOrders = "vendor_orders"
	OperationRecipeCosts  = "recipe_costs"
	OperationCatalogLoad  = "catalog_load"
)

// ComputeMetrics records pricing and costing computations.
type ComputeMetrics struct {
	duration      *prometheus.HistogramVec
	success       *prometheus.CounterVec
	failure       *prometheus.CounterVec
	unitFallbacks *prometheus.CounterVec
	unpricedLines prometheus.Counter
}

// NewComputeMetrics registers the compute metrics on the provided registerer.
// A nil registerer yields a no-op recorder.
func NewComputeMetrics(reg prometheus.Registerer) *ComputeMetrics {
	if reg == nil {
		return &ComputeMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "compute_duration_seconds",
		Help:    "Duration of pricing computations in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})
	success := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "compute_success",
		Help: "Successful pricing computations.",
	}, []string{"operation"})
	failure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "compute_failure",
		Help: "Failed pricing computations.",
	}, []string{"operation"})
	unitFallbacks := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "unit_conversion_fallback_total",
		Help: "Unit conversions treated as 1:1 because the pair is unknown.",
	}, []string{"from", "to"})
	unpricedLines := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "recipe_unpriced_lines_total",
		Help: "Recipe ingredient lines costed at zero for lack of a price.",
	})
	reg.MustRegister(duration, success, failure, unitFallbacks, unpricedLines)
	return &ComputeMetrics{
		duration:      duration,
		success:       success,
		failure:       failure,
		unitFallbacks: unitFallbacks,
		unpricedLines: unpricedLines,
	}
}

// ObserveDuration records the duration for the named operation.
func (c *ComputeMetrics) ObserveDuration(operation string, duration time.Duration) {
	if c == nil || c.duration == nil {
		return
	}
	c.duration.WithLabelValues(normalizeLabel(operation)).Observe(duration.Seconds())
}

// Observe records duration plus the success or failure counter in one call.
func (c *ComputeMetrics) Observe(operation string, started time.Time, err error) {
	c.ObserveDuration(operation, time.Since(started))
	if err != nil {
		c.IncFailure(operation)
		return
	}
	c.IncSuccess(operation)
}

func (c *ComputeMetrics) IncSuccess(operation string) {
	if c == nil || c.success == nil {
		return
	}
	c.success.WithLabelValues(normalizeLabel(operation)).Inc()
}

func (c *ComputeMetrics) IncFailure(operation string) {
	if c == nil || c.failure == nil {
		return
	}
	c.failure.WithLabelValues(normalizeLabel(operation)).Inc()
}

// IncUnitFallback counts a conversion that fell back to identity.
func (c *ComputeMetrics) IncUnitFallback(from, to string) {
	if c == nil || c.unitFallbacks == nil {
		return
	}
	c.unitFallbacks.WithLabelValues(normalizeLabel(from), normalizeLabel(to)).Inc()
}

// AddUnpricedLines counts recipe lines materialized as zero-cost placeholders.
func (c *ComputeMetrics) AddUnpricedLines(n int) {
	if c == nil || c.unpricedLines == nil || n <= 0 {
		return
	}
	c.unpricedLines.Add(float64(n))
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}

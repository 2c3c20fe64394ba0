package observability

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aretw0/sluice/pkg/domain"
)

// Collector translates lifecycle events into Prometheus metrics.
type Collector struct {
	passes       prometheus.Counter
	passDuration prometheus.Histogram
	gatedCycles  *prometheus.CounterVec
	fires        *prometheus.CounterVec
	errors       prometheus.Counter
}

// NewCollector builds the metric set and registers it on reg.
// Pass prometheus.DefaultRegisterer for the global registry.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		passes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sluice_passes_total",
			Help: "Total number of ordinary propagation passes",
		}),
		passDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name: "sluice_pass_duration_seconds",
			Help: "Duration of ordinary propagation passes",
		}),
		gatedCycles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sluice_gated_cycles_total",
			Help: "Total number of gated cycles, by dirtiness and trigger",
		}, []string{"dirty", "promoted"}),
		fires: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sluice_binding_fires_total",
			Help: "Total number of binding callback invocations",
		}, []string{"gated"}),
		errors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sluice_binding_errors_total",
			Help: "Total number of recovered binding panics",
		}),
	}
	reg.MustRegister(c.passes, c.passDuration, c.gatedCycles, c.fires, c.errors)
	return c
}

// Hooks returns lifecycle hooks feeding this collector.
func (c *Collector) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnPass: func(e *domain.PassEvent) {
			c.passes.Inc()
			c.passDuration.Observe(e.Duration.Seconds())
		},
		OnGatedCycle: func(e *domain.GatedCycleEvent) {
			c.gatedCycles.WithLabelValues(
				strconv.FormatBool(e.Dirty),
				strconv.FormatBool(e.Promoted),
			).Inc()
		},
		OnBindingFire: func(e *domain.FireEvent) {
			c.fires.WithLabelValues(strconv.FormatBool(e.Gated)).Inc()
		},
		OnError: func(error) {
			c.errors.Inc()
		},
	}
}

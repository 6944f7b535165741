// Package metrics provides Prometheus metrics for module builds and symbol
// resolution.
package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/kingrea/metadspy/spec"
	"github.com/kingrea/metadspy/symbol"
)

const namespace = "metadspy"

// Outcome label values.
const (
	OutcomeOK         = "ok"
	OutcomeResolution = "resolution_error"
	OutcomeValidation = "validation_error"
	OutcomeSchema     = "schema_error"
	OutcomeBuild      = "build_error"
	OutcomeError      = "error"
)

// Collector holds all Prometheus metrics for metadspy.
type Collector struct {
	// Build metrics
	BuildsTotal   *prometheus.CounterVec
	BuildDuration *prometheus.HistogramVec

	// Resolution metrics
	ResolutionsTotal *prometheus.CounterVec
}

// New creates a collector registered with the default registry.
func New() *Collector {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

// NewWithRegistry creates a collector with a custom registry.
func NewWithRegistry(reg prometheus.Registerer) *Collector {
	factory := promauto.With(reg)

	return &Collector{
		BuildsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "builds_total",
				Help:      "Total number of module build attempts",
			},
			[]string{"kind", "outcome"},
		),
		BuildDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "build_duration_seconds",
				Help:      "Module build duration in seconds",
				Buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1},
			},
			[]string{"kind"},
		),
		ResolutionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "resolutions_total",
				Help:      "Total number of symbol reference resolutions",
			},
			[]string{"mode", "outcome"},
		),
	}
}

// BuildFinished implements spec.Observer.
func (c *Collector) BuildFinished(kind spec.Kind, duration time.Duration, err error) {
	c.BuildsTotal.WithLabelValues(string(kind), Outcome(err)).Inc()
	c.BuildDuration.WithLabelValues(string(kind)).Observe(duration.Seconds())
}

// ResolutionHook returns a symbol.Hook counting resolution outcomes.
func (c *Collector) ResolutionHook() symbol.Hook {
	return func(ref symbol.Reference, err error) {
		mode := ref.Mode.String()
		if ref.Attr == "" {
			mode = "invalid"
		}
		c.ResolutionsTotal.WithLabelValues(mode, Outcome(err)).Inc()
	}
}

// Outcome classifies err into an outcome label.
func Outcome(err error) string {
	if err == nil {
		return OutcomeOK
	}
	var (
		resolutionErr *symbol.ResolutionError
		validationErr *spec.ValidationError
		schemaErr     *spec.SchemaError
		buildErr      *spec.BuildError
	)
	switch {
	case errors.As(err, &buildErr):
		return OutcomeBuild
	case errors.As(err, &resolutionErr):
		return OutcomeResolution
	case errors.As(err, &validationErr):
		return OutcomeValidation
	case errors.As(err, &schemaErr):
		return OutcomeSchema
	default:
		return OutcomeError
	}
}

var _ spec.Observer = (*Collector)(nil)

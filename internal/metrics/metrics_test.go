package metrics_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kingrea/metadspy/internal/metrics"
	"github.com/kingrea/metadspy/spec"
	"github.com/kingrea/metadspy/symbol"
)

func TestNewWithRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewWithRegistry(reg)

	require.NotNil(t, m)
	assert.NotNil(t, m.BuildsTotal)
	assert.NotNil(t, m.BuildDuration)
	assert.NotNil(t, m.ResolutionsTotal)
}

func TestBuildFinished(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewWithRegistry(reg)

	m.BuildFinished(spec.KindPredict, 2*time.Millisecond, nil)
	m.BuildFinished(spec.KindPredict, time.Millisecond, nil)
	m.BuildFinished(spec.KindReAct, time.Millisecond, &spec.BuildError{Module: "agent", Kind: spec.KindReAct, Err: errors.New("boom")})

	assert.Equal(t, 2.0, counterValue(t, reg, "metadspy_builds_total", "Predict", metrics.OutcomeOK))
	assert.Equal(t, 1.0, counterValue(t, reg, "metadspy_builds_total", "ReAct", metrics.OutcomeBuild))

	families, err := reg.Gather()
	require.NoError(t, err)
	found := false
	for _, f := range families {
		if f.GetName() == "metadspy_build_duration_seconds" {
			found = true
			require.Len(t, f.GetMetric(), 2)
		}
	}
	assert.True(t, found, "metadspy_build_duration_seconds metric not found")
}

func TestResolutionHook(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewWithRegistry(reg)

	registry := symbol.NewRegistry()
	require.NoError(t, registry.Register("pkg.mod", "tool", "value"))
	resolver := symbol.Observe(symbol.NewRouter(registry, nil), m.ResolutionHook())

	_, err := resolver.Resolve("pkg.mod:tool")
	require.NoError(t, err)
	_, err = resolver.Resolve("pkg.mod:missing")
	require.Error(t, err)
	_, err = resolver.Resolve("/tmp/tools.go::Tool")
	require.Error(t, err)
	_, err = resolver.Resolve("no-delimiter")
	require.Error(t, err)

	assert.Equal(t, 1.0, counterValue(t, reg, "metadspy_resolutions_total", "module", metrics.OutcomeOK))
	assert.Equal(t, 1.0, counterValue(t, reg, "metadspy_resolutions_total", "module", metrics.OutcomeResolution))
	assert.Equal(t, 1.0, counterValue(t, reg, "metadspy_resolutions_total", "file", metrics.OutcomeResolution))
	assert.Equal(t, 1.0, counterValue(t, reg, "metadspy_resolutions_total", "invalid", metrics.OutcomeResolution))
}

func TestOutcome(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, metrics.OutcomeOK},
		{"resolution", fmt.Errorf("wrap: %w", &symbol.ResolutionError{Ref: "a:b", Reason: "missing"}), metrics.OutcomeResolution},
		{"validation", &spec.ValidationError{Field: "config.temperature"}, metrics.OutcomeValidation},
		{"schema", &spec.SchemaError{Field: "type"}, metrics.OutcomeSchema},
		{"build", &spec.BuildError{Kind: spec.KindCodeAct, Err: errors.New("rejected")}, metrics.OutcomeBuild},
		{"other", errors.New("signature missing"), metrics.OutcomeError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, metrics.Outcome(tt.err))
		})
	}
}

func counterValue(t *testing.T, reg *prometheus.Registry, name string, labels ...string) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, f := range families {
		if f.GetName() != name {
			continue
		}
		for _, metric := range f.GetMetric() {
			pairs := metric.GetLabel()
			if len(pairs) != len(labels) {
				continue
			}
			match := true
			for i, pair := range pairs {
				if pair.GetValue() != labels[i] {
					match = false
					break
				}
			}
			if match {
				return metric.GetCounter().GetValue()
			}
		}
	}
	return 0
}

package telemetry

import (
	"context"
	"runtime/pprof"
	"strings"
	"testing"

	"github.com/grafana/pyroscope-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewProfiler_Disabled(t *testing.T) {
	p, err := NewProfiler(ProfilerConfig{Enabled: false}, zap.NewNop())
	require.NoError(t, err)
	assert.False(t, p.Enabled())
	assert.NoError(t, p.Stop())
	assert.NoError(t, p.Stop())
}

func TestNewProfiler_RequiresServerAndName(t *testing.T) {
	_, err := NewProfiler(ProfilerConfig{Enabled: true, ApplicationName: "sale-workflow"}, zap.NewNop())
	assert.ErrorContains(t, err, "server address")

	_, err = NewProfiler(ProfilerConfig{Enabled: true, ServerAddress: "http://localhost:4040"}, zap.NewNop())
	assert.ErrorContains(t, err, "application name")
}

func TestParseProfileTypes(t *testing.T) {
	types, err := ParseProfileTypes([]string{"cpu", " Mutex ", "inuse_space"})
	require.NoError(t, err)
	assert.Equal(t, []pyroscope.ProfileType{
		pyroscope.ProfileCPU,
		pyroscope.ProfileMutexCount,
		pyroscope.ProfileMutexDuration,
		pyroscope.ProfileInuseSpace,
	}, types)

	_, err = ParseProfileTypes([]string{"heap"})
	assert.ErrorContains(t, err, `unknown profile type "heap"`)
}

func TestWithProfilingLabels(t *testing.T) {
	t.Run("attaches labels", func(t *testing.T) {
		var route, method string
		WithProfilingLabels(context.Background(), map[string]string{
			"route":  "/api/v1/finance/journals",
			"method": "GET",
			"empty":  "",
		}, func(ctx context.Context) {
			route, _ = pprof.Label(ctx, "route")
			method, _ = pprof.Label(ctx, "method")
			_, ok := pprof.Label(ctx, "empty")
			assert.False(t, ok)
		})
		assert.Equal(t, "/api/v1/finance/journals", route)
		assert.Equal(t, "GET", method)
	})

	t.Run("runs fn without labels", func(t *testing.T) {
		called := false
		WithProfilingLabels(context.Background(), nil, func(context.Context) { called = true })
		assert.True(t, called)
	})

	t.Run("truncates long values", func(t *testing.T) {
		var got string
		WithProfilingLabels(context.Background(), map[string]string{"route": strings.Repeat("x", 300)},
			func(ctx context.Context) { got, _ = pprof.Label(ctx, "route") })
		assert.Len(t, got, maxLabelValueLength)
	})
}

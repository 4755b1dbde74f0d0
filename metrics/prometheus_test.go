package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountersFollowEvents(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewPrometheus("routecache", reg)
	require.NoError(t, err)

	m.Hit()
	m.Hit()
	m.Miss()
	m.Expire()
	m.Eviction()
	m.Load(true)
	m.Load(false)
	m.Load(false)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Hits))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Misses))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Expired))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Evictions))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Loads.WithLabelValues("ok")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Loads.WithLabelValues("error")))

	n, err := testutil.GatherAndCount(reg, "routecache_cache_hits_total")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestDoubleRegistrationFails(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewPrometheus("routecache", reg)
	require.NoError(t, err)

	_, err = NewPrometheus("routecache", reg)
	assert.Error(t, err)
}

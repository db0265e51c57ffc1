package observability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsCounters(t *testing.T) {
	m := NewMetrics(10)

	m.RecordQuery("ranking")
	m.RecordQuery("ranking")
	m.RecordQuery("statistics")
	m.RecordFailure("fallback")
	m.RecordCacheHit()

	assert.EqualValues(t, 3, m.GetRequestTotal())
	assert.EqualValues(t, 1, m.GetRequestFailed())
	assert.EqualValues(t, 1, m.GetCacheHits())
	assert.Equal(t, []string{"fallback", "ranking", "statistics"}, m.GetAllIntents())
}

func TestMetricsDurationWindow(t *testing.T) {
	m := NewMetrics(3)

	for i := 1; i <= 5; i++ {
		m.RecordDuration("ranking", time.Duration(i)*time.Millisecond)
	}

	snap := m.Snapshot()
	// Window keeps the newest 3 durations: 3ms, 4ms, 5ms.
	assert.Equal(t, 3, snap.DurationCount)
	assert.InDelta(t, 4.0, snap.AvgLatencyMs, 0.01)
	assert.InDelta(t, 4.0, snap.P50LatencyMs, 0.01)
	assert.InDelta(t, 5.0, snap.P95LatencyMs, 0.01)
}

func TestMetricsSnapshotPerIntent(t *testing.T) {
	m := NewMetrics(10)

	m.RecordQuery("parcel_detail")
	m.RecordDuration("parcel_detail", 10*time.Millisecond)
	m.RecordQuery("parcel_detail")
	m.RecordDuration("parcel_detail", 30*time.Millisecond)

	snap := m.Snapshot()
	im := snap.IntentMetrics["parcel_detail"]
	require.NotNil(t, im)
	assert.EqualValues(t, 2, im.ExecutionCount)
	assert.EqualValues(t, 20, im.AverageDuration)
	assert.EqualValues(t, 0, im.ErrorCount)
}

func TestSuccessRate(t *testing.T) {
	m := NewMetrics(10)
	assert.InDelta(t, 100.0, m.Snapshot().SuccessRate(), 0.01)

	m.RecordQuery("ranking")
	m.RecordQuery("fallback")
	m.RecordFailure("fallback")
	assert.InDelta(t, 50.0, m.Snapshot().SuccessRate(), 0.01)
}

func TestMetricsReset(t *testing.T) {
	m := NewMetrics(10)
	m.RecordQuery("ranking")
	m.RecordDuration("ranking", time.Millisecond)

	m.Reset()
	snap := m.Snapshot()
	assert.EqualValues(t, 0, snap.RequestTotal)
	assert.Equal(t, 0, snap.DurationCount)
	assert.Empty(t, snap.IntentMetrics)
}

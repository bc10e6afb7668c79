package observability

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetricsExist(t *testing.T) {
	assert.NotNil(t, RequestDuration)
	assert.NotNil(t, ActiveConnections)
	assert.NotNil(t, CacheHits)
	assert.NotNil(t, ImportRows)
	assert.NotNil(t, ImportRuns)
	assert.NotNil(t, ImportDuration)
	assert.NotNil(t, RegionsCreated)
}

func TestImportRows(t *testing.T) {
	before := testutil.ToFloat64(ImportRows.WithLabelValues("new"))
	ImportRows.WithLabelValues("new").Inc()
	ImportRows.WithLabelValues("new").Inc()
	assert.Equal(t, before+2, testutil.ToFloat64(ImportRows.WithLabelValues("new")))
}

func TestActiveConnections(t *testing.T) {
	before := testutil.ToFloat64(ActiveConnections)
	ActiveConnections.Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(ActiveConnections))
	ActiveConnections.Dec()
	assert.Equal(t, before, testutil.ToFloat64(ActiveConnections))
}

func TestImportDuration(t *testing.T) {
	// Should be able to record observations
	ImportDuration.Observe(0.3)
	ImportDuration.Observe(12)
}

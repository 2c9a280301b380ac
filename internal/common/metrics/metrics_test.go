package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveQuery(t *testing.T) {
	const qt = "metrics_test_category"

	before := testutil.ToFloat64(PricingQueriesTotal.WithLabelValues(qt, StatusSuccess))
	ObserveQuery(qt, StatusSuccess, 0.2, 2048, 10*1024*1024)
	ObserveQuery(qt, StatusFailure, 0.1, 0, 0)

	assert.Equal(t, before+1, testutil.ToFloat64(PricingQueriesTotal.WithLabelValues(qt, StatusSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(PricingQueriesTotal.WithLabelValues(qt, StatusFailure)))
	assert.Equal(t, 2048.0, testutil.ToFloat64(WarehouseBytesProcessed.WithLabelValues(qt)))
	assert.Equal(t, float64(10*1024*1024), testutil.ToFloat64(WarehouseBytesBilled.WithLabelValues(qt)))
}

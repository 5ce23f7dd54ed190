package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveModuleCompletion(t *testing.T) {
	before := testutil.ToFloat64(ModuleCompletions.WithLabelValues("3"))
	ObserveModuleCompletion(3)
	ObserveModuleCompletion(3)
	assert.Equal(t, before+2, testutil.ToFloat64(ModuleCompletions.WithLabelValues("3")))
}

func TestObserveRequest(t *testing.T) {
	before := testutil.ToFloat64(HTTPRequests.WithLabelValues("GET", "/api/game/modules", "200"))
	ObserveRequest("GET", "/api/game/modules", 200, 15*time.Millisecond)
	assert.Equal(t, before+1, testutil.ToFloat64(HTTPRequests.WithLabelValues("GET", "/api/game/modules", "200")))
}

package bootstrap

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	tassert "github.com/stretchr/testify/assert"

	"github.com/AbsaOSS/CertMe/pkg/config"
	"github.com/AbsaOSS/CertMe/pkg/metricsstore"
)

func TestPushMetrics(t *testing.T) {
	assert := tassert.New(t)

	store := metricsstore.DefaultMetricsStore
	store.Start(store.Collectors()...)
	defer store.Stop(store.Collectors()...)

	var pushes int32
	var path string
	gateway := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&pushes, 1)
		path = r.URL.Path
		w.WriteHeader(http.StatusOK)
	}))
	defer gateway.Close()

	cfg := config.Default()
	PushMetrics(cfg, "issue-cert")
	assert.Equal(int32(0), atomic.LoadInt32(&pushes))

	cfg.Metrics.PushgatewayURL = gateway.URL
	PushMetrics(cfg, "issue-cert")
	assert.Equal(int32(1), atomic.LoadInt32(&pushes))
	assert.Equal("/metrics/job/issue-cert", path)

	// A failing gateway does not panic or block.
	gateway.Close()
	PushMetrics(cfg, "issue-cert")
}

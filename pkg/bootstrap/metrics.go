package bootstrap

import (
	"context"
	"time"

	"github.com/AbsaOSS/CertMe/pkg/config"
	"github.com/AbsaOSS/CertMe/pkg/errcode"
	"github.com/AbsaOSS/CertMe/pkg/metricsstore"
)

const metricsPushTimeout = 10 * time.Second

// PushMetrics pushes the metrics of the invocation to the configured Pushgateway under job.
// It does nothing when no Pushgateway is configured. A failed push is logged and otherwise ignored.
func PushMetrics(cfg *config.Config, job string) {
	if cfg.Metrics.PushgatewayURL == "" {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), metricsPushTimeout)
	defer cancel()

	if err := metricsstore.DefaultMetricsStore.Push(ctx, cfg.Metrics.PushgatewayURL, job); err != nil {
		log.Warn().Err(err).Str(errcode.Kind, errcode.GetErrCodeWithMetric(errcode.ErrPushingMetrics)).
			Msgf("Error pushing metrics to %s", cfg.Metrics.PushgatewayURL)
		return
	}
	log.Debug().Msgf("Pushed metrics to %s as job %s", cfg.Metrics.PushgatewayURL, job)
}

// Package main implements the AWS Lambda entry point of CertMe. Each invocation issues the
// certificate named by the event and returns its ARN.
package main

import (
	"context"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/AbsaOSS/CertMe/pkg/bootstrap"
	"github.com/AbsaOSS/CertMe/pkg/config"
	"github.com/AbsaOSS/CertMe/pkg/constants"
	"github.com/AbsaOSS/CertMe/pkg/errcode"
	"github.com/AbsaOSS/CertMe/pkg/logger"
	"github.com/AbsaOSS/CertMe/pkg/metricsstore"
	"github.com/AbsaOSS/CertMe/pkg/trigger"
	"github.com/AbsaOSS/CertMe/pkg/version"
)

var log = logger.New(constants.IssueCertLambdaName)

// newHandler returns the function invoked for every event. Metrics are pushed after each
// invocation since the execution environment may be frozen once it returns.
func newHandler(h *trigger.Handler, cfg *config.Config) func(context.Context, trigger.Event) (string, error) {
	return func(ctx context.Context, event trigger.Event) (string, error) {
		defer bootstrap.PushMetrics(cfg, constants.IssueCertLambdaName)
		return h.Handle(ctx, event)
	}
}

func main() {
	cfg, err := config.Load("", nil)
	if err != nil {
		log.Fatal().Err(err).Str(errcode.Kind, errcode.GetErrCodeWithMetric(errcode.ErrLoadingConfigFile)).
			Msg("Error loading configuration")
	}
	if err := logger.Configure(cfg.Verbosity, cfg.Debug); err != nil {
		log.Fatal().Err(err).Str(errcode.Kind, errcode.GetErrCodeWithMetric(errcode.ErrSettingLogLevel)).
			Msg("Error setting log level")
	}

	metricsstore.DefaultMetricsStore.Start(metricsstore.DefaultMetricsStore.Collectors()...)

	info := version.GetInfo()
	log.Info().Msgf("Starting %s %s; %s; %s", constants.IssueCertLambdaName, info.Version, info.GitCommit, info.BuildDate)

	i, err := bootstrap.NewIssuer(context.Background(), cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Error bootstrapping the issuer")
	}

	lambda.Start(newHandler(trigger.NewHandler(i, cfg.Timeout.Duration), cfg))
}

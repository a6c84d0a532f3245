// Package main implements the issue-cert command, which issues a certificate for a common name
// with Vault and imports it into AWS Certificate Manager.
package main

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/AbsaOSS/CertMe/pkg/bootstrap"
	"github.com/AbsaOSS/CertMe/pkg/certificate"
	"github.com/AbsaOSS/CertMe/pkg/config"
	"github.com/AbsaOSS/CertMe/pkg/constants"
	"github.com/AbsaOSS/CertMe/pkg/errcode"
	"github.com/AbsaOSS/CertMe/pkg/issuer"
	"github.com/AbsaOSS/CertMe/pkg/logger"
	"github.com/AbsaOSS/CertMe/pkg/metricsstore"
)

var log = logger.New(constants.IssueCertCLIName)

const globalUsage = `issue-cert generates an RSA key pair and a certificate signing request for
the given common name, has the Vault PKI sign it and imports the certificate into
AWS Certificate Manager. When an existing certificate ARN is given, the certificate
is reimported in place.

Configuration is read from the YAML file given with --config (or CERTME_CONFIG),
from CERTME_* environment variables and from the flags below.
`

const issueExample = `
Issue a new certificate
# issue-cert svc.example.com

Renew an imported certificate in place
# issue-cert svc.example.com arn:aws:acm:eu-west-1:123456789012:certificate/abc
`

// certIssuer runs the issuance pipeline.
type certIssuer interface {
	GenerateAndImport(ctx context.Context, cn certificate.CommonName, existingARN string) (*issuer.Result, error)
}

// issuerFactory builds the pipeline from the loaded configuration.
type issuerFactory func(ctx context.Context, cfg *config.Config) (certIssuer, error)

func newIssuer(ctx context.Context, cfg *config.Config) (certIssuer, error) {
	return bootstrap.NewIssuer(ctx, cfg)
}

func newRootCmd(stdout io.Writer, stderr io.Writer, factory issuerFactory) *cobra.Command {
	issue := &issueCmd{
		out:        stdout,
		newIssuer:  factory,
		pushMetric: bootstrap.PushMetrics,
	}

	cmd := &cobra.Command{
		Use:          constants.IssueCertCLIName + " <commonName> [existingArn]",
		Short:        "Issue a Vault signed certificate into AWS Certificate Manager",
		Long:         globalUsage,
		Example:      issueExample,
		Args:         validateArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Usage()
			}
			var existingARN string
			if len(args) > 1 {
				existingARN = args[1]
			}
			return issue.run(cmd, certificate.CommonName(args[0]), existingARN)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return invalidArgument(err)
	})

	flags := cmd.PersistentFlags()
	flags.StringVar(&issue.configFile, "config", "", "path of the YAML configuration file ["+constants.EnvVarConfigFile+"]")
	config.AddFlags(flags)

	cmd.AddCommand(
		newConfigCmd(stdout, &issue.configFile),
		newVersionCmd(stdout),
		newSupportCmd(stdout),
	)

	return cmd
}

func validateArgs(cmd *cobra.Command, args []string) error {
	if err := cobra.MaximumNArgs(2)(cmd, args); err != nil {
		return invalidArgument(err)
	}
	return nil
}

func invalidArgument(err error) error {
	log.Error().Err(err).Str(errcode.Kind, errcode.GetErrCodeWithMetric(errcode.ErrInvalidCLIArgument)).
		Msg("Invalid command line argument")
	return err
}

func main() {
	metricsstore.DefaultMetricsStore.Start(metricsstore.DefaultMetricsStore.Collectors()...)

	cmd := newRootCmd(os.Stdout, os.Stderr, newIssuer)
	if err := cmd.Execute(); err != nil {
		log.Debug().Err(err).Msg("issue-cert failed")
		os.Exit(1)
	}
}

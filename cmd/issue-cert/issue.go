package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/AbsaOSS/CertMe/pkg/certificate"
	"github.com/AbsaOSS/CertMe/pkg/config"
	"github.com/AbsaOSS/CertMe/pkg/constants"
	"github.com/AbsaOSS/CertMe/pkg/errcode"
	"github.com/AbsaOSS/CertMe/pkg/issuer"
	"github.com/AbsaOSS/CertMe/pkg/logger"
)

type issueCmd struct {
	out        io.Writer
	configFile string
	newIssuer  issuerFactory
	pushMetric func(cfg *config.Config, job string)
}

func (cmd *issueCmd) run(c *cobra.Command, cn certificate.CommonName, existingARN string) error {
	cfg, err := config.Load(cmd.configFile, c.Flags())
	if err != nil {
		log.Error().Err(err).Str(errcode.Kind, errcode.GetErrCodeWithMetric(errcode.ErrLoadingConfigFile)).
			Msg("Error loading configuration")
		return err
	}

	if err := logger.Configure(cfg.Verbosity, cfg.Debug); err != nil {
		log.Error().Err(err).Str(errcode.Kind, errcode.GetErrCodeWithMetric(errcode.ErrSettingLogLevel)).
			Msg("Error setting log level")
		return err
	}

	ctx, cancel := context.WithTimeout(c.Context(), cfg.Timeout.Duration)
	defer cancel()
	defer cmd.pushMetric(cfg, constants.IssueCertCLIName)

	log.Info().Msgf("Generating a certificate for CN=%s, existing ARN %q", cn, existingARN)

	certIssuer, err := cmd.newIssuer(ctx, cfg)
	if err != nil {
		cmd.printFailure(err)
		return err
	}

	result, err := certIssuer.GenerateAndImport(ctx, cn, existingARN)
	if err != nil {
		cmd.printFailure(err)
		return err
	}

	cmd.printResult(result)
	return nil
}

func (cmd *issueCmd) printResult(result *issuer.Result) {
	fmt.Fprintf(cmd.out, "%s certificate for %s %s\n", color.GreenString("✓"), result.CommonName, result.Mode)

	table := tablewriter.NewWriter(cmd.out)
	table.SetHeader([]string{"Field", "Value"})
	table.SetAutoWrapText(false)
	table.Append([]string{"Common name", result.CommonName.String()})
	table.Append([]string{"ARN", result.ARN})
	table.Append([]string{"Mode", string(result.Mode)})
	if result.OutputParameter != "" {
		table.Append([]string{"Output parameter", result.OutputParameter})
	}
	table.Append([]string{"State", result.State.String()})
	table.Append([]string{"Duration", result.Duration.Round(time.Millisecond).String()})
	table.Append([]string{"Invocation", result.InvocationID})
	table.Render()
}

func (cmd *issueCmd) printFailure(err error) {
	var e *issuer.Error
	if !errors.As(err, &e) {
		fmt.Fprintf(cmd.out, "%s %s\n", color.RedString("✗"), err)
		return
	}

	fmt.Fprintf(cmd.out, "%s %s after %s [%s]\n", color.RedString("✗"), e.Kind, e.State, e.Code)
	if arn, ok := issuer.ImportedARN(err); ok {
		fmt.Fprintf(cmd.out, "%s certificate %s is imported but its material is not persisted\n", color.YellowString("!"), arn)
	}
	fmt.Fprintf(cmd.out, "Run '%s support error-info %s' for details\n", constants.IssueCertCLIName, e.Code)
}

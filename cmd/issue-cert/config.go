package main

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/ghodss/yaml"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/AbsaOSS/CertMe/pkg/config"
)

const configHelp = `
This command prints the configuration resolved from the defaults, the configuration
file, the CERTME_* environment variables and the flags, in the configuration file
format. With --env it lists the environment variables issue-cert reads instead.
`

type configCmd struct {
	out        io.Writer
	configFile *string
	env        bool
}

func newConfigCmd(out io.Writer, configFile *string) *cobra.Command {
	configCmd := &configCmd{
		out:        out,
		configFile: configFile,
	}

	cmd := &cobra.Command{
		Use:   "config",
		Short: "print the resolved configuration",
		Long:  configHelp,
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			return configCmd.run(c.Flags())
		},
	}

	f := cmd.Flags()
	f.BoolVar(&configCmd.env, "env", false, "list the environment variables read by issue-cert")

	return cmd
}

func (cmd *configCmd) run(fs *pflag.FlagSet) error {
	if cmd.env {
		vars := config.EnvVars()
		sort.Strings(vars)
		for _, k := range vars {
			fmt.Fprintf(cmd.out, "%s=\"%s\"\n", k, os.Getenv(k))
		}
		return nil
	}

	cfg, err := config.Load(*cmd.configFile, fs)
	if err != nil {
		return err
	}
	out, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, "Error encoding the configuration")
	}
	fmt.Fprint(cmd.out, string(out))
	return nil
}

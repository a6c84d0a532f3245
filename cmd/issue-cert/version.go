package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/AbsaOSS/CertMe/pkg/version"
)

const versionHelp = `
This command prints the issue-cert version information
`

type versionCmd struct {
	out    io.Writer
	asJSON bool
}

func newVersionCmd(out io.Writer) *cobra.Command {
	versionCmd := &versionCmd{
		out: out,
	}
	cmd := &cobra.Command{
		Use:   "version",
		Short: "issue-cert version",
		Long:  versionHelp,
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return versionCmd.run()
		},
	}

	f := cmd.Flags()
	f.BoolVar(&versionCmd.asJSON, "json", false, "print the version information as JSON")

	return cmd
}

func (cmd *versionCmd) run() error {
	info := version.GetInfo()
	if cmd.asJSON {
		out, err := json.Marshal(info)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.out, string(out))
		return nil
	}
	fmt.Fprintf(cmd.out, "Version: %s; Commit: %s; Date: %s\n", info.Version, info.GitCommit, info.BuildDate)
	return nil
}

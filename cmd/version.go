package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"cinetix-cli/config"
)

func newVersionCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of Cinetix CLI",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s", config.AppName, e.build.Version)
			if e.build.Commit != "none" && e.build.Commit != "" {
				fmt.Fprintf(out, " (%s)", e.build.Commit)
			}
			fmt.Fprintln(out)
		},
	}
}

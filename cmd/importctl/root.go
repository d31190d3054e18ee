package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

type globalOptions struct {
	BaseDir string
	Compact bool
}

func newRootCmd() *cobra.Command {
	var opts globalOptions

	cmd := &cobra.Command{
		Use:           "importctl",
		Short:         "Validate appraisal and roster files offline",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&opts.BaseDir, "base-dir", ".", "directory relative file paths are resolved against")
	cmd.PersistentFlags().BoolVar(&opts.Compact, "compact", false, "print the report on one line")

	cmd.AddCommand(newAppraisalsCmd(&opts))
	cmd.AddCommand(newRosterCmd(&opts))
	cmd.AddCommand(newMigrateCmd())
	return cmd
}

func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

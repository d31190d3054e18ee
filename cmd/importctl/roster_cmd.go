package main

import (
	"fmt"

	"github.com/spf13/cobra"

	rosterapp "github.com/mohammadpnp/appraisal-import/internal/application/roster"
	rosterdomain "github.com/mohammadpnp/appraisal-import/internal/domain/roster"
	"github.com/mohammadpnp/appraisal-import/internal/infrastructure/file"
)

type rosterReport struct {
	Users        []rosterdomain.ParsedUser `json:"users"`
	ValidCount   int                       `json:"valid_count"`
	InvalidCount int                       `json:"invalid_count"`
}

func newRosterCmd(global *globalOptions) *cobra.Command {
	var failOnInvalid bool

	cmd := &cobra.Command{
		Use:   "roster <file>",
		Short: "Parse and validate a team roster without resolving offices or teams",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := file.NewLocalSource(global.BaseDir).ReadRows(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			report := rosterReport{Users: rosterapp.ParseUsers(rows)}
			if len(report.Users) == 0 {
				return rosterapp.ErrNoRows
			}
			for _, u := range report.Users {
				if u.IsValid {
					report.ValidCount++
				} else {
					report.InvalidCount++
				}
			}
			if err := writeReport(cmd.OutOrStdout(), report, global.Compact); err != nil {
				return err
			}
			if failOnInvalid && report.InvalidCount > 0 {
				return fmt.Errorf("%w: %d of %d", errInvalidRows, report.InvalidCount, len(report.Users))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&failOnInvalid, "fail-on-invalid", false, "exit non-zero when any row is invalid")
	return cmd
}

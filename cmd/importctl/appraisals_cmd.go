package main

import (
	"fmt"

	"github.com/spf13/cobra"

	appraisalapp "github.com/mohammadpnp/appraisal-import/internal/application/appraisal"
	"github.com/mohammadpnp/appraisal-import/internal/infrastructure/file"
)

func newAppraisalsCmd(global *globalOptions) *cobra.Command {
	var failOnInvalid bool

	cmd := &cobra.Command{
		Use:   "appraisals <file>",
		Short: "Normalize and validate an appraisal file and print the preview",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := file.NewLocalSource(global.BaseDir).ReadRows(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			preview, err := appraisalapp.NewPreviewAppraisals().Execute(cmd.Context(), appraisalapp.PreviewAppraisalsInput{
				Principal: offlinePrincipal,
				Rows:      rows,
			})
			if err != nil {
				return err
			}
			if err := writeReport(cmd.OutOrStdout(), preview, global.Compact); err != nil {
				return err
			}
			if failOnInvalid && preview.InvalidCount > 0 {
				return fmt.Errorf("%w: %d of %d", errInvalidRows, preview.InvalidCount, len(preview.Results))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&failOnInvalid, "fail-on-invalid", false, "exit non-zero when any row is invalid")
	return cmd
}

package main

import (
	"strings"

	"github.com/spf13/cobra"

	"nimbus/internal/services"
)

func newClassifyCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "classify TEXT...",
		Short: "Classify a single description",
		Long: `Classify a single description of a cloud product. Multiple arguments are
joined with spaces, so quoting is optional.

Invalid input (empty, shorter than input.min_length or longer than
input.max_length) exits non-zero without contacting the remote model. Remote
failures are reported as the Error category.`,
		Example: `  nimbus classify "AWS Lambda ejecuta funciones sin servidor"
  nimbus classify --json Heroku para desplegar aplicaciones`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clf, _, err := ctx.newClassifier()
			if err != nil {
				return err
			}
			reqCtx := services.WithOperation(cmd.Context(), "classify")
			result, err := clf.Classify(reqCtx, strings.Join(args, " "))
			if err != nil {
				return err
			}
			if jsonOutput {
				return writeJSON(cmd, result)
			}
			out := cmd.OutOrStdout()
			writeResult(out, result, shouldColorize(out))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the result as JSON")
	return cmd
}

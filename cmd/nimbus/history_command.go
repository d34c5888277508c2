package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"nimbus/internal/history"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded evaluation runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openHistory()
			if err != nil {
				return err
			}
			defer store.Close()

			runs, err := store.ListRuns(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if jsonOutput {
				if runs == nil {
					runs = []history.Run{}
				}
				return writeJSON(cmd, runs)
			}
			out := cmd.OutOrStdout()
			if len(runs) == 0 {
				fmt.Fprintln(out, "No evaluation runs recorded yet. Run `nimbus eval` to create one.")
				return nil
			}
			rows := make([][]string, 0, len(runs))
			for _, run := range runs {
				rows = append(rows, []string{
					shortRunID(run.ID),
					run.StartedAt.Local().Format(time.DateTime),
					run.Suite,
					run.Model,
					fmt.Sprintf("%d/%d", run.Passed, run.Total),
					formatPercent(run.Accuracy),
					formatConfidence(run.AverageConfidence),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"ID", "Started", "Suite", "Model", "Passed", "Accuracy", "Avg confidence"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignRight},
			))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of runs to list")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output runs as JSON")
	cmd.AddCommand(newHistoryShowCommand(ctx))
	return cmd
}

func newHistoryShowCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "show ID",
		Short: "Show the cases of one evaluation run",
		Long:  "Show the cases of one evaluation run. ID may be any unique prefix of the run ID.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openHistory()
			if err != nil {
				return err
			}
			defer store.Close()

			run, err := store.GetRun(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if jsonOutput {
				return writeJSON(cmd, run)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%-12s %s\n", "Run:", run.ID)
			fmt.Fprintf(out, "%-12s %s\n", "Started:", run.StartedAt.Local().Format(time.DateTime))
			fmt.Fprintf(out, "%-12s %s\n", "Suite:", run.Suite)
			fmt.Fprintf(out, "%-12s %s\n", "Model:", run.Model)
			fmt.Fprintf(out, "%-12s %d/%d (%s)\n", "Passed:", run.Passed, run.Total, formatPercent(run.Accuracy))

			rows := make([][]string, 0, len(run.Outcomes))
			for i, o := range run.Outcomes {
				got := o.Got
				if o.Error != "" {
					got = got + " (" + o.Error + ")"
				}
				rows = append(rows, []string{
					strconv.Itoa(i + 1),
					o.Suite,
					truncateText(o.Text, textPreviewRunes),
					o.Expected,
					got,
					formatConfidence(o.Confidence),
					passMark(o.Passed),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"#", "Suite", "Text", "Expected", "Got", "Confidence", "Result"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the run as JSON")
	return cmd
}

func shortRunID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

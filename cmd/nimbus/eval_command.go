package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"nimbus/internal/evaluation"
	"nimbus/internal/history"
	"nimbus/internal/logging"
)

func newEvalCommand(ctx *commandContext) *cobra.Command {
	var suite string
	var noRecord bool
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "eval",
		Short: "Run the labelled evaluation suites against the remote model",
		Long: `Classify the built-in labelled examples and report accuracy per suite.

Suites: basic (10 well-known products), advanced (5 less obvious products),
edge (5 generic or keyword-only descriptions) and all. Each case is one remote
request. Runs are stored in the history database unless --no-record is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			clf, cfg, err := ctx.newClassifier()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			report, err := evaluation.NewRunner(clf, logger).Run(cmd.Context(), suite)
			if err != nil {
				return err
			}

			run := history.NewRun(report, cfg.LLM.Model)
			if !noRecord {
				run, err = recordRun(cmd.Context(), ctx, logger, run)
				if err != nil {
					return err
				}
			}

			if jsonOutput {
				return writeJSON(cmd, run)
			}
			out := cmd.OutOrStdout()
			writeEvalReport(out, report, shouldColorize(out))
			if run.ID != "" {
				fmt.Fprintf(out, "Recorded run %s\n", run.ID)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&suite, "suite", "s", evaluation.SuiteAll, "Suite to run (basic, advanced, edge, all)")
	cmd.Flags().BoolVar(&noRecord, "no-record", false, "Do not store the run in the history database")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the run as JSON")
	return cmd
}

func recordRun(ctx context.Context, cmdCtx *commandContext, logger *slog.Logger, run history.Run) (history.Run, error) {
	store, err := cmdCtx.openHistory()
	if err != nil {
		logRecordFailure(logger, run, err)
		return history.Run{}, err
	}
	defer store.Close()

	recorded, err := store.RecordRun(ctx, run)
	if err != nil {
		err = fmt.Errorf("record run: %w", err)
		logRecordFailure(logger, run, err)
		return history.Run{}, err
	}
	return recorded, nil
}

func logRecordFailure(logger *slog.Logger, run history.Run, err error) {
	logging.ErrorWithContext(logger, "evaluation run not recorded", "eval_record_failed",
		logging.String("suite", run.Suite),
		logging.Int("cases", run.Total),
		logging.Error(err),
		logging.String(logging.FieldErrorHint, "check paths.data_dir is writable or rerun with --no-record"),
	)
}

func writeEvalReport(out io.Writer, report evaluation.Report, colorize bool) {
	writeSection(out, "Cases", colorize)
	rows := make([][]string, 0, len(report.Outcomes))
	for i, outcome := range report.Outcomes {
		got := colorCategory(outcome.Got, colorize)
		if outcome.Err != "" {
			got = got + " (" + outcome.Err + ")"
		}
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			outcome.Case.Suite,
			truncateText(outcome.Case.Text, textPreviewRunes),
			outcome.Case.Expected.String(),
			got,
			formatConfidence(outcome.Confidence),
			passMark(outcome.Passed),
		})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"#", "Suite", "Text", "Expected", "Got", "Confidence", "Result"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignLeft},
	))
	fmt.Fprintln(out)

	writeSection(out, "Summary", colorize)
	summaries := append([]evaluation.Summary{}, report.Suites...)
	if len(report.Suites) > 1 {
		summaries = append(summaries, report.Overall)
	}
	summaryRows := make([][]string, 0, len(summaries))
	for _, s := range summaries {
		summaryRows = append(summaryRows, []string{
			s.Suite,
			strconv.Itoa(s.Total),
			strconv.Itoa(s.Passed),
			strconv.Itoa(s.Failed),
			strconv.Itoa(s.Errored),
			formatPercent(s.Accuracy),
			formatConfidence(s.AverageConfidence),
		})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"Suite", "Cases", "Passed", "Failed", "Errors", "Accuracy", "Avg confidence"},
		summaryRows,
		[]columnAlignment{alignLeft, alignRight, alignRight, alignRight, alignRight, alignRight, alignRight},
	))

	kind := statusError
	switch report.Verdict() {
	case "passed":
		kind = statusOK
	case "partial":
		kind = statusWarn
	}
	fmt.Fprintln(out, renderStatusLine("Verdict", kind,
		fmt.Sprintf("%s (%s in %s)", report.Verdict(), formatPercent(report.Overall.Accuracy), report.Duration.Round(time.Millisecond)),
		colorize))
}

func passMark(passed bool) string {
	if passed {
		return "pass"
	}
	return "FAIL"
}

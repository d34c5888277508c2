package main

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"nimbus/internal/classifier"
	"nimbus/internal/services"
)

const interactivePrompt = "> "

var exitWords = map[string]struct{}{
	"exit":  {},
	"quit":  {},
	"salir": {},
}

func newInteractiveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "interactive",
		Short: "Classify descriptions typed one per line",
		Long: `Read descriptions from standard input, one per line, and classify each.
Type exit, quit or salir (or send EOF) to leave. This is also what nimbus does
when run without a subcommand.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInteractive(cmd, ctx)
		},
	}
}

func runInteractive(cmd *cobra.Command, ctx *commandContext) error {
	clf, cfg, err := ctx.newClassifier()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	colorize := shouldColorize(out)
	reqCtx := services.WithOperation(cmd.Context(), "interactive")

	writeSection(out, "nimbus interactive", colorize)
	fmt.Fprintf(out, "Model %s. Describe a cloud product (%d-%d characters); type exit to quit.\n",
		cfg.LLM.Model, cfg.Input.MinLength, cfg.Input.MaxLength)
	if !cfg.HasAPIKey() {
		fmt.Fprintln(out, renderStatusLine("API key", statusWarn, "not configured; results will be Error", colorize))
	}

	scanner := bufio.NewScanner(cmd.InOrStdin())
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for {
		fmt.Fprint(out, interactivePrompt)
		if !scanner.Scan() {
			fmt.Fprintln(out)
			break
		}
		if err := reqCtx.Err(); err != nil {
			return err
		}
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if _, ok := exitWords[strings.ToLower(trimmed)]; ok {
			break
		}

		result, err := clf.Classify(reqCtx, line)
		if err != nil {
			var validationErr *classifier.ValidationError
			if errors.As(err, &validationErr) {
				fmt.Fprintln(out, renderStatusLine("Input", statusWarn, validationErr.Reason, colorize))
				continue
			}
			return err
		}
		writeResult(out, result, colorize)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	fmt.Fprintln(out, "Goodbye.")
	return nil
}

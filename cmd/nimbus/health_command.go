package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"nimbus/internal/preflight"
)

func newHealthCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check configuration, directories and remote model availability",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)

			fmt.Fprintln(out, renderStatusLine("Config", statusInfo, ctx.configPath, colorize))
			fmt.Fprintln(out, renderStatusLine("Model", statusInfo, cfg.LLM.Model, colorize))
			fmt.Fprintln(out, renderStatusLine("Endpoint", statusInfo, cfg.LLM.BaseURL, colorize))
			if cfg.HasAPIKey() {
				fmt.Fprintln(out, renderStatusLine("API key", statusOK, "configured", colorize))
			} else {
				fmt.Fprintln(out, renderStatusLine("API key", statusError, "not set (OPENROUTER_API_KEY or llm.api_key)", colorize))
			}

			results := preflight.RunAll(cmd.Context(), cfg, newLLMClient(cfg))
			for _, result := range results {
				kind := statusOK
				if !result.Passed {
					kind = statusError
				}
				fmt.Fprintln(out, renderStatusLine(result.Name, kind, result.Detail, colorize))
			}
			if !preflight.Passed(results) {
				return errors.New("health check failed")
			}
			return nil
		},
	}
}

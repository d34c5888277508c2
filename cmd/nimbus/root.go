package main

import (
	"github.com/spf13/cobra"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

func newRootCommand() *cobra.Command {
	var configFlag string

	ctx := newCommandContext(&configFlag)

	rootCmd := &cobra.Command{
		Use:   "nimbus",
		Short: "Classify cloud service descriptions as IaaS, PaaS, SaaS or FaaS",
		Long: `nimbus sends short descriptions of cloud products to a chat-completion
model and reports which service model (IaaS, PaaS, SaaS or FaaS) they belong to,
with a heuristic confidence score.

Run without a subcommand to start an interactive session.`,
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInteractive(cmd, ctx)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")

	rootCmd.AddCommand(newClassifyCommand(ctx))
	rootCmd.AddCommand(newDemoCommand(ctx))
	rootCmd.AddCommand(newInteractiveCommand(ctx))
	rootCmd.AddCommand(newEvalCommand(ctx))
	rootCmd.AddCommand(newHistoryCommand(ctx))
	rootCmd.AddCommand(newHealthCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd
}

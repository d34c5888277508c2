package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"nimbus/internal/config"
	"nimbus/internal/services"
)

var demoExamples = []string{
	"AWS EC2 proporciona servidores virtuales escalables en la nube",
	"Heroku ofrece una plataforma para desplegar aplicaciones web fácilmente",
	"Salesforce es una aplicación CRM que se accede desde el navegador",
	"AWS Lambda ejecuta funciones sin servidor basadas en eventos",
	"Google Cloud Storage es un servicio de almacenamiento en la nube",
}

const demoCustomExample = "Microsoft Azure proporciona servicios de computación en la nube"

func newDemoCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Classify a handful of well-known products",
		Long: `Classify five well-known products plus one open-ended description and print
the classifier settings in use. Each example costs one remote request.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			clf, cfg, err := ctx.newClassifier()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			reqCtx := services.WithOperation(cmd.Context(), "demo")

			writeSection(out, "Classifier", colorize)
			writeClassifierInfo(out, cfg)
			fmt.Fprintln(out)

			writeSection(out, "Examples", colorize)
			rows := make([][]string, 0, len(demoExamples))
			for i, text := range demoExamples {
				result, err := clf.Classify(reqCtx, text)
				if err != nil {
					return fmt.Errorf("example %d: %w", i+1, err)
				}
				rows = append(rows, []string{
					strconv.Itoa(i + 1),
					truncateText(text, textPreviewRunes),
					colorCategory(result.Category, colorize),
					formatConfidence(result.Confidence),
					result.Method,
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"#", "Text", "Category", "Confidence", "Method"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft, alignRight, alignLeft},
			))
			fmt.Fprintln(out)

			writeSection(out, "Custom example", colorize)
			fmt.Fprintf(out, "%-12s %s\n", "Text:", demoCustomExample)
			result, err := clf.Classify(reqCtx, demoCustomExample)
			if err != nil {
				return err
			}
			writeResult(out, result, colorize)
			return nil
		},
	}
}

func writeClassifierInfo(out io.Writer, cfg *config.Config) {
	fmt.Fprintf(out, "%-12s %s\n", "Model:", cfg.LLM.Model)
	fmt.Fprintf(out, "%-12s %s\n", "Endpoint:", cfg.LLM.BaseURL)
	fmt.Fprintf(out, "%-12s %d\n", "Max tokens:", cfg.LLM.MaxTokens)
	fmt.Fprintf(out, "%-12s %.2f\n", "Temperature:", cfg.LLM.Temperature)
	fmt.Fprintf(out, "%-12s %d-%d characters\n", "Input:", cfg.Input.MinLength, cfg.Input.MaxLength)
	fmt.Fprintf(out, "%-12s %s\n", "API key set:", yesNo(cfg.HasAPIKey()))
}

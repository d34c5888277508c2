package main

import (
	"fmt"
	"io"
	"strings"

	"nimbus/internal/classifier"
)

const textPreviewRunes = 48

func formatConfidence(value float64) string {
	return fmt.Sprintf("%.2f", value)
}

func formatPercent(value float64) string {
	return fmt.Sprintf("%.1f%%", value*100)
}

func truncateText(value string, limit int) string {
	runes := []rune(strings.TrimSpace(value))
	if limit <= 0 || len(runes) <= limit {
		return string(runes)
	}
	if limit <= 3 {
		return string(runes[:limit])
	}
	return string(runes[:limit-3]) + "..."
}

// writeResult prints a single classification with its score table.
func writeResult(w io.Writer, result classifier.Result, colorize bool) {
	fmt.Fprintf(w, "%-12s %s\n", "Category:", colorCategory(result.Category, colorize))
	fmt.Fprintf(w, "%-12s %s\n", "Confidence:", formatConfidence(result.Confidence))
	fmt.Fprintf(w, "%-12s %s\n", "Method:", result.Method)
	fmt.Fprintf(w, "%-12s %s\n", "Normalized:", result.NormalizedText)
	if result.Reply != "" {
		fmt.Fprintf(w, "%-12s %s\n", "Reply:", truncateText(result.Reply, 80))
	}
	switch result.Category {
	case classifier.Error:
		fmt.Fprintln(w, "The remote model could not be reached; see the log for details.")
	case classifier.Undetermined:
		fmt.Fprintln(w, "The model answered but did not name a service model.")
	}

	rows := make([][]string, 0, len(classifier.ServiceModels))
	for _, model := range classifier.ServiceModels {
		rows = append(rows, []string{model.String(), formatConfidence(result.Score(model))})
	}
	fmt.Fprintln(w, renderTable([]string{"Model", "Score"}, rows, []columnAlignment{alignLeft, alignRight}))
}

func writeSection(w io.Writer, title string, colorize bool) {
	for _, line := range renderSectionHeader(title, colorize) {
		fmt.Fprintln(w, line)
	}
}

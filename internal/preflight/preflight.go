package preflight

import (
	"context"

	"nimbus/internal/config"
	"nimbus/internal/services/llm"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes the directory checks followed by the remote model check.
// The remote check is skipped (and reported as failed) when no API key is
// configured so that no request leaves the process.
func RunAll(ctx context.Context, cfg *config.Config, client *llm.Client) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{
		CheckDirectoryAccess("Log directory", cfg.Paths.LogDir),
		CheckDirectoryAccess("Data directory", cfg.Paths.DataDir),
	}
	if !cfg.HasAPIKey() {
		results = append(results, Result{Name: "Remote model", Detail: "API key missing"})
		return results
	}
	results = append(results, CheckLLM(ctx, "Remote model", client))
	return results
}

// Passed reports whether every result passed.
func Passed(results []Result) bool {
	for _, r := range results {
		if !r.Passed {
			return false
		}
	}
	return true
}

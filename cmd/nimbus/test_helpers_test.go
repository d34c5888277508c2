package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/require"

	"nimbus/internal/config"
	"nimbus/internal/evaluation"
	"nimbus/internal/testsupport"
)

type cliTestEnv struct {
	cfg        *config.Config
	llm        *testsupport.FakeLLM
	configPath string
}

func setupCLITestEnv(t *testing.T, reply func(prompt string) string, opts ...testsupport.ConfigOption) *cliTestEnv {
	t.Helper()

	t.Setenv("HOME", t.TempDir())
	for _, key := range []string{
		config.EnvAPIKey,
		config.EnvAPIURL,
		config.EnvModel,
		config.EnvMaxTokens,
		config.EnvTemperature,
		config.EnvMinTextLength,
		config.EnvMaxTextLength,
	} {
		t.Setenv(key, "")
	}

	fake := testsupport.NewFakeLLMFunc(t, reply)
	opts = append([]testsupport.ConfigOption{testsupport.WithBaseURL(fake.URL())}, opts...)
	cfg := testsupport.NewConfig(t, opts...)
	cfg.Logging.Level = "error"

	configPath := filepath.Join(testsupport.BaseDir(cfg), "nimbus.toml")
	writeTestConfig(t, configPath, cfg)

	return &cliTestEnv{cfg: cfg, llm: fake, configPath: configPath}
}

func fixedReply(reply string) func(string) string {
	return func(string) string { return reply }
}

// expectedReply answers every evaluation prompt with the case's expected label.
func expectedReply(t *testing.T) func(string) string {
	t.Helper()
	cases, err := evaluation.Cases(evaluation.SuiteAll)
	require.NoError(t, err, "load cases")
	return func(prompt string) string {
		for _, c := range cases {
			if strings.Contains(prompt, `"`+c.Text+`"`) {
				if c.Expected.IsServiceModel() {
					return c.Expected.String()
				}
				return "I cannot tell from that."
			}
		}
		return "IaaS"
	}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	return runCLIWithInput(t, args, configPath, "")
}

func runCLIWithInput(t *testing.T, args []string, configPath, input string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(input))
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	data, err := toml.Marshal(cfg)
	require.NoError(t, err, "marshal config")
	require.NoError(t, os.WriteFile(path, data, 0o644), "write config")
}

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigInitAndValidate(t *testing.T) {
	env := setupCLITestEnv(t, fixedReply("IaaS"))

	out, _, err := runCLI(t, []string{"config", "validate"}, env.configPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Config path: "+env.configPath)
	assert.Contains(t, out, "Configuration valid")
	assert.Contains(t, out, env.cfg.HistoryDBPath())

	target := filepath.Join(t.TempDir(), "config.toml")
	out, _, err = runCLI(t, []string{"config", "init", "--path", target}, "")
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote sample configuration")
	assert.FileExists(t, target)

	_, _, err = runCLI(t, []string{"config", "init", "--path", target}, "")
	assert.Error(t, err, "init must refuse overwriting without --overwrite")
	_, _, err = runCLI(t, []string{"config", "init", "--path", target, "--overwrite"}, "")
	require.NoError(t, err)

	out, _, err = runCLI(t, []string{"config", "validate"}, target)
	require.NoError(t, err)
	assert.Contains(t, out, "API key:")
	assert.Contains(t, out, "Configuration valid")
}

func TestConfigValidateRejectsBadFile(t *testing.T) {
	env := setupCLITestEnv(t, fixedReply("IaaS"))
	require.NoError(t, os.WriteFile(env.configPath, []byte("[llm]\ntemperature = 9.0\n"), 0o644))

	_, _, err := runCLI(t, []string{"config", "validate"}, env.configPath)
	assert.Error(t, err, "temperature out of range")
}

package main

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nimbus/internal/history"
)

func TestHistoryCommandLimit(t *testing.T) {
	env := setupCLITestEnv(t, expectedReply(t))

	for _, suite := range []string{"edge", "advanced"} {
		_, _, err := runCLI(t, []string{"eval", "-s", suite}, env.configPath)
		require.NoError(t, err, "eval %s", suite)
	}

	out, _, err := runCLI(t, []string{"history", "-n", "1", "--json"}, env.configPath)
	require.NoError(t, err)
	var runs []history.Run
	require.NoError(t, json.Unmarshal([]byte(out), &runs), "decode history %q", out)
	require.Len(t, runs, 1)
	assert.Equal(t, "advanced", runs[0].Suite, "newest run first")

	out, _, err = runCLI(t, []string{"history"}, env.configPath)
	require.NoError(t, err)
	assert.Contains(t, out, "AVG CONFIDENCE")
	assert.Contains(t, out, "edge")
	assert.Contains(t, out, "advanced")
}

func TestHistoryShowUnknownRun(t *testing.T) {
	env := setupCLITestEnv(t, expectedReply(t))

	_, _, err := runCLI(t, []string{"history", "show", "deadbeef"}, env.configPath)
	assert.ErrorIs(t, err, history.ErrRunNotFound)
}

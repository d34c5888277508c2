package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInteractiveCommandLoop(t *testing.T) {
	env := setupCLITestEnv(t, fixedReply("SaaS"))

	input := strings.Join([]string{
		"Salesforce CRM en el navegador",
		"",
		"ab",
		"Slack para comunicación",
		"SALIR",
		"Never classified",
	}, "\n")
	out, _, err := runCLIWithInput(t, []string{"interactive"}, env.configPath, input)
	require.NoError(t, err)
	assert.Contains(t, out, "nimbus interactive")
	assert.Contains(t, out, "Category:    SaaS")
	assert.Contains(t, out, "text must be at least 3 characters")
	assert.Contains(t, out, "Goodbye.")
	assert.Equal(t, 2, env.llm.Requests())
}

func TestRootDefaultsToInteractiveAndStopsOnEOF(t *testing.T) {
	env := setupCLITestEnv(t, fixedReply("FaaS"))

	out, _, err := runCLIWithInput(t, nil, env.configPath, "AWS Lambda functions\n")
	require.NoError(t, err)
	assert.Contains(t, out, "Category:    FaaS")
	assert.Contains(t, out, "Goodbye.")
}

func TestInteractiveExitWords(t *testing.T) {
	for _, word := range []string{"exit", "quit", "salir", "  Quit  "} {
		env := setupCLITestEnv(t, fixedReply("IaaS"))
		out, _, err := runCLIWithInput(t, []string{"interactive"}, env.configPath, word+"\nAWS EC2 servers\n")
		require.NoError(t, err, "interactive with %q", word)
		assert.Contains(t, out, "Goodbye.")
		assert.Zero(t, env.llm.Requests(), "%q must exit before classifying", word)
	}
}

func TestRootVersionFlag(t *testing.T) {
	out, _, err := runCLI(t, []string{"--version"}, "")
	require.NoError(t, err)
	assert.Contains(t, out, "nimbus version "+version)
}

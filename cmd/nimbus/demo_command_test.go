package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDemoCommand(t *testing.T) {
	reply := func(prompt string) string {
		switch {
		case strings.Contains(prompt, "EC2"), strings.Contains(prompt, "Cloud Storage"), strings.Contains(prompt, "Azure"):
			return "IaaS"
		case strings.Contains(prompt, "Heroku"):
			return "PaaS"
		case strings.Contains(prompt, "Salesforce"):
			return "SaaS"
		default:
			return "FaaS"
		}
	}
	env := setupCLITestEnv(t, reply)

	out, _, err := runCLI(t, []string{"demo"}, env.configPath)
	require.NoError(t, err)
	assert.Contains(t, out, "== Classifier ==")
	assert.Contains(t, out, "deepseek/deepseek-chat")
	assert.Contains(t, out, "API key set: yes")
	assert.Contains(t, out, "== Examples ==")
	assert.Contains(t, out, "Heroku")
	assert.Contains(t, out, "== Custom example ==")
	assert.Contains(t, out, demoCustomExample)
	assert.Equal(t, len(demoExamples)+1, env.llm.Requests())
}

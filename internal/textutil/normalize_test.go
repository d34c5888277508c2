package textutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"whitespace only", " \t\n ", ""},
		{"lowercases", "AWS EC2", "aws ec2"},
		{"strips punctuation", "Heroku: deploy apps, fast!", "heroku deploy apps fast"},
		{"collapses whitespace", "  many\t\tspaces \n here ", "many spaces here"},
		{"keeps accented letters", "Aplicación CRM en la NUBE", "aplicación crm en la nube"},
		{"keeps digits", "Office 365", "office 365"},
		{"underscore is punctuation", "cloud_functions", "cloud functions"},
		{"symbols only", "!!! ??? ...", ""},
		{"hyphenated", "serverless-first event-driven", "serverless first event driven"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"AWS Lambda ejecuta funciones sin servidor basadas en eventos",
		"Salesforce es una aplicación CRM que se accede desde el navegador.",
		"  ΟΔΟΣ, ΑΣ_Β  ",
		"İstanbul data-center (tier-3)",
		"tabs\tand\nnewlines\r\n",
		"emoji ☁️ cloud ⚡ functions",
		"1,000 VMs @ $0.05/hr",
	}
	for _, input := range inputs {
		once := Normalize(input)
		assert.Equal(t, once, Normalize(once), "Normalize not idempotent for %q", input)
	}
}

func TestRuneLength(t *testing.T) {
	assert.Equal(t, 4, RuneLength("nube"))
	assert.Equal(t, 2, RuneLength("ñá"))
}

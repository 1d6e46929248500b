package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseMode(t *testing.T) {
	cases := map[string]Mode{
		"prod":        Production,
		" PROD ":      Production,
		"dev":         Development,
		"":            Development,
		"production":  Development,
		"staging":     Development,
		"development": Development,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseMode(in), "ParseMode(%q)", in)
	}
}

func TestModeFiles(t *testing.T) {
	assert.Equal(t, ".dev.yaml", Development.DocumentFile())
	assert.Equal(t, ".prod.yaml", Production.DocumentFile())
	assert.Equal(t, ".dev.env", Development.SecretsFile())
	assert.Equal(t, ".prod.env", Production.SecretsFile())
}

// Unknown and absent signals select exactly the files explicit dev selects.
func TestUnknownModeSelectsDevelopmentFiles(t *testing.T) {
	for _, sig := range []string{"", "qa", "Production"} {
		m := ParseMode(sig)
		assert.Equal(t, Development.DocumentFile(), m.DocumentFile())
		assert.Equal(t, Development.SecretsFile(), m.SecretsFile())
	}
}

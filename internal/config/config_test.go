package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setAzureEnv(t *testing.T) {
	t.Setenv("AZURE_OPENAI_ENDPOINT", "https://example.openai.azure.com")
	t.Setenv("AZURE_OPENAI_KEY", "secret")
	t.Setenv("AZURE_API_VERSION", "2024-02-01")
	t.Setenv("AZURE_OPENAI_DEPLOYMENT_NAME", "gpt-4o-mini")
}

func TestValidatePassesWithFullAzureConfig(t *testing.T) {
	setAzureEnv(t)
	cfg := Load()
	require.NoError(t, cfg.Validate())
}

func TestValidateFailsFastOnMissingCredentials(t *testing.T) {
	setAzureEnv(t)
	t.Setenv("AZURE_OPENAI_KEY", "")
	t.Setenv("AZURE_API_VERSION", "")

	cfg := Load()
	err := cfg.Validate()
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "AZURE_OPENAI_KEY"))
	assert.True(t, strings.Contains(err.Error(), "AZURE_API_VERSION"))
}

func TestValidateSkipsAzureChecksForOtherProviders(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "ollama")
	t.Setenv("AZURE_OPENAI_ENDPOINT", "")
	t.Setenv("AZURE_OPENAI_KEY", "")
	t.Setenv("AZURE_API_VERSION", "")
	t.Setenv("AZURE_OPENAI_DEPLOYMENT_NAME", "")

	cfg := Load()
	assert.NoError(t, cfg.Validate())
}

func TestDefaults(t *testing.T) {
	setAzureEnv(t)
	cfg := Load()

	assert.Equal(t, "8000", cfg.App.Port)
	assert.Equal(t, 2, cfg.Kb.TopK)
	assert.Equal(t, 40, cfg.Session.MaxTurns)
	assert.Equal(t, "azure", cfg.Ai.LLMProvider)
}

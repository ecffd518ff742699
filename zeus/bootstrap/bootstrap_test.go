package bootstrap

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"zeus/zeus/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseConfig() config.Config {
	return config.Config{
		VLMBaseURL:      "http://vlm.invalid/v1",
		VLMModel:        "test-model",
		AnalyzerBackend: "vlm",
		ImageBackend:    "hf",
		ImageModel:      "img-model",
	}
}

func TestNewWithoutOptionalBackends(t *testing.T) {
	app, err := New(context.Background(), baseConfig())
	require.NoError(t, err)
	defer app.Close()

	assert.Equal(t, "inline", app.Health.Storage)
	assert.False(t, app.Health.History)
	assert.Equal(t, "vlm", app.Health.Analyzer)
	assert.Equal(t, "hf", app.Health.Images)
	assert.Nil(t, app.DAO)
	assert.NotNil(t, app.Translator())
	assert.Len(t, app.Agent.Knowledge, 7)
}

func TestNewGeminiNeedsKey(t *testing.T) {
	cfg := baseConfig()
	cfg.AnalyzerBackend = "gemini"
	_, err := New(context.Background(), cfg)
	assert.Error(t, err)
}

func TestNewLoadsKnowledgeFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "zeus.yaml")
	yaml := `fallback_answer: "I'm not sure about that specific information."
knowledge:
  - key: gift cards
    answer: "Gift cards are sold in store."
analysis:
  default_temperature: 0.5
  modes:
    - id: standard
      name: Standard
      max_tokens: 100
      prompt: "Describe the outfit."
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	cfg := baseConfig()
	cfg.KnowledgeFile = path
	app, err := New(context.Background(), cfg)
	require.NoError(t, err)
	require.Len(t, app.Agent.Knowledge, 1)
	assert.Equal(t, "gift cards", app.Agent.Knowledge[0].Key)

	cfg.KnowledgeFile = filepath.Join(dir, "missing.yaml")
	_, err = New(context.Background(), cfg)
	assert.Error(t, err)
}

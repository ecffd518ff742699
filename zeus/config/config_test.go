package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("VLM_BASE_URL", "")
	t.Setenv("VLM_MODEL", "")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "")
	t.Setenv("MINIO_ENDPOINT", "")
	t.Setenv("DB_HOST", "")

	cfg := LoadConfig()

	assert.Equal(t, "https://router.huggingface.co/v1", cfg.VLMBaseURL)
	assert.Equal(t, "Qwen/Qwen2.5-VL-7B-Instruct", cfg.VLMModel)
	assert.Equal(t, 20, cfg.RateLimitPerMinute)
	assert.False(t, cfg.MinIOEnabled())
	assert.False(t, cfg.DBEnabled())
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("VLM_BASE_URL", "http://localhost:9999/v1/")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "5")
	t.Setenv("MINIO_USE_SSL", "true")
	t.Setenv("MINIO_ENDPOINT", "minio:9000")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_NAME", "zeus")

	cfg := LoadConfig()

	assert.Equal(t, "http://localhost:9999/v1", cfg.VLMBaseURL)
	assert.Equal(t, 5, cfg.RateLimitPerMinute)
	assert.True(t, cfg.MinIOUseSSL)
	assert.True(t, cfg.MinIOEnabled())
	assert.True(t, cfg.DBEnabled())
}

func TestGetEnvIntFallsBackOnGarbage(t *testing.T) {
	t.Setenv("ZEUS_TEST_INT", "abc")
	assert.Equal(t, 7, getEnvInt("ZEUS_TEST_INT", 7))
}

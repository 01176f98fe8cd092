package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "http://localhost:8000", cfg.InferenceBaseURL)
	assert.Equal(t, int64(104857600), cfg.MaxUploadSize)
	assert.Equal(t, 10, cfg.MaxPreviewFrames)
	assert.Equal(t, 2*time.Second, cfg.MinScanDelay())
	assert.Equal(t, 120*time.Second, cfg.RequestTimeout())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("INFERENCE_BASE_URL", "http://classifier.internal:8000")
	t.Setenv("MIN_SCAN_MILLIS", "500")
	t.Setenv("MAX_PREVIEW_FRAMES", "4")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "http://classifier.internal:8000", cfg.InferenceBaseURL)
	assert.Equal(t, 500*time.Millisecond, cfg.MinScanDelay())
	assert.Equal(t, 4, cfg.MaxPreviewFrames)
}

func TestLoadRejectsGarbage(t *testing.T) {
	t.Setenv("MAX_UPLOAD_SIZE", "not-a-number")

	_, err := Load()
	assert.Error(t, err)
}

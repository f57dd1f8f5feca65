package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, DefaultUploadDir, cfg.UploadDir)
	assert.Equal(t, int64(DefaultMaxFileSize), cfg.MaxFileSize)
	assert.Equal(t, "pdftoppm", cfg.PdftoppmBin)
	assert.Equal(t, "tesseract", cfg.TesseractBin)
	assert.Equal(t, DefaultOCRLanguages, cfg.OCRLanguages)
	assert.Equal(t, DefaultRenderScale, cfg.RenderScale)
	assert.Equal(t, DefaultMinTextLen, cfg.MinTextLen)
	assert.Equal(t, ProviderMock, cfg.LLMProvider)
	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
}

func validTestConfig(t *testing.T) *Config {
	t.Helper()
	cfg := DefaultConfig()
	cfg.UploadDir = filepath.Join(t.TempDir(), "uploads")
	return cfg
}

func TestValidate(t *testing.T) {
	t.Run("valid config creates upload dir", func(t *testing.T) {
		cfg := validTestConfig(t)
		require.NoError(t, cfg.Validate())
		assert.DirExists(t, cfg.UploadDir)
	})

	t.Run("empty upload dir", func(t *testing.T) {
		cfg := validTestConfig(t)
		cfg.UploadDir = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("non-positive max file size", func(t *testing.T) {
		cfg := validTestConfig(t)
		cfg.MaxFileSize = 0
		assert.Error(t, cfg.Validate())
	})

	t.Run("non-positive render scale", func(t *testing.T) {
		cfg := validTestConfig(t)
		cfg.RenderScale = 0
		assert.Error(t, cfg.Validate())
	})

	t.Run("zero min text length", func(t *testing.T) {
		cfg := validTestConfig(t)
		cfg.MinTextLen = 0
		assert.Error(t, cfg.Validate())
	})

	t.Run("missing ocr binary", func(t *testing.T) {
		cfg := validTestConfig(t)
		cfg.TesseractBin = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("unknown llm provider", func(t *testing.T) {
		cfg := validTestConfig(t)
		cfg.LLMProvider = "cohere"
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid LLM provider")
	})

	t.Run("unknown log level", func(t *testing.T) {
		cfg := validTestConfig(t)
		cfg.LogLevel = "trace"
		assert.Error(t, cfg.Validate())
	})
}

func TestRenderDPI(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 144, cfg.RenderDPI())

	cfg.RenderScale = 3.0
	assert.Equal(t, 216, cfg.RenderDPI())
}

func TestIsDebug(t *testing.T) {
	cfg := DefaultConfig()
	assert.False(t, cfg.IsDebug())

	cfg.LogLevel = "debug"
	assert.True(t, cfg.IsDebug())
}

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// LLM provider constants
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
	ProviderMock   = "mock"

	// Default values
	DefaultUploadDir    = "uploads"
	DefaultLogLevel     = "info"
	DefaultMaxFileSize  = 10 * 1024 * 1024 // 10MB
	DefaultRenderScale  = 2.0
	DefaultOCRLanguages = "kor+eng"
	DefaultMinTextLen   = 10

	// Directory permissions
	DefaultDirPerm = 0o750
)

// Config holds all configuration for the document extraction service
type Config struct {
	// Storage configuration
	UploadDir   string
	MaxFileSize int64 // Maximum uploaded file size in bytes

	// OCR configuration
	PdftoppmBin  string  // binary name or absolute path; defaults to "pdftoppm"
	TesseractBin string  // binary name or absolute path; defaults to "tesseract"
	OCRLanguages string  // tesseract language spec, e.g. "kor+eng"
	RenderScale  float64 // page render scale relative to 72dpi

	// Text acquisition configuration
	MinTextLen int // minimum rune count for a strategy result to be accepted

	// LLM configuration
	LLMProvider   string // "openai", "gemini" or "mock"
	LLMModel      string
	OpenAIBaseURL string

	// Application configuration
	Version  string
	LogLevel string
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		UploadDir:     DefaultUploadDir,
		MaxFileSize:   DefaultMaxFileSize,
		PdftoppmBin:   "pdftoppm",
		TesseractBin:  "tesseract",
		OCRLanguages:  DefaultOCRLanguages,
		RenderScale:   DefaultRenderScale,
		MinTextLen:    DefaultMinTextLen,
		LLMProvider:   ProviderMock,
		LLMModel:      "",
		OpenAIBaseURL: "https://api.openai.com/v1",
		Version:       "1.0.0",
		LogLevel:      DefaultLogLevel,
	}
}

// LoadFromFlags parses command line flags and returns a configuration
func LoadFromFlags() (*Config, error) {
	cfg := DefaultConfig()

	setupViperEnvironment(cfg)
	defineCommandLineFlags(cfg)
	bindFlagsToViper()

	pflag.Parse()

	populateConfigFromViper(cfg)

	if cfg.UploadDir != "" {
		if expandedPath, err := filepath.Abs(cfg.UploadDir); err == nil {
			cfg.UploadDir = expandedPath
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setupViperEnvironment configures viper with environment variables and defaults
func setupViperEnvironment(cfg *Config) {
	viper.SetEnvPrefix("DOCEXTRACT")
	viper.AutomaticEnv()

	viper.SetDefault("uploaddir", cfg.UploadDir)
	viper.SetDefault("maxfilesize", cfg.MaxFileSize)
	viper.SetDefault("pdftoppm", cfg.PdftoppmBin)
	viper.SetDefault("tesseract", cfg.TesseractBin)
	viper.SetDefault("ocrlangs", cfg.OCRLanguages)
	viper.SetDefault("renderscale", cfg.RenderScale)
	viper.SetDefault("mintextlen", cfg.MinTextLen)
	viper.SetDefault("llmprovider", cfg.LLMProvider)
	viper.SetDefault("llmmodel", cfg.LLMModel)
	viper.SetDefault("openaibaseurl", cfg.OpenAIBaseURL)
	viper.SetDefault("loglevel", cfg.LogLevel)
}

// defineCommandLineFlags sets up all command line flags
func defineCommandLineFlags(cfg *Config) {
	pflag.String("uploaddir", cfg.UploadDir, "Directory holding uploaded documents")
	pflag.Int64("maxfilesize", cfg.MaxFileSize, "Maximum uploaded file size in bytes")
	pflag.String("pdftoppm", cfg.PdftoppmBin, "Path to the pdftoppm binary")
	pflag.String("tesseract", cfg.TesseractBin, "Path to the tesseract binary")
	pflag.String("ocrlangs", cfg.OCRLanguages, "Tesseract language spec")
	pflag.Float64("renderscale", cfg.RenderScale, "Page render scale relative to 72dpi")
	pflag.Int("mintextlen", cfg.MinTextLen, "Minimum text length for a strategy result")
	pflag.String("llmprovider", cfg.LLMProvider, "LLM provider: 'openai', 'gemini' or 'mock'")
	pflag.String("llmmodel", cfg.LLMModel, "LLM model override")
	pflag.String("openaibaseurl", cfg.OpenAIBaseURL, "OpenAI-compatible API base URL")
	pflag.String("loglevel", cfg.LogLevel, "Log level (debug, info, warn, error)")
}

// bindFlagsToViper binds command line flags to viper configuration
func bindFlagsToViper() {
	for _, name := range []string{
		"uploaddir", "maxfilesize", "pdftoppm", "tesseract", "ocrlangs",
		"renderscale", "mintextlen", "llmprovider", "llmmodel", "openaibaseurl", "loglevel",
	} {
		_ = viper.BindPFlag(name, pflag.Lookup(name))
	}
}

// populateConfigFromViper fills the config struct with values from viper
func populateConfigFromViper(cfg *Config) {
	cfg.UploadDir = viper.GetString("uploaddir")
	cfg.MaxFileSize = viper.GetInt64("maxfilesize")
	cfg.PdftoppmBin = viper.GetString("pdftoppm")
	cfg.TesseractBin = viper.GetString("tesseract")
	cfg.OCRLanguages = viper.GetString("ocrlangs")
	cfg.RenderScale = viper.GetFloat64("renderscale")
	cfg.MinTextLen = viper.GetInt("mintextlen")
	cfg.LLMProvider = viper.GetString("llmprovider")
	cfg.LLMModel = viper.GetString("llmmodel")
	cfg.OpenAIBaseURL = viper.GetString("openaibaseurl")
	cfg.LogLevel = viper.GetString("loglevel")
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.UploadDir == "" {
		return errors.New("upload directory cannot be empty")
	}

	// Check if the upload directory exists, create if it doesn't
	if _, err := os.Stat(c.UploadDir); os.IsNotExist(err) {
		if err := os.MkdirAll(c.UploadDir, DefaultDirPerm); err != nil {
			return fmt.Errorf("cannot create upload directory %s: %w", c.UploadDir, err)
		}
	} else if err != nil {
		return fmt.Errorf("cannot access upload directory %s: %w", c.UploadDir, err)
	}

	if c.MaxFileSize <= 0 {
		return errors.New("maximum file size must be positive")
	}

	if c.RenderScale <= 0 {
		return errors.New("render scale must be positive")
	}

	if c.MinTextLen < 1 {
		return errors.New("minimum text length must be at least 1")
	}

	if c.PdftoppmBin == "" || c.TesseractBin == "" {
		return errors.New("OCR binary paths cannot be empty")
	}

	if c.OCRLanguages == "" {
		return errors.New("OCR language spec cannot be empty")
	}

	switch c.LLMProvider {
	case ProviderOpenAI, ProviderGemini, ProviderMock:
	default:
		return fmt.Errorf("invalid LLM provider: %s (must be one of: openai, gemini, mock)", c.LLMProvider)
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be one of: debug, info, warn, error)", c.LogLevel)
	}

	return nil
}

// RenderDPI returns the rasterization DPI implied by the render scale
func (c *Config) RenderDPI() int {
	return int(72 * c.RenderScale)
}

// IsDebug returns true if debug logging is enabled
func (c *Config) IsDebug() bool {
	return c.LogLevel == "debug"
}

// String returns a string representation of the configuration
func (c *Config) String() string {
	return fmt.Sprintf("Config{UploadDir: %s, OCRLanguages: %s, RenderScale: %.1f, LLMProvider: %s, LogLevel: %s}",
		c.UploadDir, c.OCRLanguages, c.RenderScale, c.LLMProvider, c.LogLevel)
}

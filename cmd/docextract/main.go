// Command docextract ingests a business document and prints the extracted
// record as JSON. The operation flag selects the document class: bizreg,
// shareholder, finstat, or analyze.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"unicode/utf8"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"github.com/finlens/docextract/internal/config"
	"github.com/finlens/docextract/internal/document"
	"github.com/finlens/docextract/internal/extract"
	"github.com/finlens/docextract/internal/llm"
	"github.com/finlens/docextract/internal/ocr"
	"github.com/finlens/docextract/internal/tables"
	"github.com/finlens/docextract/internal/textract"
)

// minAnalyzableRunes is the minimum document text length for LLM analysis.
// Shorter text means acquisition produced noise rather than content.
const minAnalyzableRunes = 100

func main() {
	filePath := pflag.String("file", "", "Path to the document to process")
	opType := pflag.String("type", "", "Operation: bizreg, shareholder, finstat or analyze")

	_ = godotenv.Load()

	cfg, err := config.LoadFromFlags()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	if *filePath == "" || *opType == "" {
		fmt.Fprintln(os.Stderr, "both --file and --type are required")
		pflag.Usage()
		os.Exit(2)
	}

	if err := run(context.Background(), cfg, logger, *filePath, *opType); err != nil {
		logger.Error("extraction failed", "file", *filePath, "type", *opType, "error", err)
		os.Exit(1)
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger, filePath, opType string) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	store := document.NewStore(cfg.UploadDir, cfg.MaxFileSize)
	handle, err := store.Save(filePath, data)
	if err != nil {
		return fmt.Errorf("ingest input: %w", err)
	}
	path, err := store.Resolve(handle)
	if err != nil {
		return err
	}
	logger.Info("document ingested", "id", handle.ID, "format", handle.Format, "size", handle.Size)

	engine := ocr.NewTesseractEngine(ocr.Config{
		Pdftoppm:  cfg.PdftoppmBin,
		Tesseract: cfg.TesseractBin,
		Languages: cfg.OCRLanguages,
	}, logger)
	service := textract.NewService(engine, cfg.MinTextLen, cfg.RenderScale, logger)

	var result any
	switch opType {
	case "bizreg":
		result, err = runBizReg(ctx, service, handle, path)
	case "shareholder":
		result, err = runShareholders(ctx, service, handle, path)
	case "finstat":
		classifier := extract.NewStatementClassifier(engine, cfg.RenderScale, logger)
		result, err = classifier.Classify(ctx, path)
	case "analyze":
		result, err = runAnalysis(ctx, cfg, logger, service, handle, path)
	default:
		return fmt.Errorf("unknown operation %q", opType)
	}
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	fmt.Println(string(out))
	return nil
}

// runBizReg forces OCR on the top half of each page; registration
// certificates are scan-only in practice and carry their fields up top.
func runBizReg(ctx context.Context, service *textract.Service, handle document.Handle, path string) (extract.BusinessRegistrationRecord, error) {
	opts := textract.Options{}
	if handle.Format == document.FormatPDF {
		opts = textract.Options{OCROnly: true, TopHalfOnly: true}
	}
	acquired, err := service.Acquire(ctx, path, handle.Format, opts)
	if err != nil {
		return extract.BusinessRegistrationRecord{}, err
	}

	record := extract.BusinessRegistration(acquired.Text)
	record.CompanyName = extract.CompanyNameFromFilename(handle.Filename)
	return record, nil
}

func runShareholders(ctx context.Context, service *textract.Service, handle document.Handle, path string) (any, error) {
	var grids [][][]string
	if handle.Format == document.FormatPDF {
		detected, err := tables.ExtractFile(path)
		if err != nil {
			slog.Debug("table detection failed", "path", path, "error", err)
		}
		for _, t := range detected {
			grids = append(grids, t.Rows)
		}
	}

	acquired, err := service.Acquire(ctx, path, handle.Format, textract.Options{})
	if err != nil {
		return nil, err
	}

	rows := extract.Shareholders(grids, acquired.Text)
	return map[string]any{"shareholders": rows}, nil
}

func runAnalysis(ctx context.Context, cfg *config.Config, logger *slog.Logger, service *textract.Service, handle document.Handle, path string) (llm.AnalysisResult, error) {
	acquired, err := service.Acquire(ctx, path, handle.Format, textract.Options{})
	if err != nil {
		return llm.AnalysisResult{}, err
	}
	if utf8.RuneCountInString(acquired.Text) < minAnalyzableRunes {
		return llm.AnalysisResult{}, fmt.Errorf("document text too short for analysis (%d runes)",
			utf8.RuneCountInString(acquired.Text))
	}

	analyzer := llm.NewAnalyzer(selectProvider(cfg, logger), logger)
	return analyzer.Analyze(ctx, acquired.Text), nil
}

// selectProvider maps the configured provider name onto a concrete client.
// A provider without credentials degrades to nil, which the analyzer treats
// as the mock path.
func selectProvider(cfg *config.Config, logger *slog.Logger) llm.Provider {
	switch cfg.LLMProvider {
	case config.ProviderOpenAI:
		p := llm.NewOpenAIProvider(llm.OpenAIConfig{
			BaseURL: cfg.OpenAIBaseURL,
			Model:   cfg.LLMModel,
		}, logger)
		if p.Configured() {
			return p
		}
		logger.Warn("openai provider selected but no API key found")
	case config.ProviderGemini:
		p := llm.NewGeminiProvider("", cfg.LLMModel)
		if p.Configured() {
			return p
		}
		logger.Warn("gemini provider selected but no API key found")
	}
	return nil
}

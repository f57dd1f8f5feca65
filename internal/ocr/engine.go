// Package ocr wraps the external rendering and recognition binaries behind a
// small engine interface. Rendering uses pdftoppm, recognition uses tesseract
// with combined Korean+English models; both are invoked through a Runner so
// tests can stub process execution.
package ocr

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// Region restricts recognition to a part of the rendered page.
type Region string

const (
	RegionFull    Region = "full"
	RegionTopHalf Region = "top-half"
)

// RenderOptions control how a page is rasterized before recognition.
type RenderOptions struct {
	Scale  float64 // render scale relative to 72dpi; 0 means 2.0
	Region Region  // "" means RegionFull
}

// Engine renders PDF pages and recognizes text on them.
type Engine interface {
	PageCount(ctx context.Context, path string) (int, error)
	RecognizePage(ctx context.Context, path string, page int, opts RenderOptions) (string, error)
}

// Config holds binary locations and recognition settings.
type Config struct {
	Pdftoppm  string // defaults to "pdftoppm"
	Tesseract string // defaults to "tesseract"
	Languages string // tesseract -l value, defaults to "kor+eng"
}

// TesseractEngine implements Engine using pdftoppm and tesseract.
type TesseractEngine struct {
	cfg    Config
	runner Runner
	logger *slog.Logger
}

// NewTesseractEngine creates an engine with defaults filled in.
func NewTesseractEngine(cfg Config, logger *slog.Logger) *TesseractEngine {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Pdftoppm == "" {
		cfg.Pdftoppm = "pdftoppm"
	}
	if cfg.Tesseract == "" {
		cfg.Tesseract = "tesseract"
	}
	if cfg.Languages == "" {
		cfg.Languages = "kor+eng"
	}
	return &TesseractEngine{cfg: cfg, runner: execRunner{logger: logger}, logger: logger}
}

// PageCount returns the number of pages in the PDF at path.
func (e *TesseractEngine) PageCount(_ context.Context, path string) (int, error) {
	n, err := api.PageCountFile(path)
	if err != nil {
		return 0, fmt.Errorf("page count: %w", err)
	}
	return n, nil
}

// RecognizePage renders one page (1-based) of the PDF and runs OCR on it.
func (e *TesseractEngine) RecognizePage(ctx context.Context, path string, page int, opts RenderOptions) (string, error) {
	img, cleanup, err := e.renderPage(ctx, path, page, opts)
	if cleanup != nil {
		defer cleanup()
	}
	if err != nil {
		return "", err
	}

	txt, err := e.recognizeFile(ctx, img)
	if err != nil {
		return "", err
	}
	return txt, nil
}

// renderPage rasterizes a single page to a PNG in a temp dir and applies the
// region crop when requested. The returned cleanup removes the temp dir.
func (e *TesseractEngine) renderPage(ctx context.Context, path string, page int, opts RenderOptions) (string, func(), error) {
	scale := opts.Scale
	if scale <= 0 {
		scale = 2.0
	}
	dpi := int(72 * scale)

	tmpDir, err := os.MkdirTemp("", "docextract-render-*")
	if err != nil {
		return "", nil, err
	}
	cleanup := func() {
		if rmErr := os.RemoveAll(tmpDir); rmErr != nil {
			e.logger.Warn("failed to remove render temp dir", "dir", tmpDir, "error", rmErr)
		}
	}

	prefix := filepath.Join(tmpDir, "page")
	pageArg := fmt.Sprintf("%d", page)
	// pdftoppm -f N -l N -r <dpi> -png <in.pdf> <tmp/page>
	_, errb, err := e.runner.Run(ctx, e.cfg.Pdftoppm,
		"-f", pageArg, "-l", pageArg, "-r", fmt.Sprintf("%d", dpi), "-png", path, prefix)
	if err != nil {
		return "", cleanup, fmt.Errorf("pdftoppm: %w (%s)", err, truncate(string(errb), 512))
	}

	matches, _ := filepath.Glob(prefix + "-*.png")
	sort.Strings(matches)
	if len(matches) == 0 {
		return "", cleanup, fmt.Errorf("pdftoppm produced no image for page %d", page)
	}
	img := matches[0]

	if opts.Region == RegionTopHalf {
		if err := cropTopHalf(img); err != nil {
			return "", cleanup, fmt.Errorf("crop page %d: %w", page, err)
		}
	}

	return img, cleanup, nil
}

// recognizeFile runs tesseract on an image file and returns the raw text.
func (e *TesseractEngine) recognizeFile(ctx context.Context, imgPath string) (string, error) {
	// tesseract <file> stdout -l <langs>
	out, errb, err := e.runner.Run(ctx, e.cfg.Tesseract, imgPath, "stdout", "-l", e.cfg.Languages)
	if err != nil {
		return "", fmt.Errorf("tesseract: %w (%s)", err, truncate(string(errb), 512))
	}
	return string(out), nil
}

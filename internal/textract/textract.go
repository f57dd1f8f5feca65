// Package textract turns stored documents into plain text. PDF documents go
// through an ordered strategy chain (two native text-layer extractors, then
// OCR); word-processor and plain-text formats have a single direct strategy.
package textract

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/finlens/docextract/internal/document"
	"github.com/finlens/docextract/internal/ocr"
)

// DefaultMinTextLen is the minimum number of meaningful runes a strategy must
// produce before its output is trusted.
const DefaultMinTextLen = 10

// Provenance records which kind of strategy produced the text.
type Provenance string

const (
	SourceNative Provenance = "native"
	SourceOCR    Provenance = "ocr"
)

// ExtractedText is the result of acquiring text from a document.
type ExtractedText struct {
	Text   string     `json:"text"`
	Source Provenance `json:"source"`
	Region ocr.Region `json:"region"`
}

// Options narrow the strategy chain for a single acquisition.
type Options struct {
	// OCROnly skips the native text-layer strategies for PDFs. Scanned
	// certificate documents carry an empty or garbage text layer, so callers
	// that know the document class force OCR directly.
	OCROnly bool
	// TopHalfOnly restricts OCR to the upper half of each page. Implies
	// OCROnly.
	TopHalfOnly bool
}

// Service coordinates extraction strategies over the supported formats.
type Service struct {
	engine     ocr.Engine
	minTextLen int
	scale      float64
	logger     *slog.Logger
}

// NewService creates an extraction service. The engine is required for PDF
// OCR; minTextLen and scale fall back to defaults when zero.
func NewService(engine ocr.Engine, minTextLen int, scale float64, logger *slog.Logger) *Service {
	if minTextLen <= 0 {
		minTextLen = DefaultMinTextLen
	}
	if scale <= 0 {
		scale = 2.0
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{engine: engine, minTextLen: minTextLen, scale: scale, logger: logger}
}

type strategy struct {
	name   string
	source Provenance
	run    func(ctx context.Context) (string, error)
}

// Acquire extracts text from the document at path. Strategies are tried in
// order; the first one whose output meets the minimum length wins. Individual
// strategy failures are logged and swallowed, and only when the whole chain is
// exhausted does Acquire return ErrExtractionFailed.
func (s *Service) Acquire(ctx context.Context, path string, format document.Format, opts Options) (ExtractedText, error) {
	region := ocr.RegionFull
	if opts.TopHalfOnly {
		region = ocr.RegionTopHalf
	}

	chain, err := s.strategies(path, format, opts, region)
	if err != nil {
		return ExtractedText{}, err
	}

	for _, st := range chain {
		text, err := st.run(ctx)
		if err != nil {
			s.logger.Debug("extraction strategy failed",
				"strategy", st.name, "path", path, "error", err)
			continue
		}
		if !s.usable(text) {
			s.logger.Debug("extraction strategy produced too little text",
				"strategy", st.name, "path", path, "runes", utf8.RuneCountInString(text))
			continue
		}
		s.logger.Info("text acquired",
			"strategy", st.name, "path", path, "runes", utf8.RuneCountInString(text))
		return ExtractedText{Text: text, Source: st.source, Region: region}, nil
	}

	return ExtractedText{}, NewStageError("chain", "acquire",
		fmt.Errorf("%w: no strategy produced usable text for %s", ErrExtractionFailed, path))
}

// strategies builds the ordered chain for one acquisition.
func (s *Service) strategies(path string, format document.Format, opts Options, region ocr.Region) ([]strategy, error) {
	switch format {
	case document.FormatPDF:
		var chain []strategy
		if !opts.OCROnly && !opts.TopHalfOnly {
			chain = append(chain,
				strategy{name: "pdf-layer", source: SourceNative, run: func(context.Context) (string, error) {
					return extractPDFLayer(path)
				}},
				strategy{name: "pdf-content", source: SourceNative, run: func(context.Context) (string, error) {
					return extractPDFContent(path)
				}},
			)
		}
		chain = append(chain, strategy{name: "ocr", source: SourceOCR, run: func(ctx context.Context) (string, error) {
			return s.ocrDocument(ctx, path, region)
		}})
		return chain, nil

	case document.FormatDOCX:
		return []strategy{{name: "docx", source: SourceNative, run: func(context.Context) (string, error) {
			return extractDOCX(path)
		}}}, nil

	case document.FormatDOC:
		return []strategy{{name: "doc", source: SourceNative, run: func(context.Context) (string, error) {
			return extractDOC(path)
		}}}, nil

	case document.FormatTXT:
		return []strategy{{name: "txt", source: SourceNative, run: func(context.Context) (string, error) {
			return extractPlainText(path)
		}}}, nil
	}
	return nil, fmt.Errorf("%w: %q", document.ErrUnsupportedFormat, format)
}

// ocrDocument recognizes every page of the PDF and joins the results.
func (s *Service) ocrDocument(ctx context.Context, path string, region ocr.Region) (string, error) {
	pages, err := s.engine.PageCount(ctx, path)
	if err != nil {
		return "", NewStageError("ocr", "page count", err)
	}

	var b strings.Builder
	for page := 1; page <= pages; page++ {
		txt, err := s.engine.RecognizePage(ctx, path, page, ocr.RenderOptions{Scale: s.scale, Region: region})
		if err != nil {
			return "", NewStageError("ocr", fmt.Sprintf("page %d", page), err)
		}
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString(txt)
	}
	return b.String(), nil
}

// PageCount returns the page count of a PDF.
func (s *Service) PageCount(ctx context.Context, path string) (int, error) {
	return s.engine.PageCount(ctx, path)
}

// PageText extracts text from a single PDF page (1-based), trying the native
// text layer first and falling back to OCR. It never applies the usability
// threshold; page classifiers need to see thin pages too.
func (s *Service) PageText(ctx context.Context, path string, page int) (string, Provenance, error) {
	txt, err := extractPDFPageLayer(path, page)
	if err == nil && s.usable(txt) {
		return txt, SourceNative, nil
	}
	if err != nil {
		s.logger.Debug("native page extraction failed", "path", path, "page", page, "error", err)
	}

	txt, err = s.engine.RecognizePage(ctx, path, page, ocr.RenderOptions{Scale: s.scale})
	if err != nil {
		return "", SourceOCR, NewStageError("ocr", fmt.Sprintf("page %d", page), err)
	}
	return txt, SourceOCR, nil
}

func (s *Service) usable(text string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(text)) >= s.minTextLen
}

package extract

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"sort"
	"strings"

	"github.com/finlens/docextract/internal/ocr"
)

// Keyword variants per statement type, checked in fixed order. The generic
// variants catch OCR output that drops the "표준" prefix.
var (
	statementTypeOrder = []StatementType{
		TypeStandardCertificate, TypeBalanceSheet, TypeIncomeStatement, TypeSchedule,
	}
	statementKeywords = map[StatementType][]string{
		TypeStandardCertificate: {"표준재무제표증명", "재무제표증명", "재무제표 증명"},
		TypeBalanceSheet:        {"표준재무상태표", "재무상태표", "재무 상태표"},
		TypeIncomeStatement:     {"표준손익계산서", "손익계산서", "손익 계산서"},
		TypeSchedule:            {"부속명세서", "부속 명세서", "명세서"},
	}
)

var revenueKeywords = []string{"매출액", "매출", "수익", "영업수익"}

// Amount patterns in priority order: comma-grouped with the 원 suffix,
// comma-grouped bare, then a plain digit run.
var amountPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(\d{1,3}(?:,\d{3})*(?:\.\d+)?)\s*원`),
	regexp.MustCompile(`(\d{1,3}(?:,\d{3})*(?:\.\d+)?)`),
	regexp.MustCompile(`(\d{4,})`),
}

const (
	classifyHeadLines = 10
	classifyHeadChars = 500
	minPageTextRunes  = 10
	minAmountDigits   = 4
)

// StatementClassifier assigns a statement type to each page of a
// financial-statement bundle. The bundles are scan-heavy in practice, so
// every page goes straight to OCR without a text-layer attempt.
type StatementClassifier struct {
	engine ocr.Engine
	scale  float64
	logger *slog.Logger
}

// NewStatementClassifier creates a classifier over the given OCR engine.
func NewStatementClassifier(engine ocr.Engine, scale float64, logger *slog.Logger) *StatementClassifier {
	if scale <= 0 {
		scale = 2.0
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &StatementClassifier{engine: engine, scale: scale, logger: logger}
}

// Classify scans the bundle from the last page backward, because the target
// statements conventionally sit near the end. Each type is recorded at its
// first occurrence; the scan halts once a balance sheet and an income
// statement have both been seen. Pages whose OCR fails or matches no keyword
// are recorded as unclassifiable and never satisfy the halt condition.
func (c *StatementClassifier) Classify(ctx context.Context, path string) (StatementResult, error) {
	pageCount, err := c.engine.PageCount(ctx, path)
	if err != nil {
		return StatementResult{}, fmt.Errorf("classify statements: %w", err)
	}

	var result StatementResult
	seen := map[StatementType]bool{}
	foundBalance, foundIncome := false, false

	for page := pageCount; page >= 1; page-- {
		text, err := c.engine.RecognizePage(ctx, path, page, ocr.RenderOptions{Scale: c.scale})
		if err != nil {
			c.logger.Debug("page recognition failed", "path", path, "page", page, "error", err)
			result.Pages = append(result.Pages, StatementPage{Page: page, Type: TypeUnclassifiable})
			continue
		}

		stype := classifyPageText(text)
		if stype == TypeUnclassifiable {
			result.Pages = append(result.Pages, StatementPage{Page: page, Type: TypeUnclassifiable})
			continue
		}
		if seen[stype] {
			continue
		}
		seen[stype] = true

		entry := StatementPage{Page: page, Type: stype}
		if stype == TypeIncomeStatement {
			foundIncome = true
			if revenue, ok := extractRevenue(text); ok {
				entry.Revenue = revenue
				result.Revenue = revenue
			}
		}
		if stype == TypeBalanceSheet {
			foundBalance = true
		}
		result.Pages = append(result.Pages, entry)

		if foundBalance && foundIncome {
			break
		}
	}

	sort.Slice(result.Pages, func(i, j int) bool {
		return result.Pages[i].Page < result.Pages[j].Page
	})
	return result, nil
}

// classifyPageText matches the statement keyword sets against the page head:
// the first 10 lines as one block (raw and with whitespace stripped, so a
// title OCR breaks across lines still matches), then the first 500 characters
// of the full text.
func classifyPageText(text string) StatementType {
	if len([]rune(strings.TrimSpace(text))) < minPageTextRunes {
		return TypeUnclassifiable
	}

	lines := strings.Split(text, "\n")
	if len(lines) > classifyHeadLines {
		lines = lines[:classifyHeadLines]
	}
	headBlock := strings.Join(lines, "\n")
	for _, stype := range statementTypeOrder {
		if matchesAnyVariant(headBlock, statementKeywords[stype]) {
			return stype
		}
	}

	head := []rune(text)
	if len(head) > classifyHeadChars {
		head = head[:classifyHeadChars]
	}
	for _, stype := range statementTypeOrder {
		if matchesAnyVariant(string(head), statementKeywords[stype]) {
			return stype
		}
	}
	return TypeUnclassifiable
}

var whitespaceStripper = strings.NewReplacer(" ", "", "\n", "", "\t", "")

func matchesAnyVariant(s string, variants []string) bool {
	stripped := whitespaceStripper.Replace(s)
	for _, v := range variants {
		if strings.Contains(s, v) || strings.Contains(stripped, whitespaceStripper.Replace(v)) {
			return true
		}
	}
	return false
}

// extractRevenue finds the revenue amount on an income-statement page. A
// keyword line is searched first; when it carries no amount the immediately
// following line is tried, which covers two-column OCR output where the label
// and the figure land on separate lines.
func extractRevenue(text string) (string, bool) {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if !containsAny(line, revenueKeywords) {
			continue
		}
		if amount, ok := amountFromLine(line); ok {
			return amount, true
		}
		if i+1 < len(lines) {
			if amount, ok := amountFromLine(lines[i+1]); ok {
				return amount, true
			}
		}
	}
	return "", false
}

// amountFromLine tries the amount patterns in priority order and accepts the
// first candidate with at least four digits after separators are removed,
// filtering out stray small numbers like column indices. Dots count toward
// the digits because OCR renders thousands separators as either "," or ".".
func amountFromLine(line string) (string, bool) {
	for _, pattern := range amountPatterns {
		for _, m := range pattern.FindAllStringSubmatch(line, -1) {
			digits := strings.ReplaceAll(m[1], ",", "")
			digits = strings.ReplaceAll(digits, ".", "")
			if len(digits) >= minAmountDigits {
				return m[1], true
			}
		}
	}
	return "", false
}

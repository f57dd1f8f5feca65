// Package extract recovers typed fields from the noisy text of Korean
// business filings. Each extractor is a pure function of its input; a field
// that cannot be located is reported as absent, never as an error.
package extract

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	// koreanDatePattern matches "YYYY년 M월 D일" with optional OCR-inserted spaces.
	koreanDatePattern = regexp.MustCompile(`(\d{4})\s*년\s*(\d{1,2})\s*월\s*(\d{1,2})\s*일`)
	// delimitedDatePattern matches YYYY-MM-DD, YYYY.MM.DD and YYYY/MM/DD.
	delimitedDatePattern = regexp.MustCompile(`(\d{4})[.\-/](\d{1,2})[.\-/](\d{1,2})`)
	// numericTokenPattern grabs the first integer or decimal token.
	numericTokenPattern = regexp.MustCompile(`(\d+\.?\d*)`)
)

// NormalizeDate converts a Korean-language or delimiter-separated date to a
// zero-padded YYYY-MM-DD string. The second return is false when no date
// shape is present.
func NormalizeDate(raw string) (string, bool) {
	m := koreanDatePattern.FindStringSubmatch(raw)
	if m == nil {
		m = delimitedDatePattern.FindStringSubmatch(raw)
	}
	if m == nil {
		return "", false
	}

	month, err := strconv.Atoi(m[2])
	if err != nil {
		return "", false
	}
	day, err := strconv.Atoi(m[3])
	if err != nil {
		return "", false
	}
	return fmt.Sprintf("%s-%02d-%02d", m[1], month, day), true
}

// NormalizeRatio cleans a percentage token to a fixed two-decimal string:
// "30%" becomes "30.00", "30.5" becomes "30.50". The second return is false
// when no numeric token is present.
func NormalizeRatio(raw string) (string, bool) {
	cleaned := strings.ReplaceAll(raw, "%", "")
	m := numericTokenPattern.FindStringSubmatch(cleaned)
	if m == nil {
		return "", false
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return "", false
	}
	return strconv.FormatFloat(v, 'f', 2, 64), true
}

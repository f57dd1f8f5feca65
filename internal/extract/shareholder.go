package extract

import (
	"regexp"
	"strings"
)

// Keyword sets for locating roster columns. Ratio matching must exclude the
// share-count labels because "주식수" and "주식비율" share the "주식" substring
// and OCR output routinely presents both columns side by side.
var (
	holderNameKeywords = []string{"주주명", "주주성명", "성명", "이름"}
	shareRatioKeywords = []string{"주식비율", "지분율", "지분비율", "비율"}
	shareCountKeywords = []string{"주식수", "보유주식수", "보유주식"}
)

const headerSearchRows = 3

var (
	cellCleaner          = strings.NewReplacer(" ", "", "(", "", ")", "")
	columnSplitPattern   = regexp.MustCompile(`\s{2,}|\t`)
	ratioFallbackPattern = regexp.MustCompile(`\(?\d+\.\d{1,2}\s*%\)?`)
	nonNamePattern       = regexp.MustCompile(`[^0-9A-Za-z가-힣]`)
)

// Shareholders extracts (name, ratio) pairs from a shareholder ledger. grids
// holds the detected tables in document order (rows of cells; nil when the
// source has no table structure); text is the acquired plain text. Tiers are
// tried in order and the first one producing any rows wins.
func Shareholders(grids [][][]string, text string) []Shareholder {
	if rows := shareholdersFromTables(grids); len(rows) > 0 {
		return rows
	}
	if rows := shareholdersFromColumns(text); len(rows) > 0 {
		return rows
	}
	return shareholdersFromPatterns(text)
}

// shareholdersFromTables reads the first table whose header row names both a
// holder column and a ratio column.
func shareholdersFromTables(grids [][][]string) []Shareholder {
	for _, grid := range grids {
		nameIdx, ratioIdx, headerRow := locateRosterHeader(grid)
		if headerRow < 0 {
			continue
		}

		var out []Shareholder
		for _, row := range grid[headerRow+1:] {
			if nameIdx >= len(row) {
				continue
			}
			name := strings.TrimSpace(row[nameIdx])
			if name == "" || isNumericOnly(name) {
				continue
			}
			ratio := RatioUnparsable
			if ratioIdx < len(row) {
				if normalized, ok := NormalizeRatio(row[ratioIdx]); ok {
					ratio = normalized
				}
			}
			out = append(out, Shareholder{Name: name, Ratio: ratio})
		}
		if len(out) > 0 {
			return out
		}
	}
	return nil
}

// locateRosterHeader scans the leading rows of a grid for a header naming
// both columns. Returns column indices and the header row index, or -1.
func locateRosterHeader(grid [][]string) (nameIdx, ratioIdx, headerRow int) {
	limit := len(grid)
	if limit > headerSearchRows {
		limit = headerSearchRows
	}
	for r := 0; r < limit; r++ {
		nameIdx, ratioIdx = -1, -1
		for c, cell := range grid[r] {
			cleaned := cellCleaner.Replace(cell)
			if nameIdx < 0 && containsAny(cleaned, holderNameKeywords) {
				nameIdx = c
			}
			if ratioIdx < 0 && containsAny(cleaned, shareRatioKeywords) && !containsAny(cleaned, shareCountKeywords) {
				ratioIdx = c
			}
		}
		if nameIdx >= 0 && ratioIdx >= 0 {
			return nameIdx, ratioIdx, r
		}
	}
	return -1, -1, -1
}

// shareholdersFromColumns treats the first line carrying both keywords as a
// header and splits each following line on wide whitespace runs.
func shareholdersFromColumns(text string) []Shareholder {
	lines := strings.Split(text, "\n")

	headerAt := -1
	for i, line := range lines {
		if strings.Contains(line, "주주명") &&
			(strings.Contains(line, "주식비율") || strings.Contains(line, "비율")) {
			headerAt = i
			break
		}
	}
	if headerAt < 0 {
		return nil
	}

	var out []Shareholder
	for _, line := range lines[headerAt+1:] {
		parts := columnSplitPattern.Split(strings.TrimSpace(line), -1)
		if len(parts) < 2 {
			continue
		}
		// Unlike the table tier, only empty names are dropped here: without
		// cell boundaries a numeric-looking token may well be the name.
		name := strings.TrimSpace(parts[0])
		if name == "" {
			continue
		}
		ratio := RatioUnparsable
		if normalized, ok := NormalizeRatio(parts[1]); ok {
			ratio = normalized
		}
		out = append(out, Shareholder{Name: name, Ratio: ratio})
	}
	return out
}

// shareholdersFromPatterns is the last-resort tier for heavily degraded OCR
// text: any line carrying a decimal-percent shape contributes a row, and the
// name is taken from the token position the header established. A ratio with
// no recoverable name is still reported under the sentinel name.
func shareholdersFromPatterns(text string) []Shareholder {
	lines := strings.Split(text, "\n")

	nameTokenIdx := 0
	headerAt := -1
	for i, line := range lines {
		if !containsAny(line, holderNameKeywords) {
			continue
		}
		for t, token := range strings.Fields(line) {
			if containsAny(token, holderNameKeywords) {
				nameTokenIdx = t
				break
			}
		}
		headerAt = i
		break
	}

	var out []Shareholder
	for _, line := range lines[headerAt+1:] {
		match := ratioFallbackPattern.FindString(line)
		if match == "" {
			continue
		}

		name := NameUnrecognized
		tokens := strings.Fields(line)
		if nameTokenIdx < len(tokens) {
			candidate := tokens[nameTokenIdx]
			if cut := strings.IndexAny(candidate, " ("); cut >= 0 {
				candidate = candidate[:cut]
			}
			candidate = nonNamePattern.ReplaceAllString(candidate, "")
			if candidate != "" && !isNumericOnly(candidate) {
				name = candidate
			}
		}

		ratio := RatioUnparsable
		if normalized, ok := NormalizeRatio(match); ok {
			ratio = normalized
		}
		out = append(out, Shareholder{Name: name, Ratio: ratio})
	}
	return out
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

// isNumericOnly reports whether a candidate name is just a number, e.g. a
// row index or a share count bleeding into the name column.
func isNumericOnly(s string) bool {
	stripped := strings.Map(func(r rune) rune {
		switch r {
		case ',', '.', '%', ' ':
			return -1
		}
		return r
	}, s)
	if stripped == "" {
		return false
	}
	for _, r := range stripped {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

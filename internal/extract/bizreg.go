package extract

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

// provinceNames lists the 17 top-level administrative divisions. A registered
// address always starts with one of them, which makes them usable anchors
// when OCR corrupts the field label itself.
var provinceNames = []string{
	"서울특별시", "부산광역시", "대구광역시", "인천광역시", "광주광역시",
	"대전광역시", "울산광역시", "세종특별자치시", "경기도", "강원도",
	"충청북도", "충청남도", "전라북도", "전라남도", "경상북도",
	"경상남도", "제주특별자치도",
}

var (
	openingDateLabelPattern = regexp.MustCompile(`개업연월일\s*[:\-]?\s*(.+)`)
	addressLabelPattern     = regexp.MustCompile(`(본점\s*소재지|본점소재지)\s*[:\-]?\s*(.+)`)
	provinceSweepPattern    = regexp.MustCompile(`(` + strings.Join(provinceNames, "|") + `)[^\n]{10,100}`)
)

// BusinessRegistration scans certificate text for the opening date and the
// registered head-office address. Each field is searched with a keyword tier
// first and a whole-text regex sweep as last resort; a field that no tier can
// locate is simply left absent.
func BusinessRegistration(text string) BusinessRegistrationRecord {
	var rec BusinessRegistrationRecord

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if rec.OpeningDateRaw == "" {
			if raw, ok := findOpeningDate(line); ok {
				rec.OpeningDateRaw = raw
			}
		}
		if rec.HeadOfficeAddress == "" {
			if addr, ok := findAddress(line); ok {
				rec.HeadOfficeAddress = addr
			}
		}
		if rec.OpeningDateRaw != "" && rec.HeadOfficeAddress != "" {
			break
		}
	}

	if rec.OpeningDateRaw == "" {
		rec.OpeningDateRaw = sweepDate(text)
	}
	if rec.HeadOfficeAddress == "" {
		if m := provinceSweepPattern.FindString(text); m != "" {
			rec.HeadOfficeAddress = strings.TrimSpace(m)
		}
	}

	if rec.OpeningDateRaw != "" {
		if normalized, ok := NormalizeDate(rec.OpeningDateRaw); ok {
			rec.OpeningDate = normalized
		}
	}
	return rec
}

// findOpeningDate applies the two keyword tiers to one line.
func findOpeningDate(line string) (string, bool) {
	if strings.Contains(line, "개업연월일") {
		if m := openingDateLabelPattern.FindStringSubmatch(line); m != nil {
			return strings.TrimSpace(m[1]), true
		}
	}
	// OCR often splits the label, e.g. "개업 연월일".
	if strings.Contains(line, "개업") && (strings.Contains(line, "연월일") || strings.Contains(line, "월일")) {
		if m := koreanDatePattern.FindString(line); m != "" {
			return m, true
		}
	}
	return "", false
}

// findAddress applies the label tier and the province-anchor tier to one
// line. The anchor tier only fires on lines still carrying both label
// morphemes, so other address fields on the certificate (사업장소재지 and the
// like) cannot shadow the head-office line.
func findAddress(line string) (string, bool) {
	if strings.Contains(line, "본점소재지") || strings.Contains(line, "본점 소재지") {
		if m := addressLabelPattern.FindStringSubmatch(line); m != nil {
			return strings.TrimSpace(m[2]), true
		}
	}
	if strings.Contains(line, "본점") && strings.Contains(line, "소재지") {
		if m := addressLabelPattern.FindStringSubmatch(line); m != nil {
			return strings.TrimSpace(m[2]), true
		}
		for _, province := range provinceNames {
			if idx := strings.Index(line, province); idx >= 0 {
				return strings.TrimSpace(line[idx:]), true
			}
		}
	}
	return "", false
}

// sweepDate searches the whole text for any date shape. A delimiter-separated
// match is rewritten to the Korean raw form so the record's raw field stays
// uniform for consumers that display it.
func sweepDate(text string) string {
	if m := koreanDatePattern.FindString(text); m != "" {
		return m
	}
	if m := delimitedDatePattern.FindStringSubmatch(text); m != nil {
		month, _ := strconv.Atoi(m[2])
		day, _ := strconv.Atoi(m[3])
		return fmt.Sprintf("%s년 %d월 %d일", m[1], month, day)
	}
	return ""
}

// CompanyNameFromFilename derives the company name from the upload filename.
// A filename like "A_사업자등록증_핀렌즈_2024.pdf" yields "핀렌즈"; without the
// certificate token the stem up to the first underscore is used.
func CompanyNameFromFilename(filename string) string {
	stem := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))

	if idx := strings.Index(stem, "사업자등록증"); idx >= 0 {
		after := stem[idx+len("사업자등록증"):]
		after = strings.TrimPrefix(after, "_")
		if cut := strings.Index(after, "_"); cut >= 0 {
			after = after[:cut]
		}
		return strings.TrimSpace(after)
	}

	name, _, _ := strings.Cut(stem, "_")
	return strings.TrimSpace(name)
}

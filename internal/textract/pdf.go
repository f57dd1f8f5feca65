package textract

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// extractPDFLayer reads the text layer of every page through the pdf reader.
func extractPDFLayer(path string) (string, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", NewStageError("pdf-layer", "open", err)
	}
	defer f.Close()

	var b strings.Builder
	for page := 1; page <= reader.NumPage(); page++ {
		p := reader.Page(page)
		if p.V.IsNull() {
			continue
		}
		txt, err := p.GetPlainText(nil)
		if err != nil {
			return "", NewStageError("pdf-layer", fmt.Sprintf("page %d", page), err)
		}
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString(txt)
	}
	return b.String(), nil
}

// extractPDFPageLayer reads the text layer of one page (1-based).
func extractPDFPageLayer(path string, page int) (string, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", NewStageError("pdf-layer", "open", err)
	}
	defer f.Close()

	if page < 1 || page > reader.NumPage() {
		return "", NewStageError("pdf-layer", "page", fmt.Errorf("page %d out of range (1-%d)", page, reader.NumPage()))
	}
	p := reader.Page(page)
	if p.V.IsNull() {
		return "", nil
	}
	txt, err := p.GetPlainText(nil)
	if err != nil {
		return "", NewStageError("pdf-layer", fmt.Sprintf("page %d", page), err)
	}
	return txt, nil
}

// extractPDFContent dumps the decoded content streams with pdfcpu and scans
// them for text-showing operators. It recovers text from files whose structure
// trips up the layer reader, at the cost of losing layout.
func extractPDFContent(path string) (string, error) {
	tmpDir, err := os.MkdirTemp("", "docextract-content-*")
	if err != nil {
		return "", NewStageError("pdf-content", "temp dir", err)
	}
	defer os.RemoveAll(tmpDir)

	if err := api.ExtractContentFile(path, tmpDir, nil, nil); err != nil {
		return "", NewStageError("pdf-content", "extract content", err)
	}

	matches, err := filepath.Glob(filepath.Join(tmpDir, "*.txt"))
	if err != nil {
		return "", NewStageError("pdf-content", "glob", err)
	}
	sort.Strings(matches)

	var b strings.Builder
	for _, m := range matches {
		data, err := os.ReadFile(m)
		if err != nil {
			continue
		}
		b.WriteString(scanTextOperators(string(data)))
	}
	return b.String(), nil
}

// scanTextOperators pulls string literals off Tj and TJ operator lines.
func scanTextOperators(content string) string {
	var b strings.Builder
	for _, raw := range strings.Split(content, "\n") {
		line := strings.TrimSpace(raw)
		if !strings.HasSuffix(line, "Tj") && !strings.HasSuffix(line, "TJ") {
			continue
		}
		if txt := decodeStringLiterals(line); txt != "" {
			b.WriteString(txt)
			b.WriteString("\n")
		}
	}
	return b.String()
}

// decodeStringLiterals concatenates the contents of parenthesized string
// literals in a content-stream line, resolving the basic escape sequences.
func decodeStringLiterals(line string) string {
	var b strings.Builder
	depth := 0
	escaped := false
	for i := 0; i < len(line); i++ {
		c := line[i]
		if depth == 0 {
			if c == '(' {
				depth = 1
			}
			continue
		}
		if escaped {
			switch c {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case 'r':
				b.WriteByte('\r')
			default:
				b.WriteByte(c)
			}
			escaped = false
			continue
		}
		switch c {
		case '\\':
			escaped = true
		case '(':
			depth++
			b.WriteByte(c)
		case ')':
			depth--
			if depth > 0 {
				b.WriteByte(c)
			}
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

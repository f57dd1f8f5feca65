package textract

import (
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding/korean"
)

// extractPlainText reads a text file as UTF-8, retrying as CP949 when the
// bytes are not valid UTF-8. Domestic filings are still frequently saved in
// the legacy Windows Korean codepage.
func extractPlainText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", NewStageError("txt", "read", err)
	}
	if len(data) == 0 {
		return "", NewStageError("txt", "read", ErrEmptyDocument)
	}

	if utf8.Valid(data) {
		return string(data), nil
	}

	decoded, err := korean.EUCKR.NewDecoder().Bytes(data)
	if err != nil {
		return "", NewStageError("txt", "decode cp949", err)
	}
	return string(decoded), nil
}

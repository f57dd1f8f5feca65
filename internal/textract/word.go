package textract

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf16"

	goword "github.com/VantageDataChat/GoWord"
	"github.com/richardlehane/mscfb"
	"golang.org/x/text/encoding/korean"
)

// extractDOCX reads the document text of an OOXML word file.
func extractDOCX(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", NewStageError("docx", "read", err)
	}
	if len(data) == 0 {
		return "", NewStageError("docx", "read", ErrEmptyDocument)
	}

	doc, err := goword.OpenFromBytes(data)
	if err != nil {
		return "", NewStageError("docx", "open", err)
	}
	return doc.ExtractText(), nil
}

// extractDOC reads the text of a legacy binary word file from its OLE2
// container. The WordDocument stream holds the characters; the piece table in
// the 0Table/1Table stream maps character positions to file offsets.
func extractDOC(path string) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = NewStageError("doc", "parse", fmt.Errorf("panic: %v", r))
		}
	}()

	data, err := os.ReadFile(path)
	if err != nil {
		return "", NewStageError("doc", "read", err)
	}

	container, err := mscfb.New(bytes.NewReader(data))
	if err != nil {
		return "", NewStageError("doc", "open container", err)
	}

	var wordDoc, table0, table1 []byte
	for {
		entry, nextErr := container.Next()
		if nextErr != nil {
			break
		}
		switch entry.Name {
		case "WordDocument":
			wordDoc, _ = io.ReadAll(entry)
		case "0Table":
			table0, _ = io.ReadAll(entry)
		case "1Table":
			table1, _ = io.ReadAll(entry)
		}
	}
	if len(wordDoc) < 12 {
		return "", NewStageError("doc", "parse", fmt.Errorf("missing WordDocument stream"))
	}

	// FIB flag bit 9 selects which table stream carries the piece table.
	flags := binary.LittleEndian.Uint16(wordDoc[0x0A:0x0C])
	tableData := table0
	if (flags>>9)&1 == 1 {
		tableData = table1
	}

	if txt := extractPieceTableText(wordDoc, tableData); txt != "" {
		return txt, nil
	}
	if txt := extractPrintableRuns(wordDoc); txt != "" {
		return txt, nil
	}
	return "", NewStageError("doc", "parse", fmt.Errorf("%w: no readable text", ErrExtractionFailed))
}

// extractPieceTableText walks the CLX piece table and decodes each piece from
// the WordDocument stream. Unicode pieces are UTF-16LE; compressed pieces hold
// single-byte text, decoded as EUC-KR with a raw-byte fallback.
func extractPieceTableText(wordDoc, tableData []byte) string {
	if len(wordDoc) < 0x01AA || len(tableData) == 0 {
		return ""
	}
	fcClx := binary.LittleEndian.Uint32(wordDoc[0x01A2:0x01A6])
	lcbClx := binary.LittleEndian.Uint32(wordDoc[0x01A6:0x01AA])
	if lcbClx == 0 || int64(fcClx)+int64(lcbClx) > int64(len(tableData)) {
		return ""
	}
	clx := tableData[fcClx : fcClx+lcbClx]

	// Skip Prc entries (0x01) until the Pcdt marker (0x02).
	pos := 0
	for pos < len(clx) && clx[pos] == 0x01 {
		if pos+3 > len(clx) {
			return ""
		}
		pos += 3 + int(binary.LittleEndian.Uint16(clx[pos+1:pos+3]))
	}
	if pos+5 > len(clx) || clx[pos] != 0x02 {
		return ""
	}
	pos++
	lcb := int(binary.LittleEndian.Uint32(clx[pos : pos+4]))
	pos += 4
	if lcb < 12 || pos+lcb > len(clx) {
		return ""
	}
	plcPcd := clx[pos : pos+lcb]

	// n+1 character positions followed by n eight-byte piece descriptors.
	n := (lcb - 4) / 12
	if n <= 0 || (n+1)*4+n*8 > lcb {
		return ""
	}

	var b strings.Builder
	for i := 0; i < n; i++ {
		cpStart := binary.LittleEndian.Uint32(plcPcd[i*4 : i*4+4])
		cpEnd := binary.LittleEndian.Uint32(plcPcd[(i+1)*4 : (i+1)*4+4])
		charCount := cpEnd - cpStart
		if charCount == 0 || charCount > 1<<20 {
			continue
		}

		pcd := plcPcd[(n+1)*4+i*8:]
		fcCompressed := binary.LittleEndian.Uint32(pcd[2:6])
		fc := fcCompressed & 0x3FFFFFFF

		if fcCompressed&0x40000000 == 0 {
			// UTF-16LE piece.
			end := int64(fc) + int64(charCount)*2
			if end > int64(len(wordDoc)) {
				continue
			}
			units := make([]uint16, charCount)
			for j := uint32(0); j < charCount; j++ {
				units[j] = binary.LittleEndian.Uint16(wordDoc[fc+j*2 : fc+j*2+2])
			}
			writeDocRunes(&b, utf16.Decode(units))
		} else {
			// Compressed piece, fc counts half-bytes.
			off := fc / 2
			if int64(off)+int64(charCount) > int64(len(wordDoc)) {
				continue
			}
			chunk := wordDoc[off : off+charCount]
			decoded, err := korean.EUCKR.NewDecoder().Bytes(chunk)
			if err != nil {
				decoded = chunk
			}
			writeDocRunes(&b, []rune(string(decoded)))
		}
	}
	return b.String()
}

// writeDocRunes maps word-processor control characters onto plain text.
func writeDocRunes(b *strings.Builder, runes []rune) {
	for _, r := range runes {
		switch {
		case r == 0x0D || r == 0x0B:
			b.WriteByte('\n')
		case r == 0x07:
			b.WriteByte('\t')
		case r >= 0x20 || r == 0x09:
			b.WriteRune(r)
		}
	}
}

// extractPrintableRuns is a last-resort scan for printable sequences when the
// piece table cannot be decoded.
func extractPrintableRuns(wordDoc []byte) string {
	var b strings.Builder
	inRun := false
	for _, c := range wordDoc {
		switch {
		case c == 0x0D || c == 0x0A:
			b.WriteByte('\n')
			inRun = true
		case c >= 0x20 && c < 0x7F || c == 0x09:
			b.WriteByte(c)
			inRun = true
		default:
			if inRun {
				b.WriteByte('\n')
				inRun = false
			}
		}
	}
	return b.String()
}

// Package tables infers table structure from the positioned text elements of
// a PDF text layer. It does not attempt general layout analysis: elements are
// clustered into lines by vertical proximity, lines are split into cells at
// horizontal gaps, and consecutive multi-cell lines are treated as one table.
package tables

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
)

const (
	// lineTolerance is the max vertical distance (pt) between elements on one line.
	lineTolerance = 3.0
	// cellGap is the min horizontal gap (pt) that separates two cells.
	cellGap = 10.0
	// minTableRows is the smallest run of multi-cell lines treated as a table.
	minTableRows = 2
)

// Table is a grid of cell texts found on one page. An empty string marks an
// absent cell.
type Table struct {
	Page int
	Rows [][]string
}

type span struct {
	x    float64
	end  float64
	text string
}

type line struct {
	y     float64
	spans []span
}

// ExtractFile detects tables on every page of the PDF at path, in page order.
func ExtractFile(path string) ([]Table, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	var tables []Table
	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}
		content := page.Content()
		for _, t := range detectTables(content.Text) {
			tables = append(tables, Table{Page: pageNum, Rows: t})
		}
	}
	return tables, nil
}

// detectTables groups positioned text into lines, lines into cell runs, and
// cell runs into normalized grids.
func detectTables(texts []pdf.Text) [][][]string {
	lines := clusterLines(texts)

	var out [][][]string
	var run []line
	flush := func() {
		if len(run) >= minTableRows {
			out = append(out, normalize(run))
		}
		run = nil
	}
	for _, ln := range lines {
		if len(ln.spans) >= 2 {
			run = append(run, ln)
			continue
		}
		flush()
	}
	flush()
	return out
}

// clusterLines merges raw text elements into lines (top to bottom) and spans.
func clusterLines(texts []pdf.Text) []line {
	elems := make([]pdf.Text, len(texts))
	copy(elems, texts)
	// PDF y grows upward; read order is y descending, then x ascending.
	sort.SliceStable(elems, func(i, j int) bool {
		if math.Abs(elems[i].Y-elems[j].Y) > lineTolerance {
			return elems[i].Y > elems[j].Y
		}
		return elems[i].X < elems[j].X
	})

	var lines []line
	for _, t := range elems {
		if strings.TrimSpace(t.S) == "" {
			continue
		}
		if n := len(lines); n > 0 && math.Abs(lines[n-1].y-t.Y) <= lineTolerance {
			lines[n-1].spans = appendSpan(lines[n-1].spans, t)
			continue
		}
		lines = append(lines, line{y: t.Y, spans: appendSpan(nil, t)})
	}
	return lines
}

// appendSpan merges an element into the last span of the line when the
// horizontal gap is small, otherwise starts a new cell span.
func appendSpan(spans []span, t pdf.Text) []span {
	if n := len(spans); n > 0 && t.X-spans[n-1].end < cellGap {
		spans[n-1].text += t.S
		spans[n-1].end = t.X + t.W
		return spans
	}
	return append(spans, span{x: t.X, end: t.X + t.W, text: t.S})
}

// normalize aligns the cell runs of a table onto shared column positions. The
// row with the most cells supplies the column anchors; every other cell is
// assigned to the nearest anchor.
func normalize(rows []line) [][]string {
	var anchors []float64
	for _, r := range rows {
		if len(r.spans) > len(anchors) {
			anchors = anchors[:0]
			for _, s := range r.spans {
				anchors = append(anchors, s.x)
			}
		}
	}

	grid := make([][]string, 0, len(rows))
	for _, r := range rows {
		cells := make([]string, len(anchors))
		for _, s := range r.spans {
			idx := nearestColumn(anchors, s.x)
			if cells[idx] != "" {
				cells[idx] += " "
			}
			cells[idx] += strings.TrimSpace(s.text)
		}
		grid = append(grid, cells)
	}
	return grid
}

func nearestColumn(anchors []float64, x float64) int {
	best := 0
	for i, a := range anchors {
		if math.Abs(x-a) < math.Abs(x-anchors[best]) {
			best = i
		}
	}
	return best
}

package tables

import (
	"testing"

	"github.com/ledongthuc/pdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// el builds a positioned text element. Width defaults to 10pt per call site
// unless the text needs more room.
func el(s string, x, y float64) pdf.Text {
	return pdf.Text{S: s, X: x, Y: y, W: float64(len([]rune(s))) * 10}
}

func TestDetectTables(t *testing.T) {
	t.Run("aligned rows form one grid", func(t *testing.T) {
		texts := []pdf.Text{
			el("성명", 50, 700), el("지분율", 200, 700),
			el("홍길동", 50, 680), el("30.5%", 200, 680),
			el("김철수", 50, 660), el("69.5%", 200, 660),
		}

		got := detectTables(texts)
		require.Len(t, got, 1)
		assert.Equal(t, [][]string{
			{"성명", "지분율"},
			{"홍길동", "30.5%"},
			{"김철수", "69.5%"},
		}, got[0])
	})

	t.Run("single cell lines break the run", func(t *testing.T) {
		texts := []pdf.Text{
			el("주주명부", 50, 720),
			el("성명", 50, 700), el("비율", 200, 700),
			el("홍길동", 50, 680), el("100%", 200, 680),
		}

		got := detectTables(texts)
		require.Len(t, got, 1)
		assert.Len(t, got[0], 2)
	})

	t.Run("adjacent elements merge into one cell", func(t *testing.T) {
		// "주주" and "명" sit 2pt apart, below the cell gap.
		texts := []pdf.Text{
			el("주주", 50, 700), el("명", 72, 700), el("비율", 200, 700),
			el("이몽룡", 50, 680), el("50%", 200, 680),
		}

		got := detectTables(texts)
		require.Len(t, got, 1)
		assert.Equal(t, "주주명", got[0][0][0])
	})

	t.Run("short rows align to the anchor columns", func(t *testing.T) {
		texts := []pdf.Text{
			el("성명", 50, 700), el("주식수", 120, 700), el("비율", 200, 700),
			el("홍길동", 50, 680), el("30%", 200, 680),
		}

		got := detectTables(texts)
		require.Len(t, got, 1)
		assert.Equal(t, [][]string{
			{"성명", "주식수", "비율"},
			{"홍길동", "", "30%"},
		}, got[0])
	})

	t.Run("fewer than two multi-cell rows is no table", func(t *testing.T) {
		texts := []pdf.Text{
			el("성명", 50, 700), el("비율", 200, 700),
			el("각주", 50, 600),
		}
		assert.Empty(t, detectTables(texts))
	})

	t.Run("no elements", func(t *testing.T) {
		assert.Empty(t, detectTables(nil))
	})
}

func TestClusterLines(t *testing.T) {
	// Elements arrive unsorted; clustering restores reading order.
	texts := []pdf.Text{
		el("둘째줄", 50, 680),
		el("오른쪽", 200, 700),
		el("왼쪽", 50, 700),
	}

	lines := clusterLines(texts)
	require.Len(t, lines, 2)
	require.Len(t, lines[0].spans, 2)
	assert.Equal(t, "왼쪽", lines[0].spans[0].text)
	assert.Equal(t, "오른쪽", lines[0].spans[1].text)
	assert.Equal(t, "둘째줄", lines[1].spans[0].text)
}

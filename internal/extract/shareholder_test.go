package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShareholdersTableTier(t *testing.T) {
	t.Run("ratio column wins over share count column", func(t *testing.T) {
		grids := [][][]string{{
			{"성명", "주식수", "지분율"},
			{"홍길동", "1,000", "30.5%"},
			{"김철수", "2,300", "69.5%"},
		}}

		rows := Shareholders(grids, "")
		require.Len(t, rows, 2)
		assert.Equal(t, Shareholder{Name: "홍길동", Ratio: "30.50"}, rows[0])
		assert.Equal(t, Shareholder{Name: "김철수", Ratio: "69.50"}, rows[1])
	})

	t.Run("header found within first three rows", func(t *testing.T) {
		grids := [][][]string{{
			{"주주 명부", ""},
			{"주주명", "주식비율"},
			{"이몽룡", "100%"},
		}}

		rows := Shareholders(grids, "")
		require.Len(t, rows, 1)
		assert.Equal(t, Shareholder{Name: "이몽룡", Ratio: "100.00"}, rows[0])
	})

	t.Run("unparsable ratio keeps the row with sentinel", func(t *testing.T) {
		grids := [][][]string{{
			{"성명", "비율"},
			{"홍길동", "불명"},
		}}

		rows := Shareholders(grids, "")
		require.Len(t, rows, 1)
		assert.Equal(t, RatioUnparsable, rows[0].Ratio)
	})

	t.Run("numeric and empty names are dropped", func(t *testing.T) {
		grids := [][][]string{{
			{"성명", "지분율"},
			{"1,000", "10%"},
			{"", "20%"},
			{"성춘향", "70%"},
		}}

		rows := Shareholders(grids, "")
		require.Len(t, rows, 1)
		assert.Equal(t, "성춘향", rows[0].Name)
	})

	t.Run("first yielding table stops the scan", func(t *testing.T) {
		grids := [][][]string{
			{
				{"주주명", "지분율"},
				{"홍길동", "60%"},
			},
			{
				{"주주명", "지분율"},
				{"다른사람", "40%"},
			},
		}

		rows := Shareholders(grids, "")
		require.Len(t, rows, 1)
		assert.Equal(t, "홍길동", rows[0].Name)
	})

	t.Run("duplicate holders are kept in document order", func(t *testing.T) {
		grids := [][][]string{{
			{"주주명", "비율"},
			{"홍길동", "30%"},
			{"홍길동", "20%"},
		}}

		rows := Shareholders(grids, "")
		require.Len(t, rows, 2)
		assert.Equal(t, "30.00", rows[0].Ratio)
		assert.Equal(t, "20.00", rows[1].Ratio)
	})
}

func TestShareholdersColumnTier(t *testing.T) {
	text := "주주명부\n" +
		"주주명    주식비율    비고\n" +
		"홍길동    30.5%     대표이사\n" +
		"김영희    69.5%\n"

	rows := Shareholders(nil, text)
	require.Len(t, rows, 2)
	assert.Equal(t, Shareholder{Name: "홍길동", Ratio: "30.50"}, rows[0])
	assert.Equal(t, Shareholder{Name: "김영희", Ratio: "69.50"}, rows[1])
}

func TestShareholdersColumnTierKeepsNumericNames(t *testing.T) {
	// Without cell boundaries a numeric token in the name position stays a
	// name; only lines with no name column are skipped.
	text := "주주명    주식비율\n" +
		"12345    34.5%\n" +
		"      \t  65.5%\n" +
		"홍길동    0.0%\n"

	rows := Shareholders(nil, text)
	require.Len(t, rows, 2)
	assert.Equal(t, Shareholder{Name: "12345", Ratio: "34.50"}, rows[0])
	assert.Equal(t, Shareholder{Name: "홍길동", Ratio: "0.00"}, rows[1])
}

func TestShareholdersPatternTier(t *testing.T) {
	t.Run("name taken from header token position", func(t *testing.T) {
		// Single-space columns defeat the column tier; the ratio pattern
		// still anchors each row.
		text := "성명 주식수 지분\n홍길동 1,000 (30.50%)\n김철수 2,300 69.50%\n"

		rows := Shareholders(nil, text)
		require.Len(t, rows, 2)
		assert.Equal(t, Shareholder{Name: "홍길동", Ratio: "30.50"}, rows[0])
		assert.Equal(t, Shareholder{Name: "김철수", Ratio: "69.50"}, rows[1])
	})

	t.Run("unrecoverable name gets the sentinel", func(t *testing.T) {
		text := "성명 지분\n%%% 12.34%\n"

		rows := Shareholders(nil, text)
		require.Len(t, rows, 1)
		assert.Equal(t, NameUnrecognized, rows[0].Name)
		assert.Equal(t, "12.34", rows[0].Ratio)
	})

	t.Run("no rows anywhere yields empty result", func(t *testing.T) {
		rows := Shareholders(nil, "의미 없는 텍스트")
		assert.Empty(t, rows)
	})
}

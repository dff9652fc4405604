package xlsx

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/custodia-labs/sharepoint-reader/internal/core/domain"
)

func workbookBytes(t *testing.T, f *excelize.File) []byte {
	t.Helper()
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	require.NoError(t, f.Close())
	return buf.Bytes()
}

func TestExtractor_Kind(t *testing.T) {
	assert.Equal(t, domain.KindSpreadsheet, New().Kind())
}

func TestExtractor_Extract_NullCells(t *testing.T) {
	f := excelize.NewFile()
	require.NoError(t, f.SetCellValue("Sheet1", "A1", "a"))
	require.NoError(t, f.SetCellValue("Sheet1", "A2", "b"))
	require.NoError(t, f.SetCellValue("Sheet1", "B2", "c"))

	text, err := New().Extract(context.Background(), workbookBytes(t, f))

	require.NoError(t, err)
	assert.Equal(t, "Sheet: Sheet1\na\t\nb\tc\n", text)
}

func TestExtractor_Extract_MultipleSheets(t *testing.T) {
	f := excelize.NewFile()
	require.NoError(t, f.SetCellValue("Sheet1", "A1", "name"))
	require.NoError(t, f.SetCellValue("Sheet1", "B1", 42))
	_, err := f.NewSheet("Data")
	require.NoError(t, err)
	require.NoError(t, f.SetCellValue("Data", "A1", "x"))

	text, err := New().Extract(context.Background(), workbookBytes(t, f))

	require.NoError(t, err)
	assert.Equal(t, "Sheet: Sheet1\nname\t42\nSheet: Data\nx\n", text)
}

func TestExtractor_Extract_OffsetRange(t *testing.T) {
	f := excelize.NewFile()
	require.NoError(t, f.SetCellValue("Sheet1", "B2", "Title"))
	require.NoError(t, f.SetCellValue("Sheet1", "C3", 0))

	text, err := New().Extract(context.Background(), workbookBytes(t, f))

	require.NoError(t, err)
	assert.Equal(t, "Sheet: Sheet1\n\t\t\n\tTitle\t\n\t\t\n", text)
}

func TestExtractor_Extract_FalsyCells(t *testing.T) {
	f := excelize.NewFile()
	require.NoError(t, f.SetCellValue("Sheet1", "A1", 0))
	require.NoError(t, f.SetCellValue("Sheet1", "B1", "0"))
	require.NoError(t, f.SetCellValue("Sheet1", "C1", false))
	require.NoError(t, f.SetCellValue("Sheet1", "D1", 7))

	text, err := New().Extract(context.Background(), workbookBytes(t, f))

	require.NoError(t, err)
	assert.Equal(t, "Sheet: Sheet1\n\t0\t\t7\n", text)
}

func TestExtractor_Extract_EmptySheet(t *testing.T) {
	text, err := New().Extract(context.Background(), workbookBytes(t, excelize.NewFile()))

	require.NoError(t, err)
	assert.Equal(t, "Sheet: Sheet1\n", text)
}

func TestExtractor_Extract_Invalid(t *testing.T) {
	_, err := New().Extract(context.Background(), []byte("not a workbook"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "open workbook")
}

func TestUsedRange(t *testing.T) {
	tests := []struct {
		name     string
		rows     [][]string
		expected [][]string
	}{
		{
			name:     "ragged rows padded",
			rows:     [][]string{{"a"}, {"b", "c"}},
			expected: [][]string{{"a", ""}, {"b", "c"}},
		},
		{
			name:     "leading empty rows and columns kept",
			rows:     [][]string{{}, {"", "", "x"}},
			expected: [][]string{{"", "", ""}, {"", "", "x"}},
		},
		{
			name:     "interior empty row kept",
			rows:     [][]string{{"a"}, {}, {"b"}},
			expected: [][]string{{"a"}, {""}, {"b"}},
		},
		{
			name:     "trailing blank rows dropped",
			rows:     [][]string{{"a"}, {""}},
			expected: [][]string{{"a"}},
		},
		{
			name:     "nothing",
			rows:     nil,
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, usedRange(tt.rows))
		})
	}
}

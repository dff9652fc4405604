// Package xlsx extracts cell values from Office Open XML workbooks.
package xlsx

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/custodia-labs/sharepoint-reader/internal/core/domain"
	"github.com/custodia-labs/sharepoint-reader/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor renders every sheet of a workbook as tab-separated lines.
type Extractor struct{}

// New creates a new spreadsheet extractor.
func New() *Extractor {
	return &Extractor{}
}

// Kind returns the document kind handled by this extractor.
func (e *Extractor) Kind() domain.DocumentKind {
	return domain.KindSpreadsheet
}

// Extract writes, for each sheet in workbook order, a "Sheet: <name>" line
// followed by one line per row from the first row to the last row holding a
// value. Every row spans columns A through the rightmost column in use.
// Cells are joined by tabs; empty cells, numeric zero and FALSE are empty
// strings. Formula cells yield their cached value; formulas are never
// evaluated. A sheet without values contributes only its header line.
func (e *Extractor) Extract(_ context.Context, data []byte) (string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	var b strings.Builder
	for _, sheet := range f.GetSheetList() {
		rows, err := sheetRows(f, sheet)
		if err != nil {
			return "", fmt.Errorf("read sheet %q: %w", sheet, err)
		}

		b.WriteString("Sheet: ")
		b.WriteString(sheet)
		b.WriteByte('\n')
		for _, row := range rows {
			b.WriteString(strings.Join(row, "\t"))
			b.WriteByte('\n')
		}
	}
	return b.String(), nil
}

// sheetRows returns the formatted values of a sheet's used range with falsy
// cells (numeric zero and boolean FALSE) blanked. The range is measured
// before blanking, so a trailing zero still extends it. String cells are
// kept as is; a text "0" survives.
func sheetRows(f *excelize.File, sheet string) ([][]string, error) {
	formatted, err := f.GetRows(sheet)
	if err != nil {
		return nil, err
	}
	rows := usedRange(formatted)
	raw, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}

	for r := range rows {
		if r >= len(raw) {
			break
		}
		for c := range rows[r] {
			if c >= len(raw[r]) || !isZero(raw[r][c]) {
				continue
			}
			axis, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return nil, err
			}
			typ, err := f.GetCellType(sheet, axis)
			if err != nil {
				return nil, err
			}
			switch typ {
			case excelize.CellTypeUnset, excelize.CellTypeNumber, excelize.CellTypeBool:
				rows[r][c] = ""
			}
		}
	}
	return rows, nil
}

func isZero(raw string) bool {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	return err == nil && v == 0
}

// usedRange pads every row to the width of the widest row, always starting
// at the first row and column. Trailing rows without values are dropped; a
// sheet without values has no rows.
func usedRange(rows [][]string) [][]string {
	maxRow, maxCol := -1, -1
	for r, row := range rows {
		for c, cell := range row {
			if cell == "" {
				continue
			}
			maxRow = r
			if c > maxCol {
				maxCol = c
			}
		}
	}

	if maxRow < 0 {
		return nil
	}

	out := make([][]string, 0, maxRow+1)
	for _, row := range rows[:maxRow+1] {
		cells := make([]string, maxCol+1)
		copy(cells, row)
		out = append(out, cells)
	}
	return out
}

package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// workbookSheet serves ranges of a local xlsx workbook, for working without the remote service.
type workbookSheet struct {
	path string
}

func newWorkbookSheet(path string) *workbookSheet {
	return &workbookSheet{path: path}
}

func (w *workbookSheet) GetValues(_ context.Context, readRange string) ([][]string, error) {
	sheet, cells := splitSheetRange(readRange)
	bounds, err := parseCellRange(cells)
	if err != nil {
		return nil, err
	}

	f, err := excelize.OpenFile(w.path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open workbook %s: %w", ErrRemoteIO, w.path, err)
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(f.GetActiveSheetIndex())
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read %s: %w", ErrRemoteIO, sheet, err)
	}
	return bounds.crop(rows), nil
}

// UpdateValues writes rows starting at the top-left corner of writeRange. The workbook and
// sheet are created when missing.
func (w *workbookSheet) UpdateValues(_ context.Context, writeRange string, rows [][]string) error {
	sheet, cells := splitSheetRange(writeRange)
	bounds, err := parseCellRange(cells)
	if err != nil {
		return err
	}
	if err = bounds.fits(rows); err != nil {
		return fmt.Errorf("%w: %w", ErrRemoteIO, err)
	}

	f, err := excelize.OpenFile(w.path)
	if errors.Is(err, fs.ErrNotExist) {
		f, err = excelize.NewFile(), nil
		if mkErr := os.MkdirAll(filepath.Dir(w.path), os.ModePerm); mkErr != nil {
			return fmt.Errorf("%w: %w", ErrRemoteIO, mkErr)
		}
	}
	if err != nil {
		return fmt.Errorf("%w: failed to open workbook %s: %w", ErrRemoteIO, w.path, err)
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(f.GetActiveSheetIndex())
	}
	idx, err := f.GetSheetIndex(sheet)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrRemoteIO, err)
	}
	if idx == -1 {
		if idx, err = f.NewSheet(sheet); err != nil {
			return fmt.Errorf("%w: %w", ErrRemoteIO, err)
		}
		f.SetActiveSheet(idx)
	}

	for i, r := range rows {
		for j, v := range r {
			name, err := excelize.CoordinatesToCellName(bounds.startCol+j, bounds.startRow+i)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrRemoteIO, err)
			}
			if err = f.SetCellStr(sheet, name, v); err != nil {
				return fmt.Errorf("%w: %w", ErrRemoteIO, err)
			}
		}
	}

	if err = f.SaveAs(w.path); err != nil {
		return fmt.Errorf("%w: failed to save workbook %s: %w", ErrRemoteIO, w.path, err)
	}
	return nil
}

// splitSheetRange splits "Sheet!A1:B2" into its sheet name and cell range.
func splitSheetRange(a1 string) (sheet, cells string) {
	i := strings.LastIndex(a1, "!")
	if i < 0 {
		if cellRangeRef.MatchString(a1) {
			return "", a1
		}
		// a bare name refers to the whole sheet
		return unquoteSheetName(a1), ""
	}
	return unquoteSheetName(a1[:i]), a1[i+1:]
}

func unquoteSheetName(name string) string {
	if len(name) >= 2 && name[0] == '\'' && name[len(name)-1] == '\'' {
		return strings.ReplaceAll(name[1:len(name)-1], "''", "'")
	}
	return name
}

// cellRange holds 1-based bounds. A zero end means the range is open in that direction.
type cellRange struct {
	startCol, startRow int
	endCol, endRow     int
}

var (
	a1Ref = regexp.MustCompile(`^([A-Za-z]*)([0-9]*)$`)
	// columns have at most three letters (XFD)
	cellRangeRef = regexp.MustCompile(`^[A-Za-z]{0,3}[0-9]*(:[A-Za-z]{0,3}[0-9]*)?$`)
)

func parseCellRange(s string) (cellRange, error) {
	r := cellRange{startCol: 1, startRow: 1}
	if s == "" {
		return r, nil
	}

	from, to, hasTo := strings.Cut(s, ":")
	col, row, err := parseA1(from)
	if err != nil {
		return r, err
	}
	if col > 0 {
		r.startCol = col
	}
	if row > 0 {
		r.startRow = row
	}
	if !hasTo {
		r.endCol, r.endRow = col, row
		return r, nil
	}

	if r.endCol, r.endRow, err = parseA1(to); err != nil {
		return r, err
	}
	if r.endCol > 0 && r.endCol < r.startCol || r.endRow > 0 && r.endRow < r.startRow {
		return r, configError("range %q ends before it starts", s)
	}
	return r, nil
}

func parseA1(ref string) (col, row int, err error) {
	m := a1Ref.FindStringSubmatch(ref)
	if m == nil || ref == "" {
		return 0, 0, configError("invalid cell reference %q", ref)
	}
	if m[1] != "" {
		if col, err = excelize.ColumnNameToNumber(m[1]); err != nil {
			return 0, 0, configError("invalid cell reference %q: %v", ref, err)
		}
	}
	if m[2] != "" {
		if row, err = strconv.Atoi(m[2]); err != nil || row < 1 {
			return 0, 0, configError("invalid cell reference %q", ref)
		}
	}
	return col, row, nil
}

// crop cuts the range out of full sheet rows, dropping trailing blank cells and rows
// the way the remote service reports them.
func (r cellRange) crop(rows [][]string) [][]string {
	out := make([][]string, 0, len(rows))
	for i := r.startRow - 1; i < len(rows); i++ {
		if r.endRow > 0 && i >= r.endRow {
			break
		}
		src := rows[i]
		cells := make([]string, 0, len(src))
		for j := r.startCol - 1; j < len(src); j++ {
			if r.endCol > 0 && j >= r.endCol {
				break
			}
			cells = append(cells, src[j])
		}
		for len(cells) > 0 && cells[len(cells)-1] == "" {
			cells = cells[:len(cells)-1]
		}
		out = append(out, cells)
	}
	for len(out) > 0 && len(out[len(out)-1]) == 0 {
		out = out[:len(out)-1]
	}
	return out
}

func (r cellRange) fits(rows [][]string) error {
	if r.endRow > 0 && r.startRow+len(rows)-1 > r.endRow {
		return fmt.Errorf("%d rows do not fit in rows %d to %d", len(rows), r.startRow, r.endRow)
	}
	if r.endCol == 0 {
		return nil
	}
	for _, row := range rows {
		if r.startCol+len(row)-1 > r.endCol {
			return fmt.Errorf("%d columns do not fit in columns %d to %d", len(row), r.startCol, r.endCol)
		}
	}
	return nil
}

package tlreport

import (
	"github.com/xuri/excelize/v2"
)

// wraps one worksheet and keeps the first error so call sites stay linear
type sheetWriter struct {
	file  *excelize.File
	sheet string
	err   error
}

func (w *sheetWriter) setCell(col int, row int, value interface{}) {
	if w.err != nil {
		return
	}

	cell, err := excelize.CoordinatesToCellName(col, row)
	if err == nil {
		err = w.file.SetCellValue(w.sheet, cell, value)
	}
	w.err = err
}

func (w *sheetWriter) setRow(row int, values []interface{}) {
	for i, value := range values {
		w.setCell(i+1, row, value)
	}
}

func (w *sheetWriter) merge(from string, to string) {
	if w.err != nil {
		return
	}

	w.err = w.file.MergeCell(w.sheet, from, to)
}

func (w *sheetWriter) style(from string, to string, styleID int) {
	if w.err != nil {
		return
	}

	w.err = w.file.SetCellStyle(w.sheet, from, to, styleID)
}

func (w *sheetWriter) colWidth(from string, to string, width float64) {
	if w.err != nil {
		return
	}

	w.err = w.file.SetColWidth(w.sheet, from, to, width)
}

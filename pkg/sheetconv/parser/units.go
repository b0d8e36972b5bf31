// Package parser converts between sheetconv models and excelize cells,
// styles and sheet geometry.
package parser

import "github.com/xuri/excelize/v2"

// MinColumnWidth is the width, in characters, of a column whose content
// fits in it.
const MinColumnWidth = 10

// ColumnPadding is added to the content length of columns wider than
// MinColumnWidth.
const ColumnPadding = 2

// ColumnWidth converts the longest content length of a column, in
// characters, to a column width. Widths are capped at the workbook limit.
func ColumnWidth(maxLen int) float64 {
	if maxLen <= MinColumnWidth {
		return MinColumnWidth
	}
	w := float64(maxLen + ColumnPadding)
	if w > excelize.MaxColumnWidth {
		return excelize.MaxColumnWidth
	}
	return w
}

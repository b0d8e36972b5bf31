package parser

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ukaji3/sheetconv-go/pkg/sheetconv/models"
	"github.com/xuri/excelize/v2"
)

// Built-in number format IDs used for date cells.
const (
	NumFmtDay      = 14 // m/d/yy
	NumFmtDateTime = 22 // m/d/yy h:mm
)

// DateNumFmt returns the built-in number format for a date value.
func DateNumFmt(v models.Value) int {
	if v.IsWholeDay() {
		return NumFmtDay
	}
	return NumFmtDateTime
}

// ReadRecords reads a sheet as a table: row 1 gives the field names and
// every following row with at least one populated cell becomes a record.
// Cells past the last header column are keyed by the empty string.
func ReadRecords(f *excelize.File, sheetName string) ([]models.Record, error) {
	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}

	props, err := f.GetWorkbookProps()
	if err != nil {
		return nil, err
	}
	r := &cellReader{f: f, sheet: sheetName, dateFmts: make(map[int]bool)}
	if props.Date1904 != nil {
		r.date1904 = *props.Date1904
	}

	headers := make([]string, len(rows[0]))
	for colIdx, raw := range rows[0] {
		if raw == "" {
			continue
		}
		v, err := r.value(colIdx+1, 1, raw)
		if err != nil {
			return nil, err
		}
		headers[colIdx] = v.String()
	}

	var result []models.Record
	for rowIdx, row := range rows[1:] {
		rowNum := rowIdx + 2 // 1-based, below the header row
		var rec models.Record
		hasData := false

		for colIdx, raw := range row {
			if raw == "" {
				continue
			}
			hasData = true

			v, err := r.value(colIdx+1, rowNum, raw)
			if err != nil {
				return nil, err
			}

			key := ""
			if colIdx < len(headers) {
				key = headers[colIdx]
			}
			rec.Set(key, v)
		}

		if hasData {
			result = append(result, rec)
		}
	}

	return result, nil
}

// cellReader types raw cell text, caching which styles carry date formats.
type cellReader struct {
	f        *excelize.File
	sheet    string
	dateFmts map[int]bool
	date1904 bool
}

// value converts the raw text of the cell at (col, row) to a typed value.
func (r *cellReader) value(col, row int, raw string) (models.Value, error) {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return models.Null(), err
	}

	typ, err := r.f.GetCellType(r.sheet, cell)
	if err != nil {
		return models.Null(), err
	}

	switch typ {
	case excelize.CellTypeBool:
		return models.Bool(raw == "1" || strings.EqualFold(raw, "true")), nil
	case excelize.CellTypeDate:
		if t, ok := parseISODate(raw); ok {
			return models.Date(t), nil
		}
		return models.String(raw), nil
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString,
		excelize.CellTypeFormula, excelize.CellTypeError:
		return models.String(raw), nil
	}

	n, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return models.String(raw), nil
	}

	isDate, err := r.isDateCell(cell)
	if err != nil {
		return models.Null(), err
	}
	if isDate {
		t, err := excelize.ExcelDateToTime(n, r.date1904)
		if err == nil {
			return models.Date(t), nil
		}
	}
	return models.Number(n), nil
}

func (r *cellReader) isDateCell(cell string) (bool, error) {
	idx, err := r.f.GetCellStyle(r.sheet, cell)
	if err != nil {
		return false, err
	}
	if isDate, ok := r.dateFmts[idx]; ok {
		return isDate, nil
	}

	style, err := r.f.GetStyle(idx)
	if err != nil {
		return false, err
	}
	isDate := IsDateFormat(style.NumFmt, style.CustomNumFmt)
	r.dateFmts[idx] = isDate
	return isDate, nil
}

// IsDateFormat reports whether a number format renders a date or time.
func IsDateFormat(numFmt int, custom *string) bool {
	if custom != nil && *custom != "" {
		return isDateFormatCode(*custom)
	}
	switch {
	case numFmt >= 14 && numFmt <= 22,
		numFmt >= 27 && numFmt <= 36,
		numFmt >= 45 && numFmt <= 47,
		numFmt >= 50 && numFmt <= 58:
		return true
	}
	return false
}

// isDateFormatCode looks for date or time tokens outside quoted literals
// and bracketed sections of a format code.
func isDateFormatCode(code string) bool {
	inQuote, inBracket := false, false
	for _, c := range strings.ToLower(code) {
		switch {
		case c == '"':
			inQuote = !inQuote
		case inQuote:
		case c == '[':
			inBracket = true
		case c == ']':
			inBracket = false
		case inBracket:
		case strings.ContainsRune("ymdhs", c):
			return true
		}
	}
	return false
}

var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseISODate(s string) (time.Time, bool) {
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// WriteRow writes values into row rowNum starting at column 1. Null values
// leave their cell untouched. It returns the cells that hold dates.
func WriteRow(f *excelize.File, sheetName string, rowNum int, values []models.Value) ([]int, error) {
	var dateCols []int
	for i, v := range values {
		if v.IsNull() {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(i+1, rowNum)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheetName, cell, v.Interface()); err != nil {
			return nil, fmt.Errorf("set %s: %w", cell, err)
		}
		if v.Kind() == models.KindDate {
			dateCols = append(dateCols, i+1)
		}
	}
	return dateCols, nil
}

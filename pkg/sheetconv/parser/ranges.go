package parser

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Area is a rectangular cell range with 1-based, inclusive bounds.
type Area struct {
	R1 int
	C1 int
	R2 int
	C2 int
}

// RowArea returns the range covering columns 1 to width of row.
func RowArea(row, width int) Area {
	return Area{R1: row, C1: 1, R2: row, C2: width}
}

// Corners returns the top-left and bottom-right cell names of a.
func (a Area) Corners() (string, string, error) {
	start, err := excelize.CoordinatesToCellName(a.C1, a.R1)
	if err != nil {
		return "", "", err
	}
	end, err := excelize.CoordinatesToCellName(a.C2, a.R2)
	if err != nil {
		return "", "", err
	}
	return start, end, nil
}

// String returns a in A1:D10 notation.
func (a Area) String() string {
	start, end, err := a.Corners()
	if err != nil {
		return ""
	}
	return fmt.Sprintf("%s:%s", start, end)
}

// ParseArea parses a range such as $A$1:$D$10 or a single cell such as B2.
func ParseArea(ref string) (Area, error) {
	ref = strings.ReplaceAll(ref, "$", "")

	parts := strings.Split(ref, ":")
	if len(parts) == 1 {
		parts = append(parts, parts[0])
	}
	if len(parts) != 2 {
		return Area{}, fmt.Errorf("invalid range %q", ref)
	}

	startCol, startRow, err := excelize.CellNameToCoordinates(parts[0])
	if err != nil {
		return Area{}, err
	}

	endCol, endRow, err := excelize.CellNameToCoordinates(parts[1])
	if err != nil {
		return Area{}, err
	}

	return Area{R1: startRow, C1: startCol, R2: endRow, C2: endCol}, nil
}

// SheetArea returns the used range of a sheet.
func SheetArea(f *excelize.File, sheetName string) (Area, error) {
	dim, err := f.GetSheetDimension(sheetName)
	if err != nil {
		return Area{}, err
	}
	return ParseArea(dim)
}

// ColumnName returns the letter name of a 1-based column number.
func ColumnName(col int) (string, error) {
	return excelize.ColumnNumberToName(col)
}

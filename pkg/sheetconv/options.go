// Package sheetconv converts tables of records to styled xlsx documents and
// back.
package sheetconv

import (
	"fmt"
	"strings"
)

// EmptySheetPolicy decides what an export does with a sheet that has no rows.
type EmptySheetPolicy string

const (
	// EmptySheetFail rejects the job with ErrEmptySheet.
	EmptySheetFail EmptySheetPolicy = "fail"
	// EmptySheetSkip leaves the sheet out of the document.
	EmptySheetSkip EmptySheetPolicy = "skip"
)

// ParseEmptySheetPolicy parses "fail" or "skip".
func ParseEmptySheetPolicy(s string) (EmptySheetPolicy, error) {
	switch p := EmptySheetPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case EmptySheetFail, EmptySheetSkip:
		return p, nil
	case "":
		return EmptySheetFail, nil
	default:
		return "", fmt.Errorf("unknown empty sheet policy %q", s)
	}
}

// Options configures export behavior.
type Options struct {
	// EmptySheets selects how sheets without rows are handled.
	EmptySheets EmptySheetPolicy
	// SkipWidths leaves column widths at the workbook default.
	SkipWidths bool
	// SkipDimension leaves the used-range record of each sheet unset.
	SkipDimension bool
}

// DefaultOptions returns default export options.
func DefaultOptions() Options {
	return Options{
		EmptySheets: EmptySheetFail,
	}
}

// ShouldSkipEmpty returns whether sheets without rows are left out.
func (o Options) ShouldSkipEmpty() bool {
	return o.EmptySheets == EmptySheetSkip
}

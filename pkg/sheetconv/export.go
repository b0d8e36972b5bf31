package sheetconv

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/sirupsen/logrus"
	"github.com/ukaji3/sheetconv-go/pkg/sheetconv/models"
	"github.com/ukaji3/sheetconv-go/pkg/sheetconv/parser"
	"github.com/xuri/excelize/v2"
)

// ContentType is the media type of the documents Export produces.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Extension is appended to an export job's filename.
const Extension = ".xlsx"

// Filename returns the document name for job.
func Filename(job models.ExportJob) string {
	return job.Filename + Extension
}

// Export writes job into a new xlsx document and returns its bytes.
func Export(job models.ExportJob, opts Options) ([]byte, error) {
	if err := validateJob(job); err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	defaultSheet := f.GetSheetName(0)
	written := 0

	for _, sheet := range job.Sheets {
		if len(sheet.Rows) == 0 || sheet.Rows[0].Len() == 0 {
			if opts.ShouldSkipEmpty() {
				logrus.WithField("sheet", sheet.Name).Warn("skipping sheet without header fields")
				continue
			}
			return nil, NewSheetError(sheet.Name, "header", ErrEmptySheet)
		}

		var err error
		if written == 0 {
			err = f.SetSheetName(defaultSheet, sheet.Name)
		} else {
			_, err = f.NewSheet(sheet.Name)
		}
		if err != nil {
			return nil, NewSheetError(sheet.Name, "create", sheetNameError(err))
		}

		w := &sheetWriter{f: f, sheet: sheet, opts: opts, styles: make(map[styleKey]int)}
		if err := w.write(); err != nil {
			return nil, err
		}
		written++

		logrus.WithFields(logrus.Fields{
			"sheet": sheet.Name,
			"rows":  len(sheet.Rows),
		}).Debug("sheet written")
	}

	if written == 0 {
		return nil, ErrEmptyJob
	}
	f.SetActiveSheet(0)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// ExportTo exports job and hands the document to sink.
func ExportTo(ctx context.Context, job models.ExportJob, sink Sink, opts Options) error {
	if sink == nil {
		return errors.New("no sink provided")
	}

	data, err := Export(job, opts)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return sink.Deliver(ctx, Filename(job), data)
}

func validateJob(job models.ExportJob) error {
	if len(job.Sheets) == 0 {
		return ErrEmptyJob
	}

	seen := make(map[string]bool, len(job.Sheets))
	for _, s := range job.Sheets {
		key := strings.ToLower(s.Name)
		if seen[key] {
			return NewSheetError(s.Name, "create", ErrDuplicateSheet)
		}
		seen[key] = true
	}
	return nil
}

// sheetNameError marks the codec's name checks as ErrInvalidSheetName.
func sheetNameError(err error) error {
	switch {
	case errors.Is(err, excelize.ErrSheetNameBlank),
		errors.Is(err, excelize.ErrSheetNameInvalid),
		errors.Is(err, excelize.ErrSheetNameLength),
		errors.Is(err, excelize.ErrSheetNameSingleQuote):
		return fmt.Errorf("%w: %w", ErrInvalidSheetName, err)
	}
	return err
}

// styleKey identifies a cached workbook style: the style region and the
// date format injected into it.
type styleKey struct {
	header bool
	numFmt int
}

type sheetWriter struct {
	f      *excelize.File
	sheet  models.SheetSpec
	opts   Options
	styles map[styleKey]int

	headerStyle *models.StyleSpec
	rowStyle    *models.StyleSpec
}

func (w *sheetWriter) write() error {
	w.headerStyle = models.Cascade(w.sheet.HeaderStyle, w.sheet.AllStyle)
	w.rowStyle = models.Cascade(w.sheet.RowStyle, w.sheet.AllStyle)

	headers := w.sheet.Headers()
	if err := w.writeHeader(headers); err != nil {
		return err
	}

	maxWidth := len(headers)
	for i, rec := range w.sheet.Rows {
		if err := w.writeRow(i+2, rec); err != nil {
			return err
		}
		if rec.Len() > maxWidth {
			maxWidth = rec.Len()
		}
	}

	if !w.opts.SkipWidths {
		if err := w.setWidths(headers); err != nil {
			return NewSheetError(w.sheet.Name, "width", err)
		}
	}

	if !w.opts.SkipDimension {
		area := parser.Area{R1: 1, C1: 1, R2: len(w.sheet.Rows) + 1, C2: maxWidth}
		if err := w.f.SetSheetDimension(w.sheet.Name, area.String()); err != nil {
			return NewSheetError(w.sheet.Name, "rows", err)
		}
	}
	return nil
}

func (w *sheetWriter) writeHeader(headers []string) error {
	values := make([]models.Value, len(headers))
	for i, h := range headers {
		values[i] = models.String(h)
	}
	if _, err := parser.WriteRow(w.f, w.sheet.Name, 1, values); err != nil {
		return NewSheetError(w.sheet.Name, "header", err)
	}

	if w.headerStyle == nil || len(headers) == 0 {
		return nil
	}
	return w.applyStyle(parser.RowArea(1, len(headers)), styleKey{header: true})
}

func (w *sheetWriter) writeRow(rowNum int, rec models.Record) error {
	values := rec.Values()
	dateCols, err := parser.WriteRow(w.f, w.sheet.Name, rowNum, values)
	if err != nil {
		return NewSheetError(w.sheet.Name, "rows", err)
	}

	if w.rowStyle == nil || len(values) == 0 {
		return nil
	}
	if err := w.applyStyle(parser.RowArea(rowNum, len(values)), styleKey{}); err != nil {
		return err
	}

	// A region style replaces the date format the cell was written with.
	for _, col := range dateCols {
		key := styleKey{numFmt: parser.DateNumFmt(values[col-1])}
		if err := w.applyStyle(parser.Area{R1: rowNum, C1: col, R2: rowNum, C2: col}, key); err != nil {
			return err
		}
	}
	return nil
}

func (w *sheetWriter) applyStyle(area parser.Area, key styleKey) error {
	idx, err := w.styleID(key)
	if err != nil {
		return NewSheetError(w.sheet.Name, "style", err)
	}

	start, end, err := area.Corners()
	if err != nil {
		return NewSheetError(w.sheet.Name, "style", err)
	}
	if err := w.f.SetCellStyle(w.sheet.Name, start, end, idx); err != nil {
		return NewSheetError(w.sheet.Name, "style", err)
	}
	return nil
}

func (w *sheetWriter) styleID(key styleKey) (int, error) {
	if idx, ok := w.styles[key]; ok {
		return idx, nil
	}

	spec := w.rowStyle
	if key.header {
		spec = w.headerStyle
	}

	style, err := parser.ToExcelStyle(spec, key.numFmt)
	if err != nil {
		return 0, err
	}
	idx, err := w.f.NewStyle(style)
	if err != nil {
		return 0, err
	}

	w.styles[key] = idx
	return idx, nil
}

// setWidths sizes every header column to its longest rendered content.
func (w *sheetWriter) setWidths(headers []string) error {
	for col, h := range headers {
		maxLen := utf8.RuneCountInString(h)
		for _, rec := range w.sheet.Rows {
			values := rec.Values()
			if col >= len(values) || values[col].IsZero() {
				continue
			}
			if n := utf8.RuneCountInString(values[col].String()); n > maxLen {
				maxLen = n
			}
		}

		name, err := parser.ColumnName(col + 1)
		if err != nil {
			return err
		}
		if err := w.f.SetColWidth(w.sheet.Name, name, name, parser.ColumnWidth(maxLen)); err != nil {
			return err
		}
	}
	return nil
}

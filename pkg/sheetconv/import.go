package sheetconv

import (
	"bytes"
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/ukaji3/sheetconv-go/pkg/sheetconv/models"
	"github.com/ukaji3/sheetconv-go/pkg/sheetconv/parser"
	"github.com/xuri/excelize/v2"
)

// workbook is the part of *excelize.File the importer reads.
type workbook interface {
	GetSheetList() []string
	Close() error
}

// openWorkbook decodes document bytes; replaced in tests.
var openWorkbook = func(data []byte) (workbook, error) {
	return excelize.OpenReader(bytes.NewReader(data))
}

// readSheet reads one sheet of an opened workbook; replaced in tests.
var readSheet = func(wb workbook, sheetName string) ([]models.Record, error) {
	f := wb.(*excelize.File)
	if area, err := parser.SheetArea(f, sheetName); err == nil {
		logrus.WithFields(logrus.Fields{
			"sheet": sheetName,
			"range": area.String(),
		}).Debug("reading sheet")
	}
	return parser.ReadRecords(f, sheetName)
}

// Import reads the first worksheet of the document src supplies. Row 1
// gives the field names; every later row with a populated cell becomes a
// record.
func Import(ctx context.Context, src Source) ([]models.Record, error) {
	if src == nil {
		return nil, ErrNoFile
	}

	data, err := src.ReadAll(ctx)
	if err != nil {
		return nil, err
	}
	return ImportBytes(ctx, data)
}

// ImportBytes reads the first worksheet of an xlsx document. A nil slice
// reports ErrNoFile; an empty one is a decode failure.
func ImportBytes(ctx context.Context, data []byte) ([]models.Record, error) {
	_, rows, err := importFirstSheet(ctx, data)
	return rows, err
}

// ImportTable imports src like Import and labels the result with name and
// the worksheet the rows were read from.
func ImportTable(ctx context.Context, name string, src Source) (models.Table, error) {
	if src == nil {
		return models.Table{}, ErrNoFile
	}

	data, err := src.ReadAll(ctx)
	if err != nil {
		return models.Table{}, err
	}

	sheet, rows, err := importFirstSheet(ctx, data)
	if err != nil {
		return models.Table{}, err
	}
	return models.Table{Source: name, Sheet: sheet, Rows: rows}, nil
}

func importFirstSheet(ctx context.Context, data []byte) (string, []models.Record, error) {
	if data == nil {
		return "", nil, ErrNoFile
	}
	if err := ctx.Err(); err != nil {
		return "", nil, err
	}

	wb, err := openWorkbook(data)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	defer wb.Close()

	sheets := wb.GetSheetList()
	if len(sheets) == 0 {
		return "", nil, ErrNoSheet
	}
	sheet := sheets[0]

	rows, err := readSheet(wb, sheet)
	if err != nil {
		return "", nil, NewSheetError(sheet, "read", err)
	}

	logrus.WithFields(logrus.Fields{
		"sheet": sheet,
		"rows":  len(rows),
	}).Debug("sheet imported")

	if rows == nil {
		rows = []models.Record{}
	}
	return sheet, rows, nil
}

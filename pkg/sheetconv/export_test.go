package sheetconv

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/sheetconv-go/pkg/sheetconv/models"
	"github.com/ukaji3/sheetconv-go/pkg/sheetconv/parser"
	"github.com/xuri/excelize/v2"
)

func ptr[T any](v T) *T { return &v }

func open(t *testing.T, data []byte) *excelize.File {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })
	return f
}

func cellStyle(t *testing.T, f *excelize.File, sheet, cell string) *excelize.Style {
	t.Helper()
	idx, err := f.GetCellStyle(sheet, cell)
	require.NoError(t, err)
	style, err := f.GetStyle(idx)
	require.NoError(t, err)
	return style
}

func productsJob() models.ExportJob {
	added := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	return models.ExportJob{
		Filename: "products",
		Sheets: []models.SheetSpec{{
			Name: "Products",
			Rows: []models.Record{
				models.NewRecord(
					models.F("Name", models.String("Widget")),
					models.F("Price", models.Number(9.5)),
					models.F("Added", models.Date(added)),
					models.F("InStock", models.Bool(true)),
				),
				models.NewRecord(
					models.F("Name", models.String("Gadget")),
					models.F("Price", models.Number(12)),
					models.F("Added", models.Date(added.Add(48*time.Hour))),
					models.F("InStock", models.Bool(false)),
				),
				models.NewRecord(
					models.F("Name", models.String("Extra-long product name")),
					models.F("Price", models.Number(0)),
					models.F("Added", models.Null()),
					models.F("InStock", models.Bool(true)),
				),
			},
			HeaderStyle: &models.StyleSpec{
				Font: &models.FontSpec{Bold: ptr(true)},
				Fill: &models.FillSpec{Type: "pattern", Pattern: "solid", FgColor: &models.Color{ARGB: "FFDDDDDD"}},
			},
			AllStyle: &models.StyleSpec{
				Border: &models.BorderSpec{Bottom: &models.BorderSide{Style: "thin"}},
			},
		}},
	}
}

func TestExportEndToEnd(t *testing.T) {
	data, err := Export(productsJob(), DefaultOptions())
	require.NoError(t, err)

	f := open(t, data)
	assert.Equal(t, []string{"Products"}, f.GetSheetList())

	rows, err := f.GetRows("Products")
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"Name", "Price", "Added", "InStock"}, rows[0])
	assert.Equal(t, "Widget", rows[1][0])
	assert.Equal(t, "9.5", rows[1][1])
	assert.Equal(t, "TRUE", rows[1][3])
	assert.Equal(t, "", rows[3][2], "null leaves the cell blank")

	header := cellStyle(t, f, "Products", "B1")
	require.NotNil(t, header.Font)
	assert.True(t, header.Font.Bold)
	assert.Equal(t, 1, header.Fill.Pattern)
	require.Len(t, header.Border, 1)
	assert.Equal(t, "bottom", header.Border[0].Type)

	body := cellStyle(t, f, "Products", "A2")
	require.Len(t, body.Border, 1)
	assert.Equal(t, 0, body.Fill.Pattern)

	// The region style keeps the date format on date cells.
	added := cellStyle(t, f, "Products", "C2")
	assert.Equal(t, parser.NumFmtDay, added.NumFmt)
	require.Len(t, added.Border, 1)

	width, err := f.GetColWidth("Products", "A")
	require.NoError(t, err)
	assert.Equal(t, 25.0, width, "23 characters + 2")

	width, err = f.GetColWidth("Products", "B")
	require.NoError(t, err)
	assert.Equal(t, 10.0, width)

	dim, err := f.GetSheetDimension("Products")
	require.NoError(t, err)
	assert.Equal(t, "A1:D4", dim)
}

func TestExportDecodedJob(t *testing.T) {
	var job models.ExportJob
	require.NoError(t, job.UnmarshalJSON([]byte(`{"filename":"t","sheets":{"S1":{"json":[{"a":1,"b":2},{"a":3,"b":4}]}}}`)))

	data, err := Export(job, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, "t.xlsx", Filename(job))

	f := open(t, data)
	assert.Equal(t, []string{"S1"}, f.GetSheetList())
	rows, err := f.GetRows("S1")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"a", "b"}, {"1", "2"}, {"3", "4"}}, rows)
}

func TestExportHeaderFromFirstRecord(t *testing.T) {
	job := models.ExportJob{Filename: "h", Sheets: []models.SheetSpec{{
		Name: "S",
		Rows: []models.Record{
			models.NewRecord(models.F("b", models.Number(1)), models.F("a", models.Number(2))),
			models.NewRecord(models.F("a", models.Number(3)), models.F("b", models.Number(4))),
		},
	}}}

	data, err := Export(job, DefaultOptions())
	require.NoError(t, err)

	rows, err := open(t, data).GetRows("S")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"b", "a"}, {"1", "2"}, {"3", "4"}}, rows)
}

func TestExportStylePrecedence(t *testing.T) {
	job := models.ExportJob{Filename: "p", Sheets: []models.SheetSpec{{
		Name:        "S",
		Rows:        []models.Record{models.NewRecord(models.F("k", models.String("v")))},
		HeaderStyle: &models.StyleSpec{Font: &models.FontSpec{Bold: ptr(true), Size: ptr(10.0)}},
		RowStyle:    &models.StyleSpec{Font: &models.FontSpec{Italic: ptr(true)}},
		AllStyle:    &models.StyleSpec{Font: &models.FontSpec{Size: ptr(12.0)}},
	}}}

	data, err := Export(job, DefaultOptions())
	require.NoError(t, err)
	f := open(t, data)

	header := cellStyle(t, f, "S", "A1")
	require.NotNil(t, header.Font)
	assert.True(t, header.Font.Bold)
	assert.False(t, header.Font.Italic)
	assert.Equal(t, 12.0, header.Font.Size)

	body := cellStyle(t, f, "S", "A2")
	require.NotNil(t, body.Font)
	assert.False(t, body.Font.Bold)
	assert.True(t, body.Font.Italic)
	assert.Equal(t, 12.0, body.Font.Size)
}

func TestExportColumnWidths(t *testing.T) {
	job := models.ExportJob{Filename: "w", Sheets: []models.SheetSpec{{
		Name: "S",
		Rows: []models.Record{models.NewRecord(
			models.F("seven77", models.String("abc")),
			models.F("x", models.String("fifteen-chars!!")),
			models.F("flag", models.Bool(false)),
		)},
	}}}

	data, err := Export(job, DefaultOptions())
	require.NoError(t, err)
	f := open(t, data)

	for col, want := range map[string]float64{"A": 10, "B": 17, "C": 10} {
		got, err := f.GetColWidth("S", col)
		require.NoError(t, err)
		assert.Equal(t, want, got, "column %s", col)
	}
}

func TestExportMultipleSheets(t *testing.T) {
	job := models.ExportJob{Filename: "m", Sheets: []models.SheetSpec{
		{Name: "Second", Rows: []models.Record{models.NewRecord(models.F("a", models.Number(1)))}},
		{Name: "Sheet1", Rows: []models.Record{models.NewRecord(models.F("b", models.Number(2)))}},
	}}

	data, err := Export(job, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, []string{"Second", "Sheet1"}, open(t, data).GetSheetList())
}

func TestExportEmptySheet(t *testing.T) {
	job := models.ExportJob{Filename: "e", Sheets: []models.SheetSpec{
		{Name: "Full", Rows: []models.Record{models.NewRecord(models.F("a", models.Number(1)))}},
		{Name: "Empty"},
	}}

	_, err := Export(job, DefaultOptions())
	require.ErrorIs(t, err, ErrEmptySheet)

	var sheetErr *SheetError
	require.True(t, errors.As(err, &sheetErr))
	assert.Equal(t, "Empty", sheetErr.Sheet)

	data, err := Export(job, Options{EmptySheets: EmptySheetSkip})
	require.NoError(t, err)
	assert.Equal(t, []string{"Full"}, open(t, data).GetSheetList())
}

func TestExportFirstRecordWithoutFields(t *testing.T) {
	job := models.ExportJob{Filename: "f", Sheets: []models.SheetSpec{{
		Name: "S",
		Rows: []models.Record{{}, models.NewRecord(models.F("a", models.Number(1)))},
	}}}

	_, err := Export(job, DefaultOptions())
	require.ErrorIs(t, err, ErrEmptySheet)

	_, err = Export(job, Options{EmptySheets: EmptySheetSkip})
	assert.ErrorIs(t, err, ErrEmptyJob)
}

func TestExportEmptyJob(t *testing.T) {
	_, err := Export(models.ExportJob{Filename: "none"}, DefaultOptions())
	assert.ErrorIs(t, err, ErrEmptyJob)

	job := models.ExportJob{Filename: "e", Sheets: []models.SheetSpec{{Name: "Empty"}}}
	_, err = Export(job, Options{EmptySheets: EmptySheetSkip})
	assert.ErrorIs(t, err, ErrEmptyJob)
}

func TestExportDuplicateSheet(t *testing.T) {
	row := []models.Record{models.NewRecord(models.F("a", models.Number(1)))}
	job := models.ExportJob{Filename: "d", Sheets: []models.SheetSpec{
		{Name: "Data", Rows: row},
		{Name: "DATA", Rows: row},
	}}

	_, err := Export(job, DefaultOptions())
	assert.ErrorIs(t, err, ErrDuplicateSheet)
}

func TestExportInvalidStyle(t *testing.T) {
	job := productsJob()
	job.Sheets[0].RowStyle = &models.StyleSpec{Fill: &models.FillSpec{Type: "gradient"}}

	_, err := Export(job, DefaultOptions())
	assert.ErrorIs(t, err, parser.ErrInvalidStyle)
}

func TestExportInvalidSheetName(t *testing.T) {
	tests := []struct {
		name  string
		sheet string
		cause error
	}{
		{"forbidden character", "bad/name", excelize.ErrSheetNameInvalid},
		{"too long", strings.Repeat("n", 40), excelize.ErrSheetNameLength},
		{"blank", "", excelize.ErrSheetNameBlank},
		{"quoted", "'quoted'", excelize.ErrSheetNameSingleQuote},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// A second sheet exercises NewSheet as well as the rename.
			for _, names := range [][]string{{tt.sheet}, {"Ok", tt.sheet}} {
				job := models.ExportJob{Filename: "n"}
				for _, n := range names {
					job.Sheets = append(job.Sheets, models.SheetSpec{
						Name: n,
						Rows: []models.Record{models.NewRecord(models.F("a", models.Number(1)))},
					})
				}

				_, err := Export(job, DefaultOptions())
				require.ErrorIs(t, err, ErrInvalidSheetName)
				assert.ErrorIs(t, err, tt.cause)

				var sheetErr *SheetError
				require.True(t, errors.As(err, &sheetErr))
				assert.Equal(t, "create", sheetErr.Op)
			}
		})
	}
}

func TestExportTo(t *testing.T) {
	var gotName string
	var gotData []byte
	sink := SinkFunc(func(_ context.Context, filename string, data []byte) error {
		gotName, gotData = filename, data
		return nil
	})

	require.NoError(t, ExportTo(context.Background(), productsJob(), sink, DefaultOptions()))
	assert.Equal(t, "products.xlsx", gotName)
	assert.NotEmpty(t, gotData)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, ExportTo(ctx, productsJob(), sink, DefaultOptions()), context.Canceled)

	assert.Error(t, ExportTo(context.Background(), productsJob(), nil, DefaultOptions()))
}

func TestRoundTrip(t *testing.T) {
	at := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
	want := []models.Record{
		models.NewRecord(
			models.F("name", models.String("Widget")),
			models.F("qty", models.Number(3)),
			models.F("price", models.Number(9.75)),
			models.F("at", models.Date(at)),
			models.F("ok", models.Bool(true)),
		),
		models.NewRecord(
			models.F("name", models.String("Gadget")),
			models.F("qty", models.Number(-1)),
			models.F("price", models.Number(0.5)),
			models.F("at", models.Date(at.AddDate(0, 1, 0))),
			models.F("ok", models.Bool(false)),
		),
	}

	tests := []struct {
		name  string
		style *models.StyleSpec
	}{
		{"unstyled", nil},
		{"styled rows", &models.StyleSpec{Font: &models.FontSpec{Italic: ptr(true)}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			job := models.ExportJob{Filename: "rt", Sheets: []models.SheetSpec{{
				Name:     "Data",
				Rows:     want,
				RowStyle: tt.style,
			}}}

			data, err := Export(job, DefaultOptions())
			require.NoError(t, err)

			got, err := Import(context.Background(), FromBytes(data))
			require.NoError(t, err)
			require.Len(t, got, len(want))
			for i := range want {
				assert.True(t, want[i].Equal(got[i]), "row %d: want %v, got %v", i, want[i].Values(), got[i].Values())
			}
		})
	}
}

func TestExportSkipGeometry(t *testing.T) {
	opts := DefaultOptions()
	opts.SkipWidths = true
	opts.SkipDimension = true

	data, err := Export(productsJob(), opts)
	require.NoError(t, err)
	f := open(t, data)

	width, err := f.GetColWidth("Products", "A")
	require.NoError(t, err)
	assert.NotEqual(t, 25.0, width)

	dim, err := f.GetSheetDimension("Products")
	require.NoError(t, err)
	assert.Equal(t, "A1", dim)
}

package models

import (
	"encoding/json"
	"fmt"
)

// SheetSpec describes one worksheet to export.
type SheetSpec struct {
	// Name is the worksheet name; it is unique within an export job.
	Name string `json:"-" yaml:"-"`
	// Rows holds the records; the first record's field order defines the
	// header row and the column order.
	Rows []Record `json:"rows"`
	// HeaderStyle applies to every cell of row 1.
	HeaderStyle *StyleSpec `json:"headerStyle,omitempty"`
	// RowStyle applies to every cell below row 1.
	RowStyle *StyleSpec `json:"rowStyle,omitempty"`
	// AllStyle applies to every cell, after HeaderStyle and RowStyle.
	AllStyle *StyleSpec `json:"allStyle,omitempty"`
}

// Headers returns the field names of the first row, or nil for a sheet
// without rows.
func (s SheetSpec) Headers() []string {
	if len(s.Rows) == 0 {
		return nil
	}
	return s.Rows[0].Keys()
}

// sheetSpecJSON accepts both the current keys and the legacy
// json/headerCells/dataCells/cells keys.
type sheetSpecJSON struct {
	Rows        []Record   `json:"rows"`
	JSON        []Record   `json:"json"`
	HeaderStyle *StyleSpec `json:"headerStyle"`
	RowStyle    *StyleSpec `json:"rowStyle"`
	AllStyle    *StyleSpec `json:"allStyle"`
	HeaderCells *StyleSpec `json:"headerCells"`
	DataCells   *StyleSpec `json:"dataCells"`
	Cells       *StyleSpec `json:"cells"`
}

// UnmarshalJSON decodes a sheet spec. Name is not part of the body; it
// comes from the key under which the sheet appears in an export job.
func (s *SheetSpec) UnmarshalJSON(data []byte) error {
	var aux sheetSpecJSON
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	rows := aux.Rows
	if rows == nil {
		rows = aux.JSON
	}

	*s = SheetSpec{
		Name:        s.Name,
		Rows:        rows,
		HeaderStyle: firstStyle(aux.HeaderStyle, aux.HeaderCells),
		RowStyle:    firstStyle(aux.RowStyle, aux.DataCells),
		AllStyle:    firstStyle(aux.AllStyle, aux.Cells),
	}
	return nil
}

func firstStyle(styles ...*StyleSpec) *StyleSpec {
	for _, s := range styles {
		if s != nil {
			return s
		}
	}
	return nil
}

// ExportJob is a named set of sheets to write into one document.
type ExportJob struct {
	// Filename is the document name without extension.
	Filename string
	// Sheets are written in slice order.
	Sheets []SheetSpec
}

// Sheet returns the sheet named name.
func (j ExportJob) Sheet(name string) (*SheetSpec, bool) {
	for i := range j.Sheets {
		if j.Sheets[i].Name == name {
			return &j.Sheets[i], true
		}
	}
	return nil, false
}

// MarshalJSON encodes the job with sheets as an object in sheet order.
func (j ExportJob) MarshalJSON() ([]byte, error) {
	name, err := json.Marshal(j.Filename)
	if err != nil {
		return nil, err
	}

	buf := []byte(`{"filename":`)
	buf = append(buf, name...)
	buf = append(buf, `,"sheets":{`...)
	for i, s := range j.Sheets {
		if i > 0 {
			buf = append(buf, ',')
		}
		key, err := json.Marshal(s.Name)
		if err != nil {
			return nil, err
		}
		body, err := json.Marshal(struct {
			Rows        []Record   `json:"rows"`
			HeaderStyle *StyleSpec `json:"headerStyle,omitempty"`
			RowStyle    *StyleSpec `json:"rowStyle,omitempty"`
			AllStyle    *StyleSpec `json:"allStyle,omitempty"`
		}{s.Rows, s.HeaderStyle, s.RowStyle, s.AllStyle})
		if err != nil {
			return nil, err
		}
		buf = append(buf, key...)
		buf = append(buf, ':')
		buf = append(buf, body...)
	}
	buf = append(buf, "}}"...)
	return buf, nil
}

// UnmarshalJSON decodes {"filename": ..., "sheets": {name: spec, ...}}
// keeping the key order of sheets. The legacy "data" key is accepted for
// "sheets". A repeated sheet key appears twice in Sheets so that callers
// can reject it.
func (j *ExportJob) UnmarshalJSON(data []byte) error {
	out := ExportJob{}
	err := decodeObject(data, func(key string, raw json.RawMessage) error {
		switch key {
		case "filename":
			return json.Unmarshal(raw, &out.Filename)
		case "sheets", "data":
			return decodeObject(raw, func(name string, body json.RawMessage) error {
				spec := SheetSpec{Name: name}
				if err := spec.UnmarshalJSON(body); err != nil {
					return fmt.Errorf("sheet %q: %w", name, err)
				}
				out.Sheets = append(out.Sheets, spec)
				return nil
			})
		default:
			return nil
		}
	})
	if err != nil {
		return err
	}

	*j = out
	return nil
}

package models

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// SheetStyles holds the three style regions of a sheet.
type SheetStyles struct {
	// HeaderStyle applies to row 1.
	HeaderStyle *StyleSpec `yaml:"headerStyle,omitempty"`
	// RowStyle applies below row 1.
	RowStyle *StyleSpec `yaml:"rowStyle,omitempty"`
	// AllStyle applies to every row.
	AllStyle *StyleSpec `yaml:"allStyle,omitempty"`
}

// StyleSet is a workbook-level style file: a default applied to every sheet
// and per-sheet overrides keyed by sheet name.
type StyleSet struct {
	// Default applies to every sheet of the job.
	Default *SheetStyles `yaml:"default,omitempty"`
	// Sheets maps sheet name to its styles.
	Sheets map[string]SheetStyles `yaml:"sheets,omitempty"`
}

// ParseStyleSet decodes a YAML style file.
func ParseStyleSet(data []byte) (*StyleSet, error) {
	var set StyleSet
	if err := yaml.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("parse style set: %w", err)
	}
	return &set, nil
}

// Apply sets the styles of the job's sheets. A region that the style set
// leaves unset keeps the style the job already had; per-sheet entries win
// over the default.
func (s *StyleSet) Apply(job *ExportJob) {
	if s == nil {
		return
	}
	for i := range job.Sheets {
		sheet := &job.Sheets[i]
		if s.Default != nil {
			sheet.applyStyles(*s.Default)
		}
		if styles, ok := s.Sheets[sheet.Name]; ok {
			sheet.applyStyles(styles)
		}
	}
}

func (s *SheetSpec) applyStyles(styles SheetStyles) {
	if styles.HeaderStyle != nil {
		s.HeaderStyle = styles.HeaderStyle
	}
	if styles.RowStyle != nil {
		s.RowStyle = styles.RowStyle
	}
	if styles.AllStyle != nil {
		s.AllStyle = styles.AllStyle
	}
}

package models

// Color is an ARGB hex color such as "FF0000FF".
type Color struct {
	ARGB string `json:"argb" yaml:"argb"`
}

// StyleSpec describes cell presentation. Every aspect is optional and every
// setting inside an aspect is optional; unset settings are left to the
// layers below when styles are cascaded.
type StyleSpec struct {
	// Font sets typeface settings.
	Font *FontSpec `json:"font,omitempty" yaml:"font,omitempty"`
	// Fill sets the cell background.
	Fill *FillSpec `json:"fill,omitempty" yaml:"fill,omitempty"`
	// Border sets the four cell edges.
	Border *BorderSpec `json:"border,omitempty" yaml:"border,omitempty"`
	// Alignment sets text placement.
	Alignment *AlignmentSpec `json:"alignment,omitempty" yaml:"alignment,omitempty"`
	// NumFmt is a number format code such as "0.00" or "yyyy-mm-dd".
	NumFmt *string `json:"numFmt,omitempty" yaml:"numFmt,omitempty"`
	// Protection sets the locked and hidden flags.
	Protection *ProtectionSpec `json:"protection,omitempty" yaml:"protection,omitempty"`
}

// FontSpec holds font settings.
type FontSpec struct {
	Name      *string  `json:"name,omitempty" yaml:"name,omitempty"`
	Size      *float64 `json:"size,omitempty" yaml:"size,omitempty"`
	Bold      *bool    `json:"bold,omitempty" yaml:"bold,omitempty"`
	Italic    *bool    `json:"italic,omitempty" yaml:"italic,omitempty"`
	Strike    *bool    `json:"strike,omitempty" yaml:"strike,omitempty"`
	Underline *string  `json:"underline,omitempty" yaml:"underline,omitempty"`
	Color     *Color   `json:"color,omitempty" yaml:"color,omitempty"`
}

// FillSpec holds a pattern fill. Type must be "pattern".
type FillSpec struct {
	Type    string `json:"type" yaml:"type"`
	Pattern string `json:"pattern,omitempty" yaml:"pattern,omitempty"`
	FgColor *Color `json:"fgColor,omitempty" yaml:"fgColor,omitempty"`
	BgColor *Color `json:"bgColor,omitempty" yaml:"bgColor,omitempty"`
}

// BorderSide is one edge of a cell border.
type BorderSide struct {
	// Style is a border style name: thin, medium, thick, dashed, dotted,
	// double, hair, mediumDashed, dashDot, mediumDashDot, dashDotDot,
	// mediumDashDotDot or slantDashDot.
	Style string `json:"style" yaml:"style"`
	Color *Color `json:"color,omitempty" yaml:"color,omitempty"`
}

// BorderSpec holds the four cell edges.
type BorderSpec struct {
	Top    *BorderSide `json:"top,omitempty" yaml:"top,omitempty"`
	Left   *BorderSide `json:"left,omitempty" yaml:"left,omitempty"`
	Bottom *BorderSide `json:"bottom,omitempty" yaml:"bottom,omitempty"`
	Right  *BorderSide `json:"right,omitempty" yaml:"right,omitempty"`
}

// AlignmentSpec holds text placement settings.
type AlignmentSpec struct {
	Horizontal   *string `json:"horizontal,omitempty" yaml:"horizontal,omitempty"`
	Vertical     *string `json:"vertical,omitempty" yaml:"vertical,omitempty"`
	WrapText     *bool   `json:"wrapText,omitempty" yaml:"wrapText,omitempty"`
	ShrinkToFit  *bool   `json:"shrinkToFit,omitempty" yaml:"shrinkToFit,omitempty"`
	Indent       *int    `json:"indent,omitempty" yaml:"indent,omitempty"`
	TextRotation *int    `json:"textRotation,omitempty" yaml:"textRotation,omitempty"`
}

// ProtectionSpec holds cell protection flags.
type ProtectionSpec struct {
	Locked *bool `json:"locked,omitempty" yaml:"locked,omitempty"`
	Hidden *bool `json:"hidden,omitempty" yaml:"hidden,omitempty"`
}

// Cascade merges style layers from left to right: a setting present in a
// later layer replaces the same setting from earlier layers. Font,
// alignment and protection merge setting by setting, borders merge side by
// side, and fill and number format are replaced whole. Nil layers are
// ignored; the result is nil when every layer is nil.
func Cascade(layers ...*StyleSpec) *StyleSpec {
	var out *StyleSpec
	for _, l := range layers {
		if l == nil {
			continue
		}
		if out == nil {
			out = &StyleSpec{}
		}
		out.Font = mergeFont(out.Font, l.Font)
		out.Fill = mergeFill(out.Fill, l.Fill)
		out.Border = mergeBorder(out.Border, l.Border)
		out.Alignment = mergeAlignment(out.Alignment, l.Alignment)
		out.NumFmt = pick(out.NumFmt, l.NumFmt)
		out.Protection = mergeProtection(out.Protection, l.Protection)
	}
	return out
}

// IsEmpty reports whether s sets no aspect.
func (s *StyleSpec) IsEmpty() bool {
	return s == nil || (s.Font == nil && s.Fill == nil && s.Border == nil &&
		s.Alignment == nil && s.NumFmt == nil && s.Protection == nil)
}

func pick[T any](base, over *T) *T {
	if over != nil {
		v := *over
		return &v
	}
	return base
}

func mergeFont(base, over *FontSpec) *FontSpec {
	if over == nil {
		return base
	}
	out := FontSpec{}
	if base != nil {
		out = *base
	}
	out.Name = pick(out.Name, over.Name)
	out.Size = pick(out.Size, over.Size)
	out.Bold = pick(out.Bold, over.Bold)
	out.Italic = pick(out.Italic, over.Italic)
	out.Strike = pick(out.Strike, over.Strike)
	out.Underline = pick(out.Underline, over.Underline)
	out.Color = pick(out.Color, over.Color)
	return &out
}

func mergeFill(base, over *FillSpec) *FillSpec {
	if over == nil {
		return base
	}
	out := *over
	return &out
}

func mergeBorder(base, over *BorderSpec) *BorderSpec {
	if over == nil {
		return base
	}
	out := BorderSpec{}
	if base != nil {
		out = *base
	}
	out.Top = pick(out.Top, over.Top)
	out.Left = pick(out.Left, over.Left)
	out.Bottom = pick(out.Bottom, over.Bottom)
	out.Right = pick(out.Right, over.Right)
	return &out
}

func mergeAlignment(base, over *AlignmentSpec) *AlignmentSpec {
	if over == nil {
		return base
	}
	out := AlignmentSpec{}
	if base != nil {
		out = *base
	}
	out.Horizontal = pick(out.Horizontal, over.Horizontal)
	out.Vertical = pick(out.Vertical, over.Vertical)
	out.WrapText = pick(out.WrapText, over.WrapText)
	out.ShrinkToFit = pick(out.ShrinkToFit, over.ShrinkToFit)
	out.Indent = pick(out.Indent, over.Indent)
	out.TextRotation = pick(out.TextRotation, over.TextRotation)
	return &out
}

func mergeProtection(base, over *ProtectionSpec) *ProtectionSpec {
	if over == nil {
		return base
	}
	out := ProtectionSpec{}
	if base != nil {
		out = *base
	}
	out.Locked = pick(out.Locked, over.Locked)
	out.Hidden = pick(out.Hidden, over.Hidden)
	return &out
}

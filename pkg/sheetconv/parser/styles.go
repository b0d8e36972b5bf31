package parser

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ukaji3/sheetconv-go/pkg/sheetconv/models"
	"github.com/xuri/excelize/v2"
)

// ErrInvalidStyle indicates a style spec that cannot be expressed in a
// workbook style.
var ErrInvalidStyle = errors.New("invalid style")

var borderStyles = map[string]int{
	"none":             0,
	"thin":             1,
	"medium":           2,
	"dashed":           3,
	"dotted":           4,
	"thick":            5,
	"double":           6,
	"hair":             7,
	"mediumDashed":     8,
	"dashDot":          9,
	"mediumDashDot":    10,
	"dashDotDot":       11,
	"mediumDashDotDot": 12,
	"slantDashDot":     13,
}

var fillPatterns = map[string]int{
	"none":            0,
	"solid":           1,
	"mediumGray":      2,
	"darkGray":        3,
	"lightGray":       4,
	"darkHorizontal":  5,
	"darkVertical":    6,
	"darkDown":        7,
	"darkUp":          8,
	"darkGrid":        9,
	"darkTrellis":     10,
	"lightHorizontal": 11,
	"lightVertical":   12,
	"lightDown":       13,
	"lightUp":         14,
	"lightGrid":       15,
	"lightTrellis":    16,
	"gray125":         17,
	"gray0625":        18,
}

var underlines = map[string]string{
	"none":   "none",
	"single": "single",
	"double": "double",
	"true":   "single",
}

// ToExcelStyle converts a style spec into an excelize style. dateNumFmt is
// used when the spec sets no number format; pass 0 for non-date cells.
func ToExcelStyle(spec *models.StyleSpec, dateNumFmt int) (*excelize.Style, error) {
	style := &excelize.Style{NumFmt: dateNumFmt}
	if spec == nil {
		return style, nil
	}

	if spec.Font != nil {
		font, err := toFont(spec.Font)
		if err != nil {
			return nil, err
		}
		style.Font = font
	}

	if spec.Fill != nil {
		fill, err := toFill(spec.Fill)
		if err != nil {
			return nil, err
		}
		style.Fill = fill
	}

	if spec.Border != nil {
		borders, err := toBorders(spec.Border)
		if err != nil {
			return nil, err
		}
		style.Border = borders
	}

	if a := spec.Alignment; a != nil {
		style.Alignment = &excelize.Alignment{
			Horizontal:   deref(a.Horizontal),
			Vertical:     vertical(deref(a.Vertical)),
			WrapText:     deref(a.WrapText),
			ShrinkToFit:  deref(a.ShrinkToFit),
			Indent:       deref(a.Indent),
			TextRotation: deref(a.TextRotation),
		}
	}

	if p := spec.Protection; p != nil {
		// Cells are locked unless told otherwise.
		locked := true
		if p.Locked != nil {
			locked = *p.Locked
		}
		style.Protection = &excelize.Protection{Locked: locked, Hidden: deref(p.Hidden)}
	}

	if spec.NumFmt != nil && *spec.NumFmt != "" {
		code := *spec.NumFmt
		style.NumFmt = 0
		style.CustomNumFmt = &code
	}

	return style, nil
}

func toFont(f *models.FontSpec) (*excelize.Font, error) {
	font := &excelize.Font{
		Family: deref(f.Name),
		Size:   deref(f.Size),
		Bold:   deref(f.Bold),
		Italic: deref(f.Italic),
		Strike: deref(f.Strike),
	}
	if f.Underline != nil {
		u, ok := underlines[*f.Underline]
		if !ok {
			return nil, fmt.Errorf("%w: underline %q", ErrInvalidStyle, *f.Underline)
		}
		font.Underline = u
	}
	if f.Color != nil {
		rgb, err := toRGB(*f.Color)
		if err != nil {
			return nil, err
		}
		font.Color = rgb
	}
	return font, nil
}

func toFill(f *models.FillSpec) (excelize.Fill, error) {
	if f.Type != "pattern" {
		return excelize.Fill{}, fmt.Errorf("%w: fill type %q", ErrInvalidStyle, f.Type)
	}

	pattern, ok := fillPatterns[f.Pattern]
	if !ok {
		return excelize.Fill{}, fmt.Errorf("%w: fill pattern %q", ErrInvalidStyle, f.Pattern)
	}
	fill := excelize.Fill{Type: "pattern", Pattern: pattern}

	// A cell pattern takes a single color; the foreground wins.
	color := f.FgColor
	if color == nil {
		color = f.BgColor
	}
	if color != nil {
		rgb, err := toRGB(*color)
		if err != nil {
			return excelize.Fill{}, err
		}
		fill.Color = []string{rgb}
	}
	return fill, nil
}

func toBorders(b *models.BorderSpec) ([]excelize.Border, error) {
	sides := []struct {
		typ  string
		side *models.BorderSide
	}{
		{"top", b.Top},
		{"left", b.Left},
		{"bottom", b.Bottom},
		{"right", b.Right},
	}

	var borders []excelize.Border
	for _, s := range sides {
		if s.side == nil {
			continue
		}
		idx, ok := borderStyles[s.side.Style]
		if !ok {
			return nil, fmt.Errorf("%w: %s border style %q", ErrInvalidStyle, s.typ, s.side.Style)
		}
		border := excelize.Border{Type: s.typ, Style: idx}
		if s.side.Color != nil {
			rgb, err := toRGB(*s.side.Color)
			if err != nil {
				return nil, err
			}
			border.Color = rgb
		}
		borders = append(borders, border)
	}
	return borders, nil
}

// toRGB turns an ARGB or RGB hex color into the RGB form excelize expects.
func toRGB(c models.Color) (string, error) {
	hex := strings.TrimPrefix(strings.ToUpper(c.ARGB), "#")
	if len(hex) == 8 {
		hex = hex[2:]
	}
	if len(hex) != 6 || strings.Trim(hex, "0123456789ABCDEF") != "" {
		return "", fmt.Errorf("%w: color %q", ErrInvalidStyle, c.ARGB)
	}
	return hex, nil
}

func vertical(v string) string {
	if v == "middle" {
		return "center"
	}
	return v
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

package models

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// ParseDates replaces string values that read as dates with Date values,
// in every record of rows. Strings made only of digits are left alone so
// that codes such as "0281" stay text. Ambiguous day/month orders are read
// month first.
func ParseDates(rows []Record, loc *time.Location) int {
	if loc == nil {
		loc = time.UTC
	}

	converted := 0
	for i := range rows {
		for j, f := range rows[i].fields {
			s, ok := f.Value.Str()
			if !ok || !looksLikeDate(s) {
				continue
			}
			t, err := dateparse.ParseIn(s, loc, dateparse.PreferMonthFirst(true))
			if err != nil {
				continue
			}
			rows[i].fields[j].Value = Date(t)
			converted++
		}
	}
	return converted
}

func looksLikeDate(s string) bool {
	s = strings.TrimSpace(s)
	if len(s) < 6 {
		return false
	}
	return strings.IndexFunc(s, func(r rune) bool { return r < '0' || r > '9' }) >= 0
}

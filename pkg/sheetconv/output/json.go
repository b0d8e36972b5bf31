// Package output renders imported tables as JSON.
package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ukaji3/sheetconv-go/pkg/sheetconv/models"
)

// ToJSON serializes v to JSON. Pretty output is indented by two spaces.
// HTML characters are not escaped.
func ToJSON(v interface{}, pretty bool) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// TableFilename returns the JSON file name for a table: the base name of
// its source with the extension replaced by .json.
func TableFilename(t models.Table) string {
	base := filepath.Base(t.Source)
	return strings.TrimSuffix(base, filepath.Ext(base)) + ".json"
}

// WriteTableFiles writes the rows of every table into its own file in dir.
// Tables whose sources share a base name get a numeric suffix in table
// order: x.json, x-2.json, x-3.json.
func WriteTableFiles(tables []models.Table, dir string, pretty bool) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	names := uniqueFilenames(tables)
	for i, t := range tables {
		jsonData, err := ToJSON(t.Rows, pretty)
		if err != nil {
			return err
		}

		filename := filepath.Join(dir, names[i])
		if err := os.WriteFile(filename, jsonData, 0644); err != nil {
			return err
		}
	}

	return nil
}

func uniqueFilenames(tables []models.Table) []string {
	names := make([]string, len(tables))
	used := make(map[string]bool, len(tables))
	for i, t := range tables {
		name := TableFilename(t)
		stem := strings.TrimSuffix(name, ".json")
		for n := 2; used[strings.ToLower(name)]; n++ {
			name = fmt.Sprintf("%s-%d.json", stem, n)
		}
		used[strings.ToLower(name)] = true
		names[i] = name
	}
	return names
}

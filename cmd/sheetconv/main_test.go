package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cliJob = `{
	"filename": "people",
	"sheets": {
		"People": {"rows": [{"name": "Ann", "joined": "2024-01-15"}, {"name": "Bob", "joined": "2023-12-01"}]},
		"Empty": {"rows": []}
	}
}`

const cliStyles = `
default:
  headerStyle:
    font: {bold: true}
`

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	t.Setenv("SHEETCONV_LOG_LEVEL", "error")
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(append([]string{"--env-file", writeFile(t, "test.env", "")}, args...))

	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestExportThenImport(t *testing.T) {
	jobPath := writeFile(t, "job.json", cliJob)
	stylesPath := writeFile(t, "styles.yaml", cliStyles)
	outDir := t.TempDir()

	_, err := execute(t, "export", jobPath, "-o", outDir, "--styles", stylesPath, "--parse-dates", "--skip-empty")
	require.NoError(t, err)

	xlsxPath := filepath.Join(outDir, "people.xlsx")
	require.FileExists(t, xlsxPath)

	out, err := execute(t, "import", xlsxPath)
	require.NoError(t, err)
	assert.JSONEq(t,
		`[{"name":"Ann","joined":"2024-01-15T00:00:00Z"},{"name":"Bob","joined":"2023-12-01T00:00:00Z"}]`,
		out)
}

func TestExportEmptySheetFails(t *testing.T) {
	jobPath := writeFile(t, "job.json", cliJob)

	_, err := execute(t, "export", jobPath, "-o", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Empty")
}

func TestImportMany(t *testing.T) {
	jobPath := writeFile(t, "job.json", cliJob)
	outDir := t.TempDir()
	_, err := execute(t, "export", jobPath, "-o", outDir, "--skip-empty")
	require.NoError(t, err)

	xlsxPath := filepath.Join(outDir, "people.xlsx")
	jsonDir := t.TempDir()
	outFile := filepath.Join(t.TempDir(), "all.json")

	_, err = execute(t, "import", xlsxPath, xlsxPath, "-o", outFile, "--out-dir", jsonDir)
	require.NoError(t, err)

	all, err := os.ReadFile(outFile)
	require.NoError(t, err)
	assert.Contains(t, string(all), `"source":"`+xlsxPath+`"`)
	assert.Contains(t, string(all), `"sheet":"People"`)

	one, err := os.ReadFile(filepath.Join(jsonDir, "people.json"))
	require.NoError(t, err)
	assert.JSONEq(t, `[{"name":"Ann","joined":"2024-01-15"},{"name":"Bob","joined":"2023-12-01"}]`, string(one))
	assert.FileExists(t, filepath.Join(jsonDir, "people-2.json"), "the repeated input gets its own file")
}

func TestImportMissingFile(t *testing.T) {
	_, err := execute(t, "import", filepath.Join(t.TempDir(), "missing.xlsx"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no file provided")
}

func TestInvalidLogLevel(t *testing.T) {
	_, err := execute(t, "--log-level", "loud", "import", "x.xlsx")
	assert.Error(t, err)
}

package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/tapsheet-dev/tapsheet/internal/config"
)

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeConfig(t *testing.T, dir string) string {
	t.Helper()
	cfg := config.Default()
	cfg.Groups["glasses"] = []string{"Bière pression", "Verre de vin"}
	cfg.Groups["bottles"] = []string{"Bouteille rouge", "Bouteille blanc"}
	cfg.Layout.OutputDir = filepath.Join(dir, "reports")
	path := filepath.Join(dir, "tapsheet.yaml")
	require.NoError(t, config.Save(path, cfg))
	return path
}

func TestInit_CreatesProject(t *testing.T) {
	dir := t.TempDir()
	out, err := runCommand(t, "init", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Initialized tapsheet project")

	info, err := os.Stat(filepath.Join(dir, "reports"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	cfg, err := config.Load(filepath.Join(dir, "tapsheet.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "sumup-fr", cfg.Format)
}

func TestInit_RefusesExistingConfig(t *testing.T) {
	dir := t.TempDir()
	_, err := runCommand(t, "init", dir)
	require.NoError(t, err)

	_, err = runCommand(t, "init", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestCategories_ListsDistinct(t *testing.T) {
	out, err := runCommand(t, "categories", "../../testdata/sumup_fr.csv")
	require.NoError(t, err)
	assert.Contains(t, out, "Bière pression")
	assert.Contains(t, out, "Bouteille rouge")
}

func TestCategories_UnknownFormat(t *testing.T) {
	_, err := runCommand(t, "categories", "../../testdata/sumup_fr.csv", "--format", "square")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown format "square"`)
}

func TestReport_EmptySelectionIsNotice(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeConfig(t, dir)

	out, err := runCommand(t, "report", "../../testdata/sumup_fr.csv", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "No descriptions selected")
	assert.NoFileExists(t, filepath.Join(dir, "reports", "report.xlsx"))
}

func TestReport_Dashboard(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeConfig(t, dir)
	outPath := filepath.Join(dir, "service.xlsx")
	chartPath := filepath.Join(dir, "service.png")
	csvPath := filepath.Join(dir, "totals.csv")

	out, err := runCommand(t, "report", "../../testdata/sumup_fr.csv",
		"--config", cfgPath,
		"--select", "Bière pression,Verre de vin",
		"--out", outPath,
		"--chart", chartPath,
		"--csv-out", csvPath,
		"--prev", "glasses=4",
	)
	require.NoError(t, err)
	assert.Contains(t, out, "Item totals")
	assert.Contains(t, out, "Report written to "+outPath)

	f, err := excelize.OpenFile(outPath)
	require.NoError(t, err)
	defer f.Close()
	v, err := f.GetCellValue("Service", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Time", v)

	assert.FileExists(t, chartPath)

	csvData, err := os.ReadFile(csvPath)
	require.NoError(t, err)
	assert.Contains(t, string(csvData), "TOTAL")
}

func TestReport_DateRange(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeConfig(t, dir)
	outPath := filepath.Join(dir, "service.xlsx")

	// Jan 4 transaction excluded by the range.
	_, err := runCommand(t, "report", "../../testdata/sumup_fr.csv",
		"--config", cfgPath,
		"--select", "Verre de vin",
		"--from", "2024-01-01", "--to", "2024-01-03",
		"--out", outPath,
	)
	require.NoError(t, err)

	f, err := excelize.OpenFile(outPath)
	require.NoError(t, err)
	defer f.Close()
	// Only the Jan 3 glass of wine remains.
	v, err := f.GetCellValue("Service", "A2")
	require.NoError(t, err)
	assert.Equal(t, "14:07", v)
	v, err = f.GetCellValue("Service", "A3")
	require.NoError(t, err)
	assert.Empty(t, v)
}

func TestReport_DateRangeFlagsTogether(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeConfig(t, dir)

	_, err := runCommand(t, "report", "../../testdata/sumup_fr.csv",
		"--config", cfgPath,
		"--select", "Verre de vin",
		"--from", "2024-01-01",
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be given together")
}

func TestReport_Template(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeConfig(t, dir)

	tmplPath := filepath.Join(dir, "template.xlsx")
	tf := excelize.NewFile()
	require.NoError(t, tf.SetSheetName("Sheet1", "03_01"))
	require.NoError(t, tf.SaveAs(tmplPath))
	require.NoError(t, tf.Close())

	outPath := filepath.Join(dir, "filled.xlsx")
	_, err := runCommand(t, "report", "../../testdata/sumup_fr.csv",
		"--config", cfgPath,
		"--select", "Bière pression",
		"--template", tmplPath,
		"--sheet", "03_01",
		"--out", outPath,
	)
	require.NoError(t, err)

	f, err := excelize.OpenFile(outPath)
	require.NoError(t, err)
	defer f.Close()
	v, err := f.GetCellValue("03_01", "B2")
	require.NoError(t, err)
	assert.Equal(t, "Bière pression", v)
	v, err = f.GetCellValue("03_01", "E3")
	require.NoError(t, err)
	assert.Equal(t, "TOTAL", v)
}

func TestReport_TemplateRequiresSheet(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeConfig(t, dir)

	_, err := runCommand(t, "report", "../../testdata/sumup_fr.csv",
		"--config", cfgPath,
		"--select", "Bière pression",
		"--template", filepath.Join(dir, "template.xlsx"),
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--sheet is required")
}

func TestReport_NoteForUngroupedSelection(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "tapsheet.yaml")
	require.NoError(t, config.Save(cfgPath, config.Default()))

	out, err := runCommand(t, "report", "../../testdata/sumup_fr.csv",
		"--config", cfgPath,
		"--select", "Bière pression",
		"--out", filepath.Join(dir, "r.xlsx"),
	)
	require.NoError(t, err)
	assert.Contains(t, out, `"Bière pression" is not in any KPI group`)
}

func TestReport_BadPrev(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeConfig(t, dir)

	_, err := runCommand(t, "report", "../../testdata/sumup_fr.csv",
		"--config", cfgPath,
		"--select", "Bière pression",
		"--prev", "glasses",
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "want group=quantity")
}

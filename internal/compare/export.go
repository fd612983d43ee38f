package compare

import (
	"encoding/json"
	"io"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/m-aljasem/Sample-Size-Calculator/internal/model"
)

// Export formats.
const (
	FormatCSV  = "csv"
	FormatJSON = "json"
	FormatXLSX = "xlsx"
)

// SheetName is the worksheet written by ExportXLSX.
const SheetName = "Comparison"

var header = []string{"Scenario", "Calculator", "Sample Size", "Adjusted Sample Size", "Total", "Error"}

// Export renders comparisons as CSV or indented JSON. Any format other than
// csv produces JSON.
func Export(comparisons []model.Comparison, format string) (string, error) {
	if strings.EqualFold(format, FormatCSV) {
		return exportCSV(comparisons), nil
	}
	if comparisons == nil {
		comparisons = []model.Comparison{}
	}
	b, err := json.MarshalIndent(comparisons, "", "  ")
	if err != nil {
		return "", eris.Wrap(err, "compare: marshal comparisons")
	}
	return string(b), nil
}

// exportCSV joins fields with bare commas and rows with "\n". Fields are not
// quoted.
func exportCSV(comparisons []model.Comparison) string {
	lines := make([]string, 0, len(comparisons)+1)
	lines = append(lines, strings.Join(header, ","))
	for _, c := range comparisons {
		lines = append(lines, strings.Join(row(c), ","))
	}
	return strings.Join(lines, "\n")
}

func row(c model.Comparison) []string {
	errText := "None"
	if c.Summary.Error != nil && *c.Summary.Error != "" {
		errText = *c.Summary.Error
	}
	return []string{
		c.Scenario.Name,
		c.Scenario.CalculatorKey,
		numOrNA(c.Summary.SampleSize),
		numOrNA(c.Summary.SampleSizeAdjusted),
		numOrNA(c.Summary.Total),
		errText,
	}
}

func numOrNA(v *float64) string {
	if v == nil || *v == 0 {
		return "N/A"
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

// ExportXLSX writes the CSV table to a single-sheet workbook.
func ExportXLSX(w io.Writer, comparisons []model.Comparison) error {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet(SheetName)
	if err != nil {
		return eris.Wrap(err, "compare: add sheet")
	}

	addRow(sheet, header)
	for _, c := range comparisons {
		addRow(sheet, row(c))
	}

	if err := f.Write(w); err != nil {
		return eris.Wrap(err, "compare: write xlsx")
	}
	return nil
}

func addRow(sheet *xlsx.Sheet, cells []string) {
	r := sheet.AddRow()
	for _, v := range cells {
		r.AddCell().SetString(v)
	}
}

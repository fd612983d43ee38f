package main

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"

	"github.com/m-aljasem/Sample-Size-Calculator/internal/compare"
	"github.com/m-aljasem/Sample-Size-Calculator/internal/model"
)

func testScenarios() []model.Scenario {
	return []model.Scenario{
		compare.NewScenario("base", model.Inputs{"alpha": 0.05, "beta": 0.2, "p1": 0.6, "p2": 0.4}, "test2Proportions"),
		compare.NewScenario("bad", model.Inputs{}, "unknownDesign"),
	}
}

func TestRunCompare_CSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, runCompare(context.Background(), &buf, testScenarios(), compare.FormatCSV, 2))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Scenario,Calculator,Sample Size,Adjusted Sample Size,Total,Error", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "base,test2Proportions,97,N/A,"))
	assert.Equal(t, "bad,unknownDesign,N/A,N/A,N/A,Calculator function not found", lines[2])
}

func TestRunCompare_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, runCompare(context.Background(), &buf, testScenarios(), compare.FormatJSON, 1))

	var rows []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, "base", rows[0]["scenario"].(map[string]any)["name"])
}

func TestRunCompare_XLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, runCompare(context.Background(), &buf, testScenarios(), compare.FormatXLSX, 2))

	f, err := xlsx.OpenBinary(buf.Bytes())
	require.NoError(t, err)
	sheet, ok := f.Sheet[compare.SheetName]
	require.True(t, ok)
	require.Len(t, sheet.Rows, 3)
	assert.Equal(t, "base", sheet.Rows[1].Cells[0].String())
}

func TestRunCompare_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var buf bytes.Buffer
	err := runCompare(ctx, &buf, testScenarios(), compare.FormatCSV, 1)
	assert.Error(t, err)
}

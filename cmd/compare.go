package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/m-aljasem/Sample-Size-Calculator/internal/compare"
	"github.com/m-aljasem/Sample-Size-Calculator/internal/model"
)

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Evaluate a file of scenarios side by side",
	Long: "Loads named scenarios from a YAML file, evaluates each against its " +
		"calculator and exports the comparison as csv, json or xlsx.",
	Example: "  samplesize compare --file scenarios.yaml --format xlsx --output comparison.xlsx",
	RunE: func(cmd *cobra.Command, _ []string) error {
		file, _ := cmd.Flags().GetString("file")
		format, _ := cmd.Flags().GetString("format")
		output, _ := cmd.Flags().GetString("output")
		concurrency, _ := cmd.Flags().GetInt("concurrency")

		if format == "" {
			format = cfg.Export.DefaultFormat
		}
		if concurrency <= 0 {
			concurrency = cfg.Engine.CompareConcurrency
		}

		scenarios, err := compare.LoadScenarioFile(file)
		if err != nil {
			return err
		}

		var buf bytes.Buffer
		if err := runCompare(cmd.Context(), &buf, scenarios, format, concurrency); err != nil {
			return err
		}

		if output == "" {
			if format == compare.FormatXLSX {
				return eris.New("xlsx output requires --output")
			}
			_, err := os.Stdout.Write(buf.Bytes())
			return err
		}
		if err := os.WriteFile(output, buf.Bytes(), 0o644); err != nil {
			return eris.Wrapf(err, "compare: write %s", output)
		}
		zap.L().Info("comparison written",
			zap.String("path", output),
			zap.String("format", format),
			zap.Int("scenarios", len(scenarios)),
		)
		return nil
	},
}

// runCompare evaluates scenarios and writes them to w in format.
func runCompare(ctx context.Context, w io.Writer, scenarios []model.Scenario, format string, concurrency int) error {
	comps, err := compare.CompareParallel(ctx, scenarios, engine().Funcs(), concurrency)
	if err != nil {
		return err
	}
	if format == compare.FormatXLSX {
		return compare.ExportXLSX(w, comps)
	}
	out, err := compare.Export(comps, format)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, out)
	return err
}

func init() {
	compareCmd.Flags().String("file", "", "YAML scenario file")
	compareCmd.Flags().String("format", "", "export format: csv, json or xlsx (default from config)")
	compareCmd.Flags().String("output", "", "write to this path instead of stdout")
	compareCmd.Flags().Int("concurrency", 0, "parallel evaluations (default from config)")
	_ = compareCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(compareCmd)
}

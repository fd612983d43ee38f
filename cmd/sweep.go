package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/m-aljasem/Sample-Size-Calculator/internal/calc"
	"github.com/m-aljasem/Sample-Size-Calculator/internal/model"
	"github.com/m-aljasem/Sample-Size-Calculator/internal/sensitivity"
)

var sweepCmd = &cobra.Command{
	Use:     "sweep <design>",
	Short:   "Trace how the sample size responds to one or more inputs",
	Example: "  samplesize sweep test2Means --defaults --param sd1:5:25:4 --param mu2:11:15",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sets, _ := cmd.Flags().GetStringArray("set")
		specs, _ := cmd.Flags().GetStringArray("param")
		defaults, _ := cmd.Flags().GetBool("defaults")
		asJSON, _ := cmd.Flags().GetBool("json")

		d, ok := engine().Lookup(args[0])
		if !ok {
			return eris.Errorf("unknown design %q", args[0])
		}
		base := model.Inputs{}
		if defaults {
			base = d.Defaults
		}
		in, err := parseSets(base, sets)
		if err != nil {
			return err
		}
		params, err := parseParams(specs)
		if err != nil {
			return err
		}

		sweeps := sensitivity.MultiRange(d.Func, in, params)
		ext := sensitivity.Extremes(sweeps)
		if asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(map[string]any{"sweeps": sweeps, "extremes": ext})
		}
		formatSweeps(os.Stdout, d, sweeps, ext)
		return nil
	},
}

// parseParams reads name:min:max[:steps] specs.
func parseParams(specs []string) ([]sensitivity.Param, error) {
	if len(specs) == 0 {
		return nil, eris.New("at least one --param is required")
	}
	params := make([]sensitivity.Param, 0, len(specs))
	for _, spec := range specs {
		parts := strings.Split(spec, ":")
		if len(parts) < 3 || len(parts) > 4 || parts[0] == "" {
			return nil, eris.Errorf("invalid --param %q, want name:min:max[:steps]", spec)
		}
		lo, err := parseNumber(parts[1])
		if err != nil {
			return nil, eris.Wrapf(err, "invalid min in --param %q", spec)
		}
		hi, err := parseNumber(parts[2])
		if err != nil {
			return nil, eris.Wrapf(err, "invalid max in --param %q", spec)
		}
		p := sensitivity.Param{Name: parts[0], Min: lo, Max: hi}
		if len(parts) == 4 {
			steps, err := strconv.Atoi(parts[3])
			if err != nil || steps < 0 {
				return nil, eris.Errorf("invalid steps in --param %q", spec)
			}
			p.Steps = steps
		}
		params = append(params, p)
	}
	return params, nil
}

func formatSweeps(w io.Writer, d calc.Design, sweeps []model.ParamSweep, ext model.SweepExtremes) {
	fmt.Fprintf(w, "%s\n", bold(d.Title))
	for _, sw := range sweeps {
		fmt.Fprintf(w, "\n%s (%g to %g)\n", sw.ParamLabel, sw.MinValue, sw.MaxValue)
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "VALUE\tSAMPLE SIZE\tADJUSTED\tTOTAL")
		for _, pt := range sw.Results {
			fmt.Fprintf(tw, "%g\t%g\t%s\t%s\n", pt.ParamValue, pt.SampleSize, optional(pt.SampleSizeAdjusted), optional(pt.Total))
		}
		tw.Flush() //nolint:errcheck
		if len(sw.Results) == 0 {
			fmt.Fprintln(w, yellow("no valid results in range"))
		}
	}
	fmt.Fprintf(w, "\nRange: %g to %g (spread %g)\n", ext.Min, ext.Max, ext.Range)
}

func optional(v *float64) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func init() {
	sweepCmd.Flags().StringArray("param", nil, "swept input as name:min:max[:steps] (repeatable)")
	sweepCmd.Flags().StringArray("set", nil, "fixed input as name=value (repeatable)")
	sweepCmd.Flags().Bool("defaults", false, "start from the design's example inputs")
	sweepCmd.Flags().Bool("json", false, "print sweeps as JSON")
	rootCmd.AddCommand(sweepCmd)
}

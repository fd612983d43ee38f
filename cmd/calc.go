package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/m-aljasem/Sample-Size-Calculator/internal/advisory"
	"github.com/m-aljasem/Sample-Size-Calculator/internal/calc"
	"github.com/m-aljasem/Sample-Size-Calculator/internal/model"
)

// calcOptions are the flags shared by calc and power.
type calcOptions struct {
	sets     []string
	defaults bool
	asJSON   bool
}

type calcOutput struct {
	Design         string                `json:"design"`
	Inputs         model.Inputs          `json:"inputs"`
	Result         model.Result          `json:"result"`
	InputAdvisory  advisory.Report       `json:"inputAdvisory"`
	ResultAdvisory advisory.ResultReport `json:"resultAdvisory"`
}

var calcOpts calcOptions

var calcCmd = &cobra.Command{
	Use:   "calc <design>",
	Short: "Compute the required sample size for a design",
	Long: "Runs one calculator. Inputs are given as --set name=value; --defaults starts " +
		"from the design's example inputs. Run `samplesize designs` for the keys.",
	Example: "  samplesize calc test2Proportions --set p1=0.6 --set p2=0.4 --set alpha=0.05 --set beta=0.2",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCalc(os.Stdout, engine(), args[0], "", calcOpts)
	},
}

var powerOpts calcOptions

var powerCmd = &cobra.Command{
	Use:   "power <design>",
	Short: "Estimate post-hoc power for a fixed sample size",
	Example: "  samplesize power powerTest2Means --set n=100 --set mu1=10 --set mu2=12 " +
		"--set sd1=5 --set sd2=5 --set alpha=0.05",
	Args:      cobra.ExactArgs(1),
	ValidArgs: designKeys(calc.GroupPower),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCalc(os.Stdout, engine(), args[0], calc.GroupPower, powerOpts)
	},
}

func designKeys(g calc.Group) []string {
	ds := calc.ByGroup(g)
	keys := make([]string, len(ds))
	for i, d := range ds {
		keys[i] = d.Key
	}
	return keys
}

// runCalc evaluates one design and prints the result with its advisories.
// A non-empty group restricts the accepted keys.
func runCalc(w io.Writer, e *calc.Engine, key string, group calc.Group, opts calcOptions) error {
	d, ok := e.Lookup(key)
	if !ok || (group != "" && d.Group != group) {
		return eris.Errorf("unknown design %q", key)
	}

	base := model.Inputs{}
	if opts.defaults {
		base = d.Defaults
	}
	in, err := parseSets(base, opts.sets)
	if err != nil {
		return err
	}

	res := d.Func(in)
	zap.L().Debug("calc: evaluated",
		zap.String("design", key),
		zap.Bool("ok", res.OK()),
	)

	out := calcOutput{
		Design:         key,
		Inputs:         in,
		Result:         res,
		InputAdvisory:  advisory.CheckInputs(in, key),
		ResultAdvisory: advisory.CheckResult(res),
	}
	if opts.asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	fmt.Fprintf(w, "%s\n", bold(d.Title))
	printInputs(w, in)
	printResult(w, res)
	printReport(w, out.InputAdvisory, out.ResultAdvisory)
	return nil
}

func addCalcFlags(cmd *cobra.Command, opts *calcOptions) {
	cmd.Flags().StringArrayVar(&opts.sets, "set", nil, "input as name=value (repeatable)")
	cmd.Flags().BoolVar(&opts.defaults, "defaults", false, "start from the design's example inputs")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "print the result as JSON")
}

func init() {
	addCalcFlags(calcCmd, &calcOpts)
	addCalcFlags(powerCmd, &powerOpts)
	rootCmd.AddCommand(calcCmd, powerCmd)
}

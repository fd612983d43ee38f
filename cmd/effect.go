package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/m-aljasem/Sample-Size-Calculator/internal/effectsize"
)

var effectCmd = &cobra.Command{
	Use:   "effect",
	Short: "Convert test statistics to effect sizes and grade them",
}

var effectConvertCmd = &cobra.Command{
	Use:   "convert <t|f|chi|p> <statistic>",
	Short: "Convert a reported statistic to an effect size",
	Example: "  samplesize effect convert t 2.5 --n1 50 --n2 50\n" +
		"  samplesize effect convert chi 12.4 --n 200 --df 2",
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		stat, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return eris.Errorf("invalid statistic %q", args[1])
		}
		f := cmd.Flags()
		n1, _ := f.GetFloat64("n1")
		n2, _ := f.GetFloat64("n2")
		df1, _ := f.GetFloat64("df1")
		df2, _ := f.GetFloat64("df2")
		n, _ := f.GetFloat64("n")
		df, _ := f.GetInt("df")
		oneTailed, _ := f.GetBool("one-tailed")
		field, _ := f.GetString("field")

		var v float64
		typ := effectsize.CohensD
		switch args[0] {
		case "t":
			v = effectsize.FromT(stat, n1, n2)
		case "f":
			v = effectsize.FromF(stat, df1, df2)
		case "chi":
			v = effectsize.FromChiSquare(stat, n, df)
			typ = effectsize.Correlation
		case "p":
			v = effectsize.FromPValue(stat, n1, n2, !oneTailed)
		default:
			return eris.Errorf("unknown statistic kind %q (want t, f, chi or p)", args[0])
		}
		return printEffect(os.Stdout, v, typ, field)
	},
}

var effectInterpretCmd = &cobra.Command{
	Use:   "interpret <value>",
	Short: "Grade an effect size against field benchmarks",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return eris.Errorf("invalid effect size %q", args[0])
		}
		typ, _ := cmd.Flags().GetString("type")
		field, _ := cmd.Flags().GetString("field")
		return printEffect(os.Stdout, v, typ, field)
	},
}

func printEffect(w io.Writer, v float64, typ, field string) error {
	if !finite(v) {
		return eris.New("conversion produced a non-finite effect size; check the sample sizes and degrees of freedom")
	}
	th := effectsize.Lookup(typ, field)
	fmt.Fprintf(w, "Effect size (%s): %s\n", typ, bold(strconv.FormatFloat(v, 'f', 4, 64)))
	fmt.Fprintf(w, "Magnitude (%s): %s\n", field, bold(string(effectsize.Interpret(v, typ, field))))
	fmt.Fprintf(w, "Thresholds: small %g, medium %g, large %g\n", th.Small, th.Medium, th.Large)
	return nil
}

func init() {
	cf := effectConvertCmd.Flags()
	cf.Float64("n1", 0, "group 1 size (t, p)")
	cf.Float64("n2", 0, "group 2 size (t, p)")
	cf.Float64("df1", 0, "numerator degrees of freedom (f)")
	cf.Float64("df2", 0, "denominator degrees of freedom (f)")
	cf.Float64("n", 0, "total sample size (chi)")
	cf.Int("df", 1, "degrees of freedom (chi)")
	cf.Bool("one-tailed", false, "treat the p-value as one-tailed (p)")
	cf.String("field", effectsize.FieldDefault, "benchmark field: default, psychology, medicine, education")

	effectInterpretCmd.Flags().String("type", effectsize.CohensD, "effect type: cohensD, correlation, or")
	effectInterpretCmd.Flags().String("field", effectsize.FieldDefault, "benchmark field: default, psychology, medicine, education")

	effectCmd.AddCommand(effectConvertCmd, effectInterpretCmd)
	rootCmd.AddCommand(effectCmd)
}

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/m-aljasem/Sample-Size-Calculator/internal/calc"
)

var designsCmd = &cobra.Command{
	Use:   "designs",
	Short: "List the available study designs",
	RunE: func(cmd *cobra.Command, _ []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")
		group, _ := cmd.Flags().GetString("group")

		ds := filterDesigns(engine().Designs(), calc.Group(group))
		if asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(ds)
		}
		formatDesignList(os.Stdout, ds)
		return nil
	},
}

func formatDesignList(w io.Writer, ds []calc.Design) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "KEY\tGROUP\tTITLE\tINPUTS")
	for _, d := range ds {
		names := make([]string, len(d.Fields))
		for i, f := range d.Fields {
			names[i] = f.Name
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", d.Key, d.Group, d.Title, strings.Join(names, ","))
	}
	tw.Flush() //nolint:errcheck
}

func filterDesigns(ds []calc.Design, g calc.Group) []calc.Design {
	if g == "" {
		return ds
	}
	var out []calc.Design
	for _, d := range ds {
		if d.Group == g {
			out = append(out, d)
		}
	}
	return out
}

func init() {
	designsCmd.Flags().Bool("json", false, "print full design metadata as JSON")
	designsCmd.Flags().String("group", "", "filter by group (estimation, hypothesis, rates, power)")
	rootCmd.AddCommand(designsCmd)
}

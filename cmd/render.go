package main

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"

	"github.com/fatih/color"

	"github.com/m-aljasem/Sample-Size-Calculator/internal/advisory"
	"github.com/m-aljasem/Sample-Size-Calculator/internal/model"
)

var (
	bold   = color.New(color.Bold).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	green  = color.New(color.FgGreen).SprintFunc()
)

const defaultLabel = "Required Sample Size"

func printResult(w io.Writer, r model.Result) {
	switch r.Shape() {
	case model.ShapeSingle:
		s := r.Single
		label := s.Label
		if label == "" {
			label = defaultLabel
		}
		fmt.Fprintf(w, "%s: %s\n", label, bold(s.Value))
		if s.Note != "" {
			fmt.Fprintf(w, "  %s\n", s.Note)
		}
		if a := s.Adjusted; a != nil {
			fmt.Fprintf(w, "Adjusted for %s dropout: %s\n", percent(a.DropoutRate), bold(a.Value))
		}
	case model.ShapeMulti:
		m := r.Multi
		fmt.Fprintf(w, "%s\n", m.Label)
		fmt.Fprintf(w, "  %s: %s\n", m.Label1, bold(m.Value))
		fmt.Fprintf(w, "  %s: %s\n", m.Label2, bold(m.Value2))
		fmt.Fprintf(w, "  Total: %s\n", bold(m.Total))
		if m.AllocationRatio != 0 {
			fmt.Fprintf(w, "  Allocation ratio: %g\n", m.AllocationRatio)
		}
		if m.Note != "" {
			fmt.Fprintf(w, "  %s\n", m.Note)
		}
		if a := m.Adjusted; a != nil {
			fmt.Fprintf(w, "Adjusted for %s dropout: %d / %d (total %s)\n",
				percent(a.DropoutRate), a.Value, a.Value2, bold(a.Total))
		}
	case model.ShapePower:
		p := r.Power
		fmt.Fprintf(w, "Power: %s (%.2f)\n", bold(fmt.Sprintf("%d%%", p.PowerPercent)), p.Value)
	default:
		fmt.Fprintf(w, "%s %s\n", red("error:"), r.Error)
	}
}

func percent(rate float64) string {
	return fmt.Sprintf("%g%%", math.Round(rate*1000)/10)
}

func printWarnings(w io.Writer, ws []model.Warning) {
	for _, wr := range ws {
		tag := cyan("[info]")
		if wr.Severity == model.SeverityWarning {
			tag = yellow("[warning]")
		}
		fmt.Fprintf(w, "%s %s\n", tag, wr.Message)
	}
}

func printReport(w io.Writer, in advisory.Report, out advisory.ResultReport) {
	for _, e := range in.Errors {
		fmt.Fprintf(w, "%s %s\n", red("[invalid]"), e)
	}
	for _, h := range in.Hints {
		fmt.Fprintf(w, "%s %s: %s\n", cyan("[hint]"), h.Field, h.Suggestion)
	}
	printWarnings(w, in.Warnings)
	printWarnings(w, out.Warnings)
	if len(in.Errors) == 0 && len(in.Warnings) == 0 && len(out.Warnings) == 0 {
		fmt.Fprintln(w, green("No advisories."))
	}
}

func printInputs(w io.Writer, in model.Inputs) {
	keys := make([]string, 0, len(in))
	for k := range in {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%v", k, in[k])
	}
	fmt.Fprintf(w, "Inputs: %s\n", strings.Join(parts, " "))
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

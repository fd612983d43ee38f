package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/m-aljasem/Sample-Size-Calculator/internal/compare"
	"github.com/m-aljasem/Sample-Size-Calculator/internal/model"
	"github.com/m-aljasem/Sample-Size-Calculator/internal/store"
)

var scenariosCmd = &cobra.Command{
	Use:   "scenarios",
	Short: "Manage saved scenarios",
	Long:  "Commands for saving, listing, showing and deleting scenarios in the configured store.",
}

// -- scenarios save --

var scenariosSaveCmd = &cobra.Command{
	Use:   "save <design>",
	Short: "Save a named input set for a design",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		d, ok := engine().Lookup(args[0])
		if !ok {
			return eris.Errorf("unknown design %q", args[0])
		}
		name, _ := cmd.Flags().GetString("name")
		sets, _ := cmd.Flags().GetStringArray("set")
		defaults, _ := cmd.Flags().GetBool("defaults")

		base := model.Inputs{}
		if defaults {
			base = d.Defaults
		}
		in, err := parseSets(base, sets)
		if err != nil {
			return err
		}
		if name == "" {
			name = d.Title
		}

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		sc := compare.NewScenario(name, in, d.Key)
		if err := st.SaveScenario(ctx, sc); err != nil {
			return eris.Wrap(err, "scenarios save")
		}
		fmt.Fprintln(os.Stdout, sc.ID)
		return nil
	},
}

// -- scenarios list --

var scenariosListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved scenarios, newest first",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		key, _ := cmd.Flags().GetString("calculator")
		limit, _ := cmd.Flags().GetInt("limit")

		list, err := st.ListScenarios(ctx, store.ScenarioFilter{CalculatorKey: key, Limit: limit})
		if err != nil {
			return eris.Wrap(err, "scenarios list")
		}
		if len(list) == 0 {
			fmt.Fprintln(os.Stderr, "No scenarios found.")
			return nil
		}
		formatScenarioList(os.Stdout, list)
		return nil
	},
}

// -- scenarios show --

var scenariosShowCmd = &cobra.Command{
	Use:   "show <scenario-id>",
	Short: "Show a scenario and its current result",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		sc, err := st.GetScenario(ctx, args[0])
		if err != nil {
			return eris.Wrap(err, "scenarios show")
		}

		comp := compare.Compare([]model.Scenario{*sc}, engine().Funcs())[0]
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(comp)
	},
}

// -- scenarios delete --

var scenariosDeleteCmd = &cobra.Command{
	Use:   "delete <scenario-id>",
	Short: "Delete a saved scenario",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		if err := st.DeleteScenario(ctx, args[0]); err != nil {
			return eris.Wrap(err, "scenarios delete")
		}
		fmt.Fprintf(os.Stderr, "Deleted %s\n", args[0])
		return nil
	},
}

func formatScenarioList(w io.Writer, list []model.Scenario) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tCALCULATOR\tCREATED")
	for _, sc := range list {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", sc.ID, sc.Name, sc.CalculatorKey, sc.Timestamp)
	}
	tw.Flush() //nolint:errcheck
}

func init() {
	scenariosSaveCmd.Flags().String("name", "", "scenario name (default: design title)")
	scenariosSaveCmd.Flags().StringArray("set", nil, "input as name=value (repeatable)")
	scenariosSaveCmd.Flags().Bool("defaults", false, "start from the design's example inputs")

	scenariosListCmd.Flags().String("calculator", "", "filter by design key")
	scenariosListCmd.Flags().Int("limit", 100, "max scenarios to list")

	scenariosCmd.AddCommand(scenariosSaveCmd, scenariosListCmd, scenariosShowCmd, scenariosDeleteCmd)
	rootCmd.AddCommand(scenariosCmd)
}

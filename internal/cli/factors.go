package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/carbondesk/carbondesk/internal/factors"
)

// newFactorsCmd creates the `factors` command group.
func newFactorsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "factors",
		Short: "Inspect available emission factors",
	}
	cmd.AddCommand(newFactorsListCmd())
	return cmd
}

func newFactorsListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List emission factors matching the given filters",
		Example: `  carbondesk factors list
  carbondesk factors list --fuel-type natural_gas
  carbondesk factors list --category electricity --region CAMX`,
		RunE: runFactorsList,
	}

	cmd.Flags().String("source", "", "filter by publishing source")
	cmd.Flags().String("category", "", "filter by activity family (fuel, electricity)")
	cmd.Flags().String("fuel-type", "", "filter by fuel key")
	cmd.Flags().String("region", "", "filter by grid region")
	cmd.Flags().Bool("market", false, "only contractual-instrument factors")
	cmd.Flags().String("format", "text", "output format: text or json")
	return cmd
}

func runFactorsList(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	provider, err := buildProvider(cmd, cfg)
	if err != nil {
		return err
	}

	params := factors.LookupParams{}
	params.Source, _ = cmd.Flags().GetString("source")
	params.Category, _ = cmd.Flags().GetString("category")
	params.FuelType, _ = cmd.Flags().GetString("fuel-type")
	params.Region, _ = cmd.Flags().GetString("region")
	params.MarketOnly, _ = cmd.Flags().GetBool("market")

	matched, err := provider.EmissionFactors(cmd.Context(), params)
	if err != nil {
		return err
	}

	if format, _ := cmd.Flags().GetString("format"); format == "json" {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(matched)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "KEY\tREGION\tUNIT\tKG CO2E/UNIT\tSOURCE\tVINTAGE\tMARKET")
	for _, f := range matched {
		fmt.Fprintf(w, "%s\t%s\t%s\t%g\t%s\t%d\t%t\n",
			f.Key, f.Region, f.Unit, f.KgCO2ePerUnit, f.Source, f.Vintage, f.Market)
	}
	return w.Flush()
}

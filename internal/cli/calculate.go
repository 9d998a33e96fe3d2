package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/carbondesk/carbondesk/internal/engine"
	"github.com/carbondesk/carbondesk/internal/ghg"
	"github.com/carbondesk/carbondesk/internal/report"
)

// newCalculateCmd creates the `calculate` command group with one
// subcommand per GHG scope.
func newCalculateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calculate",
		Short: "Calculate CO2e emissions from a request file",
		Long: `Calculate runs the fail-fast guard over a request, resolves emission
factors, and computes the scope total in metric tons CO2e. Unlike validate,
a request that fails the guard is rejected with an error.`,
	}

	cmd.AddCommand(
		newScopeCmd("scope1", "Calculate Scope 1 (direct) emissions", runScope1),
		newScopeCmd("scope2", "Calculate Scope 2 (purchased energy) emissions", runScope2),
		newScopeCmd("scope3", "Calculate Scope 3 (value chain) emissions", runScope3),
	)
	return cmd
}

func newScopeCmd(use, short string, run func(*cobra.Command, []string) error) *cobra.Command {
	cmd := &cobra.Command{
		Use:     use,
		Short:   short,
		Example: fmt.Sprintf("  carbondesk calculate %s --input request.json --audit", use),
		RunE:    run,
	}
	cmd.Flags().String("input", "", "request JSON file (required)")
	cmd.Flags().Bool("audit", false, "print the per-line-item audit trail")
	cmd.Flags().String("format", "text", "output format: text or json")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

func runScope1(cmd *cobra.Command, _ []string) error {
	var req ghg.Scope1Request
	eng, err := setupCalculation(cmd, &req)
	if err != nil {
		return err
	}
	calc, err := eng.CalculateScope1(cmd.Context(), &req)
	if err != nil {
		return err
	}
	return printCalculation(cmd, eng, calc)
}

func runScope2(cmd *cobra.Command, _ []string) error {
	var req ghg.Scope2Request
	eng, err := setupCalculation(cmd, &req)
	if err != nil {
		return err
	}
	calc, err := eng.CalculateScope2(cmd.Context(), &req)
	if err != nil {
		return err
	}
	return printCalculation(cmd, eng, calc)
}

func runScope3(cmd *cobra.Command, _ []string) error {
	var req ghg.Scope3Request
	eng, err := setupCalculation(cmd, &req)
	if err != nil {
		return err
	}
	calc, err := eng.CalculateScope3(cmd.Context(), &req)
	if err != nil {
		return err
	}
	return printCalculation(cmd, eng, calc)
}

// setupCalculation reads the request file into req and assembles the
// engine with its configured collaborators.
func setupCalculation(cmd *cobra.Command, req any) (*engine.Engine, error) {
	input, _ := cmd.Flags().GetString("input")
	data, err := os.ReadFile(input)
	if err != nil {
		return nil, fmt.Errorf("reading request file: %w", err)
	}
	if err := json.Unmarshal(data, req); err != nil {
		return nil, fmt.Errorf("parsing request file: %w", err)
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	provider, err := buildProvider(cmd, cfg)
	if err != nil {
		return nil, err
	}
	return engine.New(provider, buildStore(cfg)), nil
}

// printCalculation renders the result and, when requested, its audit trail.
func printCalculation(cmd *cobra.Command, eng *engine.Engine, calc *ghg.EmissionCalculation) error {
	format, _ := cmd.Flags().GetString("format")
	audit, _ := cmd.Flags().GetBool("audit")

	var trail []ghg.AuditEntry
	if audit {
		var err error
		trail, err = eng.AuditTrail(cmd.Context(), calc.ID)
		if err != nil {
			return err
		}
	}

	if format == "json" {
		payload := struct {
			Calculation *ghg.EmissionCalculation `json:"calculation"`
			AuditTrail  []ghg.AuditEntry         `json:"audit_trail,omitempty"`
		}{calc, trail}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(payload)
	}

	fmt.Fprint(cmd.OutOrStdout(), report.Calculation(calc))
	if audit {
		fmt.Fprint(cmd.OutOrStdout(), report.AuditTrail(trail))
	}
	return nil
}

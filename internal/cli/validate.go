package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/carbondesk/carbondesk/internal/ghg"
	"github.com/carbondesk/carbondesk/internal/report"
	"github.com/carbondesk/carbondesk/internal/validation"
)

// newValidateCmd creates the `validate` command: run the full rule set over
// a request file and print findings without blocking on them.
func newValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a calculation request without calculating",
		Long: `Validate runs structural, range, and consistency checks over a calculation
request and reports errors, warnings, and the 0-100 data-quality score.
Validation never blocks on bad data; use the exit code to gate automation.`,
		Example: `  carbondesk validate --input scope1.json
  carbondesk validate --input requests.json --bulk --format json`,
		RunE: runValidate,
	}

	cmd.Flags().String("input", "", "request JSON file (required)")
	cmd.Flags().Bool("bulk", false, "treat input as a JSON array of requests, validated independently")
	cmd.Flags().String("format", "text", "output format: text or json")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

func runValidate(cmd *cobra.Command, _ []string) error {
	input, _ := cmd.Flags().GetString("input")
	bulk, _ := cmd.Flags().GetBool("bulk")
	format, _ := cmd.Flags().GetString("format")

	data, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("reading request file: %w", err)
	}

	validator := validation.New()

	var results []validation.Result
	if bulk {
		results, err = validateBulkPayload(cmd, data, validator)
		if err != nil {
			return err
		}
	} else {
		results = []validation.Result{validateOnePayload(cmd, data, validator)}
	}

	if format == "json" {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if bulk {
			err = enc.Encode(results)
		} else {
			err = enc.Encode(results[0])
		}
		if err != nil {
			return err
		}
		return invalidCountError(results)
	}

	for i, result := range results {
		if bulk {
			fmt.Fprintf(cmd.OutOrStdout(), "--- request[%d]\n", i)
		}
		fmt.Fprint(cmd.OutOrStdout(), report.ValidationResult(result))
	}
	return invalidCountError(results)
}

// invalidCountError turns failed results into a non-zero exit so automation
// can gate on validation regardless of output format.
func invalidCountError(results []validation.Result) error {
	invalid := 0
	for _, result := range results {
		if !result.IsValid {
			invalid++
		}
	}
	if invalid > 0 {
		return fmt.Errorf("%d of %d request(s) failed validation", invalid, len(results))
	}
	return nil
}

// validateOnePayload parses and validates a single request payload. An
// unparseable payload becomes an INVALID_DATA_TYPE result, not a CLI error:
// the deserialization boundary is where that finding belongs.
func validateOnePayload(cmd *cobra.Command, data []byte, validator *validation.Engine) validation.Result {
	req, err := ghg.ParseRequest(data)
	if err != nil && errors.Is(err, ghg.ErrUnrecognizedRequest) {
		return validator.Validate(cmd.Context(), nil)
	}
	if err != nil {
		return validation.Result{
			IsValid: false,
			Errors: []validation.Issue{{
				Code:     validation.CodeInvalidDataType,
				Message:  err.Error(),
				Field:    "root",
				Severity: validation.SeverityCritical,
			}},
			ValidatedAt: time.Now().UTC(),
		}
	}
	return validator.Validate(cmd.Context(), req)
}

// validateBulkPayload splits a JSON array payload and validates each
// element independently, preserving order.
func validateBulkPayload(cmd *cobra.Command, data []byte, validator *validation.Engine) ([]validation.Result, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("bulk input must be a JSON array of requests: %w", err)
	}

	reqs := make([]ghg.CalculationRequest, len(raw))
	for i, item := range raw {
		// Unrecognizable elements validate as nil, yielding the
		// INVALID_DATA_TYPE result in position.
		if req, err := ghg.ParseRequest(item); err == nil {
			reqs[i] = req
		}
	}
	return validator.ValidateBulk(cmd.Context(), reqs), nil
}

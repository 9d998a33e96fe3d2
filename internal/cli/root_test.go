package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the root command with args and returns stdout and the error.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	// Isolate from the real user config and environment.
	t.Setenv("HOME", t.TempDir())
	t.Setenv("CARBONDESK_BACKEND_URL", "")

	cmd := NewRootCmd("test")
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), err
}

func writeRequestFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "request.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

const validScope1JSON = `{
	"calculation_name": "annual-facility-fuel",
	"company_id": "company-123",
	"reporting_period": {"start_date": "2024-01-01", "end_date": "2024-12-31", "reporting_year": 2024},
	"fuel_data": [{"fuel_type": "natural_gas", "amount": 1000, "unit": "therms"}]
}`

func TestRootCommand(t *testing.T) {
	t.Run("version flag", func(t *testing.T) {
		out, err := execute(t, "--version")
		require.NoError(t, err)
		assert.Contains(t, out, "test")
	})

	t.Run("unknown subcommand", func(t *testing.T) {
		_, err := execute(t, "frobnicate")
		assert.Error(t, err)
	})
}

func TestValidateCommand(t *testing.T) {
	t.Run("valid request", func(t *testing.T) {
		path := writeRequestFile(t, validScope1JSON)
		out, err := execute(t, "validate", "--input", path)
		require.NoError(t, err)
		assert.Contains(t, out, "Request is valid.")
	})

	t.Run("invalid request fails the command", func(t *testing.T) {
		path := writeRequestFile(t, `{"fuel_data": []}`)
		out, err := execute(t, "validate", "--input", path)
		require.Error(t, err)
		assert.Contains(t, out, "INVALID")
	})

	t.Run("unrecognizable payload reports INVALID_DATA_TYPE", func(t *testing.T) {
		path := writeRequestFile(t, `{"company_id": "company-123"}`)
		out, err := execute(t, "validate", "--input", path, "--format", "json")
		require.Error(t, err)
		assert.Contains(t, out, "INVALID_DATA_TYPE")
	})

	t.Run("bulk preserves order", func(t *testing.T) {
		path := writeRequestFile(t, "["+validScope1JSON+`, {"fuel_data": []}]`)
		out, err := execute(t, "validate", "--input", path, "--bulk")
		require.Error(t, err)
		assert.Contains(t, out, "--- request[0]")
		assert.Contains(t, out, "--- request[1]")
		assert.Contains(t, err.Error(), "1 of 2")
	})

	t.Run("missing input flag", func(t *testing.T) {
		_, err := execute(t, "validate")
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := execute(t, "validate", "--input", filepath.Join(t.TempDir(), "absent.json"))
		assert.Error(t, err)
	})
}

func TestCalculateCommand(t *testing.T) {
	t.Run("scope1 text output", func(t *testing.T) {
		path := writeRequestFile(t, validScope1JSON)
		out, err := execute(t, "calculate", "scope1", "--input", path)
		require.NoError(t, err)
		assert.Contains(t, out, "5.300 tCO2e")
		assert.Contains(t, out, "company-123")
	})

	t.Run("scope1 with audit trail", func(t *testing.T) {
		path := writeRequestFile(t, validScope1JSON)
		out, err := execute(t, "calculate", "scope1", "--input", path, "--audit")
		require.NoError(t, err)
		assert.Contains(t, out, "fuel_data[0]")
		assert.Contains(t, out, "natural_gas")
	})

	t.Run("scope2 json output", func(t *testing.T) {
		path := writeRequestFile(t, `{
			"calculation_name": "annual-electricity",
			"company_id": "company-123",
			"reporting_period": {"start_date": "2024-01-01", "end_date": "2024-12-31", "reporting_year": 2024},
			"methodology": "location_based",
			"electricity_data": [{"amount": 100000, "unit": "kWh", "electricity_region": "CAMX"}]
		}`)
		out, err := execute(t, "calculate", "scope2", "--input", path, "--format", "json")
		require.NoError(t, err)
		assert.Contains(t, out, `"total_co2e": 23.1`)
	})

	t.Run("scope3", func(t *testing.T) {
		path := writeRequestFile(t, `{
			"calculation_name": "value-chain",
			"company_id": "company-123",
			"reporting_period": {"start_date": "2024-01-01", "end_date": "2024-12-31", "reporting_year": 2024},
			"categories": [{"category": 6, "quantity": 12000, "unit": "km", "emission_factor": 0.18}]
		}`)
		out, err := execute(t, "calculate", "scope3", "--input", path)
		require.NoError(t, err)
		assert.Contains(t, out, "2.160 tCO2e")
	})

	t.Run("guard rejection is an error", func(t *testing.T) {
		path := writeRequestFile(t, `{
			"company_id": "company-123",
			"reporting_period": {"start_date": "2024-01-01", "end_date": "2024-12-31", "reporting_year": 2024},
			"fuel_data": [{"fuel_type": "natural_gas", "amount": 1000, "unit": "therms"}]
		}`)
		_, err := execute(t, "calculate", "scope1", "--input", path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "calculation_name")
	})

	t.Run("custom dataset dir", func(t *testing.T) {
		datasetDir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(datasetDir, "custom.yaml"), []byte(`
schema_version: "1.0.0"
source: "Test Dataset"
vintage: 2025
factors:
  - key: natural_gas
    unit: therms
    kg_co2e_per_unit: 2.0
`), 0o600))

		path := writeRequestFile(t, validScope1JSON)
		out, err := execute(t, "calculate", "scope1", "--input", path, "--dataset-dir", datasetDir)
		require.NoError(t, err)
		assert.Contains(t, out, "2.000 tCO2e")
	})
}

func TestFactorsListCommand(t *testing.T) {
	t.Run("all factors", func(t *testing.T) {
		out, err := execute(t, "factors", "list")
		require.NoError(t, err)
		assert.Contains(t, out, "natural_gas")
		assert.Contains(t, out, "CAMX")
	})

	t.Run("fuel type filter", func(t *testing.T) {
		out, err := execute(t, "factors", "list", "--fuel-type", "diesel")
		require.NoError(t, err)
		assert.Contains(t, out, "diesel")
		assert.NotContains(t, out, "natural_gas")
	})

	t.Run("json format", func(t *testing.T) {
		out, err := execute(t, "factors", "list", "--region", "CAMX", "--format", "json")
		require.NoError(t, err)
		assert.Contains(t, out, `"kg_co2e_per_unit": 0.231`)
	})
}

func TestMetricsCommandLocalMode(t *testing.T) {
	// No backend configured: metrics degrade to zeroes instead of failing.
	out, err := execute(t, "metrics")
	require.NoError(t, err)
	assert.Contains(t, out, "Validations:")
	assert.Contains(t, out, "0")
}

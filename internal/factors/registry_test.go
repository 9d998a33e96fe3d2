package factors

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDataset(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
}

func TestNewRegistry(t *testing.T) {
	ctx := context.Background()

	t.Run("empty dir keeps built-ins only", func(t *testing.T) {
		r, err := NewRegistry(ctx, t.TempDir())
		require.NoError(t, err)

		got, err := r.EmissionFactors(ctx, LookupParams{})
		require.NoError(t, err)
		assert.Len(t, got, len(builtinFactors))
	})

	t.Run("missing dir is not an error", func(t *testing.T) {
		r, err := NewRegistry(ctx, filepath.Join(t.TempDir(), "nope"))
		require.NoError(t, err)
		require.NotNil(t, r)
	})

	t.Run("no dir configured", func(t *testing.T) {
		r, err := NewRegistry(ctx, "")
		require.NoError(t, err)
		require.NotNil(t, r)
	})

	t.Run("dataset shadows built-in factor", func(t *testing.T) {
		dir := t.TempDir()
		writeDataset(t, dir, "custom.yaml", `
schema_version: "1.1.0"
source: "Utility Supplier Disclosure"
vintage: 2025
factors:
  - key: natural_gas
    unit: therms
    kg_co2e_per_unit: 5.10
  - key: biodiesel
    unit: gal
    kg_co2e_per_unit: 2.49
`)

		r, err := NewRegistry(ctx, dir)
		require.NoError(t, err)

		f, err := FuelFactor(ctx, r, "natural_gas", "therms")
		require.NoError(t, err)
		assert.InDelta(t, 5.10, f.KgCO2ePerUnit, 1e-9)
		assert.Equal(t, "Utility Supplier Disclosure", f.Source)
		assert.Equal(t, 2025, f.Vintage)

		f, err = FuelFactor(ctx, r, "biodiesel", "gal")
		require.NoError(t, err)
		assert.InDelta(t, 2.49, f.KgCO2ePerUnit, 1e-9)
	})

	t.Run("unsupported schema version is skipped", func(t *testing.T) {
		dir := t.TempDir()
		writeDataset(t, dir, "future.yaml", `
schema_version: "2.0.0"
source: "Future Format"
vintage: 2030
factors:
  - key: natural_gas
    unit: therms
    kg_co2e_per_unit: 1.0
`)

		r, err := NewRegistry(ctx, dir)
		require.NoError(t, err)

		f, err := FuelFactor(ctx, r, "natural_gas", "therms")
		require.NoError(t, err)
		assert.InDelta(t, 5.30, f.KgCO2ePerUnit, 1e-9, "built-in must survive a skipped dataset")
	})

	t.Run("malformed dataset is skipped", func(t *testing.T) {
		dir := t.TempDir()
		writeDataset(t, dir, "broken.yaml", `{{{not yaml`)
		writeDataset(t, dir, "good.yaml", `
schema_version: "1.0.0"
source: "Regional Authority"
vintage: 2024
factors:
  - key: grid
    region: TEST
    unit: kwh
    kg_co2e_per_unit: 0.2
`)

		r, err := NewRegistry(ctx, dir)
		require.NoError(t, err)

		f, err := GridFactor(ctx, r, "TEST")
		require.NoError(t, err)
		assert.InDelta(t, 0.2, f.KgCO2ePerUnit, 1e-9)
	})

	t.Run("non-yaml files are ignored", func(t *testing.T) {
		dir := t.TempDir()
		writeDataset(t, dir, "README.md", "not a dataset")

		r, err := NewRegistry(ctx, dir)
		require.NoError(t, err)

		got, err := r.EmissionFactors(ctx, LookupParams{})
		require.NoError(t, err)
		assert.Len(t, got, len(builtinFactors))
	})
}

func TestOverlayMarketFlagSeparation(t *testing.T) {
	// A market factor must never shadow the location factor for the same
	// region; they are distinct table entries.
	ctx := context.Background()
	dir := t.TempDir()
	writeDataset(t, dir, "residual.yaml", `
schema_version: "1.0.0"
source: "Green-e Residual Mix"
vintage: 2025
factors:
  - key: residual_mix
    region: CAMX
    unit: kwh
    kg_co2e_per_unit: 0.31
    market: true
`)

	r, err := NewRegistry(ctx, dir)
	require.NoError(t, err)

	location, err := GridFactor(ctx, r, "CAMX")
	require.NoError(t, err)
	assert.InDelta(t, 0.231, location.KgCO2ePerUnit, 1e-9)

	market, err := MarketFactor(ctx, r, "CAMX")
	require.NoError(t, err)
	assert.InDelta(t, 0.31, market.KgCO2ePerUnit, 1e-9)
}

package factors

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinLookups(t *testing.T) {
	ctx := context.Background()
	p := Builtin{}

	t.Run("fuel factor by type and unit", func(t *testing.T) {
		f, err := FuelFactor(ctx, p, "natural_gas", "therms")
		require.NoError(t, err)
		assert.InDelta(t, 5.30, f.KgCO2ePerUnit, 1e-9)
		assert.Equal(t, 2024, f.Vintage)
	})

	t.Run("fuel lookup is case and alias tolerant", func(t *testing.T) {
		f, err := FuelFactor(ctx, p, "Diesel", "gallons")
		require.NoError(t, err)
		assert.InDelta(t, 10.21, f.KgCO2ePerUnit, 1e-9)
	})

	t.Run("unknown fuel", func(t *testing.T) {
		_, err := FuelFactor(ctx, p, "whale_oil", "gal")
		assert.ErrorIs(t, err, ErrFactorNotFound)
	})

	t.Run("known fuel in unpublished unit", func(t *testing.T) {
		_, err := FuelFactor(ctx, p, "natural_gas", "barrels")
		assert.ErrorIs(t, err, ErrFactorNotFound)
	})

	t.Run("grid factor by region", func(t *testing.T) {
		f, err := GridFactor(ctx, p, "CAMX")
		require.NoError(t, err)
		assert.InDelta(t, 0.231, f.KgCO2ePerUnit, 1e-9)
		assert.False(t, f.Market)
	})

	t.Run("grid lookup is case-insensitive", func(t *testing.T) {
		f, err := GridFactor(ctx, p, "camx")
		require.NoError(t, err)
		assert.Equal(t, "CAMX", f.Region)
	})

	t.Run("market factor exists only where published", func(t *testing.T) {
		f, err := MarketFactor(ctx, p, "us_average")
		require.NoError(t, err)
		assert.True(t, f.Market)
		assert.InDelta(t, 0.428, f.KgCO2ePerUnit, 1e-9)

		_, err = MarketFactor(ctx, p, "CAMX")
		assert.ErrorIs(t, err, ErrFactorNotFound)
	})
}

func TestBuiltinFiltering(t *testing.T) {
	ctx := context.Background()
	p := Builtin{}

	t.Run("category split", func(t *testing.T) {
		fuels, err := p.EmissionFactors(ctx, LookupParams{Category: "fuel"})
		require.NoError(t, err)
		electricity, err := p.EmissionFactors(ctx, LookupParams{Category: "electricity"})
		require.NoError(t, err)

		require.NotEmpty(t, fuels)
		require.NotEmpty(t, electricity)
		for _, f := range fuels {
			assert.Empty(t, f.Region, "fuel factor %q carries a grid region", f.Key)
		}
		for _, f := range electricity {
			assert.NotEmpty(t, f.Region)
		}
	})

	t.Run("source substring filter", func(t *testing.T) {
		got, err := p.EmissionFactors(ctx, LookupParams{Source: "egrid"})
		require.NoError(t, err)
		require.NotEmpty(t, got)
		for _, f := range got {
			assert.Equal(t, "EPA eGRID", f.Source)
		}
	})

	t.Run("market only", func(t *testing.T) {
		got, err := p.EmissionFactors(ctx, LookupParams{MarketOnly: true})
		require.NoError(t, err)
		require.NotEmpty(t, got)
		for _, f := range got {
			assert.True(t, f.Market)
		}
	})

	t.Run("no filters returns the whole table", func(t *testing.T) {
		got, err := p.EmissionFactors(ctx, LookupParams{})
		require.NoError(t, err)
		assert.Len(t, got, len(builtinFactors))
	})
}

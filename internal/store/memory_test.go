package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carbondesk/carbondesk/internal/ghg"
)

func sampleCalc(id, company string, scope ghg.Scope, year int, createdAt time.Time) ghg.EmissionCalculation {
	return ghg.EmissionCalculation{
		ID:            id,
		CompanyID:     company,
		Scope:         scope,
		ReportingYear: year,
		TotalCO2e:     5.3,
		Status:        ghg.StatusCompleted,
		CreatedAt:     createdAt,
	}
}

func TestMemorySaveAndGet(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	calc := sampleCalc("01A", "company-123", ghg.Scope1, 2024, time.Now())
	trail := []ghg.AuditEntry{{ID: "01T", CalculationID: "01A", Key: "natural_gas", KgCO2e: 5300}}
	require.NoError(t, m.Save(ctx, calc, trail))

	got, err := m.Get(ctx, "01A")
	require.NoError(t, err)
	assert.Equal(t, calc, got)

	gotTrail, err := m.AuditTrail(ctx, "01A")
	require.NoError(t, err)
	assert.Equal(t, trail, gotTrail)

	t.Run("unknown id", func(t *testing.T) {
		_, err := m.Get(ctx, "nope")
		assert.ErrorIs(t, err, ErrNotFound)

		_, err = m.AuditTrail(ctx, "nope")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("trail is copied not aliased", func(t *testing.T) {
		gotTrail[0].KgCO2e = -1
		fresh, err := m.AuditTrail(ctx, "01A")
		require.NoError(t, err)
		assert.InDelta(t, 5300, fresh[0].KgCO2e, 1e-9)
	})
}

func TestMemoryList(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	base := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, m.Save(ctx, sampleCalc("01A", "company-123", ghg.Scope1, 2024, base), nil))
	require.NoError(t, m.Save(ctx, sampleCalc("01B", "company-123", ghg.Scope2, 2024, base.Add(time.Hour)), nil))
	require.NoError(t, m.Save(ctx, sampleCalc("01C", "company-456", ghg.Scope1, 2023, base.Add(2*time.Hour)), nil))

	t.Run("newest first", func(t *testing.T) {
		got, err := m.List(ctx, Filters{})
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, "01C", got[0].ID)
		assert.Equal(t, "01B", got[1].ID)
		assert.Equal(t, "01A", got[2].ID)
	})

	t.Run("filter by company", func(t *testing.T) {
		got, err := m.List(ctx, Filters{CompanyID: "company-123"})
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("filter by scope and year", func(t *testing.T) {
		got, err := m.List(ctx, Filters{Scope: ghg.Scope1, ReportingYear: 2023})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "01C", got[0].ID)
	})

	t.Run("filter by status", func(t *testing.T) {
		require.NoError(t, m.SetStatus(ctx, "01A", ghg.StatusApproved))

		got, err := m.List(ctx, Filters{Status: ghg.StatusApproved})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "01A", got[0].ID)
	})

	t.Run("no match", func(t *testing.T) {
		got, err := m.List(ctx, Filters{CompanyID: "company-999"})
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestMemorySetStatus(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	require.NoError(t, m.Save(ctx, sampleCalc("01A", "company-123", ghg.Scope1, 2024, time.Now()), nil))

	require.NoError(t, m.SetStatus(ctx, "01A", ghg.StatusRejected))
	got, err := m.Get(ctx, "01A")
	require.NoError(t, err)
	assert.Equal(t, ghg.StatusRejected, got.Status)

	assert.ErrorIs(t, m.SetStatus(ctx, "nope", ghg.StatusApproved), ErrNotFound)
}

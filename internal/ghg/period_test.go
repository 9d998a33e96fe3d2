package ghg

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Date
	}{
		{"calendar date", `"2024-01-31"`, NewDate(2024, time.January, 31)},
		{"rfc3339 timestamp", `"2024-01-31T00:00:00Z"`, NewDate(2024, time.January, 31)},
		{"null", `null`, Date{}},
		{"empty string", `""`, Date{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Date
			require.NoError(t, json.Unmarshal([]byte(tt.input), &d))
			assert.True(t, d.Equal(tt.want.Time), "got %v want %v", d, tt.want)
		})
	}

	t.Run("garbage errors", func(t *testing.T) {
		var d Date
		assert.Error(t, json.Unmarshal([]byte(`"January 31"`), &d))
	})

	t.Run("marshal round trip", func(t *testing.T) {
		out, err := json.Marshal(NewDate(2024, time.December, 31))
		require.NoError(t, err)
		assert.Equal(t, `"2024-12-31"`, string(out))

		out, err = json.Marshal(Date{})
		require.NoError(t, err)
		assert.Equal(t, `null`, string(out))
	})
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-06-15")
	require.NoError(t, err)
	assert.Equal(t, 2024, d.Year())
	assert.Equal(t, time.June, d.Month())

	_, err = ParseDate("15/06/2024")
	assert.Error(t, err)
}

func TestPeriod(t *testing.T) {
	full2024 := Period{
		StartDate:     NewDate(2024, time.January, 1),
		EndDate:       NewDate(2024, time.December, 31),
		ReportingYear: 2024,
	}

	t.Run("days", func(t *testing.T) {
		assert.Equal(t, 365, full2024.Days())
		assert.Equal(t, 0, Period{}.Days())
	})

	t.Run("chronological", func(t *testing.T) {
		assert.True(t, full2024.Chronological())

		inverted := full2024
		inverted.StartDate, inverted.EndDate = inverted.EndDate, inverted.StartDate
		assert.False(t, inverted.Chronological())

		assert.False(t, Period{}.Chronological())
	})

	t.Run("matches year", func(t *testing.T) {
		assert.True(t, full2024.MatchesYear())

		fiscal := Period{
			StartDate:     NewDate(2023, time.July, 1),
			EndDate:       NewDate(2024, time.June, 30),
			ReportingYear: 2024,
		}
		assert.True(t, fiscal.MatchesYear(), "one matching bound is enough")

		stale := full2024
		stale.ReportingYear = 2021
		assert.False(t, stale.MatchesYear())

		assert.False(t, Period{}.MatchesYear())
	})
}

package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withBuildDate(t *testing.T, date string) {
	t.Helper()
	old := BuildDate
	BuildDate = date
	t.Cleanup(func() { BuildDate = old })
}

func TestCalculateBuildID(t *testing.T) {
	tests := []struct {
		name      string
		date      string
		expected  int
		wantError bool
	}{
		{name: "epoch date", date: "2025-12-04", expected: 0},
		{name: "next day after epoch", date: "2025-12-05", expected: 1},
		{name: "one year later", date: "2026-12-04", expected: 365},
		{name: "date with leap years included", date: "2032-12-04", expected: 2557},
		{name: "invalid format", date: "invalid", wantError: true},
		{name: "empty date", date: "", wantError: true},
		{name: "before epoch", date: "2025-12-03", wantError: true},
	}

	// BuildDate глобальная, поэтому без t.Parallel
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withBuildDate(t, tt.date)

			got, err := CalculateBuildID()
			if tt.wantError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestString(t *testing.T) {
	withBuildDate(t, "2025-12-06")
	assert.Equal(t, "wander-server build 2 (2025-12-06) commit[unknown] branch[unknown] ci[local]", String())

	withBuildDate(t, "")
	assert.Contains(t, String(), "build unknown")
	assert.False(t, Info().Calculated)
}

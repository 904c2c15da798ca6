package pricing

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTable(t *testing.T) {
	tiers := DefaultTable.Tiers()
	require.Len(t, tiers, 3)

	for i := 1; i < len(tiers); i++ {
		assert.Greater(t, tiers[i].CapacityEmailsPerMonth, tiers[i-1].CapacityEmailsPerMonth)
	}

	// Annual billing is never more expensive than monthly billing
	for _, tier := range tiers {
		assert.LessOrEqual(t, tier.AnnualPrice, tier.MonthlyPrice, tier.Name)
	}
}

func TestTablesSelect(t *testing.T) {
	tests := []struct {
		name   string
		emails float64
		want   string
	}{
		{name: "smallest volume", emails: 1, want: "Basic"},
		{name: "inside first tier", emails: 5000, want: "Basic"},
		{name: "exactly at first capacity", emails: 6000, want: "Basic"},
		{name: "just above first capacity", emails: 6001, want: "Pro"},
		{name: "exactly at second capacity", emails: 150000, want: "Pro"},
		{name: "largest tier", emails: 500000, want: "Custom"},
		{name: "above every tier falls back to largest", emails: 2_000_000, want: "Custom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DefaultTable.Select(tt.emails).Name)
		})
	}
}

func TestSelectIsMonotonic(t *testing.T) {
	prev := DefaultTable.Select(0).CapacityEmailsPerMonth
	for emails := 0.0; emails <= 600000; emails += 250 {
		capacity := DefaultTable.Select(emails).CapacityEmailsPerMonth
		require.GreaterOrEqual(t, capacity, prev, "emails=%v", emails)
		prev = capacity
	}
}

func TestCovers(t *testing.T) {
	assert.True(t, DefaultTable.Covers(500000))
	assert.False(t, DefaultTable.Covers(500001))
}

func TestNewTableValidation(t *testing.T) {
	tests := []struct {
		name    string
		tiers   []Tier
		wantErr error
	}{
		{name: "empty", tiers: nil, wantErr: ErrEmptyTable},
		{
			name: "capacities not increasing",
			tiers: []Tier{
				{Name: "A", MonthlyPrice: 10, AnnualPrice: 8, CapacityEmailsPerMonth: 1000},
				{Name: "B", MonthlyPrice: 20, AnnualPrice: 16, CapacityEmailsPerMonth: 1000},
			},
			wantErr: ErrCapacityOrder,
		},
		{
			name:    "negative price",
			tiers:   []Tier{{Name: "A", MonthlyPrice: -1, AnnualPrice: -2, CapacityEmailsPerMonth: 10}},
			wantErr: ErrNegativePrice,
		},
		{
			name:    "annual above monthly",
			tiers:   []Tier{{Name: "A", MonthlyPrice: 10, AnnualPrice: 12, CapacityEmailsPerMonth: 10}},
			wantErr: ErrAnnualAboveMonthly,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := NewTable(tt.tiers)
			assert.Nil(t, table)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestNewTableCopiesInput(t *testing.T) {
	tiers := []Tier{{Name: "A", MonthlyPrice: 10, AnnualPrice: 8, CapacityEmailsPerMonth: 1000}}
	table, err := NewTable(tiers)
	require.NoError(t, err)

	tiers[0].Name = "changed"
	assert.Equal(t, "A", table.Select(1).Name)
}

func TestTierPricing(t *testing.T) {
	pro := DefaultTable.Select(100000)

	assert.Equal(t, 94.0, pro.Price(false))
	assert.Equal(t, 78.3, pro.Price(true))
	assert.InDelta(t, 15.7, pro.AnnualSavings(), 1e-9)
	assert.InDelta(t, 16.70, pro.AnnualDiscountPercent(), 0.01)
	assert.Equal(t, 0.0, Tier{}.AnnualDiscountPercent())
}

func TestTiersINIRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tiers.ini")

	require.NoError(t, WriteTiersINI(DefaultTable, path))

	table, err := LoadTiersINI(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultTable.Tiers(), table.Tiers())
}

func TestLoadTiersINI(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []Tier
		wantErr bool
	}{
		{
			name: "custom table",
			content: `
[Starter]
monthly_price = 20
annual_price = 15
capacity = 1000

[Scale]
monthly_price = 200
annual_price = 150
capacity = 1000000
`,
			want: []Tier{
				{Name: "Starter", MonthlyPrice: 20, AnnualPrice: 15, CapacityEmailsPerMonth: 1000},
				{Name: "Scale", MonthlyPrice: 200, AnnualPrice: 150, CapacityEmailsPerMonth: 1000000},
			},
		},
		{
			name: "missing key",
			content: `
[Starter]
monthly_price = 20
capacity = 1000
`,
			wantErr: true,
		},
		{
			name: "non numeric value",
			content: `
[Starter]
monthly_price = twenty
annual_price = 15
capacity = 1000
`,
			wantErr: true,
		},
		{
			name: "out of order",
			content: `
[Big]
monthly_price = 20
annual_price = 15
capacity = 5000

[Small]
monthly_price = 10
annual_price = 5
capacity = 100
`,
			wantErr: true,
		},
		{
			name:    "no sections",
			content: "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "tiers.ini")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))

			table, err := LoadTiersINI(path)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, table.Tiers())
		})
	}
}

func TestLoadTiersINIMissingFile(t *testing.T) {
	_, err := LoadTiersINI(filepath.Join(t.TempDir(), "missing.ini"))
	assert.Error(t, err)
}

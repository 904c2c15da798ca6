package pricing

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyTable is returned when a pricing table has no tiers
	ErrEmptyTable = errors.New("pricing table has no tiers")
	// ErrCapacityOrder is returned when tier capacities are not strictly increasing
	ErrCapacityOrder = errors.New("tier capacities must be strictly increasing")
	// ErrNegativePrice is returned when a tier has a negative price
	ErrNegativePrice = errors.New("tier prices must not be negative")
	// ErrAnnualAboveMonthly is returned when the annual price exceeds the monthly price
	ErrAnnualAboveMonthly = errors.New("annual price must not exceed monthly price")
)

// Tier is a sending plan with a maximum monthly email capacity.
// AnnualPrice is the effective per-month price when billed yearly.
type Tier struct {
	Name                   string  `json:"name"`
	MonthlyPrice           float64 `json:"monthly_price"`
	AnnualPrice            float64 `json:"annual_price"`
	CapacityEmailsPerMonth float64 `json:"capacity_emails_per_month"`
}

// Price returns the per-month price of the tier for the given billing cycle
func (t Tier) Price(annual bool) float64 {
	if annual {
		return t.AnnualPrice
	}
	return t.MonthlyPrice
}

// AnnualSavings returns how much per month annual billing saves over monthly billing
func (t Tier) AnnualSavings() float64 {
	return t.MonthlyPrice - t.AnnualPrice
}

// AnnualDiscountPercent returns the annual saving as a percentage of the monthly price
func (t Tier) AnnualDiscountPercent() float64 {
	if t.MonthlyPrice == 0 {
		return 0
	}
	return t.AnnualSavings() / t.MonthlyPrice * 100
}

// DefaultTiers is the published plan list, ordered by capacity
var DefaultTiers = []Tier{
	{Name: "Basic", MonthlyPrice: 39, AnnualPrice: 32.5, CapacityEmailsPerMonth: 6_000},
	{Name: "Pro", MonthlyPrice: 94, AnnualPrice: 78.3, CapacityEmailsPerMonth: 150_000},
	{Name: "Custom", MonthlyPrice: 174, AnnualPrice: 144.5, CapacityEmailsPerMonth: 500_000},
}

// Table is an immutable, validated list of tiers ordered by ascending capacity
type Table struct {
	tiers []Tier
}

// NewTable validates tiers and returns a table holding a copy of them
func NewTable(tiers []Tier) (*Table, error) {
	if len(tiers) == 0 {
		return nil, ErrEmptyTable
	}

	for i, t := range tiers {
		if t.MonthlyPrice < 0 || t.AnnualPrice < 0 {
			return nil, fmt.Errorf("tier %q: %w", t.Name, ErrNegativePrice)
		}
		if t.AnnualPrice > t.MonthlyPrice {
			return nil, fmt.Errorf("tier %q: %w", t.Name, ErrAnnualAboveMonthly)
		}
		if i > 0 && t.CapacityEmailsPerMonth <= tiers[i-1].CapacityEmailsPerMonth {
			return nil, fmt.Errorf("tier %q (capacity %.0f) after %q (capacity %.0f): %w",
				t.Name, t.CapacityEmailsPerMonth, tiers[i-1].Name, tiers[i-1].CapacityEmailsPerMonth, ErrCapacityOrder)
		}
	}

	copied := make([]Tier, len(tiers))
	copy(copied, tiers)
	return &Table{tiers: copied}, nil
}

// MustNewTable is like NewTable but panics on invalid input.
// Only meant for package-level tables known to be valid.
func MustNewTable(tiers []Tier) *Table {
	t, err := NewTable(tiers)
	if err != nil {
		panic(err)
	}
	return t
}

// DefaultTable is the validated table built from DefaultTiers
var DefaultTable = MustNewTable(DefaultTiers)

// Tiers returns a copy of the tiers in capacity order
func (t *Table) Tiers() []Tier {
	out := make([]Tier, len(t.tiers))
	copy(out, t.tiers)
	return out
}

// Len returns the number of tiers in the table
func (t *Table) Len() int {
	return len(t.tiers)
}

// Select returns the cheapest tier whose capacity covers emailsPerMonth.
// Volumes above every published tier fall back to the largest tier so a
// quote is always produced.
func (t *Table) Select(emailsPerMonth float64) Tier {
	for _, tier := range t.tiers {
		if tier.CapacityEmailsPerMonth >= emailsPerMonth {
			return tier
		}
	}
	return t.tiers[len(t.tiers)-1]
}

// Covers reports whether some tier's capacity reaches emailsPerMonth
func (t *Table) Covers(emailsPerMonth float64) bool {
	return t.tiers[len(t.tiers)-1].CapacityEmailsPerMonth >= emailsPerMonth
}

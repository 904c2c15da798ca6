// Package calculator derives the sending infrastructure needed for a monthly
// email volume and prices it against a pricing table.
package calculator

import (
	"fmt"
	"math"
	"strings"

	"coldcalc/internal/pricing"
)

// BillingCycle selects which tier price applies
type BillingCycle string

const (
	Monthly BillingCycle = "monthly"
	Annual  BillingCycle = "annual"
)

// ParseBillingCycle parses a billing cycle name, case-insensitively
func ParseBillingCycle(s string) (BillingCycle, error) {
	switch BillingCycle(strings.ToLower(strings.TrimSpace(s))) {
	case Monthly:
		return Monthly, nil
	case Annual:
		return Annual, nil
	default:
		return "", fmt.Errorf("invalid billing cycle: %s (expected monthly or annual)", s)
	}
}

// Constants are the fixed provisioning and fee parameters of a quote
type Constants struct {
	InboxesPerDomain     int     `json:"inboxes_per_domain"`
	EmailsPerInboxPerDay int     `json:"emails_per_inbox_per_day"`
	DaysPerMonth         int     `json:"days_per_month"`
	AddOnFee             float64 `json:"add_on_fee"`
}

// DefaultConstants: 3 inboxes per domain, 10 emails per inbox per day, 30 days,
// and the $59/mo lead finder add-on.
var DefaultConstants = Constants{
	InboxesPerDomain:     3,
	EmailsPerInboxPerDay: 10,
	DaysPerMonth:         30,
	AddOnFee:             59,
}

// EmailsPerDomainPerMonth is the monthly sending capacity of one domain
func (c Constants) EmailsPerDomainPerMonth() int {
	return c.InboxesPerDomain * c.EmailsPerInboxPerDay * c.DaysPerMonth
}

// Input is the caller-owned calculator state
type Input struct {
	EmailsPerMonth    float64      `json:"emails_per_month"`
	BillingCycle      BillingCycle `json:"billing_cycle"`
	DomainCostPerYear float64      `json:"domain_cost_per_year"`
	InboxCostPerMonth float64      `json:"inbox_cost_per_month"`
}

// Output is derived entirely from an Input; nothing here is rounded
type Output struct {
	DomainsNeeded      int          `json:"domains_needed"`
	InboxesNeeded      int          `json:"inboxes_needed"`
	ActualCapacity     int          `json:"actual_capacity"`
	Tier               pricing.Tier `json:"tier"`
	TierCost           float64      `json:"tier_cost"`
	DomainsMonthlyCost float64      `json:"domains_monthly_cost"`
	InboxesMonthlyCost float64      `json:"inboxes_monthly_cost"`
	AddOnFee           float64      `json:"add_on_fee"`
	TotalMonthlyCost   float64      `json:"total_monthly_cost"`
	TotalAnnualCost    float64      `json:"total_annual_cost"`
}

// Calculator prices inputs against a pricing table
type Calculator struct {
	table     *pricing.Table
	constants Constants
}

// New creates a calculator. A nil table uses pricing.DefaultTable.
func New(table *pricing.Table, constants Constants) *Calculator {
	if table == nil {
		table = pricing.DefaultTable
	}
	return &Calculator{table: table, constants: constants}
}

// Default is the calculator over the published tiers and default constants
var Default = New(pricing.DefaultTable, DefaultConstants)

// Table returns the pricing table the calculator selects tiers from
func (c *Calculator) Table() *pricing.Table {
	return c.table
}

// Constants returns the calculator's provisioning constants
func (c *Calculator) Constants() Constants {
	return c.constants
}

// Compute derives infrastructure counts and the monthly/annual cost breakdown.
// Volumes below one email are treated as one email.
func (c *Calculator) Compute(in Input) Output {
	emails := in.EmailsPerMonth
	if !(emails >= 1) {
		emails = 1
	}

	perDomain := c.constants.EmailsPerDomainPerMonth()
	domains := int(math.Max(1, math.Ceil(emails/float64(perDomain))))
	inboxes := domains * c.constants.InboxesPerDomain

	tier := c.table.Select(emails)
	tierCost := tier.Price(in.BillingCycle == Annual)

	domainsMonthly := float64(domains) * in.DomainCostPerYear / 12
	inboxesMonthly := float64(inboxes) * in.InboxCostPerMonth
	total := domainsMonthly + inboxesMonthly + tierCost + c.constants.AddOnFee

	return Output{
		DomainsNeeded:      domains,
		InboxesNeeded:      inboxes,
		ActualCapacity:     domains * perDomain,
		Tier:               tier,
		TierCost:           tierCost,
		DomainsMonthlyCost: domainsMonthly,
		InboxesMonthlyCost: inboxesMonthly,
		AddOnFee:           c.constants.AddOnFee,
		TotalMonthlyCost:   total,
		TotalAnnualCost:    total * 12,
	}
}

// ComputeCosts computes a quote with the default calculator
func ComputeCosts(in Input) Output {
	return Default.Compute(in)
}

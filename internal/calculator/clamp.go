package calculator

import "math"

// Limits bound the values a caller may feed the calculator
type Limits struct {
	MinEmails float64
	MaxEmails float64
}

// DefaultLimits match the range of the volume input: 100 to 500,000 emails
var DefaultLimits = Limits{
	MinEmails: 100,
	MaxEmails: 500_000,
}

// Clamp returns a copy of the input forced into range. Out-of-range values are
// never an error: the volume is pinned to the limits (non-numeric volume goes
// to the minimum), unknown billing cycles become monthly and negative or
// non-numeric costs become zero.
func (in Input) Clamp(limits Limits) Input {
	out := in

	switch {
	case math.IsNaN(out.EmailsPerMonth) || out.EmailsPerMonth < limits.MinEmails:
		out.EmailsPerMonth = limits.MinEmails
	case out.EmailsPerMonth > limits.MaxEmails:
		out.EmailsPerMonth = limits.MaxEmails
	}

	if out.BillingCycle != Annual {
		out.BillingCycle = Monthly
	}

	out.DomainCostPerYear = nonNegative(out.DomainCostPerYear)
	out.InboxCostPerMonth = nonNegative(out.InboxCostPerMonth)

	return out
}

func nonNegative(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

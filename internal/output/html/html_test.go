package html

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coldcalc/internal/calculator"
	"coldcalc/internal/format"
)

func TestNewTemplateData(t *testing.T) {
	in := calculator.Input{EmailsPerMonth: 5000, BillingCycle: calculator.Annual, DomainCostPerYear: 10, InboxCostPerMonth: 3.5}
	out := calculator.ComputeCosts(in)

	data := NewTemplateData(in, out, calculator.DefaultConstants, time.Date(2026, 2, 1, 9, 30, 0, 0, time.UTC), format.New("en-US"))

	assert.True(t, data.Annual)
	assert.Equal(t, "2026-02-01 09:30 UTC", data.GeneratedAt)
	require.Len(t, data.Summary, 3)
	assert.Equal(t, "6", data.Summary[0].Value)
	assert.Equal(t, "18", data.Summary[1].Value)
	assert.Equal(t, "5,400", data.Summary[2].Value)

	require.Len(t, data.Lines, 4)
	assert.Equal(t, "Domains (6 × $10.00/yr)", data.Lines[0].Label)
	assert.Equal(t, "$5.00", data.Lines[0].Amount)
	assert.Equal(t, "Inboxes (18 × $3.50/mo)", data.Lines[1].Label)
	assert.Equal(t, "Basic Plan", data.Lines[2].Label)
	assert.Equal(t, "Up to 6,000 emails/mo", data.Lines[2].Detail)
	assert.Equal(t, "save $6.50/mo", data.Lines[2].Note)
	assert.Equal(t, "$59.00", data.Lines[3].Amount)
	assert.Equal(t, "$159.50", data.TotalMonthly)
	assert.Equal(t, "$1,914.00", data.TotalAnnual)
}

func TestNewTemplateDataMonthlyHasNoSavingNote(t *testing.T) {
	in := calculator.Input{EmailsPerMonth: 5000, BillingCycle: calculator.Monthly}
	data := NewTemplateData(in, calculator.ComputeCosts(in), calculator.DefaultConstants, time.Now(), format.New("en-US"))

	assert.False(t, data.Annual)
	assert.Empty(t, data.Lines[2].Note)
}

func TestRender(t *testing.T) {
	in := calculator.Input{EmailsPerMonth: 500000, BillingCycle: calculator.Monthly, DomainCostPerYear: 10, InboxCostPerMonth: 3.5}
	data := NewTemplateData(in, calculator.ComputeCosts(in), calculator.DefaultConstants, time.Now(), format.New("en-US"))

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, data))

	page := buf.String()
	assert.Contains(t, page, "<title>Cold Email Infrastructure Cost Quote</title>")
	assert.Contains(t, page, "Custom Plan")
	assert.Contains(t, page, "$6,534.33")
	assert.Contains(t, page, "$78,412.00/yr")
	assert.Contains(t, page, "500,400")
	assert.Contains(t, page, ".figure")
}

package html

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"time"

	"coldcalc/internal/calculator"
	"coldcalc/internal/format"
	"coldcalc/internal/logging"
)

//go:embed assets/* templates/*
var content embed.FS

// TemplateData is the view model passed to the quote report template.
// Every figure is preformatted for the report's locale.
type TemplateData struct {
	GeneratedAt   string
	Annual        bool
	Summary       []SummaryItem
	ConstantsNote string
	Lines         []CostLine
	TotalMonthly  string
	TotalAnnual   string
	Styles        template.CSS
}

// SummaryItem is one headline infrastructure figure
type SummaryItem struct {
	Value string
	Label string
}

// CostLine is one row of the monthly breakdown
type CostLine struct {
	Label  string
	Detail string
	Note   string
	Amount string
}

// NewTemplateData builds the report view model for a computed quote
func NewTemplateData(in calculator.Input, out calculator.Output, c calculator.Constants, generatedAt time.Time, fm *format.Formatter) TemplateData {
	data := TemplateData{
		GeneratedAt: generatedAt.Format("2006-01-02 15:04 MST"),
		Annual:      in.BillingCycle == calculator.Annual,
		Summary: []SummaryItem{
			{Value: fm.Int(out.DomainsNeeded), Label: "Domains"},
			{Value: fm.Int(out.InboxesNeeded), Label: "Inboxes"},
			{Value: fm.Int(out.ActualCapacity), Label: "Email capacity/mo"},
		},
		ConstantsNote: fmt.Sprintf("%d inboxes per domain · %d emails per inbox per day · %d days/month",
			c.InboxesPerDomain, c.EmailsPerInboxPerDay, c.DaysPerMonth),
		TotalMonthly: fm.Currency(out.TotalMonthlyCost),
		TotalAnnual:  fm.Currency(out.TotalAnnualCost),
	}

	plan := CostLine{
		Label:  out.Tier.Name + " Plan",
		Detail: fmt.Sprintf("Up to %s emails/mo", fm.Count(out.Tier.CapacityEmailsPerMonth)),
		Amount: fm.Currency(out.TierCost),
	}
	if data.Annual {
		plan.Note = fmt.Sprintf("save %s/mo", fm.Currency(out.Tier.AnnualSavings()))
	}

	data.Lines = []CostLine{
		{
			Label:  fmt.Sprintf("Domains (%s × %s/yr)", fm.Int(out.DomainsNeeded), fm.Currency(in.DomainCostPerYear)),
			Amount: fm.Currency(out.DomainsMonthlyCost),
		},
		{
			Label:  fmt.Sprintf("Inboxes (%s × %s/mo)", fm.Int(out.InboxesNeeded), fm.Currency(in.InboxCostPerMonth)),
			Amount: fm.Currency(out.InboxesMonthlyCost),
		},
		plan,
		{
			Label:  "Lead Finder",
			Detail: "Prospecting add-on",
			Amount: fm.Currency(out.AddOnFee),
		},
	}

	return data
}

// Render writes the HTML quote report to w
func Render(w io.Writer, data TemplateData) error {
	tmpl, err := template.ParseFS(content, "templates/quote_report.html")
	if err != nil {
		return fmt.Errorf("error parsing template: %w", err)
	}

	styles, err := content.ReadFile("assets/styles.css")
	if err != nil {
		return fmt.Errorf("error reading styles: %w", err)
	}
	data.Styles = template.CSS(styles)

	if err := tmpl.Execute(w, data); err != nil {
		return fmt.Errorf("error executing template: %w", err)
	}

	logging.Debug("Rendered HTML quote report", map[string]interface{}{
		"lines": len(data.Lines),
	})
	return nil
}

package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"

	"coldcalc/internal/calculator"
	"coldcalc/internal/format"
	"coldcalc/internal/output/html"
)

// Format is the rendering of a quote
type Format string

const (
	Text Format = "text"
	JSON Format = "json"
	HTML Format = "html"
)

// ParseFormat validates a format name
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case Text, JSON, HTML:
		return f, nil
	default:
		return "", fmt.Errorf("invalid output format: %s", s)
	}
}

// Extension returns the file extension used for the format
func (f Format) Extension() string {
	switch f {
	case JSON:
		return "json"
	case HTML:
		return "html"
	default:
		return "txt"
	}
}

// Quote is a computed quote together with everything needed to render it
type Quote struct {
	GeneratedAt time.Time            `json:"generated_at"`
	Input       calculator.Input     `json:"input"`
	Constants   calculator.Constants `json:"constants"`
	Result      calculator.Output    `json:"result"`
}

// Render renders the quote in the given format. Text output only carries
// terminal colours when colored is set; saved reports stay plain.
func Render(q Quote, f Format, fm *format.Formatter, colored bool) ([]byte, error) {
	switch f {
	case JSON:
		data, err := json.MarshalIndent(q, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to marshal quote: %w", err)
		}
		return append(data, '\n'), nil
	case HTML:
		var buf bytes.Buffer
		if err := html.Render(&buf, html.NewTemplateData(q.Input, q.Result, q.Constants, q.GeneratedAt, fm)); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case Text:
		var buf bytes.Buffer
		writeText(&buf, q, fm, colored)
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", f)
	}
}

func writeText(w io.Writer, q Quote, fm *format.Formatter, colored bool) {
	r := q.Result
	heading := color.New(color.Bold)
	total := color.New(color.FgBlue, color.Bold)
	if !colored {
		heading.DisableColor()
		total.DisableColor()
	}

	heading.Fprintln(w, "Infrastructure Required")
	fmt.Fprintf(w, "  Domains:           %s\n", fm.Int(r.DomainsNeeded))
	fmt.Fprintf(w, "  Inboxes:           %s\n", fm.Int(r.InboxesNeeded))
	fmt.Fprintf(w, "  Email capacity/mo: %s\n", fm.Int(r.ActualCapacity))
	fmt.Fprintf(w, "  (%d inboxes per domain, %d emails per inbox per day, %d days/month)\n",
		q.Constants.InboxesPerDomain, q.Constants.EmailsPerInboxPerDay, q.Constants.DaysPerMonth)
	fmt.Fprintln(w)

	heading.Fprintln(w, "Monthly Cost Breakdown")
	fmt.Fprintf(w, "  %-44s %14s/mo\n",
		fmt.Sprintf("Domains (%s x %s/yr)", fm.Int(r.DomainsNeeded), fm.Currency(q.Input.DomainCostPerYear)),
		fm.Currency(r.DomainsMonthlyCost))
	fmt.Fprintf(w, "  %-44s %14s/mo\n",
		fmt.Sprintf("Inboxes (%s x %s/mo)", fm.Int(r.InboxesNeeded), fm.Currency(q.Input.InboxCostPerMonth)),
		fm.Currency(r.InboxesMonthlyCost))
	fmt.Fprintf(w, "  %-44s %14s/mo\n", r.Tier.Name+" Plan", fm.Currency(r.TierCost))

	plan := fmt.Sprintf("    Up to %s emails/mo", fm.Count(r.Tier.CapacityEmailsPerMonth))
	if q.Input.BillingCycle == calculator.Annual {
		plan += fmt.Sprintf(" (save %s/mo)", fm.Currency(r.Tier.AnnualSavings()))
	}
	fmt.Fprintln(w, plan)
	fmt.Fprintf(w, "  %-44s %14s/mo\n", "Lead Finder add-on", fm.Currency(r.AddOnFee))
	fmt.Fprintln(w)

	total.Fprintf(w, "  %-44s %14s/mo\n", "Total Monthly Cost", fm.Currency(r.TotalMonthlyCost))
	fmt.Fprintf(w, "  %-44s %14s/yr\n", "Total Annual Cost", fm.Currency(r.TotalAnnualCost))
}

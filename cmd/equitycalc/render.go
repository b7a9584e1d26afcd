package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"equitylens/internal/conversion"
	"equitylens/internal/models"
	"equitylens/internal/scenario"
	"equitylens/internal/services"
	"equitylens/internal/waterfall"
)

// conversionOutput mirrors the HTTP conversion response.
type conversionOutput struct {
	CapTable    models.CapTable           `json:"cap_table"`
	Details     []conversion.Detail       `json:"details"`
	Summary     conversion.Summary        `json:"summary"`
	Instruments []scenario.InstrumentSpec `json:"instruments"`
}

// render writes v as indented JSON, or hands a table writer to text.
func (a *app) render(cmd *cobra.Command, v interface{}, text func(w *tableWriter)) error {
	out := cmd.OutOrStdout()
	if a.opts.output == outputJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}

	w := newTableWriter(out)
	text(w)
	return w.Flush()
}

// tableWriter prints aligned, tab-separated sections.
type tableWriter struct {
	tw *tabwriter.Writer
}

func newTableWriter(out io.Writer) *tableWriter {
	return &tableWriter{tw: tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)}
}

func (w *tableWriter) Flush() error { return w.tw.Flush() }

func (w *tableWriter) row(cols ...interface{}) {
	for i, c := range cols {
		if i > 0 {
			fmt.Fprint(w.tw, "\t")
		}
		fmt.Fprint(w.tw, c)
	}
	fmt.Fprintln(w.tw)
}

func (w *tableWriter) heading(title string) {
	fmt.Fprintf(w.tw, "\n== %s ==\n", title)
}

func (w *tableWriter) capTable(t models.CapTable) {
	w.heading("Cap table")
	w.row("STAKEHOLDER", "ROLE", "CLASS", "SHARES", "OWNERSHIP %")
	for _, s := range t.Stakeholders {
		w.row(s.Name, s.Role, s.ShareClass, s.Shares, pct(s.OwnershipPct))
	}
	w.row("Total", "", "", t.TotalShares, "")
}

func (w *tableWriter) conversion(out conversionOutput) {
	w.heading("Conversions")
	w.row("INSTRUMENT", "INVESTOR", "AMOUNT", "INTEREST", "PRICE", "SOURCE", "SHARES")
	for _, d := range out.Details {
		w.row(d.InstrumentID, d.InvestorName, d.ConversionAmount.StringFixed(2), d.AccruedInterest.StringFixed(2),
			d.ConversionPrice.StringFixed(4), d.PriceSource, d.SharesIssued)
	}

	s := out.Summary
	w.heading("Summary")
	w.row("Converted", s.InstrumentsConverted)
	w.row("Skipped", s.InstrumentsSkipped)
	w.row("Shares issued", s.TotalSharesIssued)
	w.row("Pre-round shares", s.PreRoundShares)
	w.row("Post-round shares", s.PostRoundShares)
	w.row("Dilution %", pct(s.DilutionPct))
	w.row("Rounding residual", s.TotalRoundingResidual.StringFixed(2))

	w.capTable(out.CapTable)
}

func (w *tableWriter) distribution(d *waterfall.Distribution) {
	w.heading(fmt.Sprintf("Exit at %s", d.ExitValuation.StringFixed(2)))
	w.row("STAKEHOLDER", "CLASS", "TIER", "PAYOUT", "PAYOUT %", "ROI", "CONVERTED")
	for _, p := range d.Payouts {
		roi := "-"
		if p.ROI != nil {
			roi = fmt.Sprintf("%.2fx", *p.ROI)
		}
		w.row(p.Name, p.ShareClass, dash(p.TierID), p.Payout.StringFixed(2), pct(p.PayoutPct), roi, p.Converted)
	}
	w.row("Common %", pct(d.CommonPct))
	w.row("Preferred %", pct(d.PreferredPct))
	if d.Unallocated.IsPositive() {
		w.row("Unallocated", d.Unallocated.StringFixed(2))
	}

	w.heading("Steps")
	w.row("STAGE", "AMOUNT", "REMAINING", "DESCRIPTION")
	for _, s := range d.Steps {
		w.row(s.Stage, s.Amount.StringFixed(2), s.RemainingAfter.StringFixed(2), s.Description)
	}
}

func (w *tableWriter) curve(c *services.PayoutCurve) {
	if c == nil || len(c.Points) == 0 {
		return
	}

	names := make([]string, 0, len(c.Points[0].Distribution.Payouts))
	for _, p := range c.Points[0].Distribution.Payouts {
		names = append(names, p.Name)
	}

	w.heading("Payout curve")
	w.row(append([]interface{}{"EXIT"}, toCells(names)...)...)
	for _, point := range c.Points {
		cells := []interface{}{point.ExitValuation.StringFixed(0)}
		for _, p := range point.Distribution.Payouts {
			cells = append(cells, p.Payout.StringFixed(2))
		}
		w.row(cells...)
	}

	w.heading("Breakeven")
	w.row("STAKEHOLDER", "FIRST PAID AT")
	sorted := make([]string, 0, len(c.Breakeven))
	for name := range c.Breakeven {
		sorted = append(sorted, name)
	}
	sort.Strings(sorted)
	for _, name := range sorted {
		w.row(name, c.Breakeven[name].StringFixed(0))
	}
}

func (w *tableWriter) evaluation(e *services.ScenarioEvaluation) {
	if e.Name != "" {
		fmt.Fprintf(w.tw, "Scenario: %s\n", e.Name)
	}
	if e.Conversion != nil {
		w.conversion(conversionOutput{
			CapTable:    e.CapTable,
			Details:     e.Conversion.Details,
			Summary:     e.Conversion.Summary,
			Instruments: e.Instruments,
		})
	} else {
		w.capTable(e.CapTable)
	}
	w.curve(e.Curve)
}

func pct(v float64) string { return fmt.Sprintf("%.2f", v) }

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func toCells(values []string) []interface{} {
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return cells
}

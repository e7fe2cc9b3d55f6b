package sink

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/pharmasim/pharmasim/sim"
)

// Table writes a plain-text report: one per-drug table per day and a
// summary block at the end.
type Table struct {
	w io.Writer
}

// NewTable creates a Table sink writing to w.
func NewTable(w io.Writer) *Table {
	return &Table{w: w}
}

func (t *Table) OnDailySnapshot(s sim.DailySnapshot) {
	_, _ = fmt.Fprintf(t.w, "=== Day %d ===\n", s.Day)
	_, _ = fmt.Fprintf(t.w, "Orders delivered     : %d / %d (capacity %d)\n", s.OrdersDeliveredToday, s.OrdersRequestedToday, s.CourierCapacity)
	_, _ = fmt.Fprintf(t.w, "Profit               : %s\n", s.ProfitToday.StringFixed(2))
	_, _ = fmt.Fprintf(t.w, "Expiry loss          : %s\n", s.ExpiryLossToday.StringFixed(2))

	tw := tabwriter.NewWriter(t.w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "DRUG\tPRICE\tMARKUP\tREQUESTED\tREMAINING\t")
	for _, d := range s.Drugs {
		name := d.Name
		if d.MarkedDown {
			name += "*"
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%.2f\t%d\t%d\t\n", name, d.Price.StringFixed(2), d.Markup, d.Requested, d.Remaining)
	}
	_ = tw.Flush()
}

func (t *Table) OnFinalSnapshot(s sim.FinalSnapshot) {
	_, _ = fmt.Fprintln(t.w, "=== Simulation Summary ===")
	_, _ = fmt.Fprintf(t.w, "Days simulated       : %d\n", s.Days)
	_, _ = fmt.Fprintf(t.w, "Total profit         : %s\n", s.TotalProfit.StringFixed(2))
	_, _ = fmt.Fprintf(t.w, "Total expiry loss    : %s\n", s.TotalExpiryLoss.StringFixed(2))
	_, _ = fmt.Fprintf(t.w, "Courier capacity     : %d orders/day\n", s.CourierCapacity)
	if s.Days > 0 {
		ready, delivered := sum(s.DeliveredCountHistory), sum(s.CourierLoadHistory)
		_, _ = fmt.Fprintf(t.w, "Ready orders         : %d (%.2f/day)\n", ready, float64(ready)/float64(s.Days))
		_, _ = fmt.Fprintf(t.w, "Delivered orders     : %d (%.2f/day)\n", delivered, float64(delivered)/float64(s.Days))
		if s.CourierCapacity > 0 {
			_, _ = fmt.Fprintf(t.w, "Courier utilization  : %.1f%%\n", 100*float64(delivered)/float64(s.CourierCapacity*s.Days))
		}
	}
}

package trace

import "github.com/shopspring/decimal"

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	RestockCount        int
	DeliveryCount       int
	MarkdownsApplied    int
	MarkdownsCleared    int
	ExpiredUnits        int
	ExpiryLoss          decimal.Decimal
	OverflowOrders      int
	ForgoneProfit       decimal.Decimal
	MostRestocked       string
	RestockDistribution map[string]int // drug → restock requests
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{
		RestockDistribution: make(map[string]int),
	}
	if st == nil {
		return summary
	}

	summary.RestockCount = len(st.Restocks)
	summary.DeliveryCount = len(st.Deliveries)
	best := 0
	for _, r := range st.Restocks {
		summary.RestockDistribution[r.Drug]++
		// Ties go to the drug that reached the count first.
		if n := summary.RestockDistribution[r.Drug]; n > best {
			best = n
			summary.MostRestocked = r.Drug
		}
	}

	for _, p := range st.Prices {
		if p.MarkedDown {
			summary.MarkdownsApplied++
		} else {
			summary.MarkdownsCleared++
		}
	}

	for _, e := range st.Expiries {
		summary.ExpiredUnits += e.Quantity
		summary.ExpiryLoss = summary.ExpiryLoss.Add(e.Loss)
	}

	summary.OverflowOrders = len(st.Overflows)
	for _, o := range st.Overflows {
		summary.ForgoneProfit = summary.ForgoneProfit.Add(o.Profit)
	}

	return summary
}

package sim

import "github.com/shopspring/decimal"

// DrugStat is one row of the daily per-drug table.
type DrugStat struct {
	Name       string
	Price      decimal.Decimal
	Markup     float64
	Requested  int
	Remaining  int
	MarkedDown bool
}

// DailySnapshot is emitted after every simulated day. Values are copies and
// are never touched by the pharmacy afterwards.
type DailySnapshot struct {
	Day                  int
	CourierCapacity      int
	OrdersDeliveredToday int
	// OrdersRequestedToday counts ready orders, those that fulfilled at least
	// one unit, whether or not a courier was available.
	OrdersRequestedToday int
	// OrdersSubmittedToday counts every generated or recurring order.
	OrdersSubmittedToday int
	ProfitToday          decimal.Decimal
	ExpiryLossToday      decimal.Decimal
	RestocksScheduled    int
	DeliveriesInFlight   int
	Drugs                []DrugStat // catalog order
}

// FinalSnapshot is emitted once after the last day.
type FinalSnapshot struct {
	Days            int
	TotalProfit     decimal.Decimal
	TotalExpiryLoss decimal.Decimal
	CourierCapacity int
	// DeliveredCountHistory holds the ready-order count of each day.
	DeliveredCountHistory []int
	// CourierLoadHistory holds the number of orders actually delivered each day.
	CourierLoadHistory []int
	// SubmittedHistory holds the generated plus recurring order count of each day.
	SubmittedHistory []int
	// RestockHistory holds the restock deliveries scheduled each day.
	RestockHistory     []int
	DeliveriesInFlight int
	// Drugs is the end-of-run state, catalog order. Requested is the run total.
	Drugs []DrugStat
}

// Sink receives statistics. Calls are notifications; the pharmacy never
// reads anything back.
type Sink interface {
	OnDailySnapshot(DailySnapshot)
	OnFinalSnapshot(FinalSnapshot)
}

// NopSink discards every snapshot.
type NopSink struct{}

func (NopSink) OnDailySnapshot(DailySnapshot) {}
func (NopSink) OnFinalSnapshot(FinalSnapshot) {}

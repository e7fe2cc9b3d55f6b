package sink

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/pharmasim/pharmasim/sim"
)

const namespace = "pharmasim"

// Prometheus mirrors snapshots into metrics on a caller-supplied registry.
// Totals are cumulative over the run; gauges hold the latest day.
type Prometheus struct {
	day             prometheus.Gauge
	capacity        prometheus.Gauge
	profit          prometheus.Gauge
	expiryLoss      prometheus.Gauge
	ordersSubmitted prometheus.Counter
	ordersReady     prometheus.Counter
	ordersDelivered prometheus.Counter
	restocks        prometheus.Counter
	inFlight        prometheus.Gauge
	finished        prometheus.Gauge

	stock     *prometheus.GaugeVec
	price     *prometheus.GaugeVec
	markedOff *prometheus.GaugeVec
	requested *prometheus.CounterVec

	sawDaily bool
}

// NewPrometheus creates the collectors and registers them on reg.
func NewPrometheus(reg prometheus.Registerer) *Prometheus {
	p := &Prometheus{
		day: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "day", Help: "Last simulated day.",
		}),
		capacity: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "courier_capacity_orders", Help: "Orders deliverable per day.",
		}),
		profit: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "profit", Help: "Cumulative profit of delivered orders.",
		}),
		expiryLoss: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "expiry_loss", Help: "Cumulative base-price value of expired stock.",
		}),
		ordersSubmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "orders_submitted_total", Help: "Generated and recurring orders.",
		}),
		ordersReady: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "orders_ready_total", Help: "Orders that fulfilled at least one unit.",
		}),
		ordersDelivered: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "orders_delivered_total", Help: "Orders delivered by couriers.",
		}),
		restocks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "restocks_scheduled_total", Help: "Restock deliveries scheduled.",
		}),
		inFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "deliveries_in_flight", Help: "Restock deliveries not yet arrived.",
		}),
		finished: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "finished", Help: "1 once the final snapshot was emitted.",
		}),
		stock: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace, Name: "drug_stock_units", Help: "Units on the shelf.",
		}, []string{"drug"}),
		price: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace, Name: "drug_price", Help: "Current selling price.",
		}, []string{"drug"}),
		markedOff: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace, Name: "drug_marked_down", Help: "1 while a markdown is in effect.",
		}, []string{"drug"}),
		requested: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "drug_requested_units_total", Help: "Units asked for, fulfilled or not.",
		}, []string{"drug"}),
	}
	reg.MustRegister(
		p.day, p.capacity, p.profit, p.expiryLoss,
		p.ordersSubmitted, p.ordersReady, p.ordersDelivered,
		p.restocks, p.inFlight, p.finished,
		p.stock, p.price, p.markedOff, p.requested,
	)
	return p
}

func (p *Prometheus) OnDailySnapshot(s sim.DailySnapshot) {
	p.sawDaily = true
	p.day.Set(float64(s.Day))
	p.capacity.Set(float64(s.CourierCapacity))
	p.profit.Add(s.ProfitToday.InexactFloat64())
	p.expiryLoss.Add(s.ExpiryLossToday.InexactFloat64())
	p.ordersSubmitted.Add(float64(s.OrdersSubmittedToday))
	p.ordersReady.Add(float64(s.OrdersRequestedToday))
	p.ordersDelivered.Add(float64(s.OrdersDeliveredToday))
	p.restocks.Add(float64(s.RestocksScheduled))
	p.inFlight.Set(float64(s.DeliveriesInFlight))
	for _, d := range s.Drugs {
		p.stock.WithLabelValues(d.Name).Set(float64(d.Remaining))
		p.price.WithLabelValues(d.Name).Set(d.Price.InexactFloat64())
		p.markedOff.WithLabelValues(d.Name).Set(boolFloat(d.MarkedDown))
		p.requested.WithLabelValues(d.Name).Add(float64(d.Requested))
	}
}

// OnFinalSnapshot sets the run totals and the end-of-run drug state.
// Counters are filled from the histories only when no daily snapshot was
// seen, as in a fast-forwarded run.
func (p *Prometheus) OnFinalSnapshot(s sim.FinalSnapshot) {
	p.day.Set(float64(s.Days))
	p.capacity.Set(float64(s.CourierCapacity))
	p.profit.Set(s.TotalProfit.InexactFloat64())
	p.expiryLoss.Set(s.TotalExpiryLoss.InexactFloat64())
	p.inFlight.Set(float64(s.DeliveriesInFlight))
	if !p.sawDaily {
		p.ordersSubmitted.Add(float64(sum(s.SubmittedHistory)))
		p.ordersReady.Add(float64(sum(s.DeliveredCountHistory)))
		p.ordersDelivered.Add(float64(sum(s.CourierLoadHistory)))
		p.restocks.Add(float64(sum(s.RestockHistory)))
	}
	for _, d := range s.Drugs {
		p.stock.WithLabelValues(d.Name).Set(float64(d.Remaining))
		p.price.WithLabelValues(d.Name).Set(d.Price.InexactFloat64())
		p.markedOff.WithLabelValues(d.Name).Set(boolFloat(d.MarkedDown))
		if !p.sawDaily {
			p.requested.WithLabelValues(d.Name).Add(float64(d.Requested))
		}
	}
	p.finished.Set(1)
}

func boolFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

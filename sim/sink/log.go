package sink

import (
	"github.com/sirupsen/logrus"

	"github.com/pharmasim/pharmasim/sim"
)

// Log writes snapshots as structured logrus entries. Daily summaries go out
// at Info, per-drug rows at Debug.
type Log struct {
	logger logrus.FieldLogger
}

// NewLog creates a Log sink. A nil logger means the standard logger.
func NewLog(logger logrus.FieldLogger) *Log {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Log{logger: logger}
}

func (l *Log) OnDailySnapshot(s sim.DailySnapshot) {
	l.logger.WithFields(logrus.Fields{
		"day":         s.Day,
		"submitted":   s.OrdersSubmittedToday,
		"requested":   s.OrdersRequestedToday,
		"delivered":   s.OrdersDeliveredToday,
		"capacity":    s.CourierCapacity,
		"profit":      s.ProfitToday.StringFixed(2),
		"expiry_loss": s.ExpiryLossToday.StringFixed(2),
		"restocks":    s.RestocksScheduled,
		"in_flight":   s.DeliveriesInFlight,
	}).Info("day complete")
	for _, d := range s.Drugs {
		l.logger.WithFields(logrus.Fields{
			"day":         s.Day,
			"drug":        d.Name,
			"price":       d.Price.StringFixed(2),
			"markup":      d.Markup,
			"requested":   d.Requested,
			"remaining":   d.Remaining,
			"marked_down": d.MarkedDown,
		}).Debug("drug status")
	}
}

func (l *Log) OnFinalSnapshot(s sim.FinalSnapshot) {
	l.logger.WithFields(logrus.Fields{
		"days":         s.Days,
		"total_profit": s.TotalProfit.StringFixed(2),
		"expiry_loss":  s.TotalExpiryLoss.StringFixed(2),
		"capacity":     s.CourierCapacity,
		"ready":        sum(s.DeliveredCountHistory),
		"delivered":    sum(s.CourierLoadHistory),
	}).Info("simulation finished")
}

func sum(xs []int) int {
	total := 0
	for _, x := range xs {
		total += x
	}
	return total
}

package sink

import "github.com/pharmasim/pharmasim/sim"

// Multi forwards every snapshot to each sink in order.
type Multi []sim.Sink

func (m Multi) OnDailySnapshot(s sim.DailySnapshot) {
	for _, sk := range m {
		sk.OnDailySnapshot(s)
	}
}

func (m Multi) OnFinalSnapshot(s sim.FinalSnapshot) {
	for _, sk := range m {
		sk.OnFinalSnapshot(s)
	}
}

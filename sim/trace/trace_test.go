package trace

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestSimulationTrace_RecordRestock_AppendsRecord(t *testing.T) {
	// GIVEN a trace configured for decisions
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelDecisions})

	// WHEN a restock record is recorded
	st.RecordRestock(RestockRecord{Drug: "aspirin", Day: 4, DueDay: 6})

	// THEN the trace contains one restock record with correct data
	if len(st.Restocks) != 1 {
		t.Fatalf("expected 1 restock, got %d", len(st.Restocks))
	}
	if st.Restocks[0].Drug != "aspirin" || st.Restocks[0].DueDay != 6 {
		t.Errorf("unexpected record %+v", st.Restocks[0])
	}
}

func TestSimulationTrace_MultipleKinds_PreservesOrder(t *testing.T) {
	// GIVEN a trace
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelDecisions})

	// WHEN records of several kinds are added
	st.RecordPrice(PriceRecord{Drug: "a", Day: 1, MarkedDown: true, Price: decimal.NewFromInt(60)})
	st.RecordPrice(PriceRecord{Drug: "a", Day: 5, MarkedDown: false, Price: decimal.NewFromInt(120)})
	st.RecordDelivery(DeliveryRecord{Drug: "b", Day: 3})
	st.RecordExpiry(ExpiryRecord{Drug: "c", Day: 11, Quantity: 5, Loss: decimal.NewFromInt(500)})
	st.RecordOverflow(OverflowRecord{OrderID: "o1", Day: 2, Profit: decimal.NewFromInt(7)})

	// THEN each list keeps insertion order
	if len(st.Prices) != 2 || !st.Prices[0].MarkedDown || st.Prices[1].MarkedDown {
		t.Errorf("price records out of order: %+v", st.Prices)
	}
	if len(st.Deliveries) != 1 || len(st.Expiries) != 1 || len(st.Overflows) != 1 {
		t.Errorf("unexpected record counts: deliveries=%d expiries=%d overflows=%d",
			len(st.Deliveries), len(st.Expiries), len(st.Overflows))
	}
}

func TestSimulationTrace_Enabled(t *testing.T) {
	var nilTrace *SimulationTrace
	tests := []struct {
		name string
		st   *SimulationTrace
		want bool
	}{
		{"nil trace", nilTrace, false},
		{"none", NewSimulationTrace(TraceConfig{Level: TraceLevelNone}), false},
		{"empty level", NewSimulationTrace(TraceConfig{}), false},
		{"decisions", NewSimulationTrace(TraceConfig{Level: TraceLevelDecisions}), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.st.Enabled(); got != tt.want {
				t.Errorf("Enabled() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsValidTraceLevel(t *testing.T) {
	tests := []struct {
		level string
		want  bool
	}{
		{"none", true},
		{"decisions", true},
		{"", true},
		{"verbose", false},
		{"DECISIONS", false},
	}
	for _, tt := range tests {
		if got := IsValidTraceLevel(tt.level); got != tt.want {
			t.Errorf("IsValidTraceLevel(%q) = %v, want %v", tt.level, got, tt.want)
		}
	}
}

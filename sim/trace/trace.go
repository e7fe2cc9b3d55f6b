package trace

// TraceLevel controls the verbosity of decision tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing (zero overhead).
	TraceLevelNone TraceLevel = "none"
	// TraceLevelDecisions captures restock, delivery, price, expiry and overflow decisions.
	TraceLevelDecisions TraceLevel = "decisions"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:      true,
	TraceLevelDecisions: true,
	"":                  true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// TraceConfig controls trace collection behavior.
type TraceConfig struct {
	Level TraceLevel
}

// SimulationTrace collects decision records during a pharmacy run.
type SimulationTrace struct {
	Config     TraceConfig
	Restocks   []RestockRecord
	Deliveries []DeliveryRecord
	Prices     []PriceRecord
	Expiries   []ExpiryRecord
	Overflows  []OverflowRecord
}

// NewSimulationTrace creates a SimulationTrace ready for recording.
func NewSimulationTrace(config TraceConfig) *SimulationTrace {
	return &SimulationTrace{
		Config:     config,
		Restocks:   make([]RestockRecord, 0),
		Deliveries: make([]DeliveryRecord, 0),
		Prices:     make([]PriceRecord, 0),
		Expiries:   make([]ExpiryRecord, 0),
		Overflows:  make([]OverflowRecord, 0),
	}
}

// Enabled reports whether records should be collected. Safe on nil.
func (st *SimulationTrace) Enabled() bool {
	return st != nil && st.Config.Level == TraceLevelDecisions
}

// RecordRestock appends a restock request record.
func (st *SimulationTrace) RecordRestock(record RestockRecord) {
	st.Restocks = append(st.Restocks, record)
}

// RecordDelivery appends a delivery record.
func (st *SimulationTrace) RecordDelivery(record DeliveryRecord) {
	st.Deliveries = append(st.Deliveries, record)
}

// RecordPrice appends a markdown change record.
func (st *SimulationTrace) RecordPrice(record PriceRecord) {
	st.Prices = append(st.Prices, record)
}

// RecordExpiry appends an expiry write-off record.
func (st *SimulationTrace) RecordExpiry(record ExpiryRecord) {
	st.Expiries = append(st.Expiries, record)
}

// RecordOverflow appends an over-capacity order record.
func (st *SimulationTrace) RecordOverflow(record OverflowRecord) {
	st.Overflows = append(st.Overflows, record)
}

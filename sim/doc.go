// Package sim provides the day-stepped simulation kernel for a retail pharmacy.
//
// # Reading Guide
//
// Start with these three files to understand the simulation kernel:
//   - inventory.go: per-drug FIFO batch queues, expiry write-offs and restock eligibility
//   - processor.go: order fulfillment, discount stacking and courier-limited delivery
//   - pharmacy.go: the day cycle that wires every component together
//
// # Architecture
//
// The sim package owns all mutable state; sub-packages are pure consumers:
//   - sim/catalog/: drug and recurring-order loading (CSV and YAML)
//   - sim/sink/: display sinks for DailySnapshot and FinalSnapshot
//   - sim/trace/: decision trace recording
//
// # Day Cycle
//
// Each Pharmacy.Advance call runs one day: arrived restock lots go on the
// shelf, DemandGenerator draws fresh orders, due RecurringOrders fire, the
// OrderProcessor resolves them against inventory, expired lots are written
// off, PricingEngine applies or clears markdowns, low-stock drugs are
// scheduled for restock with a random lead time, and a DailySnapshot is sent
// to the Sink.
//
// # Determinism
//
// All randomness flows from one SimulationKey through PartitionedRNG, so a
// fixed seed, configuration and catalog reproduce a run exactly.
package sim

// Package sink provides display sinks for pharmacy snapshots. Every sink
// implements sim.Sink and only reads the snapshots it is handed.
package sink

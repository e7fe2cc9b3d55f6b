package sim

import (
	"encoding/binary"
	"hash/fnv"
	"math/rand/v2"
)

// === SimulationKey ===

// SimulationKey uniquely identifies a reproducible simulation run.
// Two pharmacies with the same SimulationKey, configuration and catalog
// MUST produce bit-for-bit identical snapshots.
type SimulationKey int64

// NewSimulationKey creates a SimulationKey from a seed value.
func NewSimulationKey(seed int64) SimulationKey {
	return SimulationKey(seed)
}

// === Subsystem Constants ===

const (
	// SubsystemDemand drives purchase pools, basket sizes and card assignment.
	SubsystemDemand = "demand"

	// SubsystemDelivery drives restock lead times.
	SubsystemDelivery = "delivery"

	// SubsystemIDs drives client order identifiers.
	SubsystemIDs = "ids"
)

// === PartitionedRNG ===

// PartitionedRNG provides deterministic, isolated RNG instances per subsystem.
//
// Every subsystem stream is a PCG generator seeded with
// (masterSeed, fnv1a64(subsystemName)), so drawing lead times never shifts
// the demand sequence and vice versa.
//
// Thread-safety: NOT thread-safe. Must be called from single goroutine.
type PartitionedRNG struct {
	key        SimulationKey
	subsystems map[string]*rand.Rand
}

// NewPartitionedRNG creates a PartitionedRNG from a SimulationKey.
func NewPartitionedRNG(key SimulationKey) *PartitionedRNG {
	return &PartitionedRNG{
		key:        key,
		subsystems: make(map[string]*rand.Rand),
	}
}

// ForSubsystem returns a deterministically-seeded RNG for the named subsystem.
// The same subsystem name always returns the same *rand.Rand instance (cached).
// Never returns nil.
func (p *PartitionedRNG) ForSubsystem(name string) *rand.Rand {
	if rng, ok := p.subsystems[name]; ok {
		return rng
	}
	rng := rand.New(rand.NewPCG(uint64(p.key), fnv1a64(name)))
	p.subsystems[name] = rng
	return rng
}

// Key returns the SimulationKey used to create this PartitionedRNG.
func (p *PartitionedRNG) Key() SimulationKey {
	return p.key
}

// fnv1a64 computes a 64-bit FNV-1a hash of the input string.
func fnv1a64(s string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return h.Sum64()
}

// rngReader adapts a *rand.Rand to io.Reader so seeded streams can feed
// uuid generation.
type rngReader struct {
	rng *rand.Rand
}

// Read fills p eight bytes per draw, little-endian; a short tail takes the
// low bytes of one more draw.
func (r rngReader) Read(p []byte) (int, error) {
	n := 0
	for ; n+8 <= len(p); n += 8 {
		binary.LittleEndian.PutUint64(p[n:], r.rng.Uint64())
	}
	if n < len(p) {
		var tail [8]byte
		binary.LittleEndian.PutUint64(tail[:], r.rng.Uint64())
		copy(p[n:], tail[:])
	}
	return len(p), nil
}

// Package sim provides the exact neutral-speciation engines and the
// parameter, randomness and error types shared by every engine.
//
// # Reading Guide
//
// Start with these files to understand the exact engines:
//   - lineage.go: LineagePool, the swap-and-pop arena of active lineages
//   - point_mutation.go: one speciation-or-coalescence decision per step
//   - protracted.go: the same loop gated by a minimum speciation duration
//
// # Architecture
//
// The sim package owns parameters (SimConfig), the RandomSource interface and
// ErrInvalidParameter; further engines and tooling live in sub-packages:
//   - sim/coalescent/: vectorized engine (sojourns, event placement, tree cut)
//   - sim/ensemble/: parallel replicate runs and JSON reports
//   - sim/sad/: abundance-distribution summaries
//   - sim/trace/: per-event trace recording for the exact engines
//
// sim/coalescent registers its engine via init(), setting the package-level
// factory variable SimulateVectorizedFunc.
//
// # Randomness
//
// Engines never seed themselves. PartitionedRNG derives an isolated, seeded
// Source per subsystem, so a run is reproducible from its SimulationKey.
package sim

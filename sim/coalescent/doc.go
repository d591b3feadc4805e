// Package coalescent implements the vectorized neutral-speciation engine.
//
// Instead of replaying the coalescent event by event, the pipeline:
//   - sojourn.go: draws all J-1 inter-coalescence waiting times at once
//   - placement.go: scatters a Poisson number of speciation events over the
//     genealogy's edges, weighted by edge length
//   - partition.go: cuts the genealogy at the marked edges and reads off the
//     leaf count of every resulting piece as a species abundance
//
// Importing this package registers SimulateVectorized as
// sim.SimulateVectorizedFunc.
package coalescent

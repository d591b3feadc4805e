// register.go wires the vectorized engine into the sim package's registration
// variable (SimulateVectorizedFunc). Test code in package sim uses
// coalescent_import_test.go for the blank import.
package coalescent

import "github.com/neutral-sim/neutral-sim/sim"

func init() {
	sim.SimulateVectorizedFunc = SimulateVectorized
}

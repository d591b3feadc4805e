package sim_test

// Blank import triggers sim/coalescent's init(), which registers SimulateVectorizedFunc.
// This allows package sim's internal test files to run the vectorized engine
// without directly importing sim/coalescent (which would create an import cycle).
import _ "github.com/neutral-sim/neutral-sim/sim/coalescent"

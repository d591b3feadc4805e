// Package trace provides event-trace recording for the exact speciation engines.
// This package has no dependencies on sim/ — it stores pure data types.
package trace

// EventKind classifies a single backward-time event.
type EventKind string

const (
	// KindSpeciation: a lineage was removed and emitted as a species.
	KindSpeciation EventKind = "speciation"
	// KindCoalescence: two lineages merged via the point-mutation decision.
	KindCoalescence EventKind = "coalescence"
	// KindProtractedCoalescence: two lineages merged because the waiting time
	// was shorter than the minimum speciation-completion time.
	KindProtractedCoalescence EventKind = "protracted-coalescence"
)

// EventRecord captures one event of an exact simulation.
type EventRecord struct {
	Step      int       // 0-based event index
	Kind      EventKind // what happened
	Lineages  int       // K before the event
	Abundance int       // emitted abundance (speciation) or merged abundance (coalescence)
}

package trace

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	TotalEvents           int `json:"total_events"`
	Speciations           int `json:"speciations"`
	Coalescences          int `json:"coalescences"`
	ProtractedCoalescence int `json:"protracted_coalescences"`
	LargestSpecies        int `json:"largest_species"`
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{}
	if st == nil {
		return summary
	}

	summary.TotalEvents = len(st.Events)
	for _, e := range st.Events {
		switch e.Kind {
		case KindSpeciation:
			summary.Speciations++
			if e.Abundance > summary.LargestSpecies {
				summary.LargestSpecies = e.Abundance
			}
		case KindCoalescence:
			summary.Coalescences++
		case KindProtractedCoalescence:
			summary.ProtractedCoalescence++
		}
	}
	return summary
}

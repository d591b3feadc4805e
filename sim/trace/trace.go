package trace

// TraceLevel controls the verbosity of event tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing (zero overhead).
	TraceLevelNone TraceLevel = "none"
	// TraceLevelEvents captures every speciation and coalescence event.
	TraceLevelEvents TraceLevel = "events"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:   true,
	TraceLevelEvents: true,
	"":               true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// SimulationTrace collects event records during an exact simulation.
// A nil *SimulationTrace is valid and records nothing.
type SimulationTrace struct {
	Level  TraceLevel
	Events []EventRecord
}

// New returns a trace for the given level, or nil when tracing is disabled.
func New(level TraceLevel) *SimulationTrace {
	if level == TraceLevelNone || level == "" {
		return nil
	}
	return &SimulationTrace{
		Level:  level,
		Events: make([]EventRecord, 0),
	}
}

// Record appends an event record. Safe on a nil receiver.
func (st *SimulationTrace) Record(record EventRecord) {
	if st == nil {
		return
	}
	st.Events = append(st.Events, record)
}

package trace

// TraceLevel controls the verbosity of decision tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing.
	TraceLevelNone TraceLevel = "none"
	// TraceLevelDecisions captures every lane choice and every rejection.
	TraceLevelDecisions TraceLevel = "decisions"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:      true,
	TraceLevelDecisions: true,
	"":                  true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// TraceConfig controls trace collection behavior.
type TraceConfig struct {
	Level TraceLevel
}

// Enabled reports whether records should be collected at all.
func (c TraceConfig) Enabled() bool {
	return c.Level == TraceLevelDecisions
}

// SimulationTrace collects decision records during a simulation run.
type SimulationTrace struct {
	Config     TraceConfig
	Choices    []LaneChoiceRecord
	Rejections []RejectionRecord
}

// NewSimulationTrace creates a SimulationTrace ready for recording.
func NewSimulationTrace(config TraceConfig) *SimulationTrace {
	return &SimulationTrace{
		Config:     config,
		Choices:    make([]LaneChoiceRecord, 0),
		Rejections: make([]RejectionRecord, 0),
	}
}

// RecordChoice appends a lane choice record.
func (st *SimulationTrace) RecordChoice(record LaneChoiceRecord) {
	st.Choices = append(st.Choices, record)
}

// RecordRejection appends a rejection record.
func (st *SimulationTrace) RecordRejection(record RejectionRecord) {
	st.Rejections = append(st.Rejections, record)
}

package typing

// FlowState classifies how "in the zone" the typist is.
type FlowState int

const (
	Building FlowState = iota
	Flowing
	Transcendent
	Recovering
)

// Classify maps combo and rolling stats to a FlowState.
// Rules are checked top to bottom; the first match wins.
func Classify(combo int, accuracy, wpm float64) FlowState {
	switch {
	case combo >= 20 && accuracy >= 0.95 && wpm >= 80:
		return Transcendent
	case combo >= 5 && accuracy >= 0.85:
		return Flowing
	case combo == 0 && accuracy < 0.7:
		return Recovering
	default:
		return Building
	}
}

func (s FlowState) String() string {
	switch s {
	case Building:
		return "building"
	case Flowing:
		return "flowing"
	case Transcendent:
		return "transcendent"
	case Recovering:
		return "recovering"
	default:
		return "unknown"
	}
}

// Description returns the status line shown for the state.
func (s FlowState) Description() string {
	switch s {
	case Flowing:
		return "In the flow!"
	case Transcendent:
		return "TRANSCENDENT!"
	case Recovering:
		return "Recovering..."
	default:
		return "Building momentum..."
	}
}

// CritChance is the critical-hit probability while in the state.
func (s FlowState) CritChance() float64 {
	switch s {
	case Transcendent:
		return 0.30
	case Flowing:
		return 0.15
	case Recovering:
		return 0.02
	default:
		return 0.05
	}
}

package rng

// Fixed replays a fixed sequence of draws, cycling when exhausted.
// An empty Fixed always returns 0.
type Fixed struct {
	draws []float64
	next  int
}

// NewFixed returns a Source that yields draws in order.
func NewFixed(draws ...float64) *Fixed {
	return &Fixed{draws: draws}
}

// Float64 implements Source.
func (f *Fixed) Float64() float64 {
	if len(f.draws) == 0 {
		return 0
	}
	v := f.draws[f.next%len(f.draws)]
	f.next++
	return v
}

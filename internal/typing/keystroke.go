// Package typing converts keystroke timing and correctness into combat
// outcomes: damage, combos, flow state and presentation effects.
package typing

import "time"

// SpeedRating buckets an inter-keystroke interval. Ratings are ordered from
// fastest to slowest, so comparing two ratings compares speed.
type SpeedRating int

const (
	Blazing SpeedRating = iota
	Fast
	Normal
	Slow
	Hesitant
)

// hesitationMs is the interval at which a stroke carries no intensity.
const hesitationMs = 400

// DefaultDamagePerStroke is the damage a correct stroke deals at zero intensity
// scaled by 0.5; a Blazing stroke deals up to 1.5x this value.
const DefaultDamagePerStroke = 1.0

// RatingForInterval maps an interval in milliseconds to a SpeedRating.
// Negative intervals are treated as zero.
func RatingForInterval(ms int64) SpeedRating {
	switch {
	case ms <= 50:
		return Blazing
	case ms <= 100:
		return Fast
	case ms <= 200:
		return Normal
	case ms <= hesitationMs:
		return Slow
	default:
		return Hesitant
	}
}

func (s SpeedRating) String() string {
	switch s {
	case Blazing:
		return "blazing"
	case Fast:
		return "fast"
	case Normal:
		return "normal"
	case Slow:
		return "slow"
	case Hesitant:
		return "hesitant"
	default:
		return "unknown"
	}
}

// ColorHint returns a renderer color name for the rating.
func (s SpeedRating) ColorHint() string {
	switch s {
	case Blazing:
		return "yellow"
	case Fast:
		return "green"
	case Normal:
		return "white"
	case Slow:
		return "gray"
	default:
		return "dark_gray"
	}
}

// KeystrokeOutcome holds the instantaneous metrics of one keystroke.
type KeystrokeOutcome struct {
	Char       rune
	Correct    bool
	First      bool
	IntervalMs int64
	Speed      SpeedRating
	Intensity  float64
	Damage     float64
}

// Recorder derives per-keystroke metrics. It owns the previous arrival time,
// which is cleared at every word start.
type Recorder struct {
	damagePerStroke float64
	last            time.Time
	hasLast         bool
}

// NewRecorder returns a Recorder scaling stroke damage by damagePerStroke.
func NewRecorder(damagePerStroke float64) *Recorder {
	if damagePerStroke < 0 {
		damagePerStroke = 0
	}
	return &Recorder{damagePerStroke: damagePerStroke}
}

// StartWord resets the interval baseline.
func (r *Recorder) StartWord() {
	r.last = time.Time{}
	r.hasLast = false
}

// Record measures one keystroke arriving at now.
func (r *Recorder) Record(ch rune, correct bool, now time.Time) KeystrokeOutcome {
	out := KeystrokeOutcome{Char: ch, Correct: correct}
	if !r.hasLast {
		out.First = true
		out.Speed = Hesitant
	} else {
		ms := now.Sub(r.last).Milliseconds()
		if ms < 0 {
			ms = 0
		}
		out.IntervalMs = ms
		out.Speed = RatingForInterval(ms)
		out.Intensity = intensityFor(ms)
	}
	r.last = now
	r.hasLast = true

	if correct {
		out.Damage = r.damagePerStroke * (0.5 + out.Intensity)
	}
	return out
}

func intensityFor(ms int64) float64 {
	if ms >= hesitationMs {
		return 0
	}
	return 1 - float64(ms)/hesitationMs
}

package typing

import (
	"time"
	"unicode/utf8"
)

// WordResult is the evaluation of one completed word.
type WordResult struct {
	Target   string
	Typed    string
	Accuracy float64
	WPM      float64
	Perfect  bool
	Errors   int
	Elapsed  time.Duration
	Attack   AttackType
}

// EvaluateWord compares typed against target. Lengths may differ: positions
// are compared up to the shorter length and accuracy is taken over the
// target length, so overtyping and missing characters both count as errors.
// An empty target yields zero accuracy.
func EvaluateWord(target, typed string, elapsed time.Duration) WordResult {
	want := []rune(target)
	got := []rune(typed)

	matches := 0
	n := min(len(want), len(got))
	for i := 0; i < n; i++ {
		if want[i] == got[i] {
			matches++
		}
	}

	res := WordResult{
		Target:  target,
		Typed:   typed,
		Perfect: len(want) > 0 && target == typed,
		Errors:  (n - matches) + abs(len(want)-len(got)),
		Elapsed: elapsed,
	}
	if len(want) > 0 {
		res.Accuracy = float64(matches) / float64(len(want))
	}
	res.WPM = WordsPerMinute(len(want), elapsed)
	return res
}

// WordsPerMinute treats five characters as one word. Non-positive elapsed
// time yields zero.
func WordsPerMinute(chars int, elapsed time.Duration) float64 {
	seconds := elapsed.Seconds()
	if seconds <= 0 {
		return 0
	}
	return (float64(chars) / 5) / (seconds / 60)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// AttackType is the flavor of attack a completed word produces.
type AttackType int

const (
	Strike AttackType = iota
	Fumble
	Glancing
	Heavy
	Cadence
	Flurry
)

const (
	flurryWPM     = 100
	heavyMinRunes = 8
	fumbleBelow   = 0.5
)

// ClassifyAttack picks the attack for a word result. rhythmic reports
// whether the keystrokes of the word kept an even cadence.
func ClassifyAttack(res WordResult, rhythmic bool) AttackType {
	switch {
	case !res.Perfect && res.Accuracy < fumbleBelow:
		return Fumble
	case !res.Perfect:
		return Glancing
	case res.WPM >= flurryWPM:
		return Flurry
	case utf8.RuneCountInString(res.Target) >= heavyMinRunes:
		return Heavy
	case rhythmic:
		return Cadence
	default:
		return Strike
	}
}

func (a AttackType) String() string {
	switch a {
	case Strike:
		return "strike"
	case Fumble:
		return "fumble"
	case Glancing:
		return "glancing blow"
	case Heavy:
		return "heavy blow"
	case Cadence:
		return "cadence strike"
	case Flurry:
		return "flurry"
	default:
		return "unknown"
	}
}

// Icon is a short glyph for the attack.
func (a AttackType) Icon() string {
	switch a {
	case Fumble:
		return "~"
	case Glancing:
		return "-"
	case Heavy:
		return "#"
	case Cadence:
		return "♪"
	case Flurry:
		return "»"
	default:
		return "+"
	}
}

// Multiplier scales the base damage of the attack before combo bonuses.
func (a AttackType) Multiplier() float64 {
	switch a {
	case Fumble:
		return 0.25
	case Glancing:
		return 0.6
	case Heavy:
		return 1.3
	case Cadence:
		return 1.2
	case Flurry:
		return 1.5
	default:
		return 1.0
	}
}

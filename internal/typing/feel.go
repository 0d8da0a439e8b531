package typing

import (
	"fmt"
	"time"

	"github.com/verte-zerg/keystrike/internal/rng"
)

const (
	rollingWeight    = 0.2
	cadenceWeight    = 0.3
	rippleCadence    = 0.15
	multiplierStep   = 0.1
	multiplierCap    = 3.0
	shakeDecayPerSec = 5.0
)

// Stats is a snapshot of the session state.
type Stats struct {
	Combo         int
	MaxCombo      int
	Multiplier    float64
	Accuracy      float64
	WPM           float64
	PerfectStreak int
	Flow          FlowState
	Regularity    float64
	Words         int
	PerfectWords  int
	Errors        int
	Criticals     int
	Damage        int
}

type wordAttempt struct {
	target    []rune
	typed     []rune
	startedAt time.Time
}

type activeFlash struct {
	ColorFlash
	startedAt time.Time
}

// Feel tracks moment-to-moment typing performance for one encounter and
// turns it into effects. It is not safe for concurrent use; each encounter
// owns its own Feel.
type Feel struct {
	src      rng.Source
	recorder *Recorder
	rhythm   *RhythmDetector
	effects  EffectQueue

	combo         int
	maxCombo      int
	multiplier    float64
	accuracy      float64
	wpm           float64
	perfectStreak int
	flow          FlowState
	cadence       float64

	attempt *wordAttempt

	words        int
	perfectWords int
	errors       int
	criticals    int
	damage       int

	shake    float64
	flash    *activeFlash
	lastTick time.Time
}

// Option configures a Feel.
type Option func(*Feel)

// WithSource sets the randomness used for critical-hit rolls.
func WithSource(src rng.Source) Option {
	return func(f *Feel) {
		if src != nil {
			f.src = src
		}
	}
}

// WithDamagePerStroke scales per-keystroke damage.
func WithDamagePerStroke(v float64) Option {
	return func(f *Feel) {
		f.recorder = NewRecorder(v)
	}
}

// New returns a Feel with neutral rolling stats.
func New(opts ...Option) *Feel {
	f := &Feel{
		src:      rng.NewTimeSeeded(),
		recorder: NewRecorder(DefaultDamagePerStroke),
		rhythm:   NewRhythmDetector(),
	}
	for _, opt := range opts {
		opt(f)
	}
	f.resetState()
	return f
}

func (f *Feel) resetState() {
	f.combo = 0
	f.maxCombo = 0
	f.multiplier = 1.0
	f.accuracy = 1.0
	f.wpm = 0
	f.perfectStreak = 0
	f.flow = Building
	f.cadence = 0
	f.attempt = nil
	f.words = 0
	f.perfectWords = 0
	f.errors = 0
	f.criticals = 0
	f.damage = 0
	f.shake = 0
	f.flash = nil
	f.lastTick = time.Time{}
	f.effects = EffectQueue{}
	f.rhythm.Reset()
	f.recorder.StartWord()
}

// Reset clears all state at the end of an encounter.
func (f *Feel) Reset() {
	f.resetState()
}

// StartWord begins a new attempt at target, presented at now.
func (f *Feel) StartWord(target string, now time.Time) error {
	if target == "" {
		return stateErr("start word", ErrEmptyTarget)
	}
	f.attempt = &wordAttempt{
		target:    []rune(target),
		startedAt: now,
	}
	f.recorder.StartWord()
	return nil
}

// Active reports whether a word attempt is in progress.
func (f *Feel) Active() bool {
	return f.attempt != nil
}

// Target returns the current target word.
func (f *Feel) Target() string {
	if f.attempt == nil {
		return ""
	}
	return string(f.attempt.target)
}

// Typed returns the text typed so far for the current word.
func (f *Feel) Typed() string {
	if f.attempt == nil {
		return ""
	}
	return string(f.attempt.typed)
}

// Keystroke records one decoded keystroke. correct is decided by the input
// layer; extra characters past the target are accepted and count as errors.
func (f *Feel) Keystroke(ch rune, correct bool, now time.Time) (KeystrokeOutcome, error) {
	if f.attempt == nil {
		return KeystrokeOutcome{}, stateErr("keystroke", ErrNoActiveWord)
	}
	index := len(f.attempt.typed)
	f.attempt.typed = append(f.attempt.typed, ch)

	out := f.recorder.Record(ch, correct, now)
	if !out.First {
		f.rhythm.Record(float64(out.IntervalMs))
		f.cadence = f.cadence*(1-cadenceWeight) + (float64(out.IntervalMs)/1000)*cadenceWeight
	}

	if correct {
		f.effects.Push(CharCorrect{Index: index})
		f.setFlash(FlashGreen, 0.2, 50*time.Millisecond, now)
		if f.cadence > 0 && f.cadence < rippleCadence {
			f.effects.Push(TextRipple{Center: index, Intensity: 0.3})
		}
		return out, nil
	}

	var expected rune
	if index < len(f.attempt.target) {
		expected = f.attempt.target[index]
	}
	f.effects.Push(CharIncorrect{Index: index, Expected: expected, Got: ch})
	f.setFlash(FlashRed, 0.5, 100*time.Millisecond, now)
	f.pushShake(0.2, 80*time.Millisecond)
	f.perfectStreak = 0
	return out, nil
}

// Backspace removes the last typed character of the current word.
func (f *Feel) Backspace() {
	if f.attempt == nil || len(f.attempt.typed) == 0 {
		return
	}
	f.attempt.typed = f.attempt.typed[:len(f.attempt.typed)-1]
}

// FinishWord completes the active attempt using its own typed text and
// start time.
func (f *Feel) FinishWord(now time.Time) (WordResult, error) {
	if f.attempt == nil {
		return WordResult{}, stateErr("finish word", ErrNoActiveWord)
	}
	target := string(f.attempt.target)
	typed := string(f.attempt.typed)
	elapsed := now.Sub(f.attempt.startedAt)
	return f.CompleteWord(target, typed, elapsed)
}

// CompleteWord evaluates a word boundary and updates combo, rolling stats
// and flow state. Any active attempt is consumed.
func (f *Feel) CompleteWord(target, typed string, elapsed time.Duration) (WordResult, error) {
	if target == "" {
		return WordResult{}, stateErr("complete word", ErrEmptyTarget)
	}
	f.attempt = nil

	res := EvaluateWord(target, typed, elapsed)
	res.Attack = ClassifyAttack(res, f.rhythm.IsRhythmic())

	prevWPM := f.wpm
	f.accuracy = f.accuracy*(1-rollingWeight) + res.Accuracy*rollingWeight
	f.wpm = f.wpm*(1-rollingWeight) + res.WPM*rollingWeight
	f.words++
	f.errors += res.Errors

	if res.Perfect {
		f.onPerfect(res, prevWPM)
	} else {
		f.onImperfect(res)
	}
	f.effects.Push(WordComplete{Word: target, WPM: res.WPM, Accuracy: res.Accuracy})
	f.updateFlow()
	return res, nil
}

func (f *Feel) onPerfect(res WordResult, prevWPM float64) {
	f.combo++
	if f.combo > f.maxCombo {
		f.maxCombo = f.combo
	}
	f.perfectStreak++
	f.perfectWords++
	f.multiplier = min(1.0+float64(f.combo)*multiplierStep, multiplierCap)

	f.effects.Push(PerfectWord{Word: res.Target})
	if IsComboMilestone(f.combo) {
		f.effects.Push(ComboMilestone{Combo: f.combo})
		f.setFlash(FlashGold, 0.8, 200*time.Millisecond, f.lastTick)
		f.pushShake(0.5, 150*time.Millisecond)
	}

	// Milestones fire when the rolling WPM crosses them, not when a single
	// word's WPM reaches them, so one fast word cannot announce 150.
	for _, milestone := range []float64{150, 100} {
		if f.wpm >= milestone && prevWPM < milestone {
			f.effects.Push(SpeedMilestone{WPM: milestone})
			break
		}
	}
}

func (f *Feel) onImperfect(res WordResult) {
	if f.combo > 0 {
		f.effects.Push(ComboBreak{Was: f.combo})
	}
	f.combo = 0
	f.multiplier = 1.0
	f.perfectStreak = 0
	f.effects.Push(WordFailed{Word: res.Target, Typed: res.Typed})
}

// IsComboMilestone reports whether reaching combo earns a milestone.
func IsComboMilestone(combo int) bool {
	switch combo {
	case 5, 10, 25, 50:
		return true
	}
	return combo > 0 && combo%100 == 0
}

func (f *Feel) updateFlow() {
	prev := f.flow
	f.flow = Classify(f.combo, f.accuracy, f.wpm)
	if f.flow == prev {
		return
	}
	f.effects.Push(FlowChange{From: prev, To: f.flow})
	switch {
	case f.flow == Transcendent:
		f.pushFlash(FlashBlue, 0.6, 300*time.Millisecond)
	case prev == Transcendent:
		f.pushFlash(FlashBlue, 0.2, 150*time.Millisecond)
	}
}

func (f *Feel) pushShake(intensity float64, d time.Duration) {
	f.shake = intensity
	f.effects.Push(ScreenShake{Intensity: intensity, Duration: d})
}

func (f *Feel) pushFlash(color FlashColor, intensity float64, d time.Duration) {
	f.setFlash(color, intensity, d, f.lastTick)
	f.effects.Push(ColorFlash{Color: color, Intensity: intensity, Duration: d})
}

func (f *Feel) setFlash(color FlashColor, intensity float64, d time.Duration, now time.Time) {
	f.flash = &activeFlash{
		ColorFlash: ColorFlash{Color: color, Intensity: intensity, Duration: d},
		startedAt:  now,
	}
}

// Tick advances time-based presentation state: shake decays and flashes
// expire. Call once per frame.
func (f *Feel) Tick(now time.Time) {
	if !f.lastTick.IsZero() {
		delta := now.Sub(f.lastTick).Seconds()
		if delta > 0 {
			f.shake = max(f.shake-delta*shakeDecayPerSec, 0)
		}
	}
	f.lastTick = now
	if f.flash == nil {
		return
	}
	if f.flash.startedAt.IsZero() {
		f.flash.startedAt = now
	}
	if now.Sub(f.flash.startedAt) >= f.flash.Duration {
		f.flash = nil
	}
}

// Shake returns the current screen-shake intensity.
func (f *Feel) Shake() float64 {
	return f.shake
}

// Flash returns the active color flash, if any.
func (f *Feel) Flash() (ColorFlash, bool) {
	if f.flash == nil {
		return ColorFlash{}, false
	}
	return f.flash.ColorFlash, true
}

// DrainEffects returns pending effects in emission order and empties the
// queue.
func (f *Feel) DrainEffects() []Effect {
	return f.effects.Drain()
}

// Flow returns the current flow state.
func (f *Feel) Flow() FlowState {
	return f.flow
}

// Combo returns the current combo.
func (f *Feel) Combo() int {
	return f.combo
}

// Multiplier returns the combo damage multiplier.
func (f *Feel) Multiplier() float64 {
	return f.multiplier
}

// Rhythm exposes the rhythm detector.
func (f *Feel) Rhythm() *RhythmDetector {
	return f.rhythm
}

// Stats returns a snapshot of the session.
func (f *Feel) Stats() Stats {
	return Stats{
		Combo:         f.combo,
		MaxCombo:      f.maxCombo,
		Multiplier:    f.multiplier,
		Accuracy:      f.accuracy,
		WPM:           f.wpm,
		PerfectStreak: f.perfectStreak,
		Flow:          f.flow,
		Regularity:    f.rhythm.Regularity(),
		Words:         f.words,
		PerfectWords:  f.perfectWords,
		Errors:        f.errors,
		Criticals:     f.criticals,
		Damage:        f.damage,
	}
}

// ComboDescription returns a hype line for the current combo, empty at 0.
func (f *Feel) ComboDescription() string {
	switch {
	case f.combo >= 50:
		return fmt.Sprintf("%dx LEGENDARY!", f.combo)
	case f.combo >= 25:
		return fmt.Sprintf("%dx INCREDIBLE!", f.combo)
	case f.combo >= 10:
		return fmt.Sprintf("%dx AWESOME!", f.combo)
	case f.combo >= 5:
		return fmt.Sprintf("%dx combo!", f.combo)
	case f.combo > 0:
		return fmt.Sprintf("%dx", f.combo)
	default:
		return ""
	}
}

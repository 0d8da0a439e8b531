package typing

import (
	"fmt"
	"time"
)

// EffectKind tags an Effect variant.
type EffectKind int

const (
	KindCharCorrect EffectKind = iota
	KindCharIncorrect
	KindWordComplete
	KindWordFailed
	KindComboMilestone
	KindPerfectWord
	KindSpeedMilestone
	KindFlowChange
	KindComboBreak
	KindDamageDealt
	KindScreenShake
	KindTextRipple
	KindColorFlash
)

var kindNames = [...]string{
	KindCharCorrect:    "char_correct",
	KindCharIncorrect:  "char_incorrect",
	KindWordComplete:   "word_complete",
	KindWordFailed:     "word_failed",
	KindComboMilestone: "combo_milestone",
	KindPerfectWord:    "perfect_word",
	KindSpeedMilestone: "speed_milestone",
	KindFlowChange:     "flow_change",
	KindComboBreak:     "combo_break",
	KindDamageDealt:    "damage_dealt",
	KindScreenShake:    "screen_shake",
	KindTextRipple:     "text_ripple",
	KindColorFlash:     "color_flash",
}

func (k EffectKind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("effect(%d)", int(k))
	}
	return kindNames[k]
}

// Effect is a presentation directive. The set of implementations is closed
// to this package.
type Effect interface {
	Kind() EffectKind
	isEffect()
}

// CharCorrect flashes a correctly typed character.
type CharCorrect struct {
	Index int
}

// CharIncorrect flashes a mistyped character.
type CharIncorrect struct {
	Index    int
	Expected rune
	Got      rune
}

// WordComplete is emitted for every finished word.
type WordComplete struct {
	Word     string
	WPM      float64
	Accuracy float64
}

// WordFailed is emitted when the typed text differs from the target.
type WordFailed struct {
	Word  string
	Typed string
}

// ComboMilestone marks combo 5, 10, 25, 50 and every 100.
type ComboMilestone struct {
	Combo int
}

// PerfectWord is emitted for an exact match.
type PerfectWord struct {
	Word string
}

// SpeedMilestone marks the rolling WPM crossing a milestone.
type SpeedMilestone struct {
	WPM float64
}

// FlowChange records a flow state transition.
type FlowChange struct {
	From FlowState
	To   FlowState
}

// ComboBreak is emitted when a non-zero combo is lost.
type ComboBreak struct {
	Was int
}

// DamageDealt carries the final damage of an attack.
type DamageDealt struct {
	Amount   int
	Critical bool
}

// ScreenShake asks the renderer to shake the view.
type ScreenShake struct {
	Intensity float64
	Duration  time.Duration
}

// TextRipple ripples the prompt around a character.
type TextRipple struct {
	Center    int
	Intensity float64
}

// FlashColor is the tint of a ColorFlash.
type FlashColor int

const (
	FlashGreen FlashColor = iota
	FlashRed
	FlashGold
	FlashBlue
	FlashPurple
)

func (c FlashColor) String() string {
	switch c {
	case FlashGreen:
		return "green"
	case FlashRed:
		return "red"
	case FlashGold:
		return "gold"
	case FlashBlue:
		return "blue"
	case FlashPurple:
		return "purple"
	default:
		return "none"
	}
}

// ColorFlash tints the screen. Emitted on entering and leaving Transcendent.
type ColorFlash struct {
	Color     FlashColor
	Intensity float64
	Duration  time.Duration
}

func (CharCorrect) Kind() EffectKind    { return KindCharCorrect }
func (CharIncorrect) Kind() EffectKind  { return KindCharIncorrect }
func (WordComplete) Kind() EffectKind   { return KindWordComplete }
func (WordFailed) Kind() EffectKind     { return KindWordFailed }
func (ComboMilestone) Kind() EffectKind { return KindComboMilestone }
func (PerfectWord) Kind() EffectKind    { return KindPerfectWord }
func (SpeedMilestone) Kind() EffectKind { return KindSpeedMilestone }
func (FlowChange) Kind() EffectKind     { return KindFlowChange }
func (ComboBreak) Kind() EffectKind     { return KindComboBreak }
func (DamageDealt) Kind() EffectKind    { return KindDamageDealt }
func (ScreenShake) Kind() EffectKind    { return KindScreenShake }
func (TextRipple) Kind() EffectKind     { return KindTextRipple }
func (ColorFlash) Kind() EffectKind     { return KindColorFlash }

func (CharCorrect) isEffect()    {}
func (CharIncorrect) isEffect()  {}
func (WordComplete) isEffect()   {}
func (WordFailed) isEffect()     {}
func (ComboMilestone) isEffect() {}
func (PerfectWord) isEffect()    {}
func (SpeedMilestone) isEffect() {}
func (FlowChange) isEffect()     {}
func (ComboBreak) isEffect()     {}
func (DamageDealt) isEffect()    {}
func (ScreenShake) isEffect()    {}
func (TextRipple) isEffect()     {}
func (ColorFlash) isEffect()     {}

// EffectQueue is a single-consumer FIFO of effects.
type EffectQueue struct {
	items []Effect
}

// Push appends an effect.
func (q *EffectQueue) Push(e Effect) {
	q.items = append(q.items, e)
}

// Len returns the number of pending effects.
func (q *EffectQueue) Len() int {
	return len(q.items)
}

// Drain returns pending effects in emission order and empties the queue.
func (q *EffectQueue) Drain() []Effect {
	if len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

// Package events is the in-process game event bus.
package events

import (
	"fmt"

	"github.com/verte-zerg/keystrike/internal/typing"
)

// Type tags an Event variant.
type Type int

const (
	TypeEncounterStarted Type = iota
	TypeWordTyped
	TypeComboAchieved
	TypeFlowEntered
	TypeEnemyDefeated
	TypeCombatEnded
	TypeExperienceGained
	TypeCorruptionChanged
	TypeTimePassed
	TypeChapterStarted
)

var typeNames = [...]string{
	TypeEncounterStarted:  "encounter_started",
	TypeWordTyped:         "word_typed",
	TypeComboAchieved:     "combo_achieved",
	TypeFlowEntered:       "flow_entered",
	TypeEnemyDefeated:     "enemy_defeated",
	TypeCombatEnded:       "combat_ended",
	TypeExperienceGained:  "experience_gained",
	TypeCorruptionChanged: "corruption_changed",
	TypeTimePassed:        "time_passed",
	TypeChapterStarted:    "chapter_started",
}

func (t Type) String() string {
	if t < 0 || int(t) >= len(typeNames) {
		return fmt.Sprintf("event(%d)", int(t))
	}
	return typeNames[t]
}

// Event is a game event.
type Event interface {
	Type() Type
	isEvent()
}

type EncounterStarted struct {
	Enemy   string
	Context string
}

type WordTyped struct {
	Word     string
	WPM      float64
	Accuracy float64
	Perfect  bool
}

type ComboAchieved struct {
	Combo int
}

type FlowEntered struct {
	State typing.FlowState
}

type EnemyDefeated struct {
	Enemy string
	XP    int
}

// Outcome is how a combat ended.
type Outcome int

const (
	Victory Outcome = iota
	Defeat
	Fled
)

func (o Outcome) String() string {
	switch o {
	case Victory:
		return "victory"
	case Defeat:
		return "defeat"
	default:
		return "fled"
	}
}

type CombatEnded struct {
	Enemy   string
	Outcome Outcome
	XP      int
}

type ExperienceGained struct {
	Amount int
	Source string
}

type CorruptionChanged struct {
	Old float64
	New float64
}

type TimePassed struct {
	Days int
}

type ChapterStarted struct {
	Chapter int
	Title   string
}

func (EncounterStarted) Type() Type  { return TypeEncounterStarted }
func (WordTyped) Type() Type         { return TypeWordTyped }
func (ComboAchieved) Type() Type     { return TypeComboAchieved }
func (FlowEntered) Type() Type       { return TypeFlowEntered }
func (EnemyDefeated) Type() Type     { return TypeEnemyDefeated }
func (CombatEnded) Type() Type       { return TypeCombatEnded }
func (ExperienceGained) Type() Type  { return TypeExperienceGained }
func (CorruptionChanged) Type() Type { return TypeCorruptionChanged }
func (TimePassed) Type() Type        { return TypeTimePassed }
func (ChapterStarted) Type() Type    { return TypeChapterStarted }

func (EncounterStarted) isEvent()  {}
func (WordTyped) isEvent()         {}
func (ComboAchieved) isEvent()     {}
func (FlowEntered) isEvent()       {}
func (EnemyDefeated) isEvent()     {}
func (CombatEnded) isEvent()       {}
func (ExperienceGained) isEvent()  {}
func (CorruptionChanged) isEvent() {}
func (TimePassed) isEvent()        {}
func (ChapterStarted) isEvent()    {}

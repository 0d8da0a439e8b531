// Package modifiers holds run modifiers, the narrative seed and the typing
// effects they add up to.
package modifiers

import "fmt"

// Kind identifies a modifier regardless of its parameters.
type Kind int

const (
	SpeedPressure Kind = iota
	AccuracyDemand
	MistakeDamage
	LongerWords
	TimeCrunch
	Metronome
	NoBackspace
	ToughEnemies
	DangerousEnemies
	ArmoredEnemies
	RegeneratingEnemies
	NoRetreat
	NoHealing
	AcceleratedCorruption
	AllFactionsHostile
	EnhancedFactionRewards
	GlassCannon
	Permadeath
	NoSaving
	TimeLimit
	PacifistChallenge
	NoSkills
	NoItems
	Secret
)

type kindInfo struct {
	name   string
	heat   int
	typing bool
	combat bool
}

var kinds = [...]kindInfo{
	SpeedPressure:          {"Speed Pressure", 2, true, false},
	AccuracyDemand:         {"Accuracy Demand", 2, true, false},
	MistakeDamage:          {"Punishing Errors", 3, true, true},
	LongerWords:            {"Verbose", 1, true, false},
	TimeCrunch:             {"Time Crunch", 3, true, false},
	Metronome:              {"Metronome", 3, true, false},
	NoBackspace:            {"No Second Chances", 5, true, false},
	ToughEnemies:           {"Tough Enemies", 2, false, true},
	DangerousEnemies:       {"Deadly Foes", 3, false, true},
	ArmoredEnemies:         {"Armored", 2, false, true},
	RegeneratingEnemies:    {"Regenerating", 3, false, true},
	NoRetreat:              {"No Retreat", 2, false, true},
	NoHealing:              {"No Healing", 4, false, false},
	AcceleratedCorruption:  {"Accelerated Corruption", 3, false, false},
	AllFactionsHostile:     {"Hostile World", 5, false, false},
	EnhancedFactionRewards: {"Faction Rewards+", 0, false, false},
	GlassCannon:            {"Glass Cannon", 10, false, false},
	Permadeath:             {"Permadeath", 8, false, false},
	NoSaving:               {"No Saving", 3, false, false},
	TimeLimit:              {"Time Limit", 5, false, false},
	PacifistChallenge:      {"Pacifist", 6, false, false},
	NoSkills:               {"No Skills", 4, false, false},
	NoItems:                {"No Items", 4, false, false},
	Secret:                 {"Secret", 0, false, false},
}

func (k Kind) info() kindInfo {
	if k < 0 || int(k) >= len(kinds) {
		return kindInfo{name: fmt.Sprintf("modifier(%d)", int(k))}
	}
	return kinds[k]
}

func (k Kind) String() string {
	return k.info().name
}

// Modifier is one run rule. Parameterised rules are structs; the rest are
// plain Flag values.
type Modifier interface {
	Kind() Kind
	Describe(level int) string
	isModifier()
}

// Name returns the display name of m.
func Name(m Modifier) string {
	if s, ok := m.(SecretModifier); ok {
		return s.Name
	}
	return m.Kind().String()
}

// HeatCost is the difficulty m contributes per level.
func HeatCost(m Modifier) int {
	return m.Kind().info().heat
}

// AffectsTyping reports whether m changes typing rules.
func AffectsTyping(m Modifier) bool {
	return m.Kind().info().typing
}

// AffectsCombat reports whether m changes combat rules.
func AffectsCombat(m Modifier) bool {
	return m.Kind().info().combat
}

// Flag is a modifier without parameters.
type Flag Kind

func (f Flag) Kind() Kind { return Kind(f) }

func (f Flag) Describe(level int) string {
	switch Kind(f) {
	case GlassCannon:
		return "One hit kills you"
	case Permadeath:
		return "Death is permanent"
	case NoBackspace:
		return "Cannot correct mistakes"
	case AcceleratedCorruption:
		return fmt.Sprintf("Corruption spreads %dx faster", level+1)
	default:
		return fmt.Sprintf("%s (Level %d)", Kind(f), level)
	}
}

type SpeedPressureMod struct{ MinWPM float64 }

func (SpeedPressureMod) Kind() Kind { return SpeedPressure }
func (m SpeedPressureMod) Describe(level int) string {
	return fmt.Sprintf("Must maintain at least %.0f WPM", m.MinWPM*float64(level))
}

type AccuracyDemandMod struct{ MinAccuracy float64 }

func (AccuracyDemandMod) Kind() Kind { return AccuracyDemand }
func (m AccuracyDemandMod) Describe(level int) string {
	return fmt.Sprintf("Must maintain %.0f%% accuracy", m.Required(level)*100)
}

// Required is the accuracy floor at level, capped at 1.
func (m AccuracyDemandMod) Required(level int) float64 {
	return min(m.MinAccuracy+float64(level-1)*0.05, 1.0)
}

type MistakeDamageMod struct{ PerError int }

func (MistakeDamageMod) Kind() Kind { return MistakeDamage }
func (m MistakeDamageMod) Describe(level int) string {
	return fmt.Sprintf("Each typo deals %d damage", m.PerError*level)
}

type LongerWordsMod struct{ MinLength int }

func (LongerWordsMod) Kind() Kind { return LongerWords }
func (m LongerWordsMod) Describe(level int) string {
	return fmt.Sprintf("Words have at least %d letters", m.MinLength+level-1)
}

type TimeCrunchMod struct{ ReductionPercent float64 }

func (TimeCrunchMod) Kind() Kind { return TimeCrunch }
func (m TimeCrunchMod) Describe(level int) string {
	return fmt.Sprintf("%.0f%% less time per word", m.ReductionPercent*float64(level))
}

type MetronomeMod struct{ TargetCPM float64 }

func (MetronomeMod) Kind() Kind { return Metronome }
func (m MetronomeMod) Describe(level int) string {
	return fmt.Sprintf("Type at %.0f characters per minute", m.TargetCPM)
}

type ToughEnemiesMod struct{ HealthMultiplier float64 }

func (ToughEnemiesMod) Kind() Kind { return ToughEnemies }
func (m ToughEnemiesMod) Describe(level int) string {
	return fmt.Sprintf("Enemies have %.0f%% more health", (m.Scale(level)-1)*100)
}

// Scale is the enemy health multiplier at level.
func (m ToughEnemiesMod) Scale(level int) float64 {
	return m.HealthMultiplier + float64(level-1)*0.25
}

type DangerousEnemiesMod struct{ DamageMultiplier float64 }

func (DangerousEnemiesMod) Kind() Kind { return DangerousEnemies }
func (m DangerousEnemiesMod) Describe(level int) string {
	return fmt.Sprintf("Enemies deal %.0f%% more damage", (m.Scale(level)-1)*100)
}

// Scale is the enemy damage multiplier at level.
func (m DangerousEnemiesMod) Scale(level int) float64 {
	return m.DamageMultiplier + float64(level-1)*0.25
}

type ArmoredEnemiesMod struct{ Armor int }

func (ArmoredEnemiesMod) Kind() Kind { return ArmoredEnemies }
func (m ArmoredEnemiesMod) Describe(level int) string {
	return fmt.Sprintf("Enemies block %d damage per hit", m.Armor*level)
}

type RegeneratingEnemiesMod struct{ PerTurn int }

func (RegeneratingEnemiesMod) Kind() Kind { return RegeneratingEnemies }
func (m RegeneratingEnemiesMod) Describe(level int) string {
	return fmt.Sprintf("Enemies regenerate %d HP per word", m.PerTurn*level)
}

type TimeLimitMod struct{ Minutes int }

func (TimeLimitMod) Kind() Kind { return TimeLimit }
func (m TimeLimitMod) Describe(level int) string {
	return fmt.Sprintf("Complete run in %d minutes", m.Minutes/max(level, 1))
}

type SecretModifier struct{ Name string }

func (SecretModifier) Kind() Kind { return Secret }
func (m SecretModifier) Describe(level int) string {
	return fmt.Sprintf("%s (Level %d)", m.Name, level)
}

func (Flag) isModifier()                   {}
func (SpeedPressureMod) isModifier()       {}
func (AccuracyDemandMod) isModifier()      {}
func (MistakeDamageMod) isModifier()       {}
func (LongerWordsMod) isModifier()         {}
func (TimeCrunchMod) isModifier()          {}
func (MetronomeMod) isModifier()           {}
func (ToughEnemiesMod) isModifier()        {}
func (DangerousEnemiesMod) isModifier()    {}
func (ArmoredEnemiesMod) isModifier()      {}
func (RegeneratingEnemiesMod) isModifier() {}
func (TimeLimitMod) isModifier()           {}
func (SecretModifier) isModifier()         {}

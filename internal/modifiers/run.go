package modifiers

import (
	"fmt"
	"strings"
)

// RunType is a preset challenge for a whole run.
type RunType int

const (
	Standard RunType = iota
	SpeedRun
	Pacifist
	NoDamage
	Ironman
	PureTypist
	FactionWar
	Corruption
)

var runTypeNames = map[RunType]string{
	Standard:   "standard",
	SpeedRun:   "speedrun",
	Pacifist:   "pacifist",
	NoDamage:   "no-damage",
	Ironman:    "ironman",
	PureTypist: "pure-typist",
	FactionWar: "faction-war",
	Corruption: "corruption",
}

// RunTypes lists every run type in display order.
func RunTypes() []RunType {
	return []RunType{Standard, SpeedRun, Pacifist, NoDamage, Ironman, PureTypist, FactionWar, Corruption}
}

func (r RunType) String() string {
	if name, ok := runTypeNames[r]; ok {
		return name
	}
	return fmt.Sprintf("runtype(%d)", int(r))
}

// Description is a one-line summary shown when choosing a run.
func (r RunType) Description() string {
	switch r {
	case SpeedRun:
		return "Complete the run within the time limit."
	case Pacifist:
		return "Complete the run without killing anyone."
	case NoDamage:
		return "Complete the run without taking any damage."
	case Ironman:
		return "Permadeath, no saving. One life."
	case PureTypist:
		return "No skills, no items. Just typing."
	case FactionWar:
		return "All factions are hostile. Trust no one."
	case Corruption:
		return "The world starts heavily corrupted."
	default:
		return "A normal run."
	}
}

// ParseRunType accepts the names produced by RunType.String.
func ParseRunType(s string) (RunType, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if key == "" {
		return Standard, nil
	}
	for rt, name := range runTypeNames {
		if name == key {
			return rt, nil
		}
	}
	return Standard, fmt.Errorf("unknown run type %q", s)
}

// Active is a modifier with its level.
type Active struct {
	Modifier Modifier
	Level    int
}

// Description renders the modifier at its level.
func (a Active) Description() string {
	return a.Modifier.Describe(a.Level)
}

// Run holds the modifiers active for one run. Modifiers are unique by Kind;
// adding an existing kind replaces it.
type Run struct {
	active    []Active
	mutations []Mutation
	heat      int
	reward    float64
	runType   RunType
}

// NewRun returns a Standard run with no modifiers.
func NewRun() *Run {
	return &Run{reward: 1.0}
}

// Add activates m at level, replacing any modifier of the same kind.
func (r *Run) Add(m Modifier, level int) {
	if level < 1 {
		level = 1
	}
	for i := range r.active {
		if r.active[i].Modifier.Kind() == m.Kind() {
			r.active[i] = Active{Modifier: m, Level: level}
			r.recalc()
			return
		}
	}
	r.active = append(r.active, Active{Modifier: m, Level: level})
	r.recalc()
}

func (r *Run) recalc() {
	heat := 0
	for _, a := range r.active {
		heat += HeatCost(a.Modifier) * a.Level
	}
	r.heat = heat
	r.reward = 1.0 + float64(heat)*0.05
}

// Has reports whether a modifier of kind k is active.
func (r *Run) Has(k Kind) bool {
	_, ok := r.Get(k)
	return ok
}

// Get returns the active modifier of kind k.
func (r *Run) Get(k Kind) (Active, bool) {
	for _, a := range r.active {
		if a.Modifier.Kind() == k {
			return a, true
		}
	}
	return Active{}, false
}

// Level returns the level of kind k, 0 when inactive.
func (r *Run) Level(k Kind) int {
	a, _ := r.Get(k)
	return a.Level
}

// Active returns a copy of the active modifiers in insertion order.
func (r *Run) Active() []Active {
	out := make([]Active, len(r.active))
	copy(out, r.active)
	return out
}

// TypingModifiers returns the active modifiers that change typing rules.
func (r *Run) TypingModifiers() []Active {
	return r.filter(AffectsTyping)
}

// CombatModifiers returns the active modifiers that change combat rules.
func (r *Run) CombatModifiers() []Active {
	return r.filter(AffectsCombat)
}

func (r *Run) filter(pred func(Modifier) bool) []Active {
	var out []Active
	for _, a := range r.active {
		if pred(a.Modifier) {
			out = append(out, a)
		}
	}
	return out
}

// Heat is the total difficulty of the run.
func (r *Run) Heat() int {
	return r.heat
}

// RewardMultiplier grows by 5% per point of heat.
func (r *Run) RewardMultiplier() float64 {
	return r.reward
}

// Mutations returns the seeded mutations of the run.
func (r *Run) Mutations() []Mutation {
	return r.mutations
}

// RunType returns the selected run type.
func (r *Run) RunType() RunType {
	return r.runType
}

// SetRunType selects t and activates its preset modifiers.
func (r *Run) SetRunType(t RunType) {
	r.runType = t
	switch t {
	case SpeedRun:
		r.Add(TimeLimitMod{Minutes: 30}, 1)
		r.Add(Flag(NoHealing), 1)
	case Pacifist:
		r.Add(Flag(PacifistChallenge), 1)
	case NoDamage:
		r.Add(Flag(GlassCannon), 1)
	case Ironman:
		r.Add(Flag(Permadeath), 1)
		r.Add(Flag(NoSaving), 1)
	case PureTypist:
		r.Add(Flag(NoSkills), 1)
		r.Add(Flag(NoItems), 1)
	case FactionWar:
		r.Add(Flag(AllFactionsHostile), 1)
		r.Add(Flag(EnhancedFactionRewards), 1)
	case Corruption:
		r.Add(Flag(AcceleratedCorruption), 1)
	}
	r.recalc()
}

// Preset is a named bundle of modifiers for quick difficulty selection.
type Preset struct {
	Name      string
	Modifiers []Active
}

// Presets returns the difficulty presets from easiest to hardest.
func Presets() []Preset {
	return []Preset{
		{Name: "easy"},
		{Name: "normal", Modifiers: []Active{
			{ToughEnemiesMod{HealthMultiplier: 1.25}, 1},
		}},
		{Name: "hard", Modifiers: []Active{
			{ToughEnemiesMod{HealthMultiplier: 1.5}, 1},
			{DangerousEnemiesMod{DamageMultiplier: 1.25}, 1},
			{AccuracyDemandMod{MinAccuracy: 0.85}, 1},
		}},
		{Name: "nightmare", Modifiers: []Active{
			{ToughEnemiesMod{HealthMultiplier: 2.0}, 2},
			{DangerousEnemiesMod{DamageMultiplier: 1.5}, 2},
			{AccuracyDemandMod{MinAccuracy: 0.90}, 1},
			{MistakeDamageMod{PerError: 2}, 1},
			{Flag(AcceleratedCorruption), 1},
		}},
		{Name: "hell", Modifiers: []Active{
			{ToughEnemiesMod{HealthMultiplier: 3.0}, 3},
			{DangerousEnemiesMod{DamageMultiplier: 2.0}, 3},
			{AccuracyDemandMod{MinAccuracy: 0.95}, 2},
			{MistakeDamageMod{PerError: 5}, 2},
			{Flag(NoBackspace), 1},
			{Flag(AcceleratedCorruption), 2},
			{Flag(Permadeath), 1},
		}},
	}
}

// ApplyPreset adds every modifier of the named preset.
func (r *Run) ApplyPreset(name string) error {
	key := strings.ToLower(strings.TrimSpace(name))
	for _, p := range Presets() {
		if p.Name == key {
			for _, a := range p.Modifiers {
				r.Add(a.Modifier, a.Level)
			}
			return nil
		}
	}
	return fmt.Errorf("unknown preset %q", name)
}

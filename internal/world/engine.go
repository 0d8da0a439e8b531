// Package world ties the run seed, modifiers and event bus together and
// supplies typing thresholds to encounters.
package world

import (
	"fmt"
	"math"

	"github.com/verte-zerg/keystrike/internal/challenge"
	"github.com/verte-zerg/keystrike/internal/events"
	"github.com/verte-zerg/keystrike/internal/modifiers"
	"github.com/verte-zerg/keystrike/internal/rng"
)

const (
	initialCorruption     = 0.15
	corruptionSpread      = 0.02
	acceleratedSpread     = 0.05
	corruptionRecalcDelta = 0.1
	daysPerWeek           = 7
	victoriesPerChapter   = 3
)

// Info summarises a run for display.
type Info struct {
	Seed             int64
	RunType          modifiers.RunType
	Heat             int
	RewardMultiplier float64
	Corruption       modifiers.CorruptionType
	CorruptionLevel  float64
	Days             int
	Chapter          int
	XP               int
	Mutations        []modifiers.Mutation
}

// Engine owns the state of one run. It is driven by the caller and is not
// safe for concurrent use.
type Engine struct {
	seed       modifiers.Seed
	run        *modifiers.Run
	bus        *events.Bus
	rng        *rng.RNG
	corruption float64
	chapter    int
	days       int
	victories  int
	xp         int
	effects    []modifiers.TypingEffect
}

// New builds the run for seed.
func New(seed int64) *Engine {
	s := modifiers.FromSeed(seed)
	e := &Engine{
		seed:       s,
		run:        s.NewRun(),
		bus:        events.NewBus(),
		rng:        rng.NewRNG(seed),
		corruption: initialCorruption,
		chapter:    1,
	}
	e.recalc()
	return e
}

// WithRunType builds the run for seed with a run type preset.
func WithRunType(seed int64, t modifiers.RunType) *Engine {
	e := New(seed)
	e.run.SetRunType(t)
	e.recalc()
	return e
}

func (e *Engine) recalc() {
	e.effects = modifiers.TypingEffects(e.seed.Corruption, e.run)
}

// AddModifier activates m and refreshes typing effects.
func (e *Engine) AddModifier(m modifiers.Modifier, level int) {
	e.run.Add(m, level)
	e.recalc()
}

// ApplyPreset activates a difficulty preset.
func (e *Engine) ApplyPreset(name string) error {
	if err := e.run.ApplyPreset(name); err != nil {
		return fmt.Errorf("failed to apply preset: %w", err)
	}
	e.recalc()
	return nil
}

// Run returns the run modifiers.
func (e *Engine) Run() *modifiers.Run {
	return e.run
}

// Bus returns the event bus.
func (e *Engine) Bus() *events.Bus {
	return e.bus
}

// RNG returns the run's seeded random source.
func (e *Engine) RNG() *rng.RNG {
	return e.rng
}

// TypingEffects returns the current aggregated typing effects.
func (e *Engine) TypingEffects() []modifiers.TypingEffect {
	return e.effects
}

// Thresholds modulates ctx with the current typing effects.
func (e *Engine) Thresholds(ctx challenge.Context) challenge.Thresholds {
	return challenge.Modulate(ctx, e.effects)
}

// CorruptionLevel is the world corruption in [0,1].
func (e *Engine) CorruptionLevel() float64 {
	return e.corruption
}

// Emit forwards ev to the bus.
func (e *Engine) Emit(ev events.Event) {
	e.bus.Emit(ev)
}

// AdvanceChapter starts the next chapter.
func (e *Engine) AdvanceChapter() {
	e.chapter++
	e.bus.Emit(events.ChapterStarted{Chapter: e.chapter, Title: fmt.Sprintf("Chapter %d", e.chapter)})
}

// PassDays lets days go by and handles the consequences.
func (e *Engine) PassDays(days int) {
	if days <= 0 {
		return
	}
	e.bus.Emit(events.TimePassed{Days: days})
	e.Tick()
}

// Tick advances deferred events and handles everything pending. Events
// emitted by handlers are processed in the same tick.
func (e *Engine) Tick() {
	e.bus.Tick()
	for {
		ev, ok := e.bus.Poll()
		if !ok {
			return
		}
		e.handle(ev)
	}
}

func (e *Engine) handle(ev events.Event) {
	switch v := ev.(type) {
	case events.CombatEnded:
		// Every encounter costs a day whatever its outcome.
		e.bus.Emit(events.TimePassed{Days: 1})
		if v.Outcome != events.Victory {
			return
		}
		if v.XP > 0 {
			xp := int(math.Round(float64(v.XP) * e.run.RewardMultiplier()))
			e.bus.Emit(events.ExperienceGained{Amount: xp, Source: "Defeated " + v.Enemy})
		}
		e.victories++
		if e.victories%victoriesPerChapter == 0 {
			e.AdvanceChapter()
		}
	case events.ExperienceGained:
		e.xp += v.Amount
	case events.CorruptionChanged:
		e.corruption = v.New
		if math.Abs(v.New-v.Old) > corruptionRecalcDelta {
			e.recalc()
		}
	case events.TimePassed:
		before := e.days / daysPerWeek
		e.days += v.Days
		for w := before; w < e.days/daysPerWeek; w++ {
			spread := corruptionSpread
			if e.run.Has(modifiers.AcceleratedCorruption) {
				spread = acceleratedSpread
			}
			next := math.Min(e.corruption+spread, 1)
			e.bus.Emit(events.CorruptionChanged{Old: e.corruption, New: next})
			e.corruption = next
		}
	}
}

// Info summarises the run.
func (e *Engine) Info() Info {
	return Info{
		Seed:             e.seed.Value,
		RunType:          e.run.RunType(),
		Heat:             e.run.Heat(),
		RewardMultiplier: e.run.RewardMultiplier(),
		Corruption:       e.seed.Corruption,
		CorruptionLevel:  e.corruption,
		Days:             e.days,
		Chapter:          e.chapter,
		XP:               e.xp,
		Mutations:        e.run.Mutations(),
	}
}

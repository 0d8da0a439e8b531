package typing

import (
	"math"
	"time"
)

const critMultiplier = 1.5

// floorDamage floors with a small tolerance so products like 10*1.1 do not
// lose a point to float rounding.
func floorDamage(v float64) int {
	return int(math.Floor(v + 1e-9))
}

// CalculateDamage scales base by the combo multiplier and rolls for a
// critical hit using the crit chance of the current flow state. It draws
// exactly one value from the configured source.
func (f *Feel) CalculateDamage(base int) (int, bool) {
	damage := floorDamage(float64(base) * f.multiplier)
	crit := f.src.Float64() < f.flow.CritChance()
	if crit {
		damage = floorDamage(float64(damage) * critMultiplier)
	}
	return damage, crit
}

// DealDamage calculates damage and queues the matching presentation effects.
func (f *Feel) DealDamage(base int) (int, bool) {
	damage, crit := f.CalculateDamage(base)
	f.damage += damage
	if crit {
		f.criticals++
	}
	f.effects.Push(DamageDealt{Amount: damage, Critical: crit})
	switch {
	case crit:
		f.pushShake(0.6, 120*time.Millisecond)
		f.setFlash(FlashPurple, 0.7, 150*time.Millisecond, f.lastTick)
	case damage > base:
		f.pushShake(0.3, 80*time.Millisecond)
	}
	return damage, crit
}

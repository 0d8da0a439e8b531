package typing

import (
	"testing"
	"time"
)

func TestRatingForIntervalMonotonic(t *testing.T) {
	prev := RatingForInterval(0)
	for ms := int64(1); ms <= 1000; ms++ {
		cur := RatingForInterval(ms)
		if cur < prev {
			t.Fatalf("rating got faster at %dms: %v after %v", ms, cur, prev)
		}
		prev = cur
	}
}

func TestRatingForIntervalBands(t *testing.T) {
	cases := []struct {
		ms   int64
		want SpeedRating
	}{
		{0, Blazing},
		{50, Blazing},
		{51, Fast},
		{100, Fast},
		{101, Normal},
		{200, Normal},
		{201, Slow},
		{400, Slow},
		{401, Hesitant},
	}
	for _, tc := range cases {
		if got := RatingForInterval(tc.ms); got != tc.want {
			t.Fatalf("RatingForInterval(%d) = %v, want %v", tc.ms, got, tc.want)
		}
	}
}

func TestRecorderFirstStrokeIsHesitant(t *testing.T) {
	r := NewRecorder(DefaultDamagePerStroke)
	now := time.Unix(0, 0)
	out := r.Record('a', true, now)
	if !out.First || out.Speed != Hesitant || out.Intensity != 0 {
		t.Fatalf("unexpected first stroke: %+v", out)
	}
	if out.Damage != 0.5 {
		t.Fatalf("expected base damage 0.5, got %v", out.Damage)
	}
}

func TestRecorderDamageNonIncreasing(t *testing.T) {
	prev := 2.0
	for _, ms := range []int{10, 50, 120, 250, 399, 400, 900} {
		r := NewRecorder(DefaultDamagePerStroke)
		start := time.Unix(0, 0)
		r.Record('a', true, start)
		out := r.Record('b', true, start.Add(time.Duration(ms)*time.Millisecond))
		if out.Damage > prev {
			t.Fatalf("damage increased at %dms: %v > %v", ms, out.Damage, prev)
		}
		prev = out.Damage
	}
}

func TestRecorderIncorrectDealsNothing(t *testing.T) {
	r := NewRecorder(DefaultDamagePerStroke)
	start := time.Unix(0, 0)
	r.Record('a', true, start)
	out := r.Record('x', false, start.Add(30*time.Millisecond))
	if out.Damage != 0 || out.Speed != Blazing {
		t.Fatalf("unexpected outcome: %+v", out)
	}
}

func TestRecorderStartWordResetsBaseline(t *testing.T) {
	r := NewRecorder(DefaultDamagePerStroke)
	start := time.Unix(0, 0)
	r.Record('a', true, start)
	r.StartWord()
	r.StartWord()
	out := r.Record('b', true, start.Add(10*time.Millisecond))
	if !out.First {
		t.Fatalf("expected first stroke after StartWord")
	}
}

package typing

import "testing"

func TestEffectQueueFIFO(t *testing.T) {
	var q EffectQueue
	q.Push(CharCorrect{Index: 0})
	q.Push(ComboBreak{Was: 3})
	q.Push(CharCorrect{Index: 1})
	if q.Len() != 3 {
		t.Fatalf("expected 3 queued, got %d", q.Len())
	}
	got := q.Drain()
	if len(got) != 3 || got[1] != (ComboBreak{Was: 3}) || got[2] != (CharCorrect{Index: 1}) {
		t.Fatalf("unexpected order: %v", got)
	}
	if again := q.Drain(); len(again) != 0 {
		t.Fatalf("expected empty second drain, got %v", again)
	}
}

func TestEffectKindString(t *testing.T) {
	if KindColorFlash.String() != "color_flash" {
		t.Fatalf("unexpected name %q", KindColorFlash.String())
	}
	if EffectKind(99).String() != "effect(99)" {
		t.Fatalf("unexpected fallback %q", EffectKind(99).String())
	}
}

package typing

import (
	"testing"
	"time"
)

func TestClassifyAttack(t *testing.T) {
	cases := []struct {
		name     string
		res      WordResult
		rhythmic bool
		want     AttackType
	}{
		{"fumble", WordResult{Target: "word", Accuracy: 0.25}, false, Fumble},
		{"glancing", WordResult{Target: "word", Accuracy: 0.75}, true, Glancing},
		{"flurry", WordResult{Target: "word", Perfect: true, Accuracy: 1, WPM: 120}, true, Flurry},
		{"heavy", WordResult{Target: "keyboards", Perfect: true, Accuracy: 1, WPM: 60}, true, Heavy},
		{"cadence", WordResult{Target: "word", Perfect: true, Accuracy: 1, WPM: 60}, true, Cadence},
		{"strike", WordResult{Target: "word", Perfect: true, Accuracy: 1, WPM: 60}, false, Strike},
	}
	for _, tc := range cases {
		if got := ClassifyAttack(tc.res, tc.rhythmic); got != tc.want {
			t.Fatalf("%s: got %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestWordsPerMinuteGuardsZero(t *testing.T) {
	if WordsPerMinute(10, 0) != 0 || WordsPerMinute(10, -time.Second) != 0 {
		t.Fatalf("expected zero wpm for non-positive elapsed")
	}
	if got := WordsPerMinute(5, time.Minute); got != 1 {
		t.Fatalf("expected 1 wpm, got %v", got)
	}
}

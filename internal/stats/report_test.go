package stats

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/verte-zerg/keystrike/internal/model"
	"github.com/verte-zerg/keystrike/internal/store"
)

func TestBuildReport(t *testing.T) {
	st, err := store.Open(filepath.Join(t.TempDir(), "keystrike.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})

	ctx := context.Background()
	var ids []string
	for i := 0; i < 3; i++ {
		start := time.Unix(0, 0).Add(time.Duration(i) * time.Minute)
		end := start.Add(30 * time.Second)
		enc := model.EncounterStats{
			StartedAt:         start,
			EndedAt:           end,
			Lang:              "en",
			Enemy:             "typo-gremlin",
			Context:           "combat",
			Outcome:           model.OutcomeVictory,
			Words:             10,
			CorrectNonSpace:   10,
			IncorrectNonSpace: 1,
			DurationMs:        end.Sub(start).Milliseconds(),
		}
		chars := []model.CharStats{
			{Char: "a", Correct: 5, Incorrect: 0},
			{Char: "b", Correct: 4, Incorrect: 1},
		}
		id, err := st.InsertEncounter(ctx, enc, chars)
		if err != nil {
			t.Fatalf("insert encounter: %v", err)
		}
		ids = append(ids, id)
	}

	cfg := model.StatsConfig{
		Lang:        "en",
		Last:        2,
		CurveWindow: 2,
		Chars:       "a,b",
	}
	report, err := BuildReport(ctx, st, cfg)
	if err != nil {
		t.Fatalf("build report: %v", err)
	}
	if len(report.Encounters) != 2 {
		t.Fatalf("expected 2 encounters, got %d", len(report.Encounters))
	}
	if report.Encounters[0].ID != ids[1] || report.Encounters[1].ID != ids[2] {
		t.Fatalf("unexpected encounter ids: %+v", report.Encounters)
	}
	if len(report.WindowIDs) != 2 {
		t.Fatalf("expected 2 window ids, got %d", len(report.WindowIDs))
	}
	if len(report.CharAggsAll) == 0 || len(report.CharAggsWindow) == 0 {
		t.Fatalf("expected char aggregates, got %+v", report)
	}
	if got := report.PerEncounter[ids[2]]["b"].Incorrect; got != 1 {
		t.Fatalf("expected per-encounter curve data for b, got %d", got)
	}
}

func TestParseChars(t *testing.T) {
	got := ParseChars(" a, space ,,b")
	if len(got) != 3 || got[0] != "a" || got[1] != " " || got[2] != "b" {
		t.Fatalf("unexpected chars: %q", got)
	}
	if ParseChars("") != nil {
		t.Fatalf("expected nil for empty list")
	}
}

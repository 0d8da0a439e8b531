package stats

import (
	"context"
	"fmt"
	"strings"

	"github.com/verte-zerg/keystrike/internal/model"
	"github.com/verte-zerg/keystrike/internal/store"
)

// Report contains precomputed data for stats rendering.
type Report struct {
	Encounters     []model.EncounterAggregate
	WindowIDs      []string
	CharAggsAll    []model.CharAggregate
	CharAggsWindow []model.CharAggregate
	CurveChars     []string
	PerEncounter   map[string]map[string]model.CharAggregate
}

// BuildReport loads and prepares data for stats rendering.
func BuildReport(ctx context.Context, st *store.Store, cfg model.StatsConfig) (Report, error) {
	encounters, err := st.ListEncounters(ctx, cfg)
	if err != nil {
		return Report{}, fmt.Errorf("failed to list encounters: %w", err)
	}
	if cfg.Last > 0 && len(encounters) > cfg.Last {
		encounters = encounters[len(encounters)-cfg.Last:]
	}

	allIDs := encounterIDs(encounters)
	windowIDs := lastEncounterIDs(encounters, cfg.CurveWindow)
	charAggsAll, err := st.ListCharAggregatesForEncounters(ctx, allIDs)
	if err != nil {
		return Report{}, fmt.Errorf("failed to aggregate chars: %w", err)
	}
	charAggsWindow, err := st.ListCharAggregatesForEncounters(ctx, windowIDs)
	if err != nil {
		return Report{}, fmt.Errorf("failed to aggregate window chars: %w", err)
	}

	chars := ParseChars(cfg.Chars)
	if len(chars) == 0 {
		chars = TopCharsByFrequency(charAggsAll, 3)
	}
	perEncounter, err := st.ListCharStatsForEncounters(ctx, allIDs, chars)
	if err != nil {
		return Report{}, fmt.Errorf("failed to load char curves: %w", err)
	}

	return Report{
		Encounters:     encounters,
		WindowIDs:      windowIDs,
		CharAggsAll:    charAggsAll,
		CharAggsWindow: charAggsWindow,
		CurveChars:     chars,
		PerEncounter:   perEncounter,
	}, nil
}

// ParseChars splits a comma-separated character list. "space" selects ' '.
func ParseChars(list string) []string {
	var out []string
	for _, part := range strings.Split(list, ",") {
		part = strings.TrimSpace(part)
		switch part {
		case "":
			continue
		case "space", "<space>":
			part = " "
		}
		out = append(out, part)
	}
	return out
}

func encounterIDs(encounters []model.EncounterAggregate) []string {
	ids := make([]string, len(encounters))
	for i, e := range encounters {
		ids[i] = e.ID
	}
	return ids
}

func lastEncounterIDs(encounters []model.EncounterAggregate, window int) []string {
	if window <= 0 || len(encounters) <= window {
		return encounterIDs(encounters)
	}
	return encounterIDs(encounters[len(encounters)-window:])
}

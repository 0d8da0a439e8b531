package stats

import (
	"sort"

	"github.com/verte-zerg/keystrike/internal/model"
)

// minWeakSamples is how many strokes a character needs before it can be
// called weak.
const minWeakSamples = 3

func accuracy(agg model.CharAggregate) float64 {
	total := agg.Correct + agg.Incorrect
	if total == 0 {
		return 1.0
	}
	return float64(agg.Correct) / float64(total)
}

func latency(agg model.CharAggregate) float64 {
	if agg.LatencyCount == 0 {
		return 0
	}
	return float64(agg.LatencySumMs) / float64(agg.LatencyCount)
}

// SelectWeakChars picks up to top characters to bias word generation
// toward. Characters are ranked by accuracy, then by slower average
// latency. Spaces and characters with too few strokes are skipped; a top of
// zero or less keeps every candidate.
func SelectWeakChars(aggs []model.CharAggregate, top int) map[rune]struct{} {
	candidates := make([]model.CharAggregate, 0, len(aggs))
	for _, agg := range aggs {
		if agg.Char == "" || agg.Char == " " || agg.Correct+agg.Incorrect < minWeakSamples {
			continue
		}
		candidates = append(candidates, agg)
	}
	sort.Slice(candidates, func(i, j int) bool {
		ai, aj := accuracy(candidates[i]), accuracy(candidates[j])
		if ai != aj {
			return ai < aj
		}
		li, lj := latency(candidates[i]), latency(candidates[j])
		if li != lj {
			return li > lj
		}
		return candidates[i].Char < candidates[j].Char
	})
	if top > 0 && top < len(candidates) {
		candidates = candidates[:top]
	}
	weak := make(map[rune]struct{}, len(candidates))
	for _, agg := range candidates {
		weak[[]rune(agg.Char)[0]] = struct{}{}
	}
	return weak
}

// TopCharsByFrequency returns the n most typed characters, ties broken
// alphabetically.
func TopCharsByFrequency(aggs []model.CharAggregate, n int) []string {
	if n <= 0 || len(aggs) == 0 {
		return nil
	}
	sorted := append([]model.CharAggregate(nil), aggs...)
	sort.SliceStable(sorted, func(i, j int) bool {
		ti := sorted[i].Correct + sorted[i].Incorrect
		tj := sorted[j].Correct + sorted[j].Incorrect
		if ti != tj {
			return ti > tj
		}
		return sorted[i].Char < sorted[j].Char
	})
	out := make([]string, 0, min(n, len(sorted)))
	for _, agg := range sorted[:min(n, len(sorted))] {
		out = append(out, agg.Char)
	}
	return out
}

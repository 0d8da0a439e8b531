package tui

import (
	"strings"
	"testing"
)

func TestRenderFooterFormats(t *testing.T) {
	out := renderFooter(footerData{
		remaining:  12,
		combo:      7,
		multiplier: 1.7,
		flow:       "flowing",
		hasLast:    true,
		lastWPM:    72.4,
		lastAcc:    0.978,
		allWPM:     68.1,
		allAcc:     0.969,
	})
	if out == "" {
		t.Fatalf("expected footer output")
	}
	if !containsAll(out, []string{"Words left 12", "Combo 7 (x1.7)", "Flow flowing", "Last 72.4 WPM", "97.8%", "All-time 68.1 WPM", "96.9%"}) {
		t.Fatalf("footer missing expected segments: %s", out)
	}
}

func TestRenderFooterWithoutHistory(t *testing.T) {
	out := renderFooter(footerData{remaining: 1, multiplier: 1, flow: "building"})
	if strings.Contains(out, "Last") {
		t.Fatalf("unexpected last segment: %s", out)
	}
}

func containsAll(haystack string, needles []string) bool {
	for _, needle := range needles {
		if !strings.Contains(haystack, needle) {
			return false
		}
	}
	return true
}

package statsui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/keystrike/internal/model"
)

const dateLayout = "2006-01-02"

// parseFilter reads space separated key=value pairs on top of base. Keys
// left out keep their base value; "any" or an empty value clears one.
func parseFilter(input string, base model.StatsConfig) (model.StatsConfig, error) {
	cfg := base
	for _, field := range strings.Fields(input) {
		name, value, ok := strings.Cut(field, "=")
		if !ok {
			return base, fmt.Errorf("expected key=value, got %q", field)
		}
		if value == "any" {
			value = ""
		}
		switch strings.ToLower(name) {
		case "lang":
			cfg.Lang = value
		case "enemy":
			cfg.Enemy = value
		case "since":
			if value == "" {
				cfg.Since = nil
				continue
			}
			parsed, err := time.ParseInLocation(dateLayout, value, time.Local)
			if err != nil {
				return base, fmt.Errorf("invalid since date %q (expected YYYY-MM-DD)", value)
			}
			cfg.Since = &parsed
		case "last":
			n, err := atoiOrZero(value)
			if err != nil || n < 0 {
				return base, fmt.Errorf("invalid last value %q (use 0 or positive integer)", value)
			}
			cfg.Last = n
		case "window":
			n, err := atoiOrZero(value)
			if err != nil || n < 1 {
				return base, fmt.Errorf("invalid curve window %q (use integer >= 1)", value)
			}
			cfg.CurveWindow = n
		case "chars":
			cfg.Chars = value
		default:
			return base, fmt.Errorf("unknown filter %q", name)
		}
	}
	return cfg, nil
}

func atoiOrZero(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
}

// formatFilter is the inverse of parseFilter for prefilling the input.
func formatFilter(cfg model.StatsConfig) string {
	parts := []string{}
	if cfg.Lang != "" {
		parts = append(parts, "lang="+cfg.Lang)
	}
	if cfg.Enemy != "" {
		parts = append(parts, "enemy="+cfg.Enemy)
	}
	if cfg.Since != nil {
		parts = append(parts, "since="+cfg.Since.Format(dateLayout))
	}
	if cfg.Last > 0 {
		parts = append(parts, "last="+strconv.Itoa(cfg.Last))
	}
	parts = append(parts, "window="+strconv.Itoa(cfg.CurveWindow))
	if cfg.Chars != "" {
		parts = append(parts, "chars="+cfg.Chars)
	}
	return strings.Join(parts, " ")
}

func describeFilter(cfg model.StatsConfig) string {
	orAny := func(s string) string {
		if s == "" {
			return "any"
		}
		return s
	}
	since := "any"
	if cfg.Since != nil {
		since = cfg.Since.Format(dateLayout)
	}
	last := "all"
	if cfg.Last > 0 {
		last = strconv.Itoa(cfg.Last)
	}
	return fmt.Sprintf("lang=%s  enemy=%s  since=%s  last=%s  window=%d",
		orAny(cfg.Lang), orAny(cfg.Enemy), since, last, cfg.CurveWindow)
}

func nextCurveWindow(n int) int {
	if n < 5 {
		return 5
	}
	return (n/5 + 1) * 5
}

func prevCurveWindow(n int) int {
	if n <= 5 {
		return 1
	}
	if n%5 == 0 {
		return n - 5
	}
	return (n / 5) * 5
}

func padLine(line string, width int) string {
	if lineWidth := lipgloss.Width(line); lineWidth < width {
		return line + strings.Repeat(" ", width-lineWidth)
	}
	return line
}

func fitLines(s string, width, height int) string {
	if width <= 0 || height <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}

func truncateLine(s string, width int) string {
	if width <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}

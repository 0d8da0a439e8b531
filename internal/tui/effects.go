package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/keystrike/internal/typing"
)

const (
	feedLifetime  = 1500 * time.Millisecond
	introLifetime = 4 * time.Second
	feedMax       = 5
)

type feedLine struct {
	text  string
	style lipgloss.Style
	until time.Time
}

var speedColors = map[string]lipgloss.Color{
	"yellow":    lipgloss.Color("#FADB14"),
	"green":     lipgloss.Color("#52C41A"),
	"white":     lipgloss.Color("#F0F0F0"),
	"gray":      lipgloss.Color("#A6A6A6"),
	"dark_gray": lipgloss.Color("#6E6E6E"),
}

// strokeStyle colors a correct keystroke by how quickly it followed the
// previous one. The first stroke of a word has no interval to rate.
func strokeStyle(out typing.KeystrokeOutcome) lipgloss.Style {
	if !out.Correct {
		return incorrectStyle
	}
	if out.First {
		return correctStyle
	}
	c, ok := speedColors[out.Speed.ColorHint()]
	if !ok {
		return correctStyle
	}
	return lipgloss.NewStyle().Foreground(c)
}

var flashColors = map[typing.FlashColor]lipgloss.Color{
	typing.FlashGreen:  lipgloss.Color("#52C41A"),
	typing.FlashRed:    lipgloss.Color("#FF4D4F"),
	typing.FlashGold:   lipgloss.Color("#C89A3A"),
	typing.FlashBlue:   lipgloss.Color("#4096FF"),
	typing.FlashPurple: lipgloss.Color("#9254DE"),
}

// describeEffect turns an engine effect into a feed line. Per-character
// effects and the shake/flash channels are rendered from engine state
// instead and report false, as does damage which the turn narrates.
func describeEffect(e typing.Effect, feel *typing.Feel) (string, lipgloss.Style, bool) {
	switch v := e.(type) {
	case typing.ComboMilestone:
		text := fmt.Sprintf("%dx combo", v.Combo)
		if feel != nil {
			text = feel.ComboDescription()
		}
		return text, goldStyle, true
	case typing.SpeedMilestone:
		return fmt.Sprintf("%.0f WPM!", v.WPM), blueStyle, true
	case typing.FlowChange:
		return v.To.Description(), purpleStyle, true
	case typing.ComboBreak:
		return fmt.Sprintf("combo broken at %d", v.Was), incorrectStyle, true
	case typing.PerfectWord:
		return "perfect", greenStyle, true
	case typing.WordFailed:
		return fmt.Sprintf("%q ≠ %q", v.Typed, v.Word), incorrectStyle, true
	default:
		return "", lipgloss.Style{}, false
	}
}

// pushFeed appends a line and keeps the newest feedMax lines.
func pushFeed(feed []feedLine, text string, style lipgloss.Style, now time.Time) []feedLine {
	return pushFeedFor(feed, text, style, now, feedLifetime)
}

func pushFeedFor(feed []feedLine, text string, style lipgloss.Style, now time.Time, lifetime time.Duration) []feedLine {
	feed = append(feed, feedLine{text: text, style: style, until: now.Add(lifetime)})
	if len(feed) > feedMax {
		feed = feed[len(feed)-feedMax:]
	}
	return feed
}

func pruneFeed(feed []feedLine, now time.Time) []feedLine {
	kept := feed[:0]
	for _, line := range feed {
		if now.Before(line.until) {
			kept = append(kept, line)
		}
	}
	return kept
}

// shakeOffset converts a shake intensity into a left padding that jitters
// on and off between frames.
func shakeOffset(intensity float64, frame int) int {
	offset := int(intensity * 4)
	if offset <= 0 {
		return 0
	}
	if frame%2 == 1 {
		return 0
	}
	return offset
}

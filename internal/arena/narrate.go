package arena

import (
	"fmt"

	"github.com/verte-zerg/keystrike/internal/content"
	"github.com/verte-zerg/keystrike/internal/typing"
)

const fadedRune = '·'

type themeLines struct {
	entrance string
	bloodied string
}

var themes = map[string]themeLines{
	"easy": {
		entrance: "stumbles into your path",
		bloodied: "wobbles but keeps grinning",
	},
	"technology": {
		entrance: "compiles itself out of the static",
		bloodied: "flickers and starts leaking stack traces",
	},
	"corruption": {
		entrance: "seeps out of a crack in the page",
		bloodied: "writhes, its letters running like ink",
	},
}

var fallbackTheme = themeLines{
	entrance: "appears",
	bloodied: "staggers",
}

func themeFor(e content.Enemy) themeLines {
	if t, ok := themes[e.Theme]; ok {
		return t
	}
	return fallbackTheme
}

func introLine(e content.Enemy) string {
	line := fmt.Sprintf("%s %s.", e.Name, themeFor(e).entrance)
	if e.BattleCry != "" {
		line += fmt.Sprintf(" %q", e.BattleCry)
	}
	return line
}

func actionLine(a typing.AttackType, damage int, critical bool) string {
	switch {
	case damage <= 0:
		return fmt.Sprintf("%s %s misses", a.Icon(), a)
	case critical:
		return fmt.Sprintf("%s %s for %d, critical!", a.Icon(), a, damage)
	default:
		return fmt.Sprintf("%s %s for %d", a.Icon(), a, damage)
	}
}

func bloodiedLine(e content.Enemy) string {
	return e.Name + " " + themeFor(e).bloodied + "."
}

func defeatLine(e content.Enemy) string {
	if e.Defeat != "" {
		return e.Defeat
	}
	return e.Name + " falls."
}

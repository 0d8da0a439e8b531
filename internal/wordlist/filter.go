package wordlist

import (
	"strings"
	"unicode"
)

// FilterFunc reports whether a word is typeable for a language.
type FilterFunc func(string) bool

var scripts = map[string]*unicode.RangeTable{
	"ru": unicode.Cyrillic,
	"uk": unicode.Cyrillic,
	"bg": unicode.Cyrillic,
	"el": unicode.Greek,
}

// FilterForLang returns the word filter for lang. English keeps plain a-z
// words, languages with a known script keep words in that script, and
// anything else keeps words made only of letters.
func FilterForLang(lang string) FilterFunc {
	lang = strings.ToLower(lang)
	if lang == "en" {
		return onlyRunes(func(r rune) bool { return r >= 'a' && r <= 'z' })
	}
	if table, ok := scripts[lang]; ok {
		return onlyRunes(func(r rune) bool { return unicode.Is(table, r) })
	}
	return onlyRunes(unicode.IsLetter)
}

func onlyRunes(keep func(rune) bool) FilterFunc {
	return func(word string) bool {
		if word == "" {
			return false
		}
		for _, r := range word {
			if !keep(r) {
				return false
			}
		}
		return true
	}
}

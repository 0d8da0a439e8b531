package arena

import (
	"fmt"
	"strings"

	"github.com/verte-zerg/keystrike/internal/challenge"
	"github.com/verte-zerg/keystrike/internal/content"
)

// Setup is a resolved challenge context plus any fixed text it brings.
// Script is nil when words come from the generator.
type Setup struct {
	Context challenge.Context
	Script  []string
}

// ResolveContext turns a context spec such as "combat", "ritual:ward-maintenance"
// or "dialogue:greeting" into a challenge context for enemy.
func ResolveContext(spec string, enemy content.Enemy, cat *content.Catalog) (Setup, error) {
	kind, arg, _ := strings.Cut(strings.ToLower(strings.TrimSpace(spec)), ":")
	switch kind {
	case "", "combat":
		stakes := challenge.StakesNormal
		if enemy.Boss {
			stakes = challenge.StakesLethal
		}
		return Setup{Context: challenge.Combat{Enemy: enemy.Name, Stakes: stakes, Boss: enemy.Boss}}, nil
	case "training":
		return Setup{Context: challenge.Combat{Enemy: enemy.Name, Stakes: challenge.StakesTraining}}, nil
	case "ritual":
		if arg == "" {
			ids := cat.RitualIDs()
			if len(ids) == 0 {
				return Setup{}, fmt.Errorf("catalog has no rituals")
			}
			arg = ids[0]
		}
		r, ok := cat.Ritual(arg)
		if !ok {
			return Setup{}, fmt.Errorf("unknown ritual %q", arg)
		}
		return Setup{
			Context: challenge.Ritual{Name: r.Name, TargetWPM: r.TargetWPM, Tolerance: r.Tolerance, Backlash: r.Backlash, Incantation: r.Incantation},
			Script:  splitLines(r.Incantation),
		}, nil
	case "dialogue":
		topic := challenge.Greeting
		if arg != "" {
			parsed, err := challenge.ParseTopic(arg)
			if err != nil {
				return Setup{}, err
			}
			topic = parsed
		}
		d, ok := cat.Dialogue(topic.String())
		if !ok {
			return Setup{}, fmt.Errorf("no dialogue lines for topic %q", topic)
		}
		return Setup{
			Context: challenge.Dialogue{NPC: enemy.Name, Topic: topic, Penalty: challenge.DialoguePenalty{PerTypo: 2}, Relationship: 5, Lines: d.Lines},
			Script:  splitLines(d.Lines),
		}, nil
	case "decryption":
		return Setup{Context: challenge.Decryption{Cipher: challenge.Cipher{Kind: challenge.CipherCaesar, Shift: 3}, RewardXP: 50}}, nil
	case "persuasion":
		return Setup{Context: challenge.Persuasion{NPC: enemy.Name, Argument: enemy.BattleCry}}, nil
	case "transcription":
		return Setup{Context: challenge.Transcription{Source: enemy.Name, PerfectRequired: arg == "perfect"}}, nil
	case "race":
		return Setup{Context: challenge.Race{Opponent: enemy.Name, OpponentWPM: float64(20 + enemy.Attack*4), Prize: enemy.XP}}, nil
	case "stealth":
		return Setup{Context: challenge.Stealth{LoudLetters: []rune("qxzj"), NoiseThreshold: 2, SneakingPast: enemy.Name}}, nil
	default:
		return Setup{}, fmt.Errorf("unknown context %q", spec)
	}
}

func splitLines(lines []string) []string {
	var words []string
	for _, line := range lines {
		words = append(words, strings.Fields(line)...)
	}
	return words
}

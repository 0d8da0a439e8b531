// Package challenge maps a typing context and active run effects to the
// thresholds a typing attempt is judged against.
package challenge

import (
	"fmt"
	"strings"
)

// Kind tags a Context variant.
type Kind int

const (
	KindCombat Kind = iota
	KindDialogue
	KindRitual
	KindDecryption
	KindPersuasion
	KindTranscription
	KindRace
	KindStealth
)

func (k Kind) String() string {
	switch k {
	case KindCombat:
		return "combat"
	case KindDialogue:
		return "dialogue"
	case KindRitual:
		return "ritual"
	case KindDecryption:
		return "decryption"
	case KindPersuasion:
		return "persuasion"
	case KindTranscription:
		return "transcription"
	case KindRace:
		return "race"
	case KindStealth:
		return "stealth"
	default:
		return fmt.Sprintf("context(%d)", int(k))
	}
}

// Context is the situation a typing attempt happens in.
type Context interface {
	Kind() Kind
	Description() string
	isContext()
}

// Name returns the display name of a context.
func Name(c Context) string {
	s := c.Kind().String()
	return strings.ToUpper(s[:1]) + s[1:]
}

// Stakes describes what a combat puts at risk.
type Stakes int

const (
	StakesNormal Stakes = iota
	StakesLethal
	StakesTraining
	StakesWorldEnding
)

func (s Stakes) String() string {
	switch s {
	case StakesLethal:
		return "PERMADEATH ENABLED"
	case StakesTraining:
		return "Nothing (practice)"
	case StakesWorldEnding:
		return "Everything"
	default:
		return "Your life"
	}
}

// Combat is a fight. MinAccuracy and MinWPM are encounter-specific floors
// on top of run effects.
type Combat struct {
	Enemy       string
	Stakes      Stakes
	Boss        bool
	MinAccuracy float64
	MinWPM      float64
}

// Topic is the subject of a conversation.
type Topic int

const (
	Greeting Topic = iota
	Gossip
	QuestInfo
	FactionBusiness
	PersonalSecret
	Negotiation
	Interrogation
	Romance
	Threat
	Philosophy
)

var topicNames = [...]string{
	Greeting:        "greeting",
	Gossip:          "gossip",
	QuestInfo:       "quest-info",
	FactionBusiness: "faction-business",
	PersonalSecret:  "personal-secret",
	Negotiation:     "negotiation",
	Interrogation:   "interrogation",
	Romance:         "romance",
	Threat:          "threat",
	Philosophy:      "philosophy",
}

func (t Topic) String() string {
	if t < 0 || int(t) >= len(topicNames) {
		return fmt.Sprintf("topic(%d)", int(t))
	}
	return topicNames[t]
}

// ParseTopic accepts the names produced by Topic.String.
func ParseTopic(s string) (Topic, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for i, name := range topicNames {
		if name == key {
			return Topic(i), nil
		}
	}
	return Greeting, fmt.Errorf("unknown topic %q", s)
}

// AccuracyRequirement is the accuracy a reply on this topic needs.
func (t Topic) AccuracyRequirement() float64 {
	switch t {
	case Gossip:
		return 0.75
	case Greeting, Threat:
		return 0.80
	case QuestInfo, Interrogation:
		return 0.85
	case FactionBusiness, Negotiation:
		return 0.90
	case Romance:
		return 0.92
	case PersonalSecret, Philosophy:
		return 0.95
	default:
		return 0.85
	}
}

// DialoguePenalty is what typos cost in a conversation.
type DialoguePenalty struct {
	// PerTypo is relationship lost per error. When zero, Flat applies.
	PerTypo int
	Flat    int
}

// Dialogue is a conversation where accuracy matters most.
type Dialogue struct {
	NPC          string
	Topic        Topic
	Penalty      DialoguePenalty
	Relationship int
	Lines        []string
}

// Ritual requires holding a steady speed close to a target.
type Ritual struct {
	Name        string
	TargetWPM   float64
	Tolerance   float64
	Backlash    int
	Incantation []string
}

// Decryption asks for the plaintext of an encoded hint.
type Decryption struct {
	Cipher   Cipher
	Hint     string
	Solution string
	RewardXP int
}

// Persuasion is a debate won by typing counter-arguments.
type Persuasion struct {
	NPC      string
	Argument string
}

// Transcription is exact copying.
type Transcription struct {
	Source          string
	Text            string
	PerfectRequired bool
}

// Race is a speed contest against an opponent.
type Race struct {
	Opponent    string
	OpponentWPM float64
	Prize       int
}

// Stealth marks some letters as loud.
type Stealth struct {
	LoudLetters    []rune
	NoiseThreshold int
	SneakingPast   string
}

func (Combat) Kind() Kind        { return KindCombat }
func (Dialogue) Kind() Kind      { return KindDialogue }
func (Ritual) Kind() Kind        { return KindRitual }
func (Decryption) Kind() Kind    { return KindDecryption }
func (Persuasion) Kind() Kind    { return KindPersuasion }
func (Transcription) Kind() Kind { return KindTranscription }
func (Race) Kind() Kind          { return KindRace }
func (Stealth) Kind() Kind       { return KindStealth }

func (c Combat) Description() string {
	return fmt.Sprintf("Combat against %s. %s at stake.", c.Enemy, c.Stakes)
}

func (d Dialogue) Description() string {
	return fmt.Sprintf("Conversation with %s. Topic: %s.", d.NPC, d.Topic)
}

func (r Ritual) Description() string {
	return fmt.Sprintf("Performing %s. Maintain %.0f WPM.", r.Name, r.TargetWPM)
}

func (d Decryption) Description() string {
	return fmt.Sprintf("Decrypting: %s. Cipher: %s.", d.Hint, d.Cipher.Name())
}

func (p Persuasion) Description() string {
	return fmt.Sprintf("Counter-argue: %q", p.Argument)
}

func (t Transcription) Description() string {
	return fmt.Sprintf("Transcribe %s exactly.", t.Source)
}

func (r Race) Description() string {
	return fmt.Sprintf("Racing %s. Prize: %d gold.", r.Opponent, r.Prize)
}

func (s Stealth) Description() string {
	return fmt.Sprintf("Stealth mode. Loud letters: %s", string(s.LoudLetters))
}

func (Combat) isContext()        {}
func (Dialogue) isContext()      {}
func (Ritual) isContext()        {}
func (Decryption) isContext()    {}
func (Persuasion) isContext()    {}
func (Transcription) isContext() {}
func (Race) isContext()          {}
func (Stealth) isContext()       {}

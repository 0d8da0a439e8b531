package challenge

import (
	"math"
	"strings"
)

// Performance is what the player produced in one attempt.
type Performance struct {
	WPM          float64
	Accuracy     float64
	Errors       int
	PerfectWords int
	Perfect      bool
	Typed        string
	// Noise is the loud-letter count already made earlier in the same
	// stealth challenge.
	Noise int
}

// RewardKind tags a Reward.
type RewardKind int

const (
	RewardXP RewardKind = iota
	RewardGold
	RewardRelationship
)

// Reward is something granted on success.
type Reward struct {
	Kind    RewardKind
	Amount  int
	Subject string
}

// PenaltyKind tags a Penalty.
type PenaltyKind int

const (
	PenaltyDamage PenaltyKind = iota
	PenaltyRelationship
	PenaltyDetected
)

// Penalty is a cost applied on failure.
type Penalty struct {
	Kind    PenaltyKind
	Amount  int
	Subject string
}

// Result is the judged outcome of an attempt.
type Result struct {
	Context  Kind
	Success  bool
	WPM      float64
	Accuracy float64
	// Noise is the running loud-letter total for stealth, this attempt included.
	Noise     int
	Rewards   []Reward
	Penalties []Penalty
}

// XP sums experience rewards.
func (r Result) XP() int {
	total := 0
	for _, rw := range r.Rewards {
		if rw.Kind == RewardXP {
			total += rw.Amount
		}
	}
	return total
}

// Evaluate judges p against the thresholds.
func (th Thresholds) Evaluate(p Performance) Result {
	wpm := p.WPM * th.WPMScale
	acc := math.Min(p.Accuracy*th.AccuracyScale, 1)
	res := Result{WPM: wpm, Accuracy: acc}
	if th.Context == nil {
		res.Success = th.meetsFloors(wpm, acc)
		return res
	}
	res.Context = th.Context.Kind()

	switch c := th.Context.(type) {
	case Combat:
		res.Success = th.meetsFloors(wpm, acc)
		if res.Success {
			res.Rewards = append(res.Rewards, Reward{Kind: RewardXP, Amount: int(wpm * 2)})
		}
	case Dialogue:
		res.Success = acc >= th.MinAccuracy
		switch {
		case res.Success:
			res.Rewards = append(res.Rewards, Reward{Kind: RewardRelationship, Amount: c.Relationship, Subject: c.NPC})
		case c.Penalty.PerTypo > 0:
			res.Penalties = append(res.Penalties, Penalty{Kind: PenaltyRelationship, Amount: p.Errors * c.Penalty.PerTypo, Subject: c.NPC})
		case c.Penalty.Flat > 0:
			res.Penalties = append(res.Penalties, Penalty{Kind: PenaltyRelationship, Amount: c.Penalty.Flat, Subject: c.NPC})
		}
	case Ritual:
		res.Success = math.Abs(wpm-th.TargetWPM) <= th.Tolerance
		if res.Success {
			res.Rewards = append(res.Rewards, Reward{Kind: RewardXP, Amount: 100})
		} else if c.Backlash > 0 {
			res.Penalties = append(res.Penalties, Penalty{Kind: PenaltyDamage, Amount: c.Backlash})
		}
	case Decryption:
		res.Success = acc >= th.MinAccuracy
		if res.Success && c.RewardXP > 0 {
			res.Rewards = append(res.Rewards, Reward{Kind: RewardXP, Amount: c.RewardXP})
		}
	case Stealth:
		res.Noise = p.Noise + countLoud(p.Typed, th.LoudLetters)
		res.Success = res.Noise <= th.NoiseThreshold
		if res.Success {
			res.Rewards = append(res.Rewards, Reward{Kind: RewardXP, Amount: 75})
		} else {
			res.Penalties = append(res.Penalties, Penalty{Kind: PenaltyDetected, Subject: c.SneakingPast})
		}
	case Transcription:
		if th.PerfectRequired {
			res.Success = p.Perfect
		} else {
			res.Success = th.meetsFloors(wpm, acc)
		}
	case Race:
		res.Success = wpm > th.OpponentWPM
		if res.Success && c.Prize > 0 {
			res.Rewards = append(res.Rewards, Reward{Kind: RewardGold, Amount: c.Prize, Subject: c.Opponent})
		}
	default:
		res.Success = th.meetsFloors(wpm, acc)
	}

	if th.DamagePerError > 0 && p.Errors > 0 {
		res.Penalties = append(res.Penalties, Penalty{Kind: PenaltyDamage, Amount: th.DamagePerError * p.Errors})
	}
	return res
}

func (th Thresholds) meetsFloors(wpm, acc float64) bool {
	return acc >= th.MinAccuracy && wpm >= th.MinWPM
}

func countLoud(typed string, loud []rune) int {
	if len(loud) == 0 {
		return 0
	}
	set := strings.ToLower(string(loud))
	n := 0
	for _, r := range strings.ToLower(typed) {
		if strings.ContainsRune(set, r) {
			n++
		}
	}
	return n
}

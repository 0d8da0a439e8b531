// Package arena runs one typing encounter: a word queue typed against an
// enemy under the thresholds of a challenge context.
package arena

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/verte-zerg/keystrike/internal/challenge"
	"github.com/verte-zerg/keystrike/internal/content"
	"github.com/verte-zerg/keystrike/internal/events"
	"github.com/verte-zerg/keystrike/internal/generator"
	"github.com/verte-zerg/keystrike/internal/logging"
	"github.com/verte-zerg/keystrike/internal/model"
	"github.com/verte-zerg/keystrike/internal/modifiers"
	"github.com/verte-zerg/keystrike/internal/rng"
	"github.com/verte-zerg/keystrike/internal/stats"
	"github.com/verte-zerg/keystrike/internal/typing"
	"github.com/verte-zerg/keystrike/internal/world"
)

var (
	ErrNotStarted        = errors.New("encounter not started")
	ErrAlreadyStarted    = errors.New("encounter already started")
	ErrFinished          = errors.New("encounter finished")
	ErrBackspaceDisabled = errors.New("backspace disabled by run modifier")
	ErrNoWords           = errors.New("no words to type")
)

// Config describes one encounter.
type Config struct {
	Enemy content.Enemy
	Setup Setup
	// Words is the pool the generator draws from when Setup has no script.
	Words           []string
	Generate        generator.Options
	PlayerHP        int
	DamagePerStroke float64
	Lang            string
	RunID           string
}

// Option configures an Encounter.
type Option func(*Encounter)

// WithLogger sets the logger. The default discards output.
func WithLogger(l *log.Logger) Option {
	return func(e *Encounter) {
		if l != nil {
			e.log = l
		}
	}
}

// WithCritSource overrides the random source used for critical hits.
func WithCritSource(src rng.Source) Option {
	return func(e *Encounter) {
		e.critSrc = src
	}
}

// Turn is the result of submitting one word.
type Turn struct {
	Word     typing.WordResult
	Check    challenge.Result
	Damage   int
	Critical bool
	Taken    int
	EnemyHP  int
	PlayerHP int
	// Action narrates the player's attack.
	Action string
	// Reaction is the enemy's answer to the attack: a defeat line on a kill
	// or a taunt when it is first bloodied.
	Reaction string
	// Message is the enemy's counterattack line, if it struck.
	Message string
	// Outcome is empty while the encounter continues.
	Outcome string
}

type charStat struct {
	correct      int
	incorrect    int
	latencySumMs int64
	latencyCount int64
}

// Encounter is driven by one input loop and is not safe for concurrent use.
type Encounter struct {
	cfg     Config
	world   *world.Engine
	feel    *typing.Feel
	gen     *generator.Generator
	th      challenge.Thresholds
	log     *log.Logger
	critSrc rng.Source

	queue        []string
	next         int
	shownAt      time.Time
	scrambled    bool
	faded        int
	strokeDamage float64
	noise        int
	intro        string
	bloodied     bool

	enemyHP     int
	playerHP    int
	turns       int
	successes   int
	damageTaken int
	xp          int
	peak        typing.FlowState
	flow        typing.FlowState

	startedAt time.Time
	endedAt   time.Time
	outcome   string

	chars             map[rune]*charStat
	prevCorrectAt     time.Time
	correctNonSpace   int
	incorrectNonSpace int
}

// New prepares an encounter in w. Words are generated immediately so the
// queue is fixed before the first keystroke.
func New(w *world.Engine, cfg Config, opts ...Option) (*Encounter, error) {
	if cfg.Enemy.HP <= 0 {
		return nil, fmt.Errorf("enemy %q has no hit points", cfg.Enemy.ID)
	}
	if cfg.PlayerHP <= 0 {
		return nil, fmt.Errorf("player hp must be positive, got %d", cfg.PlayerHP)
	}
	if cfg.DamagePerStroke <= 0 {
		cfg.DamagePerStroke = typing.DefaultDamagePerStroke
	}
	if cfg.Setup.Context == nil {
		cfg.Setup.Context = challenge.Combat{Enemy: cfg.Enemy.Name, Boss: cfg.Enemy.Boss}
	}
	e := &Encounter{
		cfg:      cfg,
		world:    w,
		gen:      generator.New(w.RNG()),
		th:       w.Thresholds(cfg.Setup.Context),
		log:      logging.Discard(),
		critSrc:  w.RNG(),
		enemyHP:  cfg.Enemy.HP,
		playerHP: cfg.PlayerHP,
		chars:    map[rune]*charStat{},
	}
	for _, opt := range opts {
		opt(e)
	}
	e.feel = typing.New(typing.WithSource(e.critSrc), typing.WithDamagePerStroke(cfg.DamagePerStroke))

	if len(cfg.Setup.Script) > 0 {
		e.queue = append([]string(nil), cfg.Setup.Script...)
	} else {
		e.queue = e.gen.Generate(cfg.Words, e.generateOptions())
	}
	if len(e.queue) == 0 {
		return nil, ErrNoWords
	}
	return e, nil
}

func (e *Encounter) generateOptions() generator.Options {
	opts := e.cfg.Generate
	for _, s := range e.th.Specials {
		switch v := s.(type) {
		case modifiers.ReversedWords:
			opts.ReverseChance = max(opts.ReverseChance, v.Frequency)
		case modifiers.ForeignWords:
			opts.ForeignChance = max(opts.ForeignChance, v.Frequency)
		}
	}
	if a, ok := e.world.Run().Get(modifiers.LongerWords); ok {
		if m, ok := a.Modifier.(modifiers.LongerWordsMod); ok {
			opts.MinLength = max(opts.MinLength, m.MinLength+a.Level-1)
		}
	}
	return opts
}

// Begin starts the clock and presents the first word.
func (e *Encounter) Begin(now time.Time) error {
	if !e.startedAt.IsZero() {
		return ErrAlreadyStarted
	}
	e.startedAt = now
	e.intro = introLine(e.cfg.Enemy)
	e.world.Emit(events.EncounterStarted{Enemy: e.cfg.Enemy.Name, Context: challenge.Name(e.cfg.Setup.Context)})
	e.world.Tick()
	e.log.Debug("encounter started", "enemy", e.cfg.Enemy.ID, "context", challenge.Name(e.cfg.Setup.Context), "words", len(e.queue))
	return e.startWord(now)
}

func (e *Encounter) startWord(now time.Time) error {
	e.shownAt = now
	e.scrambled = false
	e.faded = 0
	e.strokeDamage = 0
	if err := e.feel.StartWord(e.queue[e.next], now); err != nil {
		return fmt.Errorf("failed to present word: %w", err)
	}
	return nil
}

func (e *Encounter) ready() error {
	switch {
	case e.startedAt.IsZero():
		return ErrNotStarted
	case e.outcome != "":
		return ErrFinished
	}
	return nil
}

// Type records one printable keystroke against the current word.
func (e *Encounter) Type(r rune, now time.Time) (typing.KeystrokeOutcome, error) {
	if err := e.ready(); err != nil {
		return typing.KeystrokeOutcome{}, err
	}
	target := []rune(e.feel.Target())
	idx := len([]rune(e.feel.Typed()))
	correct := idx < len(target) && target[idx] == r

	out, err := e.feel.Keystroke(r, correct, now)
	if err != nil {
		return out, err
	}
	e.strokeDamage += out.Damage
	if idx < len(target) {
		e.recordChar(target[idx], correct, now)
	}
	return out, nil
}

func (e *Encounter) recordChar(expected rune, correct bool, now time.Time) {
	entry, ok := e.chars[expected]
	if !ok {
		entry = &charStat{}
		e.chars[expected] = entry
	}
	if !correct {
		e.incorrectNonSpace++
		entry.incorrect++
		return
	}
	e.correctNonSpace++
	entry.correct++
	if !e.prevCorrectAt.IsZero() {
		entry.latencySumMs += now.Sub(e.prevCorrectAt).Milliseconds()
		entry.latencyCount++
	}
	e.prevCorrectAt = now
}

// Backspace removes the last typed character unless the run forbids it.
func (e *Encounter) Backspace() error {
	if err := e.ready(); err != nil {
		return err
	}
	if e.world.Run().Has(modifiers.NoBackspace) {
		return ErrBackspaceDisabled
	}
	e.feel.Backspace()
	return nil
}

// Submit closes the current word: the player strikes, the context judges
// the word and the enemy answers a failed or imperfect word.
func (e *Encounter) Submit(now time.Time) (Turn, error) {
	if err := e.ready(); err != nil {
		return Turn{}, err
	}
	res, err := e.feel.FinishWord(now)
	if err != nil {
		return Turn{}, err
	}
	e.turns++

	perfect := 0
	if res.Perfect {
		perfect = 1
	}
	check := e.th.Evaluate(challenge.Performance{
		WPM:          res.WPM,
		Accuracy:     res.Accuracy,
		Errors:       res.Errors,
		PerfectWords: perfect,
		Perfect:      res.Perfect,
		Typed:        res.Typed,
		Noise:        e.noise,
	})
	if _, ok := e.cfg.Setup.Context.(challenge.Stealth); ok {
		e.noise = check.Noise
	}
	turn := Turn{Word: res, Check: check}
	if check.Success {
		e.successes++
	}
	e.xp += check.XP()

	base := int(e.strokeDamage*res.Attack.Multiplier()) - e.cfg.Enemy.Defense
	if base < 1 && res.Perfect {
		base = 1
	}
	if base > 0 {
		turn.Damage, turn.Critical = e.feel.DealDamage(base)
		e.enemyHP = max(e.enemyHP-turn.Damage, 0)
	}
	turn.Action = actionLine(res.Attack, turn.Damage, turn.Critical)
	switch {
	case e.enemyHP == 0:
		turn.Reaction = defeatLine(e.cfg.Enemy)
	case !e.bloodied && e.enemyHP*2 <= e.cfg.Enemy.HP:
		e.bloodied = true
		turn.Reaction = bloodiedLine(e.cfg.Enemy)
	}

	e.world.Emit(events.WordTyped{Word: res.Target, WPM: res.WPM, Accuracy: res.Accuracy, Perfect: res.Perfect})
	if res.Perfect && typing.IsComboMilestone(e.feel.Combo()) {
		e.world.Emit(events.ComboAchieved{Combo: e.feel.Combo()})
	}
	if flow := e.feel.Flow(); flow != e.flow {
		e.flow = flow
		e.world.Emit(events.FlowEntered{State: flow})
		if flowRank(flow) > flowRank(e.peak) {
			e.peak = flow
		}
	}

	if e.enemyHP > 0 && (!res.Perfect || !check.Success) {
		turn.Taken += e.cfg.Enemy.Attack
		turn.Message = e.cfg.Enemy.Name + " " + e.cfg.Enemy.AttackMessage(e.turns-1)
	}
	for _, p := range check.Penalties {
		if p.Kind == challenge.PenaltyDamage {
			turn.Taken += p.Amount
		}
	}
	e.damageTaken += turn.Taken
	e.playerHP = max(e.playerHP-turn.Taken, 0)

	e.log.Debug("word submitted",
		"target", res.Target, "typed", res.Typed, "wpm", res.WPM, "attack", res.Attack,
		"damage", turn.Damage, "crit", turn.Critical, "taken", turn.Taken, "check", check.Success)

	e.next++
	switch {
	case e.enemyHP == 0:
		e.finish(model.OutcomeVictory, now)
	case e.playerHP == 0:
		e.finish(model.OutcomeDefeat, now)
	case e.next >= len(e.queue):
		e.finish(e.exhaustedOutcome(), now)
	default:
		if err := e.startWord(now); err != nil {
			return Turn{}, err
		}
	}
	e.world.Tick()

	turn.EnemyHP = e.enemyHP
	turn.PlayerHP = e.playerHP
	turn.Outcome = e.outcome
	return turn, nil
}

// exhaustedOutcome decides an encounter whose words ran out. Stealth is won
// by staying under the noise threshold for the whole queue. Otherwise a
// scripted context is won by passing at least half its checks and a
// generated combat queue running dry lets the enemy escape.
func (e *Encounter) exhaustedOutcome() string {
	if s, ok := e.cfg.Setup.Context.(challenge.Stealth); ok {
		if e.noise <= s.NoiseThreshold {
			return model.OutcomeVictory
		}
		return model.OutcomeDefeat
	}
	if len(e.cfg.Setup.Script) == 0 {
		return model.OutcomeFled
	}
	if e.successes*2 >= e.turns {
		return model.OutcomeVictory
	}
	return model.OutcomeDefeat
}

// Flee abandons the encounter.
func (e *Encounter) Flee(now time.Time) error {
	if err := e.ready(); err != nil {
		return err
	}
	e.finish(model.OutcomeFled, now)
	e.world.Tick()
	return nil
}

func (e *Encounter) finish(outcome string, now time.Time) {
	e.outcome = outcome
	e.endedAt = now
	xp := 0
	evOutcome := events.Defeat
	switch outcome {
	case model.OutcomeVictory:
		evOutcome = events.Victory
		xp = e.cfg.Enemy.XP + e.xp
		e.world.Emit(events.EnemyDefeated{Enemy: e.cfg.Enemy.Name, XP: e.cfg.Enemy.XP})
	case model.OutcomeFled:
		evOutcome = events.Fled
	}
	e.xp = xp
	e.world.Emit(events.CombatEnded{Enemy: e.cfg.Enemy.Name, Outcome: evOutcome, XP: xp})
	e.log.Info("encounter ended", "enemy", e.cfg.Enemy.ID, "outcome", outcome, "turns", e.turns, "xp", xp,
		"seed", e.world.RNG().Seed(), "draws", e.world.RNG().Position())
}

// Tick advances time-based effects: feel decay, the run time limit, letter
// fading and scrambling of a word left untouched.
func (e *Encounter) Tick(now time.Time) {
	e.feel.Tick(now)
	if e.ready() != nil {
		return
	}
	if a, ok := e.world.Run().Get(modifiers.TimeLimit); ok {
		if m, ok := a.Modifier.(modifiers.TimeLimitMod); ok && m.Minutes > 0 {
			if now.Sub(e.startedAt) >= time.Duration(m.Minutes)*time.Minute {
				e.finish(model.OutcomeDefeat, now)
				e.world.Tick()
				return
			}
		}
	}
	if fl, ok := challenge.Special[modifiers.FadingLetters](e.th); ok && fl.Rate > 0 {
		e.faded = int(now.Sub(e.shownAt).Seconds() * fl.Rate)
	}
	if e.scrambled || e.feel.Typed() != "" {
		return
	}
	sw, ok := challenge.Special[modifiers.ScrambleWords](e.th)
	if !ok || now.Sub(e.shownAt) < sw.Delay {
		return
	}
	e.scrambled = true
	scrambled := e.gen.Scramble(e.queue[e.next])
	if scrambled == e.queue[e.next] {
		return
	}
	e.queue[e.next] = scrambled
	if err := e.feel.StartWord(scrambled, e.shownAt); err != nil {
		e.log.Warn("failed to scramble word", "error", err)
	}
}

func flowRank(s typing.FlowState) int {
	switch s {
	case typing.Transcendent:
		return 3
	case typing.Flowing:
		return 2
	case typing.Recovering:
		return 1
	default:
		return 0
	}
}

// Prompt is the text shown for the current word. Decryption shows the
// cipher text while the plaintext stays the target. Faded letters are
// hidden from the end of the word; the next letter to type always shows.
func (e *Encounter) Prompt() string {
	shown := e.feel.Target()
	if d, ok := e.cfg.Setup.Context.(challenge.Decryption); ok {
		shown = challenge.Encode(d.Cipher, shown)
	}
	if e.faded <= 0 {
		return shown
	}
	runes := []rune(shown)
	keep := len([]rune(e.feel.Typed())) + 1
	for i, hidden := len(runes)-1, 0; i >= keep && hidden < e.faded; i, hidden = i-1, hidden+1 {
		runes[i] = fadedRune
	}
	return string(runes)
}

// Intro is the line announcing the enemy, set by Begin.
func (e *Encounter) Intro() string { return e.intro }

// Noise is the loud-letter total of a stealth encounter so far.
func (e *Encounter) Noise() int { return e.noise }

// WorldInfo summarises the run the encounter belongs to.
func (e *Encounter) WorldInfo() world.Info { return e.world.Info() }

// Target is the current word.
func (e *Encounter) Target() string { return e.feel.Target() }

// Typed is the input for the current word.
func (e *Encounter) Typed() string { return e.feel.Typed() }

// Upcoming returns up to n words after the current one.
func (e *Encounter) Upcoming(n int) []string {
	start := e.next + 1
	if start >= len(e.queue) || n <= 0 {
		return nil
	}
	end := min(start+n, len(e.queue))
	return e.queue[start:end]
}

// Remaining counts words not yet submitted, the current one included.
func (e *Encounter) Remaining() int { return len(e.queue) - e.next }

func (e *Encounter) Feel() *typing.Feel               { return e.feel }
func (e *Encounter) Thresholds() challenge.Thresholds { return e.th }
func (e *Encounter) Enemy() content.Enemy             { return e.cfg.Enemy }
func (e *Encounter) EnemyHP() int                     { return e.enemyHP }
func (e *Encounter) PlayerHP() int                    { return e.playerHP }
func (e *Encounter) MaxPlayerHP() int                 { return e.cfg.PlayerHP }
func (e *Encounter) Done() bool                       { return e.outcome != "" }
func (e *Encounter) Outcome() string                  { return e.outcome }

// Summary builds the persistence record for a finished encounter.
func (e *Encounter) Summary() (model.EncounterStats, []model.CharStats) {
	st := e.feel.Stats()
	info := e.world.Info()
	ended := e.endedAt
	if ended.IsZero() {
		ended = e.startedAt
	}
	duration := ended.Sub(e.startedAt).Milliseconds()
	wpm, _, acc := stats.EncounterMetrics(e.correctNonSpace, e.incorrectNonSpace, duration)

	enc := model.EncounterStats{
		RunID:             e.cfg.RunID,
		StartedAt:         e.startedAt,
		EndedAt:           ended,
		Lang:              e.cfg.Lang,
		Enemy:             e.cfg.Enemy.ID,
		Context:           e.cfg.Setup.Context.Kind().String(),
		Outcome:           e.outcome,
		Seed:              info.Seed,
		RunType:           info.RunType.String(),
		Heat:              info.Heat,
		Words:             st.Words,
		PerfectWords:      st.PerfectWords,
		Errors:            st.Errors,
		MaxCombo:          st.MaxCombo,
		Criticals:         st.Criticals,
		DamageDealt:       st.Damage,
		DamageTaken:       e.damageTaken,
		WPM:               wpm,
		Accuracy:          acc,
		PeakFlow:          e.peak.String(),
		XP:                e.xp,
		CorrectNonSpace:   e.correctNonSpace,
		IncorrectNonSpace: e.incorrectNonSpace,
		DurationMs:        duration,
	}
	chars := make([]model.CharStats, 0, len(e.chars))
	for ch, entry := range e.chars {
		chars = append(chars, model.CharStats{
			Char:         string(ch),
			Correct:      entry.correct,
			Incorrect:    entry.incorrect,
			LatencySumMs: entry.latencySumMs,
			LatencyCount: entry.latencyCount,
		})
	}
	return enc, chars
}

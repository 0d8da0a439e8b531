package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/verte-zerg/keystrike/internal/arena"
	"github.com/verte-zerg/keystrike/internal/logging"
	"github.com/verte-zerg/keystrike/internal/model"
	statsPkg "github.com/verte-zerg/keystrike/internal/stats"
	"github.com/verte-zerg/keystrike/internal/store"
)

const (
	frameInterval = 33 * time.Millisecond
	upcomingWords = 6
)

type frameMsg time.Time

// Model implements the Bubble Tea encounter screen.
type Model struct {
	enc   *arena.Encounter
	store *store.Store
	log   *log.Logger
	lang  string
	keys  keyMap
	now   func() time.Time

	enemyBar  progress.Model
	playerBar progress.Model

	width  int
	height int
	frame  int

	feed     []feedLine
	strokes  []lipgloss.Style
	reaction string
	saved    bool
	savedID string

	lastWPM float64
	lastAcc float64
	hasLast bool
	allWPM  float64
	allAcc  float64
}

var (
	correctStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	incorrectStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	pendingStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	currentWordStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	cursorStyle      = pendingStyle.Underline(true)
	footerStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	goldStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	blueStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#4096FF"))
	purpleStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#9254DE")).Bold(true)
	greenStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#52C41A"))
	enemyNameStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF7A45")).Bold(true)
	arenaStyle       = lipgloss.NewStyle().Padding(1, 2).Border(lipgloss.RoundedBorder(), true).BorderForeground(lipgloss.Color("#4A4A4A"))
)

// NewModel builds the screen for a prepared encounter. st may be nil, in
// which case nothing is persisted.
func NewModel(enc *arena.Encounter, st *store.Store, logger *log.Logger, lang string) *Model {
	if logger == nil {
		logger = logging.Discard()
	}
	m := &Model{
		enc:       enc,
		store:     st,
		log:       logger,
		lang:      lang,
		keys:      defaultKeyMap(),
		now:       time.Now,
		enemyBar:  progress.New(progress.WithSolidFill("#FF4D4F"), progress.WithoutPercentage()),
		playerBar: progress.New(progress.WithSolidFill("#52C41A"), progress.WithoutPercentage()),
	}
	m.loadFooterStats()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	if err := m.enc.Begin(m.now()); err != nil && !errors.Is(err, arena.ErrAlreadyStarted) {
		m.log.Error("failed to begin encounter", "error", err)
		return tea.Quit
	}
	if intro := m.enc.Intro(); intro != "" {
		m.feed = pushFeedFor(m.feed, intro, enemyNameStyle, m.now(), introLifetime)
	}
	return nextFrame()
}

func nextFrame() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		barWidth := max(msg.Width/3, 10)
		m.enemyBar.Width = barWidth
		m.playerBar.Width = barWidth
		return m, nil
	case frameMsg:
		now := time.Time(msg)
		m.frame++
		m.enc.Tick(now)
		m.sinkEffects(now)
		m.feed = pruneFeed(m.feed, now)
		m.persist()
		return m, nextFrame()
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	now := m.now()
	if key.Matches(msg, m.keys.Quit) {
		m.flee(now)
		m.persist()
		return m, tea.Quit
	}
	if m.enc.Done() {
		if key.Matches(msg, m.keys.Close) {
			return m, tea.Quit
		}
		return m, nil
	}
	switch {
	case key.Matches(msg, m.keys.Flee):
		m.flee(now)
	case key.Matches(msg, m.keys.Submit):
		if m.enc.Typed() == "" {
			return m, nil
		}
		turn, err := m.enc.Submit(now)
		if err != nil {
			m.log.Warn("submit failed", "error", err)
			return m, nil
		}
		m.strokes = m.strokes[:0]
		m.narrate(turn, now)
	case key.Matches(msg, m.keys.Backspace):
		if err := m.enc.Backspace(); errors.Is(err, arena.ErrBackspaceDisabled) {
			m.feed = pushFeed(m.feed, "no second chances", incorrectStyle, now)
		}
		m.strokes = m.strokes[:min(len(m.strokes), len([]rune(m.enc.Typed())))]
	case msg.Type == tea.KeyRunes:
		for _, r := range msg.Runes {
			idx := len([]rune(m.enc.Typed()))
			out, err := m.enc.Type(r, now)
			if err != nil {
				m.log.Warn("keystroke rejected", "error", err)
				break
			}
			m.strokes = append(m.strokes[:min(len(m.strokes), idx)], strokeStyle(out))
		}
	}
	m.sinkEffects(now)
	m.persist()
	return m, nil
}

func (m *Model) flee(now time.Time) {
	if m.enc.Done() {
		return
	}
	if err := m.enc.Flee(now); err != nil {
		m.log.Warn("flee failed", "error", err)
	}
}

// narrate pushes the player's attack, the enemy's reaction and its
// counterattack to the feed.
func (m *Model) narrate(turn arena.Turn, now time.Time) {
	style := correctStyle
	if turn.Critical {
		style = purpleStyle
	}
	m.feed = pushFeed(m.feed, turn.Action, style, now)
	if turn.Reaction != "" {
		m.reaction = turn.Reaction
		reactionStyle := enemyNameStyle
		if turn.EnemyHP == 0 {
			reactionStyle = goldStyle
		}
		m.feed = pushFeed(m.feed, turn.Reaction, reactionStyle, now)
	}
	if turn.Message != "" {
		m.feed = pushFeed(m.feed, fmt.Sprintf("%s (-%d)", turn.Message, turn.Taken), enemyNameStyle, now)
	}
}

// sinkEffects drains the engine queue once and turns it into feed lines.
func (m *Model) sinkEffects(now time.Time) {
	feel := m.enc.Feel()
	for _, e := range feel.DrainEffects() {
		if text, style, ok := describeEffect(e, feel); ok {
			m.feed = pushFeed(m.feed, text, style, now)
		}
	}
}

func (m *Model) persist() {
	if m.saved || !m.enc.Done() {
		return
	}
	m.saved = true
	if m.store == nil {
		return
	}
	enc, chars := m.enc.Summary()
	id, err := m.store.InsertEncounter(context.Background(), enc, chars)
	if errors.Is(err, store.ErrEmptyEncounter) {
		return
	}
	if err != nil {
		m.log.Error("failed to save encounter", "error", err)
		return
	}
	m.savedID = id
	wpm, _, acc := statsPkg.EncounterMetrics(enc.CorrectNonSpace, enc.IncorrectNonSpace, enc.DurationMs)
	m.lastWPM, m.lastAcc, m.hasLast = wpm, acc, true
	m.log.Debug("encounter saved", "id", id)
}

func (m *Model) loadFooterStats() {
	if m.store == nil {
		return
	}
	encounters, err := m.store.ListEncounters(context.Background(), model.StatsConfig{Lang: m.lang})
	if err != nil {
		m.log.Warn("failed to load encounter stats", "error", err)
		return
	}
	if len(encounters) == 0 {
		return
	}
	last := encounters[len(encounters)-1]
	m.lastWPM, _, m.lastAcc = statsPkg.EncounterMetrics(last.Correct, last.Incorrect, last.DurationMs)
	m.hasLast = true

	var correct, incorrect int
	var duration int64
	for _, e := range encounters {
		correct += e.Correct
		incorrect += e.Incorrect
		duration += e.DurationMs
	}
	m.allWPM, _, m.allAcc = statsPkg.EncounterMetrics(correct, incorrect, duration)
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.enc.Done() {
		return m.place(m.renderSummary())
	}
	sections := []string{m.renderBars(), m.renderPrompt(), m.renderFeed()}
	body := strings.Join(sections, "\n\n")
	if offset := shakeOffset(m.enc.Feel().Shake(), m.frame); offset > 0 {
		body = lipgloss.NewStyle().PaddingLeft(offset).Render(body)
	}
	return m.place(body)
}

func (m *Model) place(content string) string {
	footer := m.renderFooter()
	if m.width == 0 || m.height == 0 {
		return content + "\n" + footer
	}
	if m.height < 3 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	body := lipgloss.Place(m.width, m.height-1, lipgloss.Center, lipgloss.Center, content)
	return body + "\n" + lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
}

func (m *Model) renderBars() string {
	enemy := m.enc.Enemy()
	enemyPct := float64(m.enc.EnemyHP()) / float64(enemy.HP)
	playerPct := float64(m.enc.PlayerHP()) / float64(m.enc.MaxPlayerHP())
	return strings.Join([]string{
		fmt.Sprintf("%s  %s %d/%d", enemyNameStyle.Render(enemy.Name), m.enemyBar.ViewAs(enemyPct), m.enc.EnemyHP(), enemy.HP),
		fmt.Sprintf("%s  %s %d/%d", greenStyle.Render("You"), m.playerBar.ViewAs(playerPct), m.enc.PlayerHP(), m.enc.MaxPlayerHP()),
	}, "\n")
}

func (m *Model) renderPrompt() string {
	cells := promptCells([]rune(m.enc.Prompt()), []rune(m.enc.Target()), []rune(m.enc.Typed()), m.strokes)
	cells = append(cells, queueCells(m.enc.Upcoming(upcomingWords))...)

	width := 40
	if m.width > 0 {
		width = max(int(float64(m.width)*0.70), 1)
	}
	content := lipgloss.NewStyle().Width(width).Render(wrapCells(cells, width))
	style := arenaStyle
	if flash, ok := m.enc.Feel().Flash(); ok {
		style = style.BorderForeground(flashColors[flash.Color])
	}
	return style.Render(content)
}

func (m *Model) renderFeed() string {
	lines := make([]string, 0, len(m.feed))
	for _, line := range m.feed {
		lines = append(lines, line.style.Render(line.text))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderSummary() string {
	enc, _ := m.enc.Summary()
	title := goldStyle.Render(strings.ToUpper(enc.Outcome))
	lines := []string{title}
	if m.reaction != "" && enc.Outcome == model.OutcomeVictory {
		lines = append(lines, enemyNameStyle.Render(m.reaction))
	}
	info := m.enc.WorldInfo()
	lines = append(lines,
		"",
		fmt.Sprintf("Enemy      %s", m.enc.Enemy().Name),
		fmt.Sprintf("Words      %d (%d perfect)", enc.Words, enc.PerfectWords),
		fmt.Sprintf("WPM        %.1f", enc.WPM),
		fmt.Sprintf("Accuracy   %.1f%%", enc.Accuracy*100),
		fmt.Sprintf("Max combo  %d", enc.MaxCombo),
		fmt.Sprintf("Criticals  %d", enc.Criticals),
		fmt.Sprintf("Damage     %d dealt, %d taken", enc.DamageDealt, enc.DamageTaken),
		fmt.Sprintf("Peak flow  %s", enc.PeakFlow),
		fmt.Sprintf("XP         %d", enc.XP),
		fmt.Sprintf("World      day %d, chapter %d, %.0f%% corrupted", info.Days, info.Chapter, info.CorruptionLevel*100),
		"",
	)
	if m.savedID != "" {
		lines = append(lines, footerStyle.Render("saved "+m.savedID[:8]))
	}
	lines = append(lines, footerStyle.Render("press q to close"))
	return arenaStyle.Render(strings.Join(lines, "\n"))
}

type footerData struct {
	remaining  int
	combo      int
	multiplier float64
	flow       string
	hasLast    bool
	lastWPM    float64
	lastAcc    float64
	allWPM     float64
	allAcc     float64
}

func (m *Model) renderFooter() string {
	feel := m.enc.Feel()
	return renderFooter(footerData{
		remaining:  m.enc.Remaining(),
		combo:      feel.Combo(),
		multiplier: feel.Multiplier(),
		flow:       feel.Flow().String(),
		hasLast:    m.hasLast,
		lastWPM:    m.lastWPM,
		lastAcc:    m.lastAcc,
		allWPM:     m.allWPM,
		allAcc:     m.allAcc,
	})
}

func renderFooter(d footerData) string {
	segments := []string{
		fmt.Sprintf("Words left %d", d.remaining),
		fmt.Sprintf("Combo %d (x%.1f)", d.combo, d.multiplier),
		fmt.Sprintf("Flow %s", d.flow),
	}
	if d.hasLast {
		segments = append(segments, fmt.Sprintf("Last %.1f WPM · %.1f%%", d.lastWPM, d.lastAcc*100))
	}
	segments = append(segments, fmt.Sprintf("All-time %.1f WPM · %.1f%%", d.allWPM, d.allAcc*100))
	return footerStyle.Render(strings.Join(segments, "  "))
}

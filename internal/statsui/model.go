// Package statsui provides the Bubble Tea stats interface.
package statsui

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/keystrike/internal/model"
	"github.com/verte-zerg/keystrike/internal/stats"
	"github.com/verte-zerg/keystrike/internal/store"
)

const (
	tabOverview = iota
	tabChars
	tabCurves
)

var (
	activeNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	inactiveNavStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	cardStyle   = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	cardTitleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cardValueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	tableMutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8"))
)

// Model implements the Bubble Tea stats UI.
type Model struct {
	store *store.Store
	cfg   model.StatsConfig

	report stats.Report
	errMsg string

	tabs      []string
	activeTab int
	viewports []viewport.Model
	charTable table.Model

	width  int
	height int

	filterMode  bool
	filterInput textinput.Model
	filterError string
}

// NewModel constructs a stats UI model.
func NewModel(st *store.Store, cfg model.StatsConfig) *Model {
	if cfg.CurveWindow < 1 {
		cfg.CurveWindow = 1
	}
	m := &Model{
		store:     st,
		cfg:       cfg,
		tabs:      []string{"Overview", "Characters", "Curves"},
		charTable: newCharTable(),
	}
	m.filterInput = textinput.New()
	m.filterInput.Prompt = "Filter: "
	m.filterInput.Placeholder = "lang=en enemy=typo-gremlin last=20 since=2024-01-01"
	m.filterInput.Cursor.SetMode(cursor.CursorBlink)
	m.viewports = make([]viewport.Model, len(m.tabs))
	for i := range m.viewports {
		m.viewports[i] = viewport.New(0, 0)
	}
	m.refreshReport()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		m.renderTabContents()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.filterMode {
			return m.updateFilter(msg)
		}
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "left", "h":
			m.moveTab(-1)
			return m, tea.ClearScreen
		case "right", "l":
			m.moveTab(1)
			return m, tea.ClearScreen
		case "=":
			m.cfg.CurveWindow = nextCurveWindow(m.cfg.CurveWindow)
			m.refreshReport()
			return m, nil
		case "-":
			m.cfg.CurveWindow = prevCurveWindow(m.cfg.CurveWindow)
			m.refreshReport()
			return m, nil
		case "/":
			m.filterMode = true
			m.filterError = ""
			m.filterInput.SetValue(formatFilter(m.cfg))
			return m, m.filterInput.Focus()
		}
		if m.activeTab == tabChars {
			var cmd tea.Cmd
			m.charTable, cmd = m.charTable.Update(msg)
			return m, cmd
		}
		var cmd tea.Cmd
		m.viewports[m.activeTab], cmd = m.viewports[m.activeTab].Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.filterMode = false
		m.filterInput.Blur()
		return m, nil
	case tea.KeyEnter:
		cfg, err := parseFilter(m.filterInput.Value(), m.cfg)
		if err != nil {
			m.filterError = err.Error()
			return m, nil
		}
		m.cfg = cfg
		m.filterMode = false
		m.filterInput.Blur()
		m.refreshReport()
		return m, nil
	}
	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	headerHeight, bodyHeight, footerHeight := m.layoutHeights()
	header := fitLines(m.renderHeader(), m.width, headerHeight)
	body := fitLines(m.renderBody(), m.width, bodyHeight)
	footer := fitLines(m.renderFooter(), m.width, footerHeight)
	return strings.Join([]string{header, body, footer}, "\n")
}

func (m *Model) layoutHeights() (headerHeight, bodyHeight, footerHeight int) {
	headerHeight = max(lipgloss.Height(activeNavStyle.Render("X")), 1) + 1
	footerHeight = 1
	if m.errMsg != "" || m.filterError != "" {
		footerHeight++
	}
	bodyHeight = max(m.height-headerHeight-footerHeight, 1)
	return headerHeight, bodyHeight, footerHeight
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	_, bodyHeight, _ := m.layoutHeights()
	for i := range m.viewports {
		m.viewports[i].Width = m.width
		m.viewports[i].Height = bodyHeight
	}
	m.charTable.SetWidth(m.width)
	m.charTable.SetHeight(max(bodyHeight-1, 1))
	m.filterInput.Width = max(m.width-lipgloss.Width(m.filterInput.Prompt)-2, 10)
}

func (m *Model) moveTab(delta int) {
	count := len(m.tabs)
	m.activeTab = (m.activeTab + delta + count) % count
	if m.activeTab == tabChars {
		m.charTable.Focus()
	} else {
		m.charTable.Blur()
	}
}

func (m *Model) refreshReport() {
	report, err := stats.BuildReport(context.Background(), m.store, m.cfg)
	if err != nil {
		m.errMsg = err.Error()
		for i := range m.viewports {
			m.viewports[i].SetContent("Failed to load stats.")
		}
		return
	}
	m.errMsg = ""
	m.report = report
	m.charTable.SetRows(charRows(report.CharAggsAll))
	m.renderTabContents()
}

func (m *Model) renderTabContents() {
	if m.errMsg != "" {
		return
	}
	width := m.width
	if width <= 0 {
		width = 80
	}
	m.viewports[tabOverview].SetContent(renderOverview(m.report.Encounters, m.cfg.CurveWindow, width))
	m.viewports[tabCurves].SetContent(renderCharCurves(m.report, m.cfg.CurveWindow, width))
}

func (m *Model) renderHeader() string {
	parts := make([]string, 0, len(m.tabs))
	for i, tab := range m.tabs {
		if i == m.activeTab {
			parts = append(parts, activeNavStyle.Render(tab))
		} else {
			parts = append(parts, inactiveNavStyle.Render(tab))
		}
	}
	tabs := lipgloss.JoinHorizontal(lipgloss.Top, parts...)
	summary := truncateLine("Settings: "+describeFilter(m.cfg), m.width)
	return tabs + "\n" + headerStyle.Render(summary)
}

func (m *Model) renderBody() string {
	if m.filterMode {
		return strings.Join([]string{
			"Filter encounters (enter to apply, esc to cancel)",
			m.filterInput.View(),
		}, "\n")
	}
	if m.activeTab == tabChars {
		switch {
		case len(m.report.Encounters) == 0:
			return "No encounters found."
		case len(m.report.CharAggsAll) == 0:
			return "No character stats found."
		}
		return tableMutedStyle.Render(m.charTable.View())
	}
	return m.viewports[m.activeTab].View()
}

func (m *Model) renderFooter() string {
	help := headerStyle.Render("Nav: left/right  Scroll: up/down/pgup/pgdn  Window: -/=  Filter: /  Quit: q")
	if m.filterMode {
		help = headerStyle.Render("enter: apply  esc: cancel  ctrl+c: quit")
	}
	switch {
	case m.filterError != "" && m.filterMode:
		return help + "\n" + errorStyle.Render(m.filterError)
	case m.errMsg != "":
		return help + "\n" + errorStyle.Render(m.errMsg)
	}
	return help
}

func renderOverview(encounters []model.EncounterAggregate, window, width int) string {
	if len(encounters) == 0 {
		return "No encounters found."
	}
	var totalWPM, totalAcc, bestWPM float64
	var wins, xp, bestCombo int
	for _, e := range encounters {
		wpm, _, acc := stats.EncounterMetrics(e.Correct, e.Incorrect, e.DurationMs)
		totalWPM += wpm
		totalAcc += acc
		bestWPM = max(bestWPM, wpm)
		bestCombo = max(bestCombo, e.MaxCombo)
		xp += e.XP
		if e.Outcome == model.OutcomeVictory {
			wins++
		}
	}
	count := float64(len(encounters))
	cards := []string{
		metricCard("Encounters", fmt.Sprintf("%d", len(encounters))),
		metricCard("Won", fmt.Sprintf("%d", wins)),
		metricCard("Avg WPM", fmt.Sprintf("%.1f", totalWPM/count)),
		metricCard("Best WPM", fmt.Sprintf("%.1f", bestWPM)),
		metricCard("Avg Acc", fmt.Sprintf("%.1f%%", (totalAcc/count)*100)),
		metricCard("Best Combo", fmt.Sprintf("%d", bestCombo)),
		metricCard("XP", fmt.Sprintf("%d", xp)),
	}
	var summary string
	if width < 80 {
		summary = strings.Join(cards, "\n")
	} else {
		summary = lipgloss.JoinVertical(lipgloss.Left,
			lipgloss.JoinHorizontal(lipgloss.Top, cards[:4]...),
			lipgloss.JoinHorizontal(lipgloss.Top, cards[4:]...))
	}

	var buf bytes.Buffer
	if err := stats.RenderCurves(&buf, encounters, window, width); err != nil {
		return fmt.Sprintf("Failed to render curves: %v", err)
	}
	parts := []string{summary, renderEnemyBreakdown(encounters), strings.TrimRight(buf.String(), "\n")}
	return strings.Join(parts, "\n\n")
}

func metricCard(label, value string) string {
	return cardStyle.Render(fmt.Sprintf("%s\n%s", cardTitleStyle.Render(label), cardValueStyle.Render(value)))
}

// renderEnemyBreakdown lists the win record per enemy, most fought first.
func renderEnemyBreakdown(encounters []model.EncounterAggregate) string {
	type record struct {
		enemy string
		won   int
		total int
	}
	byEnemy := map[string]*record{}
	for _, e := range encounters {
		r, ok := byEnemy[e.Enemy]
		if !ok {
			r = &record{enemy: e.Enemy}
			byEnemy[e.Enemy] = r
		}
		r.total++
		if e.Outcome == model.OutcomeVictory {
			r.won++
		}
	}
	records := make([]*record, 0, len(byEnemy))
	for _, r := range byEnemy {
		records = append(records, r)
	}
	sort.Slice(records, func(i, j int) bool {
		if records[i].total == records[j].total {
			return records[i].enemy < records[j].enemy
		}
		return records[i].total > records[j].total
	})
	lines := []string{"Enemies"}
	for _, r := range records {
		lines = append(lines, fmt.Sprintf("  %-20s %d/%d won", r.enemy, r.won, r.total))
	}
	return strings.Join(lines, "\n")
}

func renderCharCurves(report stats.Report, window, width int) string {
	if len(report.Encounters) == 0 {
		return "No encounters found."
	}
	if len(report.CurveChars) == 0 {
		return "No character stats yet."
	}
	var buf bytes.Buffer
	if err := stats.RenderCharCurves(&buf, report.Encounters, report.PerEncounter, report.CurveChars, window, width); err != nil {
		return fmt.Sprintf("Failed to render character curves: %v", err)
	}
	header := headerStyle.Render("Chars: " + strings.Join(report.CurveChars, ", "))
	return strings.TrimRight(header+"\n"+buf.String(), "\n")
}

func newCharTable() table.Model {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Char", Width: 7},
			{Title: "Accuracy", Width: 9},
			{Title: "Avg Latency (ms)", Width: 17},
			{Title: "Correct", Width: 7},
			{Title: "Incorrect", Width: 9},
			{Title: "Total", Width: 6},
		}),
		table.WithHeight(1),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.Padding(0, 1).PaddingLeft(0)
	styles.Selected = styles.Cell.Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	t.SetStyles(styles)
	return t
}

// charRows sorts by total strokes, most typed first.
func charRows(aggs []model.CharAggregate) []table.Row {
	sorted := append([]model.CharAggregate(nil), aggs...)
	sort.Slice(sorted, func(i, j int) bool {
		ti := sorted[i].Correct + sorted[i].Incorrect
		tj := sorted[j].Correct + sorted[j].Incorrect
		if ti == tj {
			return sorted[i].Char < sorted[j].Char
		}
		return ti > tj
	})
	rows := make([]table.Row, 0, len(sorted))
	for _, agg := range sorted {
		total := agg.Correct + agg.Incorrect
		acc := 0.0
		if total > 0 {
			acc = float64(agg.Correct) / float64(total) * 100
		}
		lat := 0.0
		if agg.LatencyCount > 0 {
			lat = float64(agg.LatencySumMs) / float64(agg.LatencyCount)
		}
		label := agg.Char
		if label == " " {
			label = "<space>"
		}
		rows = append(rows, table.Row{
			label,
			fmt.Sprintf("%.2f%%", acc),
			fmt.Sprintf("%.1f", lat),
			fmt.Sprintf("%d", agg.Correct),
			fmt.Sprintf("%d", agg.Incorrect),
			fmt.Sprintf("%d", total),
		})
	}
	return rows
}

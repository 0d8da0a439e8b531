package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/keystrike/internal/config"
	"github.com/verte-zerg/keystrike/internal/model"
	"github.com/verte-zerg/keystrike/internal/modifiers"
	"github.com/verte-zerg/keystrike/internal/stats"
	"github.com/verte-zerg/keystrike/internal/statsui"
	"github.com/verte-zerg/keystrike/internal/store"
	"github.com/verte-zerg/keystrike/internal/wordlist"
	"github.com/verte-zerg/keystrike/internal/world"
)

const defaultCurveWindow = 10

var (
	statsLang        string
	statsEnemy       string
	statsSince       string
	statsLast        int
	statsCurveWindow int
	statsChars       string
	statsPlain       bool

	wordlistLang  string
	wordlistForce bool
)

var titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show encounter stats",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	cmd.Flags().StringVar(&statsLang, "lang", "", "language filter")
	cmd.Flags().StringVar(&statsEnemy, "enemy", "", "enemy filter")
	cmd.Flags().StringVar(&statsSince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&statsLast, "last", 0, "limit to last N encounters")
	cmd.Flags().IntVar(&statsCurveWindow, "curve-window", defaultCurveWindow, "moving average window")
	cmd.Flags().StringVar(&statsChars, "char", "", "characters for per-char curves (comma separated, \"space\" for space)")
	cmd.Flags().BoolVar(&statsPlain, "plain", false, "print a text report instead of the interactive view")
	return cmd
}

func parseStatsConfig() (model.StatsConfig, error) {
	var since *time.Time
	if statsSince != "" {
		parsed, err := time.ParseInLocation("2006-01-02", statsSince, time.Local)
		if err != nil {
			return model.StatsConfig{}, fmt.Errorf("invalid --since value: %w", err)
		}
		since = &parsed
	}
	if statsLast < 0 {
		return model.StatsConfig{}, fmt.Errorf("--last must be >= 0")
	}
	if statsCurveWindow < 1 {
		return model.StatsConfig{}, fmt.Errorf("--curve-window must be >= 1")
	}
	return model.StatsConfig{
		Lang:        statsLang,
		Enemy:       statsEnemy,
		Since:       since,
		Last:        statsLast,
		CurveWindow: statsCurveWindow,
		Chars:       statsChars,
	}, nil
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := parseStatsConfig()
	if err != nil {
		return err
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			// Best-effort close after reporting.
			_ = cerr
		}
	}()

	out := cmd.OutOrStdout()
	if !statsPlain && stats.IsTerminal(out) {
		program := tea.NewProgram(statsui.NewModel(st, cfg), tea.WithAltScreen())
		if _, err := program.Run(); err != nil {
			return fmt.Errorf("failed to run stats TUI: %w", err)
		}
		return nil
	}

	report, err := stats.BuildReport(cmd.Context(), st, cfg)
	if err != nil {
		return err
	}
	return renderTextReport(out, report, cfg, stats.TerminalWidth())
}

func renderTextReport(w io.Writer, report stats.Report, cfg model.StatsConfig, width int) error {
	if err := stats.RenderSummary(w, report.Encounters); err != nil {
		return err
	}
	if len(report.Encounters) == 0 {
		return nil
	}
	if err := stats.RenderCurves(w, report.Encounters, cfg.CurveWindow, width); err != nil {
		return err
	}
	if err := stats.RenderCharTable(w, report.CharAggsWindow); err != nil {
		return err
	}
	return stats.RenderCharCurves(w, report.Encounters, report.PerEncounter, report.CurveChars, cfg.CurveWindow, width)
}

func newWordlistCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wordlist",
		Short: "Manage word lists",
	}

	importCmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Filter, dedupe and install a word list",
		Args:  cobra.ExactArgs(1),
		RunE:  runWordlistImportCmd,
	}
	importCmd.Flags().StringVar(&wordlistLang, "lang", "en", "language code")
	importCmd.Flags().BoolVar(&wordlistForce, "force", false, "overwrite an existing list")

	cmd.AddCommand(importCmd)
	cmd.AddCommand(&cobra.Command{
		Use:   "langs",
		Short: "List available word list languages",
		Args:  cobra.NoArgs,
		RunE:  runWordlistLangsCmd,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "validate <file>",
		Short: "Check that a word list loads",
		Args:  cobra.ExactArgs(1),
		RunE:  runWordlistValidateCmd,
	})
	return cmd
}

func runWordlistImportCmd(cmd *cobra.Command, args []string) error {
	lang := strings.ToLower(strings.TrimSpace(wordlistLang))
	if lang == "" {
		return fmt.Errorf("--lang must not be empty")
	}
	dst := config.DefaultWordListPath(lang)
	if !wordlistForce {
		if _, err := os.Stat(dst); err == nil {
			return fmt.Errorf("word list already exists: %s (use --force to overwrite)", dst)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat word list: %w", err)
		}
	}
	n, err := wordlist.Import(args[0], dst, lang)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d words to %s\n", n, dst)
	return err
}

func runWordlistLangsCmd(cmd *cobra.Command, _ []string) error {
	langs, err := wordlist.Langs(config.DefaultWordListDir())
	if err != nil {
		return err
	}
	for _, lang := range langs {
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), lang); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func runWordlistValidateCmd(cmd *cobra.Command, args []string) error {
	words, err := wordlist.LoadWords(args[0])
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", args[0], err)
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s: %d words\n", filepath.Base(args[0]), len(words))
	return err
}

func newModifiersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "modifiers",
		Short: "List run types and difficulty presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return renderModifiers(cmd.OutOrStdout(), stats.IsTerminal(cmd.OutOrStdout()))
		},
	}
}

func renderModifiers(w io.Writer, styled bool) error {
	lines := []string{heading("Run types", styled)}
	for _, rt := range modifiers.RunTypes() {
		lines = append(lines, fmt.Sprintf("  %-12s %s", rt, rt.Description()))
	}
	lines = append(lines, "", heading("Presets", styled))
	for _, p := range modifiers.Presets() {
		run := modifiers.NewRun()
		if err := run.ApplyPreset(p.Name); err != nil {
			return err
		}
		lines = append(lines, fmt.Sprintf("  %-10s heat %-3d x%.2f rewards", p.Name, run.Heat(), run.RewardMultiplier()))
		for _, a := range p.Modifiers {
			lines = append(lines, "    - "+a.Description())
		}
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func newSeedCmd() *cobra.Command {
	var days int
	cmd := &cobra.Command{
		Use:   "seed <n>",
		Short: "Describe the run generated by a seed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid seed %q: %w", args[0], err)
			}
			if days < 0 {
				return fmt.Errorf("days must not be negative, got %d", days)
			}
			return renderSeed(cmd.OutOrStdout(), value, days, stats.IsTerminal(cmd.OutOrStdout()))
		},
	}
	cmd.Flags().IntVar(&days, "days", 0, "let this many days pass before describing the world")
	return cmd
}

func renderSeed(w io.Writer, value int64, days int, styled bool) error {
	eng := world.New(value)
	eng.PassDays(days)
	info := eng.Info()
	lines := []string{
		heading(fmt.Sprintf("Seed %d", info.Seed), styled),
		fmt.Sprintf("  Corruption  %s (%.0f%%)", info.Corruption, info.CorruptionLevel*100),
		"              " + info.Corruption.Description(),
		fmt.Sprintf("  Heat        %d (x%.2f rewards)", info.Heat, info.RewardMultiplier),
		fmt.Sprintf("  World       day %d, chapter %d", info.Days, info.Chapter),
		"  Mutations",
	}
	for _, m := range info.Mutations {
		lines = append(lines, fmt.Sprintf("    - %s: %s", m.Name, m.Description))
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func heading(s string, styled bool) string {
	if !styled {
		return s
	}
	return titleStyle.Render(s)
}

// Package main provides the CLI entrypoint for keystrike.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/keystrike/internal/arena"
	"github.com/verte-zerg/keystrike/internal/config"
	"github.com/verte-zerg/keystrike/internal/content"
	"github.com/verte-zerg/keystrike/internal/generator"
	"github.com/verte-zerg/keystrike/internal/logging"
	"github.com/verte-zerg/keystrike/internal/model"
	"github.com/verte-zerg/keystrike/internal/modifiers"
	"github.com/verte-zerg/keystrike/internal/stats"
	"github.com/verte-zerg/keystrike/internal/store"
	"github.com/verte-zerg/keystrike/internal/tui"
	"github.com/verte-zerg/keystrike/internal/wordlist"
	"github.com/verte-zerg/keystrike/internal/world"
)

var (
	logLevel string

	playLang       string
	playWords      int
	playCaps       float64
	playPunct      float64
	playPunctSet   string
	playFocusWeak  bool
	playWeakTop    int
	playWeakFactor float64
	playWeakWindow int

	playEnemy   string
	playContext string
	playRunType string
	playPreset  string
	playSeed    int64
	playDamage  float64
	playHP      int
	playCatalog string

	configPrint bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	defaults := config.Defaults()
	rootCmd := &cobra.Command{
		Use:           "keystrike",
		Short:         "Typing roguelike: every keystroke is an attack",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPlayCmd,
	}
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	flags := rootCmd.Flags()
	flags.StringVar(&playLang, "lang", defaults.Lang, "language code")
	flags.IntVar(&playWords, "words", defaults.Words, "words in a generated encounter")
	flags.Float64Var(&playCaps, "caps", defaults.CapsPct, "probability of capitalized first letter (0-1)")
	flags.Float64Var(&playPunct, "punct", defaults.PunctPct, "punctuation probability per word (0-1)")
	flags.StringVar(&playPunctSet, "punct-set", defaults.PunctSet, "punctuation set")
	flags.BoolVar(&playFocusWeak, "focus-weak", false, "bias words toward weak characters")
	flags.IntVar(&playWeakTop, "weak-top", defaults.WeakTop, "number of weak characters to focus on")
	flags.Float64Var(&playWeakFactor, "weak-factor", defaults.WeakFactor, "weight factor for weak characters")
	flags.IntVar(&playWeakWindow, "weak-window", defaults.WeakWindow, "number of recent encounters used for weak chars")
	flags.StringVar(&playEnemy, "enemy", defaults.Enemy, "enemy id from the catalog")
	flags.StringVar(&playContext, "context", defaults.Context, "challenge context, e.g. combat, ritual:purification, dialogue:greeting")
	flags.StringVar(&playRunType, "run-type", defaults.RunType, "run type")
	flags.StringVar(&playPreset, "preset", "", "difficulty preset (easy, normal, hard, nightmare, hell)")
	flags.Int64Var(&playSeed, "seed", 0, "run seed (0 picks one from the clock)")
	flags.Float64Var(&playDamage, "damage-per-stroke", defaults.DamagePerStroke, "base damage of a correct keystroke")
	flags.IntVar(&playHP, "player-hp", defaults.PlayerHP, "player hit points")
	flags.StringVar(&playCatalog, "catalog", "", "content catalog overriding the embedded one")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newWordlistCmd())
	rootCmd.AddCommand(newModifiersCmd())
	rootCmd.AddCommand(newSeedCmd())

	return rootCmd
}

// resolvePlayConfig merges the config file under the flags. Flags the user
// set on the command line always win.
func resolvePlayConfig(cmd *cobra.Command, fileCfg config.FileConfig) model.Config {
	applyStringConfig(cmd, "lang", &playLang, fileCfg.Practice.Lang)
	applyIntConfig(cmd, "words", &playWords, fileCfg.Practice.Words)
	applyFloatConfig(cmd, "caps", &playCaps, fileCfg.Practice.CapsPct)
	applyFloatConfig(cmd, "punct", &playPunct, fileCfg.Practice.PunctPct)
	applyStringConfig(cmd, "punct-set", &playPunctSet, fileCfg.Practice.PunctSet)
	applyBoolConfig(cmd, "focus-weak", &playFocusWeak, fileCfg.Practice.FocusWeak)
	applyIntConfig(cmd, "weak-top", &playWeakTop, fileCfg.Practice.WeakTop)
	applyFloatConfig(cmd, "weak-factor", &playWeakFactor, fileCfg.Practice.WeakFactor)
	applyIntConfig(cmd, "weak-window", &playWeakWindow, fileCfg.Practice.WeakWindow)
	applyFloatConfig(cmd, "damage-per-stroke", &playDamage, fileCfg.Typing.DamagePerStroke)
	applyInt64Config(cmd, "seed", &playSeed, fileCfg.Typing.Seed)
	applyStringConfig(cmd, "enemy", &playEnemy, fileCfg.Arena.Enemy)
	applyStringConfig(cmd, "context", &playContext, fileCfg.Arena.Context)
	applyStringConfig(cmd, "run-type", &playRunType, fileCfg.Arena.RunType)
	applyStringConfig(cmd, "preset", &playPreset, fileCfg.Arena.Preset)
	applyIntConfig(cmd, "player-hp", &playHP, fileCfg.Arena.PlayerHP)
	applyStringConfig(cmd, "catalog", &playCatalog, fileCfg.Arena.Catalog)
	applyStringConfig(cmd, "log-level", &logLevel, fileCfg.Log.Level)

	return model.Config{
		Lang:            playLang,
		Words:           playWords,
		CapsPct:         playCaps,
		PunctPct:        playPunct,
		PunctSet:        playPunctSet,
		FocusWeak:       playFocusWeak,
		WeakTop:         playWeakTop,
		WeakFactor:      playWeakFactor,
		WeakWindow:      playWeakWindow,
		Enemy:           playEnemy,
		Context:         playContext,
		RunType:         playRunType,
		Preset:          playPreset,
		Seed:            playSeed,
		DamagePerStroke: playDamage,
		PlayerHP:        playHP,
		CatalogPath:     playCatalog,
	}
}

func runPlayCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cfg := resolvePlayConfig(cmd, fileCfg)
	if err := config.Validate(cfg); err != nil {
		return err
	}
	logger, err := logging.New(logLevel)
	if err != nil {
		return err
	}

	wordPath := config.DefaultWordListPath(cfg.Lang)
	words, source, err := wordlist.Resolve(wordPath, cfg.Lang)
	if err != nil {
		return wordListLoadError(cfg.Lang, wordPath, err)
	}
	logger.Debug("word list loaded", "source", source, "words", len(words))

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logger.Warn("failed to close db", "error", cerr)
		}
	}()

	weakSet := loadWeakSet(cmd.Context(), st, cfg, logger)

	enc, err := buildEncounter(cfg, words, weakSet, logger)
	if err != nil {
		return err
	}

	program := tea.NewProgram(tui.NewModel(enc, st, logger, cfg.Lang), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	if enc.Done() {
		summary, _ := enc.Summary()
		logger.Info("encounter finished",
			"enemy", summary.Enemy,
			"outcome", summary.Outcome,
			"wpm", fmt.Sprintf("%.1f", summary.WPM),
			"xp", summary.XP)
	}
	return nil
}

func loadWeakSet(ctx context.Context, st *store.Store, cfg model.Config, logger *log.Logger) map[rune]struct{} {
	if !cfg.FocusWeak {
		return nil
	}
	aggs, err := st.GetWeakChars(ctx, cfg.WeakWindow, cfg.Lang)
	if err != nil {
		logger.Warn("failed to load weak chars", "error", err)
		return nil
	}
	weak := stats.SelectWeakChars(aggs, cfg.WeakTop)
	if len(weak) == 0 {
		logger.Info("no stats available for weak-char focus yet; using normal generator")
	}
	return weak
}

// buildEncounter wires the catalog, the run and the challenge context into a
// ready encounter.
func buildEncounter(cfg model.Config, words []string, weak map[rune]struct{}, logger *log.Logger) (*arena.Encounter, error) {
	catalogPath := cfg.CatalogPath
	if catalogPath == "" {
		catalogPath = config.DefaultCatalogPath()
	}
	cat, err := content.Load(catalogPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	enemy, ok := cat.Enemy(cfg.Enemy)
	if !ok {
		return nil, fmt.Errorf("unknown enemy %q (available: %s)", cfg.Enemy, strings.Join(cat.EnemyIDs(), ", "))
	}

	runType, err := modifiers.ParseRunType(cfg.RunType)
	if err != nil {
		return nil, err
	}
	seed := resolveSeed(cfg.Seed, time.Now())
	w := world.WithRunType(seed, runType)
	if cfg.Preset != "" {
		if err := w.ApplyPreset(cfg.Preset); err != nil {
			return nil, err
		}
	}

	setup, err := arena.ResolveContext(cfg.Context, enemy, cat)
	if err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	logger.Debug("run prepared", "run", runID, "seed", seed, "run-type", runType, "heat", w.Info().Heat)
	return arena.New(w, arena.Config{
		Enemy: enemy,
		Setup: setup,
		Words: words,
		Generate: generator.Options{
			Count:      cfg.Words,
			CapsPct:    cfg.CapsPct,
			PunctPct:   cfg.PunctPct,
			PunctSet:   []rune(cfg.PunctSet),
			Weak:       weak,
			WeakFactor: cfg.WeakFactor,
		},
		PlayerHP:        cfg.PlayerHP,
		DamagePerStroke: cfg.DamagePerStroke,
		Lang:            cfg.Lang,
		RunID:           runID,
	}, arena.WithLogger(logger))
}

// resolveSeed returns seed, or a clock-derived seed when it is zero.
func resolveSeed(seed int64, now time.Time) int64 {
	if seed != 0 {
		return seed
	}
	return now.UnixNano()
}

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
	cmd.Flags().BoolVar(&configPrint, "print", false, "print the config path and resolved settings instead of opening an editor")
	return cmd
}

func runConfigCmd(cmd *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if configPrint {
		return printConfig(cmd, path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return errors.New("editor command is empty")
	}
	editCmd := exec.Command(parts[0], append(parts[1:], path)...)
	editCmd.Stdin = os.Stdin
	editCmd.Stdout = os.Stdout
	editCmd.Stderr = os.Stderr
	if err := editCmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func printConfig(cmd *cobra.Command, path string) error {
	fileCfg, err := config.LoadConfig(path)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cfg := resolvePlayConfig(cmd.Root(), fileCfg)
	out := cmd.OutOrStdout()
	lines := []string{
		"config   " + path,
		"db       " + config.DefaultDBPath(),
		"catalog  " + config.DefaultCatalogPath(),
		"",
		fmt.Sprintf("lang=%s words=%d caps=%.2f punct=%.2f punct-set=%q", cfg.Lang, cfg.Words, cfg.CapsPct, cfg.PunctPct, cfg.PunctSet),
		fmt.Sprintf("focus-weak=%t weak-top=%d weak-factor=%.1f weak-window=%d", cfg.FocusWeak, cfg.WeakTop, cfg.WeakFactor, cfg.WeakWindow),
		fmt.Sprintf("enemy=%s context=%s run-type=%s preset=%q", cfg.Enemy, cfg.Context, cfg.RunType, cfg.Preset),
		fmt.Sprintf("seed=%d damage-per-stroke=%.2f player-hp=%d log-level=%s", cfg.Seed, cfg.DamagePerStroke, cfg.PlayerHP, logLevel),
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(out, line); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return config.Validate(cfg)
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil || flagChanged(cmd, name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil || flagChanged(cmd, name) {
		return
	}
	*target = *value
}

func applyInt64Config(cmd *cobra.Command, name string, target, value *int64) {
	if value == nil || flagChanged(cmd, name) {
		return
	}
	*target = *value
}

func applyFloatConfig(cmd *cobra.Command, name string, target, value *float64) {
	if value == nil || flagChanged(cmd, name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil || flagChanged(cmd, name) {
		return
	}
	*target = *value
}

// flagChanged looks the flag up in local and inherited sets so persistent
// flags such as --log-level count too.
func flagChanged(cmd *cobra.Command, name string) bool {
	if f := cmd.Flags().Lookup(name); f != nil {
		return f.Changed
	}
	if f := cmd.InheritedFlags().Lookup(name); f != nil {
		return f.Changed
	}
	return false
}

func defaultConfigTemplate() string {
	d := config.Defaults()
	return fmt.Sprintf(`# keystrike configuration
# Uncomment a value to enable it. CLI flags override config values.

[practice]
# lang = %q              # Language code
# words = %d              # Words in a generated encounter
# caps = %.2f             # Probability of capitalized first letter (0-1)
# punct = %.2f            # Punctuation probability per word (0-1)
# punct-set = %q      # Punctuation set
# focus-weak = false      # Bias words toward weak characters
# weak-top = %d            # Number of weak characters to focus on
# weak-factor = %.1f      # Weight factor for weak characters
# weak-window = %d        # Number of recent encounters used for weak chars

[typing]
# damage-per-stroke = %.1f
# seed = 0                # 0 picks a seed from the clock

[arena]
# enemy = %q
# context = %q        # combat, training, ritual[:id], dialogue[:topic], decryption, persuasion, transcription[:perfect], race, stealth
# run-type = %q
# preset = "normal"
# player-hp = %d
# catalog = "/path/to/catalog.yaml"

[log]
# level = "info"
`,
		d.Lang,
		d.Words,
		d.CapsPct,
		d.PunctPct,
		d.PunctSet,
		d.WeakTop,
		d.WeakFactor,
		d.WeakWindow,
		d.DamagePerStroke,
		d.Enemy,
		d.Context,
		d.RunType,
		d.PlayerHP,
	)
}

func wordListLoadError(lang, path string, err error) error {
	lines := []string{
		fmt.Sprintf("failed to load word list: %v", err),
		fmt.Sprintf("expected word list at: %s", path),
		fmt.Sprintf("language %q not found", lang),
		"Run: keystrike wordlist langs",
		fmt.Sprintf("Import: keystrike wordlist import --lang %s <file>", lang),
	}
	return errors.New(strings.Join(lines, "\n"))
}

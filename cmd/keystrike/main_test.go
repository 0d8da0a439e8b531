package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/keystrike/internal/config"
	"github.com/verte-zerg/keystrike/internal/logging"
	"github.com/verte-zerg/keystrike/internal/model"
	"github.com/verte-zerg/keystrike/internal/stats"
)

func TestFlagsWinOverConfigFile(t *testing.T) {
	root := newRootCmd()
	require.NoError(t, root.ParseFlags([]string{"--enemy", "keyboard-slime", "--seed", "42"}))

	words := 40
	enemy := "the-backspace"
	seed := int64(7)
	level := "debug"
	cfg := resolvePlayConfig(root, config.FileConfig{
		Practice: config.PracticeConfig{Words: &words},
		Typing:   config.TypingConfig{Seed: &seed},
		Arena:    config.ArenaConfig{Enemy: &enemy},
		Log:      config.LogConfig{Level: &level},
	})

	assert.Equal(t, 40, cfg.Words)
	assert.Equal(t, "keyboard-slime", cfg.Enemy)
	assert.Equal(t, int64(42), cfg.Seed)
	assert.Equal(t, "debug", logLevel)
	assert.Equal(t, "combat", cfg.Context)
}

func TestDefaultConfigTemplateLoads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644))

	fileCfg, err := config.LoadConfig(path)
	require.NoError(t, err)
	assert.Nil(t, fileCfg.Practice.Words)
	assert.Nil(t, fileCfg.Arena.Enemy)
}

func TestResolveSeed(t *testing.T) {
	now := time.Unix(0, 1234)
	assert.Equal(t, int64(9), resolveSeed(9, now))
	assert.Equal(t, int64(1234), resolveSeed(0, now))
}

func TestBuildEncounter(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cfg := config.Defaults()
	cfg.Seed = 3
	cfg.Words = 4
	cfg.Preset = "hard"

	enc, err := buildEncounter(cfg, []string{"river", "stone", "cloud"}, nil, logging.Discard())
	require.NoError(t, err)
	assert.Equal(t, 4, enc.Remaining())
	assert.Equal(t, "typo-gremlin", enc.Enemy().ID)

	cfg.Enemy = "nobody"
	_, err = buildEncounter(cfg, []string{"river"}, nil, logging.Discard())
	require.ErrorContains(t, err, "unknown enemy")

	cfg.Enemy = "typo-gremlin"
	cfg.Preset = "impossible"
	_, err = buildEncounter(cfg, []string{"river"}, nil, logging.Discard())
	require.Error(t, err)
}

func TestRenderTextReportEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, renderTextReport(&buf, stats.Report{}, model.StatsConfig{CurveWindow: 5}, 80))
	assert.Equal(t, "No encounters found.\n", buf.String())
}

func TestRenderModifiersAndSeed(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, renderModifiers(&buf, false))
	out := buf.String()
	assert.Contains(t, out, "Run types")
	assert.Contains(t, out, "ironman")
	assert.Contains(t, out, "nightmare")

	var a, b bytes.Buffer
	require.NoError(t, renderSeed(&a, 99, 0, false))
	require.NoError(t, renderSeed(&b, 99, 0, false))
	assert.Equal(t, a.String(), b.String())
	assert.Contains(t, a.String(), "Seed 99")
	assert.Contains(t, a.String(), "(15%)")
	assert.Contains(t, a.String(), "day 0, chapter 1")

	var later bytes.Buffer
	require.NoError(t, renderSeed(&later, 99, 14, false))
	assert.Contains(t, later.String(), "day 14, chapter 1")
	assert.NotContains(t, later.String(), "(15%)")
}

func TestParseStatsConfig(t *testing.T) {
	statsSince, statsLast, statsCurveWindow = "2024-05-01", 3, 4
	t.Cleanup(func() {
		statsSince, statsLast, statsCurveWindow = "", 0, defaultCurveWindow
	})
	cfg, err := parseStatsConfig()
	require.NoError(t, err)
	require.NotNil(t, cfg.Since)
	assert.Equal(t, 3, cfg.Last)

	statsSince = "may"
	_, err = parseStatsConfig()
	require.Error(t, err)
}

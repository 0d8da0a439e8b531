// Package model defines records shared by the store, stats and CLI layers.
package model

import "time"

// Config holds the resolved settings for one encounter.
type Config struct {
	Lang       string
	Words      int
	CapsPct    float64
	PunctPct   float64
	PunctSet   string
	FocusWeak  bool
	WeakTop    int
	WeakFactor float64
	WeakWindow int

	Enemy           string
	Context         string
	RunType         string
	Preset          string
	Seed            int64
	DamagePerStroke float64
	PlayerHP        int
	CatalogPath     string
}

// StatsConfig defines filters and options for stats output.
type StatsConfig struct {
	Lang        string
	Enemy       string
	Since       *time.Time
	Last        int
	CurveWindow int
	Chars       string
}

// Outcome values stored with each encounter.
const (
	OutcomeVictory = "victory"
	OutcomeDefeat  = "defeat"
	OutcomeFled    = "fled"
)

// EncounterStats captures a finished encounter.
type EncounterStats struct {
	ID        string
	RunID     string
	StartedAt time.Time
	EndedAt   time.Time
	Lang      string
	Enemy     string
	Context   string
	Outcome   string
	Seed      int64
	RunType   string
	Heat      int

	Words        int
	PerfectWords int
	Errors       int
	MaxCombo     int
	Criticals    int
	DamageDealt  int
	DamageTaken  int
	WPM          float64
	Accuracy     float64
	PeakFlow     string
	XP           int

	CorrectNonSpace   int
	IncorrectNonSpace int
	DurationMs        int64
}

// CharStats stores per-character stats for an encounter.
type CharStats struct {
	Char         string
	Correct      int
	Incorrect    int
	LatencySumMs int64
	LatencyCount int64
}

// CharAggregate aggregates character stats across encounters.
type CharAggregate struct {
	Char         string
	Correct      int
	Incorrect    int
	LatencySumMs int64
	LatencyCount int64
}

// EncounterAggregate summarizes an encounter for reporting.
type EncounterAggregate struct {
	ID         string
	EndedAt    time.Time
	Enemy      string
	Outcome    string
	Correct    int
	Incorrect  int
	DurationMs int64
	MaxCombo   int
	Criticals  int
	PeakFlow   string
	XP         int
}

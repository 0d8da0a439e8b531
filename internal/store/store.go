// Package store handles SQLite persistence of finished encounters.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/verte-zerg/keystrike/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// ErrEmptyEncounter is returned when an encounter has no typed words.
var ErrEmptyEncounter = errors.New("encounter has no words")

// Store wraps SQLite access for encounter data.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS encounters (
			id TEXT PRIMARY KEY,
			run_id TEXT NOT NULL,
			started_at TEXT NOT NULL,
			ended_at TEXT NOT NULL,
			lang TEXT NOT NULL,
			enemy TEXT NOT NULL,
			context TEXT NOT NULL,
			outcome TEXT NOT NULL,
			seed INTEGER NOT NULL,
			run_type TEXT NOT NULL,
			heat INTEGER NOT NULL,
			words INTEGER NOT NULL,
			perfect_words INTEGER NOT NULL,
			errors INTEGER NOT NULL,
			max_combo INTEGER NOT NULL,
			criticals INTEGER NOT NULL,
			damage_dealt INTEGER NOT NULL,
			damage_taken INTEGER NOT NULL,
			wpm REAL NOT NULL,
			accuracy REAL NOT NULL,
			peak_flow TEXT NOT NULL,
			xp INTEGER NOT NULL,
			correct_nonspace INTEGER NOT NULL,
			incorrect_nonspace INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS encounter_char_stats (
			encounter_id TEXT NOT NULL,
			char TEXT NOT NULL,
			correct INTEGER NOT NULL,
			incorrect INTEGER NOT NULL,
			latency_sum_ms INTEGER NOT NULL,
			latency_count INTEGER NOT NULL,
			PRIMARY KEY (encounter_id, char)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_encounters_ended_at ON encounters(ended_at);`,
		`CREATE INDEX IF NOT EXISTS idx_encounters_run_id ON encounters(run_id);`,
		`CREATE INDEX IF NOT EXISTS idx_encounter_char_stats_char ON encounter_char_stats(char);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertEncounter stores a finished encounter and its per-character stats.
// A missing ID or RunID is filled with a fresh UUID; the stored ID is returned.
func (s *Store) InsertEncounter(ctx context.Context, enc model.EncounterStats, chars []model.CharStats) (id string, err error) {
	if enc.Words == 0 {
		return "", ErrEmptyEncounter
	}
	if enc.ID == "" {
		enc.ID = uuid.NewString()
	}
	if enc.RunID == "" {
		enc.RunID = uuid.NewString()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO encounters (id, run_id, started_at, ended_at, lang, enemy, context, outcome, seed, run_type, heat,
			words, perfect_words, errors, max_combo, criticals, damage_dealt, damage_taken, wpm, accuracy, peak_flow, xp,
			correct_nonspace, incorrect_nonspace, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		enc.ID,
		enc.RunID,
		enc.StartedAt.Format(time.RFC3339Nano),
		enc.EndedAt.Format(time.RFC3339Nano),
		enc.Lang,
		enc.Enemy,
		enc.Context,
		enc.Outcome,
		enc.Seed,
		enc.RunType,
		enc.Heat,
		enc.Words,
		enc.PerfectWords,
		enc.Errors,
		enc.MaxCombo,
		enc.Criticals,
		enc.DamageDealt,
		enc.DamageTaken,
		enc.WPM,
		enc.Accuracy,
		enc.PeakFlow,
		enc.XP,
		enc.CorrectNonSpace,
		enc.IncorrectNonSpace,
		enc.DurationMs,
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert encounter: %w", err)
	}

	if len(chars) > 0 {
		stmt, perr := tx.PrepareContext(ctx,
			`INSERT INTO encounter_char_stats (encounter_id, char, correct, incorrect, latency_sum_ms, latency_count)
			 VALUES (?, ?, ?, ?, ?, ?)`)
		if perr != nil {
			err = perr
			return "", fmt.Errorf("failed to prepare char stats: %w", err)
		}
		defer func() {
			if cerr := stmt.Close(); cerr != nil {
				// Best-effort statement close.
				_ = cerr
			}
		}()
		for _, cs := range chars {
			if _, err = stmt.ExecContext(ctx, enc.ID, cs.Char, cs.Correct, cs.Incorrect, cs.LatencySumMs, cs.LatencyCount); err != nil {
				return "", fmt.Errorf("failed to insert char stats: %w", err)
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit encounter: %w", err)
	}
	return enc.ID, nil
}

// GetWeakChars aggregates character stats over the most recent encounters.
func (s *Store) GetWeakChars(ctx context.Context, window int, lang string) ([]model.CharAggregate, error) {
	if window <= 0 {
		return nil, nil
	}
	query := `WITH recent AS (
		SELECT id FROM encounters
		WHERE (? = '' OR lang = ?)
		ORDER BY ended_at DESC
		LIMIT ?
	)
	SELECT cs.char, SUM(cs.correct), SUM(cs.incorrect), SUM(cs.latency_sum_ms), SUM(cs.latency_count)
	FROM encounter_char_stats cs
	JOIN recent r ON r.id = cs.encounter_id
	GROUP BY cs.char`

	rows, err := s.db.QueryContext(ctx, query, lang, lang, window)
	if err != nil {
		return nil, err
	}
	return scanCharAggregates(rows)
}

// ListEncounters returns encounter aggregates filtered by stats config,
// oldest first.
func (s *Store) ListEncounters(ctx context.Context, cfg model.StatsConfig) ([]model.EncounterAggregate, error) {
	clauses := []string{"1=1"}
	args := []any{}
	if cfg.Lang != "" {
		clauses = append(clauses, "lang = ?")
		args = append(args, cfg.Lang)
	}
	if cfg.Enemy != "" {
		clauses = append(clauses, "enemy = ?")
		args = append(args, cfg.Enemy)
	}
	if cfg.Since != nil {
		clauses = append(clauses, "ended_at >= ?")
		args = append(args, cfg.Since.Format(time.RFC3339Nano))
	}
	query := fmt.Sprintf(`SELECT id, ended_at, enemy, outcome, correct_nonspace, incorrect_nonspace, duration_ms,
			max_combo, criticals, peak_flow, xp
		FROM encounters
		WHERE %s
		ORDER BY ended_at ASC`, strings.Join(clauses, " AND "))
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var out []model.EncounterAggregate
	for rows.Next() {
		var agg model.EncounterAggregate
		var endedAt string
		if err := rows.Scan(&agg.ID, &endedAt, &agg.Enemy, &agg.Outcome, &agg.Correct, &agg.Incorrect, &agg.DurationMs,
			&agg.MaxCombo, &agg.Criticals, &agg.PeakFlow, &agg.XP); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(time.RFC3339Nano, endedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse ended_at %q: %w", endedAt, err)
		}
		agg.EndedAt = parsed
		out = append(out, agg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListCharAggregatesForEncounters aggregates per-character stats across
// the given encounters.
func (s *Store) ListCharAggregatesForEncounters(ctx context.Context, ids []string) ([]model.CharAggregate, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	placeholders, args := inList(ids)
	query := fmt.Sprintf(`SELECT char, SUM(correct), SUM(incorrect), SUM(latency_sum_ms), SUM(latency_count)
		FROM encounter_char_stats
		WHERE encounter_id IN (%s)
		GROUP BY char`, placeholders)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return scanCharAggregates(rows)
}

// ListCharStatsForEncounters returns per-encounter stats for selected characters.
func (s *Store) ListCharStatsForEncounters(ctx context.Context, ids []string, chars []string) (map[string]map[string]model.CharAggregate, error) {
	result := map[string]map[string]model.CharAggregate{}
	if len(ids) == 0 || len(chars) == 0 {
		return result, nil
	}
	idList, args := inList(ids)
	charList, charArgs := inList(chars)
	args = append(args, charArgs...)

	query := fmt.Sprintf(`SELECT encounter_id, char, correct, incorrect, latency_sum_ms, latency_count
		FROM encounter_char_stats
		WHERE encounter_id IN (%s) AND char IN (%s)`, idList, charList)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	for rows.Next() {
		var id string
		var agg model.CharAggregate
		if err := rows.Scan(&id, &agg.Char, &agg.Correct, &agg.Incorrect, &agg.LatencySumMs, &agg.LatencyCount); err != nil {
			return nil, err
		}
		if _, ok := result[id]; !ok {
			result[id] = map[string]model.CharAggregate{}
		}
		result[id][agg.Char] = agg
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// RunTotals sums XP and victories for a run.
func (s *Store) RunTotals(ctx context.Context, runID string) (xp int, victories int, err error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(xp), 0), COALESCE(SUM(CASE WHEN outcome = ? THEN 1 ELSE 0 END), 0)
		 FROM encounters WHERE run_id = ?`, model.OutcomeVictory, runID)
	if err := row.Scan(&xp, &victories); err != nil {
		return 0, 0, fmt.Errorf("failed to load run totals: %w", err)
	}
	return xp, victories, nil
}

func inList(values []string) (string, []any) {
	placeholders := make([]string, len(values))
	args := make([]any, len(values))
	for i, v := range values {
		placeholders[i] = "?"
		args[i] = v
	}
	return strings.Join(placeholders, ","), args
}

func scanCharAggregates(rows *sql.Rows) ([]model.CharAggregate, error) {
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()
	var result []model.CharAggregate
	for rows.Next() {
		var agg model.CharAggregate
		if err := rows.Scan(&agg.Char, &agg.Correct, &agg.Incorrect, &agg.LatencySumMs, &agg.LatencyCount); err != nil {
			return nil, err
		}
		result = append(result, agg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

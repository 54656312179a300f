// Package storage provides SQLite-based persistence for match history.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tank-combat/internal/match"
)

// Store manages the SQLite database connection for match history.
type Store struct {
	db *sql.DB
}

// MatchRecord is one stored match.
type MatchRecord struct {
	ID        int64
	MatchID   string
	LevelID   string
	Pilot1    string
	Pilot2    string
	Score1    int
	Score2    int
	Winner    string // Winning pilot ID, empty on a draw
	EndReason string // "score", "time", "tick_limit", "cancelled"
	Ticks     uint64
	Duration  time.Duration
	Digest    uint64
	CreatedAt time.Time
}

// PilotStats aggregates the matches a pilot took part in.
type PilotStats struct {
	PilotID    string
	Matches    int
	Wins       int
	Draws      int
	Hits       int // Hits scored by the pilot
	LastPlayed time.Time
}

// Losses returns the number of matches lost.
func (p PilotStats) Losses() int {
	return p.Matches - p.Wins - p.Draws
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	// SQLite allows a single writer
	db.SetMaxOpenConns(1)

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS matches (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			match_id TEXT NOT NULL UNIQUE,
			level_id TEXT NOT NULL,
			pilot1 TEXT NOT NULL,
			pilot2 TEXT NOT NULL,
			score1 INTEGER NOT NULL DEFAULT 0,
			score2 INTEGER NOT NULL DEFAULT 0,
			winner TEXT,
			end_reason TEXT NOT NULL,
			ticks INTEGER NOT NULL DEFAULT 0,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			digest TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_matches_level_id ON matches(level_id);
		CREATE INDEX IF NOT EXISTS idx_matches_pilot1 ON matches(pilot1);
		CREATE INDEX IF NOT EXISTS idx_matches_pilot2 ON matches(pilot2);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveMatch records a finished match.
// Returns the ID of the inserted record.
func (s *Store) SaveMatch(ctx context.Context, rec MatchRecord) (int64, error) {
	var winner sql.NullString
	if rec.Winner != "" {
		winner = sql.NullString{String: rec.Winner, Valid: true}
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO matches
		 (match_id, level_id, pilot1, pilot2, score1, score2, winner, end_reason, ticks, duration_ms, digest)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.MatchID,
		rec.LevelID,
		rec.Pilot1,
		rec.Pilot2,
		rec.Score1,
		rec.Score2,
		winner,
		rec.EndReason,
		int64(rec.Ticks),
		rec.Duration.Milliseconds(),
		formatDigest(rec.Digest),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save match: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

const matchColumns = `id, match_id, level_id, pilot1, pilot2, score1, score2,
	winner, end_reason, ticks, duration_ms, digest, created_at`

// MatchByID retrieves a match by its match ID.
// Returns nil, nil when no such match exists.
func (s *Store) MatchByID(ctx context.Context, matchID string) (*MatchRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+matchColumns+` FROM matches WHERE match_id = ?`,
		matchID,
	)

	rec, err := scanMatch(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query match: %w", err)
	}
	return &rec, nil
}

// RecentMatches retrieves the most recent matches, newest first.
// A non-empty pilotID keeps only matches that pilot played.
func (s *Store) RecentMatches(ctx context.Context, pilotID string, limit int) ([]MatchRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `SELECT ` + matchColumns + ` FROM matches`
	args := []any{}
	if pilotID != "" {
		query += ` WHERE pilot1 = ? OR pilot2 = ?`
		args = append(args, pilotID, pilotID)
	}
	query += ` ORDER BY created_at DESC, id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query matches: %w", err)
	}
	defer rows.Close()

	var records []MatchRecord
	for rows.Next() {
		rec, err := scanMatch(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return records, nil
}

// PilotStats aggregates every stored match per pilot, sorted by pilot ID.
// A pilot playing itself counts once per side.
func (s *Store) PilotStats(ctx context.Context) ([]PilotStats, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT pilot, COUNT(*),
		        SUM(CASE WHEN won THEN 1 ELSE 0 END),
		        SUM(CASE WHEN winner IS NULL THEN 1 ELSE 0 END),
		        SUM(hits),
		        MAX(created_at)
		 FROM (
		     SELECT pilot1 AS pilot, score1 AS hits, winner, score1 > score2 AS won, created_at FROM matches
		     UNION ALL
		     SELECT pilot2 AS pilot, score2 AS hits, winner, score2 > score1 AS won, created_at FROM matches
		 )
		 GROUP BY pilot
		 ORDER BY pilot`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get pilot stats: %w", err)
	}
	defer rows.Close()

	var stats []PilotStats
	for rows.Next() {
		var p PilotStats
		var lastPlayed any
		if err := rows.Scan(&p.PilotID, &p.Matches, &p.Wins, &p.Draws, &p.Hits, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		p.LastPlayed = parseTime(lastPlayed)
		stats = append(stats, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

// ClearMatches deletes all stored matches.
func (s *Store) ClearMatches(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM matches")
	if err != nil {
		return fmt.Errorf("storage: cannot clear matches: %w", err)
	}
	return nil
}

// SaveMatchResult implements match.ResultSaver.
// This adapter lets the match runner save results without a direct storage dependency.
func (s *Store) SaveMatchResult(ctx context.Context, r match.Result) error {
	_, err := s.SaveMatch(ctx, MatchRecord{
		MatchID:   string(r.MatchID),
		LevelID:   r.LevelID,
		Pilot1:    r.Pilot1,
		Pilot2:    r.Pilot2,
		Score1:    r.Score1,
		Score2:    r.Score2,
		Winner:    r.WinnerPilot(),
		EndReason: string(r.Reason),
		Ticks:     r.Ticks,
		Duration:  r.Duration,
		Digest:    r.Digest,
	})
	return err
}

// Ensure Store implements ResultSaver
var _ match.ResultSaver = (*Store)(nil)

type scanner interface {
	Scan(dest ...any) error
}

func scanMatch(row scanner) (MatchRecord, error) {
	var rec MatchRecord
	var winner sql.NullString
	var ticks, durationMS int64
	var digest string
	var createdAt any

	if err := row.Scan(
		&rec.ID,
		&rec.MatchID,
		&rec.LevelID,
		&rec.Pilot1,
		&rec.Pilot2,
		&rec.Score1,
		&rec.Score2,
		&winner,
		&rec.EndReason,
		&ticks,
		&durationMS,
		&digest,
		&createdAt,
	); err != nil {
		return MatchRecord{}, err
	}

	if winner.Valid {
		rec.Winner = winner.String
	}
	rec.Ticks = uint64(ticks)
	rec.Duration = time.Duration(durationMS) * time.Millisecond
	rec.Digest, _ = strconv.ParseUint(digest, 16, 64)
	rec.CreatedAt = parseTime(createdAt)
	return rec, nil
}

// formatDigest stores digests as hex text; SQLite integers are signed.
func formatDigest(d uint64) string {
	return fmt.Sprintf("%016x", d)
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

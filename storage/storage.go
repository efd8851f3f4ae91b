package storage

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const createTableSQL = `
CREATE TABLE IF NOT EXISTS runs (
	id           UUID PRIMARY KEY,
	played_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
	user_id      TEXT NOT NULL DEFAULT '',
	player_name  TEXT NOT NULL DEFAULT '',
	seed         BIGINT NOT NULL,
	won          BOOLEAN NOT NULL,
	end_reason   TEXT NOT NULL,
	coins        INT NOT NULL,
	hero_health  INT NOT NULL,
	max_health   INT NOT NULL,
	moves        INT NOT NULL,
	score        INT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_runs_user_id ON runs(user_id);
CREATE INDEX IF NOT EXISTS idx_runs_score ON runs(score DESC);
CREATE TABLE IF NOT EXISTS ability_use (
	id       UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	run_id   UUID NOT NULL REFERENCES runs(id),
	move     INT NOT NULL,
	ability  TEXT NOT NULL,
	target   TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_ability_use_run_id ON ability_use(run_id);
CREATE INDEX IF NOT EXISTS idx_ability_use_ability ON ability_use(ability);
`

const (
	defaultLeaderboardLimit = 50
	maxLeaderboardLimit     = 200
)

// Store persists and retrieves run history.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore connects to Postgres and ensures the runs tables exist.
// If databaseURL is empty, NewStore returns (nil, nil) and no persistence occurs.
func NewStore(ctx context.Context, databaseURL string) (*Store, error) {
	if databaseURL == "" {
		return nil, nil
	}
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	if _, err := pool.Exec(ctx, createTableSQL); err != nil {
		pool.Close()
		return nil, err
	}
	slog.Info("connected to Postgres", "tag", "storage")
	return &Store{pool: pool}, nil
}

// Close closes the connection pool.
func (s *Store) Close() {
	if s != nil && s.pool != nil {
		s.pool.Close()
	}
}

// RunRecord is one finished run, as written by the lobby and returned by the history API.
type RunRecord struct {
	ID         string `json:"id"`
	PlayedAt   string `json:"played_at"` // ISO8601, set on read
	UserID     string `json:"user_id"`
	PlayerName string `json:"player_name"`
	Seed       int64  `json:"seed"`
	Won        bool   `json:"won"`
	EndReason  string `json:"end_reason"` // "won", "lost", "abandoned" or "stuck"
	Coins      int    `json:"coins"`
	HeroHealth int    `json:"hero_health"`
	MaxHealth  int    `json:"max_health"`
	Moves      int    `json:"moves"`
	Score      int    `json:"score"`
}

// AbilityUse is one ability card played during a run.
type AbilityUse struct {
	Move    int    `json:"move"`
	Ability string `json:"ability"`
	Target  string `json:"target"`
}

// InsertRunResult records a finished run. r.ID is the run UUID.
func (s *Store) InsertRunResult(ctx context.Context, r RunRecord) error {
	if s == nil || s.pool == nil {
		return nil
	}
	_, err := s.pool.Exec(ctx, `
		INSERT INTO runs (id, user_id, player_name, seed, won, end_reason, coins, hero_health, max_health, moves, score)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		r.ID, r.UserID, r.PlayerName, r.Seed, r.Won, r.EndReason, r.Coins, r.HeroHealth, r.MaxHealth, r.Moves, r.Score)
	return err
}

// InsertAbilityUses stores the abilities played in a run in one batch.
// Call after InsertRunResult for the same runID.
func (s *Store) InsertAbilityUses(ctx context.Context, runID string, uses []AbilityUse) error {
	if s == nil || s.pool == nil || len(uses) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, u := range uses {
		batch.Queue(`INSERT INTO ability_use (run_id, move, ability, target) VALUES ($1, $2, $3, $4)`,
			runID, u.Move, u.Ability, u.Target)
	}
	return s.pool.SendBatch(ctx, batch).Close()
}

const selectRun = `
	SELECT id, played_at, user_id, player_name, seed, won, end_reason, coins, hero_health, max_health, moves, score
	FROM runs`

func scanRun(row pgx.Row) (RunRecord, error) {
	var r RunRecord
	var playedAt time.Time
	err := row.Scan(&r.ID, &playedAt, &r.UserID, &r.PlayerName, &r.Seed, &r.Won, &r.EndReason,
		&r.Coins, &r.HeroHealth, &r.MaxHealth, &r.Moves, &r.Score)
	if err != nil {
		return r, err
	}
	r.PlayedAt = playedAt.UTC().Format(time.RFC3339)
	return r, nil
}

// ListByUserID returns the user's runs, newest first.
func (s *Store) ListByUserID(ctx context.Context, userID string) ([]RunRecord, error) {
	if s == nil || s.pool == nil {
		return []RunRecord{}, nil
	}
	rows, err := s.pool.Query(ctx, selectRun+`
		WHERE user_id = $1
		ORDER BY played_at DESC`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []RunRecord{}
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// GetBestRun returns the user's highest scoring run, or (nil, nil) if they have none.
func (s *Store) GetBestRun(ctx context.Context, userID string) (*RunRecord, error) {
	if s == nil || s.pool == nil || userID == "" {
		return nil, nil
	}
	r, err := scanRun(s.pool.QueryRow(ctx, selectRun+`
		WHERE user_id = $1
		ORDER BY score DESC, played_at ASC
		LIMIT 1`,
		userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &r, nil
}

// LeaderboardEntry is a single row for the leaderboard API.
type LeaderboardEntry struct {
	UserID        string `json:"user_id"`
	DisplayName   string `json:"display_name"`
	BestScore     int    `json:"best_score"`
	Runs          int    `json:"runs"`
	Wins          int    `json:"wins"`
	IsCurrentUser bool   `json:"is_current_user,omitempty"`
}

const selectLeaderboard = `
	SELECT user_id, MAX(player_name), MAX(score), COUNT(*), COUNT(*) FILTER (WHERE won)
	FROM runs
	WHERE user_id <> ''`

// ListLeaderboard returns players ordered by best score, with optional limit and offset.
func (s *Store) ListLeaderboard(ctx context.Context, limit, offset int) ([]LeaderboardEntry, error) {
	if s == nil || s.pool == nil {
		return []LeaderboardEntry{}, nil
	}
	if limit <= 0 {
		limit = defaultLeaderboardLimit
	}
	if limit > maxLeaderboardLimit {
		limit = maxLeaderboardLimit
	}
	if offset < 0 {
		offset = 0
	}
	rows, err := s.pool.Query(ctx, selectLeaderboard+`
		GROUP BY user_id
		ORDER BY MAX(score) DESC, user_id
		LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []LeaderboardEntry{}
	for rows.Next() {
		var e LeaderboardEntry
		if err := rows.Scan(&e.UserID, &e.DisplayName, &e.BestScore, &e.Runs, &e.Wins); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// GetLeaderboardEntryByUserID returns one player's leaderboard entry, or (nil, nil) if not found.
func (s *Store) GetLeaderboardEntryByUserID(ctx context.Context, userID string) (*LeaderboardEntry, error) {
	if s == nil || s.pool == nil || userID == "" {
		return nil, nil
	}
	var e LeaderboardEntry
	err := s.pool.QueryRow(ctx, selectLeaderboard+`
		AND user_id = $1
		GROUP BY user_id`,
		userID).Scan(&e.UserID, &e.DisplayName, &e.BestScore, &e.Runs, &e.Wins)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}

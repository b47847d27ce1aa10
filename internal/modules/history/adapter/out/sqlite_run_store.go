package out

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"mindgym/internal/modules/history/domain"
	historyout "mindgym/internal/modules/history/port/out"
	apperrors "mindgym/internal/platform/errors"

	_ "modernc.org/sqlite"
)

const timeLayout = time.RFC3339Nano

type SQLiteRunStore struct {
	db *sql.DB
}

var _ historyout.RunStore = (*SQLiteRunStore)(nil)

func NewSQLiteRunStore(dbPath string) (*SQLiteRunStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	store := &SQLiteRunStore{db: db}
	if err := store.ensureSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

func (s *SQLiteRunStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteRunStore) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS runs (
  id TEXT PRIMARY KEY,
  session_id TEXT NOT NULL UNIQUE,
  game TEXT NOT NULL,
  score INTEGER NOT NULL,
  level INTEGER NOT NULL,
  end_reason TEXT NOT NULL,
  seed INTEGER NOT NULL,
  started_at TEXT NOT NULL,
  ended_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS runs_game_ended ON runs (game, ended_at);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create runs table: %w", err)
	}
	return nil
}

// Save ignores a second run for the same session.
func (s *SQLiteRunStore) Save(ctx context.Context, run domain.Run) error {
	const stmt = `
INSERT INTO runs (id, session_id, game, score, level, end_reason, seed, started_at, ended_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(session_id) DO NOTHING;
`
	_, err := s.db.ExecContext(ctx, stmt,
		run.ID,
		run.SessionID,
		run.Game,
		run.Score,
		run.Level,
		run.EndReason,
		run.Seed,
		run.StartedAt.UTC().Format(timeLayout),
		run.EndedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

func (s *SQLiteRunStore) List(ctx context.Context, game string, limit int) ([]domain.Run, error) {
	const query = `
SELECT id, session_id, game, score, level, end_reason, seed, started_at, ended_at
FROM runs
WHERE (? = '' OR game = ?)
ORDER BY ended_at DESC, id DESC
LIMIT ?;
`
	rows, err := s.db.QueryContext(ctx, query, game, game, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs := []domain.Run{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

func (s *SQLiteRunStore) Best(ctx context.Context, game string) (domain.Run, error) {
	const query = `
SELECT id, session_id, game, score, level, end_reason, seed, started_at, ended_at
FROM runs
WHERE game = ?
ORDER BY score DESC, level DESC, ended_at ASC
LIMIT 1;
`
	run, err := scanRun(s.db.QueryRowContext(ctx, query, game))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Run{}, fmt.Errorf("%w: no runs for %q", apperrors.ErrNotFound, game)
	}
	return run, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (domain.Run, error) {
	var (
		run                domain.Run
		startedAt, endedAt string
	)
	if err := row.Scan(&run.ID, &run.SessionID, &run.Game, &run.Score, &run.Level, &run.EndReason, &run.Seed, &startedAt, &endedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Run{}, err
		}
		return domain.Run{}, fmt.Errorf("scan run: %w", err)
	}
	var err error
	if run.StartedAt, err = time.Parse(timeLayout, startedAt); err != nil {
		return domain.Run{}, fmt.Errorf("parse started_at: %w", err)
	}
	if run.EndedAt, err = time.Parse(timeLayout, endedAt); err != nil {
		return domain.Run{}, fmt.Errorf("parse ended_at: %w", err)
	}
	return run, nil
}

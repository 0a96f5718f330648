package out

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"pomoterm/internal/modules/session/domain"
	sessionout "pomoterm/internal/modules/session/port/out"

	_ "modernc.org/sqlite"
)

// SQLiteHistoryProjector is the read-side index over the session log. The
// canonical data lives in the JSON store; this table can always be rebuilt
// from it.
type SQLiteHistoryProjector struct {
	db *sql.DB
}

func NewSQLiteHistoryProjector(dbPath string) (*SQLiteHistoryProjector, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	projector := &SQLiteHistoryProjector{db: db}
	if err := projector.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return projector, nil
}

func (s *SQLiteHistoryProjector) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS sessions (
  id TEXT PRIMARY KEY,
  kind TEXT NOT NULL,
  start_time TEXT NOT NULL,
  duration_seconds INTEGER NOT NULL,
  goal TEXT,
  status TEXT NOT NULL,
  deleted_at TEXT
);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create sessions table: %w", err)
	}
	return nil
}

func (s *SQLiteHistoryProjector) Reset(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM sessions`); err != nil {
		return fmt.Errorf("reset sessions: %w", err)
	}
	return nil
}

func (s *SQLiteHistoryProjector) Upsert(ctx context.Context, session domain.Session) error {
	const stmt = `
INSERT INTO sessions (id, kind, start_time, duration_seconds, goal, status, deleted_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
  kind=excluded.kind,
  start_time=excluded.start_time,
  duration_seconds=excluded.duration_seconds,
  goal=excluded.goal,
  status=excluded.status,
  deleted_at=excluded.deleted_at;
`
	var deletedAt any
	if session.DeletedAt != nil {
		deletedAt = session.DeletedAt.Format("2006-01-02T15:04:05Z07:00")
	}
	_, err := s.db.ExecContext(ctx, stmt,
		session.ID,
		string(session.Kind),
		session.StartTime.Format("2006-01-02T15:04:05Z07:00"),
		session.DurationSeconds,
		session.Goal,
		string(session.Status),
		deletedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert session: %w", err)
	}
	return nil
}

func (s *SQLiteHistoryProjector) Delete(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// Stats aggregates per kind over everything outside the trash.
func (s *SQLiteHistoryProjector) Stats(ctx context.Context) ([]domain.KindStats, error) {
	const query = `
SELECT kind, COUNT(*), COALESCE(SUM(duration_seconds), 0)
FROM sessions
WHERE status != 'trashed'
GROUP BY kind
ORDER BY kind;
`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query stats: %w", err)
	}
	defer rows.Close()

	var out []domain.KindStats
	for rows.Next() {
		var row domain.KindStats
		var kind string
		if err := rows.Scan(&kind, &row.Sessions, &row.TotalSeconds); err != nil {
			return nil, fmt.Errorf("scan stats row: %w", err)
		}
		row.Kind = domain.Kind(kind)
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate stats rows: %w", err)
	}
	return out, nil
}

func (s *SQLiteHistoryProjector) Close() error {
	return s.db.Close()
}

var _ sessionout.HistoryProjector = (*SQLiteHistoryProjector)(nil)

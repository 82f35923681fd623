package out

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"worklog/internal/modules/tracking/domain"
	trackingout "worklog/internal/modules/tracking/port/out"

	_ "modernc.org/sqlite"
)

type SQLiteSessionProjector struct {
	db *sql.DB
}

func NewSQLiteSessionProjector(dbPath string) (*SQLiteSessionProjector, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	projector := &SQLiteSessionProjector{db: db}
	if err := projector.ensureSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return projector, nil
}

var _ trackingout.SessionProjector = (*SQLiteSessionProjector)(nil)

func (s *SQLiteSessionProjector) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS sessions (
  id TEXT PRIMARY KEY,
  kind TEXT NOT NULL,
  start_time TEXT NOT NULL,
  end_time TEXT,
  local_date TEXT NOT NULL,
  duration_seconds INTEGER NOT NULL,
  note TEXT NOT NULL
);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create sessions table: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, `CREATE INDEX IF NOT EXISTS sessions_local_date ON sessions(local_date)`); err != nil {
		return fmt.Errorf("create sessions index: %w", err)
	}
	return nil
}

func (s *SQLiteSessionProjector) Reset(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM sessions`); err != nil {
		return fmt.Errorf("reset sessions: %w", err)
	}
	return nil
}

func (s *SQLiteSessionProjector) UpsertSession(ctx context.Context, session domain.Session, day domain.Date, spent int64) error {
	const stmt = `
INSERT INTO sessions (id, kind, start_time, end_time, local_date, duration_seconds, note)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
  kind=excluded.kind,
  start_time=excluded.start_time,
  end_time=excluded.end_time,
  local_date=excluded.local_date,
  duration_seconds=excluded.duration_seconds,
  note=excluded.note;
`
	var end sql.NullString
	if session.EndTime != nil {
		end = sql.NullString{String: session.EndTime.UTC().Format(time.RFC3339), Valid: true}
	}
	_, err := s.db.ExecContext(ctx, stmt,
		session.ID,
		string(session.Kind),
		session.StartTime.UTC().Format(time.RFC3339),
		end,
		day.String(),
		spent,
		session.Note,
	)
	if err != nil {
		return fmt.Errorf("upsert session: %w", err)
	}
	return nil
}

// DailyTotals sums Work and Break seconds per local day in [from, to]. Days
// without sessions are omitted.
func (s *SQLiteSessionProjector) DailyTotals(ctx context.Context, from, to domain.Date) ([]domain.DayTotals, error) {
	const query = `
SELECT local_date,
  COALESCE(SUM(CASE WHEN kind = 'Work' THEN duration_seconds END), 0),
  COALESCE(SUM(CASE WHEN kind = 'Break' THEN duration_seconds END), 0),
  COUNT(*)
FROM sessions
WHERE local_date BETWEEN ? AND ?
GROUP BY local_date
ORDER BY local_date;
`
	rows, err := s.db.QueryContext(ctx, query, from.String(), to.String())
	if err != nil {
		return nil, fmt.Errorf("query daily totals: %w", err)
	}
	defer rows.Close()

	out := []domain.DayTotals{}
	for rows.Next() {
		var (
			day          string
			work, breaks int64
			count        int
		)
		if err := rows.Scan(&day, &work, &breaks, &count); err != nil {
			return nil, fmt.Errorf("scan daily totals: %w", err)
		}
		date, err := domain.ParseDate(day)
		if err != nil {
			return nil, err
		}
		out = append(out, domain.DayTotals{
			Date: date,
			Totals: domain.Aggregate{
				Work:  time.Duration(work) * time.Second,
				Break: time.Duration(breaks) * time.Second,
			},
			Sessions: count,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate daily totals: %w", err)
	}
	return out, nil
}

func (s *SQLiteSessionProjector) Close() error {
	return s.db.Close()
}

// LazySessionProjector opens the SQLite projection on first use, so commands
// that never report or reindex leave no database file behind. A failed open
// is retried on the next call.
type LazySessionProjector struct {
	dbPath string

	mu        sync.Mutex
	projector *SQLiteSessionProjector
}

func NewLazySessionProjector(dbPath string) *LazySessionProjector {
	return &LazySessionProjector{dbPath: dbPath}
}

var _ trackingout.SessionProjector = (*LazySessionProjector)(nil)

func (l *LazySessionProjector) open() (*SQLiteSessionProjector, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.projector == nil {
		projector, err := NewSQLiteSessionProjector(l.dbPath)
		if err != nil {
			return nil, err
		}
		l.projector = projector
	}
	return l.projector, nil
}

func (l *LazySessionProjector) Reset(ctx context.Context) error {
	projector, err := l.open()
	if err != nil {
		return err
	}
	return projector.Reset(ctx)
}

func (l *LazySessionProjector) UpsertSession(ctx context.Context, session domain.Session, day domain.Date, spent int64) error {
	projector, err := l.open()
	if err != nil {
		return err
	}
	return projector.UpsertSession(ctx, session, day, spent)
}

func (l *LazySessionProjector) DailyTotals(ctx context.Context, from, to domain.Date) ([]domain.DayTotals, error) {
	projector, err := l.open()
	if err != nil {
		return nil, err
	}
	return projector.DailyTotals(ctx, from, to)
}

func (l *LazySessionProjector) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.projector == nil {
		return nil
	}
	err := l.projector.Close()
	l.projector = nil
	return err
}

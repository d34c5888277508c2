package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"nimbus/internal/config"
)

const (
	lockRetryDelay  = 50 * time.Millisecond
	defaultRunLimit = 20
	// Fixed width so lexical order in SQLite matches chronological order.
	timestampLayout = "2006-01-02T15:04:05.000000000Z07:00"
)

// ErrRunNotFound is returned by GetRun for unknown identifiers.
var ErrRunNotFound = errors.New("evaluation run not found")

// Store persists evaluation runs in SQLite.
type Store struct {
	db   *sql.DB
	path string

	mu   sync.Mutex
	lock *flock.Flock
}

// Open initializes or connects to the history database configured in cfg.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}
	return OpenPath(cfg.HistoryDBPath())
}

// OpenPath opens the database at dbPath, creating it and applying migrations
// when needed.
func OpenPath(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create history directory: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath, lock: flock.New(dbPath + ".lock")}
	if err := store.applyMigrations(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Path reports the database file location.
func (s *Store) Path() string {
	return s.path
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// RecordRun stores run and its outcomes in one transaction, assigning an ID
// when run has none. Writers from separate processes are serialized through a
// lock file beside the database.
func (s *Store) RecordRun(ctx context.Context, run Run) (Run, error) {
	if strings.TrimSpace(run.ID) == "" {
		run.ID = uuid.NewString()
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now()
	}

	err := s.WithWriteLock(ctx, func() error {
		return s.insertRun(ctx, run)
	})
	if err != nil {
		return Run{}, err
	}
	return run, nil
}

func (s *Store) insertRun(ctx context.Context, run Run) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin record tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO eval_runs (
            id, suite, model, started_at, duration_ms,
            total, passed, errored, accuracy, avg_confidence
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID,
		run.Suite,
		run.Model,
		run.StartedAt.UTC().Format(timestampLayout),
		run.Duration.Milliseconds(),
		run.Total,
		run.Passed,
		run.Errored,
		run.Accuracy,
		run.AverageConfidence,
	); err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	for i, o := range run.Outcomes {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO eval_outcomes (
                run_id, position, suite, input_text, expected, got,
                confidence, passed, error_message
            ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			run.ID,
			i,
			o.Suite,
			o.Text,
			o.Expected,
			o.Got,
			o.Confidence,
			boolToInt(o.Passed),
			nullableString(o.Error),
		); err != nil {
			return fmt.Errorf("insert outcome %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit run: %w", err)
	}
	return nil
}

const runColumns = "id, suite, model, started_at, duration_ms, total, passed, errored, accuracy, avg_confidence"

// ListRuns returns the newest runs first, without outcomes. A non-positive
// limit falls back to 20.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = defaultRunLimit
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+runColumns+` FROM eval_runs ORDER BY started_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// GetRun returns a run together with its outcomes. IDs may be abbreviated to
// any unique prefix.
func (s *Store) GetRun(ctx context.Context, id string) (Run, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Run{}, ErrRunNotFound
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+runColumns+` FROM eval_runs WHERE id LIKE ? || '%' ORDER BY started_at DESC LIMIT 2`, id)
	if err != nil {
		return Run{}, fmt.Errorf("get run: %w", err)
	}
	var matches []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			_ = rows.Close()
			return Run{}, fmt.Errorf("scan run: %w", err)
		}
		matches = append(matches, run)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return Run{}, fmt.Errorf("iterate runs: %w", err)
	}
	_ = rows.Close()

	switch len(matches) {
	case 0:
		return Run{}, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	case 1:
	default:
		return Run{}, fmt.Errorf("run id %q is ambiguous", id)
	}

	run := matches[0]
	run.Outcomes, err = s.listOutcomes(ctx, run.ID)
	if err != nil {
		return Run{}, err
	}
	return run, nil
}

func (s *Store) listOutcomes(ctx context.Context, runID string) ([]Outcome, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT suite, input_text, expected, got, confidence, passed, error_message
         FROM eval_outcomes WHERE run_id = ? ORDER BY position`, runID)
	if err != nil {
		return nil, fmt.Errorf("list outcomes: %w", err)
	}
	defer rows.Close()

	var outcomes []Outcome
	for rows.Next() {
		var (
			o       Outcome
			passed  int
			message sql.NullString
		)
		if err := rows.Scan(&o.Suite, &o.Text, &o.Expected, &o.Got, &o.Confidence, &passed, &message); err != nil {
			return nil, fmt.Errorf("scan outcome: %w", err)
		}
		o.Passed = passed != 0
		o.Error = message.String
		outcomes = append(outcomes, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate outcomes: %w", err)
	}
	return outcomes, nil
}

func scanRun(scanner interface{ Scan(dest ...any) error }) (Run, error) {
	var (
		run        Run
		startedRaw string
		durationMS int64
	)
	if err := scanner.Scan(
		&run.ID,
		&run.Suite,
		&run.Model,
		&startedRaw,
		&durationMS,
		&run.Total,
		&run.Passed,
		&run.Errored,
		&run.Accuracy,
		&run.AverageConfidence,
	); err != nil {
		return Run{}, err
	}
	started, err := time.Parse(timestampLayout, startedRaw)
	if err != nil {
		return Run{}, fmt.Errorf("parse started_at %q: %w", startedRaw, err)
	}
	run.StartedAt = started
	run.Duration = time.Duration(durationMS) * time.Millisecond
	return run, nil
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}

func nullableString(value string) any {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return value
}

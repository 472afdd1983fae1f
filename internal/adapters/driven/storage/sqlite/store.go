package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/morpho/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/morpho/internal/core/domain"
	"github.com/custodia-labs/morpho/internal/core/ports/driven"
)

// Verify interface compliance.
var (
	_ driven.Exporter = (*Store)(nil)
	_ driven.RunStore = (*Store)(nil)
)

// timeLayout sorts lexically in time order.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Store is a SQLite results database.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens or creates the results database at path and applies migrations.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("opening database: %w: empty path", domain.ErrInvalidInput)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	// Pragmas in the DSN apply to every pooled connection.
	dsn := path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: path,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// OpenExisting opens a results database that must already exist.
// Returns domain.ErrNotFound when there is no file at path.
func OpenExisting(path string) (driven.RunStore, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", path, domain.ErrNotFound)
		}
		return nil, err
	}
	return Open(path)
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// migrate runs all pending migrations and records their versions.
func (s *Store) migrate(fsys fs.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// e.g. "001_initial.up.sql" -> 1
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}

		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== Exporter ====================

// Name identifies the exporter.
func (s *Store) Name() string {
	return "database"
}

// Export stores the comparison in one transaction.
// Exporting the same run twice replaces the earlier copy.
func (s *Store) Export(ctx context.Context, c *domain.Comparison) ([]string, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.ExecContext(ctx, "DELETE FROM runs WHERE id = ?", c.RunID); err != nil {
		return nil, fmt.Errorf("replacing run: %w", err)
	}
	if err := insertRun(ctx, tx, c); err != nil {
		return nil, err
	}
	if err := insertSummary(ctx, tx, c); err != nil {
		return nil, err
	}
	if err := insertMorphemes(ctx, tx, c); err != nil {
		return nil, err
	}
	if err := insertIterations(ctx, tx, c); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing run: %w", err)
	}
	return []string{s.path}, nil
}

func insertRun(ctx context.Context, tx *sql.Tx, c *domain.Comparison) error {
	var (
		source, drawSize, requested, iterations, completed sql.NullInt64
		seed                                               sql.NullString
		clamped, partial                                   bool
	)
	if r := c.Resample; r != nil {
		source = nullInt(int(r.Source))
		drawSize = nullInt(r.DrawSize)
		requested = nullInt(r.Requested)
		iterations = nullInt(r.Iterations)
		completed = nullInt(r.Completed)
		seed = sql.NullString{String: strconv.FormatUint(r.Seed, 10), Valid: true}
		clamped, partial = r.Clamped, r.Partial
	}

	_, err := tx.ExecContext(ctx, `
		INSERT INTO runs (id, created_at, first_corpus, second_corpus, equal_size,
			source_sample, draw_size, requested, iterations, completed, clamped, partial, seed)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, c.RunID, c.CreatedAt.UTC().Format(timeLayout), c.First(), c.Second(), c.EqualSize,
		source, drawSize, requested, iterations, completed, clamped, partial, seed)
	if err != nil {
		return fmt.Errorf("inserting run: %w", err)
	}
	return nil
}

func insertSummary(ctx context.Context, tx *sql.Tx, c *domain.Comparison) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO summary_rows (run_id, row_index, control, sample, analysis,
			cre_mean, cre_sd, tokens, types, tri, tri_percent)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing summary insert: %w", err)
	}
	defer stmt.Close()

	for i, r := range c.Rows() {
		_, err := stmt.ExecContext(ctx, c.RunID, i, string(r.Control), int(r.Sample), r.Analysis,
			r.CREMean, r.CREStdDev, r.Tokens, r.Types, r.TRI, r.TRIPercent)
		if err != nil {
			return fmt.Errorf("inserting summary row %d: %w", i, err)
		}
	}
	return nil
}

func insertMorphemes(ctx context.Context, tx *sql.Tx, c *domain.Comparison) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO morphemes (run_id, control, sample, position, morpheme, cre, draws)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing morpheme insert: %w", err)
	}
	defer stmt.Close()

	levels := []struct {
		control domain.Control
		samples [2]domain.SampleAnalysis
	}{
		{domain.ControlNone, c.Unfiltered},
		{domain.ControlLexical, c.Lexical},
	}
	for _, level := range levels {
		for _, sa := range level.samples {
			for _, p := range domain.Positions() {
				for _, r := range sa.At(p).Records {
					_, err := stmt.ExecContext(ctx, c.RunID, string(level.control), int(r.Sample),
						string(r.Position), r.Morpheme, float64(r.CRE), nil)
					if err != nil {
						return fmt.Errorf("inserting morpheme %s: %w", r.Morpheme, err)
					}
				}
			}
		}
	}

	if c.Resample == nil {
		return nil
	}
	for _, p := range domain.Positions() {
		for _, m := range c.Resample.At(p).Means {
			_, err := stmt.ExecContext(ctx, c.RunID, string(domain.ControlBoth), int(m.Sample),
				string(m.Position), m.Morpheme, m.CRE, m.Draws)
			if err != nil {
				return fmt.Errorf("inserting mean %s: %w", m.Morpheme, err)
			}
		}
	}
	return nil
}

func insertIterations(ctx context.Context, tx *sql.Tx, c *domain.Comparison) error {
	if c.Resample == nil || len(c.Resample.IterationRecords) == 0 {
		return nil
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO iterations (run_id, iteration, position, morpheme, cre)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing iteration insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range c.Resample.IterationRecords {
		if _, err := stmt.ExecContext(ctx, c.RunID, r.Iteration, string(r.Position), r.Morpheme, r.CRE); err != nil {
			return fmt.Errorf("inserting iteration %d: %w", r.Iteration, err)
		}
	}
	return nil
}

func nullInt(v int) sql.NullInt64 {
	return sql.NullInt64{Int64: int64(v), Valid: true}
}

// ==================== Run Store ====================

const runColumns = `id, created_at, first_corpus, second_corpus, equal_size,
	iterations, completed, partial, seed`

// ListRuns returns all stored runs, newest first.
func (s *Store) ListRuns(ctx context.Context) ([]domain.RunSummary, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT "+runColumns+" FROM runs ORDER BY created_at DESC, id")
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []domain.RunSummary
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *run)
	}
	return runs, rows.Err()
}

// GetRun returns a stored run with its summary table.
func (s *Store) GetRun(ctx context.Context, id string) (*domain.RunDetail, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+runColumns+" FROM runs WHERE id = ?", id)
	run, err := scanRun(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	detail := &domain.RunDetail{RunSummary: *run, Morphemes: make(map[domain.SampleID]int)}

	rows, err := s.db.QueryContext(ctx, `
		SELECT control, sample, analysis, cre_mean, cre_sd, tokens, types, tri, tri_percent
		FROM summary_rows WHERE run_id = ? ORDER BY row_index
	`, id)
	if err != nil {
		return nil, fmt.Errorf("querying summary rows: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var r domain.ResultRow
		var control string
		var sample int
		if err := rows.Scan(&control, &sample, &r.Analysis, &r.CREMean, &r.CREStdDev,
			&r.Tokens, &r.Types, &r.TRI, &r.TRIPercent); err != nil {
			return nil, fmt.Errorf("scanning summary row: %w", err)
		}
		r.Control = domain.Control(control)
		r.Sample = domain.SampleID(sample)
		detail.Rows = append(detail.Rows, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	counts, err := s.db.QueryContext(ctx, `
		SELECT sample, COUNT(*) FROM morphemes
		WHERE run_id = ? AND control != ?
		GROUP BY sample
	`, id, string(domain.ControlLexical))
	if err != nil {
		return nil, fmt.Errorf("counting morphemes: %w", err)
	}
	defer counts.Close()

	for counts.Next() {
		var sample, n int
		if err := counts.Scan(&sample, &n); err != nil {
			return nil, fmt.Errorf("scanning morpheme count: %w", err)
		}
		detail.Morphemes[domain.SampleID(sample)] = n
	}

	return detail, counts.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (*domain.RunSummary, error) {
	var (
		run                   domain.RunSummary
		createdAt             string
		iterations, completed sql.NullInt64
		seed                  sql.NullString
	)
	if err := row.Scan(&run.ID, &createdAt, &run.First, &run.Second, &run.EqualSize,
		&iterations, &completed, &run.Partial, &seed); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning run: %w", err)
	}

	t, err := time.Parse(timeLayout, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing run time %q: %w", createdAt, err)
	}
	run.CreatedAt = t
	run.Iterations = int(iterations.Int64)
	run.Completed = int(completed.Int64)

	if seed.Valid {
		v, err := strconv.ParseUint(seed.String, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parsing seed %q: %w", seed.String, err)
		}
		run.Seed = v
	}
	return &run, nil
}

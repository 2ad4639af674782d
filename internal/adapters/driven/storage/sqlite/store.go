package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/sectrack/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/sectrack/internal/core/domain"
	"github.com/custodia-labs/sectrack/internal/core/ports/driven"
)

// DatabaseFile is the file name of the database inside the data directory.
const DatabaseFile = "state.db"

// StaleLockAfter is how long a run lock is honoured after its last refresh
// before another owner may take it over. A live run refreshes it far more
// often, so only processes that died while holding it go stale.
const StaleLockAfter = 6 * time.Hour

// timeFormat is fixed width so stored timestamps sort lexically.
const timeFormat = "2006-01-02T15:04:05.000000000Z"

// Store is a SQLite-based storage that provides the driven
// store interfaces through wrapper types.
type Store struct {
	db   *sql.DB
	path string
	now  func() time.Time
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.sectrack/data.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".sectrack", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, DatabaseFile)

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
		now:  time.Now,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// StateStore returns the sync state store backed by this database.
// The returned value also implements driven.RunLocker.
func (s *Store) StateStore() driven.StateStore {
	return &stateStore{store: s}
}

// AdvisorySink returns a record sink that upserts into the advisories table.
func (s *Store) AdvisorySink() driven.RecordSink {
	return &advisorySink{store: s}
}

// Advisories returns a reader over the records stored by AdvisorySink.
func (s *Store) Advisories() driven.RecordReader {
	return &advisorySink{store: s}
}

// migrate applies every embedded *.up.sql newer than the recorded version.
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
		if name := entry.Name(); strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// "001_initial.up.sql" -> 1
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

		if err := s.applyMigration(version, string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}

	return nil
}

func (s *Store) applyMigration(version int, content string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.Exec(content); err != nil {
		return err
	}
	if _, err := tx.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
		return err
	}
	return tx.Commit()
}

// SchemaVersion returns the highest applied migration version.
func (s *Store) SchemaVersion(ctx context.Context) (int, error) {
	var version int
	err := s.db.QueryRowContext(ctx, "SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&version)
	if err != nil {
		return 0, fmt.Errorf("getting schema version: %w", err)
	}
	return version, nil
}

// ==================== State Store ====================

// stateStore implements driven.StateStore and driven.RunLocker.
type stateStore struct {
	store *Store
}

var (
	_ driven.StateStore = (*stateStore)(nil)
	_ driven.RunLocker  = (*stateStore)(nil)
)

// Get returns the value stored under key.
func (s *stateStore) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.store.db.QueryRowContext(ctx, "SELECT value FROM kv_state WHERE key = ?", key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("reading state %q: %w", key, err)
	}
	return value, nil
}

// Set stores value under key.
func (s *stateStore) Set(ctx context.Context, key string, value []byte) error {
	return s.SetAll(ctx, map[string][]byte{key: value})
}

// SetAll writes every entry in one transaction.
func (s *stateStore) SetAll(ctx context.Context, entries map[string][]byte) error {
	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	now := s.store.now().Unix()
	for key, value := range entries {
		if value == nil {
			value = []byte{}
		}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO kv_state (key, value, updated_at)
			VALUES (?, ?, ?)
			ON CONFLICT(key) DO UPDATE SET
				value = excluded.value,
				updated_at = excluded.updated_at
		`, key, value, now)
		if err != nil {
			return fmt.Errorf("writing state %q: %w", key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing state: %w", err)
	}
	return nil
}

// AcquireRunLock claims the single run lock row for owner.
// A lock older than StaleLockAfter is taken over.
func (s *stateStore) AcquireRunLock(ctx context.Context, owner string) error {
	now := s.store.now()
	staleBefore := now.Add(-StaleLockAfter).Unix()

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO run_lock (id, owner, acquired_at)
		VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			owner = excluded.owner,
			acquired_at = excluded.acquired_at
		WHERE run_lock.acquired_at < ?
	`, owner, now.Unix(), staleBefore)
	if err != nil {
		return fmt.Errorf("acquiring run lock: %w", err)
	}

	var holder string
	if err := s.store.db.QueryRowContext(ctx, "SELECT owner FROM run_lock WHERE id = 1").Scan(&holder); err != nil {
		return fmt.Errorf("reading run lock: %w", err)
	}
	if holder != owner {
		return fmt.Errorf("run lock held by %s: %w", holder, domain.ErrSyncInProgress)
	}
	return nil
}

// RefreshRunLock moves acquired_at forward for a lock owner still holds.
func (s *stateStore) RefreshRunLock(ctx context.Context, owner string) error {
	res, err := s.store.db.ExecContext(ctx,
		"UPDATE run_lock SET acquired_at = ? WHERE id = 1 AND owner = ?",
		s.store.now().Unix(), owner)
	if err != nil {
		return fmt.Errorf("refreshing run lock: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("refreshing run lock: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("run lock lost by %s: %w", owner, domain.ErrSyncInProgress)
	}
	return nil
}

// ReleaseRunLock removes the lock if owner holds it.
func (s *stateStore) ReleaseRunLock(ctx context.Context, owner string) error {
	_, err := s.store.db.ExecContext(ctx, "DELETE FROM run_lock WHERE id = 1 AND owner = ?", owner)
	if err != nil {
		return fmt.Errorf("releasing run lock: %w", err)
	}
	return nil
}

// ==================== Advisory Sink ====================

// advisorySink implements driven.RecordSink.
type advisorySink struct {
	store *Store
}

var (
	_ driven.RecordSink   = (*advisorySink)(nil)
	_ driven.RecordReader = (*advisorySink)(nil)
)

// Emit upserts the record keyed by pull request id.
// The first extraction time is kept and the emit counter incremented.
func (s *advisorySink) Emit(ctx context.Context, record domain.Record) error {
	cves, err := json.Marshal(nonNil(record.CVEs))
	if err != nil {
		return fmt.Errorf("marshalling cves: %w", err)
	}
	affected, err := json.Marshal(nonNil(record.AffectedVersions))
	if err != nil {
		return fmt.Errorf("marshalling affected versions: %w", err)
	}

	extractedAt := record.ExtractedAt
	if extractedAt.IsZero() {
		extractedAt = s.store.now()
	}
	ts := extractedAt.UTC().Format(timeFormat)

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO advisories (
			pr_id, pr_number, url, title, cves, package, affected_versions,
			fixed_version, run_id, extracted_at, first_seen_at, emit_count
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 1)
		ON CONFLICT(pr_id) DO UPDATE SET
			pr_number = excluded.pr_number,
			url = excluded.url,
			title = excluded.title,
			cves = excluded.cves,
			package = excluded.package,
			affected_versions = excluded.affected_versions,
			fixed_version = excluded.fixed_version,
			run_id = excluded.run_id,
			extracted_at = excluded.extracted_at,
			emit_count = advisories.emit_count + 1
	`, record.PullRequest.ID, record.PullRequest.Number, record.PullRequest.URL, record.PullRequest.Title,
		string(cves), nullString(record.Package), string(affected), nullString(record.FixedVersion),
		nullString(record.RunID), ts, ts)
	if err != nil {
		return fmt.Errorf("saving advisory for pull request %d: %w", record.PullRequest.ID, err)
	}
	return nil
}

// CountRecords returns the number of stored advisories.
func (s *advisorySink) CountRecords(ctx context.Context) (int, error) {
	return s.store.CountAdvisories(ctx)
}

// ListRecords returns stored advisories without bookkeeping columns.
func (s *advisorySink) ListRecords(ctx context.Context, limit int) ([]domain.Record, error) {
	advisories, err := s.store.ListAdvisories(ctx, limit)
	if err != nil {
		return nil, err
	}
	records := make([]domain.Record, 0, len(advisories))
	for _, adv := range advisories {
		records = append(records, adv.Record)
	}
	return records, nil
}

// Advisory is a stored record with its bookkeeping columns.
type Advisory struct {
	domain.Record
	FirstSeenAt time.Time
	EmitCount   int
}

// ListAdvisories returns stored advisories, most recently extracted first.
// A limit <= 0 returns all of them.
func (s *Store) ListAdvisories(ctx context.Context, limit int) ([]Advisory, error) {
	query := `
		SELECT pr_id, pr_number, url, title, cves, package, affected_versions,
			fixed_version, run_id, extracted_at, first_seen_at, emit_count
		FROM advisories
		ORDER BY extracted_at DESC, pr_id DESC
	`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying advisories: %w", err)
	}
	defer rows.Close()

	var advisories []Advisory //nolint:prealloc // size unknown from query
	for rows.Next() {
		adv, err := scanAdvisory(rows)
		if err != nil {
			return nil, err
		}
		advisories = append(advisories, *adv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating advisories: %w", err)
	}
	return advisories, nil
}

// CountAdvisories returns the number of stored advisories.
func (s *Store) CountAdvisories(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM advisories").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting advisories: %w", err)
	}
	return n, nil
}

func scanAdvisory(rows *sql.Rows) (*Advisory, error) {
	var (
		adv                      Advisory
		cves, affected           string
		pkg, fixed, runID        sql.NullString
		extractedAt, firstSeenAt string
	)

	err := rows.Scan(
		&adv.PullRequest.ID, &adv.PullRequest.Number, &adv.PullRequest.URL, &adv.PullRequest.Title,
		&cves, &pkg, &affected, &fixed, &runID, &extractedAt, &firstSeenAt, &adv.EmitCount,
	)
	if err != nil {
		return nil, fmt.Errorf("scanning advisory: %w", err)
	}

	if err := json.Unmarshal([]byte(cves), &adv.CVEs); err != nil {
		return nil, fmt.Errorf("unmarshalling cves: %w", err)
	}
	if err := json.Unmarshal([]byte(affected), &adv.AffectedVersions); err != nil {
		return nil, fmt.Errorf("unmarshalling affected versions: %w", err)
	}
	adv.Package = pkg.String
	adv.FixedVersion = fixed.String
	adv.RunID = runID.String

	if adv.ExtractedAt, err = time.Parse(timeFormat, extractedAt); err != nil {
		return nil, fmt.Errorf("parsing extracted_at: %w", err)
	}
	if adv.FirstSeenAt, err = time.Parse(timeFormat, firstSeenAt); err != nil {
		return nil, fmt.Errorf("parsing first_seen_at: %w", err)
	}

	return &adv, nil
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

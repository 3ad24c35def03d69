package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/novella-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/novella-cli/internal/core/domain"
	"github.com/custodia-labs/novella-cli/internal/core/ports/driven"
)

// Store is a unified SQLite-based storage that provides access to the
// library and position store interfaces through wrapper types.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.novella/data/library.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".novella", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "library.db")

	// WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
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

// LibraryStore returns a LibraryStore interface backed by this store.
func (s *Store) LibraryStore() driven.LibraryStore {
	return &libraryStore{store: s}
}

// PositionStore returns a PositionStore interface backed by this store.
func (s *Store) PositionStore() driven.PositionStore {
	return &positionStore{store: s}
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
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
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(
			"INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== Library Store ====================

// libraryStore implements driven.LibraryStore.
type libraryStore struct {
	store *Store
}

var _ driven.LibraryStore = (*libraryStore)(nil)

// SaveNovel stores or updates a novel.
func (s *libraryStore) SaveNovel(ctx context.Context, novel *domain.Novel) error {
	if err := novel.Validate(); err != nil {
		return err
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO novels (id, title, path, imported_at, last_read_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			path = excluded.path,
			last_read_at = excluded.last_read_at
	`, novel.ID, novel.Title, novel.Path, novel.ImportedAt, nullTime(novel.LastReadAt))

	if err != nil {
		return fmt.Errorf("saving novel: %w", err)
	}
	return nil
}

// GetNovel retrieves a novel by ID.
func (s *libraryStore) GetNovel(ctx context.Context, id string) (*domain.Novel, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, title, path, imported_at, last_read_at
		FROM novels WHERE id = ?
	`, id)

	return scanNovel(row)
}

// GetNovelByPath retrieves a novel by its file path.
func (s *libraryStore) GetNovelByPath(ctx context.Context, path string) (*domain.Novel, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, title, path, imported_at, last_read_at
		FROM novels WHERE path = ?
	`, path)

	return scanNovel(row)
}

// ListNovels returns all novels, most recently imported first.
func (s *libraryStore) ListNovels(ctx context.Context) ([]domain.Novel, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, title, path, imported_at, last_read_at
		FROM novels ORDER BY imported_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("querying novels: %w", err)
	}
	defer rows.Close()

	var novels []domain.Novel //nolint:prealloc // size unknown from query
	for rows.Next() {
		var novel domain.Novel
		var lastReadAt sql.NullTime
		if err := rows.Scan(&novel.ID, &novel.Title, &novel.Path,
			&novel.ImportedAt, &lastReadAt); err != nil {
			return nil, fmt.Errorf("scanning novel: %w", err)
		}
		if lastReadAt.Valid {
			novel.LastReadAt = lastReadAt.Time
		}
		novels = append(novels, novel)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating novels: %w", err)
	}

	return novels, nil
}

// DeleteNovel removes a novel. Its position row goes with it via the
// foreign key cascade.
func (s *libraryStore) DeleteNovel(ctx context.Context, id string) error {
	res, err := s.store.db.ExecContext(ctx, "DELETE FROM novels WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting novel: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking delete result: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ==================== Position Store ====================

// positionStore implements driven.PositionStore.
type positionStore struct {
	store *Store
}

var _ driven.PositionStore = (*positionStore)(nil)

// SavePosition stores or updates the position for a novel.
func (s *positionStore) SavePosition(ctx context.Context, pos *domain.ReadingPosition) error {
	if err := pos.Validate(); err != nil {
		return err
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO positions (novel_id, chunk_index, position, scroll_offset, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(novel_id) DO UPDATE SET
			chunk_index = excluded.chunk_index,
			position = excluded.position,
			scroll_offset = excluded.scroll_offset,
			updated_at = excluded.updated_at
	`, pos.NovelID, pos.ChunkIndex, pos.Position, pos.ScrollOffset, pos.UpdatedAt)

	if err != nil {
		return fmt.Errorf("saving position: %w", err)
	}
	return nil
}

// GetPosition retrieves the saved position for a novel.
func (s *positionStore) GetPosition(ctx context.Context, novelID string) (*domain.ReadingPosition, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT novel_id, chunk_index, position, scroll_offset, updated_at
		FROM positions WHERE novel_id = ?
	`, novelID)

	var pos domain.ReadingPosition
	if err := row.Scan(&pos.NovelID, &pos.ChunkIndex, &pos.Position,
		&pos.ScrollOffset, &pos.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning position: %w", err)
	}

	return &pos, nil
}

// DeletePosition removes the saved position for a novel.
func (s *positionStore) DeletePosition(ctx context.Context, novelID string) error {
	_, err := s.store.db.ExecContext(ctx, "DELETE FROM positions WHERE novel_id = ?", novelID)
	if err != nil {
		return fmt.Errorf("deleting position: %w", err)
	}
	return nil
}

// ==================== Helper Functions ====================

// scanNovel scans a single novel row.
func scanNovel(row *sql.Row) (*domain.Novel, error) {
	var novel domain.Novel
	var lastReadAt sql.NullTime

	if err := row.Scan(&novel.ID, &novel.Title, &novel.Path,
		&novel.ImportedAt, &lastReadAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning novel: %w", err)
	}

	if lastReadAt.Valid {
		novel.LastReadAt = lastReadAt.Time
	}

	return &novel, nil
}

// nullTime converts a zero time to a SQL NULL.
func nullTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t
}

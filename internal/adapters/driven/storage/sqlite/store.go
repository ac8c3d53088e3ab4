// Package sqlite implements the on-disk index bundle.
//
// A bundle is a directory containing a single index.db SQLite database.
// Persist replaces the whole bundle in one transaction; Load reads the
// full snapshot back into memory for brute-force cosine search. The
// corpus fingerprint sidecar lives next to index.db but is managed by
// the indexing service, not by this package.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/tabletalk-labs/tabletalk-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/tabletalk-labs/tabletalk-cli/internal/core/domain"
	"github.com/tabletalk-labs/tabletalk-cli/internal/core/ports/driven"
	"github.com/tabletalk-labs/tabletalk-cli/internal/vectormath"
)

// Ensure Store implements the interface.
var _ driven.IndexStore = (*Store)(nil)

// Store is a SQLite-backed index bundle.
type Store struct {
	db      *sql.DB
	dataDir string
	dbPath  string
}

// NewStore opens (creating if needed) the index bundle at dataDir.
// If dataDir is empty, defaults to ~/.tabletalk/data.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".tabletalk", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "index.db")

	// WAL keeps readers unblocked while a rebuild writes.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:      db,
		dataDir: dataDir,
		dbPath:  dbPath,
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

// Path returns the directory holding the bundle.
func (s *Store) Path() string {
	return s.dataDir
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
		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// Persist replaces the bundle contents with the given snapshot.
// The swap happens inside a single transaction so a crash never leaves
// a half-written bundle behind.
func (s *Store) Persist(ctx context.Context, docs []domain.Document, embeddings [][]float32, meta driven.IndexMeta) error {
	if len(docs) != len(embeddings) {
		return fmt.Errorf("%w: %d documents but %d embeddings",
			domain.ErrIndexStorage, len(docs), len(embeddings))
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: beginning transaction: %v", domain.ErrIndexStorage, err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.ExecContext(ctx, "DELETE FROM documents"); err != nil {
		return fmt.Errorf("%w: clearing documents: %v", domain.ErrIndexStorage, err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO documents (id, row, content, metadata, embedding)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("%w: preparing insert: %v", domain.ErrIndexStorage, err)
	}
	defer stmt.Close()

	for i, doc := range docs {
		metadataJSON, err := json.Marshal(doc.Metadata)
		if err != nil {
			return fmt.Errorf("%w: marshalling metadata for %s: %v", domain.ErrIndexStorage, doc.ID, err)
		}
		blob := float32SliceToBytes(embeddings[i])
		if _, err := stmt.ExecContext(ctx, doc.ID, doc.Row, doc.Content, string(metadataJSON), blob); err != nil {
			return fmt.Errorf("%w: inserting document %s: %v", domain.ErrIndexStorage, doc.ID, err)
		}
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO index_meta (id, dimensions, model, built_at)
		VALUES (1, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			dimensions = excluded.dimensions,
			model = excluded.model,
			built_at = excluded.built_at
	`, meta.Dimensions, meta.Model, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("%w: writing index meta: %v", domain.ErrIndexStorage, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: committing: %v", domain.ErrIndexStorage, err)
	}
	return nil
}

// Load reads the full bundle into memory and returns a searchable view.
// Returns ErrIndexStorage when the bundle has never been built.
func (s *Store) Load(ctx context.Context) (driven.VectorIndex, error) {
	var dimensions int
	var model string
	row := s.db.QueryRowContext(ctx, "SELECT dimensions, model FROM index_meta WHERE id = 1")
	if err := row.Scan(&dimensions, &model); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%w: no index built at %s", domain.ErrIndexStorage, s.dataDir)
		}
		return nil, fmt.Errorf("%w: reading index meta: %v", domain.ErrIndexStorage, err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, row, content, metadata, embedding
		FROM documents
		ORDER BY row
	`)
	if err != nil {
		return nil, fmt.Errorf("%w: reading documents: %v", domain.ErrIndexStorage, err)
	}
	defer rows.Close()

	var docs []domain.Document
	var embeddings [][]float32
	for rows.Next() {
		var doc domain.Document
		var metadataJSON sql.NullString
		var blob []byte
		if err := rows.Scan(&doc.ID, &doc.Row, &doc.Content, &metadataJSON, &blob); err != nil {
			return nil, fmt.Errorf("%w: scanning document: %v", domain.ErrIndexStorage, err)
		}
		if metadataJSON.Valid && metadataJSON.String != "" && metadataJSON.String != "null" {
			if err := json.Unmarshal([]byte(metadataJSON.String), &doc.Metadata); err != nil {
				return nil, fmt.Errorf("%w: unmarshalling metadata for %s: %v", domain.ErrIndexStorage, doc.ID, err)
			}
		}
		docs = append(docs, doc)
		embeddings = append(embeddings, bytesToFloat32Slice(blob))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating documents: %v", domain.ErrIndexStorage, err)
	}

	return &bundleIndex{
		docs:       docs,
		embeddings: embeddings,
		dimensions: dimensions,
	}, nil
}

// bundleIndex is the in-memory view of a loaded bundle.
type bundleIndex struct {
	docs       []domain.Document
	embeddings [][]float32
	dimensions int
}

var _ driven.VectorIndex = (*bundleIndex)(nil)

// Search finds the k nearest documents, closest first.
func (ix *bundleIndex) Search(_ context.Context, query []float32, k int) ([]domain.Match, error) {
	return vectormath.NearestK(query, ix.docs, ix.embeddings, k), nil
}

// Count returns the number of indexed documents.
func (ix *bundleIndex) Count() int {
	return len(ix.docs)
}

// Dimensions returns the embedding vector size of the index.
func (ix *bundleIndex) Dimensions() int {
	return ix.dimensions
}

// Close releases the in-memory snapshot.
func (ix *bundleIndex) Close() error {
	return nil
}

// float32SliceToBytes converts a []float32 to a byte slice for storage.
func float32SliceToBytes(floats []float32) []byte {
	if len(floats) == 0 {
		return nil
	}
	buf := make([]byte, len(floats)*4)
	for i, f := range floats {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

// bytesToFloat32Slice converts a byte slice back to []float32.
func bytesToFloat32Slice(data []byte) []float32 {
	if len(data) == 0 {
		return nil
	}
	floats := make([]float32, len(data)/4)
	for i := range floats {
		floats[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return floats
}

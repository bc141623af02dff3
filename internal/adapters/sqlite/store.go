package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	_ "github.com/mattn/go-sqlite3"

	"focusly/internal/adapters/jsonstate"
	"focusly/internal/domain"
	"focusly/internal/ports"
)

// schemaVersion 1 stored node documents in the flat legacy shape;
// 2 stores deepContent as a nested object.
const schemaVersion = 2

const (
	docStats = "stats"
	docTopic = "topic"
)

// Store implements ports.StateRepository using SQLite
type Store struct {
	db     *sql.DB
	dbPath string
}

// Ensure Store implements StateRepository
var _ ports.StateRepository = (*Store)(nil)

// Open opens or creates the database at path. An empty path uses the
// default location under the XDG data directory.
func Open(path string) (*Store, error) {
	if path == "" {
		path = DefaultPath()
	}
	path, err := expandHome(path)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	s := &Store{db: db, dbPath: path}

	_, err = db.Exec(`
		PRAGMA synchronous = NORMAL;
		PRAGMA temp_store = MEMORY;

		CREATE TABLE IF NOT EXISTS nodes (
			id TEXT PRIMARY KEY,
			position INTEGER NOT NULL,
			doc TEXT NOT NULL
		);
		CREATE TABLE IF NOT EXISTS documents (
			key TEXT PRIMARY KEY,
			doc TEXT NOT NULL
		);
		CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_nodes_position ON nodes(position);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to setup database: %w", err)
	}

	if err := s.migrate(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return s, nil
}

// Path returns the database file path
func (s *Store) Path() string {
	return s.dbPath
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// DefaultPath returns the default database location
func DefaultPath() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "focusly", "focusly.db")
}

func expandHome(path string) (string, error) {
	if len(path) > 0 && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(home, path[1:])
	}
	return path, nil
}

// SchemaVersion returns the stored schema version, 0 for a fresh database
func (s *Store) SchemaVersion(ctx context.Context) (int, error) {
	var value string
	err := s.db.QueryRowContext(ctx, "SELECT value FROM meta WHERE key = 'schema_version'").Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(value)
}

// migrate rewrites every node document through the tolerant decoder when the
// stored version is older, then records the current version.
func (s *Store) migrate(ctx context.Context) error {
	version, err := s.SchemaVersion(ctx)
	if err != nil {
		return err
	}
	if version == schemaVersion {
		return nil
	}
	if version > schemaVersion {
		return fmt.Errorf("database schema version %d is newer than supported version %d", version, schemaVersion)
	}

	return s.withTx(ctx, func(tx *stateTx) error {
		if version > 0 {
			nodes, err := tx.loadNodes(ctx)
			if err != nil {
				return err
			}
			if err := tx.replaceNodes(ctx, nodes); err != nil {
				return err
			}
		}
		return tx.setMeta(ctx, "schema_version", strconv.Itoa(schemaVersion))
	})
}

// Load reads the three persisted documents
func (s *Store) Load(ctx context.Context) (*ports.Snapshot, error) {
	snap := &ports.Snapshot{}
	err := s.withTx(ctx, func(tx *stateTx) error {
		nodes, err := tx.loadNodes(ctx)
		if err != nil {
			return err
		}
		snap.Nodes = nodes

		statsDoc, err := tx.getDocument(ctx, docStats)
		if err != nil {
			return err
		}
		if snap.Stats, err = jsonstate.DecodeStats([]byte(statsDoc)); err != nil {
			return err
		}

		topicDoc, err := tx.getDocument(ctx, docTopic)
		if err != nil {
			return err
		}
		if topicDoc != "" {
			if err := json.Unmarshal([]byte(topicDoc), &snap.Topic); err != nil {
				return fmt.Errorf("failed to decode topic: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return snap, nil
}

// Save replaces the stored documents with snap in one transaction
func (s *Store) Save(ctx context.Context, snap *ports.Snapshot) error {
	statsDoc, err := json.Marshal(snap.Stats)
	if err != nil {
		return fmt.Errorf("failed to encode stats: %w", err)
	}
	topicDoc, err := json.Marshal(snap.Topic)
	if err != nil {
		return fmt.Errorf("failed to encode topic: %w", err)
	}

	return s.withTx(ctx, func(tx *stateTx) error {
		if err := tx.replaceNodes(ctx, snap.Nodes); err != nil {
			return err
		}
		if err := tx.putDocument(ctx, docStats, string(statsDoc)); err != nil {
			return err
		}
		return tx.putDocument(ctx, docTopic, string(topicDoc))
	})
}

// NodeCount returns the number of stored nodes
func (s *Store) NodeCount(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM nodes").Scan(&n)
	return n, err
}

func (s *Store) withTx(ctx context.Context, fn func(tx *stateTx) error) error {
	sqlTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if err := fn(&stateTx{tx: sqlTx}); err != nil {
		sqlTx.Rollback()
		return err
	}
	return sqlTx.Commit()
}

// decodeNodes decodes stored node documents, upgrading legacy ones
func decodeNodes(docs []string) ([]*domain.LearningNode, error) {
	nodes := make([]*domain.LearningNode, 0, len(docs))
	for _, doc := range docs {
		n, err := jsonstate.DecodeNode([]byte(doc))
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

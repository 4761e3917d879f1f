package indexadapter

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	_ "github.com/asg017/sqlite-vec-go-bindings/ncruces"
	_ "github.com/ncruces/go-sqlite3/driver"

	"github.com/kittclouds/searus/pkg/vectormath"
)

// schema mirrors the teacher's own CREATE-TABLE-IF-NOT-EXISTS style: one
// table per concern, items keyed by the id the engine assigned at dispatch.
const schema = `
CREATE TABLE IF NOT EXISTS index_items (
	id   INTEGER PRIMARY KEY,
	data BLOB NOT NULL
);

CREATE TABLE IF NOT EXISTS index_vectors (
	id     INTEGER PRIMARY KEY,
	vector BLOB NOT NULL
);

CREATE TABLE IF NOT EXISTS index_tags (
	id  INTEGER NOT NULL,
	tag TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_index_tags_id ON index_tags(id);
`

// SQLite is a database/sql-backed Adapter. Items are JSON-encoded; vectors
// are stored as a JSON float array and scanned back for brute-force KNN.
type SQLite[T any] struct {
	mu sync.RWMutex
	db *sql.DB
}

// NewSQLite opens an in-memory SQLite-backed index.
func NewSQLite[T any]() (*SQLite[T], error) {
	return NewSQLiteWithDSN[T](":memory:")
}

// NewSQLiteWithDSN opens a SQLite-backed index at dsn, creating the schema
// if it does not already exist. Use ":memory:" for ephemeral use or a file
// path for a persistent side index.
func NewSQLiteWithDSN[T any](dsn string) (*SQLite[T], error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open index database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create index schema: %w", err)
	}
	return &SQLite[T]{db: db}, nil
}

// Close releases the underlying database connection.
func (s *SQLite[T]) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}

func (s *SQLite[T]) Put(id int, item T, vector []float32, tags []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("marshal item: %w", err)
	}

	if _, err := s.db.Exec(`
		INSERT INTO index_items (id, data) VALUES (?, ?)
		ON CONFLICT(id) DO UPDATE SET data = excluded.data
	`, id, data); err != nil {
		return fmt.Errorf("upsert item: %w", err)
	}

	if vector != nil {
		vecJSON, err := json.Marshal(vector)
		if err != nil {
			return fmt.Errorf("marshal vector: %w", err)
		}
		if _, err := s.db.Exec(`
			INSERT INTO index_vectors (id, vector) VALUES (?, ?)
			ON CONFLICT(id) DO UPDATE SET vector = excluded.vector
		`, id, vecJSON); err != nil {
			return fmt.Errorf("upsert vector: %w", err)
		}
	}

	if tags != nil {
		if _, err := s.db.Exec(`DELETE FROM index_tags WHERE id = ?`, id); err != nil {
			return fmt.Errorf("clear tags: %w", err)
		}
		for _, tag := range tags {
			if _, err := s.db.Exec(`INSERT INTO index_tags (id, tag) VALUES (?, ?)`, id, tag); err != nil {
				return fmt.Errorf("insert tag: %w", err)
			}
		}
	}

	return nil
}

func (s *SQLite[T]) Remove(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec(`DELETE FROM index_items WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	if _, err := s.db.Exec(`DELETE FROM index_vectors WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete vector: %w", err)
	}
	if _, err := s.db.Exec(`DELETE FROM index_tags WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete tags: %w", err)
	}
	return nil
}

func (s *SQLite[T]) Get(id int) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var zero T
	var data []byte
	err := s.db.QueryRow(`SELECT data FROM index_items WHERE id = ?`, id).Scan(&data)
	if err == sql.ErrNoRows {
		return zero, false
	}
	if err != nil {
		return zero, false
	}

	var item T
	if err := json.Unmarshal(data, &item); err != nil {
		return zero, false
	}
	return item, true
}

// KNN scans every stored vector and returns the k closest to vector by
// Euclidean distance. Not an approximate structure: every row is visited.
func (s *SQLite[T]) KNN(vector []float32, k int) []Neighbor {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`SELECT id, vector FROM index_vectors`)
	if err != nil {
		return nil
	}
	defer rows.Close()

	var neighbors []Neighbor
	for rows.Next() {
		var id int
		var vecJSON []byte
		if err := rows.Scan(&id, &vecJSON); err != nil {
			continue
		}
		var v []float32
		if err := json.Unmarshal(vecJSON, &v); err != nil {
			continue
		}
		neighbors = append(neighbors, Neighbor{ID: id, Distance: vectormath.EuclideanDistance(vector, v)})
	}

	sort.Slice(neighbors, func(i, j int) bool { return neighbors[i].Distance < neighbors[j].Distance })

	if k < len(neighbors) {
		neighbors = neighbors[:k]
	}
	return neighbors
}

func (s *SQLite[T]) All() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`SELECT data FROM index_items`)
	if err != nil {
		return nil
	}
	defer rows.Close()

	var items []T
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			continue
		}
		var item T
		if err := json.Unmarshal(data, &item); err != nil {
			continue
		}
		items = append(items, item)
	}
	return items
}

var _ Adapter[string] = (*SQLite[string])(nil)

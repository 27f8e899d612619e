package sample

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Store persists sample batches in SQLite for querying across runs.
type Store struct {
	db *sql.DB
}

// OpenStore opens (and migrates) a sample database at path.
func OpenStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return store, nil
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS batches (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		label TEXT NOT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS samples (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		batch_id INTEGER NOT NULL,
		source TEXT NOT NULL,
		root_type TEXT NOT NULL,
		root_name TEXT NOT NULL,
		line_count INTEGER NOT NULL,
		depth INTEGER NOT NULL,
		complexity TEXT NOT NULL,
		commands TEXT NOT NULL,
		output TEXT NOT NULL,
		FOREIGN KEY (batch_id) REFERENCES batches(id)
	);

	CREATE INDEX IF NOT EXISTS idx_samples_batch ON samples(batch_id);
	CREATE INDEX IF NOT EXISTS idx_samples_complexity ON samples(batch_id, complexity);
	CREATE INDEX IF NOT EXISTS idx_samples_root ON samples(root_name);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveBatch stores a labelled batch and returns its id.
func (s *Store) SaveBatch(label string, samples []Sample) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		`INSERT INTO batches (label, created_at) VALUES (?, ?)`,
		label, time.Now().UTC(),
	)
	if err != nil {
		return 0, fmt.Errorf("insert batch: %w", err)
	}
	batchID, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	stmt, err := tx.Prepare(
		`INSERT INTO samples (batch_id, source, root_type, root_name,
		 line_count, depth, complexity, commands, output)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	for i, smp := range samples {
		commands, err := json.Marshal(smp.Meta.Commands)
		if err != nil {
			return 0, fmt.Errorf("sample %d: %w", i, err)
		}
		_, err = stmt.Exec(batchID, smp.Meta.Source, smp.Meta.RootType,
			smp.Meta.RootName, smp.Meta.LineCount, smp.Meta.Depth,
			string(smp.Meta.Complexity), string(commands), smp.Output)
		if err != nil {
			return 0, fmt.Errorf("sample %d (%s): %w", i, smp.Meta.RootName, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return batchID, nil
}

// LoadBatch returns a batch's samples in insertion order.
func (s *Store) LoadBatch(batchID int64) ([]Sample, error) {
	rows, err := s.db.Query(
		`SELECT source, root_type, root_name, line_count, depth, complexity, commands, output
		 FROM samples WHERE batch_id = ? ORDER BY id`, batchID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var samples []Sample
	for rows.Next() {
		var smp Sample
		var complexity, commands string
		err := rows.Scan(&smp.Meta.Source, &smp.Meta.RootType, &smp.Meta.RootName,
			&smp.Meta.LineCount, &smp.Meta.Depth, &complexity, &commands, &smp.Output)
		if err != nil {
			return nil, err
		}
		smp.Meta.Complexity = Complexity(complexity)
		if err := json.Unmarshal([]byte(commands), &smp.Meta.Commands); err != nil {
			return nil, fmt.Errorf("sample %q: %w", smp.Meta.RootName, err)
		}
		samples = append(samples, smp)
	}
	return samples, rows.Err()
}

// ComplexityCounts aggregates a batch's complexity distribution.
func (s *Store) ComplexityCounts(batchID int64) (map[Complexity]int, error) {
	rows, err := s.db.Query(
		`SELECT complexity, COUNT(*) FROM samples
		 WHERE batch_id = ? GROUP BY complexity`, batchID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[Complexity]int)
	for rows.Next() {
		var c string
		var n int
		if err := rows.Scan(&c, &n); err != nil {
			return nil, err
		}
		counts[Complexity(c)] = n
	}
	return counts, rows.Err()
}

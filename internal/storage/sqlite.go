package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/hyperjump/sqlrag/internal/models"
)

// SQLiteStore implements EmbeddingStore on a single SQLite table.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens or creates a SQLite database at dbPath and initializes the schema.
// Parent directories are created if they do not exist.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}
	if _, err := db.Exec("PRAGMA busy_timeout=5000"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}

	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`
	CREATE TABLE IF NOT EXISTS embeddings (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		content TEXT,
		embedding TEXT
	)`)
	return err
}

// Insert stores content with its vector serialized as a JSON array.
func (s *SQLiteStore) Insert(ctx context.Context, content string, vector []float32) (int64, error) {
	encoded, err := encodeVector(vector)
	if err != nil {
		return 0, err
	}
	result, err := s.db.ExecContext(ctx,
		`INSERT INTO embeddings (content, embedding) VALUES (?, ?)`,
		content, encoded,
	)
	if err != nil {
		return 0, fmt.Errorf("insert embedding: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert embedding: last insert id: %w", err)
	}
	return id, nil
}

// ScanAll materializes the whole table in insertion order.
func (s *SQLiteStore) ScanAll(ctx context.Context) ([]models.EmbeddingRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, content, embedding FROM embeddings ORDER BY id ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("scan embeddings: %w", err)
	}
	defer rows.Close()

	var records []models.EmbeddingRecord
	for rows.Next() {
		var (
			rec     models.EmbeddingRecord
			content sql.NullString
			encoded sql.NullString
		)
		if err := rows.Scan(&rec.ID, &content, &encoded); err != nil {
			return nil, fmt.Errorf("scan embeddings: %w", err)
		}
		rec.Content = content.String
		rec.Vector, err = decodeVector(encoded.String)
		if err != nil {
			return nil, fmt.Errorf("decode embedding %d: %w", rec.ID, err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("scan embeddings: %w", err)
	}
	return records, nil
}

// Count returns the total number of records.
func (s *SQLiteStore) Count(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM embeddings`).Scan(&count)
	return count, err
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func encodeVector(v []float32) (string, error) {
	if v == nil {
		v = []float32{}
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encode embedding: %w", err)
	}
	return string(b), nil
}

func decodeVector(s string) ([]float32, error) {
	if s == "" {
		return nil, nil
	}
	var v []float32
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return nil, err
	}
	return v, nil
}

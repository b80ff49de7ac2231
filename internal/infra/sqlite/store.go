// Package sqlite is the demo-mode store used when no DATABASE_URL is
// configured: a single-file (or in-memory) database with the same repository
// contracts as the Postgres layer, for local demos and tests. It is not the
// durable production backend.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/bloomview/bloomview-api/internal/entity"
)

type Store struct {
	db *sql.DB
}

// Open opens (or creates) the database under dataDir and bootstraps the
// schema. Pass ":memory:" for an in-memory database (used by tests).
func Open(dataDir string) (*Store, error) {
	var dsn string
	if dataDir == ":memory:" {
		dsn = ":memory:"
	} else {
		if err := os.MkdirAll(dataDir, 0o755); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
		dsn = filepath.Join(dataDir, "bloomview.db")
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	// Single connection avoids "database is locked" errors.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting busy timeout: %w", err)
	}

	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// DB exposes the handle for health pings.
func (s *Store) DB() *sql.DB {
	return s.db
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS leads (
			id         TEXT PRIMARY KEY,
			name       TEXT NOT NULL,
			email      TEXT NOT NULL,
			service    TEXT NOT NULL,
			message    TEXT NOT NULL,
			status     TEXT NOT NULL DEFAULT 'new',
			created_at TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_leads_created_at ON leads (created_at DESC);
		CREATE TABLE IF NOT EXISTS subscribers (
			email TEXT PRIMARY KEY
		);
	`)
	return err
}

// Timestamps are stored as RFC3339Nano in UTC, which sorts lexicographically.
const timeLayout = time.RFC3339Nano

func (s *Store) Insert(ctx context.Context, lead *entity.Lead) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO leads (id, name, email, service, message, status, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		lead.ID, lead.Name, lead.Email, lead.Service, lead.Message, lead.Status,
		lead.CreatedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("inserting lead: %w", err)
	}
	return nil
}

func (s *Store) List(ctx context.Context) ([]entity.Lead, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, email, service, message, status, created_at
		 FROM leads ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing leads: %w", err)
	}
	defer rows.Close()

	leads := []entity.Lead{}
	for rows.Next() {
		var l entity.Lead
		var createdAt string
		if err := rows.Scan(&l.ID, &l.Name, &l.Email, &l.Service, &l.Message, &l.Status, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning lead: %w", err)
		}
		if l.CreatedAt, err = time.Parse(timeLayout, createdAt); err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}
		leads = append(leads, l)
	}

	return leads, rows.Err()
}

func (s *Store) UpdateStatus(ctx context.Context, id, status string) error {
	res, err := s.db.ExecContext(ctx, `UPDATE leads SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return fmt.Errorf("updating lead status: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return entity.ErrLeadNotFound
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM leads WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting lead: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return entity.ErrLeadNotFound
	}
	return nil
}

func (s *Store) Subscribe(ctx context.Context, email string) error {
	if _, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO subscribers (email) VALUES (?)`, email); err != nil {
		return fmt.Errorf("inserting subscriber: %w", err)
	}
	return nil
}

// SubscriberCount backs the demo-mode tests; the API never exposes it.
func (s *Store) SubscriberCount(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM subscribers`).Scan(&n)
	return n, err
}
